package proctor

import "time"

// ComplianceState состояние соответствия требованиям прокторинга
type ComplianceState string

const (
	StateNotEntered ComplianceState = "not_entered"
	StateCompliant  ComplianceState = "compliant"
	StatePaused     ComplianceState = "paused"
)

// StateFunc возвращает актуальное состояние на момент вызова.
// Обработчики сигналов обязаны читать состояние через нее, а не
// захватывать значение в замыкание.
type StateFunc func() ComplianceState

// SourceKind источник подозрительного события
type SourceKind string

const (
	SourceVisibility  SourceKind = "visibility"
	SourceFocus       SourceKind = "focus"
	SourceBlur        SourceKind = "blur"
	SourceResize      SourceKind = "resize"
	SourceClipboard   SourceKind = "clipboard"
	SourceSelection   SourceKind = "selection"
	SourceContextMenu SourceKind = "contextmenu"
	SourceKeyboard    SourceKind = "keyboard-burst"
	SourceInactivity  SourceKind = "inactivity"
)

// SuspiciousEvent одна запись журнала. После записи не изменяется.
type SuspiciousEvent struct {
	Time    time.Time  `json:"time"`
	Message string     `json:"message"`
	Source  SourceKind `json:"source"`
}

// ActivityCounters счетчики за одну попытку интервью.
// Оба счетчика монотонно неубывающие до явного Reset.
type ActivityCounters struct {
	SuspiciousActivityCount int `json:"suspicious_activity_count"`
	AppSwitchCount          int `json:"app_switch_count"`
}

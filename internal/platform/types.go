package platform

import "time"

// SignalKind вид сигнала браузерной платформы
type SignalKind string

const (
	SignalVisibility  SignalKind = "visibilitychange"
	SignalFocusChange SignalKind = "focuschange"
	SignalFocus       SignalKind = "focus"
	SignalBlur        SignalKind = "blur"
	SignalResize      SignalKind = "resize"
	SignalClipboard   SignalKind = "clipboardchange"
	SignalSelection   SignalKind = "selectionchange"
	SignalContextMenu SignalKind = "contextmenu"
	SignalKeyDown     SignalKind = "keydown"
	SignalMouseMove   SignalKind = "mousemove"
	SignalCopy        SignalKind = "copy"
	SignalCut         SignalKind = "cut"
	SignalPaste       SignalKind = "paste"
	SignalSelectStart SignalKind = "selectstart"
)

// Signal одно событие платформы. Поля Hidden и HasFocus отражают
// состояние документа в момент события, а не на момент подписки.
type Signal struct {
	Kind           SignalKind
	Time           time.Time
	Hidden         bool
	HasFocus       bool
	SelectionEmpty bool
	// Key комбинация клавиш для keydown, например "Ctrl+Shift+I"
	Key string
}

// Listener обработчик сигнала
type Listener func(Signal)

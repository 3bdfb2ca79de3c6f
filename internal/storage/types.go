package storage

import (
	"quickhire-proctor/internal/interview"
	"quickhire-proctor/internal/proctor"
)

// InterviewResult итог завершенного интервью для локального сохранения.
// Дублирует финальную сводку, отправляемую на сервер: локальная копия
// остается даже при недоступном сервере.
type InterviewResult struct {
	InterviewID             string                    `json:"interview_id"`
	CandidateCode           string                    `json:"candidate_code"`
	Timestamp               string                    `json:"timestamp"`
	FinalEvaluation         string                    `json:"final_evaluation"`
	Answers                 []interview.Answer        `json:"answers"`
	ActivityLog             []proctor.SuspiciousEvent `json:"activity_log"`
	SuspiciousActivityCount int                       `json:"suspicious_activity_count"`
	AppSwitchCount          int                       `json:"app_switch_count"`
}

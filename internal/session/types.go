package session

import "quickhire-proctor/internal/interview"

// InFlightState состояние незавершенного интервью. Сохраняется после
// каждого значимого изменения и восстанавливается после пауз и повторных
// монтирований в рамках той же попытки.
type InFlightState struct {
	AttemptID          string               `json:"attempt_id"`
	CurrentQuestion    *interview.Question  `json:"current_question"`
	Questions          []interview.Question `json:"questions"`
	TotalQuestions     int                  `json:"total_questions"`
	QuestionIndex      int                  `json:"question_index"`
	Answers            []interview.Answer   `json:"answers"`
	SkippedQuestions   []int                `json:"skipped_questions"`
	IsFollowUpQuestion bool                 `json:"is_follow_up_question"`
	FollowUpCount      int                  `json:"follow_up_count"`
}

// API контракт внешнего сервиса вопросов. Генерация вопросов и оценка
// ответов — забота сервера, ядро только вызывает его.
type API interface {
	Start(req interview.StartRequest) (*interview.StartResponse, error)
	EvaluateAnswer(req interview.EvaluateRequest) (*interview.EvaluateResponse, error)
	ReportActivity(report interview.ActivityReport) error
	End(req interview.EndRequest) error
}

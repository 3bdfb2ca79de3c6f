package interview

// Question вопрос интервью
type Question struct {
	ID         string `json:"id,omitempty"`
	Question   string `json:"question"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Answer записанный ответ с оценкой
type Answer struct {
	Question       Question `json:"question"`
	Answer         string   `json:"answer"`
	Code           string   `json:"code"`
	Evaluation     string   `json:"evaluation"`
	QuestionNumber int      `json:"question_number"`
	IsFollowUp     bool     `json:"is_follow_up"`
}

// LogEntry запись журнала активности в формате сервера
type LogEntry struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// StartRequest запрос на инициализацию интервью
type StartRequest struct {
	InterviewCode string   `json:"interviewCode"`
	Skills        []string `json:"skills"`
}

// StartedInterview набор вопросов, выданный сервером
type StartedInterview struct {
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"totalQuestions"`
}

// StartResponse ответ на инициализацию
type StartResponse struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Interview StartedInterview `json:"interview"`
}

// EvaluateRequest запрос на оценку ответа
type EvaluateRequest struct {
	Answer        string   `json:"answer"`
	Question      Question `json:"question"`
	InterviewCode string   `json:"interviewCode"`
	Code          string   `json:"code"`
	Skipped       bool     `json:"skipped,omitempty"`
}

// EvaluateResponse ответ сервиса оценки. При IsComplete поле Evaluation
// содержит итоговую оценку всего интервью.
type EvaluateResponse struct {
	Evaluation   string    `json:"evaluation"`
	NextQuestion *Question `json:"nextQuestion,omitempty"`
	IsFollowUp   bool      `json:"isFollowUp,omitempty"`
	IsComplete   bool      `json:"isComplete,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// ActivityReport сводка подозрительной активности
type ActivityReport struct {
	InterviewCode        string `json:"interviewCode"`
	SuspiciousActivities int    `json:"suspiciousActivities"`
	AppSwitchCount       int    `json:"appSwitchCount"`
	ActivityLevel        string `json:"activityLevel"`
	Timestamp            string `json:"timestamp"`
}

// EndRequest финальная сводка интервью
type EndRequest struct {
	InterviewID            string     `json:"interviewId"`
	CandidateCode          string     `json:"candidateCode"`
	FinalEvaluation        string     `json:"finalEvaluation"`
	Answers                []Answer   `json:"answers"`
	SuspiciousActivityLogs []LogEntry `json:"suspiciousActivityLogs"`
	AppSwitchCount         int        `json:"appSwitchCount"`
}

// endResponse общий ответ сервера без полезной нагрузки
type endResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

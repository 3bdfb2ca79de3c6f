package interview

import (
	"fmt"
	"strings"
	"sync"
)

// mockTemplates заготовки вопросов тренировочного режима
var mockTemplates = []string{
	"Explain the core concepts of %s.",
	"What are the most common mistakes developers make with %s?",
	"Describe a project where you used %s and what you learned from it.",
	"How would you debug a performance problem in %s?",
	"Write a short function or query that demonstrates %s.",
}

// MockClient локальный сервис вопросов для тренировочного режима без
// сервера. Вопросы строятся из выбранных навыков, оценки шаблонные.
// Итоги тренировочных интервью на сервере не сохраняются.
type MockClient struct {
	total        int
	maxFollowups int

	mu        sync.Mutex
	questions []Question
	index     int
	followups int
}

// NewMockClient создает тренировочный сервис на total вопросов
func NewMockClient(total, maxFollowups int) *MockClient {
	return &MockClient{total: total, maxFollowups: maxFollowups}
}

// Start генерирует детерминированный набор вопросов из навыков
func (m *MockClient) Start(req StartRequest) (*StartResponse, error) {
	if len(req.Skills) == 0 {
		return nil, fmt.Errorf("не выбраны навыки для интервью")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions = m.questions[:0]
	m.index = 0
	m.followups = 0
	for i := 0; i < m.total; i++ {
		skill := req.Skills[i%len(req.Skills)]
		m.questions = append(m.questions, Question{
			ID:         fmt.Sprintf("mock-%d", i+1),
			Question:   fmt.Sprintf(mockTemplates[i%len(mockTemplates)], skill),
			Topic:      skill,
			Difficulty: "medium",
		})
	}

	return &StartResponse{
		Success: true,
		Interview: StartedInterview{
			Questions:      append([]Question(nil), m.questions...),
			TotalQuestions: m.total,
		},
	}, nil
}

// EvaluateAnswer выдает шаблонную оценку и следующий вопрос. Развернутый
// ответ получает один уточняющий вопрос, пока не исчерпан лимит.
func (m *MockClient) EvaluateAnswer(req EvaluateRequest) (*EvaluateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.questions) == 0 {
		return nil, fmt.Errorf("интервью не инициализировано")
	}

	evaluation := "Good answer, covers the main points."
	switch {
	case req.Skipped:
		evaluation = "Question skipped."
	case strings.TrimSpace(req.Code) != "":
		evaluation = "Solid solution, the code addresses the task."
	}

	if !req.Skipped && m.followups < m.maxFollowups && len(req.Answer) > 200 {
		m.followups++
		follow := Question{
			ID:       fmt.Sprintf("mock-followup-%d", m.followups),
			Question: "Can you elaborate on that with a concrete example?",
			Topic:    req.Question.Topic,
		}
		return &EvaluateResponse{Evaluation: evaluation, NextQuestion: &follow, IsFollowUp: true}, nil
	}

	m.followups = 0
	m.index++
	if m.index >= len(m.questions) {
		return &EvaluateResponse{
			Evaluation: "Mock interview complete. Overall: good grasp of the selected skills.",
			IsComplete: true,
		}, nil
	}

	next := m.questions[m.index]
	return &EvaluateResponse{Evaluation: evaluation, NextQuestion: &next}, nil
}

// ReportActivity тренировочный режим не отправляет телеметрию
func (m *MockClient) ReportActivity(ActivityReport) error {
	return nil
}

// End тренировочные интервью не сохраняются на сервере
func (m *MockClient) End(EndRequest) error {
	return nil
}

package session

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quickhire-proctor/internal/config"
	"quickhire-proctor/internal/interview"
	"quickhire-proctor/internal/metrics"
	"quickhire-proctor/internal/platform"
	"quickhire-proctor/internal/proctor"
	"quickhire-proctor/internal/storage"
)

var (
	// ErrNotCompliant действие запрошено вне полноэкранного режима
	ErrNotCompliant = errors.New("действие недоступно вне полноэкранного режима")
	// ErrNoAnswer нечего отправлять на оценку
	ErrNoAnswer = errors.New("нет ответа для отправки")
	// ErrComplete интервью уже завершено
	ErrComplete = errors.New("интервью уже завершено")
)

// Options параметры сессии интервью
type Options struct {
	InterviewCode string
	CandidateCode string
	Skills        []string

	// Results локальное хранилище итогов, nil отключает сохранение
	Results *storage.Service

	// Notify показывает пользователю уведомления охранника действий
	Notify proctor.NoticeFunc
}

// Controller оркестратор одной сессии интервью: владеет шлюзом, машиной
// паузы, двумя мониторами активности, счетчиками, охранником действий и
// хранилищем состояния. Внешний мир видит только методы действий и
// геттеры состояния.
type Controller struct {
	cfg     *config.Config
	plat    platform.Platform
	api     API
	metrics *metrics.Metrics
	results *storage.Service

	interviewCode string
	candidateCode string
	skills        []string

	gate         *proctor.Gate
	pauseCtl     *proctor.PauseController
	monitor      *proctor.Monitor
	pauseMonitor *proctor.Monitor
	counters     *proctor.CounterStore
	guard        *proctor.Guard
	states       *StateStore

	mu              sync.RWMutex
	state           *InFlightState
	isRecording     bool
	transcript      string
	codeText        string
	isComplete      bool
	finalEvaluation string
	done            chan struct{}
	started         bool
}

// NewController собирает все компоненты сессии, но ничего не запускает
func NewController(cfg *config.Config, plat platform.Platform, api API, m *metrics.Metrics, opts Options) *Controller {
	notify := opts.Notify
	if notify == nil {
		notify = func(message string) { log.Printf("💬 %s", message) }
	}

	c := &Controller{
		cfg:           cfg,
		plat:          plat,
		api:           api,
		metrics:       m,
		results:       opts.Results,
		interviewCode: opts.InterviewCode,
		candidateCode: opts.CandidateCode,
		skills:        opts.Skills,
		state:         &InFlightState{},
	}

	c.counters = proctor.NewCounterStore(plat.Storage(), opts.InterviewCode)
	c.counters.OnIncrement = m.IncrementViolationsRecorded
	c.states = NewStateStore(plat.Storage(), opts.InterviewCode)

	c.pauseCtl = proctor.NewPauseController(plat.Fullscreen(), cfg.FullscreenPoll(), c.handlePause, c.handleResume)
	c.gate = proctor.NewGate(plat.Fullscreen(), cfg.GateDebounce(), c.handleEntered)

	stateFn := c.Compliance
	c.monitor = proctor.NewMonitor("interview", plat, cfg, stateFn, proctor.StateCompliant, c.counters)
	c.pauseMonitor = proctor.NewMonitor("pause", plat, cfg, stateFn, proctor.StatePaused, c.counters)

	c.guard = proctor.NewGuard(stateFn, notify)
	c.guard.OnBlocked = func(string) { m.IncrementActionsBlocked() }

	return c
}

// Start восстанавливает незавершенную попытку или инициализирует новую,
// затем запускает все компоненты прокторинга
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.done = make(chan struct{})
	c.mu.Unlock()

	restored := c.states.Restore()
	if len(restored.Questions) > 0 {
		c.mu.Lock()
		c.state = restored
		c.mu.Unlock()
		// счетчики не сбрасываются: та же попытка, сверяемся с хранилищем
		counters := c.counters.Read()
		log.Printf("📋 восстановлена незавершенная сессия: вопрос %d из %d, нарушений %d",
			restored.QuestionIndex+1, restored.TotalQuestions, counters.SuspiciousActivityCount)
	} else {
		if err := c.initialize(); err != nil {
			c.mu.Lock()
			c.started = false
			close(c.done)
			c.mu.Unlock()
			return err
		}
	}

	c.pauseCtl.Start()
	c.monitor.Start()
	c.pauseMonitor.Start()
	c.guard.Attach(c.plat.Events())
	c.gate.Start()

	go c.syncLoop()

	return nil
}

// Close освобождает подписки, таймеры и опросы всех компонентов
func (c *Controller) Close() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.started = false
	close(c.done)
	c.mu.Unlock()

	c.gate.Stop()
	c.monitor.Stop()
	c.pauseMonitor.Stop()
	c.pauseCtl.Stop()
	c.guard.Detach()
}

// initialize новая попытка: запрос вопросов, чистое состояние, нулевые
// счетчики. Единственное место, где счетчики обнуляются.
func (c *Controller) initialize() error {
	if len(c.skills) == 0 {
		return fmt.Errorf("не выбраны навыки для интервью")
	}

	resp, err := c.api.Start(interview.StartRequest{
		InterviewCode: c.interviewCode,
		Skills:        c.skills,
	})
	c.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return fmt.Errorf("ошибка инициализации интервью: %w", err)
	}
	if len(resp.Interview.Questions) == 0 {
		return fmt.Errorf("сервис вопросов не вернул вопросы")
	}

	questions := resp.Interview.Questions
	total := resp.Interview.TotalQuestions
	if total == 0 {
		total = len(questions)
	}

	c.mu.Lock()
	c.state = &InFlightState{
		AttemptID:       uuid.New().String(),
		CurrentQuestion: &questions[0],
		Questions:       questions,
		TotalQuestions:  total,
	}
	c.transcript = ""
	c.codeText = ""
	c.isComplete = false
	c.finalEvaluation = ""
	c.mu.Unlock()

	c.states.Clear()
	c.counters.Reset()
	c.saveState()
	c.metrics.IncrementSessionsStarted()

	log.Printf("🚀 интервью инициализировано: %d вопросов, навыки %s", total, strings.Join(c.skills, ", "))
	return nil
}

// syncLoop периодическая сверка кэша счетчиков с хранилищем
func (c *Controller) syncLoop() {
	ticker := time.NewTicker(c.cfg.SyncInterval())
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.counters.Read()
		}
	}
}

func (c *Controller) handleEntered() {
	c.pauseCtl.MarkEntered()
	log.Printf("🎯 сессия в рабочем состоянии, вопросы разблокированы")
}

// handlePause снимок состояния перед экраном паузы. Запись ответа
// останавливается: диктовка вне полноэкранного режима не принимается.
func (c *Controller) handlePause() {
	c.mu.Lock()
	if c.isRecording {
		c.isRecording = false
		log.Printf("🎙️ запись остановлена из-за паузы")
	}
	c.mu.Unlock()

	c.saveState()
	c.metrics.IncrementSessionsPaused()
}

// handleResume восстановление после паузы: состояние и счетчики
// подтягиваются из хранилища, никогда не обнуляются
func (c *Controller) handleResume() {
	restored := c.states.Restore()
	c.mu.Lock()
	if len(restored.Questions) > 0 {
		c.state = restored
	}
	c.mu.Unlock()

	c.counters.Read()
	c.metrics.IncrementSessionsResumed()
}

// saveState сохраняет снимок состояния под блокировкой чтения
func (c *Controller) saveState() {
	c.mu.RLock()
	snapshot := *c.state
	c.mu.RUnlock()
	c.states.Save(&snapshot)
}

// RequestFullscreen запрашивает вход в полноэкранный режим через шлюз
func (c *Controller) RequestFullscreen() error {
	return c.gate.RequestEntry()
}

// ContinueWithoutFullscreen явный обход шлюза для платформ без
// полноэкранного режима
func (c *Controller) ContinueWithoutFullscreen() {
	c.gate.ContinueAnyway()
	c.pauseCtl.MarkEntered()
}

// FullscreenSupported поддерживает ли платформа полноэкранный режим
func (c *Controller) FullscreenSupported() bool {
	return c.gate.Supported()
}

// Compliance текущее состояние машины соответствия
func (c *Controller) Compliance() proctor.ComplianceState {
	return c.pauseCtl.State()
}

// StartRecording начинает запись ответа. Только в состоянии Compliant.
func (c *Controller) StartRecording() error {
	if !c.guard.Allow("record") {
		return ErrNotCompliant
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isComplete {
		return ErrComplete
	}
	if c.state.CurrentQuestion == nil {
		return fmt.Errorf("нет текущего вопроса")
	}
	c.isRecording = true
	c.transcript = ""
	return nil
}

// StopRecording завершает запись и отправляет распознанный текст на
// оценку. Пустая стенограмма при пустом коде — ошибка распознавания.
func (c *Controller) StopRecording(transcript string) error {
	if !c.guard.Allow("stop-record") {
		return ErrNotCompliant
	}

	c.mu.Lock()
	if !c.isRecording {
		c.mu.Unlock()
		return fmt.Errorf("запись не запущена")
	}
	c.isRecording = false
	codeText := c.codeText
	c.mu.Unlock()

	transcript = strings.TrimSpace(transcript)
	if transcript == "" && strings.TrimSpace(codeText) == "" {
		return fmt.Errorf("речь не распознана, попробуйте еще раз")
	}
	return c.submit(transcript, codeText, false)
}

// SetCode обновляет текст в редакторе кода. Сам по себе набор кода не
// влияет на ответ, поэтому не охраняется.
func (c *Controller) SetCode(code string) {
	c.mu.Lock()
	c.codeText = code
	c.mu.Unlock()
}

// SubmitCode отправляет код как ответ на текущий вопрос
func (c *Controller) SubmitCode(code string) error {
	if !c.guard.Allow("code-submit") {
		return ErrNotCompliant
	}

	c.mu.Lock()
	if c.isComplete {
		c.mu.Unlock()
		return ErrComplete
	}
	c.codeText = code
	transcript := c.transcript
	c.mu.Unlock()

	return c.submit(strings.TrimSpace(transcript), code, false)
}

// SkipQuestion пропускает текущий вопрос. Несохраненный ответ или код
// сперва отправляется как обычный ответ, чтобы работа не пропала.
func (c *Controller) SkipQuestion() error {
	if !c.guard.Allow("skip") {
		return ErrNotCompliant
	}

	c.mu.Lock()
	if c.isComplete {
		c.mu.Unlock()
		return ErrComplete
	}
	if c.state.CurrentQuestion == nil {
		c.mu.Unlock()
		return fmt.Errorf("нет текущего вопроса")
	}
	transcript := strings.TrimSpace(c.transcript)
	codeText := strings.TrimSpace(c.codeText)
	index := c.state.QuestionIndex
	c.mu.Unlock()

	if transcript != "" || codeText != "" {
		return c.submit(transcript, codeText, false)
	}

	c.mu.Lock()
	c.state.SkippedQuestions = append(c.state.SkippedQuestions, index)
	c.mu.Unlock()
	c.saveState()

	return c.submit("", "", true)
}

// submit отправляет ответ на оценку и продвигает интервью по ответу
// сервера: уточняющий вопрос не двигает индекс, обычный — двигает
func (c *Controller) submit(answerText, codeText string, skipped bool) error {
	// код без стенограммы сам становится ответом
	if answerText == "" && strings.TrimSpace(codeText) != "" {
		answerText = codeText
	}
	if answerText == "" && !skipped {
		return ErrNoAnswer
	}

	c.mu.RLock()
	question := c.state.CurrentQuestion
	c.mu.RUnlock()
	if question == nil {
		return fmt.Errorf("нет текущего вопроса")
	}

	resp, err := c.api.EvaluateAnswer(interview.EvaluateRequest{
		Answer:        answerText,
		Question:      *question,
		InterviewCode: c.interviewCode,
		Code:          codeText,
		Skipped:       skipped,
	})
	c.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return fmt.Errorf("ошибка оценки ответа: %w", err)
	}

	if resp.IsComplete {
		c.complete(resp.Evaluation)
		return nil
	}

	c.mu.Lock()
	state := c.state
	state.Answers = append(state.Answers, interview.Answer{
		Question:       *question,
		Answer:         answerText,
		Code:           codeText,
		Evaluation:     resp.Evaluation,
		QuestionNumber: state.QuestionIndex + 1,
		IsFollowUp:     state.IsFollowUpQuestion,
	})
	if resp.NextQuestion != nil {
		if resp.IsFollowUp {
			state.IsFollowUpQuestion = true
			state.FollowUpCount++
		} else {
			state.IsFollowUpQuestion = false
			state.FollowUpCount = 0
			state.QuestionIndex++
		}
		state.CurrentQuestion = resp.NextQuestion
	}
	c.transcript = ""
	c.codeText = ""
	c.mu.Unlock()

	c.saveState()
	return nil
}

// complete финал интервью: сводка уходит на сервер и в локальное
// хранилище, состояние уничтожается. Недоступный сервер не блокирует
// завершение для пользователя.
func (c *Controller) complete(finalEvaluation string) {
	c.mu.Lock()
	c.isComplete = true
	c.finalEvaluation = finalEvaluation
	answers := append([]interview.Answer(nil), c.state.Answers...)
	attemptID := c.state.AttemptID
	c.mu.Unlock()

	counters := c.counters.Read()
	events := c.counters.Log()
	logEntries := make([]interview.LogEntry, 0, len(events))
	for _, event := range events {
		logEntries = append(logEntries, interview.LogEntry{
			Time:    event.Time.Format(time.RFC3339),
			Message: event.Message,
		})
	}

	if attemptID == "" || c.candidateCode == "" {
		log.Printf("⚠️ нет идентификаторов попытки, итоги не отправлены (attempt=%q, candidate=%q)",
			attemptID, c.candidateCode)
	} else {
		err := c.api.End(interview.EndRequest{
			InterviewID:            attemptID,
			CandidateCode:          c.candidateCode,
			FinalEvaluation:        finalEvaluation,
			Answers:                answers,
			SuspiciousActivityLogs: logEntries,
			AppSwitchCount:         counters.AppSwitchCount,
		})
		c.metrics.IncrementAPICall(err == nil)
		if err != nil {
			log.Printf("⚠️ не удалось сохранить итоги на сервере: %v", err)
		}
	}

	if c.results != nil && attemptID != "" {
		result := &storage.InterviewResult{
			InterviewID:             attemptID,
			CandidateCode:           c.candidateCode,
			Timestamp:               time.Now().Format(time.RFC3339),
			FinalEvaluation:         finalEvaluation,
			Answers:                 answers,
			ActivityLog:             events,
			SuspiciousActivityCount: counters.SuspiciousActivityCount,
			AppSwitchCount:          counters.AppSwitchCount,
		}
		if err := c.results.SaveResult(result); err != nil {
			log.Printf("⚠️ не удалось сохранить итоги локально: %v", err)
		}
	}

	c.states.Clear()
	c.metrics.IncrementSessionsCompleted()
	log.Printf("🎉 интервью завершено: ответов %d, нарушений %d", len(answers), counters.SuspiciousActivityCount)
}

// ReportActivity отправляет сводку активности на сервер
func (c *Controller) ReportActivity() error {
	counters := c.counters.Read()
	events := c.counters.Log()

	err := c.api.ReportActivity(interview.ActivityReport{
		InterviewCode:        c.interviewCode,
		SuspiciousActivities: len(events),
		AppSwitchCount:       counters.AppSwitchCount,
		ActivityLevel:        ActivityLevel(len(events)),
		Timestamp:            time.Now().Format(time.RFC3339),
	})
	c.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return fmt.Errorf("ошибка отправки отчета активности: %w", err)
	}
	return nil
}

// ActivityLevel уровень активности по числу записей журнала
func ActivityLevel(count int) string {
	switch {
	case count <= 0:
		return "low"
	case count <= 3:
		return "medium"
	default:
		return "high"
	}
}

// Counters текущие счетчики активности из хранилища
func (c *Controller) Counters() proctor.ActivityCounters {
	return c.counters.Read()
}

// EventLog копия журнала подозрительной активности
func (c *Controller) EventLog() []proctor.SuspiciousEvent {
	return c.counters.Log()
}

// CurrentQuestion копия текущего вопроса, nil если вопросов нет
func (c *Controller) CurrentQuestion() *interview.Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.CurrentQuestion == nil {
		return nil
	}
	question := *c.state.CurrentQuestion
	return &question
}

// Progress номер текущего вопроса и общее количество
func (c *Controller) Progress() (current, total int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.QuestionIndex + 1, c.state.TotalQuestions
}

// Answers копия записанных ответов
func (c *Controller) Answers() []interview.Answer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]interview.Answer(nil), c.state.Answers...)
}

// IsRecording идет ли запись ответа
func (c *Controller) IsRecording() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isRecording
}

// IsComplete завершено ли интервью
func (c *Controller) IsComplete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isComplete
}

// FinalEvaluation итоговая оценка, пустая до завершения
func (c *Controller) FinalEvaluation() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.finalEvaluation
}

// PauseDuration сколько длится текущая пауза
func (c *Controller) PauseDuration() time.Duration {
	return c.pauseCtl.PauseDuration()
}

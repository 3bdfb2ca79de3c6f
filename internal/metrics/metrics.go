package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu                 sync.RWMutex
	SessionsStarted    int64
	SessionsCompleted  int64
	SessionsPaused     int64
	SessionsResumed    int64
	ViolationsRecorded int64
	ActionsBlocked     int64
	APICallsTotal      int64
	APICallsSuccessful int64
	LastUpdateTime     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsPaused() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsPaused++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsResumed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsResumed++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementViolationsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ViolationsRecorded++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementActionsBlocked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ActionsBlocked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if success {
		m.APICallsSuccessful++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		SessionsStarted:    m.SessionsStarted,
		SessionsCompleted:  m.SessionsCompleted,
		SessionsPaused:     m.SessionsPaused,
		SessionsResumed:    m.SessionsResumed,
		ViolationsRecorded: m.ViolationsRecorded,
		ActionsBlocked:     m.ActionsBlocked,
		APICallsTotal:      m.APICallsTotal,
		APICallsSuccessful: m.APICallsSuccessful,
		LastUpdateTime:     m.LastUpdateTime,
	}
}

package proctor

import (
	"log"
	"sync"
	"time"

	"quickhire-proctor/internal/config"
	"quickhire-proctor/internal/platform"
)

// Monitor классифицирует сигналы платформы в подозрительные события.
// Одна реализация обслуживает и основной экран, и экран паузы: экземпляр
// параметризуется состоянием activeWhen, в котором классификация активна.
// Оба экземпляра пишут в общий CounterStore.
//
// Правило одного инцидента: флаг cooldown подавляет повторные срабатывания
// в течение короткого окна, а защелка потери фокуса не дает каскаду
// blur/focuschange/visibilitychange от одного физического действия
// увеличить счетчики больше одного раза. Защелка сбрасывается при
// возврате фокуса или видимости.
type Monitor struct {
	label      string
	plat       platform.Platform
	cfg        *config.Config
	state      StateFunc
	activeWhen ComplianceState
	counters   *CounterStore

	mu            sync.Mutex
	cooldown      bool
	latched       bool
	keyTimes      []time.Time
	lastActivity  time.Time
	cooldownTimer *time.Timer
	unsubs        []func()
	ticker        *time.Ticker
	done          chan struct{}
	started       bool
}

// NewMonitor создает монитор. activeWhen — состояние, в котором сигналы
// считаются подозрительными (StateCompliant для основного экрана,
// StatePaused для экрана паузы).
func NewMonitor(label string, plat platform.Platform, cfg *config.Config, state StateFunc, activeWhen ComplianceState, counters *CounterStore) *Monitor {
	return &Monitor{
		label:      label,
		plat:       plat,
		cfg:        cfg,
		state:      state,
		activeWhen: activeWhen,
		counters:   counters,
	}
}

// Start подписывает обработчики и запускает проверку бездействия
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.lastActivity = time.Now()
	m.done = make(chan struct{})
	m.ticker = time.NewTicker(m.cfg.ActivityCheck())
	m.mu.Unlock()

	ev := m.plat.Events()
	subscribe := func(kind platform.SignalKind, fn platform.Listener) {
		unsub := ev.Subscribe(kind, m.guarded(kind, fn))
		m.mu.Lock()
		m.unsubs = append(m.unsubs, unsub)
		m.mu.Unlock()
	}

	subscribe(platform.SignalVisibility, m.handleVisibility)
	subscribe(platform.SignalBlur, m.handleBlur)
	subscribe(platform.SignalFocusChange, m.handleFocusChange)
	subscribe(platform.SignalFocus, m.handleFocus)
	subscribe(platform.SignalResize, m.handleResize)
	subscribe(platform.SignalClipboard, m.handleClipboard)
	subscribe(platform.SignalSelection, m.handleSelection)
	subscribe(platform.SignalContextMenu, m.handleContextMenu)
	subscribe(platform.SignalKeyDown, m.handleKeyDown)
	subscribe(platform.SignalMouseMove, m.handleMouseMove)

	go func() {
		for {
			select {
			case <-m.done:
				return
			case <-m.ticker.C:
				m.checkInactivity()
			}
		}
	}()
}

// Stop освобождает все подписки и таймеры. Обязателен при размонтировании:
// протекшие обработчики удваивают счет после повторного монтирования.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	m.started = false
	unsubs := m.unsubs
	m.unsubs = nil
	m.ticker.Stop()
	close(m.done)
	if m.cooldownTimer != nil {
		m.cooldownTimer.Stop()
		m.cooldownTimer = nil
	}
	m.cooldown = false
	m.latched = false
	m.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// guarded изолирует обработчик: паника в одном классификаторе не должна
// останавливать остальные
func (m *Monitor) guarded(kind platform.SignalKind, fn platform.Listener) platform.Listener {
	return func(sig platform.Signal) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️ [%s] паника в обработчике %s: %v", m.label, kind, r)
			}
		}()
		fn(sig)
	}
}

func (m *Monitor) active() bool {
	return m.state() == m.activeWhen
}

func (m *Monitor) handleVisibility(sig platform.Signal) {
	if sig.Hidden && m.active() {
		m.recordFocusLoss("Tab switch detected via visibilitychange (document.hidden)", SourceVisibility)
		return
	}
	if !sig.Hidden {
		m.regained()
	}
}

func (m *Monitor) handleBlur(sig platform.Signal) {
	if m.active() && !sig.HasFocus {
		m.recordFocusLoss("App switch detected via blur event", SourceBlur)
	}
}

func (m *Monitor) handleFocusChange(sig platform.Signal) {
	if m.active() && !sig.HasFocus {
		m.recordFocusLoss("App switch detected via focus change (window lost focus)", SourceFocus)
		return
	}
	if sig.HasFocus {
		m.regained()
	}
}

func (m *Monitor) handleFocus(platform.Signal) {
	m.regained()
}

func (m *Monitor) handleResize(platform.Signal) {
	if m.active() {
		m.record("Window state change detected (possible app switch)", SourceResize)
	}
}

func (m *Monitor) handleClipboard(platform.Signal) {
	if m.active() {
		m.record("Clipboard change detected (possible app switch)", SourceClipboard)
	}
}

func (m *Monitor) handleSelection(sig platform.Signal) {
	if m.active() && !sig.SelectionEmpty {
		m.record("Selection change detected (possible app switch)", SourceSelection)
	}
}

func (m *Monitor) handleContextMenu(platform.Signal) {
	if m.active() {
		m.record("Context menu opened (possible app switch)", SourceContextMenu)
	}
}

// handleKeyDown считает клавиши в скользящем окне. Обычный набор текста
// не учитывается, фиксируется только всплеск выше порога.
func (m *Monitor) handleKeyDown(sig platform.Signal) {
	m.touchActivity()

	m.mu.Lock()
	now := sig.Time
	if now.IsZero() {
		now = time.Now()
	}
	window := m.cfg.KeyboardBurstWindow()
	kept := m.keyTimes[:0]
	for _, t := range m.keyTimes {
		if now.Sub(t) < window {
			kept = append(kept, t)
		}
	}
	m.keyTimes = append(kept, now)
	burst := len(m.keyTimes) > m.cfg.Proctor.KeyboardBurstCount
	if burst {
		m.keyTimes = m.keyTimes[:0]
	}
	m.mu.Unlock()

	if burst && m.active() {
		m.record("High keyboard activity detected", SourceKeyboard)
	}
}

func (m *Monitor) handleMouseMove(platform.Signal) {
	m.touchActivity()
}

func (m *Monitor) checkInactivity() {
	m.mu.Lock()
	idle := time.Since(m.lastActivity)
	m.mu.Unlock()

	if idle > m.cfg.InactivityTimeout() && m.active() && !m.plat.HasFocus() {
		m.recordFocusLoss("Extended inactivity without focus", SourceInactivity)
	}
}

func (m *Monitor) touchActivity() {
	m.mu.Lock()
	m.lastActivity = time.Now()
	m.mu.Unlock()
}

// regained сбрасывает защелку потери фокуса
func (m *Monitor) regained() {
	m.mu.Lock()
	m.latched = false
	m.lastActivity = time.Now()
	m.mu.Unlock()
}

// record учитывает инцидент с защитой только окном cooldown
func (m *Monitor) record(message string, source SourceKind) {
	m.mu.Lock()
	if m.cooldown {
		m.mu.Unlock()
		return
	}
	m.cooldown = true
	m.mu.Unlock()

	m.increment(message, source)
}

// recordFocusLoss учитывает инцидент семейства потери фокуса: помимо
// cooldown взводится защелка до возврата фокуса, чтобы каскад
// обработчиков одного действия сработал ровно один раз
func (m *Monitor) recordFocusLoss(message string, source SourceKind) {
	m.mu.Lock()
	if m.cooldown || m.latched {
		m.mu.Unlock()
		return
	}
	m.cooldown = true
	m.latched = true
	m.mu.Unlock()

	m.increment(message, source)
}

func (m *Monitor) increment(message string, source SourceKind) {
	log.Printf("🚨 [%s] %s", m.label, message)
	m.counters.Increment(message, source)

	m.mu.Lock()
	if m.started {
		m.cooldownTimer = time.AfterFunc(m.cfg.Cooldown(), func() {
			m.mu.Lock()
			m.cooldown = false
			m.mu.Unlock()
		})
	} else {
		m.cooldown = false
	}
	m.mu.Unlock()
}

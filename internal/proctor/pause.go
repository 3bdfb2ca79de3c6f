package proctor

import (
	"log"
	"sync"
	"time"

	"quickhire-proctor/internal/platform"
)

// PauseController машина состояний COMPLIANT ⇄ PAUSED, управляемая
// присутствием полноэкранного режима. Помимо событийного пути есть
// резервный периодический опрос на случай пропущенного уведомления —
// это страховка, а не основной механизм.
type PauseController struct {
	fs       platform.Fullscreen
	poll     time.Duration
	onPause  func()
	onResume func()

	mu       sync.Mutex
	state    ComplianceState
	pausedAt time.Time
	unsub    func()
	done     chan struct{}
	started  bool
}

// NewPauseController создает контроллер в состоянии NotEntered
func NewPauseController(fs platform.Fullscreen, poll time.Duration, onPause, onResume func()) *PauseController {
	return &PauseController{
		fs:       fs,
		poll:     poll,
		onPause:  onPause,
		onResume: onResume,
		state:    StateNotEntered,
	}
}

// Start подписывается на смену полноэкранного режима и запускает
// резервный опрос
func (p *PauseController) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.done = make(chan struct{})
	p.mu.Unlock()

	p.unsub = p.fs.OnChange(p.handleChange)

	go func() {
		ticker := time.NewTicker(p.poll)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				if p.State() == StatePaused && p.fs.Active() {
					log.Printf("🔄 резервный опрос: полноэкранный режим обнаружен, возобновляем")
					p.resume()
				}
			}
		}
	}()
}

// Stop освобождает подписку и останавливает опрос
func (p *PauseController) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	unsub := p.unsub
	p.unsub = nil
	close(p.done)
	p.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// MarkEntered переводит NotEntered → Compliant после подтверждения шлюза
func (p *PauseController) MarkEntered() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateNotEntered {
		p.state = StateCompliant
	}
}

// State возвращает текущее состояние
func (p *PauseController) State() ComplianceState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// PauseDuration сколько длится текущая пауза, ноль вне паузы
func (p *PauseController) PauseDuration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePaused {
		return 0
	}
	return time.Since(p.pausedAt)
}

func (p *PauseController) handleChange(active bool) {
	if active {
		p.resume()
	} else {
		p.pause()
	}
}

// pause переход Compliant → Paused. Повторные уведомления о выходе
// в состоянии Paused — no-op.
func (p *PauseController) pause() {
	p.mu.Lock()
	if p.state != StateCompliant {
		p.mu.Unlock()
		return
	}
	p.state = StatePaused
	p.pausedAt = time.Now()
	p.mu.Unlock()

	log.Printf("⏸️ полноэкранный режим потерян, интервью приостановлено")
	if p.onPause != nil {
		p.onPause()
	}
}

// resume переход Paused → Compliant. Повторные уведомления о входе
// в состоянии Compliant — no-op.
func (p *PauseController) resume() {
	p.mu.Lock()
	if p.state != StatePaused {
		p.mu.Unlock()
		return
	}
	p.state = StateCompliant
	p.mu.Unlock()

	log.Printf("▶️ полноэкранный режим восстановлен, интервью продолжается")
	if p.onResume != nil {
		p.onResume()
	}
}

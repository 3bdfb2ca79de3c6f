package proctor

import (
	"fmt"
	"log"
	"sync"
	"time"

	"quickhire-proctor/internal/platform"
)

// Gate начальный шлюз: блокирует интервью, пока не подтвержден вход в
// полноэкранный режим. Подтверждение приходит по уведомлению о смене
// режима с небольшой задержкой, чтобы не гоняться с анимацией браузера.
type Gate struct {
	fs        platform.Fullscreen
	debounce  time.Duration
	onEntered func()

	mu      sync.Mutex
	entered bool
	pending *time.Timer
	unsub   func()
	started bool
}

// NewGate создает шлюз. onEntered вызывается один раз после подтверждения.
func NewGate(fs platform.Fullscreen, debounce time.Duration, onEntered func()) *Gate {
	return &Gate{fs: fs, debounce: debounce, onEntered: onEntered}
}

// Start начинает слушать смену полноэкранного режима
func (g *Gate) Start() {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return
	}
	g.started = true
	g.mu.Unlock()

	g.unsub = g.fs.OnChange(g.handleChange)

	// Повторное монтирование: режим мог быть активен еще до подписки
	if g.fs.Active() {
		g.handleChange(true)
	}
}

// Stop освобождает подписку и таймер задержки
func (g *Gate) Stop() {
	g.mu.Lock()
	if !g.started {
		g.mu.Unlock()
		return
	}
	g.started = false
	unsub := g.unsub
	g.unsub = nil
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// RequestEntry запрашивает вход в полноэкранный режим. Запрос в уже
// активном режиме — no-op. Ошибка (нет жеста пользователя, запрет
// платформы) не фатальна: вызывающий снова показывает инструкции.
func (g *Gate) RequestEntry() error {
	if g.fs.Active() {
		return nil
	}
	if !g.fs.Supported() {
		return fmt.Errorf("полноэкранный режим не поддерживается платформой")
	}
	if err := g.fs.Request(); err != nil {
		log.Printf("⚠️ ошибка входа в полноэкранный режим: %v", err)
		return fmt.Errorf("ошибка входа в полноэкранный режим: %w", err)
	}
	return nil
}

// ContinueAnyway явный обход шлюза, когда платформа не поддерживает
// полноэкранный режим. Прокторинг деградирует до "лучших усилий",
// это осознанный запасной выход, а не тихий сбой.
func (g *Gate) ContinueAnyway() {
	log.Printf("⚠️ полноэкранный режим недоступен, интервью продолжается без гарантии")
	g.fire()
}

// Supported сообщает, поддерживает ли платформа полноэкранный режим
func (g *Gate) Supported() bool {
	return g.fs.Supported()
}

// Entered подтвержден ли вход
func (g *Gate) Entered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.entered
}

func (g *Gate) handleChange(active bool) {
	g.mu.Lock()
	if !active {
		if g.pending != nil {
			g.pending.Stop()
			g.pending = nil
		}
		g.mu.Unlock()
		return
	}
	if g.entered || g.pending != nil {
		g.mu.Unlock()
		return
	}
	g.pending = time.AfterFunc(g.debounce, g.fire)
	g.mu.Unlock()
}

func (g *Gate) fire() {
	g.mu.Lock()
	if g.entered {
		g.mu.Unlock()
		return
	}
	g.entered = true
	g.pending = nil
	g.mu.Unlock()

	log.Printf("✅ полноэкранный режим подтвержден, интервью разблокировано")
	g.onEntered()
}

package proctor

import (
	"sync"

	"quickhire-proctor/internal/platform"
)

// NoticeFunc показывает пользователю временное уведомление
type NoticeFunc func(message string)

// suspiciousShortcuts комбинации клавиш, подавляемые во время интервью
// (инструменты разработчика, перезагрузка, переключение вкладок)
var suspiciousShortcuts = map[string]bool{
	"F12":          true,
	"Ctrl+Shift+I": true,
	"Ctrl+Shift+C": true,
	"Ctrl+U":       true,
	"Ctrl+Shift+J": true,
	"F5":           true,
	"Ctrl+R":       true,
	"Ctrl+Shift+R": true,
	"Alt+Tab":      true,
	"Ctrl+Tab":     true,
	"Ctrl+W":       true,
	"Ctrl+T":       true,
	"Ctrl+N":       true,
}

// Guard перехватывает действия пользователя. Два независимых правила:
//
//   - действия, влияющие на ответ (запись, пропуск, отправка кода),
//     разрешены только в состоянии Compliant;
//   - копирование и выделение текста, наоборот, подавляются именно
//     в состоянии Compliant, чтобы исключить утечку ответов.
//
// Подавление не трогает счетчики подозрительной активности.
type Guard struct {
	state  StateFunc
	notify NoticeFunc

	// OnBlocked вызывается при каждом заблокированном действии
	OnBlocked func(action string)

	mu     sync.Mutex
	unsubs []func()
}

// NewGuard создает охранника действий
func NewGuard(state StateFunc, notify NoticeFunc) *Guard {
	return &Guard{state: state, notify: notify}
}

// Allow проверяет действие, влияющее на ответ. В несоответствующем
// состоянии действие подавляется с уведомлением, мутаций нет.
func (g *Guard) Allow(action string) bool {
	if g.state() == StateCompliant {
		return true
	}
	g.notify("Fullscreen first!")
	g.blocked(action)
	return false
}

// AllowClipboard проверяет копирование/вырезание/вставку: запрещены
// именно во время интервью (инвертированное правило)
func (g *Guard) AllowClipboard(action string) bool {
	if g.state() != StateCompliant {
		return true
	}
	g.notify("Copy is disabled during the interview.")
	g.blocked(action)
	return false
}

// Attach подписывает пассивные перехватчики: копирование, выделение
// текста и подозрительные комбинации клавиш
func (g *Guard) Attach(ev platform.Events) {
	clipboard := func(sig platform.Signal) {
		g.AllowClipboard(string(sig.Kind))
	}
	g.addUnsub(ev.Subscribe(platform.SignalCopy, clipboard))
	g.addUnsub(ev.Subscribe(platform.SignalCut, clipboard))
	g.addUnsub(ev.Subscribe(platform.SignalPaste, clipboard))

	g.addUnsub(ev.Subscribe(platform.SignalSelectStart, func(platform.Signal) {
		if g.state() == StateCompliant {
			g.notify("You can't select text during the interview.")
			g.blocked("selectstart")
		}
	}))

	g.addUnsub(ev.Subscribe(platform.SignalKeyDown, func(sig platform.Signal) {
		if g.state() == StateCompliant && suspiciousShortcuts[sig.Key] {
			g.notify("This shortcut is disabled during the interview.")
			g.blocked("shortcut:" + sig.Key)
		}
	}))
}

// Detach освобождает пассивные перехватчики
func (g *Guard) Detach() {
	g.mu.Lock()
	unsubs := g.unsubs
	g.unsubs = nil
	g.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

func (g *Guard) addUnsub(unsub func()) {
	g.mu.Lock()
	g.unsubs = append(g.unsubs, unsub)
	g.mu.Unlock()
}

func (g *Guard) blocked(action string) {
	if g.OnBlocked != nil {
		g.OnBlocked(action)
	}
}

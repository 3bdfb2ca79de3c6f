package platform

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Sim имитация браузерной платформы для демо-режима и тестов.
// Диспетчеризация синхронная, как в цикле событий браузера: обработчики
// выполняются по одному, паника в одном не останавливает остальные.
type Sim struct {
	mu          sync.Mutex
	nextID      int
	listeners   map[SignalKind]map[int]Listener
	fsListeners map[int]func(bool)
	fsActive    bool
	fsSupported bool
	fsDenied    bool
	hidden      bool
	hasFocus    bool
	storage     Storage
}

// NewSim создает платформу с поддержкой полноэкранного режима и фокусом
func NewSim(storage Storage) *Sim {
	return &Sim{
		listeners:   make(map[SignalKind]map[int]Listener),
		fsListeners: make(map[int]func(bool)),
		fsSupported: true,
		hasFocus:    true,
		storage:     storage,
	}
}

func (s *Sim) Events() Events         { return s }
func (s *Sim) Fullscreen() Fullscreen { return s }
func (s *Sim) Storage() Storage       { return s.storage }

func (s *Sim) HasFocus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasFocus
}

func (s *Sim) Hidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

// Subscribe подписывает обработчик на сигнал
func (s *Sim) Subscribe(kind SignalKind, fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	if s.listeners[kind] == nil {
		s.listeners[kind] = make(map[int]Listener)
	}
	s.listeners[kind][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners[kind], id)
	}
}

func (s *Sim) Supported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsSupported
}

func (s *Sim) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsActive
}

// Request запрашивает полноэкранный режим. Повторный запрос в активном
// режиме — no-op, как и в браузере.
func (s *Sim) Request() error {
	s.mu.Lock()
	if !s.fsSupported {
		s.mu.Unlock()
		return fmt.Errorf("полноэкранный режим не поддерживается")
	}
	if s.fsDenied {
		s.mu.Unlock()
		return fmt.Errorf("запрос полноэкранного режима отклонен")
	}
	if s.fsActive {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	s.EnterFullscreen()
	return nil
}

func (s *Sim) Exit() error {
	s.ExitFullscreen()
	return nil
}

// OnChange подписывает обработчик смены полноэкранного режима
func (s *Sim) OnChange(fn func(active bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.fsListeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fsListeners, id)
	}
}

// Управление сценарием

// SetSupported переключает поддержку полноэкранного режима
func (s *Sim) SetSupported(supported bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fsSupported = supported
}

// SetDenied заставляет Request возвращать ошибку (нет жеста пользователя)
func (s *Sim) SetDenied(denied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fsDenied = denied
}

// EnterFullscreen переводит платформу в полноэкранный режим
func (s *Sim) EnterFullscreen() {
	s.setFullscreen(true)
}

// ExitFullscreen выводит платформу из полноэкранного режима
func (s *Sim) ExitFullscreen() {
	s.setFullscreen(false)
}

func (s *Sim) setFullscreen(active bool) {
	s.mu.Lock()
	s.fsActive = active
	fns := make([]func(bool), 0, len(s.fsListeners))
	for _, fn := range s.fsListeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		runGuarded(func() { fn(active) })
	}
}

// NotifyFullscreenChange рассылает уведомление без смены состояния.
// Нужно для проверки идемпотентности повторных уведомлений.
func (s *Sim) NotifyFullscreenChange() {
	s.mu.Lock()
	active := s.fsActive
	fns := make([]func(bool), 0, len(s.fsListeners))
	for _, fn := range s.fsListeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		runGuarded(func() { fn(active) })
	}
}

// Hide скрывает документ (переключение вкладки)
func (s *Sim) Hide() {
	s.mu.Lock()
	s.hidden = true
	s.hasFocus = false
	s.mu.Unlock()
	s.dispatch(Signal{Kind: SignalVisibility})
}

// Show возвращает документ на экран
func (s *Sim) Show() {
	s.mu.Lock()
	s.hidden = false
	s.hasFocus = true
	s.mu.Unlock()
	s.dispatch(Signal{Kind: SignalVisibility})
	s.dispatch(Signal{Kind: SignalFocus})
}

// LoseFocus убирает фокус с окна. Как и в браузере, одно физическое
// действие порождает каскад из blur и focuschange.
func (s *Sim) LoseFocus() {
	s.mu.Lock()
	s.hasFocus = false
	s.mu.Unlock()
	s.dispatch(Signal{Kind: SignalBlur})
	s.dispatch(Signal{Kind: SignalFocusChange})
}

// GainFocus возвращает фокус окну
func (s *Sim) GainFocus() {
	s.mu.Lock()
	s.hasFocus = true
	s.mu.Unlock()
	s.dispatch(Signal{Kind: SignalFocus})
	s.dispatch(Signal{Kind: SignalFocusChange})
}

// PressKey нажатие клавиши или комбинации, например "a" или "Ctrl+W"
func (s *Sim) PressKey(key string) {
	s.dispatch(Signal{Kind: SignalKeyDown, Key: key})
}

// MoveMouse движение мыши в пределах окна
func (s *Sim) MoveMouse() {
	s.dispatch(Signal{Kind: SignalMouseMove})
}

// ChangeClipboard изменение буфера обмена
func (s *Sim) ChangeClipboard() {
	s.dispatch(Signal{Kind: SignalClipboard})
}

// Resize изменение размера окна
func (s *Sim) Resize() {
	s.dispatch(Signal{Kind: SignalResize})
}

// OpenContextMenu открытие контекстного меню
func (s *Sim) OpenContextMenu() {
	s.dispatch(Signal{Kind: SignalContextMenu})
}

// ChangeSelection изменение выделения текста
func (s *Sim) ChangeSelection(empty bool) {
	s.dispatch(Signal{Kind: SignalSelection, SelectionEmpty: empty})
}

// Copy попытка копирования
func (s *Sim) Copy() { s.dispatch(Signal{Kind: SignalCopy}) }

// Cut попытка вырезания
func (s *Sim) Cut() { s.dispatch(Signal{Kind: SignalCut}) }

// Paste попытка вставки
func (s *Sim) Paste() { s.dispatch(Signal{Kind: SignalPaste}) }

// StartSelection попытка начать выделение текста
func (s *Sim) StartSelection() { s.dispatch(Signal{Kind: SignalSelectStart}) }

func (s *Sim) dispatch(sig Signal) {
	s.mu.Lock()
	sig.Time = time.Now()
	sig.Hidden = s.hidden
	sig.HasFocus = s.hasFocus
	fns := make([]Listener, 0, len(s.listeners[sig.Kind]))
	for _, fn := range s.listeners[sig.Kind] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		f := fn
		runGuarded(func() { f(sig) })
	}
}

func runGuarded(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ паника в обработчике сигнала: %v", r)
		}
	}()
	fn()
}

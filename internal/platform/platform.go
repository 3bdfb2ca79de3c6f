package platform

// Events источник сигналов браузера. Подписка возвращает функцию отписки:
// не освобожденные подписки приводят к двойному учету после повторного
// монтирования, это ошибка корректности, а не только утечка.
type Events interface {
	Subscribe(kind SignalKind, fn Listener) (unsubscribe func())
}

// Fullscreen управление полноэкранным режимом
type Fullscreen interface {
	Supported() bool
	Active() bool
	Request() error
	Exit() error
	OnChange(fn func(active bool)) (unsubscribe func())
}

// Storage хранилище ключ-значение в рамках сессии одной вкладки
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Platform весь браузерный контекст, который потребляет ядро
type Platform interface {
	Events() Events
	Fullscreen() Fullscreen
	Storage() Storage
	HasFocus() bool
	Hidden() bool
}

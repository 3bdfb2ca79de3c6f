package proctor

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"quickhire-proctor/internal/platform"
)

// CounterStore долговременные счетчики активности. Хранилище является
// источником истины: каждое чтение сверяется с ним, каждая запись сразу
// попадает в него. Счетчики переживают паузы и повторные монтирования,
// обнуляются только при инициализации новой попытки.
type CounterStore struct {
	mu     sync.Mutex
	store  platform.Storage
	code   string
	cached ActivityCounters

	// OnIncrement вызывается после каждого успешного инкремента
	OnIncrement func()
}

// NewCounterStore создает хранилище счетчиков для попытки code
func NewCounterStore(store platform.Storage, code string) *CounterStore {
	c := &CounterStore{store: store, code: code}
	c.cached = c.Read()
	return c
}

func (c *CounterStore) suspiciousKey() string {
	return "pauseSuspiciousActivityCount_" + c.code
}

func (c *CounterStore) appSwitchKey() string {
	return "pauseAppSwitchCount_" + c.code
}

func (c *CounterStore) logKey() string {
	return "suspiciousActivityLogs_" + c.code
}

// Increment атомарно увеличивает оба счетчика на 1 и дописывает одну
// запись в журнал. Три эффекта — одна транзакция: счетчики и журнал
// не должны расходиться.
func (c *CounterStore) Increment(message string, source SourceKind) {
	c.mu.Lock()

	counters := c.load()
	counters.SuspiciousActivityCount++
	counters.AppSwitchCount++

	log := c.loadLog()
	log = append(log, SuspiciousEvent{
		Time:    time.Now(),
		Message: message,
		Source:  source,
	})

	c.store.Set(c.suspiciousKey(), strconv.Itoa(counters.SuspiciousActivityCount))
	c.store.Set(c.appSwitchKey(), strconv.Itoa(counters.AppSwitchCount))
	if data, err := json.Marshal(log); err == nil {
		c.store.Set(c.logKey(), string(data))
	}
	c.cached = counters
	c.mu.Unlock()

	if c.OnIncrement != nil {
		c.OnIncrement()
	}
}

// Read возвращает счетчики из хранилища и подтягивает кэш к ним
func (c *CounterStore) Read() ActivityCounters {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = c.load()
	return c.cached
}

// Cached возвращает последнее известное значение без обращения к хранилищу
func (c *CounterStore) Cached() ActivityCounters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

// Log возвращает копию журнала в хронологическом порядке
func (c *CounterStore) Log() []SuspiciousEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLog()
}

// Reset обнуляет счетчики и очищает журнал. Вызывается ровно один раз,
// при старте новой попытки. Никогда — при паузе или возобновлении.
func (c *CounterStore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Set(c.suspiciousKey(), "0")
	c.store.Set(c.appSwitchKey(), "0")
	c.store.Set(c.logKey(), "[]")
	c.cached = ActivityCounters{}
}

// load читает счетчики. Поврежденные и отсутствующие значения
// трактуются как ноль, ошибок наружу нет.
func (c *CounterStore) load() ActivityCounters {
	var counters ActivityCounters
	if raw, ok := c.store.Get(c.suspiciousKey()); ok {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			counters.SuspiciousActivityCount = value
		}
	}
	if raw, ok := c.store.Get(c.appSwitchKey()); ok {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			counters.AppSwitchCount = value
		}
	}
	return counters
}

func (c *CounterStore) loadLog() []SuspiciousEvent {
	raw, ok := c.store.Get(c.logKey())
	if !ok {
		return nil
	}
	var log []SuspiciousEvent
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		return nil
	}
	return log
}

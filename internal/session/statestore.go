package session

import (
	"encoding/json"
	"log"

	"quickhire-proctor/internal/platform"
)

// StateStore сохраняет состояние незавершенного интервью в хранилище
// сессии под ключом, привязанным к коду интервью
type StateStore struct {
	storage platform.Storage
	code    string
}

// NewStateStore создает хранилище состояния для попытки code
func NewStateStore(storage platform.Storage, code string) *StateStore {
	return &StateStore{storage: storage, code: code}
}

func (s *StateStore) key() string {
	return "interviewState_" + s.code
}

// Save сохраняет снимок состояния
func (s *StateStore) Save(state *InFlightState) {
	jsonData, err := json.Marshal(state)
	if err != nil {
		log.Printf("⚠️ ошибка сериализации состояния интервью: %v", err)
		return
	}
	s.storage.Set(s.key(), string(jsonData))
}

// Restore возвращает сохраненное состояние. Отсутствующее или
// поврежденное состояние — пустое, без ошибки наружу.
func (s *StateStore) Restore() *InFlightState {
	raw, ok := s.storage.Get(s.key())
	if !ok {
		return &InFlightState{}
	}
	var state InFlightState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		log.Printf("⚠️ состояние интервью повреждено, начинаем заново: %v", err)
		return &InFlightState{}
	}
	return &state
}

// Clear уничтожает сохраненное состояние. Вызывается при завершении
// интервью и при старте новой попытки.
func (s *StateStore) Clear() {
	s.storage.Remove(s.key())
}

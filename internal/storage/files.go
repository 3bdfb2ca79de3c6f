package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage хранилище ключ-значение сессии, сохраняемое в JSON файл.
// Аналог sessionStorage, переживающий перезапуск процесса. Каждая запись
// сразу сбрасывается на диск: хранилище — источник истины для счетчиков.
type FileStorage struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFileStorage открывает или создает хранилище сессии sessionID в
// каталоге dir. Поврежденный файл трактуется как пустое хранилище.
func OpenFileStorage(dir, sessionID string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории: %w", err)
	}

	f := &FileStorage{
		path: filepath.Join(dir, fmt.Sprintf("session_%s.json", sessionID)),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(f.path)
	if err == nil {
		if jsonErr := json.Unmarshal(raw, &f.data); jsonErr != nil {
			log.Printf("⚠️ файл сессии поврежден, начинаем с пустого: %v", jsonErr)
			f.data = make(map[string]string)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка чтения файла сессии: %w", err)
	}

	return f, nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	return value, ok
}

func (f *FileStorage) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.flush()
}

func (f *FileStorage) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.flush()
}

// flush пишет снимок на диск под уже взятым мьютексом
func (f *FileStorage) flush() {
	jsonData, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		log.Printf("⚠️ ошибка сериализации сессии: %v", err)
		return
	}
	if err := os.WriteFile(f.path, jsonData, 0644); err != nil {
		log.Printf("⚠️ ошибка записи файла сессии: %v", err)
	}
}

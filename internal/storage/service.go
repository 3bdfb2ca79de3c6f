package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service локальное файловое хранилище итогов интервью
type Service struct {
	dir string
}

// NewService создает хранилище результатов в каталоге dir
func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// SaveResult сохраняет итог интервью в JSON файл
func (s *Service) SaveResult(result *InterviewResult) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	filename := filepath.Join(s.dir, fmt.Sprintf("interview_%s.json", result.InterviewID))

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла: %w", err)
	}

	return nil
}

// LoadResult загружает итог интервью по идентификатору
func (s *Service) LoadResult(interviewID string) (*InterviewResult, error) {
	filename := filepath.Join(s.dir, fmt.Sprintf("interview_%s.json", interviewID))

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	var result InterviewResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("ошибка парсинга результата: %w", err)
	}

	return &result, nil
}

// ListResults возвращает идентификаторы всех сохраненных интервью
func (s *Service) ListResults() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения директории: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "interview_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, "interview_"), ".json"))
	}
	return ids, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию из YAML файла
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация конфигурации
	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &config, nil
}

// Default возвращает конфигурацию со значениями из исходной реализации.
// Используется, когда YAML файл недоступен.
func Default() *Config {
	return &Config{
		Proctor: ProctorConfig{
			CooldownMS:            500,
			GateDebounceMS:        500,
			SyncIntervalMS:        500,
			FullscreenPollMS:      1000,
			ActivityCheckMS:       2000,
			InactivityTimeoutMS:   10000,
			KeyboardBurstCount:    10,
			KeyboardBurstWindowMS: 3000,
		},
		Interview: InterviewConfig{
			TotalQuestions:       5,
			MaxFollowupQuestions: 2,
			DefaultSkills:        []string{"javascript", "sql"},
		},
	}
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	if config.Proctor.CooldownMS <= 0 {
		return fmt.Errorf("cooldown_ms должно быть больше 0")
	}

	if config.Proctor.GateDebounceMS < 0 {
		return fmt.Errorf("gate_debounce_ms не может быть отрицательным")
	}

	if config.Proctor.SyncIntervalMS <= 0 {
		return fmt.Errorf("sync_interval_ms должно быть больше 0")
	}

	if config.Proctor.FullscreenPollMS <= 0 {
		return fmt.Errorf("fullscreen_poll_ms должно быть больше 0")
	}

	if config.Proctor.ActivityCheckMS <= 0 {
		return fmt.Errorf("activity_check_ms должно быть больше 0")
	}

	if config.Proctor.InactivityTimeoutMS <= 0 {
		return fmt.Errorf("inactivity_timeout_ms должно быть больше 0")
	}

	if config.Proctor.KeyboardBurstCount <= 0 {
		return fmt.Errorf("keyboard_burst_count должно быть больше 0")
	}

	if config.Proctor.KeyboardBurstWindowMS <= 0 {
		return fmt.Errorf("keyboard_burst_window_ms должно быть больше 0")
	}

	if config.Interview.TotalQuestions <= 0 {
		return fmt.Errorf("total_questions должно быть больше 0")
	}

	if config.Interview.MaxFollowupQuestions < 0 {
		return fmt.Errorf("max_followup_questions не может быть отрицательным")
	}

	return nil
}

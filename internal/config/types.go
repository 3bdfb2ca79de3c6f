package config

import "time"

// Config представляет конфигурацию прокторинга и интервью
type Config struct {
	Proctor   ProctorConfig   `yaml:"proctor"`
	Interview InterviewConfig `yaml:"interview"`
}

// ProctorConfig содержит тайминги и пороги мониторинга.
// Все значения эмпирические и подбираются под конкретную платформу.
type ProctorConfig struct {
	CooldownMS            int `yaml:"cooldown_ms"`
	GateDebounceMS        int `yaml:"gate_debounce_ms"`
	SyncIntervalMS        int `yaml:"sync_interval_ms"`
	FullscreenPollMS      int `yaml:"fullscreen_poll_ms"`
	ActivityCheckMS       int `yaml:"activity_check_ms"`
	InactivityTimeoutMS   int `yaml:"inactivity_timeout_ms"`
	KeyboardBurstCount    int `yaml:"keyboard_burst_count"`
	KeyboardBurstWindowMS int `yaml:"keyboard_burst_window_ms"`
}

// InterviewConfig содержит общие настройки интервью
type InterviewConfig struct {
	TotalQuestions       int      `yaml:"total_questions"`
	MaxFollowupQuestions int      `yaml:"max_followup_questions"`
	DefaultSkills        []string `yaml:"default_skills"`
}

// Методы для удобного доступа к таймингам

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Proctor.CooldownMS) * time.Millisecond
}

func (c *Config) GateDebounce() time.Duration {
	return time.Duration(c.Proctor.GateDebounceMS) * time.Millisecond
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Proctor.SyncIntervalMS) * time.Millisecond
}

func (c *Config) FullscreenPoll() time.Duration {
	return time.Duration(c.Proctor.FullscreenPollMS) * time.Millisecond
}

func (c *Config) ActivityCheck() time.Duration {
	return time.Duration(c.Proctor.ActivityCheckMS) * time.Millisecond
}

func (c *Config) InactivityTimeout() time.Duration {
	return time.Duration(c.Proctor.InactivityTimeoutMS) * time.Millisecond
}

func (c *Config) KeyboardBurstWindow() time.Duration {
	return time.Duration(c.Proctor.KeyboardBurstWindowMS) * time.Millisecond
}

func (c *Config) GetTotalQuestions() int {
	return c.Interview.TotalQuestions
}

func (c *Config) GetMaxFollowupQuestions() int {
	return c.Interview.MaxFollowupQuestions
}

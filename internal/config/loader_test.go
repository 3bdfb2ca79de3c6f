package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quickhire-proctor/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
proctor:
  cooldown_ms: 500
  gate_debounce_ms: 500
  sync_interval_ms: 500
  fullscreen_poll_ms: 1000
  activity_check_ms: 2000
  inactivity_timeout_ms: 10000
  keyboard_burst_count: 10
  keyboard_burst_window_ms: 3000
interview:
  total_questions: 5
  max_followup_questions: 2
  default_skills:
    - javascript
    - sql
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, cfg.Cooldown())
	require.Equal(t, time.Second, cfg.FullscreenPoll())
	require.Equal(t, 10*time.Second, cfg.InactivityTimeout())
	require.Equal(t, 10, cfg.Proctor.KeyboardBurstCount)
	require.Equal(t, 5, cfg.GetTotalQuestions())
	require.Equal(t, []string{"javascript", "sql"}, cfg.Interview.DefaultSkills)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "proctor: [broken")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
proctor:
  cooldown_ms: 0
  sync_interval_ms: 500
  fullscreen_poll_ms: 1000
  activity_check_ms: 2000
  inactivity_timeout_ms: 10000
  keyboard_burst_count: 10
  keyboard_burst_window_ms: 3000
interview:
  total_questions: 5
`)
	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cooldown_ms")
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, 500*time.Millisecond, cfg.Cooldown())
	require.Equal(t, 500*time.Millisecond, cfg.GateDebounce())
	require.Equal(t, 2*time.Second, cfg.ActivityCheck())
	require.Equal(t, 3*time.Second, cfg.KeyboardBurstWindow())
	require.Equal(t, 2, cfg.GetMaxFollowupQuestions())
	require.NotEmpty(t, cfg.Interview.DefaultSkills)
}

package usecase

import (
	"os"
	"strconv"
	"time"
)

// SessionConfig carries the editor session timing knobs. The defaults mirror
// the original editor behavior: autosave 2s after the last edit, a 30s
// periodic safety net for users who never stop typing, a 3s floor between
// successful saves, and a 100ms pull interval for delegated estimate totals.
type SessionConfig struct {
	Debounce        time.Duration
	Period          time.Duration
	MinSaveInterval time.Duration
	EstimatePoll    time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Debounce:        2 * time.Second,
		Period:          30 * time.Second,
		MinSaveInterval: 3 * time.Second,
		EstimatePoll:    100 * time.Millisecond,
	}
}

// SessionConfigFromEnv reads the timing knobs from the environment, falling
// back to the defaults. All values are milliseconds.
func SessionConfigFromEnv() SessionConfig {
	cfg := DefaultSessionConfig()
	cfg.Debounce = getenvMillis("AUTOSAVE_DEBOUNCE_MS", cfg.Debounce)
	cfg.Period = getenvMillis("AUTOSAVE_PERIOD_MS", cfg.Period)
	cfg.MinSaveInterval = getenvMillis("AUTOSAVE_MIN_INTERVAL_MS", cfg.MinSaveInterval)
	cfg.EstimatePoll = getenvMillis("ESTIMATE_POLL_MS", cfg.EstimatePoll)
	return cfg
}

func getenvMillis(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

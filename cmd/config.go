package cmd

import (
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	// ScheduledTriggerCron is a six-field cron spec, seconds first.
	ScheduledTriggerCron string
	// TerminalStatuses are order statuses the scheduled trigger skips.
	TerminalStatuses []string
	// HistoryRetryMaxElapsed bounds the retries of a failing status history append.
	HistoryRetryMaxElapsed time.Duration
}

// Defaults applied by the loader when a variable is unset.
const (
	DefaultHTTPPort               = "8080"
	DefaultScheduledTriggerCron   = "0 */5 * * * *"
	DefaultTerminalStatuses       = "completed,cancelled,refunded"
	DefaultHistoryRetryMaxElapsed = 30 * time.Second
)

// SplitList splits a comma separated value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}

package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"sticky/internal/app/client/config"
)

// New создает логгер для окружения env. Логи пишутся в stderr,
// stdout остается за выводом команд.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel создает логгер с явным уровнем. Пустой level - уровень окружения.
func NewWithLevel(env, level string) *slog.Logger {
	return newLogger(os.Stderr, env, level)
}

func newLogger(w io.Writer, env, level string) *slog.Logger {
	lvl, ok := parseLevel(level)

	switch env {
	case config.EnvDev:
		if !ok {
			lvl = slog.LevelDebug
		}
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	case config.EnvProd:
		if !ok {
			lvl = slog.LevelInfo
		}
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	default:
		if !ok {
			lvl = slog.LevelDebug
		}
		return slog.New(newPrettyHandler(w, lvl))
	}
}

func setupPrettySlog() *slog.Logger {
	return slog.New(newPrettyHandler(os.Stderr, slog.LevelDebug))
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

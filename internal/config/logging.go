package config

import (
	"log/slog"

	"git.home.luguber.info/inful/docmerge/internal/foundation/normalization"
)

// LogLevelEnv overrides the log level chosen by flags.
const LogLevelEnv = "DOCMERGE_LOG_LEVEL"

var logLevels = normalization.New("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// ParseLogLevel maps a level name onto a slog level.
func ParseLogLevel(raw string) (slog.Level, error) {
	return logLevels.Parse(raw)
}

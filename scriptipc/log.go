// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogLevel names a logging threshold as accepted on command lines and in
// SCRIPT_IPC_LOG_LEVEL.
type LogLevel string

const (
	LogError LogLevel = "ERROR"
	LogWarn  LogLevel = "WARN"
	LogInfo  LogLevel = "INFO"
	// LogDebug also enables per-frame tracing in Channel.
	LogDebug LogLevel = "DEBUG"
)

// ParseLogLevel maps a level name, case-insensitively, to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(name))) {
	case LogError:
		return slog.LevelError, nil
	case LogWarn, "WARNING":
		return slog.LevelWarn, nil
	case LogInfo, "":
		return slog.LevelInfo, nil
	case LogDebug, "TRACE":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

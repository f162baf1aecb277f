// SPDX-License-Identifier: Apache-2.0

// Package logger configures the process-wide structured logger. The menu
// presenter owns the terminal, so by default logs go to a file under the
// XDG state directory; CLI commands additionally log to stderr.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var defaultLogger *slog.Logger

// LogFilePath returns the application log file location based on XDG spec
// ($XDG_STATE_HOME or ~/.local/state).
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "sshmenu", "app.log"), nil
}

// Init configures the default logger. When interactive is true (the menu
// presenter is running), stderr output is suppressed so log lines do not
// corrupt the rendered menu.
func Init(interactive bool) {
	var writers []io.Writer

	logFilePath, err := LogFilePath()
	if err == nil {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
			if err == nil {
				writers = append(writers, file)
			}
		}
	}

	if !interactive || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	var w io.Writer
	if len(writers) == 1 {
		w = writers[0]
	} else {
		w = io.MultiWriter(writers...)
	}

	level := slog.LevelInfo
	if os.Getenv("SSHMENU_DEBUG") != "" {
		level = slog.LevelDebug
	}

	defaultLogger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func get() *slog.Logger {
	if defaultLogger == nil {
		// Accessed before Init; fall back to stderr so nothing is lost.
		defaultLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return defaultLogger
}

// SetLogger replaces the default logger. Intended for tests.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides structured file logging for the aurexus client.
//
// Log output goes to rotating files, never to the terminal: stdout and
// stderr belong to the TUI. Two loggers are exposed:
//   - App: lifecycle and state transitions
//   - Request: one line per backend HTTP request (method, path, status,
//     duration - never bodies or credentials)
//
// Before Init is called both loggers are no-ops, which keeps tests and
// one-shot CLI invocations free of filesystem side effects.
package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu            sync.RWMutex
	appLogger     = zap.NewNop()
	requestLogger = zap.NewNop()
)

// Init wires the loggers to rotating files under dir (e.g. ~/.aurexus/logs).
// Failure to create the directory leaves the no-op loggers in place; a
// client that cannot log is degraded, not broken.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	appCore := zapcore.NewCore(encoder,
		zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(dir, "app.log"), MaxSize: 10, MaxAge: 28, Compress: true,
		}),
		zap.InfoLevel,
	)

	requestCore := zapcore.NewCore(encoder,
		zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(dir, "request.log"), MaxSize: 10, MaxAge: 7, Compress: true,
		}),
		zap.InfoLevel,
	)

	mu.Lock()
	appLogger = zap.New(appCore)
	requestLogger = zap.New(requestCore)
	mu.Unlock()
	return nil
}

// App returns the application logger.
func App() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return appLogger
}

// Request returns the HTTP request logger.
func Request() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return requestLogger
}

// Sync flushes any buffered log entries. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = appLogger.Sync()
	_ = requestLogger.Sync()
}

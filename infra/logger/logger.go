// Package logger provides the zerolog-backed implementation of the core
// logging interface.
package logger

import corelogger "github.com/fleetsense/evmaint/core/logger"

// Logger mirrors the core logger interface so infra packages need a single
// import.
type Logger = corelogger.Logger

// NopLogger discards everything. Tests and optional components use it in
// place of a real logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

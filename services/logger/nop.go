package logsvc

import "github.com/learnx/learnx/core"

// NopLogger discards everything; it backs tests.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Enable(bool)                       {}
func (NopLogger) Debug(string, ...interface{})      {}
func (NopLogger) Info(string, ...interface{})       {}
func (NopLogger) Warn(string, ...interface{})       {}
func (NopLogger) Error(string, ...interface{})      {}
func (NopLogger) Fatal(msg string, _ ...interface{}) {}

package logger

// NoopLogger discards everything. Used in tests and the offline simulator.
type NoopLogger struct{}

var _ ILogger = NoopLogger{}

func (NoopLogger) Debug(string, string, map[string]interface{}) {}
func (NoopLogger) Info(string, string, map[string]interface{})  {}
func (NoopLogger) Warn(string, string, map[string]interface{})  {}
func (NoopLogger) Error(string, string, map[string]interface{}) {}
func (NoopLogger) Sync() error                                  { return nil }

package logging

import "context"

// Logger writes structured entries. Arguments after the message are alternating keys and
// values; a zapcore.Field (see the helpers in fields.go) may stand in place of a pair.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	// CDebugw logs at debug when the level allows it or ctx was marked with WithDebug.
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	// With returns a logger that adds the given fields to every entry. It shares the
	// receiver's level and appenders.
	With(keysAndValues ...interface{}) Logger
	// Sublogger returns a logger named "<name>.<subname>" with its own level, registered so
	// pattern configuration applies to it.
	Sublogger(subname string) Logger

	SetLevel(level Level)
	AddAppender(appender Appender)
	Sync() error
}

package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// impl fans every entry out to its appenders. Loggers made by With share the level and the
// appenders of their parent.
type impl struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	fields    []zapcore.Field
	appenders []Appender
}

func newImpl(name string, level Level, inUTC bool, appenders ...Appender) *impl {
	return &impl{name: name, level: NewAtomicLevelAt(level), inUTC: inUTC, appenders: appenders}
}

func (l *impl) Debugw(msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) {
		l.write(DEBUG, msg, keysAndValues)
	}
}

func (l *impl) Infow(msg string, keysAndValues ...interface{}) {
	if l.enabled(INFO) {
		l.write(INFO, msg, keysAndValues)
	}
}

func (l *impl) Warnw(msg string, keysAndValues ...interface{}) {
	if l.enabled(WARN) {
		l.write(WARN, msg, keysAndValues)
	}
}

func (l *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	tag, traced := DebugTag(ctx)
	switch {
	case traced:
		l.write(DEBUG, msg, append(slices.Clip(keysAndValues), zap.String(DebugKey, tag)))
	case l.enabled(DEBUG):
		l.write(DEBUG, msg, keysAndValues)
	}
}

func (l *impl) With(keysAndValues ...interface{}) Logger {
	derived := *l
	derived.fields = append(slices.Clip(l.fields), toFields(keysAndValues)...)
	derived.appenders = slices.Clip(l.appenders)
	return &derived
}

func (l *impl) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	sub := &impl{
		name:      name,
		level:     NewAtomicLevelAt(l.level.Get()),
		inUTC:     l.inUTC,
		fields:    slices.Clip(l.fields),
		appenders: slices.Clip(l.appenders),
	}
	globalLoggerRegistry.register(name, sub.level)
	return sub
}

func (l *impl) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *impl) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *impl) Sync() error {
	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

func (l *impl) enabled(level Level) bool {
	return level >= l.level.Get()
}

// write is only called directly from the exported logging methods; the caller lookup
// depends on that depth.
func (l *impl) write(level Level, msg string, keysAndValues []interface{}) {
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: l.name,
		Message:    msg,
		Caller:     callerAt(3),
	}
	if l.inUTC {
		entry.Time = entry.Time.UTC()
	}
	fields := append(slices.Clip(l.fields), toFields(keysAndValues)...)

	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Write(entry, fields))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// callerAt reports the frame skip levels above itself, e.g. "importer/importer.go:84".
func callerAt(skip int) zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.NewEntryCaller(pc, file, line, true)
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}

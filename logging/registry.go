package logging

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// LoggerPatternConfig is an instance of a level specification for a given logger.
type LoggerPatternConfig struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Level   string `json:"level" yaml:"level"`
}

const (
	// e.g. "foo".
	validLoggerSectionName = `[a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*`
	// e.g. "foo" or "*".
	validLoggerSectionNameWithWildcard = `(` + validLoggerSectionName + `|\*)`
	// e.g. "foo.*.foo".
	validLoggerSectionsWithWildcard = validLoggerSectionNameWithWildcard + `(\.` + validLoggerSectionNameWithWildcard + `)*`
	validLoggerName                 = `^` + validLoggerSectionsWithWildcard + `$`
)

var loggerPatternRegexp = regexp.MustCompile(validLoggerName)

// ValidatePattern reports whether pattern is a dotted logger name where any section may be "*".
func ValidatePattern(pattern string) bool {
	return loggerPatternRegexp.MatchString(pattern)
}

func buildRegexFromPattern(pattern string) string {
	var matcher strings.Builder
	matcher.WriteRune('^')
	for _, ch := range pattern {
		switch ch {
		case '*':
			matcher.WriteString(`.*`)
		case '.':
			matcher.WriteString(`\.`)
		default:
			matcher.WriteRune(ch)
		}
	}
	matcher.WriteRune('$')
	return matcher.String()
}

// Registry tracks named loggers so level patterns can be applied to them.
type Registry struct {
	mu        sync.RWMutex
	levels    map[string]AtomicLevel
	logConfig []LoggerPatternConfig
}

var globalLoggerRegistry = newRegistry()

func newRegistry() *Registry {
	return &Registry{
		levels: make(map[string]AtomicLevel),
	}
}

// register tracks the level of the logger called name, replacing any earlier logger of that
// name, and applies the current pattern configuration to it.
func (lr *Registry) register(name string, level AtomicLevel) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.levels[name] = level
	if configured, ok := lr.levelFor(name); ok {
		level.Set(configured)
	}
}

func (lr *Registry) levelOf(name string) (Level, bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	level, ok := lr.levels[name]
	if !ok {
		return 0, false
	}
	return level.Get(), true
}

// levelFor returns the level of the last valid pattern matching name. Callers hold mu.
func (lr *Registry) levelFor(name string) (Level, bool) {
	var (
		matched Level
		found   bool
	)
	for _, lpc := range lr.logConfig {
		if !ValidatePattern(lpc.Pattern) {
			continue
		}
		r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
		if err != nil || !r.MatchString(name) {
			continue
		}
		level, err := LevelFromString(lpc.Level)
		if err != nil {
			continue
		}
		matched, found = level, true
	}
	return matched, found
}

// Update replaces the pattern configuration and re-levels every registered logger. Loggers no
// pattern matches go back to INFO. Invalid patterns are reported to warnLogger and skipped; an
// unknown level name is an error.
func (lr *Registry) Update(logConfig []LoggerPatternConfig, warnLogger Logger) error {
	for _, lpc := range logConfig {
		if !ValidatePattern(lpc.Pattern) {
			warnLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}
		if _, err := LevelFromString(lpc.Level); err != nil {
			return errors.Wrapf(err, "pattern %q", lpc.Pattern)
		}
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = logConfig
	for name, current := range lr.levels {
		level, ok := lr.levelFor(name)
		if !ok {
			level = INFO
		}
		current.Set(level)
	}
	return nil
}

func (lr *Registry) names() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	registeredNames := make([]string, 0, len(lr.levels))
	for name := range lr.levels {
		registeredNames = append(registeredNames, name)
	}
	sort.Strings(registeredNames)
	return registeredNames
}

// UpdateLoggerRegistry applies pattern configuration to every named logger created by
// Sublogger, now and later. Skipped patterns are reported to warnLogger.
func UpdateLoggerRegistry(logConfig []LoggerPatternConfig, warnLogger Logger) error {
	return globalLoggerRegistry.Update(logConfig, warnLogger)
}

package options

import "go.uber.org/zap/zapcore"

// FilteringCore is custom implementation of zapcore.Core that allows to filter
// log entries using custom filtering function.
type FilteringCore struct {
	zapcore.Core
	filter FilterFunc
}

// FilterFunc is the filter function that is called to check whether the given
// entry is to be written to a core or not.
type FilterFunc func(zapcore.Entry) bool

// NewFilteringCore returns a core middleware that uses the given filter function
// to decide whether to log this message or not.
func NewFilteringCore(next zapcore.Core, filter FilterFunc) zapcore.Core {
	return &FilteringCore{next, filter}
}

// With implements zapcore.Core interface, the filter is kept for the derived
// core.
func (c *FilteringCore) With(fields []zapcore.Field) zapcore.Core {
	return &FilteringCore{c.Core.With(fields), c.filter}
}

// Check implements zapcore.Core interface and performs log entries filtering.
func (c *FilteringCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.filter(e) {
		return c.Core.Check(e, ce)
	}
	return ce
}

// QuietFilter drops entries below the given level unless they come from one
// of the named loggers. It's used by interactive commands to keep service
// chatter off the prompt.
func QuietFilter(level zapcore.Level, loggers ...string) FilterFunc {
	return func(e zapcore.Entry) bool {
		if e.Level >= level {
			return true
		}
		for _, name := range loggers {
			if e.LoggerName == name {
				return true
			}
		}
		return false
	}
}

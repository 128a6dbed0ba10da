package group

import "time"

// Reader steps reported through LogEvent.Op.
const (
	// OpProbe is one property lookup by HasLegacyGroupData.
	OpProbe = "probe"
	// OpDecode is one property read and decoded by Load.
	OpDecode = "decode"
	// OpActivity is a failed activity emission; only Err is set.
	OpActivity = "activity"
)

// LogEvent describes one step of reading a contact's legacy group data.
type LogEvent struct {
	Op       string
	Property string
	Present  bool
	Records  int
	Duration time.Duration
	Err      error
}

// Logger records reader events.
type Logger interface {
	LogGroupEvent(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogGroupEvent calls f. A nil LoggerFunc discards the event.
func (f LoggerFunc) LogGroupEvent(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogGroupEvent(LogEvent) {}

// WithLogger attaches logger to the reader. nil restores the no-op logger.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

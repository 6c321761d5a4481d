package cutting

import "github.com/rs/zerolog"

// Logger is the capability the core consumes for diagnostic output. It is
// side-effect only: nothing in pkg/cutting reads a Logger value to decide
// what to do, only to report what it did. Implementations must be safe to
// call with nil-ish/zero-value fields.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Safe zero value for tests and for callers
// who don't want logging.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// ZerologAdapter bridges a zerolog.Logger into the Logger capability,
// following the embedded-logger-with-component-tag pattern used by
// aristath/sentinel's ConstraintsManager (log.With().Str("component", ...).Logger()).
type ZerologAdapter struct {
	log zerolog.Logger
}

// NewZerologAdapter tags the supplied logger with component="cutting" and
// returns an adapter implementing Logger.
func NewZerologAdapter(log zerolog.Logger) ZerologAdapter {
	return ZerologAdapter{log: log.With().Str("component", "cutting").Logger()}
}

func withFields(e *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}

func (z ZerologAdapter) Debug(msg string, fields map[string]interface{}) {
	withFields(z.log.Debug(), fields).Msg(msg)
}

func (z ZerologAdapter) Info(msg string, fields map[string]interface{}) {
	withFields(z.log.Info(), fields).Msg(msg)
}

func (z ZerologAdapter) Warn(msg string, fields map[string]interface{}) {
	withFields(z.log.Warn(), fields).Msg(msg)
}

func (z ZerologAdapter) Error(msg string, fields map[string]interface{}) {
	withFields(z.log.Error(), fields).Msg(msg)
}

package utils

import "go.uber.org/zap"

// Sink receives fire-and-forget diagnostics emitted while a digest is built.
// Implementations must never block and never return an error to the caller.
type Sink interface {
	Warnf(format string, arguments ...any)
	Infof(format string, arguments ...any)
}

// zapSink forwards diagnostics to a zap sugared logger.
type zapSink struct {
	logger *zap.SugaredLogger
}

// NewZapSink wraps the provided zap logger in a Sink.
func NewZapSink(logger *zap.Logger) Sink {
	return &zapSink{logger: logger.Sugar()}
}

func (sink *zapSink) Warnf(format string, arguments ...any) {
	sink.logger.Warnf(format, arguments...)
}

func (sink *zapSink) Infof(format string, arguments ...any) {
	sink.logger.Infof(format, arguments...)
}

// nopSink discards every diagnostic.
type nopSink struct{}

// NewNopSink returns a Sink that drops all diagnostics.
func NewNopSink() Sink {
	return nopSink{}
}

func (nopSink) Warnf(string, ...any) {}

func (nopSink) Infof(string, ...any) {}

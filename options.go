package avsc

import (
	"context"
	"log/slog"
)

// LevelTrace is a custom log level more verbose than Debug, used for
// per-node events (definitions, reference lookups).
const LevelTrace = slog.Level(-8)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithParseOpt replaces all parse options at once.
func WithParseOpt(opt ParseOpt) Option {
	return func(p *Parser) { p.opt = opt }
}

// WithDuplicateKeys sets the duplicate JSON key policy.
func WithDuplicateKeys(s Severity) Option {
	return func(p *Parser) { p.opt.Strictness.OnDuplicateKey = s }
}

// WithMaxDepth bounds container nesting in the source document.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.opt.MaxDepth = n }
}

// WithMaxBytes bounds the size of the source document.
func WithMaxBytes(n int64) Option {
	return func(p *Parser) { p.opt.MaxBytes = n }
}

// WithDeferredDefaults enables decoding of forward-referenced field defaults
// once references are resolved.
func WithDeferredDefaults(on bool) Option {
	return func(p *Parser) { p.opt.DecodeDeferredDefaults = on }
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// logEnabled returns true if logging is enabled at the given level.
func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

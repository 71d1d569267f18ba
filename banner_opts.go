package banner

import "log/slog"

// Option configures a Parser.
type Option func(*Parser)

// WithMaterializer sets the allocator that rewritten content is registered
// with. Defaults to DefaultStore().
func WithMaterializer(m Materializer) Option {
	return func(p *Parser) {
		p.materializer = m
	}
}

// WithMatchPolicy sets how src references in Adobe Animate bundles are
// matched to archive entries. Defaults to MatchFirst.
// Google Web Designer sources always require an exact match.
func WithMatchPolicy(policy MatchPolicy) Option {
	return func(p *Parser) {
		p.policy = policy
	}
}

// WithMaxEntrySize limits the decompressed size of any single archive entry.
// Set limit to 0 to disable the limit. Defaults to 256MB.
func WithMaxEntrySize(limit uint64) Option {
	return func(p *Parser) {
		p.maxEntrySize = limit
	}
}

// WithEntryCache controls whether decoded entry bytes are reused when the
// same entry is referenced more than once in a bundle (default: true).
func WithEntryCache(enabled bool) Option {
	return func(p *Parser) {
		p.entryCache = enabled
	}
}

// WithLogger sets the logger for parse diagnostics.
// Per-reference decisions are logged at debug level and one summary line
// per bundle at info level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

package banner

import (
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

var diagnostics struct {
	once     sync.Once
	reporter atomic.Pointer[slog.Logger]
}

// InitOption configures Initialize.
type InitOption func(*initConfig)

type initConfig struct {
	logger *slog.Logger
}

// WithReportLogger sets where panic reports are written.
// Defaults to a text handler on stderr, which js/wasm hosts surface in the
// browser console.
func WithReportLogger(logger *slog.Logger) InitOption {
	return func(c *initConfig) {
		c.logger = logger
	}
}

// Initialize installs process-wide crash reporting: a panic escaping a
// parse is logged with its stack before it continues to unwind.
//
// Only the first call has any effect.
func Initialize(opts ...InitOption) {
	diagnostics.once.Do(func() {
		var cfg initConfig
		for _, opt := range opts {
			opt(&cfg)
		}
		if cfg.logger == nil {
			cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		}
		diagnostics.reporter.Store(cfg.logger)
	})
}

// reportPanic must be deferred directly so that recover sees the panic.
func reportPanic() {
	reporter := diagnostics.reporter.Load()
	if reporter == nil {
		return
	}
	if r := recover(); r != nil {
		reporter.Error("banner: panic during parse", "panic", r, "stack", string(debug.Stack()))
		panic(r)
	}
}

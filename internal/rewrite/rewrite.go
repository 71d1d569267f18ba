package rewrite

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/meigma/banner/internal/bannertype"
	"github.com/meigma/banner/materialize"
)

// documentType is the media type of the rewritten root document.
const documentType = "text/html"

// Source provides entry content by archive index.
// It is satisfied by *archive.Archive.
type Source interface {
	ReadText(index int) (string, error)
	ReadBinary(index int) ([]byte, error)
}

// Rewriter rewrites one root document against one resolved entry set.
//
// A Rewriter is single-use state for a single parse and is not safe for
// concurrent use.
type Rewriter struct {
	source       Source
	entries      []bannertype.ResolvedEntry
	materializer materialize.Materializer
	policy       MatchPolicy
	logger       *slog.Logger
	rewritten    int
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithMatchPolicy sets how substring references are resolved (default: MatchFirst).
func WithMatchPolicy(policy MatchPolicy) Option {
	return func(r *Rewriter) {
		r.policy = policy
	}
}

// WithLogger sets the logger for per-reference diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rewriter) {
		r.logger = logger
	}
}

// New creates a Rewriter that reads entry content from source and registers
// rewritten content with m.
func New(source Source, entries []bannertype.ResolvedEntry, m materialize.Materializer, opts ...Option) *Rewriter {
	r := &Rewriter{
		source:       source,
		entries:      entries,
		materializer: m,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Rewriter) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// Rewrite dispatches to the rewriter for format and returns the handle of
// the rewritten document.
func (r *Rewriter) Rewrite(document string, format bannertype.Format) (string, error) {
	switch format {
	case bannertype.FormatGoogleWebDesigner:
		return r.GoogleWebDesigner(document)
	default:
		return r.AdobeAnimate(document)
	}
}

// Rewritten returns the number of references replaced so far.
func (r *Rewriter) Rewritten() int {
	return r.rewritten
}

// finish materializes the rewritten document.
func (r *Rewriter) finish(document string) (string, error) {
	handle, err := r.materializer.Materialize([]byte(document), documentType)
	if err != nil {
		return "", fmt.Errorf("materialize document: %w", err)
	}
	return handle, nil
}

// materializeEntry registers data read from entry under mimeType.
func (r *Rewriter) materializeEntry(entry bannertype.ResolvedEntry, data []byte, mimeType string) (string, error) {
	handle, err := r.materializer.Materialize(data, mimeType)
	if err != nil {
		return "", fmt.Errorf("materialize %s: %w", entry.RelativePath, err)
	}
	r.rewritten++
	return handle, nil
}

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to
// submatch indices and error propagation. fn receives the index pairs of
// one match, as returned by FindAllStringSubmatchIndex.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, fn func(m []int) (string, error)) (string, error) {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		repl, err := fn(m)
		if err != nil {
			return "", err
		}
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

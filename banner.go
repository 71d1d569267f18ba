package banner

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/meigma/banner/internal/archive"
	"github.com/meigma/banner/internal/bannertype"
	"github.com/meigma/banner/internal/pathutil"
	"github.com/meigma/banner/internal/rewrite"
	"github.com/meigma/banner/materialize/memory"
)

// rootSuffix identifies the bundle's root document.
const rootSuffix = ".html"

var defaultStore = memory.New()

// DefaultStore returns the process-wide store used by parsers that were not
// given a Materializer.
//
// Resources stay in the store until revoked, so it grows with every parse.
// Long-running hosts should pass their own Materializer, or Revoke handles
// once a banner is unloaded.
func DefaultStore() *memory.Store {
	return defaultStore
}

// Parser resolves banner bundles.
//
// A Parser holds only configuration; it is safe for concurrent use as long
// as its Materializer is.
type Parser struct {
	materializer Materializer
	policy       MatchPolicy
	maxEntrySize uint64
	entryCache   bool
	logger       *slog.Logger
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		policy:       MatchFirst,
		maxEntrySize: archive.DefaultMaxEntrySize,
		entryCache:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.materializer == nil {
		p.materializer = defaultStore
	}
	return p
}

// log returns the logger, falling back to a discard logger if nil.
func (p *Parser) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// Materializer returns the allocator handles are registered with.
func (p *Parser) Materializer() Materializer {
	return p.materializer
}

// ParseFile resolves bundle and returns the handle of its rewritten root
// document. It is shorthand for New(opts...).ParseFile(bundle).
func ParseFile(bundle []byte, opts ...Option) (string, error) {
	return New(opts...).ParseFile(bundle)
}

// ParseFile resolves bundle and returns the handle of its rewritten root
// document.
func (p *Parser) ParseFile(bundle []byte) (string, error) {
	res, err := p.Parse(bundle)
	if err != nil {
		return "", err
	}
	return res.Handle, nil
}

// Parse resolves bundle: it opens the archive, selects the first .html
// entry as the root document, resolves every entry path against the root
// document's directory, detects the authoring tool and rewrites the
// document's asset references.
//
// Every failure is terminal; no Result is returned with an error. Errors
// can be matched with errors.Is against ErrArchiveCorrupt,
// ErrEntryUnreadable, ErrInvalidEncoding, ErrNoRootDocument and
// ErrPathResolution.
func (p *Parser) Parse(bundle []byte) (*Result, error) {
	defer reportPanic()

	a, err := archive.Open(bundle,
		archive.WithMaxEntrySize(p.maxEntrySize),
		archive.WithCache(p.entryCache),
		archive.WithLogger(p.logger),
	)
	if err != nil {
		return nil, err
	}

	root, ok := findRoot(a.Entries())
	if !ok {
		return nil, fmt.Errorf("%w: %d entries searched", ErrNoRootDocument, len(a.Entries()))
	}

	entries, err := pathutil.Resolve(a.Entries(), pathutil.Dir(root.Path))
	if err != nil {
		return nil, err
	}

	document, err := a.ReadText(root.Index)
	if err != nil {
		return nil, err
	}
	format := rewrite.Detect(document)
	p.log().Debug("resolved root document", "path", root.Path, "format", format.String(), "entries", len(entries))

	rw := rewrite.New(a, entries, p.materializer,
		rewrite.WithMatchPolicy(p.policy),
		rewrite.WithLogger(p.logger),
	)
	handle, err := rw.Rewrite(document, format)
	if err != nil {
		return nil, err
	}

	p.log().Info("parsed bundle",
		"root", root.Path,
		"format", format.String(),
		"rewritten", rw.Rewritten(),
		"handle", handle,
	)
	return &Result{
		Handle:    handle,
		Format:    format,
		RootPath:  root.Path,
		Rewritten: rw.Rewritten(),
	}, nil
}

// findRoot returns the first entry whose path ends in .html.
func findRoot(entries []bannertype.Entry) (bannertype.Entry, bool) {
	for _, e := range entries {
		if strings.HasSuffix(e.Path, rootSuffix) {
			return e, true
		}
	}
	return bannertype.Entry{}, false
}

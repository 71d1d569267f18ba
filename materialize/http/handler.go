// Package http serves materialized resources over HTTP.
//
// Browsers resolve blob: handles natively. Other hosts register resources
// in a memory.Store created with an HTTP prefix and mount this handler at
// that prefix, so the rewritten document and its assets load from one
// origin.
package http //nolint:revive // intentional naming for domain clarity

import (
	"log/slog"
	nethttp "net/http"
	"path"
	"strconv"
	"strings"

	"github.com/meigma/banner/materialize/memory"
)

// Resolver looks up a stored resource by ID.
// It is satisfied by *memory.Store.
type Resolver interface {
	LookupID(id string) (memory.Resource, bool)
}

// Handler serves resources by the last segment of the request path.
type Handler struct {
	resolver     Resolver
	cacheControl string
	headers      nethttp.Header
	logger       *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithCacheControl sets the Cache-Control header on successful responses.
// Resources are immutable, so the default is "private, max-age=31536000, immutable".
func WithCacheControl(value string) Option {
	return func(h *Handler) {
		h.cacheControl = value
	}
}

// WithHeader sets an additional header on every successful response.
func WithHeader(key, value string) Option {
	return func(h *Handler) {
		if h.headers == nil {
			h.headers = make(nethttp.Header)
		}
		h.headers.Set(key, value)
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a Handler backed by resolver.
func NewHandler(resolver Resolver, opts ...Option) *Handler {
	h := &Handler{
		resolver:     resolver,
		cacheControl: "private, max-age=31536000, immutable",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// log returns the logger, falling back to a discard logger if nil.
func (h *Handler) log() *slog.Logger {
	if h.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.logger
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		nethttp.Error(w, nethttp.StatusText(nethttp.StatusMethodNotAllowed), nethttp.StatusMethodNotAllowed)
		return
	}

	id := path.Base(r.URL.Path)
	res, ok := h.resolver.LookupID(id)
	if !ok {
		h.log().Debug("resource not found", "id", id)
		nethttp.NotFound(w, r)
		return
	}

	etag := strconv.Quote(res.Digest.String())
	hdr := w.Header()
	for key, values := range h.headers {
		hdr[key] = values
	}
	hdr.Set("ETag", etag)
	if h.cacheControl != "" {
		hdr.Set("Cache-Control", h.cacheControl)
	}

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(nethttp.StatusNotModified)
		return
	}

	contentType := res.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	hdr.Set("Content-Type", contentType)
	hdr.Set("Content-Length", strconv.Itoa(len(res.Data)))
	hdr.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(nethttp.StatusOK)
	if r.Method == nethttp.MethodHead {
		return
	}
	if _, err := w.Write(res.Data); err != nil {
		h.log().Debug("write resource", "id", id, "error", err)
	}
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

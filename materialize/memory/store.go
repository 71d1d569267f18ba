// Package memory provides an in-process resource registry.
//
// Store is the default Materializer for hosts that are not browsers: every
// registered resource gets a blob-style handle and stays addressable until
// it is revoked. Pair it with materialize/http to serve handles to a page.
package memory

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"

	"github.com/meigma/banner/materialize"
)

// DefaultPrefix is prepended to the identifier of every handle.
const DefaultPrefix = "blob:banner/"

// Interface compliance.
var _ materialize.Materializer = (*Store)(nil)

// Resource is a registered block of bytes.
type Resource struct {
	// Handle is the string returned by Materialize.
	Handle string

	// ID is the handle without its prefix.
	ID string

	// MIMEType is the media type supplied at registration.
	MIMEType string

	// Data is the registered content. It must be treated as read-only.
	Data []byte

	// Digest is the SHA256 digest of Data.
	Digest digest.Digest
}

// Store holds materialized resources in memory.
// The store is safe for concurrent use.
type Store struct {
	prefix    string
	logger    *slog.Logger
	mu        sync.RWMutex
	resources map[string]Resource // keyed by ID
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the string prepended to resource IDs to form handles.
// Use a URL ending in "/" when the store is served over HTTP, so handles
// are directly fetchable (e.g., "http://localhost:8080/r/").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		prefix:    DefaultPrefix,
		resources: make(map[string]Resource),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Materialize copies data into the store and returns a new handle.
// Identical content registered twice yields two distinct handles.
func (s *Store) Materialize(data []byte, mimeType string) (string, error) {
	id := uuid.NewString()
	res := Resource{
		Handle:   s.prefix + id,
		ID:       id,
		MIMEType: mimeType,
		Data:     bytes.Clone(data),
		Digest:   digest.FromBytes(data),
	}

	s.mu.Lock()
	s.resources[id] = res
	s.mu.Unlock()

	s.log().Debug("materialized resource", "handle", res.Handle, "type", mimeType, "bytes", len(data))
	return res.Handle, nil
}

// Lookup returns the resource for a handle.
func (s *Store) Lookup(handle string) (Resource, bool) {
	id, ok := strings.CutPrefix(handle, s.prefix)
	if !ok {
		return Resource{}, false
	}
	return s.LookupID(id)
}

// LookupID returns the resource for a handle's ID.
func (s *Store) LookupID(id string) (Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.resources[id]
	return res, ok
}

// Revoke removes the resource for a handle. It reports whether the handle
// was registered; revoking an unknown handle is a no-op.
func (s *Store) Revoke(handle string) bool {
	id, ok := strings.CutPrefix(handle, s.prefix)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[id]; !ok {
		return false
	}
	delete(s.resources, id)
	return true
}

// Len returns the number of registered resources.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

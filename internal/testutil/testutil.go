// Package testutil builds bundle archives and records materialisations for tests.
package testutil

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// PNG is a minimal PNG signature followed by non-UTF-8 bytes.
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0xff, 0xfe, 0x80}

// File is an archive member. A Name ending in "/" becomes a directory entry.
type File struct {
	Name   string
	Data   []byte
	Method uint16 // zip.Store, zip.Deflate or zstd.ZipMethodWinZip; zero means Store
}

// BuildZip writes files, in order, into an in-memory zip archive.
func BuildZip(tb testing.TB, files ...File) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
		if err != nil {
			tb.Fatalf("create %s: %v", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			tb.Fatalf("write %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// Materialized is one recorded call to Recorder.Materialize.
type Materialized struct {
	Handle   string
	MIMEType string
	Data     []byte
}

// Recorder is a concurrency-safe materializer that mints sequential handles
// ("handle:0", "handle:1", ...) and keeps every call for inspection.
type Recorder struct {
	mu    sync.Mutex
	calls []Materialized
	Err   error // returned by every call when set
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Materialize records data and returns the next sequential handle.
func (r *Recorder) Materialize(data []byte, mimeType string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	handle := fmt.Sprintf("handle:%d", len(r.calls))
	r.calls = append(r.calls, Materialized{
		Handle:   handle,
		MIMEType: mimeType,
		Data:     bytes.Clone(data),
	})
	return handle, nil
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Materialized {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Materialized(nil), r.calls...)
}

// Lookup returns the call that produced handle.
func (r *Recorder) Lookup(handle string) (Materialized, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c.Handle == handle {
			return c, true
		}
	}
	return Materialized{}, false
}

// Last returns the most recent call.
func (r *Recorder) Last() (Materialized, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Materialized{}, false
	}
	return r.calls[len(r.calls)-1], true
}

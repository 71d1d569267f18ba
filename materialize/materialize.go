// Package materialize defines how rewritten bundle content is turned into
// resource handles.
//
// A handle is an opaque string (typically a URL) that refers to a block of
// bytes with a media type for as long as the host keeps it registered. The
// pipeline never frees handles; their lifetime belongs to the host.
package materialize

// Materializer registers bytes with the host and returns a handle to them.
//
// Every call must mint a new handle, even for identical bytes. Data must be
// copied or otherwise retained by the implementation; callers may reuse the
// slice after Materialize returns. Implementations must be safe for
// concurrent use when shared between concurrent parses.
type Materializer interface {
	Materialize(data []byte, mimeType string) (string, error)
}

// Func adapts an ordinary function to the Materializer interface.
type Func func(data []byte, mimeType string) (string, error)

// Materialize calls f(data, mimeType).
func (f Func) Materialize(data []byte, mimeType string) (string, error) {
	return f(data, mimeType)
}

// Package archive provides random access to the entries of an in-memory
// bundle archive.
//
// An Archive is opened once per bundle and read by entry index any number
// of times, in any order, including while another entry's content is being
// processed. Entries are decoded on demand and, unless disabled, memoised
// per index for the archive's lifetime.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/singleflight"

	"github.com/meigma/banner/internal/bannertype"
	"github.com/meigma/banner/internal/pathutil"
)

// DefaultMaxEntrySize is the default per-entry decompressed size limit (256MB).
const DefaultMaxEntrySize = 256 << 20

// errTooLarge is wrapped into ErrEntryUnreadable when an entry exceeds the limit.
var errTooLarge = errors.New("entry exceeds size limit")

// Archive is the working index of a bundle archive.
//
// Archive is safe for concurrent use.
type Archive struct {
	zr           *zip.Reader
	entries      []bannertype.Entry
	maxEntrySize uint64
	cacheEnabled bool
	logger       *slog.Logger

	mu        sync.RWMutex
	cache     map[int][]byte
	readGroup singleflight.Group // zero value is valid
}

// Option configures an Archive.
type Option func(*Archive)

// WithMaxEntrySize limits the decompressed size of any single entry.
// Set limit to 0 to disable the limit.
func WithMaxEntrySize(limit uint64) Option {
	return func(a *Archive) {
		a.maxEntrySize = limit
	}
}

// WithCache controls whether decoded entry bytes are memoised per index
// (default: true). Caching never changes the bytes returned.
func WithCache(enabled bool) Option {
	return func(a *Archive) {
		a.cacheEnabled = enabled
	}
}

// WithLogger sets the logger for archive diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// Open parses the archive held in data.
//
// The working set excludes directory entries and macOS resource-fork
// shadow files. The provided data is retained by the Archive; callers must
// not modify it after calling Open.
func Open(data []byte, opts ...Option) (*Archive, error) {
	a := &Archive{
		maxEntrySize: DefaultMaxEntrySize,
		cacheEnabled: true,
		cache:        make(map[int][]byte),
	}
	for _, opt := range opts {
		opt(a)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if zr == nil {
		return nil, fmt.Errorf("%w: %v", bannertype.ErrArchiveCorrupt, err)
	}
	if err != nil {
		// The reader is still usable when only entry names were rejected
		// (backslashes, absolute paths). Path resolution decides their fate.
		a.log().Debug("archive has non-local entry names", "error", err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	a.zr = zr

	a.entries = make([]bannertype.Entry, 0, len(zr.File))
	for i, f := range zr.File {
		if pathutil.IsDirectory(f.Name) || pathutil.IsResourceFork(f.Name) {
			a.log().Debug("skipping archive entry", "path", f.Name)
			continue
		}
		a.entries = append(a.entries, bannertype.Entry{
			Index: i,
			Path:  pathutil.Normalize(f.Name),
		})
	}
	return a, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Entries returns the working set in archive order.
// The returned slice must be treated as read-only.
func (a *Archive) Entries() []bannertype.Entry {
	return a.entries
}

// Len returns the number of entries in the archive, including directories
// and resource-fork files excluded from the working set.
func (a *Archive) Len() int {
	return len(a.zr.File)
}

// ReadBinary returns the decompressed bytes of the entry at index.
//
// The returned slice may be shared with other callers when caching is
// enabled and must not be modified.
func (a *Archive) ReadBinary(index int) ([]byte, error) {
	if index < 0 || index >= len(a.zr.File) {
		return nil, &fs.PathError{
			Op:   "read",
			Path: "#" + strconv.Itoa(index),
			Err:  fmt.Errorf("%w: index out of range", bannertype.ErrEntryUnreadable),
		}
	}
	if !a.cacheEnabled {
		return a.decode(index)
	}

	a.mu.RLock()
	data, ok := a.cache[index]
	a.mu.RUnlock()
	if ok {
		return data, nil
	}

	v, err, _ := a.readGroup.Do(strconv.Itoa(index), func() (any, error) {
		a.mu.RLock()
		cached, ok := a.cache[index]
		a.mu.RUnlock()
		if ok {
			return cached, nil
		}

		decoded, err := a.decode(index)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.cache[index] = decoded
		a.mu.Unlock()
		return decoded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil //nolint:forcetypeassert // only []byte is stored
}

// ReadText returns the content of the entry at index as UTF-8 text.
// It fails with ErrInvalidEncoding when the bytes are not valid UTF-8.
func (a *Archive) ReadText(index int) (string, error) {
	data, err := a.ReadBinary(index)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &fs.PathError{Op: "read", Path: a.zr.File[index].Name, Err: bannertype.ErrInvalidEncoding}
	}
	return string(data), nil
}

// decode decompresses one entry, enforcing the size limit on both the
// declared and the actual size.
func (a *Archive) decode(index int) ([]byte, error) {
	f := a.zr.File[index]
	unreadable := func(err error) error {
		return &fs.PathError{Op: "read", Path: f.Name, Err: fmt.Errorf("%w: %v", bannertype.ErrEntryUnreadable, err)}
	}

	if a.maxEntrySize > 0 && f.UncompressedSize64 > a.maxEntrySize {
		return nil, unreadable(errTooLarge)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, unreadable(err)
	}
	defer rc.Close() //nolint:errcheck // read errors are reported below

	data, err := readAllWithLimit(rc, a.maxEntrySize)
	if err != nil {
		return nil, unreadable(err)
	}
	a.log().Debug("decoded archive entry", "path", f.Name, "bytes", len(data))
	return data, nil
}

// readAllWithLimit reads up to maxSize bytes from r.
// Returns errTooLarge if more than maxSize bytes are available.
// A maxSize of 0 disables the limit.
func readAllWithLimit(r io.Reader, maxSize uint64) ([]byte, error) {
	if maxSize == 0 || maxSize > uint64(math.MaxInt64-1) {
		return io.ReadAll(r)
	}
	lr := &io.LimitedReader{R: r, N: int64(maxSize) + 1} //nolint:gosec // checked above
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > maxSize { //nolint:gosec // len is always non-negative
		return nil, errTooLarge
	}
	return data, nil
}

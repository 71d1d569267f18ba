package bannertype

import "errors"

// Sentinel errors for bundle resolution.
var (
	// ErrArchiveCorrupt is returned when the bundle cannot be opened as a zip archive.
	ErrArchiveCorrupt = errors.New("banner: archive corrupt")

	// ErrEntryUnreadable is returned when an archive entry cannot be decompressed.
	ErrEntryUnreadable = errors.New("banner: entry unreadable")

	// ErrInvalidEncoding is returned when text was required but the entry is not valid UTF-8.
	ErrInvalidEncoding = errors.New("banner: invalid text encoding")

	// ErrNoRootDocument is returned when the bundle contains no .html entry.
	ErrNoRootDocument = errors.New("banner: no root document")

	// ErrPathResolution is returned when an entry path cannot be made
	// relative to the root document's directory.
	ErrPathResolution = errors.New("banner: path resolution failed")
)

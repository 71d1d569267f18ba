package banner

import "github.com/meigma/banner/internal/bannertype"

// Sentinel errors re-exported from internal/bannertype.
var (
	// ErrArchiveCorrupt is returned when the bundle cannot be opened as a zip archive.
	ErrArchiveCorrupt = bannertype.ErrArchiveCorrupt

	// ErrEntryUnreadable is returned when an archive entry cannot be decompressed.
	ErrEntryUnreadable = bannertype.ErrEntryUnreadable

	// ErrInvalidEncoding is returned when the root document is not valid UTF-8.
	ErrInvalidEncoding = bannertype.ErrInvalidEncoding

	// ErrNoRootDocument is returned when the bundle contains no .html entry.
	ErrNoRootDocument = bannertype.ErrNoRootDocument

	// ErrPathResolution is returned when an entry path cannot be made
	// relative to the root document's directory.
	ErrPathResolution = bannertype.ErrPathResolution
)

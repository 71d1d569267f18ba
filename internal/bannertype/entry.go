package bannertype

// Entry is an addressable file in the bundle archive.
type Entry struct {
	// Index is the entry's position in the archive's central directory.
	// It is stable for the lifetime of the archive.
	Index int

	// Path is the stored entry name with forward slashes (e.g., "banner/index.html").
	Path string
}

// ResolvedEntry is an Entry whose path has been rewritten relative to the
// root document's directory.
type ResolvedEntry struct {
	// Index is the archive index of the underlying entry.
	Index int

	// RelativePath is the entry path relative to the root document's
	// directory. It may begin with "../" segments.
	RelativePath string
}

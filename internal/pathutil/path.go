// Package pathutil provides path manipulation for slash-separated archive paths.
package pathutil

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/meigma/banner/internal/bannertype"
)

// macOSMetadataDir is the folder Finder adds to archives it creates.
const macOSMetadataDir = "__MACOSX"

// Normalize converts a stored archive name to a clean slash path.
//
// It performs the following transformations:
//   - Converts backslashes to slashes: "a\b.png" → "a/b.png"
//   - Collapses consecutive slashes: "a//b" → "a/b"
//   - Drops "." segments: "./a/./b" → "a/b"
//   - Preserves a single leading slash for absolute names
//
// ".." segments are preserved; Rel decides whether they can be resolved.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	abs := strings.HasPrefix(p, "/")

	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	joined := strings.Join(result, "/")
	if abs {
		return "/" + joined
	}
	return joined
}

// Base returns the last element of a slash-separated path.
// If path is empty or ".", it returns ".".
func Base(path string) string {
	if path == "" || path == "." {
		return "."
	}
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Dir returns everything but the last element of a slash-separated path.
// A top-level name has the empty directory "".
func Dir(path string) string {
	path = strings.TrimSuffix(path, "/")
	i := strings.LastIndex(path, "/")
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	default:
		return path[:i]
	}
}

// IsDirectory reports whether a stored archive name denotes a directory.
func IsDirectory(name string) bool {
	return strings.HasSuffix(name, "/") || strings.HasSuffix(name, `\`)
}

// IsResourceFork reports whether name is a macOS metadata shadow file:
// either its file name starts with "._" or it lives under __MACOSX/.
func IsResourceFork(name string) bool {
	n := Normalize(name)
	if strings.HasPrefix(Base(n), "._") {
		return true
	}
	return n == macOSMetadataDir || strings.HasPrefix(n, macOSMetadataDir+"/")
}

// Rel returns target expressed relative to the directory base.
//
// Both arguments are slash paths. The common leading components are
// removed and each remaining base component becomes "..":
//
//	Rel("banner", "banner/images/a.png") == "images/a.png"
//	Rel("banner/html", "banner/js/app.js") == "../js/app.js"
//	Rel("", "images/a.png") == "images/a.png"
//
// Rel fails with ErrPathResolution when only one of the paths is absolute
// or when the unmatched part of base contains "..", since the directory a
// ".." steps out of cannot be named.
func Rel(base, target string) (string, error) {
	base = Normalize(base)
	target = Normalize(target)

	baseAbs := strings.HasPrefix(base, "/")
	targetAbs := strings.HasPrefix(target, "/")
	if baseAbs != targetAbs {
		return "", fmt.Errorf("%w: %q is not relative to %q", bannertype.ErrPathResolution, target, base)
	}

	baseParts := split(base)
	targetParts := split(target)

	i := 0
	for i < len(baseParts) && i < len(targetParts) && baseParts[i] == targetParts[i] {
		i++
	}

	out := make([]string, 0, len(baseParts)-i+len(targetParts)-i)
	for _, part := range baseParts[i:] {
		if part == ".." {
			return "", fmt.Errorf("%w: %q is not relative to %q", bannertype.ErrPathResolution, target, base)
		}
		out = append(out, "..")
	}
	out = append(out, targetParts[i:]...)
	return strings.Join(out, "/"), nil
}

// Resolve rewrites every entry path relative to base, preserving order and
// archive indices. The first failure aborts resolution.
func Resolve(entries []bannertype.Entry, base string) ([]bannertype.ResolvedEntry, error) {
	resolved := make([]bannertype.ResolvedEntry, 0, len(entries))
	for _, e := range entries {
		rel, err := Rel(base, e.Path)
		if err != nil {
			return nil, &fs.PathError{Op: "resolve", Path: e.Path, Err: err}
		}
		resolved = append(resolved, bannertype.ResolvedEntry{Index: e.Index, RelativePath: rel})
	}
	return resolved, nil
}

func split(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Package mimetype infers media types from archive paths.
//
// The table is fixed rather than read from the host's mime.types so that a
// bundle rewrites identically on every platform, including js/wasm where no
// system table exists.
package mimetype

import (
	"path"
	"strings"
)

const (
	// TextPlain is the fallback for manifest assets and script holders.
	TextPlain = "text/plain"

	// OctetStream is the fallback for gwd-image sources.
	OctetStream = "application/octet-stream"
)

var byExtension = map[string]string{
	// documents and code
	".htm":  "text/html",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".json": "application/json",
	".xml":  "text/xml",
	".txt":  "text/plain",
	".map":  "application/json",

	// images
	".png":  "image/png",
	".apng": "image/apng",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".bmp":  "image/bmp",

	// fonts
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".eot":   "application/vnd.ms-fontobject",

	// media
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// FromPath returns the media type for the extension of p.
// ok is false when the extension is unknown.
func FromPath(p string) (mimeType string, ok bool) {
	ext := strings.ToLower(path.Ext(p))
	mimeType, ok = byExtension[ext]
	return mimeType, ok
}

// FromPathOr returns the media type for p, or fallback when unknown.
func FromPathOr(p, fallback string) string {
	if mimeType, ok := FromPath(p); ok {
		return mimeType
	}
	return fallback
}

// Split separates a media type into its major and minor parts, dropping
// any parameters: "image/svg+xml" → ("image", "svg+xml").
func Split(mimeType string) (major, minor string) {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(mimeType)
	major, minor, found := strings.Cut(mimeType, "/")
	if !found {
		return major, ""
	}
	return major, minor
}

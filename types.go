package banner

import (
	"github.com/meigma/banner/internal/bannertype"
	"github.com/meigma/banner/internal/rewrite"
	"github.com/meigma/banner/materialize"
)

// --- Re-exports from internal packages ---

// Format identifies the authoring tool that produced a bundle.
type Format = bannertype.Format

// Format constants.
const (
	FormatAdobeAnimate      = bannertype.FormatAdobeAnimate
	FormatGoogleWebDesigner = bannertype.FormatGoogleWebDesigner
)

// MatchPolicy selects the archive entry a substring reference denotes.
type MatchPolicy = rewrite.MatchPolicy

// MatchPolicy constants.
const (
	// MatchFirst picks the first entry in archive order whose path contains
	// the reference. This is the default.
	MatchFirst = rewrite.MatchFirst

	// MatchLongestSuffix picks the containing entry that shares the longest
	// suffix with the reference, so "a.png" prefers "images/a.png" over
	// "images/a.png.bak" regardless of archive order.
	MatchLongestSuffix = rewrite.MatchLongestSuffix
)

// Materializer registers bytes with the host and returns a handle to them.
type Materializer = materialize.Materializer

// Result describes a resolved bundle.
type Result struct {
	// Handle refers to the rewritten root document.
	Handle string

	// Format is the detected authoring tool.
	Format Format

	// RootPath is the archive path of the root document.
	RootPath string

	// Rewritten is the number of asset references replaced with handles.
	Rewritten int
}

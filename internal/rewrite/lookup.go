package rewrite

import (
	"strings"

	"github.com/meigma/banner/internal/bannertype"
)

// MatchPolicy selects the entry a reference found in document text denotes
// when the reference is matched by substring containment.
type MatchPolicy uint8

const (
	// MatchFirst picks the first entry, in archive order, whose relative
	// path contains the reference. When several paths contain the same
	// reference ("a.png" in both "images/a.png" and "backup/a.png.bak")
	// the result depends on archive order.
	MatchFirst MatchPolicy = iota

	// MatchLongestSuffix picks, among the entries whose relative path
	// contains the reference, the one sharing the longest common suffix
	// with it. Ties fall back to archive order.
	MatchLongestSuffix
)

// String returns the human-readable name of the policy.
func (p MatchPolicy) String() string {
	switch p {
	case MatchFirst:
		return "first"
	case MatchLongestSuffix:
		return "longest-suffix"
	default:
		return "unknown"
	}
}

// findContaining returns the entry whose relative path contains ref,
// chosen according to policy. Empty references never match.
func findContaining(entries []bannertype.ResolvedEntry, ref string, policy MatchPolicy) (bannertype.ResolvedEntry, bool) {
	if ref == "" {
		return bannertype.ResolvedEntry{}, false
	}

	best, bestScore := -1, -1
	for i, e := range entries {
		if !strings.Contains(e.RelativePath, ref) {
			continue
		}
		if policy != MatchLongestSuffix {
			return e, true
		}
		if score := commonSuffixLen(e.RelativePath, ref); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return bannertype.ResolvedEntry{}, false
	}
	return entries[best], true
}

// findExact returns the first entry whose relative path equals ref.
func findExact(entries []bannertype.ResolvedEntry, ref string) (bannertype.ResolvedEntry, bool) {
	for _, e := range entries {
		if e.RelativePath == ref {
			return e, true
		}
	}
	return bannertype.ResolvedEntry{}, false
}

func commonSuffixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

package rewrite

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/meigma/banner/internal/bannertype"
	"github.com/meigma/banner/internal/mimetype"
)

// srcAttr matches a double-quoted src attribute on a single line.
var srcAttr = regexp.MustCompile(`src="(.*?)"`)

// AdobeAnimate rewrites every src attribute that references an archive
// entry, embedding manifest handles into the referenced scripts, and
// returns the handle of the rewritten document.
func (r *Rewriter) AdobeAnimate(document string) (string, error) {
	out, err := replaceAllSubmatchFunc(srcAttr, document, func(m []int) (string, error) {
		ref := document[m[2]:m[3]]
		entry, ok := findContaining(r.entries, ref, r.policy)
		if !ok {
			r.log().Debug("unmatched src reference", "ref", ref)
			return document[m[0]:m[1]], nil
		}

		handle, err := r.materializeHolder(entry)
		if err != nil {
			return "", err
		}
		r.log().Debug("rewrote src reference", "ref", ref, "entry", entry.RelativePath, "handle", handle)
		return `src="` + handle + `"`, nil
	})
	if err != nil {
		return "", err
	}
	return r.finish(out)
}

// materializeHolder materializes the entry an src attribute points at. Text
// entries have their asset manifests rewritten first; binary entries are
// registered unchanged.
func (r *Rewriter) materializeHolder(entry bannertype.ResolvedEntry) (string, error) {
	data, err := r.source.ReadBinary(entry.Index)
	if err != nil {
		return "", err
	}

	if utf8.Valid(data) {
		content, err := r.rewriteManifests(string(data))
		if err != nil {
			return "", err
		}
		data = []byte(content)
	}

	mimeType := mimetype.FromPathOr(entry.RelativePath, mimetype.TextPlain)
	return r.materializeEntry(entry, data, mimeType)
}

// rewriteManifests replaces the matching asset literals of every manifest
// list in script.
func (r *Rewriter) rewriteManifests(script string) (string, error) {
	lists := findManifestLists(script)
	if len(lists) == 0 {
		return script, nil
	}

	var b strings.Builder
	b.Grow(len(script))
	last := 0
	for _, list := range lists {
		rewritten, err := rewriteObjectLiterals(script[list.start:list.end], r.rewriteAsset)
		if err != nil {
			return "", err
		}
		b.WriteString(script[last:list.start])
		b.WriteString(rewritten)
		last = list.end
	}
	b.WriteString(script[last:])
	return b.String(), nil
}

// rewriteAsset turns one manifest literal into its canonical handle form
// when its src names an archive entry.
func (r *Rewriter) rewriteAsset(literal string) (string, bool, error) {
	asset, ok := parseAssetLiteral(literal)
	if !ok {
		return "", false, nil
	}

	ref := asset.src
	if q := strings.IndexByte(ref, '?'); q >= 0 {
		ref = ref[:q]
	}
	entry, ok := findContaining(r.entries, ref, r.policy)
	if !ok {
		r.log().Debug("unmatched manifest asset", "id", asset.id, "src", asset.src)
		return "", false, nil
	}

	data, err := r.source.ReadBinary(entry.Index)
	if err != nil {
		return "", false, err
	}
	mimeType := mimetype.FromPathOr(entry.RelativePath, mimetype.TextPlain)
	handle, err := r.materializeEntry(entry, data, mimeType)
	if err != nil {
		return "", false, err
	}

	id := asset.id
	if asset.idQuote != '"' {
		id = strings.ReplaceAll(id, `"`, `\"`)
	}
	major, minor := mimetype.Split(mimeType)
	r.log().Debug("rewrote manifest asset", "id", asset.id, "entry", entry.RelativePath, "handle", handle)
	return fmt.Sprintf(`{src: "%s", id: "%s", type: "%s", ext: "%s"}`, handle, id, major, minor), true, nil
}

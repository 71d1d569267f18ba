package rewrite

import (
	"regexp"

	"github.com/meigma/banner/internal/mimetype"
)

// gwdImageSource matches the source attribute of a gwd-image start tag.
// Quoted attribute values are skipped whole, so a ">" inside one does not
// end the tag.
var gwdImageSource = regexp.MustCompile(`<gwd-image\b(?:[^>"']|"[^"]*"|'[^']*')*?\ssource="([^"]*)"`)

// GoogleWebDesigner rewrites the source attribute of every gwd-image
// element whose value exactly equals an entry's relative path, and returns
// the handle of the rewritten document. Only the attribute value changes.
func (r *Rewriter) GoogleWebDesigner(document string) (string, error) {
	out, err := replaceAllSubmatchFunc(gwdImageSource, document, func(m []int) (string, error) {
		tag := document[m[0]:m[1]]
		ref := document[m[2]:m[3]]
		entry, ok := findExact(r.entries, ref)
		if !ok {
			r.log().Debug("unmatched gwd-image source", "ref", ref)
			return tag, nil
		}

		data, err := r.source.ReadBinary(entry.Index)
		if err != nil {
			return "", err
		}
		mimeType := mimetype.FromPathOr(entry.RelativePath, mimetype.OctetStream)
		handle, err := r.materializeEntry(entry, data, mimeType)
		if err != nil {
			return "", err
		}

		r.log().Debug("rewrote gwd-image source", "ref", ref, "handle", handle)
		return document[m[0]:m[2]] + handle + document[m[3]:m[1]], nil
	})
	if err != nil {
		return "", err
	}
	return r.finish(out)
}

package rewrite

import (
	"strings"

	"github.com/meigma/banner/internal/bannertype"
)

// gwdMarker identifies documents built by Google Web Designer.
const gwdMarker = "gwd-image"

// Detect classifies a root document by the tool that produced it.
// Anything that is not recognisably Google Web Designer output is treated
// as Adobe Animate.
func Detect(document string) bannertype.Format {
	if strings.Contains(document, gwdMarker) {
		return bannertype.FormatGoogleWebDesigner
	}
	return bannertype.FormatAdobeAnimate
}

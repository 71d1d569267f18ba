package bannertype

// Format identifies the authoring tool that produced a bundle.
type Format uint8

const (
	// FormatAdobeAnimate is the default classification: src attributes
	// pointing at scripts that carry a createjs asset manifest.
	FormatAdobeAnimate Format = iota

	// FormatGoogleWebDesigner marks documents built from gwd-image elements.
	FormatGoogleWebDesigner
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatAdobeAnimate:
		return "adobe-animate"
	case FormatGoogleWebDesigner:
		return "google-web-designer"
	default:
		return "unknown"
	}
}

// Package bannertype holds the types and sentinel errors shared between the
// archive, path and rewrite packages and re-exported by the banner package.
package bannertype

package sitekit

// Platform identifies the site builder or CMS that produced a page.
type Platform string

// Platforms the old site may have been built with.
const (
	PlatformUnknown     Platform = ""
	PlatformWordPress   Platform = "wordpress"
	PlatformSquarespace Platform = "squarespace"
	PlatformWix         Platform = "wix"
	PlatformWebflow     Platform = "webflow"
)

// PlatformDetector identifies the platform from HTML.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}

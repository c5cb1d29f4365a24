package sitekit

// URLFrontier is a breadth-first crawl queue that accepts each URL once.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the oldest queued link.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of queued links.
	Len() int

	// Seen returns true if the URL has been queued before.
	Seen(url string) bool
}

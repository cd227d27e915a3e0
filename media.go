package epollo

// MediaStripper removes images, video, and other embedded media from an
// HTML document so it can be displayed text-only.
type MediaStripper interface {
	// Strip returns the document with media elements removed and with
	// blocking rules injected so dynamically added media stays hidden.
	Strip(html string) (string, error)
}

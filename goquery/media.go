// Package goquery implements HTML document rewriting using the goquery
// DOM library.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/epollo/epollo"
)

// mediaSelector matches every element that displays or embeds media.
// Iframes are included because they are the usual carrier for embedded
// video players.
const mediaSelector = "img, picture, video, audio, source, iframe, embed, object, canvas"

// backgroundRe matches background and background-image declarations
// that reference a url(), inside inline style attributes.
var backgroundRe = regexp.MustCompile(`(?i)(?:background-image|background)\s*:\s*[^;]*url\([^)]*\)[^;]*;?`)

// semicolonRe collapses the doubled semicolons left behind after a
// declaration is cut out of a style attribute.
var semicolonRe = regexp.MustCompile(`;+`)

// blockerCSS hides media elements that reappear after stripping, such
// as those reconstructed by the page's own scripts.
const blockerCSS = `<style id="epollo-media-blocker">
img, picture, video, audio, iframe, embed, object, canvas {
	display: none !important;
	visibility: hidden !important;
	opacity: 0 !important;
	width: 0 !important;
	height: 0 !important;
}
</style>`

// blockerJS removes dynamically inserted media and blocks playback for
// the lifetime of the page.
const blockerJS = `<script>
(function() {
	function removeMedia() {
		document.querySelectorAll('img, picture, video, audio, iframe, embed, object, canvas').forEach(function(el) {
			el.remove();
		});
	}
	removeMedia();
	var observer = new MutationObserver(removeMedia);
	function observe() {
		observer.observe(document.body, { childList: true, subtree: true });
	}
	if (document.body) {
		observe();
	} else {
		document.addEventListener('DOMContentLoaded', observe);
	}
	document.addEventListener('play', function(e) {
		if (e.target.tagName === 'VIDEO' || e.target.tagName === 'AUDIO') {
			e.preventDefault();
			e.target.pause();
			e.target.remove();
		}
	}, true);
})();
</script>`

// Ensure MediaStripper implements epollo.MediaStripper at compile time.
var _ epollo.MediaStripper = (*MediaStripper)(nil)

// MediaStripper removes images, video, and other embedded media from an
// HTML document, and injects CSS and JavaScript that keep scripts on
// the page from adding media back after it is displayed.
type MediaStripper struct{}

// NewMediaStripper creates a new MediaStripper.
func NewMediaStripper() *MediaStripper {
	return &MediaStripper{}
}

// Strip returns the document without media elements. Inline styles
// lose their background images, and the returned document carries a
// style block and a script that suppress dynamically loaded media.
func (s *MediaStripper) Strip(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", epollo.Errorf(epollo.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(mediaSelector).Remove()

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		if !strings.Contains(strings.ToLower(style), "url(") {
			return
		}
		style = backgroundRe.ReplaceAllString(style, "")
		style = strings.Trim(semicolonRe.ReplaceAllString(style, ";"), "; ")
		if style == "" {
			sel.RemoveAttr("style")
		} else {
			sel.SetAttr("style", style)
		}
	})

	if head := doc.Find("head"); head.Length() > 0 {
		head.AppendHtml(blockerCSS)
	} else {
		doc.Find("body").PrependHtml(blockerCSS)
	}
	doc.Find("body").AppendHtml(blockerJS)

	out, err := doc.Html()
	if err != nil {
		return "", epollo.Errorf(epollo.EINTERNAL, "failed to render HTML: %v", err)
	}
	return out, nil
}

package goquery_test

import (
	"testing"

	"github.com/epollo/epollo/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaStripper_Strip(t *testing.T) {
	t.Parallel()

	t.Run("removes media elements", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Article</title></head>
<body>
<p>Before</p>
<img src="photo.jpg" alt="photo">
<picture><source srcset="big.webp"><img src="small.jpg"></picture>
<video controls><source src="clip.mp4" type="video/mp4"></video>
<iframe src="https://www.youtube.com/embed/abc"></iframe>
<embed src="movie.swf">
<object data="movie.mp4"></object>
<canvas width="300" height="150"></canvas>
<p>After</p>
</body>
</html>`

		out, err := goquery.NewMediaStripper().Strip(html)
		require.NoError(t, err)

		assert.Contains(t, out, "<p>Before</p>")
		assert.Contains(t, out, "<p>After</p>")
		assert.NotContains(t, out, "<img")
		assert.NotContains(t, out, "<picture")
		assert.NotContains(t, out, "<video")
		assert.NotContains(t, out, "<iframe")
		assert.NotContains(t, out, "<embed")
		assert.NotContains(t, out, "<object")
		assert.NotContains(t, out, "<canvas")
	})

	t.Run("strips background images from inline styles", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div style="background-image: url('hero.jpg'); color: red;">Hero</div>
<div style="background: #fff url(tile.png) repeat;">Tiled</div>
<div style="background-image: url(only.png)">Empty after</div>
</body></html>`

		out, err := goquery.NewMediaStripper().Strip(html)
		require.NoError(t, err)

		assert.NotContains(t, out, "hero.jpg")
		assert.NotContains(t, out, "tile.png")
		assert.NotContains(t, out, "only.png")
		assert.Contains(t, out, "color: red")
	})

	t.Run("leaves styles without urls alone", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div style="background: #f5f5f5; padding: 1em;">Box</div></body></html>`

		out, err := goquery.NewMediaStripper().Strip(html)
		require.NoError(t, err)

		assert.Contains(t, out, "background: #f5f5f5; padding: 1em;")
	})

	t.Run("injects the blocker style and script", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>t</title></head><body><p>text</p></body></html>`

		out, err := goquery.NewMediaStripper().Strip(html)
		require.NoError(t, err)

		assert.Contains(t, out, `id="epollo-media-blocker"`)
		assert.Contains(t, out, "MutationObserver")
	})

	t.Run("handles fragments without head or body tags", func(t *testing.T) {
		t.Parallel()

		out, err := goquery.NewMediaStripper().Strip(`<p>Hello</p><img src="x.png">`)
		require.NoError(t, err)

		assert.Contains(t, out, "<p>Hello</p>")
		assert.NotContains(t, out, "<img")
		assert.Contains(t, out, "epollo-media-blocker")
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		out, err := goquery.NewMediaStripper().Strip("")
		require.NoError(t, err)
		assert.Contains(t, out, "epollo-media-blocker")
	})
}

// Package fs provides file-based storage for captured screenshots.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/epollo/epollo"
)

// Ensure ScreenshotStore implements epollo.ScreenshotStore at compile time.
var _ epollo.ScreenshotStore = (*ScreenshotStore)(nil)

// ScreenshotStore writes screenshots to a directory with date-prefixed
// filenames. Writes are atomic: data goes to a temporary file first and
// is renamed into place.
type ScreenshotStore struct {
	dir string
	now func() time.Time
}

// StoreOption configures a ScreenshotStore.
type StoreOption func(*ScreenshotStore)

// WithClock overrides the time source used for filename date prefixes.
func WithClock(now func() time.Time) StoreOption {
	return func(s *ScreenshotStore) {
		s.now = now
	}
}

// NewScreenshotStore creates a store rooted at dir. The directory is
// created on the first Save.
func NewScreenshotStore(dir string, opts ...StoreOption) *ScreenshotStore {
	s := &ScreenshotStore{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FilenameForURL builds the filename for a screenshot of rawURL at the
// given batch index. Example: 20260830_screenshot_0_example.com_docs.png
func FilenameForURL(rawURL string, index int, format string, now time.Time) string {
	if format == "" {
		format = epollo.FormatPNG
	}
	return fmt.Sprintf("%s_screenshot_%d_%s.%s",
		now.Format("20060102"), index, sanitizeURL(rawURL), format)
}

// sanitizeURL strips the scheme and replaces path separators so the URL
// can serve as a filename component.
func sanitizeURL(rawURL string) string {
	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		s = u.Host + u.Path
		if u.RawQuery != "" {
			s += "_" + u.RawQuery
		}
	} else {
		s = strings.TrimPrefix(s, "https://")
		s = strings.TrimPrefix(s, "http://")
	}
	replacer := strings.NewReplacer("/", "_", "?", "_", "&", "_", "=", "_", ":", "_", " ", "_")
	s = replacer.Replace(s)
	s = strings.Trim(s, "_")
	if s == "" {
		s = "screenshot"
	}
	return s
}

// Save writes the screenshot data and returns the path of the written file.
func (s *ScreenshotStore) Save(rawURL string, index int, data []byte, format string) (string, error) {
	if len(data) == 0 {
		return "", epollo.Errorf(epollo.EINVALID, "screenshot data is empty")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	finalPath := filepath.Join(s.dir, FilenameForURL(rawURL, index, format, s.now()))

	// Write to a temp file in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(s.dir, ".screenshot-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return finalPath, nil
}

package ollama_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/mock"
	"github.com/epollo/epollo/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngImage encodes a blank PNG of the given dimensions.
func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestOCR_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("queries a normal image once", func(t *testing.T) {
		t.Parallel()

		calls := 0
		vision := &mock.Vision{
			QueryFn: func(ctx context.Context, img []byte, prompt string) (string, error) {
				calls++
				assert.Equal(t, ollama.DefaultOCRPrompt, prompt)
				return "hello world", nil
			},
		}

		out, err := ollama.NewOCR(vision).ExtractText(context.Background(), pngImage(t, 100, 150), "")
		require.NoError(t, err)
		assert.Equal(t, "hello world", out)
		assert.Equal(t, 1, calls)
	})

	t.Run("splits tall images into sections", func(t *testing.T) {
		t.Parallel()

		calls := 0
		vision := &mock.Vision{
			QueryFn: func(ctx context.Context, img []byte, prompt string) (string, error) {
				calls++
				// each crop must decode on its own
				_, err := png.Decode(bytes.NewReader(img))
				require.NoError(t, err)
				return fmt.Sprintf("text %d", calls), nil
			},
		}

		// 100x500 at ratio 2.0 means 200px crops, so three of them.
		out, err := ollama.NewOCR(vision).ExtractText(context.Background(), pngImage(t, 100, 500), "")
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, out, "--- Section 1 ---\ntext 1")
		assert.Contains(t, out, "--- Section 3 ---\ntext 3")
	})

	t.Run("skips failed crops", func(t *testing.T) {
		t.Parallel()

		calls := 0
		vision := &mock.Vision{
			QueryFn: func(ctx context.Context, img []byte, prompt string) (string, error) {
				calls++
				if calls == 2 {
					return "", epollo.Errorf(epollo.EUNAVAILABLE, "model hiccup")
				}
				return fmt.Sprintf("text %d", calls), nil
			},
		}

		out, err := ollama.NewOCR(vision).ExtractText(context.Background(), pngImage(t, 100, 500), "")
		require.NoError(t, err)
		assert.Contains(t, out, "--- Section 1 ---")
		assert.NotContains(t, out, "--- Section 2 ---")
		assert.Contains(t, out, "--- Section 3 ---")
	})

	t.Run("fails when every crop query fails", func(t *testing.T) {
		t.Parallel()

		vision := &mock.Vision{
			QueryFn: func(ctx context.Context, img []byte, prompt string) (string, error) {
				return "", epollo.Errorf(epollo.EUNAVAILABLE, "model is down")
			},
		}

		_, err := ollama.NewOCR(vision).ExtractText(context.Background(), pngImage(t, 100, 500), "")
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
	})

	t.Run("honors a custom aspect ratio", func(t *testing.T) {
		t.Parallel()

		calls := 0
		vision := &mock.Vision{
			QueryFn: func(ctx context.Context, img []byte, prompt string) (string, error) {
				calls++
				return "ok", nil
			},
		}

		ocr := ollama.NewOCR(vision, ollama.WithMaxAspectRatio(10))
		_, err := ocr.ExtractText(context.Background(), pngImage(t, 100, 500), "")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("rejects undecodable data", func(t *testing.T) {
		t.Parallel()

		vision := &mock.Vision{}

		_, err := ollama.NewOCR(vision).ExtractText(context.Background(), []byte("not an image"), "")
		require.Error(t, err)
		assert.Equal(t, epollo.EINVALID, epollo.ErrorCode(err))
	})
}

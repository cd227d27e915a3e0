package ollama

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/jpeg" // register decoder for JPEG screenshots

	"github.com/epollo/epollo"
	"github.com/oliamb/cutter"
)

// DefaultOCRPrompt asks for plain text extraction.
const DefaultOCRPrompt = "Extract all text from this image."

// DefaultMaxAspectRatio is the height/width ratio above which tall
// screenshots are split into crops. Vision models lose accuracy on
// extremely tall inputs.
const DefaultMaxAspectRatio = 2.0

// cropOverlap is the fraction of crop height repeated at crop
// boundaries so text spanning a boundary stays readable.
const cropOverlap = 0.1

// OCR extracts text from screenshots via a vision model, automatically
// splitting very tall captures (such as full-page screenshots) into
// overlapping crops.
type OCR struct {
	vision         epollo.Vision
	maxAspectRatio float64
}

// OCROption configures an OCR service.
type OCROption func(*OCR)

// WithMaxAspectRatio overrides the crop threshold.
func WithMaxAspectRatio(r float64) OCROption {
	return func(o *OCR) {
		o.maxAspectRatio = r
	}
}

// NewOCR creates an OCR service on top of the given vision model.
func NewOCR(vision epollo.Vision, opts ...OCROption) *OCR {
	o := &OCR{
		vision:         vision,
		maxAspectRatio: DefaultMaxAspectRatio,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ExtractText runs OCR over the image. A failed crop is skipped rather
// than failing the whole extraction; an error is returned only when the
// image cannot be decoded or every query fails.
func (o *OCR) ExtractText(ctx context.Context, imageData []byte, prompt string) (string, error) {
	if prompt == "" {
		prompt = DefaultOCRPrompt
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", epollo.Errorf(epollo.EINVALID, "decoding image: %v", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 {
		return "", epollo.Errorf(epollo.EINVALID, "image has zero width")
	}

	if float64(height)/float64(width) <= o.maxAspectRatio {
		return o.vision.Query(ctx, imageData, prompt)
	}

	crops, err := o.cropTall(img, width, height)
	if err != nil {
		return "", err
	}

	var parts []string
	var lastErr error
	for i, crop := range crops {
		text, err := o.vision.Query(ctx, crop, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, fmt.Sprintf("--- Section %d ---\n%s", i+1, text))
		}
	}
	if len(parts) == 0 && lastErr != nil {
		return "", lastErr
	}

	return strings.Join(parts, "\n\n"), nil
}

// cropTall splits a tall image into PNG-encoded horizontal bands with
// overlap at the boundaries.
func (o *OCR) cropTall(img image.Image, width, height int) ([][]byte, error) {
	cropHeight := int(float64(width) * o.maxAspectRatio)
	numCrops := (height + cropHeight - 1) / cropHeight
	overlap := int(float64(cropHeight) * cropOverlap)

	crops := make([][]byte, 0, numCrops)
	for i := 0; i < numCrops; i++ {
		startY := i * cropHeight
		endY := min((i+1)*cropHeight, height)
		if i > 0 {
			startY = max(0, startY-overlap)
		}
		if i < numCrops-1 {
			endY = min(height, endY+overlap)
		}

		cropped, err := cutter.Crop(img, cutter.Config{
			Width:  width,
			Height: endY - startY,
			Anchor: image.Point{X: 0, Y: startY},
			Mode:   cutter.TopLeft,
		})
		if err != nil {
			return nil, epollo.Errorf(epollo.EINTERNAL, "cropping image: %v", err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, cropped); err != nil {
			return nil, epollo.Errorf(epollo.EINTERNAL, "encoding crop: %v", err)
		}
		crops = append(crops, buf.Bytes())
	}

	return crops, nil
}

package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// DefaultMaxDimension bounds the longest side of stored images.
const DefaultMaxDimension = 2400

// Processor downscales oversized still images before they are stored.
type Processor struct {
	maxDimension int
	quality      int
}

// NewProcessor returns a processor fitting images inside maxDimension pixels.
func NewProcessor(maxDimension int) *Processor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Processor{maxDimension: maxDimension, quality: 85}
}

// Fit returns data unchanged when the image already fits or its format
// is not re-encodable (gif, webp). Otherwise the image is resized to fit
// and re-encoded in its original format.
func (p *Processor) Fit(data []byte, mimeType string) ([]byte, error) {
	var format imaging.Format
	switch mimeType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= p.maxDimension && bounds.Dy() <= p.maxDimension {
		return data, nil
	}

	resized := imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

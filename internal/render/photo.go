package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"io"
	"os"
)

// ErrEmptyPhoto is returned for zero-sized images.
var ErrEmptyPhoto = errors.New("photo has no pixels")

// Photo is a decoded profile picture normalised to PNG.
type Photo struct {
	PNG    []byte
	Width  int
	Height int
	Format string
}

// DecodePhoto decodes a PNG, JPEG or GIF image and re-encodes it as PNG.
func DecodePhoto(r io.Reader) (*Photo, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrEmptyPhoto
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}

	return &Photo{
		PNG:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

// LoadPhoto reads and decodes the photo at path.
func LoadPhoto(path string) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	return DecodePhoto(f)
}

// Fit scales the photo into a box keeping its aspect ratio.
func (p *Photo) Fit(maxW, maxH float64) (float64, float64) {
	if p == nil || p.Width == 0 || p.Height == 0 {
		return 0, 0
	}
	scale := min(maxW/float64(p.Width), maxH/float64(p.Height))
	return float64(p.Width) * scale, float64(p.Height) * scale
}

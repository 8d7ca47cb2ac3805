package render

import (
	"bytes"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePhotoNormalisesToPNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(30, 20), nil))

	photo, err := DecodePhoto(&buf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", photo.Format)
	assert.Equal(t, 30, photo.Width)
	assert.Equal(t, 20, photo.Height)
	assert.True(t, bytes.HasPrefix(photo.PNG, []byte("\x89PNG")))
}

func TestDecodePhotoRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := DecodePhoto(strings.NewReader("definitely not an image"))
	require.Error(t, err)
}

func TestPhotoFit(t *testing.T) {
	t.Parallel()

	p := &Photo{Width: 60, Height: 120}
	w, h := p.Fit(30, 30)
	assert.InDelta(t, 15, w, 0.001)
	assert.InDelta(t, 30, h, 0.001)

	var missing *Photo
	w, h = missing.Fit(30, 30)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

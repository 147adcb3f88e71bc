package helpers

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func decodeBounds(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRenderThumbnail(t *testing.T) {
	thumb, err := RenderThumbnail(encodePNG(t, 1920, 1080), 150)
	require.NoError(t, err)
	width, height := decodeBounds(t, thumb)
	assert.Equal(t, 150, width)
	assert.Equal(t, 84, height)

	// Portrait input pins the height instead.
	thumb, err = RenderThumbnail(encodePNG(t, 1080, 1920), 150)
	require.NoError(t, err)
	width, height = decodeBounds(t, thumb)
	assert.Equal(t, 84, width)
	assert.Equal(t, 150, height)
}

func TestRenderThumbnailTinyInput(t *testing.T) {
	thumb, err := RenderThumbnail(encodePNG(t, 1, 400), 150)
	require.NoError(t, err)
	width, height := decodeBounds(t, thumb)
	assert.GreaterOrEqual(t, width, 1)
	assert.Equal(t, 150, height)
}

func TestRenderThumbnailInvalidInput(t *testing.T) {
	_, err := RenderThumbnail([]byte("not an image"), 150)
	assert.Error(t, err)
}

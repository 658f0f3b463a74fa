package u

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationForOrientation(t *testing.T) {
	assert.Equal(t, 180, RotationForOrientation(3))
	assert.Equal(t, 90, RotationForOrientation(6))
	assert.Equal(t, 270, RotationForOrientation(8))
	for _, o := range []int{0, 1, 2, 4, 5, 7, 9} {
		assert.Equal(t, 0, RotationForOrientation(o), "orientation %d", o)
	}
}

func TestRotateClockwise(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})

	r90 := RotateClockwise(src, 90)
	assert.Equal(t, 2, r90.Bounds().Dx())
	assert.Equal(t, 4, r90.Bounds().Dy())
	// top-left moves to top-right after a clockwise quarter turn
	rr, _, _, _ := r90.At(1, 0).RGBA()
	assert.NotZero(t, rr)

	r270 := RotateClockwise(src, 270)
	rr, _, _, _ = r270.At(0, 3).RGBA()
	assert.NotZero(t, rr)

	r180 := RotateClockwise(src, 180)
	rr, _, _, _ = r180.At(3, 1).RGBA()
	assert.NotZero(t, rr)

	assert.Equal(t, src, RotateClockwise(src, 0))
}

func TestGetExifOrientationWithoutExif(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))

	o, err := GetExifOrientation(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, 1, o)
}

func TestGetExifOrientation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))

	o, err := GetExifOrientation(withOrientation(buf.Bytes(), 6))
	assert.NoError(t, err)
	assert.Equal(t, 6, o)
}

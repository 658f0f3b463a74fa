package u

import (
	"image"

	"github.com/disintegration/imaging"
)

// RotateClockwise turns the image by the given number of degrees. imaging rotates counter-clockwise,
// so the quarter turns are swapped.
func RotateClockwise(src image.Image, degrees int) image.Image {
	switch degrees {
	case 90:
		return imaging.Rotate270(src)
	case 180:
		return imaging.Rotate180(src)
	case 270:
		return imaging.Rotate90(src)
	default:
		return src
	}
}

// FitToBox resizes in up to two passes: first to the box width, then, if the result is still too
// tall, down to the box height.
func FitToBox(src image.Image, maxWidth int, maxHeight int, filter imaging.ResampleFilter) image.Image {
	b := src.Bounds()
	w, h := ScaleToWidth(b.Dx(), b.Dy(), maxWidth)
	result := image.Image(imaging.Resize(src, w, h, filter))

	if h > maxHeight {
		w, h = ScaleToHeight(w, h, maxHeight)
		result = imaging.Resize(result, w, h, filter)
	}
	return result
}

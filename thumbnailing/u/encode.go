package u

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Encode writes a baseline JPEG. Nothing from the source's metadata is carried over.
func Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}

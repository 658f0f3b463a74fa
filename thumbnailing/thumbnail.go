package thumbnailing

import (
	"bytes"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/thumbnailing/u"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 90

// Transformer turns source image bytes into a variant-sized JPEG. It performs no I/O, so for the
// same input bytes and variant it always yields the same output.
type Transformer struct {
	quality int
	filter  imaging.ResampleFilter
}

func NewTransformer(quality int) *Transformer {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Transformer{
		quality: quality,
		filter:  imaging.CatmullRom,
	}
}

func (t *Transformer) Transform(src []byte, variant config.Variant) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding source: %s", common.ErrTransformFailed, err.Error())
	}

	orientation, err := u.GetExifOrientation(src)
	if err != nil {
		// assume no orientation if there was an error reading the exif header
		logrus.Warn("Non-fatal error reading exif headers: ", err.Error())
		orientation = 1
	}

	img = u.RotateClockwise(img, u.RotationForOrientation(orientation))
	img = u.FitToBox(img, variant.MaxWidth, variant.MaxHeight, t.filter)

	buf := &bytes.Buffer{}
	if err = u.Encode(buf, img, t.quality); err != nil {
		return nil, fmt.Errorf("%w: encoding thumbnail: %s", common.ErrTransformFailed, err.Error())
	}
	return buf.Bytes(), nil
}

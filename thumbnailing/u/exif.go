package u

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dsoprea/go-exif/v3"
)

// GetExifOrientation returns the EXIF orientation of the image, or 1 when none is recorded.
func GetExifOrientation(img []byte) (int, error) {
	rawExif, err := exif.SearchAndExtractExifWithReader(bytes.NewReader(img))
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return 1, nil
		}
		return 1, errors.New("exif: error reading possible exif data: " + err.Error())
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 1, errors.New("exif: error parsing exif data: " + err.Error())
	}

	var tag exif.ExifTag
	for _, t := range tags {
		if t.TagName == "Orientation" {
			tag = t
			break
		}
	}
	if tag.TagName != "Orientation" {
		return 1, nil
	}

	var orientation uint16 = 0
	vals, ok := tag.Value.([]uint16)
	if !ok || len(vals) <= 0 {
		orientation, ok = tag.Value.(uint16)
		if !ok {
			return 1, errors.New("exif: error parsing orientation: parse error (not an int)")
		}
	} else {
		orientation = vals[0]
	}

	// Some devices write 0 when they mean "no orientation"
	if orientation == 0 {
		return 1, nil
	}
	if orientation > 8 {
		return 1, fmt.Errorf("orientation out of range: %d", orientation)
	}
	return int(orientation), nil
}

// RotationForOrientation is the clockwise rotation needed to display an image upright. Mirrored
// orientations are not corrected.
func RotationForOrientation(orientation int) int {
	switch orientation {
	case 3:
		return 180
	case 6:
		return 90
	case 8:
		return 270
	default:
		return 0
	}
}

package util

import (
	"fmt"
)

// ItemFileName is the two-digit name under which a day's source image is stored.
func ItemFileName(day int) string {
	return fmt.Sprintf("%02d", day)
}

package u

// ScaleToWidth returns the dimensions of a srcWidth x srcHeight image scaled to the given width.
func ScaleToWidth(srcWidth int, srcHeight int, width int) (int, int) {
	return width, atLeastOne(roundHalfUp(srcHeight*width, srcWidth))
}

// ScaleToHeight returns the dimensions of a srcWidth x srcHeight image scaled to the given height.
func ScaleToHeight(srcWidth int, srcHeight int, height int) (int, int) {
	return atLeastOne(roundHalfUp(srcWidth*height, srcHeight)), height
}

// roundHalfUp divides two non-negative integers, rounding .5 away from zero.
func roundHalfUp(num int, den int) int {
	return (2*num + den) / (2 * den)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

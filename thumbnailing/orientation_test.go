package thumbnailing

// withOrientation splices a minimal big-endian EXIF segment carrying only an Orientation tag
// directly after the JPEG SOI marker.
func withOrientation(jpg []byte, orientation uint16) []byte {
	tiff := []byte{
		'M', 'M', 0x00, 0x2A,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12,
		0x00, 0x03,
		0x00, 0x00, 0x00, 0x01,
		byte(orientation >> 8), byte(orientation), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	segLen := len(payload) + 2

	out := make([]byte, 0, len(jpg)+len(payload)+4)
	out = append(out, jpg[:2]...)
	out = append(out, 0xFF, 0xE1, byte(segLen>>8), byte(segLen))
	out = append(out, payload...)
	out = append(out, jpg[2:]...)
	return out
}

package u

// withOrientation splices a minimal big-endian EXIF segment carrying only an Orientation tag
// directly after the JPEG SOI marker.
func withOrientation(jpg []byte, orientation uint16) []byte {
	tiff := []byte{
		'M', 'M', 0x00, 0x2A, // byte order, magic
		0x00, 0x00, 0x00, 0x08, // offset of IFD0
		0x00, 0x01, // one entry
		0x01, 0x12, // Orientation
		0x00, 0x03, // SHORT
		0x00, 0x00, 0x00, 0x01, // count
		byte(orientation >> 8), byte(orientation), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // no next IFD
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

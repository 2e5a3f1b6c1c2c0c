package dds

// Block decoders for the BC1/BC2/BC3 4x4 pixel formats. Each takes the raw
// block bytes and fills a 16-pixel RGBA slab in row-major order. They do no
// bounds placement; the caller maps pixels into the target image.

func rgb565(c uint16) (r, g, b uint8) {
	r = uint8(c>>11&0x1f) << 3
	g = uint8(c>>5&0x3f) << 2
	b = uint8(c&0x1f) << 3
	return
}

// dxt1Block decodes an 8-byte DXT1 block. Endpoint ordering selects the
// mode: color0 > color1 gives four opaque colors, otherwise three colors
// plus transparent black.
func dxt1Block(block []byte, out *[64]byte) {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8

	var pal [4][4]uint8
	pal[0][0], pal[0][1], pal[0][2] = rgb565(c0)
	pal[1][0], pal[1][1], pal[1][2] = rgb565(c1)
	pal[0][3], pal[1][3] = 255, 255

	if c0 > c1 {
		for i := 0; i < 3; i++ {
			pal[2][i] = uint8((2*uint16(pal[0][i]) + uint16(pal[1][i])) / 3)
			pal[3][i] = uint8((uint16(pal[0][i]) + 2*uint16(pal[1][i])) / 3)
		}
		pal[2][3], pal[3][3] = 255, 255
	} else {
		for i := 0; i < 3; i++ {
			pal[2][i] = uint8((uint16(pal[0][i]) + uint16(pal[1][i])) / 2)
		}
		pal[2][3] = 255
		// pal[3] stays transparent black.
	}

	bits := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24
	for p := 0; p < 16; p++ {
		c := pal[bits>>(uint(p)*2)&3]
		copy(out[p*4:], c[:])
	}
}

// dxt3Block decodes a 16-byte DXT3 block: 64 bits of explicit 4-bit alpha
// followed by a DXT1-style color half decoded in 4-color mode.
func dxt3Block(block []byte, out *[64]byte) {
	var alpha uint64
	for i := 0; i < 8; i++ {
		alpha |= uint64(block[i]) << (uint(i) * 8)
	}
	colorHalf(block[8:], out)
	for p := 0; p < 16; p++ {
		out[p*4+3] = uint8(alpha>>(uint(p)*4)&0xf) * 17
	}
}

// dxt5Block decodes a 16-byte DXT5 block: two alpha endpoints and 48 bits
// of 3-bit indices, followed by a DXT1-style color half in 4-color mode.
// Endpoint ordering selects an 8-alpha ramp or a 6-alpha ramp with 0 and
// 255 as the last two entries.
func dxt5Block(block []byte, out *[64]byte) {
	a0, a1 := block[0], block[1]

	var pal [8]uint8
	pal[0], pal[1] = a0, a1
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			pal[i+1] = uint8(((7-uint16(i))*uint16(a0) + uint16(i)*uint16(a1)) / 7)
		}
	} else {
		for i := 1; i < 5; i++ {
			pal[i+1] = uint8(((5-uint16(i))*uint16(a0) + uint16(i)*uint16(a1)) / 5)
		}
		pal[6], pal[7] = 0, 255
	}

	var bits uint64
	for i := 2; i < 8; i++ {
		bits |= uint64(block[i]) << (uint(i-2) * 8)
	}

	colorHalf(block[8:], out)
	for p := 0; p < 16; p++ {
		out[p*4+3] = pal[bits>>(uint(p)*3)&7]
	}
}

// colorHalf decodes the 8-byte color portion shared by DXT3/DXT5, always in
// 4-color mode, leaving alpha untouched.
func colorHalf(half []byte, out *[64]byte) {
	c0 := uint16(half[0]) | uint16(half[1])<<8
	c1 := uint16(half[2]) | uint16(half[3])<<8

	var pal [4][3]uint8
	pal[0][0], pal[0][1], pal[0][2] = rgb565(c0)
	pal[1][0], pal[1][1], pal[1][2] = rgb565(c1)
	for i := 0; i < 3; i++ {
		pal[2][i] = uint8((2*uint16(pal[0][i]) + uint16(pal[1][i])) / 3)
		pal[3][i] = uint8((uint16(pal[0][i]) + 2*uint16(pal[1][i])) / 3)
	}

	bits := uint32(half[4]) | uint32(half[5])<<8 | uint32(half[6])<<16 | uint32(half[7])<<24
	for p := 0; p < 16; p++ {
		c := pal[bits>>(uint(p)*2)&3]
		copy(out[p*4:p*4+3], c[:])
	}
}

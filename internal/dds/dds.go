// Package dds decodes DXT-compressed DDS textures, including the headerless
// compact variant used by Aurora-engine games. Standard files carry the
// "DDS " magic and a 124-byte header with a DXT1/3/5 fourCC; the compact
// variant starts directly with a small width/height/channels/linearSize
// header and is recognized heuristically by its leading power-of-two width.
package dds

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

const (
	ddsMagic   = 0x20534444 // "DDS "
	fourCCDXT1 = 0x31545844
	fourCCDXT3 = 0x33545844
	fourCCDXT5 = 0x35545844

	headerSize    = 124
	bioHeaderSize = 20
)

// Sniff reports whether data looks like a decodable DDS payload, standard
// or compact.
func Sniff(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	if binary.LittleEndian.Uint32(data) == ddsMagic {
		return true
	}
	return isCompact(data)
}

// isCompact applies the headerless-variant heuristic: the first word is a
// power-of-two width no larger than 4096.
func isCompact(data []byte) bool {
	if len(data) < bioHeaderSize {
		return false
	}
	w := binary.LittleEndian.Uint32(data)
	if w == ddsMagic {
		return false
	}
	return w > 0 && w <= 4096 && w&(w-1) == 0
}

// Decode reads a DDS stream and returns the top-level image as NRGBA.
// Mipmaps beyond level 0 are ignored.
func Decode(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dds: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory DDS payload.
func DecodeBytes(data []byte) (*image.NRGBA, error) {
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == ddsMagic {
		return decodeStandard(data[4:])
	}
	if isCompact(data) {
		return decodeCompact(data)
	}
	return nil, fmt.Errorf("dds: unrecognized header")
}

func decodeStandard(data []byte) (*image.NRGBA, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("dds: truncated header")
	}
	size := binary.LittleEndian.Uint32(data[0:])
	if size != headerSize {
		return nil, fmt.Errorf("dds: bad header size %d", size)
	}
	height := int(binary.LittleEndian.Uint32(data[8:]))
	width := int(binary.LittleEndian.Uint32(data[12:]))
	// Pixel format starts at offset 72 within the header; fourCC at 72+8.
	fourCC := binary.LittleEndian.Uint32(data[80:])

	payload := data[headerSize:]
	switch fourCC {
	case fourCCDXT1:
		return decodeBlocks(payload, width, height, 8, dxt1Block)
	case fourCCDXT3:
		return decodeBlocks(payload, width, height, 16, dxt3Block)
	case fourCCDXT5:
		return decodeBlocks(payload, width, height, 16, dxt5Block)
	}
	return nil, fmt.Errorf("dds: unsupported fourCC %#x", fourCC)
}

func decodeCompact(data []byte) (*image.NRGBA, error) {
	width := int(binary.LittleEndian.Uint32(data[0:]))
	height := int(binary.LittleEndian.Uint32(data[4:]))
	channels := int(binary.LittleEndian.Uint32(data[8:]))
	// linearSize and the alpha multiplier follow but are not needed.

	payload := data[bioHeaderSize:]
	if channels == 3 {
		return decodeBlocks(payload, width, height, 8, dxt1Block)
	}
	return decodeBlocks(payload, width, height, 16, dxt5Block)
}

func decodeBlocks(payload []byte, width, height, blockSize int, decode func([]byte, *[64]byte)) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || width > 1<<15 || height > 1<<15 {
		return nil, fmt.Errorf("dds: bad dimensions %dx%d", width, height)
	}
	bw := (width + 3) / 4
	bh := (height + 3) / 4
	if need := bw * bh * blockSize; len(payload) < need {
		return nil, fmt.Errorf("dds: payload %d bytes, need %d", len(payload), need)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	var px [64]byte
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			decode(payload[(by*bw+bx)*blockSize:], &px)
			for y := 0; y < 4; y++ {
				ty := by*4 + y
				if ty >= height {
					break
				}
				for x := 0; x < 4; x++ {
					tx := bx*4 + x
					if tx >= width {
						break
					}
					copy(img.Pix[img.PixOffset(tx, ty):], px[(y*4+x)*4:(y*4+x)*4+4])
				}
			}
		}
	}
	return img, nil
}

package encoding

import (
	"image/color"

	"github.com/boljen/go-bitmap"
)

// Pixel is the unpacked content of one plan map pixel.
//
// On disk a pixel is an RGBA64 value laid out as
//
//	R [16 bits] -> block id + 1 (0 means no block)
//	G [16 bits]
//	B [16 bits]
//	  32 bits   -> plot id + 1 (0 means no plot), G holds the significant bits
//	A [16 bits]
//	  16-9 [8 bits] -> block type
//	   8-1 [8 bits] -> flags bitmap
type Pixel struct {
	Block uint16
	Plot  uint32
	Kind  uint8
	Flags bitmap.Bitmap
}

// Pack encodes a pixel into a colour
func Pack(p Pixel) color.RGBA64 {
	return color.RGBA64{
		R: p.Block,
		G: uint16(p.Plot >> 16),
		B: uint16(p.Plot),
		A: uint16(p.Kind)<<8 | uint16(FlagByte(p.Flags)),
	}
}

// Unpack decodes a colour written by Pack
func Unpack(c color.RGBA64) Pixel {
	return Pixel{
		Block: c.R,
		Plot:  uint32(c.G)<<16 | uint32(c.B),
		Kind:  uint8(c.A >> 8),
		Flags: bitmap.Bitmap([]byte{uint8(c.A)}),
	}
}

// FlagByte returns the first 8 bits of a bitmap as a byte
func FlagByte(bm bitmap.Bitmap) uint8 {
	if len(bm) == 0 {
		return 0
	}
	return bm.Data(false)[0]
}

// NewFlags returns an empty 8 bit flags bitmap
func NewFlags() bitmap.Bitmap {
	return bitmap.New(8)
}

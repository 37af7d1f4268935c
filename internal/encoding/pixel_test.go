package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpack(t *testing.T) {
	flags := NewFlags()
	flags.Set(0, true)
	flags.Set(3, true)
	in := Pixel{Block: 513, Plot: 70001, Kind: 3, Flags: flags}

	out := Unpack(Pack(in))

	assert.Equal(t, uint16(513), out.Block)
	assert.Equal(t, uint32(70001), out.Plot)
	assert.Equal(t, uint8(3), out.Kind)
	assert.True(t, out.Flags.Get(0))
	assert.False(t, out.Flags.Get(1))
	assert.True(t, out.Flags.Get(3))
}

func TestFlagByteEmpty(t *testing.T) {
	assert.Equal(t, uint8(0), FlagByte(nil))
	assert.Equal(t, uint8(0), FlagByte(NewFlags()))
}

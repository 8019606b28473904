package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadsInBounds(t *testing.T) {
	assert := assert.New(t)

	f := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	b, ok := f.Byte(0)
	assert.True(ok)
	assert.Equal(uint8(0x01), b)

	h, ok := f.Half(2)
	assert.True(ok)
	assert.Equal(uint16(0x0304), h)

	w, ok := f.Word(4)
	assert.True(ok)
	assert.Equal(uint32(0x05060708), w)

	mac, ok := f.Bytes6(0)
	assert.True(ok)
	assert.Equal([6]byte{1, 2, 3, 4, 5, 6}, mac)
}

func TestLoadsOutOfBounds(t *testing.T) {
	assert := assert.New(t)

	f := New([]byte{0x01, 0x02})

	_, ok := f.Byte(10)
	assert.False(ok)

	_, ok = f.Half(1) // only 1 byte available from offset 1
	assert.False(ok)

	_, ok = f.Word(0)
	assert.False(ok)

	_, ok = f.Bytes6(0)
	assert.False(ok)

	_, ok = f.Bytes(0, 100)
	assert.False(ok)
}

func TestNegativeOffset(t *testing.T) {
	assert := assert.New(t)
	f := New([]byte{1, 2, 3, 4})
	_, ok := f.Byte(-1)
	assert.False(ok)
}

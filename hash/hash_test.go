package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotl(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint64(0x2), Rotl(0x1, 1))
	assert.Equal(uint64(0x1), Rotl(0x1, 0))
	assert.Equal(uint64(0x1), Rotl(0x8000000000000000, 1))
	assert.Equal(uint64(1)<<63, Rotl(1, 63))
}

func TestByteHalfWord(t *testing.T) {
	assert := assert.New(t)

	// Half must equal folding the two bytes MSB-first.
	h1 := Half(New(), 0x1234)
	h2 := Byte(Byte(New(), 0x12), 0x34)
	assert.Equal(h2, h1)

	// Word must equal folding the two halves MSB-first.
	w1 := Word(New(), 0x12345678)
	w2 := Half(Half(New(), 0x1234), 0x5678)
	assert.Equal(w2, w1)
}

func TestFinish(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Basis, Finish(0))
	assert.Equal(Basis^0x42, Finish(0x42))
}

// bitvector.go -- occupancy bitmap for table slots
//
// (c) Sudhi Herle 2018
//
// License GPLv2
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package probe

import (
	"math/bits"
)

// bitVector tracks which slots of a table are in use. A slot's key is
// never used to decide occupancy; this keeps "" usable as a key.
// Not safe for concurrent writers; the table has a single owner.
type bitVector struct {
	v []uint64
}

// newBitVector creates a bitvector to hold atleast 'sz' bits.
// The resulting size is rounded-up to the next multiple of 64.
func newBitVector(sz uint64) *bitVector {
	sz += 63
	sz &= ^(uint64(63))
	words := sz / 64
	bv := &bitVector{
		v: make([]uint64, words),
	}

	return bv
}

// Size returns the number of bits in this bitvector
func (b *bitVector) Size() uint64 {
	return uint64(len(b.v)) * 64
}

// Words returns the number of words in the array
func (b *bitVector) Words() uint64 {
	return uint64(len(b.v))
}

// Set sets the bit 'i' in the bitvector
func (b *bitVector) Set(i uint64) {
	b.v[i/64] |= uint64(1) << (i % 64)
}

// IsSet() returns true if the bit 'i' is set, false otherwise
func (b *bitVector) IsSet(i uint64) bool {
	return 1 == (1 & (b.v[i/64] >> (i % 64)))
}

// Count returns the population count of the bitvector.
func (b *bitVector) Count() uint64 {
	var p uint64

	for i := range b.v {
		p += popcount(b.v[i])
	}
	return p
}

func popcount(x uint64) uint64 {
	return uint64(bits.OnesCount64(x))
}

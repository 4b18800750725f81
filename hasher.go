// hasher.go - bucket selection policies
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package probe

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/dchest/siphash"
	"github.com/opencoff/go-fasthash"
)

// Hasher maps a key to its home bucket in a table of 'n' buckets.
// Implementations must be deterministic and return a value in [0, n).
type Hasher interface {
	// Hash returns the home bucket for 'key'
	Hash(key string, n uint64) (uint64, error)

	// Name returns a short human name for the policy
	Name() string
}

// ensure each of these types implement the Hasher interface above.
var (
	_ Hasher = ModHasher{}
	_ Hasher = FastHasher{}
	_ Hasher = &SipHasher{}
)

// ModHasher treats every key as a non-negative decimal integer and
// returns the integer modulo the table size. Keys that don't parse
// fail with ErrInvalidKey.
type ModHasher struct{}

func (ModHasher) Hash(key string, n uint64) (uint64, error) {
	v, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("mod: key %q: %w", key, ErrInvalidKey)
	}
	return v % n, nil
}

func (ModHasher) Name() string {
	return "mod"
}

// FastHasher hashes arbitrary keys with fasthash64 and a caller
// chosen seed. The empty string is a valid key.
type FastHasher struct {
	Seed uint64
}

func (f FastHasher) Hash(key string, n uint64) (uint64, error) {
	return fasthash.Hash64(f.Seed, []byte(key)) % n, nil
}

func (f FastHasher) Name() string {
	return "fasthash"
}

// SipHasher hashes arbitrary keys with SipHash-2-4 under a 128-bit key.
type SipHasher struct {
	k0, k1 uint64
}

// NewSipHasher returns a SipHasher keyed with random bytes.
func NewSipHasher() *SipHasher {
	s, _ := NewSipHasherKey(randbytes(16))
	return s
}

// NewSipHasherKey returns a SipHasher with the 16 byte key 'k'
func NewSipHasherKey(k []byte) (*SipHasher, error) {
	if len(k) != 16 {
		return nil, fmt.Errorf("siphash: key must be 16 bytes, saw %d", len(k))
	}

	le := binary.LittleEndian
	s := &SipHasher{
		k0: le.Uint64(k[:8]),
		k1: le.Uint64(k[8:]),
	}
	return s, nil
}

func (s *SipHasher) Hash(key string, n uint64) (uint64, error) {
	return siphash.Hash(s.k0, s.k1, []byte(key)) % n, nil
}

func (s *SipHasher) Name() string {
	return "siphash"
}

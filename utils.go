// utils.go -- utility functions
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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

func randbytes(n int) []byte {
	b := make([]byte, n)

	_, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		panic("can't read crypto/rand")
	}
	return b
}

// Rand64 returns a random 64-bit value suitable as a FastHasher seed
func Rand64() uint64 {
	var b [8]byte

	_, err := io.ReadFull(rand.Reader, b[:])
	if err != nil {
		panic("can't read crypto/rand")
	}

	return binary.BigEndian.Uint64(b[:])
}

// NextPrime returns the smallest prime >= n. Prime table sizes spread
// keys more evenly under modulo hashing and let quadratic probing
// reach more buckets.
func NextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	if n&1 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

// trial division; table sizes are small enough for this
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// humansize returns a human readable byte count
func humansize(n uint64) string {
	const (
		_kB = 1 << 10
		_MB = 1 << 20
		_GB = 1 << 30
	)

	switch {
	case n >= _GB:
		return fmt.Sprintf("%.2f GB", float64(n)/_GB)
	case n >= _MB:
		return fmt.Sprintf("%.2f MB", float64(n)/_MB)
	case n >= _kB:
		return fmt.Sprintf("%.2f kB", float64(n)/_kB)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

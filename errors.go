// errors.go - public errors exposed by probe
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
	"errors"
)

var (
	// ErrCapacity is returned when a table is constructed with zero or
	// negative buckets.
	ErrCapacity = errors.New("table capacity must be positive")

	// ErrInvalidKey is returned when the active Hasher can't map a key
	// to a bucket (eg. a non-numeric key given to ModHasher).
	ErrInvalidKey = errors.New("invalid key")

	// ErrBadHash is returned when a Hasher returns a bucket outside
	// the table.
	ErrBadHash = errors.New("hash out of range")

	// ErrTableFull is returned when inserting into a saturated table.
	ErrTableFull = errors.New("table full")

	// ErrProbeExhausted is returned when quadratic probing gives up
	// after MaxQuadraticProbes without finding a free slot. The table
	// may still have free slots.
	ErrProbeExhausted = errors.New("probe limit exhausted")

	// ErrExists is returned if a duplicate key is inserted
	ErrExists = errors.New("key exists in table")

	// ErrNoKey is returned when a key cannot be found in the table
	ErrNoKey = errors.New("No such key")

	// ErrRange is returned when a dump range falls outside the table
	ErrRange = errors.New("slot range out of bounds")

	// ErrClosed is returned when using a Reader after Close()
	ErrClosed = errors.New("reader closed")

	// ErrFrozen is returned when attempting to insert into a frozen table.
	// It is also returned when trying to freeze a table that's already frozen.
	ErrFrozen = errors.New("table already frozen")
)

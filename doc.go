// doc.go - top level documentation
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

// Package probe implements a fixed capacity open-addressing hash table
// that maps string keys to string values. Collisions are resolved by one
// of two probe sequences:
//
//  1. Linear probing: home, home+1, home+2, ... (mod n)
//  2. Quadratic probing: home, home + i + i^2 (mod n) for i = 1, 2, ...
//
// The table never grows; it is sized once at construction and is
// conventionally given a prime number of buckets (see NextPrime()) to
// reduce clustering. Insert and search walk the same probe sequence, so
// any key that was inserted with a given Probe is always found by a
// search with that Probe.
//
// The table keeps running counters of key count, collisions (occupied
// slots encountered while inserting) and comparisons (non-matching keys
// examined while searching); these are meant for studying how load
// factor and probe policy affect the cost of hashing.
//
// The bucket selection function is a pluggable Hasher. The default
// ModHasher parses the key as a non-negative decimal integer and reduces
// it modulo the table size; FastHasher and SipHasher accept arbitrary
// strings.
//
// Once populated, a table can be frozen into a Reader which is safe for
// concurrent lookups and caches recent hits.
package probe

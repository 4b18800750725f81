// probe_test.go -- test suite for probe sequences
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
	"testing"
)

func collect(p Probe, home, n uint64) []uint64 {
	var v []uint64

	s := newProbeSeq(p, home, n)
	for {
		i, ok := s.next()
		if !ok {
			return v
		}
		v = append(v, i)
	}
}

func TestLinearSeq(t *testing.T) {
	assert := newAsserter(t)

	v := collect(Linear, 3, 5)
	exp := []uint64{3, 4, 0, 1, 2}
	assert(len(v) == len(exp), "length exp %d, saw %d", len(exp), len(v))
	for i := range exp {
		assert(v[i] == exp[i], "step %d: exp %d, saw %d", i, exp[i], v[i])
	}

	// every bucket exactly once
	const n = 97
	seen := make(map[uint64]bool)
	for _, i := range collect(Linear, 42, n) {
		assert(!seen[i], "bucket %d visited twice", i)
		seen[i] = true
	}
	assert(len(seen) == n, "visited %d of %d buckets", len(seen), n)
}

func TestQuadraticSeq(t *testing.T) {
	assert := newAsserter(t)

	v := collect(Quadratic, 1, 11)
	assert(uint64(len(v)) == MaxQuadraticProbes+1, "length exp %d, saw %d", MaxQuadraticProbes+1, len(v))

	// home, home+2, home+6, home+12, home+20 (mod 11)
	exp := []uint64{1, 3, 7, 2, 10}
	for i := range exp {
		assert(v[i] == exp[i], "step %d: exp %d, saw %d", i, exp[i], v[i])
	}

	// a sequence restarts from scratch
	w := collect(Quadratic, 1, 11)
	for i := range v {
		assert(v[i] == w[i], "step %d differs: %d vs %d", i, v[i], w[i])
	}
}

func TestParseProbe(t *testing.T) {
	assert := newAsserter(t)

	for _, p := range []Probe{Linear, Quadratic} {
		q, err := ParseProbe(p.String())
		assert(err == nil, "parse %s: %s", p, err)
		assert(p == q, "round trip %s -> %s", p, q)
	}

	_, err := ParseProbe("cuckoo")
	assert(err != nil, "parsed an unknown policy")
	assert(Probe(7).String() == "probe(7)", "saw %s", Probe(7))
}

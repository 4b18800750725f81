// probe.go - probe sequences shared by insert and search
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
	"fmt"
)

// Probe selects the collision resolution policy
type Probe int

const (
	// Linear visits home, home+1, home+2, ... wrapping at the end of the
	// table; every bucket is visited exactly once.
	Linear Probe = iota

	// Quadratic visits home and then home + i + i*i for i = 1, 2, ...
	// up to MaxQuadraticProbes. It may never reach some free buckets.
	Quadratic
)

// MaxQuadraticProbes is the number of quadratic probes tried after the
// home bucket before giving up with ErrProbeExhausted.
const MaxQuadraticProbes uint64 = 20000

func (p Probe) String() string {
	switch p {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("probe(%d)", int(p))
	}
}

// ParseProbe maps a policy name back to a Probe
func ParseProbe(s string) (Probe, error) {
	switch s {
	case "linear", "lin":
		return Linear, nil
	case "quadratic", "quad":
		return Quadratic, nil
	default:
		return Linear, fmt.Errorf("unknown probe policy '%s'", s)
	}
}

// probeSeq generates the candidate buckets for one insert or search.
// A fresh sequence is made for every call; it is finite and never
// allocates.
type probeSeq struct {
	p     Probe
	home  uint64
	n     uint64
	i     uint64
	limit uint64
}

func newProbeSeq(p Probe, home, n uint64) probeSeq {
	s := probeSeq{
		p:    p,
		home: home,
		n:    n,
	}

	switch p {
	case Quadratic:
		s.limit = MaxQuadraticProbes + 1
	default:
		s.limit = n
	}
	return s
}

// next returns the next candidate bucket; false when the sequence
// is exhausted.
func (s *probeSeq) next() (uint64, bool) {
	if s.i >= s.limit {
		return 0, false
	}

	i := s.i
	s.i++

	switch s.p {
	case Quadratic:
		return (s.home + i + i*i) % s.n, true
	default:
		return (s.home + i) % s.n, true
	}
}

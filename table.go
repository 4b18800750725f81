// table.go - fixed capacity open addressing hash table
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
	"fmt"
	"io"
	"strings"
)

// Table is a fixed size hash table of string keys and values. Collisions
// are resolved by open addressing using one of the Probe policies. The
// table never grows and keys are never deleted.
//
// A Table has a single owner; it is not safe for concurrent use. Call
// Freeze() to obtain a Reader for concurrent lookups.
type Table struct {
	keys []string
	vals []string

	// occupancy tags; a slot is in use iff its bit is set
	occ *bitVector

	h Hasher
	n uint64

	nkeys       uint64
	collisions  uint64
	comparisons uint64

	frozen bool
}

// Slot is a copy of one table bucket
type Slot struct {
	Key  string
	Val  string
	Used bool
}

func (s Slot) String() string {
	return fmt.Sprintf("key=%s,val=%s", s.Key, s.Val)
}

// result of walking a probe sequence
type walkResult struct {
	idx  uint64 // valid when hit or free
	hit  bool   // slot idx holds the key
	free bool   // slot idx is empty

	// number of occupied, non-matching slots visited
	miss uint64
}

// New creates an empty table of 'nbuckets' slots that selects home
// buckets with 'h'. A nil Hasher means ModHasher.
func New(nbuckets int, h Hasher) (*Table, error) {
	if nbuckets <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, nbuckets)
	}

	if h == nil {
		h = ModHasher{}
	}

	n := uint64(nbuckets)
	t := &Table{
		keys: make([]string, n),
		vals: make([]string, n),
		occ:  newBitVector(n),
		h:    h,
		n:    n,
	}
	return t, nil
}

// Cap returns the number of buckets
func (t *Table) Cap() int {
	return int(t.n)
}

// Len returns the number of keys in the table
func (t *Table) Len() int {
	return int(t.nkeys)
}

// Collisions returns the number of occupied slots encountered by
// successful inserts.
func (t *Table) Collisions() uint64 {
	return t.collisions
}

// Comparisons returns the number of non-matching keys examined by
// searches.
func (t *Table) Comparisons() uint64 {
	return t.comparisons
}

// IsFull returns true if every bucket is in use
func (t *Table) IsFull() bool {
	return t.nkeys == t.n
}

// LoadFactor returns the fraction of buckets in use
func (t *Table) LoadFactor() float64 {
	return float64(t.nkeys) / float64(t.n)
}

// Hasher returns the bucket selection policy of the table
func (t *Table) Hasher() Hasher {
	return t.h
}

// home returns the home bucket of 'key'
func (t *Table) home(key string) (uint64, error) {
	i, err := t.h.Hash(key, t.n)
	if err != nil {
		return 0, err
	}
	if i >= t.n {
		return 0, fmt.Errorf("%s: key %q: bucket %d of %d: %w", t.h.Name(), key, i, t.n, ErrBadHash)
	}
	return i, nil
}

// walk the probe sequence of 'key' until we find the key or an empty
// slot. If neither happens the sequence is exhausted and both hit and
// free are false. The table is not modified.
func (t *Table) walk(p Probe, key string) (walkResult, error) {
	var w walkResult

	h, err := t.home(key)
	if err != nil {
		return w, err
	}

	s := newProbeSeq(p, h, t.n)
	for {
		i, ok := s.next()
		if !ok {
			return w, nil
		}

		if !t.occ.IsSet(i) {
			w.idx, w.free = i, true
			return w, nil
		}
		if t.keys[i] == key {
			w.idx, w.hit = i, true
			return w, nil
		}
		w.miss++
	}
}

// LinearInsert adds 'key' and 'val' resolving collisions by linear
// probing. Every occupied slot visited on the way counts as a collision.
func (t *Table) LinearInsert(key, val string) error {
	return t.Insert(Linear, key, val)
}

// QuadraticInsert adds 'key' and 'val' resolving collisions by quadratic
// probing. An occupied home bucket counts as one collision regardless of
// how many probes follow. The insert may fail with ErrProbeExhausted even
// when the table has free slots.
func (t *Table) QuadraticInsert(key, val string) error {
	return t.Insert(Quadratic, key, val)
}

// Insert adds 'key' and 'val' using probe policy 'p'. Inserting an
// existing key fails with ErrExists and leaves the table unchanged.
// Keys inserted under one policy are only reliably found by searches
// using the same policy.
func (t *Table) Insert(p Probe, key, val string) error {
	if t.frozen {
		return ErrFrozen
	}

	if t.IsFull() {
		return ErrTableFull
	}

	w, err := t.walk(p, key)
	if err != nil {
		return err
	}

	if w.hit {
		return fmt.Errorf("%q: %w", key, ErrExists)
	}

	switch p {
	case Quadratic:
		if w.miss > 0 {
			t.collisions++
		}
		if !w.free {
			return fmt.Errorf("%q: %w after %d probes", key, ErrProbeExhausted, MaxQuadraticProbes)
		}

	default:
		// the linear sequence covers every bucket; running out means
		// the table is full no matter what nkeys says.
		if !w.free {
			return ErrTableFull
		}
		t.collisions += w.miss
	}

	t.keys[w.idx] = key
	t.vals[w.idx] = val
	t.occ.Set(w.idx)
	t.nkeys++
	return nil
}

// SearchLinear finds 'key' along its linear probe sequence. A hit in the
// home bucket costs no comparisons; every other occupied slot visited
// adds one to Comparisons().
func (t *Table) SearchLinear(key string) (Slot, error) {
	return t.Search(Linear, key)
}

// SearchQuadratic finds 'key' along its quadratic probe sequence.
func (t *Table) SearchQuadratic(key string) (Slot, error) {
	return t.Search(Quadratic, key)
}

// Search finds 'key' along the probe sequence 'p' and returns a copy of
// the slot holding it. It returns ErrNoKey if the key is absent.
func (t *Table) Search(p Probe, key string) (Slot, error) {
	s, cmp, err := t.find(p, key)
	t.comparisons += cmp
	return s, err
}

// find is Search without side effects; it returns the comparison cost
// instead of recording it.
func (t *Table) find(p Probe, key string) (Slot, uint64, error) {
	w, err := t.walk(p, key)
	if err != nil {
		return Slot{}, 0, err
	}

	if !w.hit {
		return Slot{}, w.miss, ErrNoKey
	}
	return t.slot(w.idx), w.miss, nil
}

func (t *Table) slot(i uint64) Slot {
	if !t.occ.IsSet(i) {
		return Slot{}
	}

	return Slot{
		Key:  t.keys[i],
		Val:  t.vals[i],
		Used: true,
	}
}

// AddKeyVals inserts a series of key-value matched pairs with policy 'p'.
// If they are of unequal length, only the smaller of the lengths are used.
// Records that are duplicates or that don't fit are skipped. Any other
// error stops the insertion.
// Returns number of records added.
func (t *Table) AddKeyVals(p Probe, keys, vals []string) (int, error) {
	n := len(keys)
	if len(vals) < n {
		n = len(vals)
	}

	var z int
	for i := 0; i < n; i++ {
		err := t.Insert(p, keys[i], vals[i])
		switch {
		case err == nil:
			z++

		case IsSoft(err):

		default:
			return z, err
		}
	}

	return z, nil
}

// IsSoft returns true for insert failures that leave the table usable
// and only concern the record being inserted.
func IsSoft(err error) bool {
	return errors.Is(err, ErrExists) ||
		errors.Is(err, ErrTableFull) ||
		errors.Is(err, ErrProbeExhausted)
}

// Dump returns copies of 'count' slots starting at slot 'start'. Empty
// slots are included.
func (t *Table) Dump(start, count int) ([]Slot, error) {
	if start < 0 || count < 0 || uint64(start)+uint64(count) > t.n {
		return nil, fmt.Errorf("dump %d+%d of %d slots: %w", start, count, t.n, ErrRange)
	}

	v := make([]Slot, count)
	for i := range v {
		v[i] = t.slot(uint64(start + i))
	}
	return v, nil
}

// WriteDump writes 'count' slots starting at 'start' to 'w'; one line
// per slot.
func (t *Table) WriteDump(w io.Writer, start, count int) error {
	v, err := t.Dump(start, count)
	if err != nil {
		return err
	}

	ew := newErrWriter(w)
	for _, s := range v {
		ew.Printf("%s\n", s)
	}
	return ew.Error()
}

// IterFunc calls 'fp' on every occupied slot in bucket order. If the
// called function returns non-nil, it stops the iteration and the error
// is propogated to the caller.
func (t *Table) IterFunc(fp func(idx uint64, s Slot) error) error {
	for i := uint64(0); i < t.n; i++ {
		if !t.occ.IsSet(i) {
			continue
		}
		if err := fp(i, t.slot(i)); err != nil {
			return err
		}
	}
	return nil
}

// Desc provides a human description of the table
func (t *Table) Desc() string {
	var w strings.Builder

	fmt.Fprintf(&w, "probe: <%s> %d buckets, %d keys (%.2f%% load)\n",
		t.h.Name(), t.n, t.nkeys, 100.0*t.LoadFactor())
	fmt.Fprintf(&w, "  collisions %d, comparisons %d, full %v\n",
		t.collisions, t.comparisons, t.IsFull())
	return w.String()
}

// DumpMeta dumps the metadata of the table to io.Writer 'w'
func (t *Table) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "%s", t.Desc())
	fmt.Fprintf(w, "  occupancy: %d bits set of %d (%s)\n",
		t.occ.Count(), t.occ.Size(), humansize(t.occ.Words()*8))
	if t.frozen {
		fmt.Fprintf(w, "  frozen\n")
	}
}

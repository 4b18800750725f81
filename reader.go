// reader.go -- read-only view of a frozen table
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
	"io"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/arc/v2"
)

// Reader represents the query interface for a frozen Table. The only
// meaningful operation on it is Find(). Unlike the Table, a Reader is
// safe for concurrent use: the underlying table no longer changes and
// recent hits are kept in an ARC cache.
type Reader struct {
	t *Table
	p Probe

	cache *arc.ARCCache[string, string]

	// comparisons done by lookups that missed the cache
	cmp atomic.Uint64
}

// Freeze stops further inserts into the table and returns a Reader that
// searches along probe sequence 'p'. We retain upto 'cache' recently
// found values in memory (default 128).
func (t *Table) Freeze(p Probe, cache int) (*Reader, error) {
	if t.frozen {
		return nil, ErrFrozen
	}

	if cache <= 0 {
		cache = 128
	}

	c, err := arc.NewARC[string, string](cache)
	if err != nil {
		return nil, fmt.Errorf("freeze: %w", err)
	}

	t.frozen = true
	rd := &Reader{
		t:     t,
		p:     p,
		cache: c,
	}
	return rd, nil
}

// Len returns the number of keys in the underlying table
func (rd *Reader) Len() int {
	if rd.t == nil {
		return 0
	}
	return rd.t.Len()
}

// Probe returns the probe policy used for lookups
func (rd *Reader) Probe() Probe {
	return rd.p
}

// Comparisons returns the number of non-matching keys examined by
// lookups through this reader. Cache hits cost nothing.
func (rd *Reader) Comparisons() uint64 {
	return rd.cmp.Load()
}

// Close drops the cache and detaches the reader from its table.
// Subsequent lookups fail with ErrClosed.
func (rd *Reader) Close() {
	rd.cache.Purge()
	rd.t = nil
}

// Lookup looks up 'key' in the table and returns the corresponding value.
// If the key is not found, value is "" and returns false.
func (rd *Reader) Lookup(key string) (string, bool) {
	v, err := rd.Find(key)
	if err != nil {
		return "", false
	}

	return v, true
}

// Find looks up 'key' in the table and returns the corresponding value.
// It returns ErrNoKey if the key is absent and ErrInvalidKey if the
// table's Hasher rejects it.
func (rd *Reader) Find(key string) (string, error) {
	if rd.t == nil {
		return "", ErrClosed
	}

	if v, ok := rd.cache.Get(key); ok {
		return v, nil
	}

	s, cmp, err := rd.t.find(rd.p, key)
	rd.cmp.Add(cmp)
	if err != nil {
		return "", err
	}

	rd.cache.Add(key, s.Val)
	return s.Val, nil
}

// DumpMeta dumps the metadata of the reader and its table to 'w'
func (rd *Reader) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "reader: <%s> %d cached, %d comparisons\n",
		rd.p, rd.cache.Len(), rd.Comparisons())
	if rd.t == nil {
		fmt.Fprintf(w, "  closed\n")
		return
	}
	rd.t.DumpMeta(w)
}

// feed_test.go -- test suite for the record loaders
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/opencoff/go-probe"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

func newLoader(t *testing.T, n int) *loader {
	assert := newAsserter(t)

	to := tableOpts{
		buckets: n,
		probe:   "linear",
		hash:    "mod",
	}

	tb, p, err := to.newTable()
	assert(err == nil, "table: %s", err)
	return &loader{tb: tb, p: p, opt: &Option{}}
}

func expect(t *testing.T, ld *loader, kv map[string]string) {
	assert := newAsserter(t)

	for k, v := range kv {
		s, err := ld.tb.SearchLinear(k)
		assert(err == nil, "search %s: %s", k, err)
		assert(s.Val == v, "search %s: exp %q, saw %q", k, v, s.Val)
	}
}

const stopsJSON = `[
  {"code": "1287", "name": "Central Station", "lat": 28.54},
  {"code": 42, "name": "Church St"},
  {"code": "abc", "name": "Bad Code"},
  {"code": "1287", "name": "Duplicate"}
]`

func TestJSONStream(t *testing.T) {
	assert := newAsserter(t)

	ld := newLoader(t, 4201)
	err := ld.AddJSONStream(strings.NewReader(stopsJSON))
	assert(err == nil, "json: %s", err)

	assert(ld.processed == 4, "processed exp 4, saw %d", ld.processed)
	assert(ld.added == 2, "added exp 2, saw %d", ld.added)
	assert(ld.invalid == 1, "invalid exp 1, saw %d", ld.invalid)
	assert(ld.skipped == 1, "skipped exp 1, saw %d", ld.skipped)

	expect(t, ld, map[string]string{
		"1287": "Central Station",
		"42":   "Church St",
	})

	err = ld.AddJSONStream(strings.NewReader(`{"code": "1"}`))
	assert(err != nil, "accepted a non-array")

	err = ld.AddJSONStream(strings.NewReader(`[{"code": "1", "name": "x"}, {"code": `))
	assert(err != nil, "accepted truncated json")
}

func TestJSONFile(t *testing.T) {
	assert := newAsserter(t)

	fn := filepath.Join(t.TempDir(), "stops.json")
	err := os.WriteFile(fn, []byte(stopsJSON), 0600)
	assert(err == nil, "write %s: %s", fn, err)

	to := tableOpts{buckets: 7, prime: true, probe: "quadratic", hash: "mod"}
	ld, err := to.load([]string{fn}, &Option{})
	assert(err == nil, "load %s: %s", fn, err)
	assert(ld.tb.Cap() == 7, "cap exp 7, saw %d", ld.tb.Cap())
	assert(ld.p == probe.Quadratic, "probe exp quadratic, saw %s", ld.p)
	assert(ld.added == 2, "added exp 2, saw %d", ld.added)

	s, err := ld.tb.SearchQuadratic("42")
	assert(err == nil && s.Val == "Church St", "search 42: %s, %v", s.Val, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	os.WriteFile(empty, nil, 0600)
	_, err = to.load([]string{empty}, &Option{})
	assert(err != nil, "loaded an empty file")

	_, err = to.load([]string{"stops.xml"}, &Option{})
	assert(err != nil, "loaded an unknown format")
}

func TestTextStream(t *testing.T) {
	assert := newAsserter(t)

	ld := newLoader(t, 11)
	txt := `# code name
1 Main St
12	Oak   Ave

23
`
	err := ld.AddTextStream(strings.NewReader(txt), " \t")
	assert(err == nil, "text: %s", err)
	assert(ld.added == 3, "added exp 3, saw %d", ld.added)

	expect(t, ld, map[string]string{
		"1":  "Main St",
		"12": "Oak   Ave",
		"23": "",
	})

	// 1, 12 and 23 share bucket 1
	assert(ld.tb.Collisions() == 3, "collisions exp 3, saw %d", ld.tb.Collisions())
}

func TestCSVStream(t *testing.T) {
	assert := newAsserter(t)

	ld := newLoader(t, 13)
	csv := `#code,name
5,"Lake, North"
6,Pine
7
`
	err := ld.AddCSVStream(strings.NewReader(csv), ',', '#', 0, 1)
	assert(err == nil, "csv: %s", err)
	assert(ld.processed == 2, "processed exp 2, saw %d", ld.processed)

	expect(t, ld, map[string]string{
		"5": "Lake, North",
		"6": "Pine",
	})
}

func TestTableOpts(t *testing.T) {
	assert := newAsserter(t)

	for _, h := range []string{"mod", "fasthash", "siphash"} {
		for _, seed := range []uint64{0, 99} {
			to := tableOpts{buckets: 100, prime: true, probe: "linear", hash: h, seed: seed}
			tb, _, err := to.newTable()
			assert(err == nil, "%s: %s", h, err)
			assert(tb.Cap() == 101, "%s: cap exp 101, saw %d", h, tb.Cap())
			assert(tb.Hasher().Name() == h, "hasher exp %s, saw %s", h, tb.Hasher().Name())
		}
	}

	to := tableOpts{buckets: 10, probe: "linear", hash: "md5"}
	_, _, err := to.newTable()
	assert(err != nil, "accepted unknown hash")

	to = tableOpts{buckets: 10, probe: "cuckoo", hash: "mod"}
	_, _, err = to.newTable()
	assert(err != nil, "accepted unknown probe")

	to = tableOpts{buckets: 0, probe: "linear", hash: "mod"}
	_, _, err = to.newTable()
	assert(err != nil, "accepted zero buckets")
}

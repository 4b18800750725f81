// helpers_test.go - helper routines for tests
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
	"runtime"
	"strconv"
	"testing"
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

// newTable makes a table of 'n' buckets or fails the test
func newTable(t *testing.T, n int, h Hasher) *Table {
	assert := newAsserter(t)

	tb, err := New(n, h)
	assert(err == nil, "can't create table of %d buckets: %s", n, err)
	return tb
}

// numeric keys k, k+step, k+2*step, ...
func numkeys(k, step, n int) []string {
	v := make([]string, n)
	for i := range v {
		v[i] = strconv.Itoa(k + i*step)
	}
	return v
}

var keyw = []string{
	"expectoration",
	"mizzenmastman",
	"stockfather",
	"pictorialness",
	"villainous",
	"unquality",
	"sized",
	"Tarahumari",
	"endocrinotherapy",
	"quicksandy",
	"heretics",
	"pediment",
	"spleen's",
	"Shepard's",
	"paralyzed",
	"megahertzes",
	"Richardson's",
	"mechanics's",
	"Springfield",
	"burlesques",
}

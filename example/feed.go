// feed.go -- read records from a variety of files into a table
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
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/opencoff/go-mmap"
	"github.com/opencoff/go-probe"
)

type record struct {
	key string
	val string
}

// loader feeds records into one table and keeps the tally
type loader struct {
	tb *probe.Table
	p  probe.Probe

	processed uint64
	added     uint64
	skipped   uint64
	invalid   uint64

	// time spent inside Insert() only
	elapsed time.Duration

	opt *Option
}

// load builds a table from 'args'; each input is read according to its
// name suffix. With no inputs, text records are read from stdin.
func (t *tableOpts) load(args []string, opt *Option) (*loader, error) {
	tb, p, err := t.newTable()
	if err != nil {
		return nil, err
	}

	ld := &loader{
		tb:  tb,
		p:   p,
		opt: opt,
	}

	if len(args) == 0 {
		if err := ld.AddTextStream(os.Stdin, " \t"); err != nil {
			return nil, fmt.Errorf("can't add text from stdin: %w", err)
		}
		opt.Printf("+ <STDIN>: %d records\n", ld.processed)
		return ld, nil
	}

	for _, f := range args {
		n := ld.processed
		switch {
		case strings.HasSuffix(f, ".json"):
			err = ld.AddJSONFile(f)

		case strings.HasSuffix(f, ".txt"):
			err = ld.AddTextFile(f, " \t")

		case strings.HasSuffix(f, ".csv"):
			err = ld.AddCSVFile(f, ',', '#', 0, 1)

		default:
			return nil, fmt.Errorf("don't know how to add %s", f)
		}

		if err != nil {
			return nil, fmt.Errorf("can't add %s: %w", f, err)
		}

		opt.Printf("+ %s: %d records\n", f, ld.processed-n)
	}
	return ld, nil
}

// AddJSONFile adds records from the JSON file 'fn'. The file must hold
// an array of objects with a "code" (string or number) used as the key
// and a "name" used as the value; other fields are ignored. The file is
// memory mapped and decoded in place.
func (ld *loader) AddJSONFile(fn string) error {
	fd, err := os.Open(fn)
	if err != nil {
		return err
	}

	defer fd.Close()

	st, err := fd.Stat()
	if err != nil {
		return fmt.Errorf("%s: can't stat: %w", fn, err)
	}

	if st.Size() == 0 {
		return fmt.Errorf("%s: empty file", fn)
	}

	mm := mmap.New(fd)
	mapping, err := mm.Map(st.Size(), 0, mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		return fmt.Errorf("%s: can't mmap %d bytes: %w", fn, st.Size(), err)
	}

	defer mapping.Unmap()

	return ld.AddJSONStream(bytes.NewReader(mapping.Bytes()))
}

// jsonString decodes either a JSON string or a JSON number
type jsonString string

func (s *jsonString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = jsonString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = jsonString(n.String())
	return nil
}

type jsonRecord struct {
	Code jsonString `json:"code"`
	Name string     `json:"name"`
}

// AddJSONStream adds records from a JSON array read from 'fd'
func (ld *loader) AddJSONStream(fd io.Reader) error {
	dec := json.NewDecoder(fd)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}

	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return errors.New("json: expected an array of records")
	}

	ch := make(chan *record, 10)
	errch := make(chan error, 1)

	// decode asynchronously
	go func(dec *json.Decoder, ch chan *record) {
		defer close(ch)

		for dec.More() {
			var r jsonRecord
			if err := dec.Decode(&r); err != nil {
				errch <- fmt.Errorf("json: %w", err)
				return
			}
			ch <- &record{string(r.Code), r.Name}
		}
	}(dec, ch)

	if err := ld.addFromChan(ch); err != nil {
		return err
	}

	select {
	case err = <-errch:
		return err
	default:
		return nil
	}
}

// AddTextFile adds contents from text file 'fn' where key and value are separated
// by one of the characters in 'delim'. Empty lines and comments are skipped.
// This function just opens the file and calls AddTextStream()
func (ld *loader) AddTextFile(fn string, delim string) error {
	fd, err := os.Open(fn)
	if err != nil {
		return err
	}

	if len(delim) == 0 {
		delim = " \t"
	}

	defer fd.Close()

	return ld.AddTextStream(fd, delim)
}

// AddTextStream adds contents from text stream 'fd' where key and value are separated
// by one of the characters in 'delim'. Lines with no delimiter are keys with an
// empty value.
func (ld *loader) AddTextStream(fd io.Reader, delim string) error {
	sc := bufio.NewScanner(fd)
	ch := make(chan *record, 10)

	// do I/O asynchronously
	go func(sc *bufio.Scanner, ch chan *record) {
		for sc.Scan() {
			s := strings.TrimSpace(sc.Text())
			if len(s) == 0 || s[0] == '#' {
				continue
			}

			var k, v string

			i := strings.IndexAny(s, delim)
			if i > 0 {
				k = s[:i]
				v = strings.TrimSpace(s[i+1:])
			} else {
				k = s
			}

			ch <- &record{k, v}
		}

		close(ch)
	}(sc, ch)

	if err := ld.addFromChan(ch); err != nil {
		return err
	}
	return sc.Err()
}

// AddCSVFile adds contents from CSV file 'fn'. If 'kwfield' and 'valfield' are
// non-negative, they indicate the field# of the key and value respectively; the
// default value for 'kwfield' & 'valfield' is 0 and 1 respectively.
// If 'comment' is not 0, then lines beginning with that rune are discarded.
// Records where the 'kwfield' and 'valfield' can't be evaluated are discarded.
func (ld *loader) AddCSVFile(fn string, comma, comment rune, kwfield, valfield int) error {
	fd, err := os.Open(fn)
	if err != nil {
		return err
	}

	defer fd.Close()

	return ld.AddCSVStream(fd, comma, comment, kwfield, valfield)
}

// AddCSVStream adds contents from the CSV stream 'fd'; see AddCSVFile().
func (ld *loader) AddCSVStream(fd io.Reader, comma, comment rune, kwfield, valfield int) error {
	if kwfield < 0 {
		kwfield = 0
	}

	if valfield < 0 {
		valfield = 1
	}

	var max int = valfield
	if kwfield > valfield {
		max = kwfield
	}

	max += 1

	ch := make(chan *record, 10)
	cr := csv.NewReader(fd)
	cr.Comma = comma
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	go func(cr *csv.Reader, ch chan *record) {
		for {
			v, err := cr.Read()
			if err != nil {
				break
			}

			if len(v) < max {
				continue
			}

			ch <- &record{v[kwfield], v[valfield]}
		}
		close(ch)
	}(cr, ch)

	return ld.addFromChan(ch)
}

// read records from the chan and insert them into the table.
// Records the table can't take are counted and skipped; keys the hash
// function rejects are counted as invalid. Any other error stops the
// load.
func (ld *loader) addFromChan(ch chan *record) error {
	for r := range ch {
		ld.processed++

		start := time.Now()
		err := ld.tb.Insert(ld.p, r.key, r.val)
		ld.elapsed += time.Since(start)

		switch {
		case err == nil:
			ld.added++

		case probe.IsSoft(err):
			ld.skipped++
			ld.opt.Printf("  skip %q: %s\n", r.key, err)

		case errors.Is(err, probe.ErrInvalidKey):
			ld.invalid++
			ld.opt.Printf("  invalid %q: %s\n", r.key, err)

		default:
			// let the reader finish
			for range ch {
			}
			return err
		}
	}

	return nil
}

// report prints the load statistics to stdout
func (ld *loader) report() {
	fmt.Printf("Elapsed insert time = %d ns\n", ld.elapsed.Nanoseconds())
	fmt.Printf("records processed = %d\n", ld.processed)
	fmt.Printf("successful inserts = %d\n", ld.added)
	if ld.skipped > 0 || ld.invalid > 0 {
		fmt.Printf("skipped = %d, invalid keys = %d\n", ld.skipped, ld.invalid)
	}
	fmt.Printf("collisions = %d\n", ld.tb.Collisions())
	fmt.Printf("key count = %d\n", ld.tb.Len())
	ld.opt.Printf("%s", ld.tb.Desc())
}

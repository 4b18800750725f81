// check.go -- 'check' command implementation
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

	"github.com/opencoff/go-probe"
	flag "github.com/opencoff/pflag"
)

type checkCommand struct{}

func init() {
	m := checkCommand{}
	registerCommand("check", &m)
}

// check loads a table, freezes it and verifies that every stored key
// can be found again along the same probe sequence.
func (m *checkCommand) run(args []string, opt *Option) (err error) {
	var to tableOpts

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	to.addFlags(fs)
	fs.Usage = func() {
		fmt.Printf(`Usage: check [options] [INPUT...]

Load the INPUTs (see 'load') into a table and verify that every
stored record is reachable by a search.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	ld, err := to.load(fs.Args(), opt)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	rd, err := ld.tb.Freeze(ld.p, 1000)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	defer rd.Close()

	var bad int
	err = ld.tb.IterFunc(func(i uint64, s probe.Slot) error {
		v, err := rd.Find(s.Key)
		switch {
		case err != nil:
			warn("slot %d: key %q: %s", i, s.Key, err)
			bad++

		case v != s.Val:
			warn("slot %d: key %q: exp %q, saw %q", i, s.Key, s.Val, v)
			bad++
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	if opt.verbose {
		rd.DumpMeta(os.Stdout)
	}

	if bad > 0 {
		return fmt.Errorf("check: %d of %d keys unreachable", bad, rd.Len())
	}

	fmt.Printf("%d keys verified, %d comparisons\n", rd.Len(), rd.Comparisons())
	return nil
}

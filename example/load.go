// load.go -- 'load' command implementation
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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/opencoff/go-probe"
	flag "github.com/opencoff/pflag"
)

type loadCommand struct{}

func init() {
	m := loadCommand{}
	registerCommand("load", &m)
}

func (m *loadCommand) run(args []string, opt *Option) (err error) {
	var to tableOpts
	var keys []string

	fs := flag.NewFlagSet("load", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	to.addFlags(fs)
	fs.StringArrayVarP(&keys, "key", "k", nil, "Search for key `K` after loading (repeatable)")
	fs.Usage = func() {
		fmt.Printf(`Usage: load [options] [INPUT...]

where INPUT is one or more optional input files. The input file(s) must
have a name suffix of one of the following:
   .json    An array of objects with "code" (key) and "name" (value)
   .txt     A key,value per-line delimited by white space
   .csv     A comma-separated key,value file

With no INPUT, text records are read from stdin.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	ld, err := to.load(fs.Args(), opt)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	ld.report()

	for _, k := range keys {
		tb := ld.tb
		cmp := tb.Comparisons()

		start := time.Now()
		s, err := tb.Search(ld.p, k)
		delta := time.Since(start)

		switch {
		case err == nil:
			fmt.Printf("%s: %s\n", k, s.Val)

		case errors.Is(err, probe.ErrNoKey):
			fmt.Printf("%s: Key not found\n", k)

		default:
			return fmt.Errorf("load: search %s: %w", k, err)
		}
		fmt.Printf("Elapsed search time = %d ns, %d comparisons\n",
			delta.Nanoseconds(), tb.Comparisons()-cmp)
	}
	return nil
}

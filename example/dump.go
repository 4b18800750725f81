// dump.go -- 'dump' command implementation
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

type dumpCommand struct{}

func init() {
	m := dumpCommand{}
	registerCommand("dump", &m)
}

func (m *dumpCommand) run(args []string, opt *Option) (err error) {
	var to tableOpts
	var all, meta bool
	var start, count int

	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	to.addFlags(fs)
	fs.BoolVarP(&all, "all", "a", false, "Dump every occupied slot")
	fs.BoolVarP(&meta, "meta", "m", false, "Dump only metadata")
	fs.IntVarP(&start, "start", "S", 20, "Dump slots starting at slot `N`")
	fs.IntVarP(&count, "count", "c", 10, "Dump `N` slots")
	fs.Usage = func() {
		fmt.Printf(`Usage: dump [options] [INPUT...]

Load the INPUTs (see 'load') into a table and dump a range of its
slots, every occupied slot or just the table metadata.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	ld, err := to.load(fs.Args(), opt)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	tb := ld.tb
	switch {
	case meta:
		tb.DumpMeta(os.Stdout)

	case all:
		err = tb.IterFunc(func(i uint64, s probe.Slot) error {
			_, err := fmt.Printf("%6d: %s\n", i, s)
			return err
		})

	default:
		err = tb.WriteDump(os.Stdout, start, count)
	}

	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}

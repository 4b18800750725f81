// cmds.go -- commands abstraction
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
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/opencoff/go-probe"
	flag "github.com/opencoff/pflag"
)

type command interface {
	run(args []string, opt *Option) error
}

var cmds = struct {
	sync.Mutex
	m map[string]command
}{
	m: make(map[string]command),
}

func registerCommand(nm string, cmd command) {
	cmds.Lock()
	if _, ok := cmds.m[nm]; ok {
		panic(fmt.Sprintf("%s already registered", nm))
	}
	cmds.m[nm] = cmd
	cmds.Unlock()
}

func runCommand(args []string, o *Option) error {
	nm := args[0]

	cmds.Lock()
	defer cmds.Unlock()
	cmd, ok := cmds.m[nm]
	if !ok {
		return fmt.Errorf("unknown command %s", nm)
	}

	return cmd.run(args, o)
}

type Option struct {
	verbose bool
}

func (o *Option) Printf(s string, v ...interface{}) {
	if o.verbose {
		fmt.Printf(s, v...)
	}
}

// tableOpts holds the flags common to every command that builds a table
type tableOpts struct {
	buckets int
	prime   bool
	probe   string
	hash    string
	seed    uint64
}

func (t *tableOpts) addFlags(fs *flag.FlagSet) {
	fs.IntVarP(&t.buckets, "buckets", "n", 4201, "Use `N` buckets in the hash table")
	fs.BoolVarP(&t.prime, "prime", "P", false, "Round the number of buckets up to a prime")
	fs.StringVarP(&t.probe, "probe", "p", "linear", "Resolve collisions with `P` probing (linear, quadratic)")
	fs.StringVarP(&t.hash, "hash", "H", "mod", "Use `H` as the hash function (mod, fasthash, siphash)")
	fs.Uint64VarP(&t.seed, "seed", "s", 0, "Seed `S` for fasthash or siphash (0 picks a random seed)")
}

// newTable makes an empty table and resolves the probe policy
func (t *tableOpts) newTable() (*probe.Table, probe.Probe, error) {
	p, err := probe.ParseProbe(t.probe)
	if err != nil {
		return nil, p, err
	}

	var h probe.Hasher
	switch t.hash {
	case "mod":
		h = probe.ModHasher{}

	case "fasthash":
		seed := t.seed
		if seed == 0 {
			seed = probe.Rand64()
		}
		h = probe.FastHasher{Seed: seed}

	case "siphash":
		if t.seed == 0 {
			h = probe.NewSipHasher()
			break
		}

		var k [16]byte
		binary.LittleEndian.PutUint64(k[:8], t.seed)
		binary.LittleEndian.PutUint64(k[8:], ^t.seed)
		if h, err = probe.NewSipHasherKey(k[:]); err != nil {
			return nil, p, err
		}

	default:
		return nil, p, fmt.Errorf("unknown hash function '%s'", t.hash)
	}

	n := t.buckets
	if t.prime {
		n = probe.NextPrime(n)
	}

	tb, err := probe.New(n, h)
	if err != nil {
		return nil, p, err
	}
	return tb, p, nil
}

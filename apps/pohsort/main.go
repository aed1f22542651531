//
// main.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Command pohsort sorts its arguments with the Path Oblivious Heap. The
// arguments are priorities or priority:value pairs; a bare priority
// gets its argument index as value. Negative arguments must follow
// the "--" flag terminator. The program prints the sorted values and
// optionally the operation cost reports. With the gates backend the
// program emits the sort as a Boolean circuit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/markkurossi/oheap/circuit"
	"github.com/markkurossi/oheap/compiler/utils"
	"github.com/markkurossi/oheap/env"
	"github.com/markkurossi/oheap/oram"
	"github.com/markkurossi/oheap/poh"
	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/oheap/secret/emul"
	"github.com/markkurossi/oheap/secret/gates"
	"github.com/markkurossi/oheap/types"
)

func main() {
	fType := flag.String("t", "i32", "secret value type")
	fBackend := flag.String("backend", "emul", "backend: emul or gates")
	fVariant := flag.String("variant", "path", "storage variant: path or circuit")
	fEvict := flag.String("evict", "shuffle", "eviction: shuffle or naive")
	fBucket := flag.Int("z", 0, "bucket size")
	fStash := flag.Int("stash", 0, "stash size")
	fVerbose := flag.Bool("v", false, "verbose output")
	fDiag := flag.Bool("d", false, "diagnostics output")
	fTrace := flag.Bool("trace", false, "trace output (reveals secrets)")
	fStats := flag.Bool("stats", false, "print operation statistics")
	fOut := flag.String("o", "", "write circuit to file (gates backend)")
	fDot := flag.Bool("dot", false, "print circuit as graphviz dot")
	fVerify := flag.Bool("verify", false, "verify circuit against witness")
	flag.Parse()

	log.SetFlags(0)

	if len(flag.Args()) == 0 {
		fmt.Printf("no inputs specified\n")
		os.Exit(1)
	}

	typ, err := types.Parse(*fType)
	if err != nil {
		log.Fatal(err)
	}
	variant, err := oram.ParseVariant(*fVariant)
	if err != nil {
		log.Fatal(err)
	}
	eviction, err := poh.ParseEviction(*fEvict)
	if err != nil {
		log.Fatal(err)
	}

	params := utils.NewParams()
	params.Verbose = *fVerbose
	params.Diagnostics = *fDiag
	params.Trace = *fTrace
	defer params.Close()

	if len(*fOut) > 0 {
		f, err := os.Create(*fOut)
		if err != nil {
			log.Fatal(err)
		}
		params.CircOut = f
	}

	prg, err := secret.NewRandomPRG(&env.Config{})
	if err != nil {
		log.Fatal(err)
	}

	var b secret.Backend
	var gb *gates.Backend
	switch *fBackend {
	case "emul":
		b, err = emul.New(typ, prg)
	case "gates":
		gb, err = gates.New(typ, params, prg)
		b = gb
	default:
		err = fmt.Errorf("unknown backend: %s", *fBackend)
	}
	if err != nil {
		log.Fatal(err)
	}

	keys, values, err := parseInputs(b, utils.NewLogger(os.Stderr, params),
		flag.Args())
	if err != nil {
		os.Exit(1)
	}

	timing := circuit.NewTiming()
	timing.Sample("Input", b.Counters().Total())

	start := *b.Counters()
	sorted, err := poh.Sort(b, keys, values, poh.Config{
		Variant:    variant,
		BucketSize: *fBucket,
		StashSize:  *fStash,
		Eviction:   eviction,
		Logger:     utils.NewLogger(os.Stdout, params),
	})
	if err != nil {
		log.Fatal(err)
	}
	timing.Sample("Sort", b.Counters().Sub(start).Total())

	var result []string
	for _, v := range sorted {
		result = append(result, fmt.Sprintf("%d", b.Reveal(v)))
	}
	fmt.Printf("Result: %s\n", strings.Join(result, " "))

	if gb != nil {
		circ := gb.Compile()
		timing.Sample("Compile", circ.NumGates)
		if *fVerify {
			if err := gb.Verify(); err != nil {
				log.Fatal(err)
			}
			timing.Sample("Verify", circ.NumGates)
			fmt.Printf("Circuit verified: %v\n", circ)
		}
		if params.CircOut != nil {
			if err := circ.Marshal(params.CircOut); err != nil {
				log.Fatal(err)
			}
		}
		if *fDot {
			circ.Dot(os.Stdout)
		}
		if *fStats {
			circ.Report(os.Stdout)
		}
	}
	if *fStats {
		b.Counters().Print(os.Stdout)
		timing.Print(os.Stdout)
	}
}

// parseInputs parses the priority[:value] arguments into secret
// inputs. Errors and warnings are reported to the logger with the
// argument position.
func parseInputs(b secret.Backend, logger *utils.Logger, args []string) (
	keys, values []secret.Value, err error) {

	seen := make(map[[2]int64]int)

	for idx, arg := range args {
		var key, value int64

		loc := utils.Point{
			Source: "arg",
			Line:   idx + 1,
		}
		parts := strings.SplitN(arg, ":", 2)
		key, err = strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, nil, logger.Errorf(loc, "invalid priority '%s': %s",
				parts[0], err)
		}
		if len(parts) == 2 {
			loc.Col = len(parts[0]) + 1
			value, err = strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, nil, logger.Errorf(loc, "invalid value '%s': %s",
					parts[1], err)
			}
		} else {
			value = int64(idx)
		}
		if value == -1 {
			logger.Warningf(loc, "value -1 is the empty queue result")
		}
		pair := [2]int64{key, value}
		if prev, ok := seen[pair]; ok {
			logger.Warningf(loc, "duplicate of argument %d: %s", prev, arg)
		} else {
			seen[pair] = idx + 1
		}

		var k, v secret.Value
		k, err = b.Input(fmt.Sprintf("k%d", idx), key)
		if err != nil {
			return nil, nil, logger.Errorf(loc, "%s", err)
		}
		v, err = b.Input(fmt.Sprintf("v%d", idx), value)
		if err != nil {
			return nil, nil, logger.Errorf(loc, "%s", err)
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	return
}

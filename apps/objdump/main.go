//
// main.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command objdump prints information about compiled circuit files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/oheap/circuit"
)

func main() {
	fGates := flag.Bool("gates", false, "dump circuit gates")
	fDot := flag.Bool("dot", false, "print circuit as graphviz dot")
	flag.Parse()

	log.SetFlags(0)

	if len(flag.Args()) == 0 {
		fmt.Printf("no files specified\n")
		os.Exit(1)
	}
	for _, file := range flag.Args() {
		if err := dumpObject(file, *fGates, *fDot); err != nil {
			log.Fatal(err)
		}
	}
}

func dumpObject(file string, gates, dot bool) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	circ, err := circuit.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %s", file, err)
	}
	if dot {
		circ.Dot(os.Stdout)
		return nil
	}

	fmt.Printf("%s:\n", file)
	fmt.Printf(" - inputs : %v\n", circ.Inputs)
	fmt.Printf(" - outputs: %v\n", circ.Outputs)
	circ.Report(os.Stdout)
	if gates {
		circ.Dump()
	}
	return nil
}

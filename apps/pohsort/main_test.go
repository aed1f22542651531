//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/oheap/compiler/utils"
	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/oheap/secret/emul"
	"github.com/markkurossi/oheap/types"
)

func newBackend(t *testing.T) *emul.Backend {
	prg, err := secret.NewPRG([]byte("pohsort-test-seed-0123456789abcd"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := emul.New(types.Int16, prg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestParseInputs(t *testing.T) {
	b := newBackend(t)
	var out bytes.Buffer

	keys, values, err := parseInputs(b, utils.NewLogger(&out, nil),
		[]string{"5", "-3:7", "5:0"})
	if err != nil {
		t.Fatal(err)
	}
	expected := [][2]int64{{5, 0}, {-3, 7}, {5, 0}}
	if len(keys) != len(expected) || len(values) != len(expected) {
		t.Fatalf("got %d keys and %d values", len(keys), len(values))
	}
	for i, e := range expected {
		if b.Reveal(keys[i]) != e[0] || b.Reveal(values[i]) != e[1] {
			t.Errorf("arg %d: got %d:%d, expected %d:%d", i,
				b.Reveal(keys[i]), b.Reveal(values[i]), e[0], e[1])
		}
	}
	if out.String() != "arg:3:2: warning: duplicate of argument 1: 5:0\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestParseInputsErrors(t *testing.T) {
	tests := []struct {
		args   []string
		prefix string
	}{
		{[]string{"x"}, "arg:1:0: invalid priority 'x'"},
		{[]string{"1", "2:y"}, "arg:2:2: invalid value 'y'"},
		{[]string{"1:40000"}, "arg:1:2: "},
		{[]string{"100000"}, "arg:1:0: "},
	}
	for _, test := range tests {
		var out bytes.Buffer
		_, _, err := parseInputs(newBackend(t), utils.NewLogger(&out, nil),
			test.args)
		if err == nil {
			t.Errorf("%v: parseInputs succeeded", test.args)
			continue
		}
		if !strings.HasPrefix(out.String(), test.prefix) {
			t.Errorf("%v: unexpected output: %q", test.args, out.String())
		}
		if !strings.Contains(out.String(), err.Error()) {
			t.Errorf("%v: error %q not logged", test.args, err)
		}
	}
}

func TestParseInputsSentinel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := parseInputs(newBackend(t), utils.NewLogger(&out, nil),
		[]string{"4:-1"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "arg:1:2: warning: value -1") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

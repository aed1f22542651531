//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"bytes"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	params := NewParams()
	log := NewLogger(&buf, params)

	log.Printf("verbose")
	log.Debugf("debug")
	log.Tracef("trace")
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}

	params.Verbose = true
	params.Diagnostics = true
	log.Printf("verbose %d", 1)
	log.Debugf("debug %d", 2)
	log.Tracef("trace %d", 3)
	if buf.String() != "verbose 1\ndebug 2\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	params.Trace = true
	if !log.Tracing() {
		t.Errorf("tracing not enabled")
	}
	log.Tracef("trace\n")
	if buf.String() != "trace\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLoggerErrorf(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(&buf, nil)
	err := log.Errorf(Point{Source: "q", Line: 2, Col: 3}, "bad %s\nmore",
		"value")
	if err.Error() != "bad value" {
		t.Errorf("unexpected error: %s", err)
	}
	if buf.String() != "q:2:3: bad value\nmore\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLoggerWarningf(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(&buf, nil)
	log.Warningf(Point{Source: "arg", Line: 3, Col: 2}, "duplicate %d", 1)
	log.Warningf(Point{Source: "arg"}, "no position")
	if buf.String() != "arg:3:2: warning: duplicate 1\narg: warning: no position\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLoggerDiscard(t *testing.T) {
	params := NewParams()
	params.Trace = true
	log := NewLogger(nil, params)
	log.Tracef("dropped")
}

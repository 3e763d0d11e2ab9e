// util/util_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, 1.0, 1.5) != 1.0 {
		t.Errorf("Select(true) returned the second value")
	}
	if Select(false, "a", "b") != "b" {
		t.Errorf("Select(false) returned the first value")
	}
}

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() {
		t.Errorf("fresh ErrorLogger reports errors")
	}

	func() {
		defer e.CheckDepth(e.CurrentDepth())
		e.Push("scenario KPHL")
		e.Push("hold")
		e.ErrorString("leg length %d must be positive", -2)
		e.Pop()
		e.Pop()
	}()
	e.ErrorString("top level")

	if !e.HaveErrors() {
		t.Fatalf("expected errors")
	}
	errs := e.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0] != "scenario KPHL / hold: leg length -2 must be positive" {
		t.Errorf("unexpected error string %q", errs[0])
	}
	if errs[1] != "top level" {
		t.Errorf("unexpected error string %q", errs[1])
	}

	err := e.Err()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError from Err(), got %v", err)
	}
	if len(verr.Context) != 2 || verr.Context[1] != "hold" {
		t.Errorf("got context %v, expected [scenario KPHL hold]", verr.Context)
	}
	if !strings.Contains(err.Error(), "top level") {
		t.Errorf("joined error %q is missing an error", err)
	}

	var none ErrorLogger
	if none.Err() != nil {
		t.Errorf("expected nil error with nothing logged")
	}
}

func TestErrorLoggerCheckDepthPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for unbalanced Push")
		}
	}()

	var e ErrorLogger
	func() {
		defer e.CheckDepth(e.CurrentDepth())
		e.Push("unbalanced")
	}()
}

func TestUnmarshalJSONBytes(t *testing.T) {
	type cfg struct {
		Factor float32 `json:"factor"`
		Name   string  `json:"name"`
	}

	var c cfg
	if err := UnmarshalJSONBytes([]byte(`{"factor": 1.1, "name": "x"}`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Factor != 1.1 || c.Name != "x" {
		t.Errorf("got %+v", c)
	}

	err := UnmarshalJSONBytes([]byte("{\n  \"factor\": \"big\"\n}"), &c)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error on line 2, got %v", err)
	}

	err = UnmarshalJSONBytes([]byte("{\n\"factor\": 1,\n\"bogus\": 2}"), &c)
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected unknown field error, got %v", err)
	}

	err = UnmarshalJSONBytes([]byte("{\n\n  \"factor\": 1,,\n}"), &c)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected syntax error on line 3, got %v", err)
	}
}

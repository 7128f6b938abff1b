// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestResultAccessors(t *testing.T) {
	ok := Ok[string, uint64]("hi")
	if !ok.IsOk() {
		t.Fatalf("Ok result reports failure")
	}
	if v, isOk := ok.Get(); !isOk || v != "hi" {
		t.Errorf("Get = %q, %v", v, isOk)
	}
	if _, failed := ok.Failure(); failed {
		t.Errorf("Failure on Ok result reports failure")
	}

	bad := Err[string](uint64(7))
	if bad.IsOk() {
		t.Fatalf("Err result reports success")
	}
	if e, failed := bad.Failure(); !failed || e != 7 {
		t.Errorf("Failure = %d, %v", e, failed)
	}
	if ok.String() != "Ok(hi)" || bad.String() != "Err(7)" {
		t.Errorf("String = %q, %q", ok.String(), bad.String())
	}
}

func TestResultJSON(t *testing.T) {
	tests := []struct {
		in   Result[[]byte, uint8]
		want string
	}{
		{Ok[[]byte, uint8]([]byte{1, 2}), `{"ok":"AQI="}`},
		{Err[[]byte](uint8(2)), `{"err":2}`},
		// A zero success value must still read back as success.
		{Ok[[]byte, uint8](nil), `{"ok":null}`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%v) failed: %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, data, tt.want)
		}
		var back Result[[]byte, uint8]
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", data, err)
		}
		if back.IsOk() != tt.in.IsOk() {
			t.Errorf("Unmarshal(%s) IsOk = %v", data, back.IsOk())
		}
	}
}

func TestResultEmptyStructOk(t *testing.T) {
	data, err := json.Marshal(Ok[struct{}, uint8](struct{}{}))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back Result[struct{}, uint8]
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(%s) failed: %v", data, err)
	}
	if !back.IsOk() {
		t.Errorf("Unmarshal(%s) lost success", data)
	}
}

func TestResultRejectsEmptyObject(t *testing.T) {
	var r Result[int, int]
	if err := json.Unmarshal([]byte(`{}`), &r); err == nil {
		t.Fatalf("Unmarshal({}) succeeded")
	}
}

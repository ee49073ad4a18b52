package guard

import (
	"strings"
	"testing"

	"atomica/internal/atomics"
)

const sample = `package wrappers

import "sync/atomic"

//atomica:requires 8
// LoadByte reads an 8-bit value atomically.
func LoadByte(p *uint8) uint8 { return *p }

//atomica:requires 64
// Counter64 is a 64-bit counter.
type Counter64 struct{ v atomic.Int64 }

//atomica:requires 64
const counter64Step = 1

// Plain is not guarded and always survives.
func Plain() {}

//atomica:requires ptr
var defaultPointer atomic.Pointer[int]
`

func TestFilter_AllCapableRetainsEverything(t *testing.T) {
	res, err := Filter("sample.go", []byte(sample), atomics.All())
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if string(res.Output) != sample {
		t.Errorf("fully capable target altered output:\n%s", res.Output)
	}
	if len(res.Elided) != 0 {
		t.Errorf("Elided = %v, want none", res.Elided)
	}
}

func TestFilter_Missing64ElidesOnly64(t *testing.T) {
	s := atomics.All()
	s.Has64 = false
	res, err := Filter("sample.go", []byte(sample), s)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	out := string(res.Output)

	// Elision is total: no trace of the guarded names survives.
	for _, gone := range []string{"Counter64", "counter64Step"} {
		if strings.Contains(out, gone) {
			t.Errorf("output still mentions %q:\n%s", gone, out)
		}
	}
	for _, kept := range []string{"LoadByte", "Plain", "defaultPointer"} {
		if !strings.Contains(out, kept) {
			t.Errorf("output lost %q:\n%s", kept, out)
		}
	}
	want := []string{"Counter64", "counter64Step"}
	if len(res.Elided) != len(want) {
		t.Fatalf("Elided = %v, want %v", res.Elided, want)
	}
	for i := range want {
		if res.Elided[i] != want[i] {
			t.Errorf("Elided[%d] = %q, want %q", i, res.Elided[i], want[i])
		}
	}
}

func TestFilter_NoneElidesAllGuarded(t *testing.T) {
	res, err := Filter("sample.go", []byte(sample), atomics.None())
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	out := string(res.Output)
	for _, gone := range []string{"LoadByte", "Counter64", "counter64Step", "defaultPointer"} {
		if strings.Contains(out, gone) {
			t.Errorf("output still mentions %q", gone)
		}
	}
	if !strings.Contains(out, "Plain") {
		t.Error("unguarded declaration was elided")
	}
}

func TestFilter_RetainedDeclarationsAreVerbatim(t *testing.T) {
	s := atomics.All()
	s.Has64 = false
	res, err := Filter("sample.go", []byte(sample), s)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	out := string(res.Output)
	verbatim := "//atomica:requires 8\n// LoadByte reads an 8-bit value atomically.\nfunc LoadByte(p *uint8) uint8 { return *p }"
	if !strings.Contains(out, verbatim) {
		t.Errorf("retained declaration was not copied verbatim:\n%s", out)
	}
}

func TestFilter_MultipleRequiresAreORed(t *testing.T) {
	src := `package p

//atomica:requires 16
//atomica:requires 64
func Both() {}
`
	s := atomics.All()
	s.Has64 = false
	res, err := Filter("p.go", []byte(src), s)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if strings.Contains(string(res.Output), "Both") {
		t.Error("declaration requiring a missing width survived")
	}
}

func TestFilter_UnknownWidthFailsClosed(t *testing.T) {
	src := `package p

//atomica:requires 128
func Wide() {}
`
	if _, err := Filter("p.go", []byte(src), atomics.All()); err == nil {
		t.Error("unknown width token was accepted")
	}
}

func TestFilter_ParseErrorIsReported(t *testing.T) {
	if _, err := Filter("bad.go", []byte("not go source"), atomics.All()); err == nil {
		t.Error("unparsable source was accepted")
	}
}

func TestFilter_Idempotent(t *testing.T) {
	s := atomics.All()
	s.Has64 = false
	first, err := Filter("sample.go", []byte(sample), s)
	if err != nil {
		t.Fatalf("first Filter failed: %v", err)
	}
	second, err := Filter("sample.go", first.Output, s)
	if err != nil {
		t.Fatalf("second Filter failed: %v", err)
	}
	if string(first.Output) != string(second.Output) {
		t.Error("Filter is not idempotent")
	}
}

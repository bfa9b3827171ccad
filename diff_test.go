package jsonkv

import (
	"strings"
	"testing"

	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
)

func TestDiff(t *testing.T) {
	a, err := parse.Parse([]byte(`{"x": 1, "y": "keep"}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.Parse([]byte(`{"x": 2, "y": "keep"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := Diff(a, a.Clone()); got != "" {
		t.Errorf("Diff of equal documents = %q, want empty", got)
	}
	got := Diff(a, b)
	if got == "" {
		t.Fatal("Diff of different documents is empty")
	}
	if !strings.Contains(got, "keep") {
		t.Errorf("diff text lost common context: %q", got)
	}
}

func TestDiffNumberKind(t *testing.T) {
	if got := Diff(ir.FromInt(2), ir.FromFloat(2)); got == "" {
		t.Error("integer and float renderings diff empty")
	}
}

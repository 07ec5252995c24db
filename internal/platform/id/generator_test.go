package id

import (
	"strings"
	"testing"
)

func TestNanoGenerator_PrefixAndLength(t *testing.T) {
	t.Parallel()

	gen := NewNanoGenerator("run")
	value, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if !strings.HasPrefix(value, "run_") {
		t.Fatalf("expected run_ prefix, got %q", value)
	}
	if len(value) != len("run_")+defaultLength {
		t.Fatalf("unexpected id length %d", len(value))
	}

	other, _ := gen.NewID()
	if other == value {
		t.Fatalf("expected distinct ids")
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	seq := &Sequence{Prefix: "job-"}
	first, _ := seq.NewID()
	second, _ := seq.NewID()
	if first != "job-1" || second != "job-2" {
		t.Fatalf("unexpected sequence %q %q", first, second)
	}
}

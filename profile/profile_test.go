package profile

import (
	"slices"
	"testing"
)

func TestMake_AppliesOptions(t *testing.T) {
	p := Make(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if p != want {
		t.Errorf("Make() = %+v, want %+v", p, want)
	}
}

func TestStart_NoModeIsNoop(t *testing.T) {
	stopper := Profiler{}.Start()
	if _, ok := stopper.(ignore); !ok {
		t.Fatalf("expected no-op stopper, got %T", stopper)
	}

	stopper.Stop()
	stopper.Stop()
}

func TestStart_UnknownModeIsNoop(t *testing.T) {
	stopper := Make(WithMode("bogus"), WithPath(t.TempDir())).Start()
	if _, ok := stopper.(ignore); !ok {
		t.Fatalf("expected no-op stopper, got %T", stopper)
	}

	stopper.Stop()
}

func TestModes_Sorted(t *testing.T) {
	if modes := Modes(); !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}
}

package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	got := New(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))
	want := Profiler{Mode: "cpu", Path: "/tmp/p", Quiet: true}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Profiler{}, New()); diff != "" {
		t.Errorf("zero options (-want +got):\n%s", diff)
	}
}

func TestStartDisabled(t *testing.T) {
	for _, mode := range []string{"", "bogus"} {
		s := New(WithMode(mode)).Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("mode %q: expected no-op stopper, got %T", mode, s)
		}

		s.Stop()
	}
}

package quote

import "testing"

func TestPickNeverRepeatsPrevious(t *testing.T) {
	quotes := []string{"a", "b", "c"}
	p := NewSeeded(quotes, 42)
	seen := map[string]bool{}
	prev := p.Pick()
	seen[prev] = true
	for i := 0; i < 200; i++ {
		q := p.Pick()
		if q == prev {
			t.Fatalf("pick %d repeated %q", i, q)
		}
		seen[q] = true
		prev = q
	}
	if len(seen) != len(quotes) {
		t.Fatalf("expected every quote to appear, saw %v", seen)
	}
}

func TestPickEdgeCases(t *testing.T) {
	if got := NewSeeded(nil, 1).Pick(); got != "" {
		t.Fatalf("expected empty quote, got %q", got)
	}
	p := NewSeeded([]string{"only"}, 1)
	if p.Pick() != "only" || p.Pick() != "only" {
		t.Fatalf("single quote should always be returned")
	}
}

func TestPickCopiesInput(t *testing.T) {
	quotes := []string{"x", "y"}
	p := NewSeeded(quotes, 3)
	quotes[0], quotes[1] = "changed", "changed"
	if q := p.Pick(); q != "x" && q != "y" {
		t.Fatalf("picker must not alias caller slice, got %q", q)
	}
}

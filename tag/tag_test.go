package tag

import "testing"

func TestGenerator_NextIsUnique(t *testing.T) {
	var g Generator
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tg := g.Next()
		s := tg.String()
		if s == "" {
			t.Fatalf("empty tag")
		}
		if seen[s] {
			t.Fatalf("duplicate tag %q", s)
		}
		seen[s] = true
	}
}

func TestGenerator_NextIsValidTag(t *testing.T) {
	var g Generator
	tg := g.Next()
	for _, b := range []byte(tg.String()) {
		if b == '+' {
			t.Fatalf("tag must not contain '+': %q", tg.String())
		}
	}
}

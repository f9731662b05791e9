package rxgen

import (
	"regexp"
	"strings"
	"testing"
)

// TestCaseInsensitiveRandom tests that (?i) literals vary their case and
// still match the pattern.
func TestCaseInsensitiveRandom(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string // outputs that must appear
	}{
		{"(?i)ab", []string{"ab", "aB", "Ab", "AB"}},
		{"(?i)k", []string{"k", "K", "K"}}, // Kelvin sign folds to k
		{"(?i)1-2", []string{"1-2"}},
		{"(?i:x)y", []string{"xy", "Xy"}},
	}
	for _, tt := range tests {
		g := MustNew(tt.pattern)
		rx := regexp.MustCompile(`^(?:` + tt.pattern + `)$`)
		src := NewSeeded(13)
		seen := make(map[string]bool)
		for i := 0; i < 500; i++ {
			s, err := g.GenerateString(src)
			if err != nil {
				t.Fatalf("Generate(%q): %v", tt.pattern, err)
			}
			if !rx.MatchString(s) {
				t.Fatalf("Generate(%q) = %q; does not match", tt.pattern, s)
			}
			seen[s] = true
		}
		for _, w := range tt.want {
			if !seen[w] {
				t.Errorf("Generate(%q) never produced %q; saw %v", tt.pattern, w, seen)
			}
		}
		if len(seen) != len(tt.want) {
			t.Errorf("Generate(%q) produced %d distinct outputs; want %d", tt.pattern, len(seen), len(tt.want))
		}
	}
}

// TestCaseInsensitivePreserve tests that FoldPreserve emits the literal's
// stored runes. regexp/syntax stores the smallest case form of each rune.
func TestCaseInsensitivePreserve(t *testing.T) {
	tests := []struct {
		gen  func() (*Generator, error)
		want string
	}{
		{func() (*Generator, error) {
			return New("(?i)HeLLo", WithFoldPolicy(FoldPreserve))
		}, "HELLO"},
		{func() (*Generator, error) {
			return FromNode(&Literal{Runes: []rune("HeLLo"), FoldCase: true}, WithFoldPolicy(FoldPreserve))
		}, "HeLLo"},
	}
	for _, tt := range tests {
		g, err := tt.gen()
		if err != nil {
			t.Fatal(err)
		}
		src := NewSeeded(1)
		for i := 0; i < 50; i++ {
			s, err := g.GenerateString(src)
			if err != nil {
				t.Fatal(err)
			}
			if s != tt.want {
				t.Fatalf("Generate = %q; want %q", s, tt.want)
			}
		}
	}
}

func TestCaseInsensitiveBinary(t *testing.T) {
	// In binary mode the Kelvin sign is not a byte and drops out of the orbit.
	g := MustNew("(?i)k", WithMode(ModeBinary))
	src := NewSeeded(2)
	for i := 0; i < 200; i++ {
		s, err := g.GenerateString(src)
		if err != nil {
			t.Fatal(err)
		}
		if strings.ToLower(s) != "k" {
			t.Fatalf("Generate = %q; want k or K", s)
		}
	}
}

func TestCaseInsensitiveClass(t *testing.T) {
	assertGenerates(t, "(?i)[a-c]+", testN)
	assertGenerates(t, "(?i)[^a-z]", testN)
}

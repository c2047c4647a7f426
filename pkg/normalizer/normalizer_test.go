package normalizer

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "TOMATE", "tomate"},
		{"trim", "  tomate  ", "tomate"},
		{"accents", "Échalote", "echalote"},
		{"accents mixed", "Crème fraîche", "creme fraiche"},
		{"collapse whitespace", "oignon   rouge", "oignon rouge"},
		{"plural s", "oignons", "oignon"},
		{"plural es", "tomatoes", "tomato"},
		{"plural es on e-final word", "tomates", "tomat"},
		{"short word keeps s", "s", "s"},
		{"two letter word es", "es", "es"},
		{"empty", "", ""},
		{"combined", "  Pommes  De   Terre ", "pommes de terre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEquivalentVariants(t *testing.T) {
	// Variants of the same ingredient must share one matching key.
	variants := []string{"Oignons", "oignon", "OIGNON", " oignons "}
	want := Normalize(variants[0])
	for _, v := range variants[1:] {
		if got := Normalize(v); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestNormalizeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		got := Normalize(input)

		if got != strings.TrimSpace(got) {
			t.Errorf("Normalize(%q) = %q has surrounding whitespace", input, got)
		}
		if strings.Contains(got, "  ") {
			t.Errorf("Normalize(%q) = %q has consecutive spaces", input, got)
		}
		if got != strings.ToLower(got) {
			t.Errorf("Normalize(%q) = %q has upper-case runes", input, got)
		}
		if again := Normalize(input); again != got {
			t.Errorf("Normalize(%q) not deterministic: %q then %q", input, got, again)
		}
	})
}

package search

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"cola", "", 4},
		{"", "cola", 4},
		{"cola", "cola", 0},
		{"cola", "colas", 1},
		{"voca", "coca", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"cola", "xqzt", 4},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			if got := Levenshtein(tt.s1, tt.s2); got != tt.want {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	pairs := [][2]string{{"cola", "colaa"}, {"pepsi", "pepzi"}, {"milk", "silk"}}
	for _, p := range pairs {
		if d1, d2 := Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]); d1 != d2 {
			t.Errorf("Levenshtein(%q, %q)=%d but reversed=%d", p[0], p[1], d1, d2)
		}
	}
}

func TestFuzzyScore(t *testing.T) {
	t.Run("rejects below floor", func(t *testing.T) {
		if got := FuzzyScore("cola", "xqzt", DefaultFuzzyFloor); got != 0 {
			t.Errorf("FuzzyScore = %v, want 0", got)
		}
	})

	t.Run("accepts close match", func(t *testing.T) {
		got := FuzzyScore("cola", "colaa", DefaultFuzzyFloor)
		if got <= 0 {
			t.Fatalf("FuzzyScore = %v, want > 0", got)
		}
		// maxLen 5, distance 1 -> 80%
		if got != 80 {
			t.Errorf("FuzzyScore = %v, want 80", got)
		}
	})

	t.Run("identical strings score 100", func(t *testing.T) {
		if got := FuzzyScore("milk", "milk", DefaultFuzzyFloor); got != 100 {
			t.Errorf("FuzzyScore = %v, want 100", got)
		}
	})

	t.Run("both empty scores zero", func(t *testing.T) {
		if got := FuzzyScore("", "", DefaultFuzzyFloor); got != 0 {
			t.Errorf("FuzzyScore = %v, want 0", got)
		}
	})

	t.Run("exactly at floor is kept", func(t *testing.T) {
		// "coca" vs "voca": maxLen 4, distance 1 -> 75, above a 75 floor check
		if got := FuzzyScore("coca", "voca", 75); got != 75 {
			t.Errorf("FuzzyScore = %v, want 75", got)
		}
	})
}

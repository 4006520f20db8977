package score

import "testing"

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		want       string
		got        string
		wantDist   int
		wantCounts map[rune]int
	}{
		{
			name:       "identical",
			want:       "ezb4z",
			got:        "ezb4z",
			wantDist:   0,
			wantCounts: map[rune]int{},
		},
		{
			name:       "single substitution",
			want:       "hello",
			got:        "hullo",
			wantDist:   1,
			wantCounts: map[rune]int{'e': 1, 'u': 1},
		},
		{
			name:       "substitution and insertion",
			want:       "abc test hey",
			got:        "abd tests hey",
			wantDist:   2,
			wantCounts: map[rune]int{'c': 1, 'd': 1, 's': 1},
		},
		{
			name:       "two substitutions",
			want:       "morse code",
			got:        "horse rode",
			wantDist:   2,
			wantCounts: map[rune]int{'m': 1, 'h': 1, 'c': 1, 'r': 1},
		},
		{
			name:       "single characters",
			want:       "a",
			got:        "b",
			wantDist:   1,
			wantCounts: map[rune]int{'a': 1, 'b': 1},
		},
		{
			name:       "kitten sitting",
			want:       "kitten",
			got:        "sitting",
			wantDist:   3,
			wantCounts: map[rune]int{'k': 1, 's': 1, 'e': 1, 'i': 1, 'g': 1},
		},
		{
			name:       "deletion and insertion",
			want:       "flaw",
			got:        "lawn",
			wantDist:   2,
			wantCounts: map[rune]int{'f': 1, 'n': 1},
		},
		{
			name:       "empty received",
			want:       "abc",
			got:        "",
			wantDist:   3,
			wantCounts: map[rune]int{'a': 1, 'b': 1, 'c': 1},
		},
		{
			name:       "empty sent",
			want:       "",
			got:        "ab",
			wantDist:   2,
			wantCounts: map[rune]int{'a': 1, 'b': 1},
		},
		{
			name:       "both empty",
			want:       "",
			got:        "",
			wantDist:   0,
			wantCounts: map[rune]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, counts := Diff(tt.want, tt.got)
			if dist != tt.wantDist {
				t.Errorf("Diff(%q, %q) distance = %d, want %d", tt.want, tt.got, dist, tt.wantDist)
			}
			if len(counts) != len(tt.wantCounts) {
				t.Errorf("Diff(%q, %q) counted %d characters, want %d: %v",
					tt.want, tt.got, len(counts), len(tt.wantCounts), counts)
			}
			for ch, want := range tt.wantCounts {
				if counts[ch] != want {
					t.Errorf("Diff(%q, %q) counts[%q] = %d, want %d",
						tt.want, tt.got, ch, counts[ch], want)
				}
			}
		})
	}
}

func TestDiffCountsMatchDistance(t *testing.T) {
	// Every insertion or deletion contributes one count, every
	// substitution two, so the tally never exceeds twice the distance.
	pairs := [][2]string{
		{"paris", "pairs"},
		{"the quick brown fox", "the quick brown fox"},
		{"sos sos", "sos"},
		{"cq cq dx", "cqcqdx"},
	}
	for _, p := range pairs {
		dist, counts := Diff(p[0], p[1])
		total := 0
		for _, n := range counts {
			total += n
		}
		if total < dist || total > 2*dist {
			t.Errorf("Diff(%q, %q): %d counted edits for distance %d", p[0], p[1], total, dist)
		}
	}
}

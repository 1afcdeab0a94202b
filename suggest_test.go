package typedargs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "identical strings",
			a:    "status",
			b:    "status",
			want: 0,
		},
		{
			name: "one character difference",
			a:    "fetch",
			b:    "fetchy",
			want: 1,
		},
		{
			name: "transposition",
			a:    "status",
			b:    "stauts",
			want: 2,
		},
		{
			name: "case insensitive",
			a:    "Fetch",
			b:    "fetch",
			want: 0,
		},
		{
			name: "completely different",
			a:    "fetch",
			b:    "xyz123",
			want: 6,
		},
		{
			name: "empty string a",
			a:    "",
			b:    "fetch",
			want: 5,
		},
		{
			name: "empty string b",
			a:    "fetch",
			b:    "",
			want: 5,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, levenshtein(tt.a, tt.b))
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"fetch", "convert", "status", "stats"}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "close typo",
			input: "fetc",
			want:  []string{"fetch"},
		},
		{
			name:  "multiple matches ordered by distance",
			input: "stat",
			want:  []string{"stats", "status"},
		},
		{
			name:  "exact match excluded",
			input: "fetch",
			want:  nil,
		},
		{
			name:  "nothing close enough",
			input: "daemonize",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findSimilar(tt.input, candidates)
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilar_CapsSuggestions(t *testing.T) {
	candidates := []string{"aaa", "aab", "aba", "abb", "baa"}
	got := findSimilar("aax", candidates)
	require.Len(t, got, maxSuggestions)
}

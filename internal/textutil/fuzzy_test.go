package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, "read_only", Normalize("Read-Only"))
	require.Equal(t, "read_only", Normalize("READ_ONLY"))
	require.Equal(t, "abc", Normalize("abc"))
}

func TestFuzzyEqual(t *testing.T) {
	tests := []struct {
		name string
		a    any
		b    any
		want bool
	}{
		{name: "strings ignore case", a: "Fast", b: "fast", want: true},
		{name: "strings fold separators", a: "read-only", b: "read_only", want: true},
		{name: "different strings", a: "fast", b: "slow", want: false},
		{name: "equal non-strings", a: 3, b: 3, want: true},
		{name: "different non-strings", a: 3, b: 4, want: false},
		{name: "mixed types", a: "3", b: 3, want: false},
		{name: "uncomparable operands", a: []int{1}, b: []int{1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FuzzyEqual(tt.a, tt.b))
		})
	}
}

package textutil

import "strings"

// Normalize lowercases s and folds '-' into '_' so that flag-style and
// identifier-style spellings of the same name compare equal.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", "_")
}

// FuzzyEqual compares two values, using separator/case-insensitive
// comparison when both are strings and plain equality otherwise.
func FuzzyEqual(a, b any) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return Normalize(as) == Normalize(bs)
	}
	return equal(a, b)
}

// equal guards against panics on uncomparable values.
func equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

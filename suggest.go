package typedargs

import (
	"sort"
	"strings"
)

const (
	maxSuggestionDistance = 3
	maxSuggestions        = 3
)

// levenshtein calculates the edit distance between two strings.
func levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

type suggestion struct {
	name     string
	distance int
}

// findSimilar returns up to maxSuggestions candidate names within edit
// distance of the input, closest first, ties broken alphabetically.
func findSimilar(input string, candidates []string) []string {
	var suggestions []suggestion

	for _, name := range candidates {
		dist := levenshtein(input, name)
		if dist <= maxSuggestionDistance && dist > 0 {
			suggestions = append(suggestions, suggestion{name: name, distance: dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance != suggestions[j].distance {
			return suggestions[i].distance < suggestions[j].distance
		}
		return suggestions[i].name < suggestions[j].name
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	result := make([]string, len(suggestions))
	for i, s := range suggestions {
		result[i] = s.name
	}

	return result
}

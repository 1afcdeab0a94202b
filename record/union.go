package record

import (
	"github.com/kr/pretty"

	"github.com/typedargs/typedargs/usage"
)

// ValidateUnion materializes the namespace against a closed, ordered list
// of candidate record types and returns whichever validates first. When
// every candidate fails, the error aggregates each candidate's failure
// reason. An empty candidate list is a programmer error.
func ValidateUnion(ns Namespace, candidates ...*Type) (*Instance, error) {
	if len(candidates) == 0 {
		return nil, usage.InternalError(
			"type union did not contain any record type members",
			pretty.Sprintf("namespace: %v", ns),
		)
	}

	reasons := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		instance, err := FromNamespace(candidate, ns)
		if err == nil {
			return instance, nil
		}
		reasons = append(reasons, candidate.Name()+": "+err.Error())
	}
	return nil, usage.UnionFailed(reasons)
}

package usage

import "fmt"

// InternalError is returned for should-be-impossible consistency failures.
// The detail should carry enough diagnostic state (attempted paths,
// mappings) to debug the declaration that triggered it.
func InternalError(summary, detail string) *Error {
	return &Error{
		Kind:    ErrInternal,
		Message: fmt.Sprintf("%s\n%s", summary, detail),
	}
}

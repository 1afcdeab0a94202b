package usage

// ErrorKind represents the type of parsing or declaration error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrSubParserConflict
	ErrReservedFieldName
	ErrDuplicateField
	ErrInvalidFlagName
	ErrInvalidFieldSpec
	ErrVariadicPositional
	ErrInvalidBinding
	ErrIncompleteBindings
	ErrMissingFields
	ErrExtraFields
	ErrInvalidFieldValue
	ErrMissingSubCommand
	ErrUnknownSubCommand
	ErrRequiredFlagNotSet
	ErrUnrecognizedArguments
	ErrMissingPositional
	ErrBadInput
	ErrHelpRequested
	ErrInternal
)

// Exit codes:
//
//	Exit 1: Declaration/programmer errors
//	  - Unknown errors
//	  - Sub-parser conflicts, reserved/duplicate field names, bad flag names
//	  - Binding errors
//	  - Internal consistency failures
//
//	Exit 2: User input errors
//	  - Missing/extra/invalid field values
//	  - Missing or unknown sub-commands
//	  - Required flags not set, unrecognized or missing arguments
var exitCodes = map[ErrorKind]int{
	ErrUnknown:               1,
	ErrSubParserConflict:     1,
	ErrReservedFieldName:     1,
	ErrDuplicateField:        1,
	ErrInvalidFlagName:       1,
	ErrInvalidFieldSpec:      1,
	ErrVariadicPositional:    1,
	ErrInvalidBinding:        1,
	ErrIncompleteBindings:    1,
	ErrMissingFields:         2,
	ErrExtraFields:           2,
	ErrInvalidFieldValue:     2,
	ErrMissingSubCommand:     2,
	ErrUnknownSubCommand:     2,
	ErrRequiredFlagNotSet:    2,
	ErrUnrecognizedArguments: 2,
	ErrMissingPositional:     2,
	ErrBadInput:              2,
	ErrHelpRequested:         0,
	ErrInternal:              1,
}

// Error represents a user-facing parsing error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// KindOf returns the ErrorKind of err, or ErrUnknown if err is not a *Error.
func KindOf(err error) ErrorKind {
	if ue, ok := err.(*Error); ok {
		return ue.Kind
	}
	return ErrUnknown
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)

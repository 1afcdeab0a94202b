package usage

import (
	"fmt"
	"strings"
)

// MissingSubCommand is returned when a required sub-command group receives
// no sub-command token.
func MissingSubCommand(dest string) *Error {
	return &Error{
		Kind:    ErrMissingSubCommand,
		Message: fmt.Sprintf("the following arguments are required: %s", dest),
	}
}

// UnknownSubCommand is returned when a token does not match any sibling
// sub-command name or alias.
func UnknownSubCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("unknown sub-command '%s'", command)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf("\n\nDid you mean?\n  %s", strings.Join(suggestions, "\n  "))
	}
	return &Error{Kind: ErrUnknownSubCommand, Message: msg}
}

// RequiredFlagNotSet is returned when a required flag is absent from the
// input.
func RequiredFlagNotSet(flags []string) *Error {
	return &Error{
		Kind:    ErrRequiredFlagNotSet,
		Message: fmt.Sprintf(`required flag(s) "%s" not set`, strings.Join(flags, `", "`)),
	}
}

// UnrecognizedArguments is returned when positional tokens remain after all
// positional fields are filled.
func UnrecognizedArguments(args []string) *Error {
	return &Error{
		Kind:    ErrUnrecognizedArguments,
		Message: fmt.Sprintf("unrecognized arguments: %s", strings.Join(args, " ")),
	}
}

// MissingPositional is returned when a required positional field receives
// no token.
func MissingPositional(name string) *Error {
	return &Error{
		Kind:    ErrMissingPositional,
		Message: fmt.Sprintf("the following arguments are required: %s", name),
	}
}

// HelpRequested is returned when the input asks for help text. Its
// message is the rendered help; the exit code is zero.
func HelpRequested(text string) *Error {
	return &Error{Kind: ErrHelpRequested, Message: text}
}

// BadInput wraps an error reported by the underlying flag parser.
func BadInput(err error) *Error {
	return &Error{Kind: ErrBadInput, Message: err.Error()}
}

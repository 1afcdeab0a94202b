// Package typedargs is a typed, declarative layer over command-line
// argument parsing. Callers declare argument schemas as record types
// (ordered, shaped fields), optionally organized into a tree of named
// sub-commands with shared common args, and bind handlers to the concrete
// record types. The parser registers the corresponding flags with the
// underlying pflag engine, and after parsing validates and converts the
// flat result into a typed record instance dispatched to its handler.
//
// Tokenizing, flag/value splitting, and usage text remain the business of
// the underlying flag parser; this package only decorates it with typed
// declarations and validation.
package typedargs

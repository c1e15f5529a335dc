package ippcode

import (
	"fmt"
	"regexp"
)

var (
	reInteger    = regexp.MustCompile(`^[+-]?[0-9]+$`)
	reIdentifier = regexp.MustCompile(`^[\p{L}_\-$&%*!?][\p{L}\p{N}_\-$&%*!?]*$`)
	// Any backslash not followed by three decimal digits.
	reBadEscape = regexp.MustCompile(`\\([^0-9]|[0-9][^0-9]|[0-9]{2}[^0-9]|[0-9]{0,2}$)`)
)

// IsValidInteger reports whether s is a decimal integer with an optional sign.
func IsValidInteger(s string) bool {
	return reInteger.MatchString(s)
}

// IsValidIdentifier reports whether s is a valid variable or label name.
func IsValidIdentifier(s string) bool {
	return reIdentifier.MatchString(s)
}

// IsValidBool reports whether s is a boolean literal.
func IsValidBool(s string) bool {
	return s == "true" || s == "false"
}

// IsValidNil reports whether s is the nil literal.
func IsValidNil(s string) bool {
	return s == "nil"
}

// IsValidString reports whether every backslash in s starts a \ddd escape.
func IsValidString(s string) bool {
	return !reBadEscape.MatchString(s)
}

// ValidateLiteral checks s against the syntax of the given constant kind.
func ValidateLiteral(kind Kind, s string) error {
	var ok bool
	switch kind {
	case KindInt:
		ok = IsValidInteger(s)
	case KindBool:
		ok = IsValidBool(s)
	case KindString:
		ok = IsValidString(s)
	case KindNil:
		ok = IsValidNil(s)
	default:
		return newError(ErrLexical, fmt.Sprintf("unknown literal kind %d", int(kind)))
	}
	if !ok {
		e := newError(ErrLexical, "invalid "+kind.String()+" literal")
		e.Token = s
		return e
	}
	return nil
}

// ValidateIdentifier checks s as a variable or label name.
func ValidateIdentifier(s string) error {
	if !IsValidIdentifier(s) {
		e := newError(ErrLexical, "invalid identifier")
		e.Token = s
		return e
	}
	return nil
}

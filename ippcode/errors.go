package ippcode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a translation failure. Each kind maps to a stable
// process exit status.
type ErrorKind int

const (
	// ErrUsage is an unrecognised command-line argument.
	ErrUsage ErrorKind = iota + 1
	// ErrMissingHeader is an instruction appearing before the header line.
	ErrMissingHeader
	// ErrDuplicateHeader is a second header line.
	ErrDuplicateHeader
	// ErrMalformedHeader is a header line carrying extra tokens.
	ErrMalformedHeader
	// ErrUnknownOpcode is an opcode outside the instruction set.
	ErrUnknownOpcode
	// ErrMalformedOperand is a token that fits no operand shape.
	ErrMalformedOperand
	// ErrLexical is a literal or identifier with invalid syntax.
	ErrLexical
	// ErrArityOrShape is a wrong operand count or operand kind.
	ErrArityOrShape
	// ErrOperandType is an operand whose type the opcode does not accept.
	ErrOperandType
)

// Exit statuses used at the process boundary.
const (
	ExitOK       = 0
	ExitUsage    = 10
	ExitInput    = 11
	ExitOutput   = 12
	ExitHeader   = 21
	ExitOpcode   = 22
	ExitSyntax   = 23
	ExitInternal = 99
)

var kindNames = map[ErrorKind]string{
	ErrUsage:            "usage error",
	ErrMissingHeader:    "missing header",
	ErrDuplicateHeader:  "duplicate header",
	ErrMalformedHeader:  "malformed header",
	ErrUnknownOpcode:    "unknown opcode",
	ErrMalformedOperand: "malformed operand",
	ErrLexical:          "lexical error",
	ErrArityOrShape:     "wrong operand count or kind",
	ErrOperandType:      "operand type mismatch",
}

// Error implements error so a kind can be used as an errors.Is target.
func (k ErrorKind) Error() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// ExitCode returns the process exit status for the kind.
func (k ErrorKind) ExitCode() int {
	switch k {
	case ErrUsage:
		return ExitUsage
	case ErrMissingHeader, ErrMalformedHeader:
		return ExitHeader
	case ErrUnknownOpcode:
		return ExitOpcode
	case ErrDuplicateHeader, ErrMalformedOperand, ErrLexical, ErrArityOrShape, ErrOperandType:
		return ExitSyntax
	}
	return ExitInternal
}

// Error is a diagnostic raised while translating a program.
type Error struct {
	Kind    ErrorKind
	Line    int    // 1-based source line, 0 when unknown
	Opcode  string // triggering opcode, if any
	Operand int    // 1-based operand position, 0 when not operand-specific
	Token   string // offending text, if any
	Msg     string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Kind.Error())
	if e.Opcode != "" {
		fmt.Fprintf(&b, ": %s", e.Opcode)
	}
	if e.Operand > 0 {
		fmt.Fprintf(&b, " operand %d", e.Operand)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Msg != "" {
		fmt.Fprintf(&b, ": %s", e.Msg)
	}
	return b.String()
}

// Unwrap exposes the kind so errors.Is(err, ErrLexical) and friends work.
func (e *Error) Unwrap() error {
	return e.Kind
}

// ExitCode maps any error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind.ExitCode()
	}
	return ExitInternal
}

// WithLine returns err annotated with the source line when it is an *Error
// that does not carry one yet. Other errors are wrapped.
func WithLine(err error, line int) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Line == 0 {
			c := *e
			c.Line = line
			return &c
		}
		return err
	}
	return fmt.Errorf("line %d: %w", line, err)
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

package ippcode

import (
	"fmt"
	"strings"
)

// Frame is the storage scope of a variable.
type Frame int

const (
	// FrameGlobal is GF.
	FrameGlobal Frame = iota
	// FrameLocal is LF.
	FrameLocal
	// FrameTemporary is TF.
	FrameTemporary
)

var frameTags = [...]string{"GF", "LF", "TF"}

func (f Frame) String() string {
	if f < 0 || int(f) >= len(frameTags) {
		return fmt.Sprintf("Frame(%d)", int(f))
	}
	return frameTags[f]
}

// ParseFrame resolves a frame tag. Tags are case-sensitive.
func ParseFrame(tag string) (Frame, bool) {
	for i, t := range frameTags {
		if t == tag {
			return Frame(i), true
		}
	}
	return 0, false
}

// Kind is the data type of a constant or a type operand.
type Kind int

const (
	// KindInt is an integer.
	KindInt Kind = iota
	// KindBool is true or false.
	KindBool
	// KindString is a string with \ddd escapes.
	KindString
	// KindNil is nil.
	KindNil
)

var kindTags = [...]string{"int", "bool", "string", "nil"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTags[k]
}

// ParseKind resolves a literal type tag such as "int".
func ParseKind(tag string) (Kind, bool) {
	for i, t := range kindTags {
		if t == tag {
			return Kind(i), true
		}
	}
	return 0, false
}

// ArgType is the value of the type attribute of an emitted operand.
type ArgType string

const (
	TypeInt    ArgType = "int"
	TypeBool   ArgType = "bool"
	TypeString ArgType = "string"
	TypeNil    ArgType = "nil"
	TypeLabel  ArgType = "label"
	TypeType   ArgType = "type"
	TypeVar    ArgType = "var"
)

// Argument is one operand of an instruction.
type Argument interface {
	// Type is the coarse kind written to the type attribute.
	Type() ArgType
	// Text is the literal content written to the operand element.
	Text() string
}

// Variable is a frame-qualified variable such as GF@counter.
type Variable struct {
	Frame Frame
	Name  string
}

func (v Variable) Type() ArgType { return TypeVar }
func (v Variable) Text() string  { return v.Frame.String() + "@" + v.Name }

// Constant is a typed literal such as int@42 or string@a\032b.
type Constant struct {
	Kind    Kind
	Literal string
}

func (c Constant) Type() ArgType { return ArgType(c.Kind.String()) }
func (c Constant) Text() string  { return c.Literal }

// Label is a bare label name.
type Label struct {
	Name string
}

func (l Label) Type() ArgType { return TypeLabel }
func (l Label) Text() string  { return l.Name }

// TypeName is a bare type name, the second operand of READ.
type TypeName struct {
	Kind Kind
}

func (t TypeName) Type() ArgType { return TypeType }
func (t TypeName) Text() string  { return t.Kind.String() }

// IsSymbol reports whether a is a variable or a constant.
func IsSymbol(a Argument) bool {
	switch a.(type) {
	case Variable, Constant:
		return true
	}
	return false
}

// ParseOperand classifies one operand token of op at the 0-based position pos.
func ParseOperand(op Opcode, pos int, token string) (Argument, error) {
	var (
		arg Argument
		err error
	)
	switch strings.Count(token, "@") {
	case 0:
		arg, err = parseBareOperand(op, pos, token)
	case 1:
		prefix, rest, _ := strings.Cut(token, "@")
		arg, err = parsePrefixedOperand(prefix, rest, token)
	default:
		err = malformedOperand(op, pos, token, "more than one '@'")
	}
	if e, ok := err.(*Error); ok && e.Opcode == "" {
		e.Opcode = op.String()
		e.Operand = pos + 1
	}
	return arg, err
}

func parsePrefixedOperand(prefix, rest, token string) (Argument, error) {
	if frame, ok := ParseFrame(prefix); ok {
		if err := ValidateIdentifier(rest); err != nil {
			return nil, err
		}
		return Variable{Frame: frame, Name: rest}, nil
	}
	kind, ok := ParseKind(prefix)
	if !ok {
		e := newError(ErrMalformedOperand, "unknown prefix "+prefix)
		e.Token = token
		return nil, e
	}
	if err := ValidateLiteral(kind, rest); err != nil {
		return nil, err
	}
	return Constant{Kind: kind, Literal: rest}, nil
}

// parseBareOperand handles tokens without '@'. Only labels and READ type
// names may appear bare.
func parseBareOperand(op Opcode, pos int, token string) (Argument, error) {
	cat := op.Category()
	if pos == 0 && (cat == OneLabel || cat == LabelSymbolSymbol) {
		if err := ValidateIdentifier(token); err != nil {
			return nil, err
		}
		return Label{Name: token}, nil
	}
	if pos == 1 && cat == VarType {
		if kind, ok := ParseKind(token); ok {
			return TypeName{Kind: kind}, nil
		}
	}
	return nil, malformedOperand(op, pos, token, "")
}

func malformedOperand(op Opcode, pos int, token, msg string) *Error {
	e := newError(ErrMalformedOperand, msg)
	e.Opcode = op.String()
	e.Operand = pos + 1
	e.Token = token
	return e
}

package ippcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperand(t *testing.T) {
	tests := []struct {
		name  string
		op    Opcode
		pos   int
		token string
		want  Argument
	}{
		{"GlobalVar", MOVE, 0, "GF@x", Variable{Frame: FrameGlobal, Name: "x"}},
		{"LocalVar", DEFVAR, 0, "LF@_tmp", Variable{Frame: FrameLocal, Name: "_tmp"}},
		{"TempVar", POPS, 0, "TF@a-b", Variable{Frame: FrameTemporary, Name: "a-b"}},
		{"Int", MOVE, 1, "int@42", Constant{Kind: KindInt, Literal: "42"}},
		{"SignedInt", MOVE, 1, "int@-5", Constant{Kind: KindInt, Literal: "-5"}},
		{"PlusInt", MOVE, 1, "int@+5", Constant{Kind: KindInt, Literal: "+5"}},
		{"Bool", NOT, 1, "bool@true", Constant{Kind: KindBool, Literal: "true"}},
		{"Nil", WRITE, 0, "nil@nil", Constant{Kind: KindNil, Literal: "nil"}},
		{"EmptyString", WRITE, 0, "string@", Constant{Kind: KindString, Literal: ""}},
		{"EscapedString", WRITE, 0, `string@a\065b`, Constant{Kind: KindString, Literal: `a\065b`}},
		{"Label", JUMP, 0, "loop1", Label{Name: "loop1"}},
		{"CondLabel", JUMPIFEQ, 0, "end", Label{Name: "end"}},
		{"TypeName", READ, 1, "int", TypeName{Kind: KindInt}},
		{"TypeNameBool", READ, 1, "bool", TypeName{Kind: KindBool}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseOperand(tc.op, tc.pos, tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOperandErrors(t *testing.T) {
	tests := []struct {
		name  string
		op    Opcode
		pos   int
		token string
		kind  ErrorKind
	}{
		{"TwoAt", WRITE, 0, "string@a@b", ErrMalformedOperand},
		{"UnknownPrefix", WRITE, 0, "float@1.0", ErrMalformedOperand},
		{"UpperPrefix", WRITE, 0, "INT@1", ErrMalformedOperand},
		{"LowerFrame", DEFVAR, 0, "gf@x", ErrMalformedOperand},
		{"BareVariable", DEFVAR, 0, "x", ErrMalformedOperand},
		{"BareLabelWrongOpcode", WRITE, 0, "loop", ErrMalformedOperand},
		{"BareLabelWrongPosition", JUMPIFEQ, 1, "loop", ErrMalformedOperand},
		{"TypeNameWrongPosition", READ, 0, "int", ErrMalformedOperand},
		{"UnknownTypeName", READ, 1, "float", ErrMalformedOperand},
		{"EmptyInt", MOVE, 1, "int@", ErrLexical},
		{"BadInt", MOVE, 1, "int@5x", ErrLexical},
		{"BadBool", MOVE, 1, "bool@TRUE", ErrLexical},
		{"BadNil", MOVE, 1, "nil@null", ErrLexical},
		{"BadEscape", WRITE, 0, `string@a\65b`, ErrLexical},
		{"BadVarName", DEFVAR, 0, "GF@1x", ErrLexical},
		{"EmptyVarName", DEFVAR, 0, "GF@", ErrLexical},
		{"BadLabel", JUMP, 0, "9lives", ErrLexical},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOperand(tc.op, tc.pos, tc.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tc.op.String(), e.Opcode)
			assert.Equal(t, tc.pos+1, e.Operand)
		})
	}
}

func TestVariableRoundTrip(t *testing.T) {
	for _, token := range []string{"GF@x", "LF@a-b", "TF@$&%*!?", "GF@über"} {
		arg, err := ParseOperand(MOVE, 0, token)
		require.NoError(t, err)
		text := arg.Text()
		assert.Equal(t, token, text)

		frame, name, ok := strings.Cut(text, "@")
		require.True(t, ok)
		v := arg.(Variable)
		assert.Equal(t, v.Frame.String(), frame)
		assert.Equal(t, v.Name, name)
	}
}

func TestArgumentTypes(t *testing.T) {
	assert.Equal(t, TypeVar, Variable{}.Type())
	assert.Equal(t, TypeLabel, Label{}.Type())
	assert.Equal(t, TypeType, TypeName{Kind: KindString}.Type())
	assert.Equal(t, "string", TypeName{Kind: KindString}.Text())
	assert.Equal(t, TypeNil, Constant{Kind: KindNil, Literal: "nil"}.Type())
	assert.True(t, IsSymbol(Variable{}))
	assert.True(t, IsSymbol(Constant{}))
	assert.False(t, IsSymbol(Label{}))
	assert.False(t, IsSymbol(TypeName{}))
}

package ippcode

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodeCategories(t *testing.T) {
	want := map[Category][]string{
		NoOperands:        {"CREATEFRAME", "PUSHFRAME", "POPFRAME", "RETURN", "BREAK"},
		OneLabel:          {"CALL", "LABEL", "JUMP"},
		OneSymbol:         {"PUSHS", "WRITE", "DPRINT", "EXIT"},
		OneVariable:       {"DEFVAR", "POPS"},
		VarSymbol:         {"MOVE", "INT2CHAR", "STRLEN", "TYPE", "NOT"},
		VarType:           {"READ"},
		VarSymbolSymbol:   {"ADD", "SUB", "MUL", "IDIV", "LT", "GT", "EQ", "AND", "OR", "STRI2INT", "CONCAT", "GETCHAR", "SETCHAR"},
		LabelSymbolSymbol: {"JUMPIFEQ", "JUMPIFNEQ"},
	}

	got := make(map[Category][]string)
	for _, op := range Opcodes() {
		got[op.Category()] = append(got[op.Category()], op.String())
	}
	for c := range want {
		sort.Strings(want[c])
		sort.Strings(got[c])
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("opcode categories mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, Opcodes(), 35)
}

func TestOpcodeTableComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, op := range Opcodes() {
		require.True(t, op.Valid())
		name := op.String()
		require.NotEmpty(t, name, "opcode %d has no name", int(op))
		require.False(t, seen[name], "duplicate opcode name %s", name)
		seen[name] = true
	}
}

func TestLookupOpcode(t *testing.T) {
	for _, name := range []string{"MOVE", "move", "Move", "jumpIfNeq"} {
		op, err := LookupOpcode(name)
		require.NoError(t, err, name)
		assert.Contains(t, []Opcode{MOVE, JUMPIFNEQ}, op)
	}

	_, err := LookupOpcode("FOO")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, ExitOpcode, ExitCode(err))
}

func TestCategoryShape(t *testing.T) {
	assert.Equal(t, 0, NoOperands.Arity())
	assert.Equal(t, "-", NoOperands.String())
	assert.Equal(t, "var type", VarType.String())
	assert.Equal(t, "label symb symb", LabelSymbolSymbol.String())
	assert.Equal(t, []Slot{SlotVariable, SlotSymbol, SlotSymbol}, VarSymbolSymbol.Shape())
}

func TestOpcodeStringInvalid(t *testing.T) {
	assert.False(t, Opcode(-1).Valid())
	assert.Equal(t, "Opcode(99)", Opcode(99).String())
	assert.NotPanics(t, func() {
		assert.Equal(t, NoOperands, Opcode(99).Category())
		assert.Equal(t, NoOperands, Opcode(-1).Category())
	})
}

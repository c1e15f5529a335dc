package ippcode

import (
	"fmt"
	"strings"
)

// Opcode is an instruction mnemonic of IPPcode24.
type Opcode int

// The instruction set, grouped by operand category.
const (
	// Frames and calls.
	CREATEFRAME Opcode = iota
	PUSHFRAME
	POPFRAME
	RETURN
	BREAK
	CALL
	LABEL
	JUMP
	// Single symbol or variable.
	PUSHS
	WRITE
	DPRINT
	EXIT
	DEFVAR
	POPS
	// Variable plus symbol or type.
	MOVE
	INT2CHAR
	STRLEN
	TYPE
	NOT
	READ
	// Three operands.
	ADD
	SUB
	MUL
	IDIV
	LT
	GT
	EQ
	AND
	OR
	STRI2INT
	CONCAT
	GETCHAR
	SETCHAR
	JUMPIFEQ
	JUMPIFNEQ

	opcodeCount
)

// Category is the operand layout an opcode expects.
type Category int

const (
	// NoOperands takes nothing.
	NoOperands Category = iota
	// OneLabel takes <label>.
	OneLabel
	// OneSymbol takes <symb>.
	OneSymbol
	// OneVariable takes <var>.
	OneVariable
	// VarSymbol takes <var> <symb>.
	VarSymbol
	// VarType takes <var> <type>.
	VarType
	// VarSymbolSymbol takes <var> <symb> <symb>.
	VarSymbolSymbol
	// LabelSymbolSymbol takes <label> <symb> <symb>.
	LabelSymbolSymbol
)

// Slot is the coarse operand kind expected at one position.
type Slot int

const (
	SlotVariable Slot = iota
	SlotSymbol
	SlotLabel
	SlotType
)

var slotNames = [...]string{
	SlotVariable: "var",
	SlotSymbol:   "symb",
	SlotLabel:    "label",
	SlotType:     "type",
}

func (s Slot) String() string {
	if s < 0 || int(s) >= len(slotNames) {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

var shapes = map[Category][]Slot{
	NoOperands:        nil,
	OneLabel:          {SlotLabel},
	OneSymbol:         {SlotSymbol},
	OneVariable:       {SlotVariable},
	VarSymbol:         {SlotVariable, SlotSymbol},
	VarType:           {SlotVariable, SlotType},
	VarSymbolSymbol:   {SlotVariable, SlotSymbol, SlotSymbol},
	LabelSymbolSymbol: {SlotLabel, SlotSymbol, SlotSymbol},
}

// Shape returns the operand slots of the category in order.
func (c Category) Shape() []Slot {
	return shapes[c]
}

// Arity is the number of operands the category takes.
func (c Category) Arity() int {
	return len(shapes[c])
}

func (c Category) String() string {
	s := c.Shape()
	if len(s) == 0 {
		return "-"
	}
	parts := make([]string, len(s))
	for i, slot := range s {
		parts[i] = slot.String()
	}
	return strings.Join(parts, " ")
}

type opcodeInfo struct {
	name     string
	category Category
}

var opcodeTable = [opcodeCount]opcodeInfo{
	CREATEFRAME: {"CREATEFRAME", NoOperands},
	PUSHFRAME:   {"PUSHFRAME", NoOperands},
	POPFRAME:    {"POPFRAME", NoOperands},
	RETURN:      {"RETURN", NoOperands},
	BREAK:       {"BREAK", NoOperands},
	CALL:        {"CALL", OneLabel},
	LABEL:       {"LABEL", OneLabel},
	JUMP:        {"JUMP", OneLabel},
	PUSHS:       {"PUSHS", OneSymbol},
	WRITE:       {"WRITE", OneSymbol},
	DPRINT:      {"DPRINT", OneSymbol},
	EXIT:        {"EXIT", OneSymbol},
	DEFVAR:      {"DEFVAR", OneVariable},
	POPS:        {"POPS", OneVariable},
	MOVE:        {"MOVE", VarSymbol},
	INT2CHAR:    {"INT2CHAR", VarSymbol},
	STRLEN:      {"STRLEN", VarSymbol},
	TYPE:        {"TYPE", VarSymbol},
	NOT:         {"NOT", VarSymbol},
	READ:        {"READ", VarType},
	ADD:         {"ADD", VarSymbolSymbol},
	SUB:         {"SUB", VarSymbolSymbol},
	MUL:         {"MUL", VarSymbolSymbol},
	IDIV:        {"IDIV", VarSymbolSymbol},
	LT:          {"LT", VarSymbolSymbol},
	GT:          {"GT", VarSymbolSymbol},
	EQ:          {"EQ", VarSymbolSymbol},
	AND:         {"AND", VarSymbolSymbol},
	OR:          {"OR", VarSymbolSymbol},
	STRI2INT:    {"STRI2INT", VarSymbolSymbol},
	CONCAT:      {"CONCAT", VarSymbolSymbol},
	GETCHAR:     {"GETCHAR", VarSymbolSymbol},
	SETCHAR:     {"SETCHAR", VarSymbolSymbol},
	JUMPIFEQ:    {"JUMPIFEQ", LabelSymbolSymbol},
	JUMPIFNEQ:   {"JUMPIFNEQ", LabelSymbolSymbol},
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, opcodeCount)
	for op, info := range opcodeTable {
		m[info.name] = Opcode(op)
	}
	return m
}()

// LookupOpcode resolves a mnemonic case-insensitively.
func LookupOpcode(name string) (Opcode, error) {
	op, ok := opcodeByName[strings.ToUpper(name)]
	if !ok {
		e := newError(ErrUnknownOpcode, "")
		e.Opcode = strings.ToUpper(name)
		return 0, e
	}
	return op, nil
}

// Opcodes returns the whole instruction set in table order.
func Opcodes() []Opcode {
	ops := make([]Opcode, opcodeCount)
	for i := range ops {
		ops[i] = Opcode(i)
	}
	return ops
}

// Valid reports whether op is a member of the instruction set.
func (op Opcode) Valid() bool {
	return op >= 0 && op < opcodeCount
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeTable[op].name
}

// Category returns the operand layout of op, or NoOperands when op is not
// a known opcode.
func (op Opcode) Category() Category {
	if !op.Valid() {
		return NoOperands
	}
	return opcodeTable[op].category
}

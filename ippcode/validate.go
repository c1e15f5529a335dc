package ippcode

import "fmt"

// Validate checks an instruction's operands against its opcode: first the
// operand count and coarse kinds, then the opcode's type rules. Variables
// satisfy every type rule since their type is only known at run time.
func Validate(inst *Instruction) error {
	if err := checkShape(inst); err != nil {
		return err
	}
	return checkTypes(inst)
}

func checkShape(inst *Instruction) error {
	shape := inst.Opcode.Category().Shape()
	if len(inst.Args) != len(shape) {
		e := newError(ErrArityOrShape,
			fmt.Sprintf("expects %d operand(s), got %d", len(shape), len(inst.Args)))
		e.Opcode = inst.Opcode.String()
		return e
	}
	for i, slot := range shape {
		if !fitsSlot(inst.Args[i], slot) {
			e := newError(ErrArityOrShape,
				fmt.Sprintf("expects <%s>, got %s", slot, inst.Args[i].Type()))
			e.Opcode = inst.Opcode.String()
			e.Operand = i + 1
			e.Token = inst.Args[i].Text()
			return e
		}
	}
	return nil
}

func fitsSlot(a Argument, slot Slot) bool {
	switch slot {
	case SlotVariable:
		_, ok := a.(Variable)
		return ok
	case SlotSymbol:
		return IsSymbol(a)
	case SlotLabel:
		_, ok := a.(Label)
		return ok
	case SlotType:
		_, ok := a.(TypeName)
		return ok
	}
	return false
}

// kinds is a set of constant kinds accepted at one operand position.
type kinds []Kind

var (
	onlyInt    = kinds{KindInt}
	onlyBool   = kinds{KindBool}
	onlyString = kinds{KindString}
	ordered    = kinds{KindInt, KindBool, KindString}
	equatable  = kinds{KindInt, KindBool, KindString, KindNil}
)

// typeRule lists, per operand position (0-based), the constant kinds an
// opcode accepts. A nil entry places no restriction on that position.
// sameKind requires two constant operands at positions 1 and 2 to agree.
type typeRule struct {
	operands []kinds
	sameKind bool
}

var typeRules = map[Opcode]typeRule{
	ADD:       {operands: []kinds{nil, onlyInt, onlyInt}},
	SUB:       {operands: []kinds{nil, onlyInt, onlyInt}},
	MUL:       {operands: []kinds{nil, onlyInt, onlyInt}},
	IDIV:      {operands: []kinds{nil, onlyInt, onlyInt}},
	LT:        {operands: []kinds{nil, ordered, ordered}, sameKind: true},
	GT:        {operands: []kinds{nil, ordered, ordered}, sameKind: true},
	EQ:        {operands: []kinds{nil, equatable, equatable}, sameKind: true},
	JUMPIFEQ:  {operands: []kinds{nil, equatable, equatable}, sameKind: true},
	JUMPIFNEQ: {operands: []kinds{nil, equatable, equatable}, sameKind: true},
	AND:       {operands: []kinds{nil, onlyBool, onlyBool}},
	OR:        {operands: []kinds{nil, onlyBool, onlyBool}},
	NOT:       {operands: []kinds{nil, onlyBool}},
	INT2CHAR:  {operands: []kinds{nil, onlyInt}},
	STRI2INT:  {operands: []kinds{nil, onlyString, onlyInt}},
	GETCHAR:   {operands: []kinds{nil, onlyString, onlyInt}},
	CONCAT:    {operands: []kinds{nil, onlyString, onlyString}},
	STRLEN:    {operands: []kinds{nil, onlyString}},
	SETCHAR:   {operands: []kinds{nil, onlyInt, onlyString}},
	DPRINT:    {operands: []kinds{equatable}},
}

func (ks kinds) contains(k Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

func checkTypes(inst *Instruction) error {
	rule, ok := typeRules[inst.Opcode]
	if !ok {
		return nil
	}
	for i, allowed := range rule.operands {
		if allowed == nil || i >= len(inst.Args) {
			continue
		}
		c, ok := inst.Args[i].(Constant)
		if !ok {
			continue
		}
		if !allowed.contains(c.Kind) {
			return operandTypeError(inst, i, fmt.Sprintf("%s not allowed", c.Kind))
		}
	}
	if rule.sameKind && len(inst.Args) == 3 {
		a, aok := inst.Args[1].(Constant)
		b, bok := inst.Args[2].(Constant)
		if aok && bok && a.Kind != b.Kind {
			return operandTypeError(inst, 2,
				fmt.Sprintf("%s cannot be compared with %s", b.Kind, a.Kind))
		}
	}
	return nil
}

func operandTypeError(inst *Instruction, i int, msg string) *Error {
	e := newError(ErrOperandType, msg)
	e.Opcode = inst.Opcode.String()
	e.Operand = i + 1
	e.Token = inst.Args[i].Text()
	return e
}

package ippcode

import "strings"

// Instruction is one parsed source instruction.
type Instruction struct {
	Order  int // 1-based position among emitted instructions, 0 until assigned
	Opcode Opcode
	Args   []Argument
}

// String renders the instruction roughly as it appeared in the source.
func (inst *Instruction) String() string {
	var b strings.Builder
	b.WriteString(inst.Opcode.String())
	for _, a := range inst.Args {
		b.WriteByte(' ')
		switch a := a.(type) {
		case Constant:
			b.WriteString(a.Kind.String() + "@" + a.Literal)
		default:
			b.WriteString(a.Text())
		}
	}
	return b.String()
}

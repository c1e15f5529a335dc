// Package xmldoc accumulates validated instructions and renders them as the
// XML program document consumed by the interpreter.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Urethramancer/ippcode/ippcode"
)

// Declaration is written before the root element.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// DefaultIndent is the indentation unit of the pretty-printer.
const DefaultIndent = "    "

// Program is the document root.
type Program struct {
	Language     string
	Instructions []Instruction
}

// Instruction is one instruction element.
type Instruction struct {
	Order  int
	Opcode string
	Args   []Arg
}

// Arg is one operand element. Text is unescaped.
type Arg struct {
	Type string
	Text string
}

// Builder collects instructions in arrival order.
type Builder struct {
	prog Program
}

// New returns a builder for a document tagged with language.
func New(language string) *Builder {
	return &Builder{prog: Program{Language: language}}
}

// Add appends a validated instruction. Orders must run 1, 2, 3... without gaps.
func (b *Builder) Add(inst *ippcode.Instruction) error {
	want := len(b.prog.Instructions) + 1
	if inst.Order != want {
		return fmt.Errorf("instruction %s has order %d, expected %d", inst.Opcode, inst.Order, want)
	}
	in := Instruction{
		Order:  inst.Order,
		Opcode: inst.Opcode.String(),
		Args:   make([]Arg, len(inst.Args)),
	}
	for i, a := range inst.Args {
		in.Args[i] = Arg{Type: string(a.Type()), Text: a.Text()}
	}
	b.prog.Instructions = append(b.prog.Instructions, in)
	return nil
}

// Len returns the number of instructions added so far.
func (b *Builder) Len() int {
	return len(b.prog.Instructions)
}

// Program returns the document built so far.
func (b *Builder) Program() *Program {
	p := b.prog
	p.Instructions = append([]Instruction(nil), b.prog.Instructions...)
	return &p
}

// Escape replaces the XML-reserved characters &, < and > with entities.
// Bytes that are not valid UTF-8 and characters XML 1.0 does not allow are
// written as U+FFFD, so the result is always well-formed character data.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == utf8.RuneError && size == 1, !isXMLChar(r):
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

type xmlProgram struct {
	XMLName      xml.Name         `xml:"program"`
	Language     string           `xml:"language,attr"`
	Instructions []xmlInstruction `xml:"instruction"`
}

type xmlInstruction struct {
	Order  int    `xml:"order,attr"`
	Opcode string `xml:"opcode,attr"`
	Args   []xmlArg
}

type xmlArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Content string `xml:",innerxml"`
}

func (p *Program) tree() xmlProgram {
	t := xmlProgram{Language: p.Language, Instructions: make([]xmlInstruction, len(p.Instructions))}
	for i, in := range p.Instructions {
		xi := xmlInstruction{Order: in.Order, Opcode: in.Opcode, Args: make([]xmlArg, len(in.Args))}
		for j, a := range in.Args {
			xi.Args[j] = xmlArg{
				XMLName: xml.Name{Local: fmt.Sprintf("arg%d", j+1)},
				Type:    a.Type,
				Content: Escape(a.Text),
			}
		}
		t.Instructions[i] = xi
	}
	return t
}

// Render writes the declaration and the pretty-printed document to w.
// An empty indent selects DefaultIndent.
func (p *Program) Render(w io.Writer, indent string) error {
	if indent == "" {
		indent = DefaultIndent
	}
	var buf bytes.Buffer
	buf.WriteString(Declaration)
	buf.WriteByte('\n')

	enc := xml.NewEncoder(&buf)
	enc.Indent("", indent)
	if err := enc.Encode(p.tree()); err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// Marshal renders the document into a byte slice.
func (p *Program) Marshal(indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

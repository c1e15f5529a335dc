package ippcode

import "strings"

// DefaultHeader is the mandatory first significant line of a program.
const DefaultHeader = ".IPPcode24"

// Tokenizer turns source lines into unvalidated instructions. It owns the
// header-seen flag, the only state carried across lines.
type Tokenizer struct {
	header     string
	headerSeen bool
}

// NewTokenizer returns a tokenizer expecting the given header token.
// An empty header selects DefaultHeader.
func NewTokenizer(header string) *Tokenizer {
	if header == "" {
		header = DefaultHeader
	}
	return &Tokenizer{header: header}
}

// HeaderSeen reports whether the header line has been consumed.
func (t *Tokenizer) HeaderSeen() bool {
	return t.headerSeen
}

// Reset forgets the header so the tokenizer can scan another program.
func (t *Tokenizer) Reset() {
	t.headerSeen = false
}

// Tokenize processes one line. Blank, comment-only and header lines yield a
// nil instruction and a nil error.
func (t *Tokenizer) Tokenize(line string) (*Instruction, error) {
	// A '#' inside a string literal also starts a comment.
	if i := strings.IndexByte(line, '#'); i != -1 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if strings.HasPrefix(line, t.header) {
		return nil, t.consumeHeader(line)
	}
	if !t.headerSeen {
		e := newError(ErrMissingHeader, "expected "+t.header+" before the first instruction")
		return nil, e
	}

	fields := strings.Fields(line)
	op, err := LookupOpcode(fields[0])
	if err != nil {
		return nil, err
	}

	inst := &Instruction{Opcode: op}
	for pos, token := range fields[1:] {
		arg, err := ParseOperand(op, pos, token)
		if err != nil {
			return nil, err
		}
		inst.Args = append(inst.Args, arg)
	}
	return inst, nil
}

func (t *Tokenizer) consumeHeader(line string) error {
	if t.headerSeen {
		return newError(ErrDuplicateHeader, "")
	}
	fields := strings.Fields(line)
	if len(fields) != 1 || fields[0] != t.header {
		e := newError(ErrMalformedHeader, "")
		e.Token = line
		return e
	}
	t.headerSeen = true
	return nil
}

// Package translator drives the pipeline: it feeds source lines to the
// tokenizer, numbers and validates instructions, and builds the document.
package translator

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Urethramancer/ippcode/config"
	"github.com/Urethramancer/ippcode/ippcode"
	"github.com/Urethramancer/ippcode/xmldoc"
)

var (
	// ErrRead wraps failures reading the source stream.
	ErrRead = errors.New("reading source")
	// ErrWrite wraps failures writing the document.
	ErrWrite = errors.New("writing document")
)

const maxLineSize = 16 * 1024 * 1024

// Translator converts IPPcode24 source into the XML program document.
type Translator struct {
	header   string
	language string
	indent   string
	log      *zap.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithHeader sets the expected header token.
func WithHeader(h string) Option {
	return func(t *Translator) { t.header = h }
}

// WithLanguage sets the language attribute of the root element.
func WithLanguage(l string) Option {
	return func(t *Translator) { t.language = l }
}

// WithIndent sets the output indentation unit.
func WithIndent(s string) Option {
	return func(t *Translator) { t.indent = s }
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) {
		if l == nil {
			l = zap.NewNop()
		}
		t.log = l
	}
}

// New returns a Translator with IPPcode24 defaults.
func New(opts ...Option) *Translator {
	t := &Translator{
		header:   ippcode.DefaultHeader,
		language: "IPPcode24",
		indent:   xmldoc.DefaultIndent,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// FromConfig returns a Translator using the settings in cfg.
func FromConfig(cfg *config.Config, log *zap.Logger) *Translator {
	return New(
		WithHeader(cfg.Header),
		WithLanguage(cfg.Language),
		WithIndent(cfg.Indent),
		WithLogger(log),
	)
}

// Translate reads the whole program from r. The first invalid line aborts
// translation and its error is returned with the line number attached.
func (t *Translator) Translate(r io.Reader) (*xmldoc.Program, error) {
	tok := ippcode.NewTokenizer(t.header)
	doc := xmldoc.New(t.language)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		inst, err := tok.Tokenize(sc.Text())
		if err == nil && inst != nil {
			inst.Order = doc.Len() + 1
			err = ippcode.Validate(inst)
		}
		if err != nil {
			err = ippcode.WithLine(err, line)
			t.log.Debug("translation failed", zap.Int("line", line), zap.Error(err))
			return nil, err
		}
		if inst == nil {
			continue
		}
		if err := doc.Add(inst); err != nil {
			return nil, err
		}
		t.log.Debug("instruction",
			zap.Int("line", line),
			zap.Int("order", inst.Order),
			zap.Stringer("opcode", inst.Opcode),
			zap.Int("args", len(inst.Args)),
		)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	// A source without any significant line never presented a header.
	if !tok.HeaderSeen() {
		return nil, &ippcode.Error{Kind: ippcode.ErrMissingHeader, Msg: "empty program"}
	}

	t.log.Info("translated", zap.Int("instructions", doc.Len()), zap.Int("lines", line))
	return doc.Program(), nil
}

// Run translates r and writes the document to w. Nothing is written on failure.
func (t *Translator) Run(r io.Reader, w io.Writer) error {
	prog, err := t.Translate(r)
	if err != nil {
		return err
	}
	out, err := prog.Marshal(t.indent)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

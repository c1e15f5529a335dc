package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Urethramancer/ippcode/config"
	"github.com/Urethramancer/ippcode/ippcode"
	"github.com/Urethramancer/ippcode/translator"
)

var (
	errInputFile  = errors.New("cannot open input")
	errOutputFile = errors.New("cannot open output")
)

var logger *zap.Logger

type options struct {
	verbose    bool
	configPath string
	inputPath  string
	outputPath string

	cfg *config.Config
}

const helpText = `Reads a program in IPPcode24 from standard input, checks its lexical and
syntactic validity and prints its XML representation to standard output.

Exit status:
  0   success
  10  invalid command-line arguments
  11  input file or configuration could not be read
  12  output file could not be written
  21  missing or malformed header
  22  unknown opcode
  23  other lexical or syntax error`

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "parse24 [flags] < source.ippcode > program.xml",
		Short:         "Translate IPPcode24 source into its XML representation",
		Long:          helpText,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ippcode.Error{Kind: ippcode.ErrUsage, Msg: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every instruction to stderr")
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	root.Flags().StringVarP(&opts.inputPath, "input", "i", "", "read the source from a file instead of stdin")
	root.Flags().StringVarP(&opts.outputPath, "output", "o", "", "write the document to a file instead of stdout")

	root.AddCommand(&cobra.Command{
		Use:   "opcodes",
		Short: "List the instruction set and operand layouts",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listOpcodes(cmd.OutOrStdout())
			return nil
		},
	})
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &ippcode.Error{Kind: ippcode.ErrUsage, Msg: fmt.Sprintf("unexpected argument %q", args[0])}
	}
	return nil
}

// setup loads the configuration and builds the logger.
func (opts *options) setup() error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errInputFile, err)
	}
	opts.cfg = cfg

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInputFile, err)
	}
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

func run(cmd *cobra.Command, opts *options) error {
	cfg := opts.cfg
	in := cmd.InOrStdin()
	if opts.inputPath != "" {
		f, err := os.Open(opts.inputPath)
		if err != nil {
			return fmt.Errorf("%w: %w", errInputFile, err)
		}
		defer f.Close()
		in = f
	}

	tr := translator.FromConfig(cfg, logger)
	prog, err := tr.Translate(in)
	if err != nil {
		return err
	}

	// The output file is only created once the whole program is valid.
	out := cmd.OutOrStdout()
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return fmt.Errorf("%w: %w", errOutputFile, err)
		}
		defer f.Close()
		out = f
	}
	if err := prog.Render(out, cfg.Indent); err != nil {
		return fmt.Errorf("%w: %w", translator.ErrWrite, err)
	}
	return nil
}

func listOpcodes(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Opcode", "Arity", "Operands"})
	for _, op := range ippcode.Opcodes() {
		cat := op.Category()
		t.AppendRow(table.Row{op.String(), cat.Arity(), cat.String()})
	}
	t.Render()
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ippcode.ExitOK
	case errors.Is(err, errInputFile), errors.Is(err, translator.ErrRead):
		return ippcode.ExitInput
	case errors.Is(err, errOutputFile), errors.Is(err, translator.ErrWrite):
		return ippcode.ExitOutput
	}
	return ippcode.ExitCode(err)
}

func main() {
	atexit.Register(func() {
		if logger != nil {
			_ = logger.Sync()
		}
	})

	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse24: %v\n", err)
	}
	atexit.Exit(exitCode(err))
}

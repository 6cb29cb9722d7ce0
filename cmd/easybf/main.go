package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lunfardo314/easybf/engine"
	"github.com/lunfardo314/easybf/runner"
	"github.com/lunfardo314/easybf/trace"
	"github.com/lunfardo314/easybf/util/logger"
	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	Path          string        `arg:"" name:"path" type:"path" help:"Program source file."`
	Config        string        `short:"c" type:"path" help:"YAML configuration file."`
	Variant       string        `help:"Compiler and interpreter variant: direct or folding (default folding)."`
	AllowUnclosed bool          `help:"Accept '[' without matching ']'."`
	Trace         bool          `help:"Log every executed instruction."`
	Debug         bool          `help:"Debug level logging."`
	Progress      time.Duration `help:"Report number of executed instructions every interval."`
}

// apply overrides cfg with the flags which were set
func (o *options) apply(cfg *Config) error {
	if o.Variant != "" {
		v, err := runner.ParseVariant(o.Variant)
		if err != nil {
			return err
		}
		cfg.Variant = v
	}
	if o.Progress < 0 {
		return fmt.Errorf("negative progress interval %s", o.Progress)
	}
	if o.Progress > 0 {
		cfg.Progress = o.Progress
	}
	cfg.AllowUnclosed = cfg.AllowUnclosed || o.AllowUnclosed
	cfg.Trace = cfg.Trace || o.Trace
	cfg.Debug = cfg.Debug || o.Debug
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	exitCode := -1
	parser, err := kong.New(&opts,
		kong.Name("easybf"),
		kong.Description("Compiles and runs a byte-tape program. Program input is read from stdin."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			exitCode = code
		}),
	)
	if err != nil {
		panic(err)
	}
	_, err = parser.Parse(args)
	if exitCode >= 0 {
		// help was printed
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "easybf: %v\n", err)
		return exitUsage
	}

	cfg := DefaultConfig()
	if opts.Config != "" {
		if cfg, err = LoadConfig(opts.Config); err != nil {
			fmt.Fprintf(stderr, "easybf: %v\n", err)
			return exitUsage
		}
	}
	if err = opts.apply(&cfg); err != nil {
		fmt.Fprintf(stderr, "easybf: %v\n", err)
		return exitUsage
	}

	log := logger.New(stderr, cfg.Debug)
	defer func() { _ = log.Sync() }()

	src, err := os.ReadFile(opts.Path)
	if err != nil {
		fmt.Fprintf(stderr, "easybf: %v\n", err)
		return exitFailure
	}
	if err = execute(log, cfg, src, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "easybf: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func execute(log *zap.SugaredLogger, cfg Config, src []byte, stdin io.Reader, stdout io.Writer) error {
	var copts []engine.CompileOption
	if cfg.AllowUnclosed {
		copts = append(copts, engine.AllowUnclosed())
	}
	prog, err := runner.Compile(cfg.Variant, src, copts...)
	if err != nil {
		return err
	}
	log.Debugf("compiled %d source bytes into %d instructions (%s), program id %s",
		len(src), prog.Len(), cfg.Variant, runner.ProgramID(prog).Short())

	out := newOutput(stdout)
	rcfg := engine.Config{
		Input:  flushingInput{Reader: bufio.NewReader(stdin), out: out},
		Output: out,
	}
	if cfg.Progress > 0 {
		rcfg.Stats = new(engine.Stats)
		reporter := startProgressReporter(log, rcfg.Stats, cfg.Progress)
		defer reporter.stop()
	}
	if cfg.Trace {
		pipe := trace.NewPipeline(log)
		pipe.Start()
		defer pipe.Stop()
		rcfg.Tracer = pipe
	}

	res, err := runner.Run(prog, rcfg)
	// a failed write is sticky in the buffer, report it once
	if flushErr := out.Flush(); flushErr != nil && !errors.Is(err, engine.ErrOutput) {
		err = multierr.Append(err, fmt.Errorf("%w: %w", engine.ErrOutput, flushErr))
	}
	if err != nil {
		return err
	}
	log.Debugf("halted (%s) after %d instructions, cursor %d, tape %d cells",
		res.Halt, res.Steps, res.Cursor, len(res.Tape))
	return nil
}

// flushingInput flushes pending program output before every read, so a prompt is visible
// while the program waits for input and a broken output stops the run before input is consumed
type flushingInput struct {
	*bufio.Reader
	out output
}

func (in flushingInput) ReadByte() (byte, error) {
	if err := in.out.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", engine.ErrOutput, err)
	}
	return in.Reader.ReadByte()
}

type output interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// interactiveOutput flushes after every byte, so a terminal shows output as soon as it is produced
type interactiveOutput struct {
	*bufio.Writer
}

func (o interactiveOutput) WriteByte(c byte) error {
	if err := o.Writer.WriteByte(c); err != nil {
		return err
	}
	return o.Writer.Flush()
}

func newOutput(w io.Writer) output {
	bw := bufio.NewWriter(w)
	if isTerminal(w) {
		return interactiveOutput{bw}
	}
	return bw
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

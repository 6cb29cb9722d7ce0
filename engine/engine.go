package engine

import (
	"fmt"
	"io"

	"go.uber.org/atomic"
)

type (
	// Config is the environment of one program run
	Config struct {
		// program input for ','. nil means exhausted
		Input io.Reader
		// program output for '.'. nil means discard
		Output io.Writer
		// receives an Event before every instruction if not nil
		Tracer Tracer
		// live counters shared with other goroutines, optional
		Stats *Stats
	}

	// Result is the state of the machine when the run stopped
	Result struct {
		Halt   HaltReason
		Steps  uint64
		Cursor int
		Tape   []byte
	}

	Event struct {
		PC     int
		Op     string
		Arg    int
		Cursor int
		Cell   byte
	}

	Tracer interface {
		Trace(ev Event)
	}

	HaltReason byte
)

const (
	HaltEnd = HaltReason(iota)
	HaltLeftBoundary
	HaltError
)

var haltNames = map[HaltReason]string{
	HaltEnd:          "end",
	HaltLeftBoundary: "left boundary",
	HaltError:        "error",
}

func (h HaltReason) String() string {
	if s, ok := haltNames[h]; ok {
		return s
	}
	return fmt.Sprintf("(wrong halt reason %d)", byte(h))
}

// Cell returns value of the cell under the cursor, 0 if the run produced no tape
func (r *Result) Cell() byte {
	if r.Cursor >= len(r.Tape) {
		return 0
	}
	return r.Tape[r.Cursor]
}

// Stats counts executed instructions and runs. Safe for concurrent reads while a program runs
type Stats struct {
	steps atomic.Uint64
	runs  atomic.Uint64
}

func (s *Stats) Steps() uint64 {
	return s.steps.Load()
}

func (s *Stats) Runs() uint64 {
	return s.runs.Load()
}

// Machine is the run state shared by the interpreters: tape, I/O streams and accounting.
// It is owned by a single run loop
type Machine struct {
	Tape   *Tape
	in     *Input
	out    *Output
	tracer Tracer
	stats  *Stats
	steps  uint64
}

func NewMachine(cfg Config) *Machine {
	if cfg.Stats != nil {
		cfg.Stats.runs.Inc()
	}
	return &Machine{
		Tape:   NewTape(),
		in:     NewInput(cfg.Input),
		out:    NewOutput(cfg.Output),
		tracer: cfg.Tracer,
		stats:  cfg.Stats,
	}
}

// Tick accounts one dispatched instruction
func (m *Machine) Tick() {
	m.steps++
	if m.stats != nil {
		m.stats.steps.Inc()
	}
}

func (m *Machine) Tracing() bool {
	return m.tracer != nil
}

func (m *Machine) Trace(pc int, op string, arg int) {
	m.tracer.Trace(Event{
		PC:     pc,
		Op:     op,
		Arg:    arg,
		Cursor: m.Tape.cursor,
		Cell:   m.Tape.Cell(),
	})
}

// PutChar writes the current cell to the output
func (m *Machine) PutChar() error {
	return m.out.WriteByte(m.Tape.Cell())
}

// GetChar reads one byte into the current cell. The cell is not touched on failure
func (m *Machine) GetChar() error {
	b, err := m.in.ReadByte()
	if err != nil {
		return err
	}
	m.Tape.SetCell(b)
	return nil
}

func (m *Machine) Result(h HaltReason) Result {
	return Result{
		Halt:   h,
		Steps:  m.steps,
		Cursor: m.Tape.cursor,
		Tape:   m.Tape.Bytes(),
	}
}

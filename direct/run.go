package direct

import (
	"fmt"

	"github.com/lunfardo314/easybf/engine"
)

// Run executes the program on a fresh tape until the code ends or the cursor
// would move left of the first cell. Both are successful halts
func (p *Program) Run(cfg engine.Config) (engine.Result, error) {
	m := engine.NewMachine(cfg)
	tape := m.Tape
	tracing := m.Tracing()

	for pc := 0; pc < len(p.code); pc++ {
		op := p.code[pc]
		m.Tick()
		if tracing {
			m.Trace(pc, op.Name(), p.traceArg(pc, op))
		}
		switch op {
		case OpRight:
			tape.Right(1)
		case OpLeft:
			if !tape.Left(1) {
				return m.Result(engine.HaltLeftBoundary), nil
			}
		case OpInc:
			tape.Add(1)
		case OpDec:
			tape.Sub(1)
		case OpPutChar:
			if err := m.PutChar(); err != nil {
				return m.Result(engine.HaltError), engine.RuntimeError(pc, err)
			}
		case OpGetChar:
			if err := m.GetChar(); err != nil {
				return m.Result(engine.HaltError), engine.RuntimeError(pc, err)
			}
		case OpLoopOpen:
			if tape.Cell() == 0 {
				pc = p.jumps[pc]
			}
		case OpLoopClose:
			if tape.Cell() != 0 {
				pc = p.jumps[pc]
			}
		default:
			panic(fmt.Errorf("wrong opcode %s @ pc %d", op, pc))
		}
	}
	return m.Result(engine.HaltEnd), nil
}

// traceArg mirrors the argument the folded form would carry: a count or a branch target
func (p *Program) traceArg(pc int, op OpCode) int {
	switch op {
	case OpLoopOpen, OpLoopClose:
		return p.jumps[pc]
	case OpPutChar, OpGetChar:
		return 0
	}
	return 1
}

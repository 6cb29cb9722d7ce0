package folding

import (
	"fmt"

	"github.com/lunfardo314/easybf/engine"
)

// Run executes the program on a fresh tape until the code ends or a left move
// does not fit into the tape. Both are successful halts
func (p *Program) Run(cfg engine.Config) (engine.Result, error) {
	m := engine.NewMachine(cfg)
	tape := m.Tape
	tracing := m.Tracing()

	for pc := 0; pc < len(p.code); pc++ {
		in := p.code[pc]
		m.Tick()
		if tracing {
			m.Trace(pc, in.Op.Name(), in.Arg)
		}
		switch in.Op {
		case OpRight:
			tape.Right(in.Arg)
		case OpLeft:
			if !tape.Left(in.Arg) {
				return m.Result(engine.HaltLeftBoundary), nil
			}
		case OpAdd:
			tape.Add(byte(in.Arg))
		case OpSub:
			tape.Sub(byte(in.Arg))
		case OpPutChar:
			if err := m.PutChar(); err != nil {
				return m.Result(engine.HaltError), engine.RuntimeError(pc, err)
			}
		case OpGetChar:
			if err := m.GetChar(); err != nil {
				return m.Result(engine.HaltError), engine.RuntimeError(pc, err)
			}
		case OpJumpIfZero:
			if tape.Cell() == 0 {
				pc = in.Arg
			}
		case OpJumpIfNotZero:
			if tape.Cell() != 0 {
				pc = in.Arg
			}
		default:
			panic(fmt.Errorf("wrong opcode %s @ pc %d", in.Op, pc))
		}
	}
	return m.Result(engine.HaltEnd), nil
}

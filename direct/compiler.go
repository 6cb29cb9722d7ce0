package direct

import (
	"fmt"
	"io"
	"strings"

	"github.com/lunfardo314/easybf"
	"github.com/lunfardo314/easybf/engine"
	"github.com/lunfardo314/unitrie/common"
)

// EncodingPrefix starts the canonical binary form of a direct program
const EncodingPrefix = byte('D')

// Program is the direct form: one opcode per source character, with branch targets
// kept in a bidirectional jump table. Immutable after Compile
type Program struct {
	code  []OpCode
	jumps map[int]int
}

// Compile translates source into the direct form. Bytes other than the 8 command characters are skipped
func Compile(src []byte, opts ...engine.CompileOption) (*Program, error) {
	options := engine.NewCompileOptions(opts...)
	ret := &Program{
		code:  make([]OpCode, 0, len(src)),
		jumps: make(map[int]int),
	}
	var stack engine.BracketStack
	for offset, c := range src {
		op, ok := opcodeFromChar(c)
		if !ok {
			continue
		}
		idx := len(ret.code)
		switch op {
		case OpLoopOpen:
			stack.Push(idx, offset)
		case OpLoopClose:
			open, err := stack.Pop(offset)
			if err != nil {
				return nil, err
			}
			ret.jumps[idx] = open
			ret.jumps[open] = idx
		}
		ret.code = append(ret.code, op)
	}
	err := stack.Close(options, func(open int) {
		ret.jumps[open] = len(ret.code)
	})
	if err != nil {
		return nil, err
	}
	ret.assertConsistent()
	return ret, nil
}

func (p *Program) assertConsistent() {
	for from, to := range p.jumps {
		common.Assert(p.code[from].isBranch(), "jump table entry for a non-branch instruction")
		if to == len(p.code) {
			// unclosed '['
			continue
		}
		back, ok := p.jumps[to]
		common.Assert(ok && back == from, "jump table is not symmetric")
	}
}

// Len is number of instructions
func (p *Program) Len() int {
	return len(p.code)
}

// Code returns a copy of the instruction sequence
func (p *Program) Code() []OpCode {
	ret := make([]OpCode, len(p.code))
	copy(ret, p.code)
	return ret
}

// Target returns the matching branch position of the instruction at pc
func (p *Program) Target(pc int) (int, bool) {
	ret, ok := p.jumps[pc]
	return ret, ok
}

// Write writes the canonical form: prefix, number of instructions, opcodes
func (p *Program) Write(w io.Writer) error {
	if err := easybf.WriteHeader(w, EncodingPrefix, len(p.code)); err != nil {
		return err
	}
	for _, op := range p.code {
		if err := easybf.WriteInteger(w, byte(op)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Program) Bytes() []byte {
	return easybf.MustBytes(p)
}

// Source returns the program without comments
func (p *Program) Source() string {
	var buf strings.Builder
	for _, op := range p.code {
		buf.WriteByte(op.Char())
	}
	return buf.String()
}

func (p *Program) String() string {
	var buf strings.Builder
	for pc, op := range p.code {
		if op.isBranch() {
			fmt.Fprintf(&buf, "%5d  %s -> %d\n", pc, op.Name(), p.jumps[pc])
			continue
		}
		fmt.Fprintf(&buf, "%5d  %s\n", pc, op.Name())
	}
	return buf.String()
}

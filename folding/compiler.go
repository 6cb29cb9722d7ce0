package folding

import (
	"fmt"
	"io"
	"strings"

	"github.com/lunfardo314/easybf"
	"github.com/lunfardo314/easybf/engine"
	"github.com/lunfardo314/unitrie/common"
)

// EncodingPrefix starts the canonical binary form of a folded program
const EncodingPrefix = byte('F')

// Program is the folded form. Branch targets are inline, no lookup is needed at run time
type Program struct {
	code []Instr
}

// Compile translates source into the folded form: runs of '>', '<', '+', '-' become one
// counted instruction, '[' is emitted with a placeholder target back-patched at the matching ']'
func Compile(src []byte, opts ...engine.CompileOption) (*Program, error) {
	options := engine.NewCompileOptions(opts...)
	ret := &Program{
		code: make([]Instr, 0, len(src)/2),
	}
	var stack engine.BracketStack
	for offset, c := range src {
		switch c {
		case '>':
			ret.fold(OpRight)
		case '<':
			ret.fold(OpLeft)
		case '+':
			ret.fold(OpAdd)
		case '-':
			ret.fold(OpSub)
		case '.':
			ret.emit(Instr{Op: OpPutChar})
		case ',':
			ret.emit(Instr{Op: OpGetChar})
		case '[':
			stack.Push(len(ret.code), offset)
			ret.emit(Instr{Op: OpJumpIfZero})
		case ']':
			open, err := stack.Pop(offset)
			if err != nil {
				return nil, err
			}
			closeIdx := len(ret.code)
			ret.emit(Instr{Op: OpJumpIfNotZero, Arg: open})
			ret.code[open].Arg = closeIdx
		}
	}
	err := stack.Close(options, func(open int) {
		ret.code[open].Arg = len(ret.code)
	})
	if err != nil {
		return nil, err
	}
	ret.assertConsistent()
	return ret, nil
}

func (p *Program) emit(in Instr) {
	p.code = append(p.code, in)
}

// fold increments the count of the last instruction if it is the same opcode
func (p *Program) fold(op OpCode) {
	if n := len(p.code); n > 0 && p.code[n-1].Op == op {
		p.code[n-1].Arg++
		return
	}
	p.emit(Instr{Op: op, Arg: 1})
}

func (p *Program) assertConsistent() {
	for i, in := range p.code {
		switch {
		case in.Op.Foldable():
			common.Assert(in.Arg > 0, "folded instruction with zero count")
		case in.Op == OpJumpIfZero:
			if in.Arg == len(p.code) {
				// unclosed '['
				continue
			}
			common.Assert(in.Arg > i && p.code[in.Arg].Op == OpJumpIfNotZero && p.code[in.Arg].Arg == i,
				"forward branch is not matched")
		case in.Op == OpJumpIfNotZero:
			common.Assert(in.Arg < i && p.code[in.Arg].Op == OpJumpIfZero && p.code[in.Arg].Arg == i,
				"backward branch is not matched")
		}
	}
}

// Len is number of folded instructions
func (p *Program) Len() int {
	return len(p.code)
}

// Code returns a copy of the instruction sequence
func (p *Program) Code() []Instr {
	ret := make([]Instr, len(p.code))
	copy(ret, p.code)
	return ret
}

// Write writes the canonical form: prefix, number of instructions, opcode and argument of each.
// A fold count above MaxUint32 is an error
func (p *Program) Write(w io.Writer) error {
	if err := easybf.WriteHeader(w, EncodingPrefix, len(p.code)); err != nil {
		return err
	}
	for _, in := range p.code {
		if err := easybf.WriteInteger(w, byte(in.Op)); err != nil {
			return err
		}
		if err := easybf.WriteUint32(w, in.Arg); err != nil {
			return fmt.Errorf("instruction %s: %w", in, err)
		}
	}
	return nil
}

func (p *Program) Bytes() []byte {
	return easybf.MustBytes(p)
}

// Source returns the program without comments, with folded runs expanded back
func (p *Program) Source() string {
	var buf strings.Builder
	for _, in := range p.code {
		in.expand(&buf)
	}
	return buf.String()
}

func (p *Program) String() string {
	var buf strings.Builder
	for pc, in := range p.code {
		fmt.Fprintf(&buf, "%5d  %s\n", pc, in)
	}
	return buf.String()
}

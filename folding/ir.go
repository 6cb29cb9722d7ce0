package folding

import (
	"fmt"
	"strings"
)

// OpCode of the folded form. Moves and arithmetic carry a repeat count, branches carry a resolved target
type OpCode byte

const (
	OpRight = OpCode(iota)
	OpLeft
	OpAdd
	OpSub
	OpPutChar
	OpGetChar
	OpJumpIfZero
	OpJumpIfNotZero
)

type opcodeDescriptor struct {
	name     string
	char     byte
	foldable bool
}

var opcodes = map[OpCode]opcodeDescriptor{
	OpRight:         {"OP_SHR", '>', true},
	OpLeft:          {"OP_SHL", '<', true},
	OpAdd:           {"OP_ADD", '+', true},
	OpSub:           {"OP_SUB", '-', true},
	OpPutChar:       {"OP_PUTCHAR", '.', false},
	OpGetChar:       {"OP_GETCHAR", ',', false},
	OpJumpIfZero:    {"OP_JIZ", '[', false},
	OpJumpIfNotZero: {"OP_JNZ", ']', false},
}

func (c OpCode) Name() string {
	if dscr, ok := opcodes[c]; ok {
		return dscr.name
	}
	return "(wrong opcode)"
}

func (c OpCode) String() string {
	return fmt.Sprintf("%s(0x%02X)", c.Name(), byte(c))
}

func (c OpCode) Foldable() bool {
	return opcodes[c].foldable
}

func (c OpCode) isBranch() bool {
	return c == OpJumpIfZero || c == OpJumpIfNotZero
}

// Instr is one folded instruction. Arg is the repeat count of a foldable opcode,
// the target index of a branch and unused otherwise
type Instr struct {
	Op  OpCode
	Arg int
}

func (i Instr) String() string {
	switch {
	case i.Op.Foldable():
		return fmt.Sprintf("%s %d", i.Op.Name(), i.Arg)
	case i.Op.isBranch():
		return fmt.Sprintf("%s -> %d", i.Op.Name(), i.Arg)
	}
	return i.Op.Name()
}

// expand writes the source characters the instruction was folded from
func (i Instr) expand(buf *strings.Builder) {
	c := opcodes[i.Op].char
	if !i.Op.Foldable() {
		buf.WriteByte(c)
		return
	}
	for n := 0; n < i.Arg; n++ {
		buf.WriteByte(c)
	}
}

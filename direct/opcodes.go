package direct

import "fmt"

// OpCode is one instruction of the direct form: exactly one per recognized source character
type OpCode byte

const (
	OpRight = OpCode(iota)
	OpLeft
	OpInc
	OpDec
	OpPutChar
	OpGetChar
	OpLoopOpen
	OpLoopClose
)

type opcodeDescriptor struct {
	name string
	char byte
}

var opcodes = map[OpCode]opcodeDescriptor{
	OpRight:     {"OP_RIGHT", '>'},
	OpLeft:      {"OP_LEFT", '<'},
	OpInc:       {"OP_INC", '+'},
	OpDec:       {"OP_DEC", '-'},
	OpPutChar:   {"OP_PUTCHAR", '.'},
	OpGetChar:   {"OP_GETCHAR", ','},
	OpLoopOpen:  {"OP_LOOP_OPEN", '['},
	OpLoopClose: {"OP_LOOP_CLOSE", ']'},
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

// Char returns source character of the opcode
func (c OpCode) Char() byte {
	if dscr, ok := opcodes[c]; ok {
		return dscr.char
	}
	return '?'
}

func (c OpCode) isBranch() bool {
	return c == OpLoopOpen || c == OpLoopClose
}

// opcodeFromChar returns false for bytes which are comments
func opcodeFromChar(c byte) (OpCode, bool) {
	switch c {
	case '>':
		return OpRight, true
	case '<':
		return OpLeft, true
	case '+':
		return OpInc, true
	case '-':
		return OpDec, true
	case '.':
		return OpPutChar, true
	case ',':
		return OpGetChar, true
	case '[':
		return OpLoopOpen, true
	case ']':
		return OpLoopClose, true
	}
	return 0, false
}

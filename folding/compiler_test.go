package folding

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/lunfardo314/easybf/engine"
	"github.com/stretchr/testify/require"
)

func TestOpcodes(t *testing.T) {
	require.EqualValues(t, "OP_JIZ(0x06)", OpJumpIfZero.String())
	require.EqualValues(t, "(wrong opcode)", OpCode(200).Name())
	require.True(t, OpSub.Foldable())
	require.False(t, OpPutChar.Foldable())
	require.False(t, OpCode(200).Foldable())
	require.EqualValues(t, "OP_ADD 3", Instr{Op: OpAdd, Arg: 3}.String())
	require.EqualValues(t, "OP_JNZ -> 1", Instr{Op: OpJumpIfNotZero, Arg: 1}.String())
	require.EqualValues(t, "OP_GETCHAR", Instr{Op: OpGetChar}.String())
}

func TestCompile(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		p, err := Compile(nil)
		require.NoError(t, err)
		require.EqualValues(t, 0, p.Len())
	})
	t.Run("fold right", func(t *testing.T) {
		p, err := Compile([]byte(">>>"))
		require.NoError(t, err)
		require.EqualValues(t, []Instr{{Op: OpRight, Arg: 3}}, p.Code())
	})
	t.Run("fold runs", func(t *testing.T) {
		p, err := Compile([]byte("+++ comment ++--<<>.."))
		require.NoError(t, err)
		require.EqualValues(t, []Instr{
			{Op: OpAdd, Arg: 5},
			{Op: OpSub, Arg: 2},
			{Op: OpLeft, Arg: 2},
			{Op: OpRight, Arg: 1},
			{Op: OpPutChar},
			{Op: OpPutChar},
		}, p.Code())
		require.EqualValues(t, "+++++--<<>..", p.Source())
	})
	t.Run("brackets break runs", func(t *testing.T) {
		p, err := Compile([]byte("+[+]+"))
		require.NoError(t, err)
		require.EqualValues(t, []Instr{
			{Op: OpAdd, Arg: 1},
			{Op: OpJumpIfZero, Arg: 3},
			{Op: OpAdd, Arg: 1},
			{Op: OpJumpIfNotZero, Arg: 1},
			{Op: OpAdd, Arg: 1},
		}, p.Code())
	})
	t.Run("back-patching", func(t *testing.T) {
		p, err := Compile([]byte("++[>++[-]<-]"))
		require.NoError(t, err)
		code := p.Code()
		require.EqualValues(t, []Instr{
			{Op: OpAdd, Arg: 2},
			{Op: OpJumpIfZero, Arg: 9},
			{Op: OpRight, Arg: 1},
			{Op: OpAdd, Arg: 2},
			{Op: OpJumpIfZero, Arg: 6},
			{Op: OpSub, Arg: 1},
			{Op: OpJumpIfNotZero, Arg: 4},
			{Op: OpLeft, Arg: 1},
			{Op: OpSub, Arg: 1},
			{Op: OpJumpIfNotZero, Arg: 1},
		}, code)
		require.Contains(t, p.String(), "OP_JIZ -> 9")
	})
	t.Run("unbalanced close", func(t *testing.T) {
		_, err := Compile([]byte("]"))
		require.ErrorIs(t, err, engine.ErrUnbalancedCloseBracket)
		_, err = Compile([]byte("+[]-]"))
		require.ErrorIs(t, err, engine.ErrUnbalancedCloseBracket)
		require.Contains(t, err.Error(), "offset 4")
	})
	t.Run("unbalanced open", func(t *testing.T) {
		_, err := Compile([]byte("[-[]"))
		require.ErrorIs(t, err, engine.ErrUnbalancedOpenBracket)
		require.Contains(t, err.Error(), "offset 0")

		p, err := Compile([]byte("[-[]"), engine.AllowUnclosed())
		require.NoError(t, err)
		require.EqualValues(t, []Instr{
			{Op: OpJumpIfZero, Arg: 4},
			{Op: OpSub, Arg: 1},
			{Op: OpJumpIfZero, Arg: 3},
			{Op: OpJumpIfNotZero, Arg: 2},
		}, p.Code())
	})
	t.Run("bytes", func(t *testing.T) {
		p, err := Compile([]byte("+++."))
		require.NoError(t, err)
		require.EqualValues(t, []byte{
			EncodingPrefix, 2, 0, 0, 0,
			byte(OpAdd), 3, 0, 0, 0,
			byte(OpPutChar), 0, 0, 0, 0,
		}, p.Bytes())
	})
}

func BenchmarkCompile(b *testing.B) {
	src := []byte(helloWorld)
	for i := 0; i < b.N; i++ {
		_, _ = Compile(src)
	}
}

func TestWriteLimits(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("fold count cannot exceed uint32 on this platform")
	}
	maxCount := uint64(math.MaxUint32)
	t.Run("max count", func(t *testing.T) {
		p := &Program{code: []Instr{{Op: OpAdd, Arg: int(maxCount)}}}
		var buf bytes.Buffer
		require.NoError(t, p.Write(&buf))
		require.EqualValues(t, []byte{'F', 1, 0, 0, 0, byte(OpAdd), 0xff, 0xff, 0xff, 0xff}, buf.Bytes())
	})
	t.Run("count too big", func(t *testing.T) {
		p := &Program{code: []Instr{{Op: OpAdd, Arg: int(maxCount + 1)}}}
		var buf bytes.Buffer
		err := p.Write(&buf)
		require.Error(t, err)
		require.Contains(t, err.Error(), "OP_ADD")
		require.Panics(t, func() {
			p.Bytes()
		})
	})
}

package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type collector []Event

func (c *collector) Trace(ev Event) {
	*c = append(*c, ev)
}

func TestMachine(t *testing.T) {
	t.Run("io", func(t *testing.T) {
		var out bytes.Buffer
		m := NewMachine(Config{
			Input:  bytes.NewReader([]byte{42}),
			Output: &out,
		})
		require.NoError(t, m.GetChar())
		require.EqualValues(t, 42, m.Tape.Cell())
		require.NoError(t, m.PutChar())
		require.EqualValues(t, []byte{42}, out.Bytes())
	})
	t.Run("failed input keeps cell", func(t *testing.T) {
		m := NewMachine(Config{})
		m.Tape.SetCell(9)
		require.ErrorIs(t, m.GetChar(), ErrInputExhausted)
		require.EqualValues(t, 9, m.Tape.Cell())
	})
	t.Run("stats", func(t *testing.T) {
		stats := new(Stats)
		m := NewMachine(Config{Stats: stats})
		m.Tick()
		m.Tick()
		m2 := NewMachine(Config{Stats: stats})
		m2.Tick()
		require.EqualValues(t, 3, stats.Steps())
		require.EqualValues(t, 2, stats.Runs())
		require.EqualValues(t, 2, m.Result(HaltEnd).Steps)
		require.EqualValues(t, 1, m2.Result(HaltEnd).Steps)
	})
	t.Run("trace", func(t *testing.T) {
		var c collector
		m := NewMachine(Config{Tracer: &c})
		require.True(t, m.Tracing())
		m.Tape.Right(2)
		m.Tape.Add(3)
		m.Trace(7, "OP", 1)
		require.EqualValues(t, []Event{{PC: 7, Op: "OP", Arg: 1, Cursor: 2, Cell: 3}}, []Event(c))
		require.False(t, NewMachine(Config{}).Tracing())
	})
	t.Run("result", func(t *testing.T) {
		m := NewMachine(Config{})
		m.Tape.Right(1)
		m.Tape.Sub(1)
		res := m.Result(HaltLeftBoundary)
		require.EqualValues(t, HaltLeftBoundary, res.Halt)
		require.EqualValues(t, 1, res.Cursor)
		require.EqualValues(t, 255, res.Cell())
		require.EqualValues(t, []byte{0, 255}, res.Tape)
		require.EqualValues(t, "left boundary", res.Halt.String())
	})
	t.Run("result without tape", func(t *testing.T) {
		res := Result{Halt: HaltError}
		require.EqualValues(t, 0, res.Cell())
	})
}

func TestBracketStack(t *testing.T) {
	t.Run("lifo", func(t *testing.T) {
		var s BracketStack
		s.Push(0, 0)
		s.Push(3, 5)
		require.EqualValues(t, 2, s.Len())
		idx, err := s.Pop(9)
		require.NoError(t, err)
		require.EqualValues(t, 3, idx)
		idx, err = s.Pop(10)
		require.NoError(t, err)
		require.EqualValues(t, 0, idx)
		require.NoError(t, s.Close(CompileOptions{}, nil))
	})
	t.Run("pop empty", func(t *testing.T) {
		var s BracketStack
		_, err := s.Pop(4)
		require.ErrorIs(t, err, ErrUnbalancedCloseBracket)
		require.Contains(t, err.Error(), "offset 4")
	})
	t.Run("close strict", func(t *testing.T) {
		var s BracketStack
		s.Push(0, 1)
		s.Push(2, 6)
		err := s.Close(NewCompileOptions(), func(int) {
			t.Fatal("must not patch")
		})
		require.ErrorIs(t, err, ErrUnbalancedOpenBracket)
		require.Contains(t, err.Error(), "offset 6")
	})
	t.Run("close permissive", func(t *testing.T) {
		var s BracketStack
		s.Push(0, 1)
		s.Push(2, 6)
		var patched []int
		err := s.Close(NewCompileOptions(AllowUnclosed()), func(idx int) {
			patched = append(patched, idx)
		})
		require.NoError(t, err)
		require.EqualValues(t, []int{2, 0}, patched)
		require.EqualValues(t, 0, s.Len())
	})
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTape(t *testing.T) {
	t.Run("initial", func(t *testing.T) {
		tp := NewTape()
		require.EqualValues(t, 1, tp.Len())
		require.EqualValues(t, 0, tp.Cursor())
		require.EqualValues(t, 0, tp.Cell())
	})
	t.Run("grow by one", func(t *testing.T) {
		tp := NewTape()
		for i := 0; i < 10; i++ {
			tp.Right(1)
			require.EqualValues(t, i+1, tp.Cursor())
			require.EqualValues(t, i+2, tp.Len())
		}
		require.EqualValues(t, make([]byte, 11), tp.Bytes())
	})
	t.Run("grow by many", func(t *testing.T) {
		tp := NewTape()
		tp.Add(7)
		tp.Right(5)
		require.EqualValues(t, 6, tp.Len())
		require.EqualValues(t, 5, tp.Cursor())
		require.True(t, tp.Left(5))
		require.EqualValues(t, 7, tp.Cell())
		// moving inside the visited area does not grow
		tp.Right(3)
		require.EqualValues(t, 6, tp.Len())
	})
	t.Run("left boundary", func(t *testing.T) {
		tp := NewTape()
		require.False(t, tp.Left(1))
		require.EqualValues(t, 0, tp.Cursor())
		tp.Right(2)
		require.False(t, tp.Left(3))
		require.EqualValues(t, 2, tp.Cursor())
		require.True(t, tp.Left(2))
		require.EqualValues(t, 0, tp.Cursor())
	})
	t.Run("wrapping", func(t *testing.T) {
		tp := NewTape()
		for i := 0; i < 255; i++ {
			tp.Add(1)
		}
		require.EqualValues(t, 255, tp.Cell())
		tp.Add(1)
		require.EqualValues(t, 0, tp.Cell())
		tp.Sub(1)
		require.EqualValues(t, 255, tp.Cell())
		tp.Add(byte(300 % 256))
		require.EqualValues(t, 43, tp.Cell())
	})
	t.Run("bytes is a copy", func(t *testing.T) {
		tp := NewTape()
		b := tp.Bytes()
		b[0] = 99
		require.EqualValues(t, 0, tp.Cell())
	})
}

func BenchmarkTapeRight(b *testing.B) {
	tp := NewTape()
	for i := 0; i < b.N; i++ {
		tp.Right(1)
	}
}

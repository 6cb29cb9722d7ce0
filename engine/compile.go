package engine

import (
	"github.com/gammazero/deque"
)

type (
	CompileOptions struct {
		// accept '[' without matching ']'. The unmatched branch targets the end of the code
		AllowUnclosed bool
	}
	CompileOption func(o *CompileOptions)
)

func NewCompileOptions(opts ...CompileOption) CompileOptions {
	var ret CompileOptions
	for _, opt := range opts {
		opt(&ret)
	}
	return ret
}

// AllowUnclosed reproduces the permissive behavior: programs with unclosed '[' compile
func AllowUnclosed() CompileOption {
	return func(o *CompileOptions) {
		o.AllowUnclosed = true
	}
}

type pendingOpen struct {
	index  int
	offset int
}

// BracketStack keeps pending '[' positions during compilation, innermost last
type BracketStack struct {
	d deque.Deque[pendingOpen]
}

// Push remembers '[' emitted at instruction index, found at source offset
func (s *BracketStack) Push(index, offset int) {
	s.d.PushBack(pendingOpen{index: index, offset: offset})
}

// Pop returns instruction index of the innermost pending '['.
// ']' found at source offset is reported as unbalanced if nothing is pending
func (s *BracketStack) Pop(offset int) (int, error) {
	if s.d.Len() == 0 {
		return 0, unbalancedAt(ErrUnbalancedCloseBracket, offset)
	}
	return s.d.PopBack().index, nil
}

func (s *BracketStack) Len() int {
	return s.d.Len()
}

// Close finishes compilation. With pending '[' it fails, unless unclosed brackets are allowed.
// Then patch is called for every pending index, innermost first
func (s *BracketStack) Close(opts CompileOptions, patch func(index int)) error {
	if s.d.Len() == 0 {
		return nil
	}
	if !opts.AllowUnclosed {
		return unbalancedAt(ErrUnbalancedOpenBracket, s.d.Back().offset)
	}
	for s.d.Len() > 0 {
		patch(s.d.PopBack().index)
	}
	return nil
}

package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnbalancedCloseBracket = errors.New("unbalanced brackets: ']' without matching '['")
	ErrUnbalancedOpenBracket  = errors.New("unbalanced brackets: '[' without matching ']'")
	ErrInputExhausted         = errors.New("input exhausted")
	ErrInput                  = errors.New("input error")
	ErrOutput                 = errors.New("output error")
)

func unbalancedAt(err error, offset int) error {
	return fmt.Errorf("%w at offset %d", err, offset)
}

// RuntimeError wraps err with the program counter of the failing instruction
func RuntimeError(pc int, err error) error {
	return fmt.Errorf("pc %d: %w", pc, err)
}

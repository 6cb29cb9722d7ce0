package easybf

import (
	"errors"
	"fmt"
)

// ErrPanic marks errors recovered from a panic inside compiler or interpreter
var ErrPanic = errors.New("panic")

// CatchPanicOrError runs f and returns either its error or the recovered panic wrapped with ErrPanic
func CatchPanicOrError(f func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, e)
			return
		}
		err = fmt.Errorf("%w: %v", ErrPanic, r)
	}()
	return f()
}

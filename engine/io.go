package engine

import (
	"errors"
	"fmt"
	"io"
)

// Input serves single bytes for ','. A nil reader is an exhausted stream
type Input struct {
	r   io.Reader
	br  io.ByteReader
	buf [1]byte
}

func NewInput(r io.Reader) *Input {
	ret := &Input{r: r}
	if br, ok := r.(io.ByteReader); ok {
		ret.br = br
	}
	return ret
}

func (in *Input) ReadByte() (byte, error) {
	if in.r == nil {
		return 0, ErrInputExhausted
	}
	if in.br != nil {
		b, err := in.br.ReadByte()
		if err != nil {
			return 0, inputError(err)
		}
		return b, nil
	}
	if _, err := io.ReadFull(in.r, in.buf[:]); err != nil {
		return 0, inputError(err)
	}
	return in.buf[0], nil
}

func inputError(err error) error {
	if errors.Is(err, ErrOutput) {
		// output flushed ahead of the read failed
		return err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrInputExhausted
	}
	return fmt.Errorf("%w: %w", ErrInput, err)
}

// Output emits single bytes for '.'. A nil writer discards everything
type Output struct {
	w   io.Writer
	bw  io.ByteWriter
	buf [1]byte
}

func NewOutput(w io.Writer) *Output {
	ret := &Output{w: w}
	if bw, ok := w.(io.ByteWriter); ok {
		ret.bw = bw
	}
	return ret
}

func (o *Output) WriteByte(b byte) error {
	switch {
	case o.w == nil:
		return nil
	case o.bw != nil:
		if err := o.bw.WriteByte(b); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
		return nil
	}
	o.buf[0] = b
	n, err := o.w.Write(o.buf[:])
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}

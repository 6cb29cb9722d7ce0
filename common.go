package easybf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// programs are encoded little endian
var byteOrder = binary.LittleEndian

type integerIntern interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64
}

// Encodable is a compiled program with canonical binary form
type Encodable interface {
	Write(w io.Writer) error
}

func WriteInteger[T integerIntern](w io.Writer, val T) error {
	return binary.Write(w, byteOrder, val)
}

// WriteUint32 writes a non-negative count or index as uint32. Values which do not fit are an error
func WriteUint32(w io.Writer, v int) error {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return fmt.Errorf("value %d does not fit uint32", v)
	}
	return WriteInteger(w, uint32(v))
}

// WriteHeader writes variant prefix and number of instructions which start every encoded program
func WriteHeader(w io.Writer, prefix byte, count int) error {
	if err := WriteInteger(w, prefix); err != nil {
		return err
	}
	if err := WriteUint32(w, count); err != nil {
		return fmt.Errorf("program too long: %w", err)
	}
	return nil
}

// MustBytes returns canonical form of the program. Writing to memory does not fail for a consistent program
func MustBytes(o Encodable) []byte {
	var buf bytes.Buffer
	if err := o.Write(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

package runner

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/lunfardo314/easybf"
	"github.com/lunfardo314/easybf/direct"
	"github.com/lunfardo314/easybf/engine"
	"github.com/lunfardo314/easybf/folding"
	"golang.org/x/crypto/blake2b"
)

// Variant selects the compiler/interpreter pair
type Variant byte

const (
	Direct = Variant(iota)
	Folding
)

var variantNames = map[Variant]string{
	Direct:  "direct",
	Folding: "folding",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("(wrong variant %d)", byte(v))
}

func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant '%s', expected 'direct' or 'folding'", s)
}

func (v Variant) MarshalText() ([]byte, error) {
	if _, ok := variantNames[v]; !ok {
		return nil, fmt.Errorf("wrong variant %d", byte(v))
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	ret, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = ret
	return nil
}

// Program is a compiled program of either variant
type Program interface {
	Run(cfg engine.Config) (engine.Result, error)
	Len() int
	Bytes() []byte
	Source() string
	String() string
}

var (
	_ Program = &direct.Program{}
	_ Program = &folding.Program{}
)

// Compile compiles source with the chosen variant
func Compile(v Variant, src []byte, opts ...engine.CompileOption) (Program, error) {
	var ret Program
	err := easybf.CatchPanicOrError(func() error {
		var err error
		switch v {
		case Direct:
			ret, err = direct.Compile(src, opts...)
		case Folding:
			ret, err = folding.Compile(src, opts...)
		default:
			err = fmt.Errorf("wrong variant %d", byte(v))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Run runs the program. A panic inside the interpreter is returned as an error
func Run(p Program, cfg engine.Config) (engine.Result, error) {
	var ret engine.Result
	err := easybf.CatchPanicOrError(func() error {
		var err error
		ret, err = p.Run(cfg)
		return err
	})
	if err != nil && ret.Tape == nil {
		ret.Halt = engine.HaltError
	}
	return ret, err
}

// ID is the blake2b-256 hash of the canonical binary form of the program
type ID [32]byte

func ProgramID(p Program) ID {
	return blake2b.Sum256(p.Bytes())
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns first 8 bytes of the ID in hex, for logging
func (id ID) Short() string {
	return hex.EncodeToString(id[:8])
}

// Package kind defines the effect classification word shared by every
// execution context.
//
// A Kind packs two groups of bit flags into one integer: the effect kinds
// in the low byte and the floating-point exception kinds in the next byte.
// The numeric values are part of the serialized diagnostics format and
// must not change.
package kind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is a union of effect flags and floating-point exception flags.
type Kind uint32

// Effect kinds.
const (
	Pure              Kind = 0x0000 // mathematical purity
	Nonterminating    Kind = 0x0001 // execution may not terminate
	Exception         Kind = 0x0002 // panic/signal/exit
	Reference         Kind = 0x0004 // reference to global data not owned
	Write             Kind = 0x0008 // write to global (heap) data owned
	FPE               Kind = 0x0010 // floating-point exceptions
	VariationOS       Kind = 0x0020 // operating system variation
	VariationHardware Kind = 0x0040 // hardware variation
	Bitmask           Kind = 0x00ff
)

// Floating-point exception kinds, only set together with FPE.
const (
	FpeNone         Kind = 0x0000
	FpeInvalid      Kind = 0x0100
	FpeDivideByZero Kind = 0x0400
	FpeOverflow     Kind = 0x0800
	FpeUnderflow    Kind = 0x1000
	FpeInexact      Kind = 0x2000
	FpeBitmask      Kind = 0xff00
)

// ErrUnknownKind is returned by Parse for a name that is not a kind.
var ErrUnknownKind = errors.New("unknown effect kind")

type named struct {
	bit  Kind
	name string
}

// names is ordered by bit value so String is stable.
var names = []named{
	{Nonterminating, "nonterminating"},
	{Exception, "exception"},
	{Reference, "reference"},
	{Write, "write"},
	{FPE, "fpe"},
	{VariationOS, "variation_os"},
	{VariationHardware, "variation_hardware"},
	{FpeInvalid, "invalid"},
	{FpeDivideByZero, "divide_by_zero"},
	{FpeOverflow, "overflow"},
	{FpeUnderflow, "underflow"},
	{FpeInexact, "inexact"},
}

// Has reports whether every bit of bits is set in k.
func (k Kind) Has(bits Kind) bool {
	return k&bits == bits
}

// Any reports whether at least one bit of bits is set in k.
func (k Kind) Any(bits Kind) bool {
	return k&bits != 0
}

// Effects returns the effect kinds of k without the floating-point group.
func (k Kind) Effects() Kind {
	return k & Bitmask
}

// FPEs returns the floating-point exception kinds of k.
func (k Kind) FPEs() Kind {
	return k & FpeBitmask
}

// IsPure reports whether no bit is set.
func (k Kind) IsPure() bool {
	return k == Pure
}

// Hex formats k the way diagnostics print it, e.g. 0x2014.
func (k Kind) Hex() string {
	return fmt.Sprintf("0x%04x", uint32(k))
}

// Names returns the names of the bits set in k, in bit order.
// Bits without a name are rendered in hex.
func (k Kind) Names() []string {
	if k == Pure {
		return []string{"pure"}
	}
	out := make([]string, 0, 4)
	rest := k
	for _, n := range names {
		if k&n.bit != 0 {
			out = append(out, n.name)
			rest &^= n.bit
		}
	}
	for bit := Kind(1); rest != 0; bit <<= 1 {
		if rest&bit != 0 {
			out = append(out, bit.Hex())
			rest &^= bit
		}
	}
	return out
}

func (k Kind) String() string {
	return strings.Join(k.Names(), "|")
}

// Parse reads a kind from its names ("reference|fpe", "write, exception")
// or from a numeric word ("0x2014", "20").
func Parse(s string) (Kind, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	var k Kind
	for _, f := range fields {
		bit, err := parseOne(f)
		if err != nil {
			return Pure, err
		}
		k |= bit
	}
	return k, nil
}

func parseOne(f string) (Kind, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "pure" || f == "none" {
		return Pure, nil
	}
	for _, n := range names {
		if n.name == f {
			return n.bit, nil
		}
	}
	if v, err := strconv.ParseUint(f, 0, 32); err == nil {
		return Kind(v), nil
	}
	return Pure, fmt.Errorf("%w: %q", ErrUnknownKind, f)
}

// MustParse is the panic-on-failure variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

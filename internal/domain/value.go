package domain

import (
	"fmt"
	"math/big"
)

// ValueSystem selects the radix used when a value is displayed.
type ValueSystem int

const (
	SystemDecimal ValueSystem = iota
	SystemHexadecimal
	SystemBinary
)

func (s ValueSystem) String() string {
	switch s {
	case SystemHexadecimal:
		return "hex"
	case SystemBinary:
		return "bin"
	default:
		return "dec"
	}
}

// ValueType selects the display cast applied when a value is rendered.
// TypeFloat renders the value as-is. The integer types truncate toward
// zero first; the sized types additionally range-check the truncated
// value and render in two's complement under hex and bin.
type ValueType int

const (
	TypeFloat ValueType = iota
	TypeInt
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
)

func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeInt8:
		return "i8"
	case TypeInt16:
		return "i16"
	case TypeInt32:
		return "i32"
	case TypeInt64:
		return "i64"
	case TypeUint8:
		return "u8"
	case TypeUint16:
		return "u16"
	case TypeUint32:
		return "u32"
	case TypeUint64:
		return "u64"
	default:
		return "float"
	}
}

// Sized reports whether the type has a fixed bit width.
func (t ValueType) Sized() bool {
	return t != TypeFloat && t != TypeInt
}

// Bits returns the width of a sized type, or 0.
func (t ValueType) Bits() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 8
	case TypeInt16, TypeUint16:
		return 16
	case TypeInt32, TypeUint32:
		return 32
	case TypeInt64, TypeUint64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether a sized type admits negative values.
func (t ValueType) Signed() bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	default:
		return false
	}
}

// maxExactIntegerExp bounds the magnitude up to which integral values
// are printed exactly in decimal. Values at or above 2^256 fall back
// to the significant-digits format.
const maxExactIntegerExp = 256

// maxRenderableIntExp bounds the magnitude an integer cast will expand
// for display. Beyond it the digit string would run to megabytes.
const maxRenderableIntExp = 1 << 16

// Value is a single calculator result: an arbitrary-precision float.
// Integer-ness is a property of the value, not a separate type; the
// display cast is chosen at render time.
type Value struct {
	f *big.Float
}

// NewValue wraps a big.Float. The float must not be modified afterwards.
func NewValue(f *big.Float) Value {
	if f == nil {
		return Value{}
	}
	return Value{f: f}
}

// Defined reports whether the value holds a number.
func (v Value) Defined() bool {
	return v.f != nil
}

// Float returns a copy of the underlying float, or nil for the zero Value.
func (v Value) Float() *big.Float {
	if v.f == nil {
		return nil
	}
	return new(big.Float).Copy(v.f)
}

// IsInt reports whether the value is an exact integer.
func (v Value) IsInt() bool {
	return v.f != nil && v.f.IsInt()
}

// RenderError reports a value that cannot be displayed under the current
// system/type: a non-integer under hex or bin, or a sized-type overflow.
// The value itself is intact; only its presentation failed.
type RenderError struct {
	Placeholder string
	Reason      string
}

func (e *RenderError) Error() string {
	return e.Reason
}

// Render formats the value under the given display system and type.
// digits is the number of significant digits for non-integer decimal
// output. Failures are *RenderError values; the zero Value renders as
// the empty string.
func (v Value) Render(system ValueSystem, typ ValueType, digits int) (string, error) {
	if v.f == nil {
		return "", nil
	}
	if digits <= 0 {
		digits = DefaultDisplayDigits
	}

	if typ == TypeFloat {
		if !v.f.IsInt() {
			if system != SystemDecimal {
				return "", &RenderError{
					Placeholder: "[non-integer]",
					Reason:      fmt.Sprintf("non-integer value cannot be shown in %s", system),
				}
			}
			return v.f.Text('g', digits), nil
		}
		if system == SystemDecimal && exponentOf(v.f) > maxExactIntegerExp {
			return v.f.Text('g', digits), nil
		}
		if err := v.renderableInt(); err != nil {
			return "", err
		}
		return formatInt(v.integerPart(), system), nil
	}

	if err := v.renderableInt(); err != nil {
		return "", err
	}
	i := v.integerPart()
	if !typ.Sized() {
		return formatInt(i, system), nil
	}

	lo, hi := sizedRange(typ)
	if i.Cmp(lo) < 0 || i.Cmp(hi) > 0 {
		return "", &RenderError{
			Placeholder: "[overflow]",
			Reason:      fmt.Sprintf("overflow: value does not fit in %s", typ),
		}
	}
	if system == SystemDecimal {
		return i.String(), nil
	}
	return formatSized(i, system, typ.Bits()), nil
}

// integerPart truncates toward zero.
func (v Value) integerPart() *big.Int {
	i, _ := v.f.Int(nil)
	return i
}

// renderableInt rejects magnitudes an integer cast cannot sensibly
// expand for display.
func (v Value) renderableInt() error {
	if exponentOf(v.f) <= maxRenderableIntExp {
		return nil
	}
	return &RenderError{
		Placeholder: "[overflow]",
		Reason:      "overflow: integer part too large to display",
	}
}

func exponentOf(f *big.Float) int {
	return f.MantExp(nil)
}

// formatInt prints an unbounded integer, with a leading minus under
// hex and bin rather than two's complement.
func formatInt(i *big.Int, system ValueSystem) string {
	switch system {
	case SystemHexadecimal:
		if i.Sign() < 0 {
			return "-0x" + new(big.Int).Neg(i).Text(16)
		}
		return "0x" + i.Text(16)
	case SystemBinary:
		if i.Sign() < 0 {
			return "-0b" + new(big.Int).Neg(i).Text(2)
		}
		return "0b" + i.Text(2)
	default:
		return i.String()
	}
}

// formatSized prints a range-checked integer as a fixed-width two's
// complement bit pattern.
func formatSized(i *big.Int, system ValueSystem, bits int) string {
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	pattern := new(big.Int).Mod(i, modulus)
	switch system {
	case SystemHexadecimal:
		return "0x" + zeroPad(pattern.Text(16), bits/4)
	default:
		return "0b" + zeroPad(pattern.Text(2), bits)
	}
}

func zeroPad(digits string, width int) string {
	for len(digits) < width {
		digits = "0" + digits
	}
	return digits
}

// sizedRange returns the inclusive bounds of a sized type.
func sizedRange(typ ValueType) (lo, hi *big.Int) {
	bits := uint(typ.Bits())
	if typ.Signed() {
		hi = new(big.Int).Lsh(big.NewInt(1), bits-1)
		lo = new(big.Int).Neg(hi)
		hi = hi.Sub(hi, big.NewInt(1))
		return lo, hi
	}
	hi = new(big.Int).Lsh(big.NewInt(1), bits)
	hi.Sub(hi, big.NewInt(1))
	return big.NewInt(0), hi
}

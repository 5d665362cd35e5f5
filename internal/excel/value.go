package excel

import (
	"math"
	"strconv"
)

// Kind identifies which field of a Value is set.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindUint
	KindFloat
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is one decoded cell. Signed integers widen to int64, unsigned
// integers and booleans to uint64.
type Value struct {
	kind Kind
	bits uint64
	str  string
}

// IntValue returns a signed integer cell.
func IntValue(v int64) Value { return Value{kind: KindInt, bits: uint64(v)} } //nolint:gosec // bit reinterpretation

// UintValue returns an unsigned integer cell.
func UintValue(v uint64) Value { return Value{kind: KindUint, bits: v} }

// FloatValue returns a 32-bit float cell.
func FloatValue(v float32) Value { return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))} }

// StringValue returns a text cell.
func StringValue(v string) Value { return Value{kind: KindString, str: v} }

// Kind returns the cell kind.
func (v Value) Kind() Kind { return v.kind }

// Int returns the value of a KindInt cell.
func (v Value) Int() int64 { return int64(v.bits) } //nolint:gosec // bit reinterpretation

// Uint returns the value of a KindUint cell.
func (v Value) Uint() uint64 { return v.bits }

// Bool reports whether a KindUint cell is nonzero.
func (v Value) Bool() bool { return v.kind == KindUint && v.bits != 0 }

// Float returns the value of a KindFloat cell.
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) } //nolint:gosec // stored as 32 bits

// Text returns the value of a KindString cell.
func (v Value) Text() string { return v.str }

// String formats the cell for display.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindUint:
		return strconv.FormatUint(v.bits, 10)
	case KindFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Row is one decoded table row. Values follow schema column order.
type Row struct {
	ID     uint32
	Values []Value
}

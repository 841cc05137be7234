// Package value implements Scmer^Wjexl's runtime Value: a tagged union
// over every kind the evaluation core understands (spec.md §3). The
// representation is grounded on the pack's compact tagged-value idiom
// (scm.Scmer: a fixed-shape struct carrying a kind tag plus a payload)
// but traded for plain, safe Go - a Kind byte, a uint64 scalar word and
// an `any` payload -
// instead of the teacher's hand-rolled pointer/bit packing, since this
// module has no hot interpreter loop to justify that unsafe cost.
package value

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync/atomic"

	"math/big"

	"jexl/internal/bigdec"
)

// Kind tags every Value variant spec.md §3 names.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindAtomicBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindBigInt
	KindChar
	KindF32
	KindF64
	KindBigDec
	KindText
	KindPattern
	KindSeq
	KindMap
	KindSet
	KindRange
	KindHost
)

var kindNames = [...]string{
	"null", "bool", "atomic_bool", "i8", "i16", "i32", "i64", "bigint",
	"char", "f32", "f64", "bigdec", "text", "pattern", "seq", "map",
	"set", "range", "host",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is an immutable snapshot produced by coercions and operators; it
// is never mutated in place (spec.md §3 invariants), with narrow
// exceptions: AtomicBool's payload is a shared *atomic.Bool cell by
// design (spec.md §3, "reads as a bool under coercion"; §5, "Atomic
// booleans ... get/set uses standard atomic semantics"), and the *Map
// and *Set payloads of Map and Set values are updated in place by their
// Set/Delete/Add methods.
type Value struct {
	kind Kind
	raw  uint64      // scalar payload: bool/i8/i16/i32/i64 bit pattern, char code unit, f32/f64 bits
	ptr  interface{} // heap payload: *big.Int, *bigdec.Decimal, string, *regexp.Regexp, []Value, *Map, *Set, *Range, host object, *atomic.Bool
}

func (v Value) Kind() Kind { return v.kind }

// Sentinels

var nullValue = Value{kind: KindNull}

func Null() Value { return nullValue }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Constructors

func NewBool(b bool) Value {
	var raw uint64
	if b {
		raw = 1
	}
	return Value{kind: KindBool, raw: raw}
}

func NewAtomicBool(b bool) Value {
	cell := new(atomic.Bool)
	cell.Store(b)
	return Value{kind: KindAtomicBool, ptr: cell}
}

func NewI8(i int8) Value   { return Value{kind: KindI8, raw: uint64(uint8(i))} }
func NewI16(i int16) Value { return Value{kind: KindI16, raw: uint64(uint16(i))} }
func NewI32(i int32) Value { return Value{kind: KindI32, raw: uint64(uint32(i))} }
func NewI64(i int64) Value { return Value{kind: KindI64, raw: uint64(i)} }
func NewChar(c uint16) Value { return Value{kind: KindChar, raw: uint64(c)} }

func NewBigInt(i *big.Int) Value { return Value{kind: KindBigInt, ptr: i} }

func NewF32(f float32) Value {
	return Value{kind: KindF32, raw: uint64(math.Float32bits(f))}
}
func NewF64(f float64) Value {
	return Value{kind: KindF64, raw: math.Float64bits(f)}
}

func NewBigDec(d *bigdec.Decimal) Value { return Value{kind: KindBigDec, ptr: d} }

func NewText(s string) Value { return Value{kind: KindText, ptr: s} }

func NewPattern(p *regexp.Regexp) Value { return Value{kind: KindPattern, ptr: p} }

func NewSeq(items []Value) Value { return Value{kind: KindSeq, ptr: items} }

func NewHost(obj interface{}) Value { return Value{kind: KindHost, ptr: obj} }

// Raw accessors. Each panics if called on the wrong Kind, matching the
// pack's own "wrong tag => panic" convention for unsafe accessors
// (scm.Scmer.Slice/.FastDict); internal/coerce is the layer that turns
// mismatches into recoverable *errors.Error values instead.

func (v Value) Bool() bool {
	if v.kind != KindBool {
		panic("value: Bool() on non-bool Value")
	}
	return v.raw != 0
}

func (v Value) AtomicBool() *atomic.Bool {
	if v.kind != KindAtomicBool {
		panic("value: AtomicBool() on non-atomic-bool Value")
	}
	return v.ptr.(*atomic.Bool)
}

func (v Value) I8() int8 {
	if v.kind != KindI8 {
		panic("value: I8() on non-i8 Value")
	}
	return int8(uint8(v.raw))
}

func (v Value) I16() int16 {
	if v.kind != KindI16 {
		panic("value: I16() on non-i16 Value")
	}
	return int16(uint16(v.raw))
}

func (v Value) I32() int32 {
	if v.kind != KindI32 {
		panic("value: I32() on non-i32 Value")
	}
	return int32(uint32(v.raw))
}

func (v Value) I64() int64 {
	if v.kind != KindI64 {
		panic("value: I64() on non-i64 Value")
	}
	return int64(v.raw)
}

func (v Value) Char() uint16 {
	if v.kind != KindChar {
		panic("value: Char() on non-char Value")
	}
	return uint16(v.raw)
}

func (v Value) BigInt() *big.Int {
	if v.kind != KindBigInt {
		panic("value: BigInt() on non-bigint Value")
	}
	return v.ptr.(*big.Int)
}

func (v Value) F32() float32 {
	if v.kind != KindF32 {
		panic("value: F32() on non-f32 Value")
	}
	return math.Float32frombits(uint32(v.raw))
}

func (v Value) F64() float64 {
	if v.kind != KindF64 {
		panic("value: F64() on non-f64 Value")
	}
	return math.Float64frombits(v.raw)
}

func (v Value) BigDec() *bigdec.Decimal {
	if v.kind != KindBigDec {
		panic("value: BigDec() on non-bigdec Value")
	}
	return v.ptr.(*bigdec.Decimal)
}

func (v Value) Text() string {
	if v.kind != KindText {
		panic("value: Text() on non-text Value")
	}
	return v.ptr.(string)
}

func (v Value) Pattern() *regexp.Regexp {
	if v.kind != KindPattern {
		panic("value: Pattern() on non-pattern Value")
	}
	return v.ptr.(*regexp.Regexp)
}

func (v Value) Seq() []Value {
	if v.kind != KindSeq {
		panic("value: Seq() on non-seq Value")
	}
	return v.ptr.([]Value)
}

func (v Value) Host() interface{} {
	if v.kind != KindHost {
		panic("value: Host() on non-host Value")
	}
	return v.ptr
}

// IsNumberable reports whether v's kind is "numberable" per the
// glossary: any integer kind <= 64 bits, plus Char.
func (v Value) IsNumberable() bool {
	switch v.kind {
	case KindI8, KindI16, KindI32, KindI64, KindChar:
		return true
	default:
		return false
	}
}

// IsLongRepresentable reports whether v is numberable, Bool, or
// AtomicBool (the glossary's "long-representable").
func (v Value) IsLongRepresentable() bool {
	if v.IsNumberable() {
		return true
	}
	return v.kind == KindBool || v.kind == KindAtomicBool
}

// String renders v the way the interpreter's print built-in would,
// mirroring scm.Scmer.String's per-kind formatting.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindAtomicBool:
		return strconv.FormatBool(v.AtomicBool().Load())
	case KindI8:
		return strconv.FormatInt(int64(v.I8()), 10)
	case KindI16:
		return strconv.FormatInt(int64(v.I16()), 10)
	case KindI32:
		return strconv.FormatInt(int64(v.I32()), 10)
	case KindI64:
		return strconv.FormatInt(v.I64(), 10)
	case KindChar:
		return string(rune(v.Char()))
	case KindBigInt:
		return v.BigInt().String()
	case KindF32:
		f := v.F32()
		if f != f {
			return ""
		}
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	case KindF64:
		f := v.F64()
		if f != f {
			return ""
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case KindBigDec:
		return v.BigDec().String()
	case KindText:
		return v.Text()
	case KindPattern:
		return v.Pattern().String()
	case KindSeq:
		items := v.Seq()
		s := "["
		for i, it := range items {
			if i > 0 {
				s += ", "
			}
			s += it.String()
		}
		return s + "]"
	case KindRange:
		r := v.ptr.(*Range)
		return r.String()
	case KindMap:
		m := v.ptr.(*Map)
		s := "{"
		for i, k := range m.Keys() {
			if i > 0 {
				s += ", "
			}
			val, _ := m.Get(k)
			s += k.String() + ": " + val.String()
		}
		return s + "}"
	case KindSet:
		set := v.ptr.(*Set)
		s := "{"
		for i, it := range set.Values() {
			if i > 0 {
				s += ", "
			}
			s += it.String()
		}
		return s + "}"
	case KindHost:
		return fmt.Sprintf("%v", v.ptr)
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

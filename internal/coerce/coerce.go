// Package coerce implements jexl's total coercions (spec.md §4.1): for
// every (source kind, target kind) pair either a defined result or a
// Coercion/NullOperand failure - never a panic, never an undefined value.
// Every operator in internal/arith is built on top of these.
package coerce

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"jexl/internal/bigdec"
	"jexl/internal/errors"
	"jexl/internal/value"
)

// floatLiteral is the exact grammar spec.md §4.1 gives for Text→F64
// parsing.
var floatLiteral = regexp.MustCompile(`^[+-]?\d*(\.\d*)?([eE][+-]?\d+)?$`)

// identifier is the array-index-vs-property-name predicate spec.md §4.1
// assigns to this layer even though its only consumer (the property
// subsystem) is out of this module's scope.
var identifier = regexp.MustCompile(`^(0|[1-9][0-9]{0,9})$`)

// IsArrayIndex reports whether s is a bare array index per spec.md §4.1:
// "0" or "[1-9][0-9]*", at most 10 digits.
func IsArrayIndex(s string) bool {
	return identifier.MatchString(s)
}

func nullZero[T any](strict bool, operator string, zero T) (T, error) {
	if strict {
		return zero, errors.NewNullOperand(operator)
	}
	return zero, nil
}

// textToFloat parses s per spec.md §4.1's Text→F64 rule: empty string is
// NaN, otherwise the literal must match the signed-decimal-with-exponent
// grammar.
func textToFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	if !floatLiteral.MatchString(s) {
		return 0, errors.NewCoercion("text", "f64", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewCoercion("text", "f64", s)
	}
	return f, nil
}

// textToIntegerBig parses s per spec.md §4.1's Text→integer rule: parse
// as F64 first (empty → NaN → 0), then require the result to equal its
// own floor before truncating to an integer.
func textToIntegerBig(s string) (*big.Int, error) {
	f, err := textToFloat(s)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) {
		return big.NewInt(0), nil
	}
	if f != math.Floor(f) {
		return nil, errors.NewCoercion("text", "integer", s)
	}
	bi, _ := big.NewFloat(f).Int(nil)
	return bi, nil
}

// ToBool implements spec.md §4.1's Bool row.
func ToBool(strict bool, v value.Value) (bool, error) {
	if v.IsNull() {
		return nullZero(strict, "to_bool", false)
	}
	switch v.Kind() {
	case value.KindBool:
		return v.Bool(), nil
	case value.KindAtomicBool:
		return v.AtomicBool().Load(), nil
	case value.KindI8:
		return v.I8() != 0, nil
	case value.KindI16:
		return v.I16() != 0, nil
	case value.KindI32:
		return v.I32() != 0, nil
	case value.KindI64:
		return v.I64() != 0, nil
	case value.KindChar:
		return v.Char() != 0, nil
	case value.KindBigInt:
		return v.BigInt().Sign() != 0, nil
	case value.KindF32:
		f := v.F32()
		return f == f && f != 0, nil
	case value.KindF64:
		f := v.F64()
		return f == f && f != 0, nil
	case value.KindBigDec:
		return v.BigDec().Sign() != 0, nil
	case value.KindText:
		s := v.Text()
		return s != "" && s != "false", nil
	default:
		return false, errors.NewCoercion(v.Kind().String(), "bool", v.String())
	}
}

func fitsInt32(i int64) bool { return i >= math.MinInt32 && i <= math.MaxInt32 }

// ToI32 implements spec.md §4.1's I32 row.
func ToI32(strict bool, v value.Value) (int32, error) {
	if v.IsNull() {
		return nullZero(strict, "to_i32", int32(0))
	}
	switch v.Kind() {
	case value.KindBool:
		return boolToInt32(v.Bool()), nil
	case value.KindAtomicBool:
		return boolToInt32(v.AtomicBool().Load()), nil
	case value.KindI8:
		return int32(v.I8()), nil
	case value.KindI16:
		return int32(v.I16()), nil
	case value.KindI32:
		return v.I32(), nil
	case value.KindI64:
		i := v.I64()
		if !fitsInt32(i) {
			return 0, errors.NewCoercion("i64", "i32", v.String())
		}
		return int32(i), nil
	case value.KindChar:
		return int32(v.Char()), nil
	case value.KindBigInt:
		return int32(v.BigInt().Int64() & 0xFFFFFFFF), nil // truncate, per spec's BigInt->I32 "truncate"
	case value.KindF32:
		f := v.F32()
		if f != f {
			return 0, nil
		}
		return int32(f), nil
	case value.KindF64:
		f := v.F64()
		if f != f {
			return 0, nil
		}
		return int32(f), nil
	case value.KindBigDec:
		n, exact := v.BigDec().Int64()
		if !exact {
			n = int64(v.BigDec().Float64())
		}
		if !fitsInt32(n) {
			return 0, errors.NewCoercion("bigdec", "i32", v.String())
		}
		return int32(n), nil
	case value.KindText:
		bi, err := textToIntegerBig(v.Text())
		if err != nil {
			return 0, err
		}
		if !bi.IsInt64() || !fitsInt32(bi.Int64()) {
			return 0, errors.NewCoercion("text", "i32", v.Text())
		}
		return int32(bi.Int64()), nil
	default:
		return 0, errors.NewCoercion(v.Kind().String(), "i32", v.String())
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// ToI64 implements spec.md §4.1's I64 row.
func ToI64(strict bool, v value.Value) (int64, error) {
	if v.IsNull() {
		return nullZero(strict, "to_i64", int64(0))
	}
	switch v.Kind() {
	case value.KindBool:
		return boolToInt64(v.Bool()), nil
	case value.KindAtomicBool:
		return boolToInt64(v.AtomicBool().Load()), nil
	case value.KindI8:
		return int64(v.I8()), nil
	case value.KindI16:
		return int64(v.I16()), nil
	case value.KindI32:
		return int64(v.I32()), nil
	case value.KindI64:
		return v.I64(), nil
	case value.KindChar:
		return int64(v.Char()), nil
	case value.KindBigInt:
		return v.BigInt().Int64(), nil // truncates to 64 bits per math/big semantics
	case value.KindF32:
		f := v.F32()
		if f != f {
			return 0, nil
		}
		return int64(f), nil
	case value.KindF64:
		f := v.F64()
		if f != f {
			return 0, nil
		}
		return int64(f), nil
	case value.KindBigDec:
		n, exact := v.BigDec().Int64()
		if exact {
			return n, nil
		}
		return int64(v.BigDec().Float64()), nil
	case value.KindText:
		bi, err := textToIntegerBig(v.Text())
		if err != nil {
			return 0, err
		}
		return bi.Int64(), nil
	default:
		return 0, errors.NewCoercion(v.Kind().String(), "i64", v.String())
	}
}

// ToBigInt implements spec.md §4.1's BigInt row. math/big is the
// standard library's own arbitrary-precision integer type; no example
// repo or ecosystem library improves on it for this job (DESIGN.md).
func ToBigInt(strict bool, v value.Value) (*big.Int, error) {
	if v.IsNull() {
		if strict {
			return nil, errors.NewNullOperand("to_bigint")
		}
		return big.NewInt(0), nil
	}
	switch v.Kind() {
	case value.KindBool:
		return big.NewInt(boolToInt64(v.Bool())), nil
	case value.KindAtomicBool:
		return big.NewInt(boolToInt64(v.AtomicBool().Load())), nil
	case value.KindI8:
		return big.NewInt(int64(v.I8())), nil
	case value.KindI16:
		return big.NewInt(int64(v.I16())), nil
	case value.KindI32:
		return big.NewInt(int64(v.I32())), nil
	case value.KindI64:
		return big.NewInt(v.I64()), nil
	case value.KindChar:
		return big.NewInt(int64(v.Char())), nil
	case value.KindBigInt:
		return new(big.Int).Set(v.BigInt()), nil
	case value.KindF32:
		f := float64(v.F32())
		if f != f {
			return big.NewInt(0), nil
		}
		return big.NewInt(int64(f)), nil
	case value.KindF64:
		f := v.F64()
		if f != f {
			return big.NewInt(0), nil
		}
		return big.NewInt(int64(f)), nil
	case value.KindBigDec:
		n, exact := v.BigDec().Int64()
		if exact {
			return big.NewInt(n), nil
		}
		return big.NewInt(int64(v.BigDec().Float64())), nil
	case value.KindText:
		s := v.Text()
		if s == "" {
			return big.NewInt(0), nil
		}
		return textToIntegerBig(s)
	default:
		return nil, errors.NewCoercion(v.Kind().String(), "bigint", v.String())
	}
}

// ToBigDec implements spec.md §4.1's BigDec row, rounding to ctx on
// ingestion (spec.md §3's "round-to-scale is applied on ingestion").
func ToBigDec(strict bool, v value.Value, ctx bigdec.Context) (*bigdec.Decimal, error) {
	if v.IsNull() {
		if strict {
			return nil, errors.NewNullOperand("to_bigdec")
		}
		return bigdec.Zero(ctx), nil
	}
	switch v.Kind() {
	case value.KindBool:
		return bigdec.FromInt64(boolToInt64(v.Bool()), ctx), nil
	case value.KindAtomicBool:
		return bigdec.FromInt64(boolToInt64(v.AtomicBool().Load()), ctx), nil
	case value.KindI8:
		return bigdec.FromInt64(int64(v.I8()), ctx), nil
	case value.KindI16:
		return bigdec.FromInt64(int64(v.I16()), ctx), nil
	case value.KindI32:
		return bigdec.FromInt64(int64(v.I32()), ctx), nil
	case value.KindI64:
		return bigdec.FromInt64(v.I64(), ctx), nil
	case value.KindChar:
		return bigdec.FromInt64(int64(v.Char()), ctx), nil
	case value.KindBigInt:
		d, err := bigdec.Parse(v.BigInt().String(), ctx)
		if err != nil {
			return nil, errors.NewCoercion("bigint", "bigdec", v.String())
		}
		return d, nil
	case value.KindF32:
		return bigdec.FromFloat64(float64(v.F32()), ctx), nil
	case value.KindF64:
		return bigdec.FromFloat64(v.F64(), ctx), nil
	case value.KindBigDec:
		return bigdec.Quantize(v.BigDec(), v.BigDec().Scale(), ctx), nil
	case value.KindText:
		s := v.Text()
		if s == "" {
			return bigdec.Zero(ctx), nil
		}
		d, err := bigdec.Parse(s, ctx)
		if err != nil {
			return nil, errors.NewCoercion("text", "bigdec", s)
		}
		return d, nil
	default:
		return nil, errors.NewCoercion(v.Kind().String(), "bigdec", v.String())
	}
}

// ToF64 implements spec.md §4.1's F64 row.
func ToF64(strict bool, v value.Value) (float64, error) {
	if v.IsNull() {
		return nullZero(strict, "to_f64", 0.0)
	}
	switch v.Kind() {
	case value.KindBool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	case value.KindAtomicBool:
		if v.AtomicBool().Load() {
			return 1.0, nil
		}
		return 0.0, nil
	case value.KindI8:
		return float64(v.I8()), nil
	case value.KindI16:
		return float64(v.I16()), nil
	case value.KindI32:
		return float64(v.I32()), nil
	case value.KindI64:
		return float64(v.I64()), nil
	case value.KindChar:
		return float64(v.Char()), nil
	case value.KindBigInt:
		f := new(big.Float).SetInt(v.BigInt())
		out, _ := f.Float64()
		return out, nil
	case value.KindBigDec:
		return v.BigDec().Float64(), nil
	case value.KindF32:
		return float64(v.F32()), nil
	case value.KindF64:
		return v.F64(), nil
	case value.KindText:
		return textToFloat(v.Text())
	default:
		return 0, errors.NewCoercion(v.Kind().String(), "f64", v.String())
	}
}

// ToText implements spec.md §4.1's Text row.
func ToText(strict bool, v value.Value) (string, error) {
	if v.IsNull() {
		return nullZero(strict, "to_text", "")
	}
	switch v.Kind() {
	case value.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case value.KindAtomicBool:
		return strconv.FormatBool(v.AtomicBool().Load()), nil
	case value.KindI8:
		return strconv.FormatInt(int64(v.I8()), 10), nil
	case value.KindI16:
		return strconv.FormatInt(int64(v.I16()), 10), nil
	case value.KindI32:
		return strconv.FormatInt(int64(v.I32()), 10), nil
	case value.KindI64:
		return strconv.FormatInt(v.I64(), 10), nil
	case value.KindChar:
		return string(rune(v.Char())), nil
	case value.KindBigInt:
		return v.BigInt().String(), nil
	case value.KindF32:
		f := v.F32()
		if f != f {
			return "", nil
		}
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	case value.KindF64:
		f := v.F64()
		if f != f {
			return "", nil
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case value.KindBigDec:
		return v.BigDec().String(), nil
	case value.KindText:
		return v.Text(), nil
	default:
		return "", errors.NewCoercion(v.Kind().String(), "text", v.String())
	}
}

// LooksLikeReal reports whether a text literal's shape indicates a real
// number (it matches the Text→F64 grammar and has a '.' or an exponent)
// rather than an integer, used by the double-lane selection rule in
// spec.md §4.2 step 5.
func LooksLikeReal(s string) bool {
	return strings.ContainsAny(s, ".eE") && floatLiteral.MatchString(s)
}

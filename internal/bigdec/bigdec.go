// Package bigdec implements the jexl BigDec value kind on top of
// github.com/ericlagergren/decimal, threading the math context
// (precision + rounding mode) through every operation as an explicit
// argument rather than as ambient state (spec.md §9, "math context
// propagation"). This is the closest pack example to Java's MathContext,
// found in _examples/other_examples/ea87e0f4_SchumacherFM-decimal-1__context.go.go
// (the decimal library's own Context/RoundingMode/Precision types).
package bigdec

import (
	"fmt"

	"github.com/ericlagergren/decimal"
)

// Context bundles the precision + rounding mode pair spec.md §4.6 calls
// math_context. Scale is tracked separately (Options.MathScale), mirroring
// how Java's MathContext (precision+rounding) and BigDecimal's scale are
// independent knobs.
type Context struct {
	Precision int32
	Rounding  decimal.RoundingMode
}

// DefaultContext matches the library's own Context128 (IEEE 754R
// Decimal128): 34 digits of precision, round-to-nearest-even.
var DefaultContext = Context{Precision: 34, Rounding: decimal.ToNearestEven}

func (c Context) libContext() decimal.Context {
	ctx := decimal.Context{RoundingMode: c.Rounding}
	ctx.SetPrecision(c.Precision)
	return ctx
}

// Decimal wraps *decimal.Big behind the narrower surface internal/arith
// and internal/coerce need, so the rest of the module never imports
// github.com/ericlagergren/decimal directly.
type Decimal struct {
	big *decimal.Big
}

// New builds a Decimal from an unscaled integer value and a scale (the
// number of digits after the decimal point), e.g. New(314, 2) == 3.14.
func New(unscaled int64, scale int32) *Decimal {
	return &Decimal{big: decimal.New(unscaled, scale)}
}

// Zero returns the BigDec zero value under ctx, used by lenient-mode
// null coercion (spec.md §4.1: "else return the kind's zero").
func Zero(ctx Context) *Decimal {
	z := new(decimal.Big)
	z.Context = ctx.libContext()
	return &Decimal{big: z}
}

// Parse parses a decimal literal under ctx, rounding to ctx's precision
// on ingestion as spec.md §3 requires ("round-to-scale is applied on
// ingestion").
func Parse(s string, ctx Context) (*Decimal, error) {
	b := new(decimal.Big)
	b.Context = ctx.libContext()
	if _, ok := b.SetString(s); !ok {
		return nil, fmt.Errorf("invalid decimal literal %q", s)
	}
	return &Decimal{big: b}, nil
}

// FromInt64 widens a long-representable value to BigDec under ctx.
func FromInt64(v int64, ctx Context) *Decimal {
	b := decimal.New(v, 0)
	b.Context = ctx.libContext()
	return &Decimal{big: b}
}

// FromFloat64 widens a float64 to BigDec under ctx. NaN widens to the
// BigDec zero, per spec.md §4.1's `NaN→0` rule.
func FromFloat64(f float64, ctx Context) *Decimal {
	b := new(decimal.Big)
	b.Context = ctx.libContext()
	if f != f { // NaN
		return &Decimal{big: b}
	}
	b.SetFloat64(f)
	return &Decimal{big: b}
}

func (d *Decimal) String() string { return d.big.String() }
func (d *Decimal) Sign() int      { return d.big.Sign() }
func (d *Decimal) Cmp(o *Decimal) int {
	return d.big.Cmp(o.big)
}

// Int64 returns the exact integer value of d and whether d has no
// fractional part (used by the narrowing policy in spec.md §4.4).
func (d *Decimal) Int64() (int64, bool) {
	if !d.big.IsInt() {
		return 0, false
	}
	v, ok := d.big.Int64()
	return v, ok
}

func (d *Decimal) Float64() float64 {
	f, _ := d.big.Float64()
	return f
}

// Scale returns the number of digits after the decimal point in d's
// current (unrounded) representation.
func (d *Decimal) Scale() int32 {
	return int32(d.big.Scale())
}

func binaryOp(x, y *Decimal, ctx Context, apply func(z, a, b *decimal.Big) *decimal.Big) *Decimal {
	z := new(decimal.Big)
	z.Context = ctx.libContext()
	apply(z, x.big, y.big)
	return &Decimal{big: z}
}

// Add, Sub, Mul implement the BigDec lane's arithmetic (spec.md §4.2
// step 4): compute under the supplied math context, result retains the
// BigDec kind.
func Add(x, y *Decimal, ctx Context) *Decimal {
	return binaryOp(x, y, ctx, (*decimal.Big).Add)
}

func Sub(x, y *Decimal, ctx Context) *Decimal {
	return binaryOp(x, y, ctx, (*decimal.Big).Sub)
}

func Mul(x, y *Decimal, ctx Context) *Decimal {
	return binaryOp(x, y, ctx, (*decimal.Big).Mul)
}

// ErrDivideByZero is returned by Quo and Rem when the divisor is zero;
// spec.md §4.2 requires this to never be downgraded, even in lenient mode.
var ErrDivideByZero = fmt.Errorf("bigdec: division by zero")

// Quo implements BigDec division: x.divide(y, math_context), scale
// determined by the context, not the operand scale (spec.md §8, property 3).
func Quo(x, y *Decimal, ctx Context) (*Decimal, error) {
	if y.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	return binaryOp(x, y, ctx, (*decimal.Big).Quo), nil
}

// Rem implements BigDec `%`: C-style remainder (sign of the dividend),
// per spec.md §4.2 ("remainder for BigDec").
func Rem(x, y *Decimal, ctx Context) (*Decimal, error) {
	if y.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	return binaryOp(x, y, ctx, (*decimal.Big).Rem), nil
}

// Quantize rounds d to scale digits after the decimal point, using ctx's
// precision and rounding mode. internal/coerce uses it to re-round an
// incoming BigDec at its own scale under ctx; Options.MathScale is not
// passed to it anywhere in this module.
func Quantize(d *Decimal, scale int32, ctx Context) *Decimal {
	z := new(decimal.Big)
	z.Context = ctx.libContext()
	z.Copy(d.big)
	z.Quantize(int(scale))
	return &Decimal{big: z}
}

// Package arith implements jexl's operator engine: the numeric domain
// ladder (long -> bigint -> double -> bigdec per spec.md §4.2), the
// comparison/equality ladder (spec.md §4.3), narrowing back to the
// smallest compatible integer kind (spec.md §4.4), and the non-numeric
// operators (containment, affix matching, empty/size). Every entry
// point threads internal/options.Options through and consults an
// optional internal/host.ArithmeticExtension before falling back to the
// built-in ladder (spec.md §9's overload hook), the way sentra's VM
// consults its module table before falling back to a builtin opcode.
package arith

import (
	"math"
	"math/big"
	"strings"

	"golang.org/x/exp/constraints"

	"jexl/internal/bigdec"
	"jexl/internal/coerce"
	"jexl/internal/errors"
	"jexl/internal/host"
	"jexl/internal/operators"
	"jexl/internal/options"
	"jexl/internal/value"
)

// Evaluator is jexl's arithmetic engine for one evaluation. It is cheap
// to construct and carries no mutable state of its own beyond the
// Options/extension/logger it was built with.
type Evaluator struct {
	opts options.Options
	ext  host.ArithmeticExtension
	log  host.Logger
}

func New(opts options.Options, ext host.ArithmeticExtension, log host.Logger) *Evaluator {
	if log == nil {
		log = host.NewStdLogger(false)
	}
	return &Evaluator{opts: opts, ext: ext, log: log}
}

type lane int

const (
	laneLong lane = iota
	laneBigInt
	laneDouble
	laneBigDec
)

func isDoubleShaped(v value.Value) bool {
	switch v.Kind() {
	case value.KindF32, value.KindF64:
		return true
	case value.KindText:
		return coerce.LooksLikeReal(v.Text())
	default:
		return false
	}
}

// classify implements the lane-selection order from spec.md §4.2: BigDec
// beats everything, then double-shaped operands, then BigInt, and long
// is the default floor.
func classify(a, b value.Value) lane {
	if a.Kind() == value.KindBigDec || b.Kind() == value.KindBigDec {
		return laneBigDec
	}
	if isDoubleShaped(a) || isDoubleShaped(b) {
		return laneDouble
	}
	if a.Kind() == value.KindBigInt || b.Kind() == value.KindBigInt {
		return laneBigInt
	}
	return laneLong
}

func classifyUnary(v value.Value) lane {
	switch {
	case v.Kind() == value.KindBigDec:
		return laneBigDec
	case isDoubleShaped(v):
		return laneDouble
	case v.Kind() == value.KindBigInt:
		return laneBigInt
	default:
		return laneLong
	}
}

func (e *Evaluator) checkNullOperands(sym operators.Symbol, vals ...value.Value) error {
	if !e.opts.StrictArithmetic() || operators.IsNullSafe(sym) {
		return nil
	}
	for _, v := range vals {
		if v.IsNull() {
			d, _ := operators.Lookup(sym)
			return errors.NewNullOperand(d.Text)
		}
	}
	return nil
}

func substituteNull(v value.Value) value.Value {
	if v.IsNull() {
		return value.NewI32(0)
	}
	return v
}

// --- narrowing (spec.md §4.4) ---

func intRank(k value.Kind) int {
	switch k {
	case value.KindI8, value.KindBool, value.KindAtomicBool:
		return 0
	case value.KindI16, value.KindChar:
		return 1
	case value.KindI32:
		return 2
	default:
		return 3 // I64, BigInt-fallthrough, Text: no narrower home
	}
}

func targetRank(a, b value.Value) int {
	ra, rb := intRank(a.Kind()), intRank(b.Kind())
	if ra > rb {
		return ra
	}
	return rb
}

func rankFits(rank int, n int64) bool {
	switch rank {
	case 0:
		return n >= math.MinInt8 && n <= math.MaxInt8
	case 1:
		return n >= math.MinInt16 && n <= math.MaxInt16
	case 2:
		return n >= math.MinInt32 && n <= math.MaxInt32
	default:
		return true
	}
}

func valueForRank(rank int, n int64) value.Value {
	switch rank {
	case 0:
		return value.NewI8(int8(n))
	case 1:
		return value.NewI16(int16(n))
	case 2:
		return value.NewI32(int32(n))
	default:
		return value.NewI64(n)
	}
}

// narrow is the arithmetic operators' narrowing step (spec.md §4.4): it
// walks up from the operands' shared rank to the smallest kind that
// holds n. When both operands were already long-lane width
// (I64/BigInt), the int64 result stays I64 - the overflow check in the
// caller already promotes a genuine int64 overflow to BigInt. But when
// the operands were narrower (I8/I16/I32) and the result overruns even
// I32, spec.md §8's worked example (`add(i32::MAX, 1)` -> `BigInt`)
// requires promoting straight to BigInt rather than silently widening
// into the I64 kind the operands never had in the first place.
func narrow(a, b value.Value, n int64) value.Value {
	start := targetRank(a, b)
	if start >= 3 {
		return value.NewI64(n)
	}
	for r := start; r < 3; r++ {
		if rankFits(r, n) {
			return valueForRank(r, n)
		}
	}
	return value.NewBigInt(big.NewInt(n))
}

func narrowSingle(v value.Value, n int64) value.Value {
	r := intRank(v.Kind())
	if r >= 3 {
		return value.NewI64(n)
	}
	for ; r < 3; r++ {
		if rankFits(r, n) {
			return valueForRank(r, n)
		}
	}
	return value.NewBigInt(big.NewInt(n))
}

// narrowBitwise is narrow's counterpart for the bitwise operators: spec.md
// §4.2's BigInt-on-overflow promotion is an arithmetic-ladder concern, not
// a bitwise one - shifting or masking narrower operands into the upper
// bits of a 64-bit word is the bitwise operators' normal long-lane
// behavior, not an overflow, so the result simply widens to I64 the way
// narrow used to for every caller before the arithmetic-only BigInt
// promotion was added.
func narrowBitwise(a, b value.Value, n int64) value.Value {
	start := targetRank(a, b)
	for r := start; r <= 3; r++ {
		if rankFits(r, n) {
			return valueForRank(r, n)
		}
	}
	return value.NewI64(n)
}

// --- overflow-checked signed-integer primitives (the "long lane",
// spec.md §4.2 step 5) ---
//
// addOverflows and subOverflows are generic over constraints.Signed:
// their sign-bit tests hold at any signed integer width, grounded on
// the teacher's go.mod already vendoring golang.org/x/exp. Only the
// int64 instantiation is exercised today, since the long lane always
// widens to int64 before checking for overflow.

func addOverflows[T constraints.Signed](a, b T) (T, bool) {
	sum := a + b
	overflow := (a >= 0 && b >= 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0)
	return sum, overflow
}

func subOverflows[T constraints.Signed](a, b T) (T, bool) {
	diff := a - b
	overflow := (a^b) < 0 && (a^diff) < 0
	return diff, overflow
}

// mulOverflows stays int64-specific rather than generic: its
// MinInt64/-1 edge case needs the concrete type's minimum value, which
// constraints.Signed alone cannot produce without a reflect- or
// unsafe-based width lookup that would cost more clarity than the
// generalization is worth for a helper with exactly one caller width.
func mulOverflows(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	p := a * b
	if p/a != b {
		return p, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return p, true
	}
	return p, false
}

func bigIntOf(v value.Value) *big.Int {
	bi, _ := coerce.ToBigInt(false, v)
	return bi
}

func floatOf(v value.Value) float64 {
	f, _ := coerce.ToF64(false, v)
	return f
}

func bigDecOf(v value.Value, ctx bigdec.Context) *bigdec.Decimal {
	d, _ := coerce.ToBigDec(false, v, ctx)
	return d
}

// --- binary arithmetic ---

// prepare runs the shared prologue for every binary arithmetic operator:
// the null-operand guard, then null substitution. The returned a, b are
// what lane classification and narrowing must both use - substituting
// only inside a helper closure (as an earlier draft did) leaves
// narrowing looking at the original, possibly-Null operand instead of
// its substituted zero.
func (e *Evaluator) prepare(sym operators.Symbol, a, b value.Value) (value.Value, value.Value, error) {
	if err := e.checkNullOperands(sym, a, b); err != nil {
		return value.Null(), value.Null(), err
	}
	return substituteNull(a), substituteNull(b), nil
}

// Add implements "+" across the full numeric ladder.
func (e *Evaluator) Add(a, b value.Value) (value.Value, error) {
	a, b, err := e.prepare(operators.Add, a, b)
	if err != nil {
		return value.Null(), err
	}
	if e.ext != nil {
		if r, ok, err := e.ext.Add(a, b); ok {
			return r, err
		}
	}
	switch classify(a, b) {
	case laneBigDec:
		return value.NewBigDec(bigdec.Add(bigDecOf(a, e.opts.MathContext), bigDecOf(b, e.opts.MathContext), e.opts.MathContext)), nil
	case laneDouble:
		return value.NewF64(floatOf(a) + floatOf(b)), nil
	case laneBigInt:
		return value.NewBigInt(new(big.Int).Add(bigIntOf(a), bigIntOf(b))), nil
	default:
		x, y, err := bothI64(a, b)
		if err != nil {
			return value.Null(), err
		}
		sum, overflow := addOverflows(x, y)
		if overflow {
			return value.NewBigInt(new(big.Int).Add(big.NewInt(x), big.NewInt(y))), nil
		}
		return narrow(a, b, sum), nil
	}
}

// Subtract implements "-".
func (e *Evaluator) Subtract(a, b value.Value) (value.Value, error) {
	a, b, err := e.prepare(operators.Subtract, a, b)
	if err != nil {
		return value.Null(), err
	}
	if e.ext != nil {
		if r, ok, err := e.ext.Subtract(a, b); ok {
			return r, err
		}
	}
	switch classify(a, b) {
	case laneBigDec:
		return value.NewBigDec(bigdec.Sub(bigDecOf(a, e.opts.MathContext), bigDecOf(b, e.opts.MathContext), e.opts.MathContext)), nil
	case laneDouble:
		return value.NewF64(floatOf(a) - floatOf(b)), nil
	case laneBigInt:
		return value.NewBigInt(new(big.Int).Sub(bigIntOf(a), bigIntOf(b))), nil
	default:
		x, y, err := bothI64(a, b)
		if err != nil {
			return value.Null(), err
		}
		diff, overflow := subOverflows(x, y)
		if overflow {
			return value.NewBigInt(new(big.Int).Sub(big.NewInt(x), big.NewInt(y))), nil
		}
		return narrow(a, b, diff), nil
	}
}

// Multiply implements "*".
func (e *Evaluator) Multiply(a, b value.Value) (value.Value, error) {
	a, b, err := e.prepare(operators.Multiply, a, b)
	if err != nil {
		return value.Null(), err
	}
	if e.ext != nil {
		if r, ok, err := e.ext.Multiply(a, b); ok {
			return r, err
		}
	}
	switch classify(a, b) {
	case laneBigDec:
		return value.NewBigDec(bigdec.Mul(bigDecOf(a, e.opts.MathContext), bigDecOf(b, e.opts.MathContext), e.opts.MathContext)), nil
	case laneDouble:
		return value.NewF64(floatOf(a) * floatOf(b)), nil
	case laneBigInt:
		return value.NewBigInt(new(big.Int).Mul(bigIntOf(a), bigIntOf(b))), nil
	default:
		x, y, err := bothI64(a, b)
		if err != nil {
			return value.Null(), err
		}
		prod, overflow := mulOverflows(x, y)
		if overflow {
			return value.NewBigInt(new(big.Int).Mul(big.NewInt(x), big.NewInt(y))), nil
		}
		return narrow(a, b, prod), nil
	}
}

// Divide implements "/". Exact long division stays in the long lane and
// narrows as usual; an inexact long division promotes to the double
// lane rather than truncating, since jexl division is not C-style
// integer division (DESIGN.md, Open Question resolution).
func (e *Evaluator) Divide(a, b value.Value) (value.Value, error) {
	a, b, err := e.prepare(operators.Divide, a, b)
	if err != nil {
		return value.Null(), err
	}
	if e.ext != nil {
		if r, ok, err := e.ext.Divide(a, b); ok {
			return r, err
		}
	}
	switch classify(a, b) {
	case laneBigDec:
		d, err := bigdec.Quo(bigDecOf(a, e.opts.MathContext), bigDecOf(b, e.opts.MathContext), e.opts.MathContext)
		if err != nil {
			return value.Null(), errors.NewDivideByZero("/")
		}
		return value.NewBigDec(d), nil
	case laneDouble:
		y := floatOf(b)
		if y == 0 {
			return value.Null(), errors.NewDivideByZero("/")
		}
		return value.NewF64(floatOf(a) / y), nil
	case laneBigInt:
		bx, by := bigIntOf(a), bigIntOf(b)
		if by.Sign() == 0 {
			return value.Null(), errors.NewDivideByZero("/")
		}
		return value.NewBigInt(new(big.Int).Quo(bx, by)), nil
	default:
		x, y, err := bothI64(a, b)
		if err != nil {
			return value.Null(), err
		}
		if y == 0 {
			return value.Null(), errors.NewDivideByZero("/")
		}
		if x%y != 0 {
			return value.NewF64(float64(x) / float64(y)), nil
		}
		if x == math.MinInt64 && y == -1 {
			return value.NewBigInt(new(big.Int).Quo(big.NewInt(x), big.NewInt(y))), nil
		}
		return narrow(a, b, x/y), nil
	}
}

// Mod implements "%": C-style remainder (sign follows the dividend) at
// the long, double, and BigDec lanes, matching internal/bigdec.Rem's
// own contract - except the BigInt lane, which uses mathematical
// (Euclidean) modulo: the result is never negative, whatever the signs
// of the operands, e.g. mod(BigInt(-7), BigInt(3)) == BigInt(2).
func (e *Evaluator) Mod(a, b value.Value) (value.Value, error) {
	a, b, err := e.prepare(operators.Modulo, a, b)
	if err != nil {
		return value.Null(), err
	}
	if e.ext != nil {
		if r, ok, err := e.ext.Mod(a, b); ok {
			return r, err
		}
	}
	switch classify(a, b) {
	case laneBigDec:
		d, err := bigdec.Rem(bigDecOf(a, e.opts.MathContext), bigDecOf(b, e.opts.MathContext), e.opts.MathContext)
		if err != nil {
			return value.Null(), errors.NewDivideByZero("%")
		}
		return value.NewBigDec(d), nil
	case laneDouble:
		y := floatOf(b)
		if y == 0 {
			return value.Null(), errors.NewDivideByZero("%")
		}
		return value.NewF64(math.Mod(floatOf(a), y)), nil
	case laneBigInt:
		bx, by := bigIntOf(a), bigIntOf(b)
		if by.Sign() == 0 {
			return value.Null(), errors.NewDivideByZero("%")
		}
		return value.NewBigInt(new(big.Int).Mod(bx, by)), nil
	default:
		x, y, err := bothI64(a, b)
		if err != nil {
			return value.Null(), err
		}
		if y == 0 {
			return value.Null(), errors.NewDivideByZero("%")
		}
		if x == math.MinInt64 && y == -1 {
			return narrow(a, b, 0), nil
		}
		return narrow(a, b, x%y), nil
	}
}

func bothI64(a, b value.Value) (int64, int64, error) {
	x, err := coerce.ToI64(false, a)
	if err != nil {
		return 0, 0, err
	}
	y, err := coerce.ToI64(false, b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// --- unary arithmetic ---

// Negate implements unary "-".
func (e *Evaluator) Negate(v value.Value) (value.Value, error) {
	if v.IsNull() {
		if e.opts.StrictArithmetic() {
			return value.Null(), errors.NewNullOperand("-")
		}
		return value.NewI32(0), nil
	}
	switch classifyUnary(v) {
	case laneBigDec:
		d := bigDecOf(v, e.opts.MathContext)
		return value.NewBigDec(bigdec.Sub(bigdec.Zero(e.opts.MathContext), d, e.opts.MathContext)), nil
	case laneDouble:
		return value.NewF64(-floatOf(v)), nil
	case laneBigInt:
		return value.NewBigInt(new(big.Int).Neg(bigIntOf(v))), nil
	default:
		x, err := coerce.ToI64(false, v)
		if err != nil {
			return value.Null(), err
		}
		if x == math.MinInt64 {
			return value.NewBigInt(new(big.Int).Neg(big.NewInt(x))), nil
		}
		return narrowSingle(v, -x), nil
	}
}

// Positivize implements unary "+": validates v is numeric and returns
// its canonical numeric form unchanged.
func (e *Evaluator) Positivize(v value.Value) (value.Value, error) {
	if v.IsNull() {
		if e.opts.StrictArithmetic() {
			return value.Null(), errors.NewNullOperand("+")
		}
		return value.NewI32(0), nil
	}
	switch classifyUnary(v) {
	case laneBigDec:
		return value.NewBigDec(bigDecOf(v, e.opts.MathContext)), nil
	case laneDouble:
		return value.NewF64(floatOf(v)), nil
	case laneBigInt:
		return value.NewBigInt(new(big.Int).Set(bigIntOf(v))), nil
	default:
		x, err := coerce.ToI64(false, v)
		if err != nil {
			return value.Null(), err
		}
		return narrowSingle(v, x), nil
	}
}

// Complement implements "~" (bitwise complement); it only applies to
// the long and bigint lanes.
func (e *Evaluator) Complement(v value.Value) (value.Value, error) {
	if v.IsNull() {
		if e.opts.StrictArithmetic() {
			return value.Null(), errors.NewNullOperand("~")
		}
		return value.NewI32(-1), nil
	}
	switch classifyUnary(v) {
	case laneBigInt:
		return value.NewBigInt(new(big.Int).Not(bigIntOf(v))), nil
	case laneDouble, laneBigDec:
		return value.Null(), errors.NewArithmetic("operator %q is not defined for non-integer operands", "~")
	default:
		x, err := coerce.ToI64(false, v)
		if err != nil {
			return value.Null(), err
		}
		return narrowSingle(v, ^x), nil
	}
}

// Not implements logical "!".
func (e *Evaluator) Not(v value.Value) (value.Value, error) {
	b, err := coerce.ToBool(e.opts.StrictArithmetic() && !operators.IsNullSafe(operators.Not), v)
	if err != nil {
		return value.Null(), err
	}
	return value.NewBool(!b), nil
}

// Increment and Decrement implement the pseudo-operators ".++"/"++." and
// ".--"/"--.": the mode only distinguishes which value the interpreter's
// assignment step should observe, both return v+-1 (spec.md §4.5).
func (e *Evaluator) Increment(v value.Value, _ operators.IncrementMode) (value.Value, error) {
	return e.Add(v, value.NewI32(1))
}

func (e *Evaluator) Decrement(v value.Value, _ operators.IncrementMode) (value.Value, error) {
	return e.Subtract(v, value.NewI32(1))
}

// --- bitwise ---

func (e *Evaluator) bitwise(sym operators.Symbol, a, b value.Value,
	long func(x, y int64) int64, big func(x, y *big.Int) *big.Int) (value.Value, error) {
	if err := e.checkNullOperands(sym, a, b); err != nil {
		return value.Null(), err
	}
	a, b = substituteNull(a), substituteNull(b)
	lane := classify(a, b)
	if lane == laneDouble || lane == laneBigDec {
		d, _ := operators.Lookup(sym)
		return value.Null(), errors.NewArithmetic("operator %q is not defined for non-integer operands", d.Text)
	}
	if lane == laneBigInt {
		return value.NewBigInt(big(bigIntOf(a), bigIntOf(b))), nil
	}
	x, errX := coerce.ToI64(false, a)
	if errX != nil {
		return value.Null(), errX
	}
	y, errY := coerce.ToI64(false, b)
	if errY != nil {
		return value.Null(), errY
	}
	return narrowBitwise(a, b, long(x, y)), nil
}

func (e *Evaluator) BitAnd(a, b value.Value) (value.Value, error) {
	return e.bitwise(operators.BitAnd, a, b,
		func(x, y int64) int64 { return x & y },
		func(x, y *big.Int) *big.Int { return new(big.Int).And(x, y) })
}

func (e *Evaluator) BitOr(a, b value.Value) (value.Value, error) {
	return e.bitwise(operators.BitOr, a, b,
		func(x, y int64) int64 { return x | y },
		func(x, y *big.Int) *big.Int { return new(big.Int).Or(x, y) })
}

func (e *Evaluator) BitXor(a, b value.Value) (value.Value, error) {
	return e.bitwise(operators.BitXor, a, b,
		func(x, y int64) int64 { return x ^ y },
		func(x, y *big.Int) *big.Int { return new(big.Int).Xor(x, y) })
}

func (e *Evaluator) ShiftLeft(a, b value.Value) (value.Value, error) {
	return e.bitwise(operators.ShiftLeft, a, b,
		func(x, y int64) int64 { return x << uint(y&63) },
		func(x, y *big.Int) *big.Int { return new(big.Int).Lsh(x, uint(y.Int64()&63)) })
}

func (e *Evaluator) ShiftRight(a, b value.Value) (value.Value, error) {
	return e.bitwise(operators.ShiftRight, a, b,
		func(x, y int64) int64 { return x >> uint(y&63) },
		func(x, y *big.Int) *big.Int { return new(big.Int).Rsh(x, uint(y.Int64()&63)) })
}

func (e *Evaluator) ShiftRightUnsigned(a, b value.Value) (value.Value, error) {
	return e.bitwise(operators.ShiftRightUnsigned, a, b,
		func(x, y int64) int64 { return int64(uint64(x) >> uint(y&63)) },
		func(x, y *big.Int) *big.Int { return new(big.Int).Rsh(x, uint(y.Int64()&63)) })
}

// --- comparison & equality (spec.md §4.3) ---

// ErrNullComparand is Compare's signal that one of its operands was
// Null: per spec.md §4.3, comparison with Null on either side (any
// operator but ==) has no defined order and the relational operators
// must all report false - this is not a failure, so callers compare
// against this sentinel rather than propagating it as an error.
var ErrNullComparand = errors.NewArithmetic("comparison against a null operand has no defined order")

// compareDoubles orders float64s per spec.md §3/§4.3: NaN compares
// equal to NaN and strictly less than every other value.
func compareDoubles(x, y float64) int {
	xNaN, yNaN := x != x, y != y
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return -1
	case yNaN:
		return 1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Compare returns -1/0/1 per jexl's comparison ladder: numeric lanes
// compare by value (NaN per compareDoubles), Text compares lexically,
// Bool compares false<true. Either operand being Null yields
// ErrNullComparand instead of a numeric substitution.
func (e *Evaluator) Compare(a, b value.Value) (int, error) {
	if e.ext != nil {
		if cmp, ok, err := e.ext.Compare(a, b); ok {
			return cmp, err
		}
	}
	if a.IsNull() || b.IsNull() {
		return 0, ErrNullComparand
	}
	if a.Kind() == value.KindText && b.Kind() == value.KindText {
		return strings.Compare(a.Text(), b.Text()), nil
	}
	if (a.Kind() == value.KindBool || a.Kind() == value.KindAtomicBool) &&
		(b.Kind() == value.KindBool || b.Kind() == value.KindAtomicBool) {
		ba, _ := coerce.ToBool(false, a)
		bb, _ := coerce.ToBool(false, b)
		switch {
		case ba == bb:
			return 0, nil
		case !ba:
			return -1, nil
		default:
			return 1, nil
		}
	}
	switch classify(a, b) {
	case laneBigDec:
		return bigDecOf(a, e.opts.MathContext).Cmp(bigDecOf(b, e.opts.MathContext)), nil
	case laneDouble:
		return compareDoubles(floatOf(a), floatOf(b)), nil
	case laneBigInt:
		return bigIntOf(a).Cmp(bigIntOf(b)), nil
	default:
		x, err := coerce.ToI64(false, a)
		if err != nil {
			return 0, err
		}
		y, err := coerce.ToI64(false, b)
		if err != nil {
			return 0, err
		}
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

// LessThan, LessThanOrEqual, GreaterThan, and GreaterThanOrEqual
// implement the ordered relational operators from the operator
// registry on top of Compare, translating ErrNullComparand into the
// "false" result spec.md §4.3 requires instead of an error.
func (e *Evaluator) LessThan(a, b value.Value) (bool, error) {
	cmp, err := e.Compare(a, b)
	if err == ErrNullComparand {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

func (e *Evaluator) LessThanOrEqual(a, b value.Value) (bool, error) {
	cmp, err := e.Compare(a, b)
	if err == ErrNullComparand {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cmp <= 0, nil
}

func (e *Evaluator) GreaterThan(a, b value.Value) (bool, error) {
	cmp, err := e.Compare(a, b)
	if err == ErrNullComparand {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

func (e *Evaluator) GreaterThanOrEqual(a, b value.Value) (bool, error) {
	cmp, err := e.Compare(a, b)
	if err == ErrNullComparand {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// Equal implements "==": coercing equality with the ladder's NaN
// semantics (NaN == NaN is true, per spec).
func (e *Evaluator) Equal(a, b value.Value) (bool, error) {
	if e.ext != nil {
		if eq, ok, err := e.ext.Equals(a, b); ok {
			return eq, err
		}
	}
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull(), nil
	}
	cmp, err := e.Compare(a, b)
	if err != nil {
		return false, err
	}
	return cmp == 0, nil
}

// StrictEqual implements "===": same Kind required, then value equality
// with no coercion.
func (e *Evaluator) StrictEqual(a, b value.Value) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, nil
	}
	if a.IsNull() {
		return true, nil
	}
	return e.Equal(a, b)
}

// --- containment & affix matching (spec.md §4.3) ---

func (e *Evaluator) Contains(a, b value.Value) (value.Value, error) {
	switch a.Kind() {
	case value.KindText:
		if b.Kind() == value.KindPattern {
			return value.NewBool(b.Pattern().MatchString(a.Text())), nil
		}
		s, err := coerce.ToText(false, b)
		if err != nil {
			return value.Null(), err
		}
		return value.NewBool(strings.Contains(a.Text(), s)), nil
	case value.KindSeq:
		for _, it := range a.Seq() {
			if eq, _ := e.Equal(it, b); eq {
				return value.NewBool(true), nil
			}
		}
		return value.NewBool(false), nil
	case value.KindSet:
		return value.NewBool(a.Set().Has(b)), nil
	case value.KindMap:
		return value.NewBool(a.Map().Has(b)), nil
	case value.KindRange:
		r := a.Range()
		n, err := coerce.ToI64(false, b)
		if err != nil {
			return value.Null(), err
		}
		return value.NewBool(n >= r.From() && n <= r.To()), nil
	default:
		return host.TryFailed, nil
	}
}

func (e *Evaluator) StartsWith(a, b value.Value) (value.Value, error) {
	if a.Kind() != value.KindText {
		return host.TryFailed, nil
	}
	s, err := coerce.ToText(false, b)
	if err != nil {
		return value.Null(), err
	}
	return value.NewBool(strings.HasPrefix(a.Text(), s)), nil
}

func (e *Evaluator) EndsWith(a, b value.Value) (value.Value, error) {
	if a.Kind() != value.KindText {
		return host.TryFailed, nil
	}
	s, err := coerce.ToText(false, b)
	if err != nil {
		return value.Null(), err
	}
	return value.NewBool(strings.HasSuffix(a.Text(), s)), nil
}

// negated wraps a Contains/StartsWith/EndsWith-shaped call with the
// non-overridable negation spec.md §4.5 defines for !~, !^, !$: a
// TryFailed result propagates unchanged, never gets negated into true.
func negated(v value.Value, err error) (value.Value, error) {
	if err != nil || host.IsTryFailed(v) {
		return v, err
	}
	return value.NewBool(!v.Bool()), nil
}

func (e *Evaluator) NotContains(a, b value.Value) (value.Value, error) { return negated(e.Contains(a, b)) }
func (e *Evaluator) NotStartsWith(a, b value.Value) (value.Value, error) {
	return negated(e.StartsWith(a, b))
}
func (e *Evaluator) NotEndsWith(a, b value.Value) (value.Value, error) { return negated(e.EndsWith(a, b)) }

// --- empty & size (spec.md §4.3) ---

func (e *Evaluator) Empty(v value.Value) (bool, error) {
	if v.IsNull() {
		return true, nil
	}
	switch v.Kind() {
	case value.KindText:
		return v.Text() == "", nil
	case value.KindSeq:
		return len(v.Seq()) == 0, nil
	case value.KindMap:
		return v.Map().Len() == 0, nil
	case value.KindSet:
		return v.Set().Len() == 0, nil
	case value.KindRange:
		return v.Range().Len() == 0, nil
	case value.KindBool:
		return !v.Bool(), nil
	case value.KindAtomicBool:
		return !v.AtomicBool().Load(), nil
	default:
		b, err := coerce.ToBool(false, v)
		if err != nil {
			return false, err
		}
		return !b, nil
	}
}

func (e *Evaluator) Size(v value.Value) (int64, error) {
	switch v.Kind() {
	case value.KindText:
		return int64(len([]rune(v.Text()))), nil
	case value.KindSeq:
		return int64(len(v.Seq())), nil
	case value.KindMap:
		return int64(v.Map().Len()), nil
	case value.KindSet:
		return int64(v.Set().Len()), nil
	case value.KindRange:
		return v.Range().Len(), nil
	case value.KindNull:
		return 0, nil
	default:
		return 0, errors.NewArithmetic("operator %q is not defined for %s operands", "size", v.Kind())
	}
}

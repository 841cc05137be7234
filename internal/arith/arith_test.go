package arith

import (
	"math"
	"math/big"
	"testing"

	"jexl/internal/bigdec"
	"jexl/internal/errors"
	"jexl/internal/host"
	"jexl/internal/options"
	"jexl/internal/value"
)

func newEvaluator() *Evaluator {
	return New(options.Default(), nil, host.NewStdLogger(false))
}

func TestAddOverflowPromotesToBigInt(t *testing.T) {
	e := newEvaluator()
	result, err := e.Add(value.NewI64(math.MaxInt64), value.NewI64(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindBigInt {
		t.Fatalf("expected overflow to promote to BigInt, got %v", result.Kind())
	}
	want := new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1))
	if result.BigInt().Cmp(want) != 0 {
		t.Errorf("got %s, want %s", result.BigInt(), want)
	}
}

func TestAddNarrowsBackToSmallestKind(t *testing.T) {
	e := newEvaluator()
	result, err := e.Add(value.NewI8(1), value.NewI8(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindI8 || result.I8() != 3 {
		t.Fatalf("expected I8(3), got %v(%v)", result.Kind(), result)
	}
}

func TestAddSameWidthOverflowPromotesToBigInt(t *testing.T) {
	e := newEvaluator()
	result, err := e.Add(value.NewI32(math.MaxInt32), value.NewI32(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindBigInt {
		t.Fatalf("expected I32+I32 overflowing I32's range to promote to BigInt, got %v", result.Kind())
	}
	want := big.NewInt(int64(math.MaxInt32) + 1)
	if result.BigInt().Cmp(want) != 0 {
		t.Errorf("got %s, want %s", result.BigInt(), want)
	}
}

func TestAddPromotesRankWhenResultDoesNotFit(t *testing.T) {
	e := newEvaluator()
	result, err := e.Add(value.NewI8(120), value.NewI8(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindI16 {
		t.Fatalf("expected promotion to I16 when I8+I8 overflows I8's range, got %v", result.Kind())
	}
}

func TestDivideByZeroAlwaysErrorsEvenLenient(t *testing.T) {
	e := newEvaluator()
	if _, err := e.Divide(value.NewI32(1), value.NewI32(0)); !errorIs(err, errors.DivideByZero) {
		t.Fatalf("expected DivideByZero, got %v", err)
	}
}

func errorIs(err error, kind errors.Kind) bool {
	je, ok := err.(*errors.Error)
	return ok && je.Kind == kind
}

func TestDivideInexactPromotesToDouble(t *testing.T) {
	e := newEvaluator()
	result, err := e.Divide(value.NewI32(1), value.NewI32(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindF64 {
		t.Fatalf("expected inexact long division to promote to F64, got %v", result.Kind())
	}
}

func TestDivideExactStaysLong(t *testing.T) {
	e := newEvaluator()
	result, err := e.Divide(value.NewI32(6), value.NewI32(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() == value.KindF64 {
		t.Fatal("expected exact long division to remain in the long lane")
	}
}

func TestBigDecLaneWins(t *testing.T) {
	e := newEvaluator()
	d, err := bigdec.Parse("1.5", e.opts.MathContext)
	if err != nil {
		t.Fatal(err)
	}
	result, err := e.Add(value.NewBigDec(d), value.NewI32(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindBigDec {
		t.Fatalf("BigDec must win the lane regardless of operand order, got %v", result.Kind())
	}
}

func TestStrictArithmeticRaisesOnNullUnlessNullSafe(t *testing.T) {
	e := New(options.Default().WithStrictArithmetic(true), nil, host.NewStdLogger(false))
	if _, err := e.Add(value.Null(), value.NewI32(1)); !errorIs(err, errors.NullOperand) {
		t.Fatalf("expected NullOperand under strict_arithmetic, got %v", err)
	}
	if _, err := e.Equal(value.Null(), value.NewI32(1)); err != nil {
		t.Fatalf("Equal must stay null-safe even under strict_arithmetic: %v", err)
	}
}

func TestLenientNullSubstitutesZero(t *testing.T) {
	e := newEvaluator()
	result, err := e.Add(value.Null(), value.NewI32(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != value.KindI32 || result.I32() != 5 {
		t.Fatalf("expected null to substitute zero, got %v", result)
	}
}

func TestEqualNaNIsTrue(t *testing.T) {
	e := newEvaluator()
	nan := value.NewF64(math.NaN())
	eq, err := e.Equal(nan, nan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Fatal("NaN == NaN must be true")
	}
}

func TestCompareNaNOrdersBeforeEverything(t *testing.T) {
	e := newEvaluator()
	nan := value.NewF64(math.NaN())
	if cmp, err := e.Compare(nan, nan); err != nil || cmp != 0 {
		t.Fatalf("Compare(NaN, NaN) = %d, %v; want 0, nil", cmp, err)
	}
	if cmp, err := e.Compare(nan, value.NewF64(1.0)); err != nil || cmp != -1 {
		t.Fatalf("Compare(NaN, 1.0) = %d, %v; want -1, nil", cmp, err)
	}
	if cmp, err := e.Compare(value.NewF64(1.0), nan); err != nil || cmp != 1 {
		t.Fatalf("Compare(1.0, NaN) = %d, %v; want 1, nil", cmp, err)
	}
}

func TestCompareNullHasNoOrder(t *testing.T) {
	e := newEvaluator()
	if _, err := e.Compare(value.Null(), value.NewI32(5)); err != ErrNullComparand {
		t.Fatalf("Compare(Null, 5) error = %v, want ErrNullComparand", err)
	}
	for _, tt := range []struct {
		name string
		fn   func(a, b value.Value) (bool, error)
	}{
		{"LessThan", e.LessThan},
		{"LessThanOrEqual", e.LessThanOrEqual},
		{"GreaterThan", e.GreaterThan},
		{"GreaterThanOrEqual", e.GreaterThanOrEqual},
	} {
		got, err := tt.fn(value.Null(), value.NewI32(5))
		if err != nil || got {
			t.Errorf("%s(Null, 5) = %v, %v; want false, nil", tt.name, got, err)
		}
		got, err = tt.fn(value.Null(), value.Null())
		if err != nil || got {
			t.Errorf("%s(Null, Null) = %v, %v; want false, nil", tt.name, got, err)
		}
	}
}

func TestStrictEqualRequiresSameKind(t *testing.T) {
	e := newEvaluator()
	eq, err := e.StrictEqual(value.NewI32(1), value.NewI64(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq {
		t.Fatal("StrictEqual must not coerce across kinds")
	}
}

func TestContainsReturnsTryFailedForUnsupportedKind(t *testing.T) {
	e := newEvaluator()
	result, err := e.Contains(value.NewI32(1), value.NewI32(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !host.IsTryFailed(result) {
		t.Fatalf("expected TryFailed for a numeric left operand, got %v", result)
	}
}

func TestNotContainsPropagatesTryFailedWithoutNegating(t *testing.T) {
	e := newEvaluator()
	result, err := e.NotContains(value.NewI32(1), value.NewI32(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !host.IsTryFailed(result) {
		t.Fatal("!~ must propagate TryFailed rather than negate it to true")
	}
}

func TestSizeAndEmpty(t *testing.T) {
	e := newEvaluator()
	seq := value.NewSeq([]value.Value{value.NewI32(1), value.NewI32(2)})
	n, err := e.Size(seq)
	if err != nil || n != 2 {
		t.Fatalf("Size(seq of 2) = %d, %v", n, err)
	}
	empty, err := e.Empty(value.NewText(""))
	if err != nil || !empty {
		t.Fatalf("Empty(\"\") = %v, %v", empty, err)
	}
}

func TestComplementRejectsNonInteger(t *testing.T) {
	e := newEvaluator()
	if _, err := e.Complement(value.NewF64(1.5)); !errorIs(err, errors.Arithmetic) {
		t.Fatalf("expected Arithmetic error for ~ on a double, got %v", err)
	}
}

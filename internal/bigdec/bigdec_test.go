package bigdec

import "testing"

func TestAddSubMul(t *testing.T) {
	ctx := DefaultContext
	x, _ := Parse("1.50", ctx)
	y, _ := Parse("2.25", ctx)

	if got := Add(x, y, ctx).String(); got != "3.75" {
		t.Errorf("Add = %q, want 3.75", got)
	}
	if got := Sub(y, x, ctx).String(); got != "0.75" {
		t.Errorf("Sub = %q, want 0.75", got)
	}
	if got := Mul(x, y, ctx).String(); got != "3.375" {
		t.Errorf("Mul = %q, want 3.375", got)
	}
}

func TestQuoDivideByZero(t *testing.T) {
	ctx := DefaultContext
	x, _ := Parse("1", ctx)
	zero := Zero(ctx)
	if _, err := Quo(x, zero, ctx); err != ErrDivideByZero {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
}

func TestFromFloat64NaNWidensToZero(t *testing.T) {
	nan := func() float64 { z := 0.0; return z / z }()
	d := FromFloat64(nan, DefaultContext)
	if d.Sign() != 0 {
		t.Fatalf("expected NaN to widen to zero, got %s", d.String())
	}
}

func TestInt64ExactVsInexact(t *testing.T) {
	ctx := DefaultContext
	whole, _ := Parse("7", ctx)
	if n, exact := whole.Int64(); !exact || n != 7 {
		t.Fatalf("expected exact 7, got %d exact=%v", n, exact)
	}
	frac, _ := Parse("7.5", ctx)
	if _, exact := frac.Int64(); exact {
		t.Fatal("expected 7.5 to be inexact as an integer")
	}
}

func TestQuantize(t *testing.T) {
	ctx := DefaultContext
	d, _ := Parse("3.14159", ctx)
	q := Quantize(d, 2, ctx)
	if got := q.String(); got != "3.14" {
		t.Errorf("Quantize(2) = %q, want 3.14", got)
	}
}

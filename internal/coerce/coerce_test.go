package coerce

import (
	"testing"

	"github.com/kr/pretty"

	"jexl/internal/bigdec"
	"jexl/internal/value"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"empty text is false", value.NewText(""), false},
		{"literal false text is false", value.NewText("false"), false},
		{"any other text is true", value.NewText("anything"), true},
		{"nonzero i32 is true", value.NewI32(3), true},
		{"zero i32 is false", value.NewI32(0), false},
		{"nan f64 is false", value.NewF64(nan()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBool(false, tt.v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToBool mismatch for case %# v: got %v, want %v", pretty.Formatter(tt), got, tt.want)
			}
		})
	}
}

func nan() float64 { z := 0.0; return z / z }

func TestToBoolNullLenientVsStrict(t *testing.T) {
	if b, err := ToBool(false, value.Null()); err != nil || b != false {
		t.Fatalf("lenient null -> want false,nil; got %v,%v", b, err)
	}
	if _, err := ToBool(true, value.Null()); err == nil {
		t.Fatal("strict null -> want NullOperand error")
	}
}

func TestToI32NarrowingFailsWhenLossy(t *testing.T) {
	big := value.NewI64(1 << 40)
	if _, err := ToI32(false, big); err == nil {
		t.Fatal("expected Coercion error narrowing an out-of-range i64 to i32")
	}
}

func TestToI32FromFloatTruncatesNaNToZero(t *testing.T) {
	got, err := ToI32(false, value.NewF64(nan()))
	if err != nil || got != 0 {
		t.Fatalf("NaN->i32 should be 0,nil; got %v,%v", got, err)
	}
}

func TestTextToFloatGrammar(t *testing.T) {
	if _, err := ToF64(false, value.NewText("not-a-number")); err == nil {
		t.Fatal("expected Coercion error for non-numeric text")
	}
	f, err := ToF64(false, value.NewText("3.14e2"))
	if err != nil || f != 314 {
		t.Fatalf("expected 314, got %v err=%v", f, err)
	}
}

func TestTextToFloatEmptyIsNaN(t *testing.T) {
	f, err := ToF64(false, value.NewText(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f == f {
		t.Fatal("expected empty text to coerce to NaN")
	}
}

func TestToBigDecRoundsToContext(t *testing.T) {
	ctx := bigdec.Context{Precision: 3, Rounding: bigdec.DefaultContext.Rounding}
	d, err := ToBigDec(false, value.NewText("3.14159"), ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.String(); got != "3.14" {
		t.Errorf("expected rounding to 3 significant digits, got %q", got)
	}
}

func TestToTextRoundTrip(t *testing.T) {
	s, err := ToText(false, value.NewI64(42))
	if err != nil || s != "42" {
		t.Fatalf("ToText(42) = %q, %v", s, err)
	}
}

func TestIsArrayIndex(t *testing.T) {
	cases := map[string]bool{
		"0": true, "7": true, "10": true, "007": false, "-1": false, "x": false,
	}
	for in, want := range cases {
		if got := IsArrayIndex(in); got != want {
			t.Errorf("IsArrayIndex(%q) = %v, want %v", in, got, want)
		}
	}
}

package value

import (
	"math/big"
	"testing"
)

func TestStringPerKind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "null"},
		{"bool-true", NewBool(true), "true"},
		{"i32", NewI32(-7), "-7"},
		{"i64", NewI64(1 << 40), "1099511627776"},
		{"char", NewChar('A'), "A"},
		{"bigint", NewBigInt(big.NewInt(42)), "42"},
		{"f64-nan", NewF64(nan()), ""},
		{"f64", NewF64(1.5), "1.5"},
		{"text", NewText("hi"), "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestWrongKindAccessorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling I32() on a Text Value")
		}
	}()
	NewText("x").I32()
}

func asInt64(v Value) int64 {
	if v.Kind() == KindI64 {
		return v.I64()
	}
	return int64(v.I32())
}

func TestRangeIsRestartable(t *testing.T) {
	r := NewRange(1, 3)
	it := r.Iterator()
	var first []int64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		first = append(first, asInt64(v))
	}
	it.Restart()
	var second []int64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		second = append(second, asInt64(v))
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 elements both passes, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("iteration %d: first=%d second=%d, Range must replay identically", i, first[i], second[i])
		}
	}
}

func TestMapCanonicalKeyUnifiesNumericKinds(t *testing.T) {
	m := NewMap()
	m.Set(NewI32(5), NewText("five"))
	if !m.Has(NewI64(5)) {
		t.Fatal("expected I64(5) to hit the same entry as I32(5)")
	}
	if !m.Has(NewBigInt(big.NewInt(5))) {
		t.Fatal("expected BigInt(5) to hit the same entry as I32(5)")
	}
}

func TestSetDeduplicatesAcrossNumericKinds(t *testing.T) {
	s := NewSet()
	s.Add(NewI32(1))
	s.Add(NewI64(1))
	if s.Len() != 1 {
		t.Fatalf("expected canonical dedup to collapse to 1 entry, got %d", s.Len())
	}
}

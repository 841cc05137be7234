package operators

import "testing"

func TestBaseOfResolvesSideEffectAndNegatedOperators(t *testing.T) {
	tests := []struct {
		sym  Symbol
		base Symbol
	}{
		{AddAssign, Add},
		{ShiftRightUnsignedAssign, ShiftRightUnsigned},
		{NotContains, Contains},
		{NotStartsWith, StartsWith},
		{NotEndsWith, EndsWith},
		{Add, Add}, // already a base operator: resolves to itself
	}
	for _, tt := range tests {
		if got := BaseOf(tt.sym); got != tt.base {
			t.Errorf("BaseOf(%v) = %v, want %v", tt.sym, got, tt.base)
		}
	}
}

func TestIsNonOverridable(t *testing.T) {
	for _, sym := range []Symbol{NotContains, NotStartsWith, NotEndsWith} {
		if !IsNonOverridable(sym) {
			t.Errorf("expected %v to be non-overridable", sym)
		}
	}
	for _, sym := range []Symbol{Contains, Add, Equal} {
		if IsNonOverridable(sym) {
			t.Errorf("expected %v to be overridable", sym)
		}
	}
}

func TestIsNullSafeOverrideList(t *testing.T) {
	for _, sym := range []Symbol{Equal, StrictEqual, Contains, Empty, Size} {
		if !IsNullSafe(sym) {
			t.Errorf("expected %v to be null-safe", sym)
		}
	}
	if IsNullSafe(Add) {
		t.Error("expected Add to not be null-safe")
	}
}

func TestLookupEveryRegisteredSymbolHasDescriptor(t *testing.T) {
	symbols := []Symbol{
		Add, Subtract, Multiply, Divide, Modulo,
		Negate, Positivize, Complement, Not,
		Equal, NotEqual, StrictEqual, StrictNotEqual,
		LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual,
		BitAnd, BitOr, BitXor, ShiftLeft, ShiftRight, ShiftRightUnsigned,
		Contains, NotContains, StartsWith, NotStartsWith, EndsWith, NotEndsWith,
		Empty, Size, Increment, Decrement,
	}
	for _, sym := range symbols {
		if _, ok := Lookup(sym); !ok {
			t.Errorf("Lookup(%v) missing from registry", sym)
		}
	}
}

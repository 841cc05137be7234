package host

import (
	"testing"

	"jexl/internal/value"
)

func TestMapContextGetSetHas(t *testing.T) {
	c := NewMapContext()
	if c.Has("x") {
		t.Fatal("fresh MapContext must not have any variable set")
	}
	c.Set("x", value.NewI32(5))
	got, ok := c.Get("x")
	if !ok || got.I32() != 5 {
		t.Fatalf("Get(x) = %v, %v; want I32(5), true", got, ok)
	}
	if !c.Has("x") {
		t.Fatal("Has(x) must be true after Set")
	}
}

func TestMapContextEvaluationIDIsStableAndUnique(t *testing.T) {
	a := NewMapContext()
	b := NewMapContext()
	if a.EvaluationID() != a.EvaluationID() {
		t.Fatal("EvaluationID must be stable across calls on the same context")
	}
	if a.EvaluationID() == b.EvaluationID() {
		t.Fatal("two MapContexts must not share a correlation ID")
	}
}

func TestTryFailedSentinel(t *testing.T) {
	if !IsTryFailed(TryFailed) {
		t.Fatal("IsTryFailed(TryFailed) must be true")
	}
	if IsTryFailed(value.NewI32(1)) {
		t.Fatal("IsTryFailed must be false for an ordinary value")
	}
}

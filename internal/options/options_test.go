package options

import "testing"

func TestDefaultIsLenient(t *testing.T) {
	o := Default()
	if o.Strict() || o.Silent() || o.Safe() || o.Cancellable() || o.StrictArithmetic() || o.Antish() || o.Lexical() {
		t.Fatal("Default() must have every boolean flag off")
	}
	if o.MathScale != -1 {
		t.Fatalf("Default() MathScale = %d, want -1 (unset)", o.MathScale)
	}
}

func TestWithFlagsAreIndependent(t *testing.T) {
	o := Default().WithStrict(true).WithSafe(true)
	if !o.Strict() || !o.Safe() {
		t.Fatal("expected both Strict and Safe set")
	}
	if o.Silent() || o.StrictArithmetic() {
		t.Fatal("setting Strict/Safe must not flip unrelated flags")
	}
}

func TestSnapshotClearsSharedInstance(t *testing.T) {
	shared := Default().WithSharedInstance(true)
	snap := shared.Snapshot()
	if !shared.SharedInstance() {
		t.Fatal("Snapshot must not mutate the receiver")
	}
	if snap.SharedInstance() {
		t.Fatal("Snapshot must clear the shared-instance flag on the copy")
	}
}

func TestFeaturesDefaultToEverythingOffOrOn(t *testing.T) {
	none := NoFeatures()
	if none.Lambda() || none.NamespacePragma() || none.Pragma() || none.ExtendedRelationalOperators() {
		t.Fatal("NoFeatures() must have every gate off")
	}
	all := AllFeatures()
	if !all.Lambda() || !all.NamespacePragma() || !all.ReservedNames() || !all.Pragma() ||
		!all.ImportPragma() || !all.Annotation() || !all.Loops() || !all.MethodCall() ||
		!all.NewInstance() || !all.SideEffect() || !all.GlobalSideEffect() ||
		!all.RegisterSyntax() || !all.LocalVarSyntax() || !all.ArrayReferenceExpression() ||
		!all.StructuredLiterals() || !all.ScriptVsExpression() || !all.Lexical() ||
		!all.LexicalShade() || !all.ThinArrow() || !all.FatArrow() ||
		!all.ExtendedRelationalOperators() {
		t.Fatal("AllFeatures() must have every gate on")
	}
}

func TestFeaturesGatesAreIndependent(t *testing.T) {
	f := NoFeatures().WithLambda(true).WithPragma(true)
	if !f.Lambda() || !f.Pragma() {
		t.Fatal("expected both Lambda and Pragma set")
	}
	if f.Loops() || f.Annotation() || f.ThinArrow() {
		t.Fatal("setting Lambda/Pragma must not flip unrelated gates")
	}
}

// Package options implements jexl's per-evaluation Options and per-parse
// Features as packed bit flags (spec.md §5-6), grounded on the pack's
// own preference for small flags structs over many boolean parameters
// (sentra's internal/vm.EnhancedVM carries a similar bundle of toggles).
package options

import "jexl/internal/bigdec"

type flag uint32

const (
	flagStrict flag = 1 << iota
	flagSilent
	flagSafe
	flagCancellable
	flagStrictArithmetic
	flagAntish
	flagLexical
	flagLexicalShade
	flagSharedInstance
)

// Options bundles the per-evaluation flags spec.md §5 names plus the
// math context/scale knobs spec.md §4.6 threads through BigDec
// arithmetic.
type Options struct {
	flags       flag
	MathContext bigdec.Context
	MathScale   int32 // <0 means "unset"; the coercions and operators in this module do not read it
}

// Default returns the baseline Options spec.md §5 describes: lenient
// (not strict), not silent, not safe, not cancellable, arithmetic
// overflow promotes rather than erroring, antish off, dynamic (not
// lexical) scoping, default math context, no forced scale.
func Default() Options {
	return Options{
		MathContext: bigdec.DefaultContext,
		MathScale:   -1,
	}
}

func (o Options) with(f flag, on bool) Options {
	if on {
		o.flags |= f
	} else {
		o.flags &^= f
	}
	return o
}

func (o Options) Strict() bool           { return o.flags&flagStrict != 0 }
func (o Options) Silent() bool           { return o.flags&flagSilent != 0 }
func (o Options) Safe() bool             { return o.flags&flagSafe != 0 }
func (o Options) Cancellable() bool      { return o.flags&flagCancellable != 0 }
func (o Options) StrictArithmetic() bool { return o.flags&flagStrictArithmetic != 0 }
func (o Options) Antish() bool           { return o.flags&flagAntish != 0 }
func (o Options) Lexical() bool          { return o.flags&flagLexical != 0 }
func (o Options) LexicalShade() bool     { return o.flags&flagLexicalShade != 0 }
func (o Options) SharedInstance() bool   { return o.flags&flagSharedInstance != 0 }

func (o Options) WithStrict(v bool) Options           { return o.with(flagStrict, v) }
func (o Options) WithSilent(v bool) Options           { return o.with(flagSilent, v) }
func (o Options) WithSafe(v bool) Options             { return o.with(flagSafe, v) }
func (o Options) WithCancellable(v bool) Options      { return o.with(flagCancellable, v) }
func (o Options) WithStrictArithmetic(v bool) Options { return o.with(flagStrictArithmetic, v) }
func (o Options) WithAntish(v bool) Options           { return o.with(flagAntish, v) }
func (o Options) WithLexical(v bool) Options          { return o.with(flagLexical, v) }
func (o Options) WithLexicalShade(v bool) Options     { return o.with(flagLexicalShade, v) }

// WithSharedInstance sets or clears the shared-instance flag. The flag
// is only carried and reported: arith.New still copies the Options value
// it is given, so no evaluator in this module observes later changes to
// a shared instance.
func (o Options) WithSharedInstance(v bool) Options { return o.with(flagSharedInstance, v) }

func (o Options) WithMathContext(ctx bigdec.Context) Options {
	o.MathContext = ctx
	return o
}

func (o Options) WithMathScale(scale int32) Options {
	o.MathScale = scale
	return o
}

// Snapshot returns a copy of o suitable for a single evaluation: when o
// is the shared-instance variant, Snapshot clears that flag on the copy
// so downstream code can tell "the instance I'm holding" apart from "an
// isolated copy taken from it" (spec.md §5).
func (o Options) Snapshot() Options {
	return o.with(flagSharedInstance, false)
}

type featureFlag uint32

// The closed set of per-parse syntactic gates spec.md §6.2 names. This
// module only carries the flags through; the parser that would consult
// them is out of scope.
const (
	featureRegisterSyntax featureFlag = 1 << iota
	featureReservedNames
	featureLocalVarSyntax
	featureSideEffect
	featureGlobalSideEffect
	featureArrayReferenceExpression
	featureNewInstance
	featureLoops
	featureLambda
	featureMethodCall
	featureStructuredLiterals
	featurePragma
	featureNamespacePragma
	featureImportPragma
	featureAnnotation
	featureScriptVsExpression
	featureLexical
	featureLexicalShade
	featureThinArrow
	featureFatArrow
	featureExtendedRelationalOperators
)

const allFeatureFlags = featureRegisterSyntax | featureReservedNames | featureLocalVarSyntax |
	featureSideEffect | featureGlobalSideEffect | featureArrayReferenceExpression |
	featureNewInstance | featureLoops | featureLambda | featureMethodCall |
	featureStructuredLiterals | featurePragma | featureNamespacePragma | featureImportPragma |
	featureAnnotation | featureScriptVsExpression | featureLexical | featureLexicalShade |
	featureThinArrow | featureFatArrow | featureExtendedRelationalOperators

// Features is the closed set of per-parse syntactic gates spec.md §6.2
// names; this module only carries the flags through, since the parser
// that would consult them is out of scope.
type Features struct {
	flags featureFlag
}

func AllFeatures() Features { return Features{flags: allFeatureFlags} }

func NoFeatures() Features { return Features{} }

func (f Features) with(bit featureFlag, on bool) Features {
	if on {
		f.flags |= bit
	} else {
		f.flags &^= bit
	}
	return f
}

func (f Features) RegisterSyntax() bool             { return f.flags&featureRegisterSyntax != 0 }
func (f Features) ReservedNames() bool              { return f.flags&featureReservedNames != 0 }
func (f Features) LocalVarSyntax() bool             { return f.flags&featureLocalVarSyntax != 0 }
func (f Features) SideEffect() bool                 { return f.flags&featureSideEffect != 0 }
func (f Features) GlobalSideEffect() bool           { return f.flags&featureGlobalSideEffect != 0 }
func (f Features) ArrayReferenceExpression() bool   { return f.flags&featureArrayReferenceExpression != 0 }
func (f Features) NewInstance() bool                { return f.flags&featureNewInstance != 0 }
func (f Features) Loops() bool                      { return f.flags&featureLoops != 0 }
func (f Features) Lambda() bool                     { return f.flags&featureLambda != 0 }
func (f Features) MethodCall() bool                 { return f.flags&featureMethodCall != 0 }
func (f Features) StructuredLiterals() bool         { return f.flags&featureStructuredLiterals != 0 }
func (f Features) Pragma() bool                     { return f.flags&featurePragma != 0 }
func (f Features) NamespacePragma() bool            { return f.flags&featureNamespacePragma != 0 }
func (f Features) ImportPragma() bool               { return f.flags&featureImportPragma != 0 }
func (f Features) Annotation() bool                 { return f.flags&featureAnnotation != 0 }
func (f Features) ScriptVsExpression() bool         { return f.flags&featureScriptVsExpression != 0 }
func (f Features) Lexical() bool                    { return f.flags&featureLexical != 0 }
func (f Features) LexicalShade() bool               { return f.flags&featureLexicalShade != 0 }
func (f Features) ThinArrow() bool                  { return f.flags&featureThinArrow != 0 }
func (f Features) FatArrow() bool                   { return f.flags&featureFatArrow != 0 }
func (f Features) ExtendedRelationalOperators() bool {
	return f.flags&featureExtendedRelationalOperators != 0
}

func (f Features) WithRegisterSyntax(v bool) Features { return f.with(featureRegisterSyntax, v) }
func (f Features) WithReservedNames(v bool) Features  { return f.with(featureReservedNames, v) }
func (f Features) WithLocalVarSyntax(v bool) Features { return f.with(featureLocalVarSyntax, v) }
func (f Features) WithSideEffect(v bool) Features     { return f.with(featureSideEffect, v) }
func (f Features) WithGlobalSideEffect(v bool) Features {
	return f.with(featureGlobalSideEffect, v)
}
func (f Features) WithArrayReferenceExpression(v bool) Features {
	return f.with(featureArrayReferenceExpression, v)
}
func (f Features) WithNewInstance(v bool) Features        { return f.with(featureNewInstance, v) }
func (f Features) WithLoops(v bool) Features              { return f.with(featureLoops, v) }
func (f Features) WithLambda(v bool) Features              { return f.with(featureLambda, v) }
func (f Features) WithMethodCall(v bool) Features          { return f.with(featureMethodCall, v) }
func (f Features) WithStructuredLiterals(v bool) Features {
	return f.with(featureStructuredLiterals, v)
}
func (f Features) WithPragma(v bool) Features          { return f.with(featurePragma, v) }
func (f Features) WithNamespacePragma(v bool) Features { return f.with(featureNamespacePragma, v) }
func (f Features) WithImportPragma(v bool) Features    { return f.with(featureImportPragma, v) }
func (f Features) WithAnnotation(v bool) Features      { return f.with(featureAnnotation, v) }
func (f Features) WithScriptVsExpression(v bool) Features {
	return f.with(featureScriptVsExpression, v)
}
func (f Features) WithLexical(v bool) Features      { return f.with(featureLexical, v) }
func (f Features) WithLexicalShade(v bool) Features { return f.with(featureLexicalShade, v) }
func (f Features) WithThinArrow(v bool) Features    { return f.with(featureThinArrow, v) }
func (f Features) WithFatArrow(v bool) Features     { return f.with(featureFatArrow, v) }
func (f Features) WithExtendedRelationalOperators(v bool) Features {
	return f.with(featureExtendedRelationalOperators, v)
}

// Package operators is the closed, versioned operator registry: a table
// mapping each jexl operator's symbol to its method name, arity, and (for
// side-effect and pseudo-operators) its base operator. It is the layer
// the interpreter consults to look up a user overload before falling
// back to the built-in internal/arith implementation (spec.md §4.5).
//
// The table shape is grounded on two pack patterns fused together: the
// closed OpCode enum the teacher uses for its bytecode instruction set
// (a versioned, exhaustive const block), and the
// name/description/arity/invokable shape of the scm.Declaration registry
// used elsewhere in the pack for host-callable functions.
package operators

// Symbol is a closed enum of every jexl operator, including side-effect
// variants (+=), pseudo-operators (++/--), and non-overridable negations
// (!~, !^, !$).
type Symbol int

const (
	Add Symbol = iota
	Subtract
	Multiply
	Divide
	Modulo

	Negate     // unary -
	Positivize // unary +
	Complement // ~
	Not        // !

	Equal
	NotEqual
	StrictEqual
	StrictNotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	BitAnd
	BitOr
	BitXor
	ShiftLeft
	ShiftRight
	ShiftRightUnsigned

	Contains    // =~
	NotContains // !~ (non-overridable: negates Contains)
	StartsWith  // =^
	NotStartsWith
	EndsWith // =$
	NotEndsWith

	Empty
	Size

	Increment // .++ / ++. (pre/post distinguished by IncrementMode)
	Decrement // .-- / --.

	// Side-effect assignment operators; each carries Base set to its
	// non-assigning counterpart.
	AddAssign
	SubtractAssign
	MultiplyAssign
	DivideAssign
	ModuloAssign
	BitAndAssign
	BitOrAssign
	BitXorAssign
	ShiftLeftAssign
	ShiftRightAssign
	ShiftRightUnsignedAssign
)

// IncrementMode distinguishes the four pseudo-operator variants of
// Increment/Decrement: whether the observed value is the pre- or
// post-mutation value (spec.md §4.5).
type IncrementMode int

const (
	PreMutation  IncrementMode = iota // .++  / .--
	PostMutation                     // ++.  / --.
)

// Descriptor is one entry in the registry: symbol, overload method name,
// arity, and (for derived operators) the base operator it resolves
// against.
type Descriptor struct {
	Symbol     Symbol
	Text       string // the source-level spelling, e.g. "+", "=~", "+="
	MethodName string // the name an overload hook is looked up under
	Arity      int
	Base       *Symbol // non-nil for side-effect operators and negated non-overridables
}

var registry = buildRegistry()

func buildRegistry() map[Symbol]Descriptor {
	base := func(s Symbol) *Symbol { return &s }
	entries := []Descriptor{
		{Add, "+", "add", 2, nil},
		{Subtract, "-", "subtract", 2, nil},
		{Multiply, "*", "multiply", 2, nil},
		{Divide, "/", "divide", 2, nil},
		{Modulo, "%", "mod", 2, nil},

		{Negate, "-", "negate", 1, nil},
		{Positivize, "+", "positivize", 1, nil},
		{Complement, "~", "complement", 1, nil},
		{Not, "!", "not", 1, nil},

		{Equal, "==", "equals", 2, nil},
		{NotEqual, "!=", "notEquals", 2, base(Equal)},
		{StrictEqual, "===", "strictEquals", 2, nil},
		{StrictNotEqual, "!==", "strictNotEquals", 2, base(StrictEqual)},
		{LessThan, "<", "lessThan", 2, nil},
		{LessThanOrEqual, "<=", "lessThanOrEqual", 2, nil},
		{GreaterThan, ">", "greaterThan", 2, nil},
		{GreaterThanOrEqual, ">=", "greaterThanOrEqual", 2, nil},

		{BitAnd, "&", "and", 2, nil},
		{BitOr, "|", "or", 2, nil},
		{BitXor, "^", "xor", 2, nil},
		{ShiftLeft, "<<", "shiftLeft", 2, nil},
		{ShiftRight, ">>", "shiftRight", 2, nil},
		{ShiftRightUnsigned, ">>>", "shiftRightUnsigned", 2, nil},

		{Contains, "=~", "contains", 2, nil},
		{NotContains, "!~", "notContains", 2, base(Contains)},
		{StartsWith, "=^", "startsWith", 2, nil},
		{NotStartsWith, "!^", "notStartsWith", 2, base(StartsWith)},
		{EndsWith, "=$", "endsWith", 2, nil},
		{NotEndsWith, "!$", "notEndsWith", 2, base(EndsWith)},

		{Empty, "empty", "empty", 1, nil},
		{Size, "size", "size", 1, nil},

		{Increment, "++", "increment", 1, nil},
		{Decrement, "--", "decrement", 1, nil},

		{AddAssign, "+=", "add", 2, base(Add)},
		{SubtractAssign, "-=", "subtract", 2, base(Subtract)},
		{MultiplyAssign, "*=", "multiply", 2, base(Multiply)},
		{DivideAssign, "/=", "divide", 2, base(Divide)},
		{ModuloAssign, "%=", "mod", 2, base(Modulo)},
		{BitAndAssign, "&=", "and", 2, base(BitAnd)},
		{BitOrAssign, "|=", "or", 2, base(BitOr)},
		{BitXorAssign, "^=", "xor", 2, base(BitXor)},
		{ShiftLeftAssign, "<<=", "shiftLeft", 2, base(ShiftLeft)},
		{ShiftRightAssign, ">>=", "shiftRight", 2, base(ShiftRight)},
		{ShiftRightUnsignedAssign, ">>>=", "shiftRightUnsigned", 2, base(ShiftRightUnsigned)},
	}
	m := make(map[Symbol]Descriptor, len(entries))
	for _, d := range entries {
		m[d.Symbol] = d
	}
	return m
}

// Lookup returns the Descriptor for s and whether it was found.
func Lookup(s Symbol) (Descriptor, bool) {
	d, ok := registry[s]
	return d, ok
}

// BaseOf follows Base one level and returns the non-derived operator a
// side-effect or negated-non-overridable operator resolves against.
// It returns s itself when s is already a base operator.
func BaseOf(s Symbol) Symbol {
	d, ok := registry[s]
	if !ok || d.Base == nil {
		return s
	}
	return *d.Base
}

// IsNonOverridable reports whether s is resolved purely by negating its
// base operator's result (!~, !^, !$ per spec.md §4.5) rather than ever
// being looked up as its own overload.
func IsNonOverridable(s Symbol) bool {
	switch s {
	case NotContains, NotStartsWith, NotEndsWith:
		return true
	default:
		return false
	}
}

// nullSafe is the per-operator override list from spec.md §4.6: these
// operators are null-safe regardless of the global strict_arithmetic
// flag, because scripts rely on idioms like `x == null` and safe
// membership tests working even under strict arithmetic.
var nullSafe = map[Symbol]bool{
	Equal:       true,
	StrictEqual: true,
	Contains:    true,
	Empty:       true,
	Size:        true,
	// "[]", "[]=", ".", ".=" are property/index operators; they are
	// introspection concerns (out of this module's scope) but are
	// listed here for completeness of the closed null-safety set.
}

// IsNullSafe reports whether operator s is exempt from strict_arithmetic
// null-operand errors, per the per-operator override table in spec.md §4.6.
// Per the Open Question resolved in DESIGN.md, this list applies in both
// strict and lenient mode; only strict_arithmetic=true can ever raise.
func IsNullSafe(s Symbol) bool {
	return nullSafe[s]
}

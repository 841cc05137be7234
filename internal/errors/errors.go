// Package errors implements the evaluation core's structured error
// taxonomy: every failure the core raises carries a source location, a
// human-readable detail, and (for wrapped host failures) a cause chain.
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies which branch of the error taxonomy an Error belongs to.
type Kind string

const (
	Parse         Kind = "ParseError"
	Feature       Kind = "FeatureError"
	Assignment    Kind = "AssignmentError"
	StackOverflow Kind = "StackOverflowError"
	Variable      Kind = "VariableError"
	Property      Kind = "PropertyError"
	Method        Kind = "MethodError"
	Operator      Kind = "OperatorError"
	Annotation    Kind = "AnnotationError"
	Arithmetic    Kind = "ArithmeticError"
	NullOperand   Kind = "NullOperand"
	DivideByZero  Kind = "DivideByZero"
	Coercion      Kind = "CoercionError"
)

// arithmeticKinds is the family spec.md §7 restricts built-in arithmetic
// to: only these four may originate from internal/arith or internal/coerce.
var arithmeticKinds = map[Kind]bool{
	Arithmetic:   true,
	NullOperand:  true,
	DivideByZero: true,
	Coercion:     true,
}

// IsArithmeticFamily reports whether k is one of the four kinds built-in
// arithmetic is allowed to raise (spec.md §7).
func IsArithmeticFamily(k Kind) bool { return arithmeticKinds[k] }

// Location is a position in source: file, line, column (1-based).
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" && l.Line == 0 && l.Column == 0 {
		return ""
	}
	return fmt.Sprintf("%s@%d:%d", l.File, l.Line, l.Column)
}

// snippetWindow is the maximum width of the source excerpt shown around
// the error column before it gets truncated to a centered window.
const snippetWindow = 42

// Error is the evaluation core's structured, layered error. It always
// carries a Kind and a Detail string, optionally a Location, a source
// Snippet, and an underlying cause reachable through Unwrap/Cause.
type Error struct {
	Kind     Kind
	Detail   string
	Location Location
	Snippet  string
	cause    error
}

// New creates a bare Error of the given kind with a formatted detail.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// At attaches a source location to e and returns e for chaining.
func (e *Error) At(file string, line, column int) *Error {
	e.Location = Location{File: file, Line: line, Column: column}
	return e
}

// WithSnippet attaches a raw source line; Error() windows it to
// snippetWindow characters centered on the error column.
func (e *Error) WithSnippet(source string) *Error {
	e.Snippet = source
	return e
}

// Wrap attaches cause as e's underlying error using github.com/pkg/errors,
// so Cause(e) unwraps to the original failure exactly as spec.md §7
// requires ("TryFailed / InvocationTargetException analogues are
// unwrapped to their underlying cause before presentation").
func (e *Error) Wrap(cause error) *Error {
	if cause != nil {
		e.cause = pkgerrors.WithStack(cause)
	}
	return e
}

// Unwrap exposes the cause chain to the standard errors.Is/errors.As.
// github.com/pkg/errors.Cause does not follow Unwrap, so Cause below
// steps from one *Error to the next itself.
func (e *Error) Unwrap() error { return e.cause }

// Cause returns the deepest cause in the chain: it steps through each
// *Error's wrapped cause, letting github.com/pkg/errors strip the stack
// layers Wrap added, and returns err itself when err carries no cause.
func Cause(err error) error {
	for {
		e, ok := err.(*Error)
		if !ok || e.cause == nil {
			return err
		}
		err = pkgerrors.Cause(e.cause)
	}
}

func windowSnippet(snippet string, column int) string {
	if len(snippet) <= snippetWindow {
		return snippet
	}
	half := snippetWindow / 2
	start := column - half
	if start < 0 {
		start = 0
	}
	end := start + snippetWindow
	if end > len(snippet) {
		end = len(snippet)
		start = end - snippetWindow
		if start < 0 {
			start = 0
		}
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "…"
	}
	if end < len(snippet) {
		suffix = "…"
	}
	return prefix + snippet[start:end] + suffix
}

// Error implements the error interface, rendering the
// "<file>@<line>:<col> <detail>" pattern from spec.md §4.7, with a
// windowed snippet when the source line is wide.
func (e *Error) Error() string {
	var sb strings.Builder
	if loc := e.Location.String(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(" ")
	}
	sb.WriteString(e.Detail)
	if e.Snippet != "" {
		sb.WriteString(" [")
		sb.WriteString(windowSnippet(e.Snippet, e.Location.Column))
		sb.WriteString("]")
	}
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

// Constructors for the arithmetic family (spec.md §7: "Arithmetic built-ins
// raise only the Arithmetic family").

func NewArithmetic(format string, args ...interface{}) *Error {
	return New(Arithmetic, format, args...)
}

func NewNullOperand(operator string) *Error {
	return New(NullOperand, "null operand in position required by operator %q", operator)
}

func NewDivideByZero(operator string) *Error {
	return New(DivideByZero, "division by zero in operator %q", operator)
}

// NewCoercion reports a failed coercion, surfacing the source value's
// type tag and string form per spec.md §7 ("Coercion failures surface
// the source value's type tag and its string form").
func NewCoercion(fromKind, toKind, stringForm string) *Error {
	return New(Coercion, "cannot coerce %s %q to %s", fromKind, stringForm, toKind)
}

// Non-arithmetic constructors, used by the host-interface layer and by
// tests exercising the full taxonomy even though their producers
// (parser, interpreter) are out of this module's scope.

func NewVariable(name string, undefined bool) *Error {
	if undefined {
		return New(Variable, "undefined variable %q", name)
	}
	return New(Variable, "variable %q is null", name)
}

func NewProperty(name string, undefined bool) *Error {
	if undefined {
		return New(Property, "undefined property %q", name)
	}
	return New(Property, "property %q is null", name)
}

func NewMethod(signature string) *Error {
	return New(Method, "no accessible method matches %s", signature)
}

func NewOperator(symbol string) *Error {
	return New(Operator, "operator %q overload failed", symbol)
}

func NewAnnotation(name string) *Error {
	return New(Annotation, "annotation handler %q failed", name)
}

func NewAssignment(detail string) *Error {
	return New(Assignment, "%s", detail)
}

func NewStackOverflow(depth int) *Error {
	return New(StackOverflow, "stack depth %d exceeds configured limit", depth)
}

func NewFeature(name string) *Error {
	return New(Feature, "feature %q is disabled", name)
}

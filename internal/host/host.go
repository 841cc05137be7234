// Package host defines the seams jexl's evaluation core uses to reach
// outside itself: variable/namespace resolution, object introspection,
// arithmetic-operator overloading, and logging. These are interfaces
// only - a full host implementation would need the parser/interpreter
// this module deliberately leaves out of scope (spec.md §1) - plus one
// minimal MapContext suitable for tests and the cmd/jexlcheck demo.
package host

import (
	"log"
	"os"

	"github.com/google/uuid"

	"jexl/internal/value"
)

// Context resolves variable references during evaluation (spec.md §7's
// "Context" host contract).
type Context interface {
	Get(name string) (value.Value, bool)
	Set(name string, v value.Value)
	Has(name string) bool
}

// NamespaceResolver is an optional Context extension for the namespace
// feature gate (spec.md §6.2).
type NamespaceResolver interface {
	ResolveNamespace(name string) (Context, bool)
}

// Introspection exposes property/method access and construction on host
// objects (spec.md §7). jexl's core never implements this itself - it
// only calls through it.
type Introspection interface {
	PropertyGet(obj interface{}, name string) (value.Value, bool, error)
	PropertySet(obj interface{}, name string, v value.Value) error
	MethodInvoke(obj interface{}, name string, args []value.Value) (value.Value, error)
	Construct(class string, args []value.Value) (value.Value, error)
}

// ArithmeticExtension lets a host override an operator for operand
// kinds the built-in ladder doesn't natively support (spec.md §9's
// "overload hook", mirroring Java JEXL's JexlArithmetic subclassing).
// Ok is false to fall through to the built-in behavior.
type ArithmeticExtension interface {
	Add(a, b value.Value) (result value.Value, ok bool, err error)
	Subtract(a, b value.Value) (result value.Value, ok bool, err error)
	Multiply(a, b value.Value) (result value.Value, ok bool, err error)
	Divide(a, b value.Value) (result value.Value, ok bool, err error)
	Mod(a, b value.Value) (result value.Value, ok bool, err error)
	Compare(a, b value.Value) (cmp int, ok bool, err error)
	Equals(a, b value.Value) (equal bool, ok bool, err error)
}

// tryFailedSentinel backs TryFailed: a distinguished Host value,
// never equal to anything else, meaning "this operator does not apply
// to these operand kinds" (spec.md §4.3's containment/matching result
// for unsupported container kinds).
type tryFailedSentinel struct{}

func (tryFailedSentinel) String() string { return "<try-failed>" }

// TryFailed is returned by containment (=~/!~) and affix (=^/!^/=$/!$)
// operators when the left-hand (container or subject) kind has no
// defined match semantics, so
// callers can distinguish "no match" from "not applicable" (spec.md §4.3).
var TryFailed = value.NewHost(tryFailedSentinel{})

// IsTryFailed reports whether v is the TryFailed sentinel.
func IsTryFailed(v value.Value) bool {
	if v.Kind() != value.KindHost {
		return false
	}
	_, ok := v.Host().(tryFailedSentinel)
	return ok
}

// Logger is the minimal logging seam the evaluation core uses to report
// non-fatal diagnostics (e.g. a silent-mode suppressed error). jexl
// never pulls in a logging framework of its own; it defers to whatever
// the host supplies, same as spec.md §7 intends.
type Logger interface {
	Warnf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// StdLogger is a Logger backed by the standard library's log.Logger,
// used as the zero-configuration default (cmd/jexlcheck, tests).
type StdLogger struct {
	warn  *log.Logger
	debug *log.Logger
	debugOn bool
}

func NewStdLogger(debugOn bool) *StdLogger {
	return &StdLogger{
		warn:    log.New(os.Stderr, "WARN jexl: ", log.LstdFlags),
		debug:   log.New(os.Stderr, "DEBUG jexl: ", log.LstdFlags),
		debugOn: debugOn,
	}
}

func (l *StdLogger) Warnf(format string, args ...interface{}) { l.warn.Printf(format, args...) }

func (l *StdLogger) Debugf(format string, args ...interface{}) {
	if l.debugOn {
		l.debug.Printf(format, args...)
	}
}

// MapContext is a Context backed by a plain map, suitable for tests and
// the cmd/jexlcheck demo - the role sentra's module_loader.go plays for
// its own subsystem, generalized to variable storage instead of modules.
//
// Every MapContext carries a random correlation ID, surfaced through
// EvaluationID: a per-evaluation identity that error messages and
// silent-mode log lines can stamp so a host running many concurrent
// evaluations can tell them apart, without jexl itself needing to know
// anything about request or session identity.
type MapContext struct {
	vars map[string]value.Value
	id   uuid.UUID
}

func NewMapContext() *MapContext {
	return &MapContext{vars: make(map[string]value.Value), id: uuid.New()}
}

// EvaluationID returns the correlation ID assigned to this context when
// it was created.
func (c *MapContext) EvaluationID() uuid.UUID { return c.id }

func (c *MapContext) Get(name string) (value.Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *MapContext) Set(name string, v value.Value) {
	c.vars[name] = v
}

func (c *MapContext) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

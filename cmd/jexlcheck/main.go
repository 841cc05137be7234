// Command jexlcheck is a small ambient harness over the evaluation
// core: no grammar, no parser - it feeds two textual operands and an
// operator straight to internal/arith, the way sentra's cmd/sentra
// dispatches subcommands straight to its own internal packages.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"jexl/internal/arith"
	"jexl/internal/coerce"
	"jexl/internal/host"
	"jexl/internal/options"
	"jexl/internal/value"
)

const version = "0.1.0"

var commandAliases = map[string]string{
	"a": "add",
	"s": "sub",
	"m": "mul",
	"d": "div",
	"c": "cmp",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		fmt.Printf("jexlcheck %s\n", version)
	case "add", "sub", "mul", "div", "mod", "cmp", "eq":
		runBinary(cmd, args[1:])
	case "bool", "neg", "not", "size", "empty":
		runUnary(cmd, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "jexlcheck: unknown command %q\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`jexlcheck - exercise jexl's evaluation core directly

Usage:
  jexlcheck add|sub|mul|div|mod|cmp|eq <lhs> <rhs> [--strict]
  jexlcheck bool|neg|not|size|empty <operand> [--strict]
  jexlcheck version
  jexlcheck help

Operands are read as literals (null, a real number, an int64 integer,
otherwise text) and combined through the evaluation core's own
coercion ladder (internal/coerce); no grammar is involved.`)
}

func parseOpts(args []string) (options.Options, []string) {
	opts := options.Default()
	rest := make([]string, 0, len(args))
	for _, a := range args {
		switch a {
		case "--strict":
			opts = opts.WithStrict(true)
		case "--strict-arithmetic":
			opts = opts.WithStrictArithmetic(true)
		default:
			rest = append(rest, a)
		}
	}
	return opts, rest
}

// literal turns a bare CLI argument into a Value the way a JEXL literal
// would parse: "null" is Null, a real-shaped token is F64, an
// int64-shaped token is I64, otherwise it is Text (an integer token
// outside the int64 range included) - deliberately not the full
// grammar, just enough surface to exercise internal/arith.
func literal(tok string) value.Value {
	if tok == "null" {
		return value.Null()
	}
	if coerce.LooksLikeReal(tok) {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return value.NewF64(f)
		}
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return value.NewI64(i)
	}
	return value.NewText(tok)
}

func runBinary(cmd string, args []string) {
	opts, rest := parseOpts(args)
	if len(rest) != 2 {
		fmt.Fprintf(os.Stderr, "jexlcheck %s: expected exactly two operands\n", cmd)
		os.Exit(1)
	}
	a, b := literal(rest[0]), literal(rest[1])
	logger := host.NewStdLogger(!isatty.IsTerminal(os.Stdout.Fd()))
	ctx := host.NewMapContext()
	logger.Debugf("evaluation %s: %s %s %s", ctx.EvaluationID(), cmd, rest[0], rest[1])
	ev := arith.New(opts, nil, logger)

	var result value.Value
	var err error
	switch cmd {
	case "add":
		result, err = ev.Add(a, b)
	case "sub":
		result, err = ev.Subtract(a, b)
	case "mul":
		result, err = ev.Multiply(a, b)
	case "div":
		result, err = ev.Divide(a, b)
	case "mod":
		result, err = ev.Mod(a, b)
	case "eq":
		var eq bool
		eq, err = ev.Equal(a, b)
		result = value.NewBool(eq)
	case "cmp":
		var cmp int
		cmp, err = ev.Compare(a, b)
		result = value.NewI32(int32(cmp))
	}
	report(result, err)
}

func runUnary(cmd string, args []string) {
	opts, rest := parseOpts(args)
	if len(rest) != 1 {
		fmt.Fprintf(os.Stderr, "jexlcheck %s: expected exactly one operand\n", cmd)
		os.Exit(1)
	}
	v := literal(rest[0])
	logger := host.NewStdLogger(false)
	ctx := host.NewMapContext()
	logger.Debugf("evaluation %s: %s %s", ctx.EvaluationID(), cmd, rest[0])
	ev := arith.New(opts, nil, logger)

	var result value.Value
	var err error
	switch cmd {
	case "bool":
		var b bool
		b, err = coerce.ToBool(opts.Strict(), v)
		result = value.NewBool(b)
	case "neg":
		result, err = ev.Negate(v)
	case "not":
		result, err = ev.Not(v)
	case "size":
		var n int64
		n, err = ev.Size(v)
		result = value.NewI64(n)
	case "empty":
		var b bool
		b, err = ev.Empty(v)
		result = value.NewBool(b)
	}
	report(result, err)
}

func report(result value.Value, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
	s := result.String()
	if n, convErr := strconv.ParseInt(s, 10, 64); convErr == nil {
		fmt.Printf("%s (%s)\n", s, humanize.Comma(n))
		return
	}
	fmt.Println(s)
}

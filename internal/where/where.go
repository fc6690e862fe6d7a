// Package where compiles CEL predicates used to narrow command sources.
package where

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

// Predicate is a compiled boolean CEL expression over a single map variable.
// A nil *Predicate matches everything.
type Predicate struct {
	variable string
	expr     string
	prg      cel.Program
}

// Compile parses and type-checks expr with variable bound to a string-keyed map.
// An empty expression yields a nil predicate.
func Compile(variable, expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	env, err := cel.NewEnv(
		cel.Variable(variable, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{variable: variable, expr: expr, prg: prg}, nil
}

// Expr returns the source expression.
func (p *Predicate) Expr() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Match evaluates the predicate against fields.
func (p *Predicate) Match(fields map[string]any) (bool, error) {
	if p == nil {
		return true, nil
	}
	out, _, err := p.prg.Eval(map[string]any{p.variable: fields})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %T, want bool", p.expr, out.Value())
	}
	return b, nil
}

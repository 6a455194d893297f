// Package filter evaluates expr expressions against search results,
// for narrowing API responses client-side.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mistweaver/bnet/blizzard"
)

// Filter is a compiled filter expression.
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression. Expressions see the result's
// decoded data map plus a set of helper functions:
//
//	contains(field("name.en_US"), "wall")
//	field("id") > 1000
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(staticEnv()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{program: program, expr: expression}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// staticEnv holds the helper functions available to every expression.
func staticEnv() map[string]interface{} {
	return map[string]interface{}{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// Match evaluates the filter against one search result.
func (f *Filter) Match(res blizzard.SearchResult) (bool, error) {
	env := staticEnv()
	env["data"] = res.Data
	env["key"] = res.Key.Href
	env["field"] = func(path string) interface{} {
		return lookup(res.Data, path)
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	match, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must return a boolean, got %T", out)
	}
	return match, nil
}

// Apply returns the results the filter matches, preserving order.
func (f *Filter) Apply(results []blizzard.SearchResult) ([]blizzard.SearchResult, error) {
	var out []blizzard.SearchResult
	for _, res := range results {
		match, err := f.Match(res)
		if err != nil {
			return nil, err
		}
		if match {
			out = append(out, res)
		}
	}
	return out, nil
}

// lookup walks a dotted path through nested maps. A missing segment
// yields nil, matching the upstream's dotted field addressing
// (name.en_US).
func lookup(data map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var cur interface{} = data
	for _, part := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

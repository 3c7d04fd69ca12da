package repl

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr/builtin"

	"github.com/ardnew/vcfg/lang"
)

// exprSignatures documents the parameters of the expr-lang builtins most
// useful against a configuration document.
var exprSignatures = map[string][]string{
	"len":       {"v"},
	"all":       {"array", "predicate"},
	"any":       {"array", "predicate"},
	"none":      {"array", "predicate"},
	"map":       {"array", "mapper"},
	"filter":    {"array", "predicate"},
	"find":      {"array", "predicate"},
	"count":     {"array", "predicate"},
	"sum":       {"array"},
	"mean":      {"array"},
	"min":       {"array"},
	"max":       {"array"},
	"join":      {"array", "separator"},
	"split":     {"string", "separator"},
	"replace":   {"string", "old", "new"},
	"trim":      {"string"},
	"upper":     {"string"},
	"lower":     {"string"},
	"int":       {"v"},
	"float":     {"v"},
	"string":    {"v"},
	"type":      {"v"},
	"toJSON":    {"v"},
	"hasPrefix": {"string", "prefix"},
	"hasSuffix": {"string", "suffix"},
}

// exprBuiltinNames returns the sorted names of the expr-lang builtins offered
// as completions.
func exprBuiltinNames() []string {
	return slices.Sorted(maps.Keys(exprSignatures))
}

// isFunction reports whether a top-level completion name is callable.
func isFunction(name string) bool {
	if _, ok := builtin.Index[name]; ok {
		return true
	}

	if name == "env" {
		return true
	}

	v, ok := lang.BuiltinValue(name)

	return ok && v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // fully qualified function name (e.g., "path.cat")
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a function call's parameter list.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	open := -1
	depth := 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '.' && r != '_' &&
			(r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// getSignature returns the parameter names of the named function, from the
// expr-lang table or by reflecting on the built-in environment. The boolean
// is false if the function is unknown.
func getSignature(name string) ([]string, bool) {
	if params, ok := exprSignatures[name]; ok {
		return params, true
	}

	if name == "env" {
		return []string{"string"}, true
	}

	v, ok := lang.BuiltinValue(name)
	if !ok || v == nil {
		return nil, false
	}

	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Func {
		return nil, false
	}

	params := make([]string, t.NumIn())

	for i := range params {
		in := t.In(i)

		if t.IsVariadic() && i == len(params)-1 {
			params[i] = "..." + typeName(in.Elem())
		} else {
			params[i] = typeName(in)
		}
	}

	return params, true
}

// typeName converts a reflect.Type to a readable parameter name.
func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "array"
	case reflect.Map:
		return "map"
	case reflect.Func:
		return "func"
	default:
		return "arg"
	}
}

// renderSignatureHint renders the signature name(params...) with the
// parameter at argIndex highlighted. A variadic parameter stays highlighted
// for every argument past it.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if argIndex == i || (variadic && argIndex >= i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}

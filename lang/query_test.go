package lang

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDocument_Query(t *testing.T) {
	doc := mustParseConfig(t, `
var x 2
var y (^[x], 3)
var name "web"
var platform "shadowed"
`)

	tests := []struct {
		name  string
		query string
		want  any
	}{
		{"arithmetic", "x * 2", 4.0},
		{"array length", "len(y)", 2},
		{"array index", "y[1]", 3.0},
		{"string concatenation", `name + "-" + env("SUFFIX")`, "web-prod"},
		{"unset variable", `env("UNSET_VARIABLE")`, ""},
		{"document shadows builtin", "platform", "shadowed"},
		{"builtin function", `path.cat("a", "b") != ""`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.Query(context.Background(), tt.query, "SUFFIX=prod")
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Query(%q) = %#v, want %#v", tt.query, got, tt.want)
			}
		})
	}
}

func TestDocument_Query_Mung(t *testing.T) {
	doc := mustParseConfig(t, `var bin "/opt/bin"`)

	got, err := doc.Query(context.Background(), `mung.prefix("/usr/bin", bin)`)
	if err != nil {
		t.Fatal(err)
	}

	s, ok := got.(string)
	if !ok || !strings.Contains(s, "/opt/bin") || !strings.Contains(s, "/usr/bin") {
		t.Errorf("mung.prefix = %#v, want both paths", got)
	}
}

func TestDocument_Query_Errors(t *testing.T) {
	doc := mustParseConfig(t, "var y (1, 2)")

	if _, err := doc.Query(context.Background(), "y +"); !errors.Is(err, ErrQueryCompile) {
		t.Errorf("compile error = %v, want ErrQueryCompile", err)
	}

	if _, err := doc.Query(context.Background(), "undefined_name"); !errors.Is(err, ErrQueryCompile) {
		t.Errorf("unknown name error = %v, want ErrQueryCompile", err)
	}

	if _, err := doc.Query(context.Background(), "y[int(y[0]) * 5]"); !errors.Is(err, ErrQueryEvaluate) {
		t.Errorf("runtime error = %v, want ErrQueryEvaluate", err)
	}
}

func TestCompileQuery_Reusable(t *testing.T) {
	doc := mustParseConfig(t, "var n 20")

	q, err := CompileQuery(doc, "n / 4")
	if err != nil {
		t.Fatal(err)
	}

	for range 3 {
		got, err := q.Run(context.Background())
		if err != nil || got != 5.0 {
			t.Errorf("Run() = %v, %v; want 5", got, err)
		}
	}
}

func TestBuiltinLookup(t *testing.T) {
	if keys := BuiltinKeys(); !slices.Contains(keys, "env") || !slices.IsSorted(keys) {
		t.Errorf("BuiltinKeys() = %v", keys)
	}

	if got := strings.Join(BuiltinLookup("mung"), ","); got != "prefix,prefixif" {
		t.Errorf(`BuiltinLookup("mung") = %q`, got)
	}

	if got := BuiltinLookup("hostname"); got != nil {
		t.Errorf(`BuiltinLookup("hostname") = %v, want nil`, got)
	}

	if got := BuiltinLookup("no.such.path"); got != nil {
		t.Errorf(`BuiltinLookup("no.such.path") = %v, want nil`, got)
	}
}

func TestBuiltinValue(t *testing.T) {
	if v, ok := BuiltinValue("path.cat"); !ok || v == nil {
		t.Errorf(`BuiltinValue("path.cat") = %v, %v`, v, ok)
	}

	if _, ok := BuiltinValue("path.nope"); ok {
		t.Error(`BuiltinValue("path.nope") should not exist`)
	}

	if _, ok := BuiltinValue("hostname.x"); ok {
		t.Error(`BuiltinValue("hostname.x") should not exist`)
	}
}

func TestFromNative(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"float", 2.0, Number(2)},
		{"int", 3, Number(3)},
		{"string", "x", "x"},
		{"bool", true, true},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromNative(tt.in); got != tt.want {
				t.Errorf("FromNative(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}

	got := FromNative(map[string]any{"a": []any{1, "b", []any{2.5}}})

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("FromNative(map) = %#v, want map[string]any", got)
	}

	a, ok := m["a"].([]any)
	if !ok || len(a) != 3 || a[0] != Number(1) || a[1] != "b" {
		t.Fatalf("FromNative(map)[a] = %#v", m["a"])
	}

	if inner, ok := a[2].([]any); !ok || len(inner) != 1 || inner[0] != Number(2.5) {
		t.Errorf("FromNative(map)[a][2] = %#v, want [Number(2.5)]", a[2])
	}
}

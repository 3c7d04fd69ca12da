package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{
			name:   "no function call",
			input:  "greeting",
			cursor: 8,
		},
		{
			name:       "first arg",
			input:      "len(",
			cursor:     4,
			wantName:   "len",
			wantInCall: true,
		},
		{
			name:       "first arg with value",
			input:      "join(ports",
			cursor:     10,
			wantName:   "join",
			wantInCall: true,
		},
		{
			name:       "second arg",
			input:      "join(ports, ",
			cursor:     12,
			wantName:   "join",
			wantIndex:  1,
			wantInCall: true,
		},
		{
			name:       "namespace function",
			input:      "path.cat(a, b, c",
			cursor:     16,
			wantName:   "path.cat",
			wantIndex:  2,
			wantInCall: true,
		},
		{
			name:       "nested call inner",
			input:      "upper(trim(name",
			cursor:     15,
			wantName:   "trim",
			wantInCall: true,
		},
		{
			name:       "nested call closed",
			input:      "join(split(s, \",\"), ",
			cursor:     20,
			wantName:   "join",
			wantIndex:  1,
			wantInCall: true,
		},
		{
			name:       "comma inside array literal",
			input:      "len([1, 2], ",
			cursor:     12,
			wantName:   "len",
			wantIndex:  1,
			wantInCall: true,
		},
		{
			name:   "closed call",
			input:  "len(x)",
			cursor: 6,
		},
		{
			name:   "bare parenthesis",
			input:  "(1 + 2",
			cursor: 6,
		},
		{
			name:       "cursor before end",
			input:      "join(a, b)",
			cursor:     6,
			wantName:   "join",
			wantInCall: true,
		},
		{
			name:       "cursor past end",
			input:      "len(",
			cursor:     99,
			wantName:   "len",
			wantInCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)

			if got.inCall != tt.wantInCall {
				t.Errorf("inCall = %v, want %v", got.inCall, tt.wantInCall)
			}

			if got.name != tt.wantName {
				t.Errorf("name = %q, want %q", got.name, tt.wantName)
			}

			if got.argIndex != tt.wantIndex {
				t.Errorf("argIndex = %d, want %d", got.argIndex, tt.wantIndex)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	tests := []struct {
		name       string
		fn         string
		wantParams []string
		wantOK     bool
	}{
		{"expr builtin", "join", []string{"array", "separator"}, true},
		{"env", "env", []string{"string"}, true},
		{"single param", "path.abs", []string{"string"}, true},
		{"variadic", "path.cat", []string{"...string"}, true},
		{"two params", "path.rel", []string{"string", "string"}, true},
		{"mixed variadic", "mung.prefix", []string{"string", "...string"}, true},
		{
			"func param",
			"mung.prefixif",
			[]string{"string", "func", "...string"},
			true,
		},
		{"no params", "cwd", []string{}, true},
		{"namespace", "path", nil, false},
		{"value", "platform", nil, false},
		{"unknown", "nope", nil, false},
		{"unknown member", "path.nope", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := getSignature(tt.fn)
			if ok != tt.wantOK {
				t.Fatalf("getSignature(%q) ok = %v, want %v", tt.fn, ok, tt.wantOK)
			}

			if !slices.Equal(params, tt.wantParams) {
				t.Errorf("getSignature(%q) = %q, want %q", tt.fn, params, tt.wantParams)
			}
		})
	}
}

func TestIsFunction(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"len", true},
		{"env", true},
		{"cwd", true},
		{"path.cat", true},
		{"path", false},
		{"platform", false},
		{"hostname", false},
		{"port", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFunction(tt.name); got != tt.want {
				t.Errorf("isFunction(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	tests := []struct {
		name     string
		fn       string
		params   []string
		argIndex int
		want     string
	}{
		{"no params", "cwd", nil, 0, "cwd()"},
		{"first param", "join", []string{"array", "separator"}, 0, "join(array, separator)"},
		{"second param", "join", []string{"array", "separator"}, 1, "join(array, separator)"},
		{"variadic", "path.cat", []string{"...string"}, 3, "path.cat(...string)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderSignatureHint(tt.fn, tt.params, tt.argIndex)

			// Styling depends on the terminal; the text must survive it.
			for _, part := range append([]string{tt.fn}, tt.params...) {
				if !strings.Contains(got, part) {
					t.Errorf("renderSignatureHint() = %q, missing %q", got, part)
				}
			}
		})
	}
}

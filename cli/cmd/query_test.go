package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/vcfg/lang"
)

func TestQueryRun(t *testing.T) {
	const input = "var ports (80, 443)\nvar host \"<example>\"\n"

	tests := []struct {
		name    string
		expr    string
		pretty  bool
		want    string
		wantErr error
	}{
		{name: "number", expr: "ports[1] + 1", want: "444.0\n"},
		{name: "integer result", expr: "len(ports)", want: "2.0\n"},
		{name: "string unescaped", expr: "host", want: "\"<example>\"\n"},
		{name: "array", expr: "map(ports, # * 2)", want: "[160.0,886.0]\n"},
		{name: "map", expr: `{"n": len(ports), "h": host}`, want: `{"h":"<example>","n":2.0}` + "\n"},
		{name: "pretty", expr: "ports", pretty: true, want: "[\n  80.0,\n  443.0\n]\n"},
		{name: "builtin", expr: "len(ports) == 2", want: "true\n"},
		{name: "compile error", expr: "ports +", wantErr: lang.ErrQueryCompile},
		{name: "unknown name", expr: "missing", wantErr: lang.ErrQueryCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithOutput(context.Background(), &out)
			ctx = WithInput(ctx, strings.NewReader(input))

			q := Query{
				Source: Source{Input: stdinSource},
				Pretty: tt.pretty,
				Expr:   tt.expr,
			}

			err := q.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Query.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Query.Run() error = %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("Query.Run() = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestWriteJSONUnsupported(t *testing.T) {
	err := writeJSON(&bytes.Buffer{}, func() {}, 0)
	if !errors.Is(err, ErrJSONMarshal) {
		t.Errorf("writeJSON() error = %v, want %v", err, ErrJSONMarshal)
	}
}

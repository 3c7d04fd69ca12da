package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/vcfg/cli/cmd"
	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/log"
)

func TestMain(m *testing.M) {
	// Keep configuration and cache directories out of the user's home.
	dir, err := os.MkdirTemp("", "vcfg-cli-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

// run executes the CLI with stdin and stdout replaced and the logger
// restored afterward.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	var out bytes.Buffer

	ctx := cmd.WithOutput(context.Background(), &out)
	ctx = cmd.WithInput(ctx, strings.NewReader(stdin))

	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	err := Run(ctx, exit, args...)

	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.vcfg")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunBuild(t *testing.T) {
	path := writeInput(t, "var base \"/srv\"\nvar dirs (^[base], \"/tmp\")\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "default command",
			args: []string{"-i", path},
			want: `{"base":"/srv","dirs":["/srv","/tmp"]}` + "\n",
		},
		{
			name: "explicit build",
			args: []string{"build", "--input", path, "--format", "var"},
			want: "var base \"/srv\"\nvar dirs (\"/srv\", \"/tmp\")\n",
		},
		{
			name:  "stdin",
			stdin: "var x 1.50\n",
			args:  []string{"build"},
			want:  `{"x":1.5}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.vcfg")

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing file",
			args:     []string{"-i", missing},
			wantCode: ExitUsage,
			wantMsg:  "file not found: " + missing + "\n",
		},
		{
			name:     "syntax error",
			stdin:    "var a (1,\n",
			args:     []string{"build"},
			wantCode: ExitError,
			wantMsg:  "syntax error at line 1, column 10",
		},
		{
			name:     "undefined constant",
			stdin:    "var a ^[b]\n",
			args:     []string{"build"},
			wantCode: ExitError,
			wantMsg:  "undefined",
		},
		{
			name:     "unknown flag",
			args:     []string{"--bogus"},
			wantCode: ExitUsage,
			wantMsg:  "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatalf("Run() succeeded with output %q", out)
			}

			if out != "" {
				t.Errorf("Run() wrote %q to stdout on error", out)
			}

			if code := ExitCode(err); code != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", code, tt.wantCode)
			}

			var msg bytes.Buffer

			Report(&msg, err)

			if !strings.Contains(msg.String(), tt.wantMsg) {
				t.Errorf("Report() = %q, want %q", msg.String(), tt.wantMsg)
			}
		})
	}
}

func TestReportSyntaxContext(t *testing.T) {
	_, err := lang.ParseString(context.Background(), "var a 1\nvar b $\n")

	var msg bytes.Buffer

	Report(&msg, err)

	want := "  2 | var b $\n" +
		"            ^\n"
	if !strings.HasSuffix(msg.String(), want) {
		t.Errorf("Report() = %q, want suffix %q", msg.String(), want)
	}

	msg.Reset()
	Report(&msg, nil)

	if msg.Len() != 0 {
		t.Errorf("Report(nil) = %q", msg.String())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"not found", cmd.ErrFileNotFound.Wrapf("%s", "x"), ExitUsage},
		{"syntax", &lang.SyntaxError{Msg: "bad"}, ExitError},
		{"semantic", &lang.SemanticError{Kind: lang.CircularDependency}, ExitError},
		{"other", errors.New("other"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRunQuery(t *testing.T) {
	out, err := run(t, "var ports (80, 443)\n", "query", "sum(ports)")
	if err != nil {
		t.Fatal(err)
	}

	if out != "523.0\n" {
		t.Errorf("query output = %q, want %q", out, "523.0\n")
	}
}

func TestRunFmt(t *testing.T) {
	out, err := run(t, "var   a   ( 1 ,2 ) # note\n", "fmt")
	if err != nil {
		t.Fatal(err)
	}

	if want := "var a (1.0, 2.0)\n"; out != want {
		t.Errorf("fmt output = %q, want %q", out, want)
	}
}

func TestRunInitAndConfig(t *testing.T) {
	confPath := configPath(baseConfig)
	t.Cleanup(func() { os.Remove(confPath) })

	if _, err := run(t, "", "--log-level", "error", "init", "--force"); err != nil {
		t.Fatalf("init error = %v", err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "var log_level \"error\"\n") {
		t.Errorf("config = %q, want log_level", data)
	}

	if strings.Contains(string(data), "pprof") {
		t.Errorf("config = %q, want no profiling flags", data)
	}

	// The generated file is read back as flag defaults.
	if err := os.WriteFile(confPath, append(data, "var strict \"true\"\n"...), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err = run(t, "var a 1\nvar a 2\n", "build")
	if !errors.Is(err, lang.ErrDuplicateDeclaration) {
		t.Errorf("build error = %v, want %v", err, lang.ErrDuplicateDeclaration)
	}
}

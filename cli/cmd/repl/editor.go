package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/vcfg/lang"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-parse-retry loop. It
// writes the session's declarations to a temp file, opens the user's editor,
// and re-parses and re-resolves the result. On error the user is prompted to
// re-edit; declining exits the program.
type editCommand struct {
	session *session
	ctxFunc func() context.Context
	newAST  *lang.AST
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. If the user declines to re-edit, it
// returns [ErrEditDeclined]. An emptied file cancels the edit.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	content, err := c.session.source(ctx)
	if err != nil {
		return fmt.Errorf("format declarations: %w", err)
	}

	f, err := os.CreateTemp("", "vcfg-repl-*.vcfg")
	if err != nil {
		return err
	}

	tmpPath := f.Name()
	f.Close()

	defer os.Remove(tmpPath)

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		ast, err := lang.ParseString(ctx, content, c.session.opts...)
		if err == nil {
			_, err = ast.Resolve(ctx)
		}

		c.session.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", err == nil))

		if err == nil {
			c.newAST = ast

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor runs $EDITOR, or vi, on path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

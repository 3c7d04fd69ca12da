package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/log"
)

// editDoneMsg is sent when editing produced declarations that resolve.
type editDoneMsg struct{ ast *lang.AST }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after an error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters an error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this help
  list     List constants and their values
  edit     Edit all declarations in $EDITOR
  clear    Clear screen
  quit     Exit REPL

Usage:
  var NAME VALUE   Declare a constant (the document is re-resolved)
  EXPRESSION       Evaluate an expression (constants are variables)
  Press Tab / Shift-Tab to cycle through completions
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)

	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL over the declarations of ast, which may be nil. The
// options are applied to every declaration entered in the session. History
// is persisted under cacheDir unless it is empty.
func Run(
	ctx context.Context,
	ast *lang.AST,
	cacheDir string,
	logger log.Logger,
	opts ...lang.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sess, err := newSession(ctx, ast, logger, opts...)
	if err != nil {
		return err
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("constants", sess.doc.Len()))

	var history *History
	if cacheDir != "" {
		history = NewHistory(filepath.Join(cacheDir, baseHistory))
	} else {
		history = NewHistory("")
	}

	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()))

	p := tea.NewProgram(newModel(ctx, sess, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	sess *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    sess,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		if err := m.session.replace(m.ctxFunc(), msg.ast); err != nil {
			return m, tea.Println(errorStyle.Render("error: " + err.Error()))
		}

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("updated: %d constants", m.session.doc.Len())))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type var NAME VALUE, an expression, or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case call.inCall && m.mode == modeEval && len(m.matches) == 0:
		if params, ok := getSignature(call.name); ok {
			b.WriteString(renderSignatureHint(call.name, params, call.argIndex))
		}

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1, false), nil

	case tea.KeyDown:
		return m.historyMove(1, false), nil

	case tea.KeyShiftUp:
		return m.historyMove(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyMove(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode(), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space breaks out of tab-cycling, accepting the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step through the current matches.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.WriteWithMode(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	echo := tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(input))

	out, err := m.session.eval(m.ctxFunc(), input)

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil))

	if err != nil {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render(errorText(err))))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// errorText renders err for display, with the offending source line for
// syntax errors.
func errorText(err error) string {
	text := "error: " + err.Error()

	var syn *lang.SyntaxError
	if errors.As(err, &syn) {
		if snippet := syn.Context(); snippet != "" {
			text += "\n" + strings.TrimSuffix(snippet, "\n")
		}
	}

	return text
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]))

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listConstants()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{session: m.session, ctxFunc: m.ctxFunc}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.newAST == nil:
			return editCancelledMsg{}
		default:
			return editDoneMsg{ast: cmd.newAST}
		}
	})
}

func (m model) listConstants() string {
	if m.session.doc.Len() == 0 {
		return hintStyle.Render("  (no constants)")
	}

	var b strings.Builder

	for name, val := range m.session.doc.All() {
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(val)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyMove steps through history by step. With sameMode, entries from the
// other mode are skipped; otherwise the mode follows the entry. Moving past
// the newest entry clears the input.
func (m model) historyMove(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.GetEntry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// toggleMode switches between eval and control modes.
func (m model) toggleMode() model {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the specified mode, preserving each mode's input.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}

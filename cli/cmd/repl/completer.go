package repl

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/vcfg/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "edit", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace, the member-access dot, the reference
// brackets, and expr-lang operator/punctuation characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '^',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// between dots, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the dot-separated prefix path leading up to the current
// word, considering only the contiguous member-access chain. For input
// "x + path.ca" with the word "ca", the parent path is "path".
// Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// childCandidates returns the names that are valid completions under parent.
// At the top level these are the document's constants, the built-in
// environment, and the expr-lang builtin functions. Below it, only built-in
// namespaces have members.
func childCandidates(doc *lang.Document, parent string) []string {
	if parent != "" {
		return lang.BuiltinLookup(parent)
	}

	names := doc.Keys()
	names = append(names, lang.BuiltinKeys()...)
	names = append(names, exprBuiltinNames()...)

	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. When the current word is empty at the top level, it returns nil
// matches. When the word is empty after a dot (member access), it returns all
// children as matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var candidates []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		parent := parentPath(input, wordStart)
		candidates = childCandidates(m.session.doc, parent)

		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

const previewWidth = 40

// preview renders a resolved value in native syntax, shortened to fit a
// single line.
func preview(v lang.Value) string {
	var s string

	switch v := v.(type) {
	case nil:
		return "<undefined>"
	case lang.Number:
		s = v.String()
	case lang.Text:
		s = strconv.Quote(string(v))
	case lang.Reference:
		s = v.String()
	case lang.Array:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = preview(elem)
		}

		s = "(" + strings.Join(parts, ", ") + ")"
	}

	if utf8.RuneCountInString(s) > previewWidth {
		runes := []rune(s)
		s = string(runes[:previewWidth-3]) + "..."
	}

	return s
}

package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax               = NewError("syntax error")
	ErrUndefinedConstant    = NewError("undefined constant")
	ErrCircularDependency   = NewError("circular dependency")
	ErrDuplicateDeclaration = NewError("duplicate declaration")
	ErrMaxDepthExceeded     = NewError("maximum depth exceeded")
	ErrReadInput            = NewError("failed to read input")
	ErrInvalidValueType     = NewError("invalid value type")
	ErrInvalidNumber        = NewError("invalid number value")
	ErrUnresolvedReference  = NewError("unresolved reference")
	ErrQueryCompile         = NewError("query compilation failed")
	ErrQueryEvaluate        = NewError("query evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel e was derived from.
// Copies made by Wrap and With compare equal to their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.msg != "" && e.msg == t.msg && t.err == nil && len(t.attrs) == 0)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError reports malformed input: an unrecognized character sequence or
// a token the grammar does not allow at its position.
type SyntaxError struct {
	Msg      string   // What went wrong
	Lexeme   string   // Offending lexeme, if any
	Source   string   // The original source input, if known
	Expected []string // Tokens that would have been accepted
	Pos      Position
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString("syntax error at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))

	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}

	if len(e.Expected) > 0 {
		buf.WriteString(" (expected ")
		buf.WriteString(strings.Join(e.Expected, " or "))
		buf.WriteString(")")
	}

	return buf.String()
}

// Unwrap returns [ErrSyntax].
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Context renders the offending source line with a caret under the error
// column. It returns an empty string if the source is unknown.
func (e *SyntaxError) Context() string {
	if e.Source == "" || !e.Pos.IsValid() {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[e.Pos.Line-1], "\r")

	var src strings.Builder

	// Print the line with line number
	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Pos.Line))
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Pos.Line))+5)

	if e.Pos.Column > 0 {
		padding += strings.Repeat(" ", e.Pos.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrSyntax.msg),
		slog.String("message", e.Msg),
		slog.Any("position", e.Pos),
	}

	if e.Lexeme != "" {
		attrs = append(attrs, slog.String("lexeme", e.Lexeme))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", e.Expected))
	}

	return slog.GroupValue(attrs...)
}

// SemanticKind classifies a [SemanticError].
type SemanticKind int

const (
	// UndefinedConstant means a reference names no declaration.
	UndefinedConstant SemanticKind = iota

	// CircularDependency means a reference chain revisits a name that is
	// still being resolved.
	CircularDependency

	// DuplicateDeclaration means a name was declared twice while strict
	// mode was enabled.
	DuplicateDeclaration

	// DepthExceeded means a reference chain was longer than the configured
	// maximum depth.
	DepthExceeded
)

// String returns the sentinel message of the kind.
func (k SemanticKind) String() string {
	return k.sentinel().msg
}

func (k SemanticKind) sentinel() *Error {
	switch k {
	case UndefinedConstant:
		return ErrUndefinedConstant
	case CircularDependency:
		return ErrCircularDependency
	case DuplicateDeclaration:
		return ErrDuplicateDeclaration
	case DepthExceeded:
		return ErrMaxDepthExceeded
	default:
		return ErrInvalidValueType
	}
}

// SemanticError reports a well-formed document whose references cannot be
// resolved.
type SemanticError struct {
	Name  string   // The name being referenced or declared
	Chain []string // Cycle path for CircularDependency, first == last
	Pos   Position // Location of the offending reference or declaration
	Kind  SemanticKind
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Kind.String())
	buf.WriteString(": ")

	if e.Kind == CircularDependency && len(e.Chain) > 0 {
		buf.WriteString(strings.Join(e.Chain, " -> "))
	} else {
		buf.WriteString(e.Name)
	}

	if e.Pos.IsValid() {
		buf.WriteString(" at line ")
		buf.WriteString(strconv.Itoa(e.Pos.Line))
		buf.WriteString(", column ")
		buf.WriteString(strconv.Itoa(e.Pos.Column))
	}

	return buf.String()
}

// Unwrap returns the sentinel error matching e.Kind.
func (e *SemanticError) Unwrap() error { return e.Kind.sentinel() }

// LogValue implements slog.LogValuer.
func (e *SemanticError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Kind.String()),
		slog.String("name", e.Name),
	}

	if len(e.Chain) > 0 {
		attrs = append(attrs, slog.String("chain", strings.Join(e.Chain, " -> ")))
	}

	if e.Pos.IsValid() {
		attrs = append(attrs, slog.Any("position", e.Pos))
	}

	return slog.GroupValue(attrs...)
}

package lang

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNumber    Kind = iota // number
	KindText                  // string
	KindArray                 // array
	KindReference             // reference
)

// Value is one of [Number], [Text], [Array], or [Reference].
//
// The set of implementations is closed; consumers switch on the concrete type
// and treat any other type as [ErrInvalidValueType].
type Value interface {
	Kind() Kind
	value()
}

// Number is a numeric literal. All numeric source forms normalize to float64.
type Number float64

// Text is a string literal with its escape sequences decoded.
type Text string

// Array is an ordered sequence of values.
type Array []Value

// Reference is an unresolved ^[name] pointer to another declaration.
// References never appear in a resolved [Document].
type Reference struct {
	Name string
	Pos  Position
}

func (Number) Kind() Kind    { return KindNumber }
func (Text) Kind() Kind      { return KindText }
func (Array) Kind() Kind     { return KindArray }
func (Reference) Kind() Kind { return KindReference }

func (Number) value()    {}
func (Text) value()      {}
func (Array) value()     {}
func (Reference) value() {}

// String formats n with the shortest representation that round-trips.
// Integral values keep a trailing ".0" and exponent notation is used for
// magnitudes outside [1e-4, 1e16).
func (n Number) String() string {
	f := float64(n)

	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		if e := sciExponent(sci); e < -4 || e >= 16 {
			return sci
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

// sciExponent returns the decimal exponent of a float formatted with 'e'.
func sciExponent(s string) int {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return 0
	}

	e, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0
	}

	return e
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrInvalidNumber.With(slog.Float64("value", f))
	}

	return []byte(n.String()), nil
}

// MarshalJSON implements json.Marshaler. A reference has no JSON form; its
// presence means the value was never resolved.
func (r Reference) MarshalJSON() ([]byte, error) {
	return nil, ErrUnresolvedReference.With(slog.String("name", r.Name))
}

// String returns the reference in source syntax.
func (r Reference) String() string { return "^[" + r.Name + "]" }

// Native converts v to plain Go values: float64, string, and []any.
// References convert to nil.
func Native(v Value) any {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case Text:
		return string(v)
	case Array:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Native(elem)
		}

		return out
	default:
		return nil
	}
}

// FromNative converts the numbers within a plain Go value, such as a query
// result, to [Number] so they encode like the document's own numbers. Slices
// and string-keyed maps are converted element by element. Other values are
// returned unchanged.
func FromNative(v any) any {
	switch v := v.(type) {
	case float64:
		return Number(v)
	case float32:
		return Number(v)
	case int:
		return Number(v)
	case int64:
		return Number(v)
	case int32:
		return Number(v)
	case uint:
		return Number(v)
	case uint64:
		return Number(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = FromNative(elem)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = FromNative(elem)
		}

		return out
	default:
		return v
	}
}

// Equal reports whether a and b hold the same variant and contents.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		bn, ok := b.(Number)

		return ok && (a == bn || math.IsNaN(float64(a)) && math.IsNaN(float64(bn)))
	case Text:
		bt, ok := b.(Text)

		return ok && a == bt
	case Array:
		ba, ok := b.(Array)
		if !ok || len(a) != len(ba) {
			return false
		}

		for i := range a {
			if !Equal(a[i], ba[i]) {
				return false
			}
		}

		return true
	case Reference:
		br, ok := b.(Reference)

		return ok && a.Name == br.Name
	default:
		return a == nil && b == nil
	}
}

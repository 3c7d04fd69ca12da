package lang

import (
	"bytes"
	"encoding/json"
	"iter"
	"log/slog"
	"slices"

	"github.com/goccy/go-yaml"
)

// Document is a fully resolved mapping from names to values. No [Reference]
// appears anywhere within it.
//
// Keys are ordered by the first declaration of each name. Arrays may be
// shared between keys that resolved through the same reference, so callers
// must not modify the values they retrieve.
type Document struct {
	values map[string]Value
	keys   []string
}

func newDocument(keys []string, values map[string]Value) *Document {
	return &Document{keys: keys, values: values}
}

// Len returns the number of names in the document.
func (d *Document) Len() int { return len(d.keys) }

// Keys returns the names in the document in order.
func (d *Document) Keys() []string { return slices.Clone(d.keys) }

// Get returns the value bound to name.
func (d *Document) Get(name string) (Value, bool) {
	v, ok := d.values[name]

	return v, ok
}

// All returns an iterator over the name-value pairs in order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range d.keys {
			if !yield(key, d.values[key]) {
				return
			}
		}
	}
}

// ToMap converts the document to plain Go values (see [Native]).
func (d *Document) ToMap() map[string]any {
	m := make(map[string]any, len(d.keys))
	for key, val := range d.All() {
		m[key] = Native(val)
	}

	return m
}

// MarshalJSON implements json.Marshaler. Object keys keep document order.
//
// [json.Marshal] re-escapes '<', '>', and '&' in the result; use
// [Document.FormatJSON] to write text unescaped.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := appendJSONString(&buf, key); err != nil {
			return nil, err
		}

		buf.WriteByte(':')

		if err := appendJSON(&buf, d.values[key]); err != nil {
			return nil, ErrInvalidValueType.Wrap(err).With(slog.String("name", key))
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (d *Document) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, len(d.keys))
	for key, val := range d.All() {
		ms = append(ms, yaml.MapItem{Key: key, Value: Native(val)})
	}

	return ms, nil
}

func appendJSON(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Number:
		b, err := v.MarshalJSON()
		if err != nil {
			return err
		}

		buf.Write(b)

	case Text:
		return appendJSONString(buf, string(v))

	case Array:
		buf.WriteByte('[')

		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := appendJSON(buf, elem); err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	case Reference:
		_, err := v.MarshalJSON()

		return err

	default:
		return ErrInvalidValueType.With(slog.Any("value", v))
	}

	return nil
}

func appendJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}

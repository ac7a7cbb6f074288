// Package xmlrecord turns XML element trees into plain records using
// declarative field tables.
//
// A field is read either from an attribute of the element or from the text of
// a named child element. Missing required fields fail the whole mapping, missing
// optional fields are present in the record with a nil value.
package xmlrecord

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Record is a mapped element. Values are string, time.Time, nil, Record or
// []Record. Callers may add request parameters of any type next to them.
type Record map[string]any

var (
	ErrMissingField   = errors.New("missing field")
	ErrMissingElement = errors.New("missing element")
	ErrBadDate        = errors.New("bad date")
)

// FieldError locates a shape failure inside a response.
type FieldError struct {
	Element string
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("<%s> %s: %s", e.Element, e.Field, e.Err.Error())
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type source int

const (
	fromAttr source = iota
	fromText
)

type Field struct {
	Key      string
	names    []string
	source   source
	optional bool
	coerce   func(string) (any, error)
}

// Attr reads the first of `names` present as an attribute. If no names are
// given the key itself is used. Attribute fields are required unless marked
// Optional.
func Attr(key string, names ...string) Field {
	if len(names) == 0 {
		names = []string{key}
	}
	return Field{Key: key, names: names, source: fromAttr}
}

// Text reads the text content of the first child element called `name`. Text
// fields are optional unless marked Required, an absent child yields nil.
func Text(key string, name string) Field {
	return Field{Key: key, names: []string{name}, source: fromText, optional: true}
}

func (f Field) Optional() Field {
	f.optional = true
	return f
}

func (f Field) Required() Field {
	f.optional = false
	return f
}

// Date coerces the raw value with ParseDate. An empty optional date is
// treated as absent.
func (f Field) Date() Field {
	f.coerce = func(raw string) (any, error) {
		return ParseDate(raw)
	}
	return f
}

func (f Field) lookup(el *etree.Element) (string, bool) {
	for _, name := range f.names {
		switch f.source {
		case fromAttr:
			attr := el.SelectAttr(name)
			if attr != nil {
				return attr.Value, true
			}
		case fromText:
			child := el.SelectElement(name)
			if child != nil {
				return child.Text(), true
			}
		}
	}
	return "", false
}

func (f Field) extract(el *etree.Element) (any, error) {
	raw, ok := f.lookup(el)
	if !ok || (f.coerce != nil && raw == "" && f.optional) {
		if f.optional {
			return nil, nil
		}
		return nil, &FieldError{Element: el.Tag, Field: f.names[0], Err: ErrMissingField}
	}
	if f.coerce == nil {
		return raw, nil
	}
	value, err := f.coerce(raw)
	if err != nil {
		return nil, &FieldError{Element: el.Tag, Field: f.names[0], Err: err}
	}
	return value, nil
}

// Table is an ordered set of fields read from one element.
type Table []Field

// MapInto writes every field of the table into `out`, stopping at the first
// failure.
func (t Table) MapInto(out Record, el *etree.Element) error {
	for _, f := range t {
		value, err := f.extract(el)
		if err != nil {
			return err
		}
		out[f.Key] = value
	}
	return nil
}

func (t Table) Map(el *etree.Element) (Record, error) {
	out := make(Record, len(t))
	err := t.MapInto(out, el)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Keys lists the output keys of the table in order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, f := range t {
		keys[i] = f.Key
	}
	return keys
}

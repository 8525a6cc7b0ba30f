package plist

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/beevik/etree"
)

// Kind identifies the type of a property-list value
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindReal
	KindBool
	KindDate
	KindData
	KindArray
	KindDict
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindInteger: "integer",
	KindReal:    "real",
	KindBool:    "bool",
	KindDate:    "date",
	KindData:    "data",
	KindArray:   "array",
	KindDict:    "dict",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Value is any node that can sit on the value side of a dict pair or inside
// an array
type Value interface {
	Kind() Kind
}

type (
	String string
	// Integer keeps the number text as written. Plist integers may be
	// unsigned 64-bit or hexadecimal; conversion happens on demand.
	Integer string
	// Real keeps the number text as written
	Real string
	Bool bool
	// Date keeps the ISO 8601 text as written
	Date string
	// Data keeps the base64 text as written
	Data  string
	Array []Value
)

func (String) Kind() Kind  { return KindString }
func (Integer) Kind() Kind { return KindInteger }
func (Real) Kind() Kind    { return KindReal }
func (Bool) Kind() Kind    { return KindBool }
func (Date) Kind() Kind    { return KindDate }
func (Data) Kind() Kind    { return KindData }
func (Array) Kind() Kind   { return KindArray }

// Int64 converts the integer text, accepting 0x and 0o prefixes
func (i Integer) Int64() (int64, error) {
	n, err := strconv.ParseInt(string(i), 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrMalformedData, "invalid integer %q", string(i))
	}
	return n, nil
}

// Uint64 converts the integer text for values above the int64 range
func (i Integer) Uint64() (uint64, error) {
	n, err := strconv.ParseUint(string(i), 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrMalformedData, "invalid unsigned integer %q", string(i))
	}
	return n, nil
}

// Float64 converts the real text
func (r Real) Float64() (float64, error) {
	f, err := strconv.ParseFloat(string(r), 64)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrMalformedData, "invalid real %q", string(r))
	}
	return f, nil
}

// Pair is one key/value entry of a Dict
type Pair struct {
	Key   string
	Value Value
}

// Dict is an ordered sequence of key/value pairs. Keys may repeat; lookups
// only ever see the first occurrence.
type Dict struct {
	pairs []Pair
}

// NewDict builds a Dict from pairs, keeping their order
func NewDict(pairs ...Pair) *Dict {
	return &Dict{pairs: append([]Pair(nil), pairs...)}
}

func (*Dict) Kind() Kind { return KindDict }

// Len returns the number of pairs
func (d *Dict) Len() int {
	return len(d.pairs)
}

// Keys returns the keys in document order, duplicates included
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.pairs))
	for i, p := range d.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns a copy of the pairs in document order
func (d *Dict) Pairs() []Pair {
	return append([]Pair(nil), d.pairs...)
}

// Lookup returns the value paired with the first key equal to key.
// Comparison is exact; the second result is false when no key matches.
func (d *Dict) Lookup(key string) (Value, bool) {
	for _, p := range d.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GetString returns the string stored under key. A present value of another
// kind is ErrMalformedData.
func (d *Dict) GetString(key string) (string, bool, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return "", false, nil
	}
	s, isString := v.(String)
	if !isString {
		return "", true, kindMismatch(key, KindString, v)
	}
	return string(s), true, nil
}

// GetArray returns the array stored under key
func (d *Dict) GetArray(key string) (Array, bool, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return nil, false, nil
	}
	a, isArray := v.(Array)
	if !isArray {
		return nil, true, kindMismatch(key, KindArray, v)
	}
	return a, true, nil
}

// GetDict returns the nested dict stored under key
func (d *Dict) GetDict(key string) (*Dict, bool, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return nil, false, nil
	}
	nested, isDict := v.(*Dict)
	if !isDict {
		return nil, true, kindMismatch(key, KindDict, v)
	}
	return nested, true, nil
}

func kindMismatch(key string, want Kind, got Value) error {
	return errors.Newf(errors.ErrMalformedData, "key %q holds %s, expected %s", key, got.Kind(), want).
		WithDetail("key", key)
}

// Parse reads a property-list document and returns its root dict
func Parse(r io.Reader) (*Dict, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedData, "invalid property list XML")
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrMalformedData, "property list has no root element")
	}

	dictElement := root
	if root.Tag != "dict" {
		dictElement = root.SelectElement("dict")
	}
	if dictElement == nil {
		return nil, errors.Newf(errors.ErrMalformedData, "<%s> root does not contain a dict", root.Tag)
	}

	return FromElement(dictElement)
}

// ParseBytes is Parse over an in-memory document
func ParseBytes(data []byte) (*Dict, error) {
	return Parse(bytes.NewReader(data))
}

// FromElement converts a <dict> element into a Dict. Children must alternate
// <key> and value elements; an odd child count or a non-key element at an
// even position is ErrMalformedData.
func FromElement(el *etree.Element) (*Dict, error) {
	if el.Tag != "dict" {
		return nil, errors.Newf(errors.ErrMalformedData, "expected <dict>, found <%s>", el.Tag)
	}

	children := el.ChildElements()
	if len(children)%2 != 0 {
		return nil, errors.Newf(errors.ErrMalformedData, "dict has %d children, expected key/value pairs", len(children)).
			WithDetail("path", el.GetPath())
	}

	pairs := make([]Pair, 0, len(children)/2)
	for i := 0; i < len(children); i += 2 {
		keyEl := children[i]
		if keyEl.Tag != "key" {
			return nil, errors.Newf(errors.ErrMalformedData, "dict child %d is <%s>, expected <key>", i, keyEl.Tag).
				WithDetail("path", keyEl.GetPath())
		}

		value, err := valueFromElement(children[i+1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: keyEl.Text(), Value: value})
	}

	return &Dict{pairs: pairs}, nil
}

func valueFromElement(el *etree.Element) (Value, error) {
	text := strings.TrimSpace(el.Text())

	switch el.Tag {
	case "string":
		// Strings keep their whitespace
		return String(el.Text()), nil
	case "integer":
		return Integer(text), nil
	case "real":
		return Real(text), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "date":
		return Date(text), nil
	case "data":
		return Data(text), nil
	case "array":
		children := el.ChildElements()
		arr := make(Array, 0, len(children))
		for _, child := range children {
			v, err := valueFromElement(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case "dict":
		return FromElement(el)
	case "key":
		return nil, errors.New(errors.ErrMalformedData, "<key> in value position").
			WithDetail("path", el.GetPath())
	default:
		return nil, errors.Newf(errors.ErrMalformedData, "unsupported element <%s>", el.Tag).
			WithDetail("path", el.GetPath())
	}
}

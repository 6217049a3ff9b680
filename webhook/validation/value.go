package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a decoded JSON document. Exactly one payload field is meaningful,
// selected by kind.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	array   []Value
	object  map[string]Value
}

// Parse decodes a single JSON document. Numbers keep their textual form.
func Parse(raw []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var decoded interface{}
	if err := decoder.Decode(&decoded); err != nil {
		return Value{}, errors.Wrap(err, "invalid json")
	}
	if _, err := decoder.Token(); err != io.EOF {
		return Value{}, errors.New("invalid json: trailing data after document")
	}
	return fromDecoded(decoded)
}

func fromDecoded(decoded interface{}) (Value, error) {
	switch t := decoded.(type) {
	case nil:
		return Value{kind: KindNull}, nil
	case bool:
		return Value{kind: KindBool, boolean: t}, nil
	case json.Number:
		return Value{kind: KindNumber, number: t}, nil
	case string:
		return Value{kind: KindString, str: t}, nil
	case []interface{}:
		arr := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := fromDecoded(item)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, v)
		}
		return Value{kind: KindArray, array: arr}, nil
	case map[string]interface{}:
		obj := make(map[string]Value, len(t))
		for k, item := range t {
			v, err := fromDecoded(item)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return Value{kind: KindObject, object: obj}, nil
	}
	return Value{}, fmt.Errorf("unexpected json type %T", decoded)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Bool() bool {
	return v.boolean
}

func (v Value) Number() json.Number {
	return v.number
}

func (v Value) Str() string {
	return v.str
}

func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.array)
	case KindObject:
		return len(v.object)
	case KindString:
		return len(v.str)
	}
	return 0
}

// Field returns the member key of an object. Any other kind has no fields.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	child, ok := v.object[key]
	return child, ok
}

// Lookup resolves a dotted path such as "source.platform" by walking object
// members one key at a time. The walk stops as soon as a step is missing or
// is not an object.
func (v Value) Lookup(path string) (Value, bool) {
	current := v
	for _, key := range strings.Split(path, ".") {
		next, ok := current.Field(key)
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}

// IsBlank reports null and the empty string. 0, false, [] and {} are not
// blank.
func (v Value) IsBlank() bool {
	return v.kind == KindNull || (v.kind == KindString && v.str == "")
}

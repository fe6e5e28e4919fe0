// Package interp implements the PDF content-stream interpreter: the operator
// dispatch loop, the graphics-state stack, path and clip construction, color
// resolution and text positioning. It replays a page's drawing operators
// into device-space draw commands for a scene.Sink.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectType represents the type of a content-stream operand.
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBoolean
	ObjInteger
	ObjReal
	ObjString
	ObjName
	ObjArray
	ObjDictionary
)

// Object represents a content-stream operand. Indirect references and
// streams never appear here; the upstream decoder resolves them before the
// interpreter runs.
type Object interface {
	Type() ObjectType
	String() string
}

// Null represents a null operand.
type Null struct{}

func (n Null) Type() ObjectType { return ObjNull }
func (n Null) String() string   { return "null" }

// Boolean represents a boolean operand.
type Boolean bool

func (b Boolean) Type() ObjectType { return ObjBoolean }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Integer represents an integer operand.
type Integer int64

func (i Integer) Type() ObjectType { return ObjInteger }
func (i Integer) String() string   { return strconv.FormatInt(int64(i), 10) }

// Real represents a real number operand.
type Real float64

func (r Real) Type() ObjectType { return ObjReal }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a string operand. Show-text operators consume the raw
// bytes; the active font's encoding decides what they mean.
type String struct {
	Value []byte
	IsHex bool
}

func (s String) Type() ObjectType { return ObjString }
func (s String) String() string {
	if s.IsHex {
		return fmt.Sprintf("<%X>", s.Value)
	}
	return fmt.Sprintf("(%s)", string(s.Value))
}

// Name represents a name operand.
type Name string

func (n Name) Type() ObjectType { return ObjName }
func (n Name) String() string   { return "/" + string(n) }

// Array represents an array operand.
type Array []Object

func (a Array) Type() ObjectType { return ObjArray }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = obj.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dictionary represents a dictionary operand (BDC property lists, inline
// image headers).
type Dictionary map[Name]Object

func (d Dictionary) Type() ObjectType { return ObjDictionary }
func (d Dictionary) String() string {
	var parts []string
	for k, v := range d {
		parts = append(parts, k.String()+" "+v.String())
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get returns the value for a key, or nil.
func (d Dictionary) Get(key string) Object {
	return d[Name(key)]
}

// numberValue extracts a float64 from a numeric operand.
func numberValue(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// numberOr extracts a float64 from a numeric operand, or returns def.
func numberOr(obj Object, def float64) float64 {
	if v, ok := numberValue(obj); ok {
		return v
	}
	return def
}

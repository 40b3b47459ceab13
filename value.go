package main

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindFloat ValueKind = iota
	KindString
	KindArray
	KindObject
)

var valueKindNames = [...]string{"float", "string", "array", "object"}

func (kind ValueKind) String() string {
	if int(kind) < len(valueKindNames) {
		return valueKindNames[kind]
	}
	return "value(" + strconv.Itoa(int(kind)) + ")"
}

// Value is the runtime value representation: a Float, a String, an Array of
// further values, or an Object of named values. The zero Value is Float(0).
type Value struct {
	kind  ValueKind
	num   float64
	str   string
	elems []Value
	props []Prop
}

// Prop is one named member of an Object value.
type Prop struct {
	Name  string
	Value Value
}

func Float(f float64) Value      { return Value{kind: KindFloat, num: f} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Array(elems ...Value) Value { return Value{kind: KindArray, elems: elems} }
func Object(props ...Prop) Value { return Value{kind: KindObject, props: props} }
func Bool(b bool) Value          { return Float(boolFloat(b)) }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) Float() float64  { return v.num }
func (v Value) Text() string    { return v.str }
func (v Value) Elems() []Value  { return v.elems }
func (v Value) Props() []Prop   { return v.props }

// IsFloat reports whether v is exactly the Float f.
func (v Value) IsFloat(f float64) bool { return v.kind == KindFloat && v.num == f }

// Prop returns the first property of an Object value with the given name.
func (v Value) Prop(name string) (Value, bool) {
	for _, prop := range v.props {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return Value{}, false
}

// Clone returns a deep copy, sharing nothing mutable with v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		elems := make([]Value, len(v.elems))
		for i, elem := range v.elems {
			elems[i] = elem.Clone()
		}
		v.elems = elems
	case KindObject:
		props := make([]Prop, len(v.props))
		for i, prop := range v.props {
			props[i] = Prop{prop.Name, prop.Value.Clone()}
		}
		v.props = props
	}
	return v
}

// Equal compares structurally; values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindFloat:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(other.elems[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.props) != len(other.props) {
			return false
		}
		for i := range v.props {
			if v.props[i].Name != other.props[i].Name ||
				!v.props[i].Value.Equal(other.props[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Len returns the size reported by the length primitive: string length in
// bytes, element count, property count, or a float truncated to an index.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.str)
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.props)
	}
	return floatIndex(v.num)
}

func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.kind {
	case KindFloat:
		sb.WriteString(formatFloat(v.num))
	case KindString:
		sb.WriteString(v.str)
	case KindArray:
		sb.WriteByte('[')
		for i, elem := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			elem.format(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, prop := range v.props {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(prop.Name)
			sb.WriteString(" = ")
			prop.Value.format(sb)
		}
		sb.WriteByte('}')
	}
}

//// Binary operators

// Each binary operator receives its operands in pop order: a is the first
// value popped (the top of the stack) and is the left hand operand.

type binaryOp func(a, b Value) (Value, error)

func arith(op func(a, b float64) float64) binaryOp {
	return func(a, b Value) (Value, error) {
		if a.kind != KindFloat {
			return Value{}, kindError(a, KindFloat)
		}
		if b.kind != KindFloat {
			return Value{}, kindError(b, KindFloat)
		}
		return Float(op(a.num, b.num)), nil
	}
}

func order(op func(a, b float64) bool) binaryOp {
	return func(a, b Value) (Value, error) {
		if a.kind != KindFloat {
			return Value{}, kindError(a, KindFloat)
		}
		if b.kind != KindFloat {
			return Value{}, kindError(b, KindFloat)
		}
		return Bool(op(a.num, b.num)), nil
	}
}

var binaryOps = map[TokenKind]binaryOp{
	tokAdd:   arith(func(a, b float64) float64 { return a + b }),
	tokMinus: arith(func(a, b float64) float64 { return a - b }),
	tokDiv:   arith(func(a, b float64) float64 { return a / b }),
	tokMul:   arith(func(a, b float64) float64 { return a * b }),
	tokMod:   arith(math.Mod),

	// bigger asks whether the deeper operand is bigger than the top one
	tokBigger:  order(func(a, b float64) bool { return a < b }),
	tokSmaller: order(func(a, b float64) bool { return a > b }),

	tokEq:    func(a, b Value) (Value, error) { return Bool(a.Equal(b)), nil },
	tokNoteq: func(a, b Value) (Value, error) { return Bool(!a.Equal(b)), nil },
}

type kindMismatch struct {
	have ValueKind
	want ValueKind
}

func (km kindMismatch) Error() string {
	return "expected " + km.want.String() + ", have " + km.have.String()
}

func kindError(v Value, want ValueKind) error { return kindMismatch{v.kind, want} }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// floatIndex truncates toward zero, mapping negatives and NaN to 0.
func floatIndex(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

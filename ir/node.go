package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is one value in a JSON document tree. Arrays hold their elements
// in Values; objects additionally hold Keys, parallel to Values and in
// insertion order. Object keys are unique within a node. A node owns its
// children exclusively; the tree carries no back references.
//
// Numbers keep their source representation: Int64 is set for integral
// numbers and Float64 otherwise, never both.
type Node struct {
	Type Type

	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Keys != nil {
		dst.Keys = slices.Clone(y.Keys)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

// Take extracts y's value, leaving a Null placeholder in its former
// location. The returned node owns what y owned; no subtree is cloned.
func (y *Node) Take() *Node {
	out := &Node{}
	*out = *y
	*y = Node{Type: NullType}
	return out
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromSlice(ySlice []*Node) *Node {
	return &Node{Type: ArrayType, Values: ySlice}
}

func EmptyArray() *Node {
	return &Node{Type: ArrayType, Values: []*Node{}}
}

func EmptyObject() *Node {
	return &Node{Type: ObjectType, Keys: []string{}, Values: []*Node{}}
}

// FromMap builds an object node with keys in sorted order. Document
// ingestion preserves source order instead; this is for programmatic
// construction where no source order exists.
func FromMap(yMap map[string]*Node) *Node {
	res := EmptyObject()
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, yMap[key])
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Keys))
	for i, key := range node.Keys {
		res[key] = node.Values[i]
	}
	return res
}

// KeyIndex returns the position of field within an object node, or -1.
func (y *Node) KeyIndex(field string) int {
	for i, key := range y.Keys {
		if key == field {
			return i
		}
	}
	return -1
}

func Get(y *Node, field string) *Node {
	i := y.KeyIndex(field)
	if i < 0 {
		return nil
	}
	return y.Values[i]
}

// Set binds field to v, replacing an existing binding or appending a new
// one, keeping object keys unique.
func (y *Node) Set(field string, v *Node) {
	if i := y.KeyIndex(field); i >= 0 {
		y.Values[i] = v
		return
	}
	y.Keys = append(y.Keys, field)
	y.Values = append(y.Values, v)
}

// Remove deletes the value at position i from an array or object node.
func (y *Node) Remove(i int) {
	y.Values = slices.Delete(y.Values, i, i+1)
	if y.Type == ObjectType {
		y.Keys = slices.Delete(y.Keys, i, i+1)
	}
}

func (y *Node) IsArray() bool  { return y.Type == ArrayType }
func (y *Node) IsObject() bool { return y.Type == ObjectType }

func (y *Node) AsString() (string, bool) {
	if y.Type != StringType {
		return "", false
	}
	return y.String, true
}

func (y *Node) AsBool() (bool, bool) {
	if y.Type != BoolType {
		return false, false
	}
	return y.Bool, true
}

func (y *Node) AsInt64() (int64, bool) {
	if y.Type != NumberType || y.Int64 == nil {
		return 0, false
	}
	return *y.Int64, true
}

// AsFloat64 widens either number representation.
func (y *Node) AsFloat64() (float64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	return 0, false
}

// TypeName is the client-facing kind of y: integral numbers report as
// "integer", everything else as the lowercase JSON type name.
func (y *Node) TypeName() string {
	switch y.Type {
	case NullType:
		return "null"
	case BoolType:
		return "boolean"
	case NumberType:
		if y.Int64 != nil {
			return "integer"
		}
		return "number"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	}
	return "<unknown>"
}

// NumberLiteral renders a number node's source-faithful literal.
func (y *Node) NumberLiteral() string {
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 != nil {
		f := *y.Float64
		if f == float64(int64(f)) {
			return strconv.FormatFloat(f, 'f', 1, 64)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "0"
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

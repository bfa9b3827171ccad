package doc

import (
	"fmt"
	"math"
	"slices"

	"github.com/signadot/jsonkv/arrindex"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
	"github.com/signadot/jsonkv/path"
)

// NumIncrBy adds the JSON number literal to the value at p and returns
// the new value's literal.
func NumIncrBy(d *Document, p *path.Path, literal []byte) (string, error) {
	return numOp(d, p, literal,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

// NumMultBy multiplies the value at p by the JSON number literal and
// returns the new value's literal.
func NumMultBy(d *Document, p *path.Path, literal []byte) (string, error) {
	return numOp(d, p, literal,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

// numOp applies the integer operator when both operands are integral and
// the widened float operator otherwise.
func numOp(d *Document, p *path.Path, literal []byte, opI func(a, b int64) int64, opF func(a, b float64) float64) (string, error) {
	in, err := parse.Parse(literal)
	if err != nil {
		return "", err
	}
	if in.Type != ir.NumberType {
		return "", literalErr("number", in)
	}
	transform := func(v *ir.Node) (*TransformResult, error) {
		if v.Type != ir.NumberType {
			return nil, typeErr("number", v)
		}
		if a, ok := v.AsInt64(); ok {
			if b, ok := in.AsInt64(); ok {
				return &TransformResult{Value: ir.FromInt(opI(a, b))}, nil
			}
		}
		a, _ := v.AsFloat64()
		b, _ := in.AsFloat64()
		f := opF(a, b)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: result is not a JSON number", ErrTypeMismatch)
		}
		return &TransformResult{Value: ir.FromFloat(f)}, nil
	}
	return ValueOp(d, p, transform, func(v *ir.Node, _ bool) (string, error) {
		return v.NumberLiteral(), nil
	})
}

// Toggle negates the boolean at p and returns the new value.
func Toggle(d *Document, p *path.Path) (bool, error) {
	transform := func(v *ir.Node) (*TransformResult, error) {
		cur, ok := v.AsBool()
		if !ok {
			return nil, typeErr("boolean", v)
		}
		return &TransformResult{Value: ir.FromBool(!cur)}, nil
	}
	return ValueOp(d, p, transform, func(v *ir.Node, _ bool) (bool, error) {
		return v.Bool, nil
	})
}

// StrAppend concatenates the JSON string literal onto the string at p
// and returns the new length.
func StrAppend(d *Document, p *path.Path, literal []byte) (int, error) {
	in, err := parse.Parse(literal)
	if err != nil {
		return 0, err
	}
	s, ok := in.AsString()
	if !ok {
		return 0, literalErr("string", in)
	}
	transform := func(v *ir.Node) (*TransformResult, error) {
		cur, ok := v.AsString()
		if !ok {
			return nil, typeErr("string", v)
		}
		return &TransformResult{Value: ir.FromString(cur + s)}, nil
	}
	return ValueOp(d, p, transform, strLenProject)
}

func strLenProject(v *ir.Node, _ bool) (int, error) {
	return len(v.String), nil
}

func arrLenProject(v *ir.Node, _ bool) (int, error) {
	return len(v.Values), nil
}

// ArrAppend appends items to the array at p and returns the new length.
func ArrAppend(d *Document, p *path.Path, items ...*ir.Node) (int, error) {
	transform := func(v *ir.Node) (*TransformResult, error) {
		if !v.IsArray() {
			return nil, typeErr("array", v)
		}
		v.Values = append(v.Values, items...)
		return &TransformResult{Value: v}, nil
	}
	return ValueOp(d, p, transform, arrLenProject)
}

// ArrInsert splices items into the array at p before the normalized
// index and returns the new length. An index outside [0, len] fails
// before any mutation.
func ArrInsert(d *Document, p *path.Path, index int, items ...*ir.Node) (int, error) {
	transform := func(v *ir.Node) (*TransformResult, error) {
		if !v.IsArray() {
			return nil, typeErr("array", v)
		}
		pos, err := arrindex.Insert(index, len(v.Values))
		if err != nil {
			return nil, err
		}
		v.Values = slices.Insert(v.Values, pos, items...)
		return &TransformResult{Value: v}, nil
	}
	return ValueOp(d, p, transform, arrLenProject)
}

// ArrTrim keeps the closed range [start, stop] of the array at p and
// returns the new length. A window outside the array empties it rather
// than failing.
func ArrTrim(d *Document, p *path.Path, start, stop int) (int, error) {
	transform := func(v *ir.Node) (*TransformResult, error) {
		if !v.IsArray() {
			return nil, typeErr("array", v)
		}
		lo, hi := arrindex.Trim(start, stop, len(v.Values))
		v.Values = slices.Clone(v.Values[lo:hi])
		return &TransformResult{Value: v}, nil
	}
	return ValueOp(d, p, transform, arrLenProject)
}

// ArrPop removes and returns the element at the clamped index of the
// array at p. Popping an empty array returns nil with the document
// unchanged.
func ArrPop(d *Document, p *path.Path, index int) (*ir.Node, error) {
	transform := func(v *ir.Node) (*TransformResult, error) {
		if !v.IsArray() {
			return nil, typeErr("array", v)
		}
		pos, ok := arrindex.Pop(index, len(v.Values))
		if !ok {
			return &TransformResult{Value: v}, nil
		}
		removed := v.Values[pos]
		v.Values = slices.Delete(v.Values, pos, pos+1)
		return &TransformResult{Value: v, Removed: removed}, nil
	}
	return ValueOp(d, p, transform, func(v *ir.Node, removed bool) (*ir.Node, error) {
		if !removed {
			return nil, nil
		}
		return v, nil
	})
}

// Clear resets the value at p: containers empty while keeping their
// kind, scalars go to their zero value. It returns the number of nodes
// cleared; clearing null clears nothing.
func Clear(d *Document, p *path.Path) (int, error) {
	transform := func(v *ir.Node) (*TransformResult, error) {
		switch v.Type {
		case ir.ArrayType:
			return &TransformResult{Value: ir.EmptyArray()}, nil
		case ir.ObjectType:
			return &TransformResult{Value: ir.EmptyObject()}, nil
		case ir.NumberType:
			return &TransformResult{Value: ir.FromInt(0)}, nil
		case ir.StringType:
			return &TransformResult{Value: ir.FromString("")}, nil
		case ir.BoolType:
			return &TransformResult{Value: ir.FromBool(false)}, nil
		default:
			return &TransformResult{Value: v}, nil
		}
	}
	return ValueOp(d, p, transform, func(v *ir.Node, _ bool) (int, error) {
		if v.Type == ir.NullType {
			return 0, nil
		}
		return 1, nil
	})
}

// Set writes v at p, honoring opt. A missing final object member is
// created when its parent exists; any other missing path fails with
// ErrPathNotFound. The returned bool reports whether the write applied
// (false when opt ruled it out).
func Set(d *Document, p *path.Path, v *ir.Node, opt SetOption) (bool, error) {
	if p.IsRoot() {
		if opt == SetMustNotExist {
			return false, nil
		}
		*d.Root = *v
		return true, nil
	}
	if loc, ok := p.First(d.Root); ok {
		if opt == SetMustNotExist {
			return false, nil
		}
		loc.Replace(v)
		return true, nil
	}
	if opt == SetMustExist {
		return false, nil
	}
	parent, last, _ := p.Split()
	ploc, ok := parent.First(d.Root)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrPathNotFound, parent)
	}
	if last.Field == nil || !ploc.Value.IsObject() {
		return false, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	ploc.Value.Set(*last.Field, v)
	return true, nil
}

// Delete removes the node at p from its parent, reporting how many nodes
// were removed (0 when the path matches nothing). Deleting the root
// leaves a null document; the store layer removes the key instead of
// calling this.
func Delete(d *Document, p *path.Path) (int, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return 0, nil
	}
	if loc.IsRoot() {
		*d.Root = ir.Node{Type: ir.NullType}
		return 1, nil
	}
	loc.Parent.Remove(loc.Index)
	return 1, nil
}

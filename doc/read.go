package doc

import (
	"bytes"
	"fmt"

	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/path"
)

// ToText renders the values addressed by paths. No paths means the whole
// document; one path renders the bare value (ErrPathNotFound when it
// matches nothing); several paths render an object keyed by each path's
// source expression, with null for paths that match nothing.
func (d *Document) ToText(paths []*path.Path, opts ...encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	switch len(paths) {
	case 0:
		if err := encode.Encode(d.Root, buf, opts...); err != nil {
			return "", err
		}
	case 1:
		loc, ok := paths[0].First(d.Root)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrPathNotFound, paths[0])
		}
		if err := encode.Encode(loc.Value, buf, opts...); err != nil {
			return "", err
		}
	default:
		res := ir.EmptyObject()
		for _, p := range paths {
			if loc, ok := p.First(d.Root); ok {
				res.Set(p.Raw(), loc.Value)
			} else {
				res.Set(p.Raw(), ir.Null())
			}
		}
		if err := encode.Encode(res, buf, opts...); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Type reports the client-facing kind of the value at p.
func (d *Document) Type(p *path.Path) (string, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	return loc.Value.TypeName(), nil
}

func (d *Document) StrLen(p *path.Path) (int, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	s, isStr := loc.Value.AsString()
	if !isStr {
		return 0, typeErr("string", loc.Value)
	}
	return len(s), nil
}

func (d *Document) ArrLen(p *path.Path) (int, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	if !loc.Value.IsArray() {
		return 0, typeErr("array", loc.Value)
	}
	return len(loc.Value.Values), nil
}

func (d *Document) ObjLen(p *path.Path) (int, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	if !loc.Value.IsObject() {
		return 0, typeErr("object", loc.Value)
	}
	return len(loc.Value.Keys), nil
}

// ObjKeys returns the object's keys in insertion order.
func (d *Document) ObjKeys(p *path.Path) ([]string, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	if !loc.Value.IsObject() {
		return nil, typeErr("object", loc.Value)
	}
	keys := make([]string, len(loc.Value.Keys))
	copy(keys, loc.Value.Keys)
	return keys, nil
}

// ArrIndex scans the array at p for the first element structurally equal
// to scalar within the normalized [start, stop) window; stop <= 0 counts
// from the end, 0 meaning the array's end. Absent elements report -1.
func (d *Document) ArrIndex(p *path.Path, scalar *ir.Node, start, stop int) (int, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	if !loc.Value.IsArray() {
		return 0, typeErr("array", loc.Value)
	}
	n := len(loc.Value.Values)
	lo := start
	if lo < 0 {
		lo = max(0, n+lo)
	}
	hi := stop
	if hi <= 0 {
		hi = n + hi
	}
	hi = min(hi, n)
	for i := lo; i < hi; i++ {
		if ir.Equal(loc.Value.Values[i], scalar) {
			return i, nil
		}
	}
	return -1, nil
}

// First returns the first value addressed by p.
func (d *Document) First(p *path.Path) (*ir.Node, error) {
	loc, ok := p.First(d.Root)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	return loc.Value, nil
}

// Resp flattens the value at p into a protocol-shaped tree: scalars map
// to their primitive, containers to a slice led by a "[" or "{" marker
// with children (and keys) following in document order.
func (d *Document) Resp(p *path.Path) (any, error) {
	v, err := d.First(p)
	if err != nil {
		return nil, err
	}
	return respValue(v), nil
}

func respValue(v *ir.Node) any {
	switch v.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		if v.Bool {
			return "true"
		}
		return "false"
	case ir.NumberType:
		if v.Int64 != nil {
			return *v.Int64
		}
		if v.Float64 != nil {
			return *v.Float64
		}
		return int64(0)
	case ir.StringType:
		return v.String
	case ir.ArrayType:
		res := make([]any, 0, len(v.Values)+1)
		res = append(res, "[")
		for _, vv := range v.Values {
			res = append(res, respValue(vv))
		}
		return res
	case ir.ObjectType:
		res := make([]any, 0, 2*len(v.Values)+1)
		res = append(res, "{")
		for i, vv := range v.Values {
			res = append(res, v.Keys[i], respValue(vv))
		}
		return res
	}
	return nil
}

// Memory estimates the in-memory footprint in bytes of the subtree at p.
func (d *Document) Memory(p *path.Path) (int, error) {
	v, err := d.First(p)
	if err != nil {
		return 0, err
	}
	return memory(v), nil
}

const nodeOverhead = 64

func memory(v *ir.Node) int {
	res := nodeOverhead + len(v.String)
	for _, k := range v.Keys {
		res += 16 + len(k)
	}
	for _, vv := range v.Values {
		res += 8 + memory(vv)
	}
	return res
}

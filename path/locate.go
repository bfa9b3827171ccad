package path

import (
	"github.com/signadot/jsonkv/debug"
	"github.com/signadot/jsonkv/ir"
)

// Location identifies one addressable node together with enough context
// to replace it in place. Parent is nil for the document root; for object
// members Key is set and Index is the member's position, for array
// elements Index is the element's position.
type Location struct {
	Parent *ir.Node
	Key    string
	Index  int
	Value  *ir.Node
}

// IsRoot reports whether the location is the document root.
func (l *Location) IsRoot() bool { return l.Parent == nil }

// Replace splices v into the location. The located node's identity is
// preserved so any remaining locations into the tree stay valid.
func (l *Location) Replace(v *ir.Node) {
	*l.Value = *v
}

// Locate resolves the path against root, producing matched locations in
// document order: array indices ascending, object members in insertion
// order. Zero matches is not an error; the caller decides whether absence
// is fatal. The root path always resolves to exactly one location.
func (p *Path) Locate(root *ir.Node) []Location {
	locs := []Location{{Parent: nil, Index: -1, Value: root}}
	for i := range p.segs {
		seg := &p.segs[i]
		next := make([]Location, 0, len(locs))
		for j := range locs {
			v := locs[j].Value
			if v.Type.IsLeaf() {
				continue
			}
			switch {
			case seg.Field != nil:
				if v.Type != ir.ObjectType {
					continue
				}
				if ki := v.KeyIndex(*seg.Field); ki >= 0 {
					next = append(next, Location{
						Parent: v, Key: v.Keys[ki], Index: ki, Value: v.Values[ki],
					})
				}
			case seg.Index != nil:
				if v.Type != ir.ArrayType {
					continue
				}
				idx := *seg.Index
				if idx < 0 {
					idx += len(v.Values)
				}
				if idx < 0 || idx >= len(v.Values) {
					continue
				}
				next = append(next, Location{Parent: v, Index: idx, Value: v.Values[idx]})
			case seg.Wildcard:
				switch v.Type {
				case ir.ArrayType:
					for k, vv := range v.Values {
						next = append(next, Location{Parent: v, Index: k, Value: vv})
					}
				case ir.ObjectType:
					for k, vv := range v.Values {
						next = append(next, Location{
							Parent: v, Key: v.Keys[k], Index: k, Value: vv,
						})
					}
				}
			}
		}
		locs = next
		if len(locs) == 0 {
			if debug.Path() {
				debug.Logf("locate %s: no match after %d of %d segments\n", p, i+1, len(p.segs))
			}
			return nil
		}
	}
	if debug.Path() {
		debug.Logf("locate %s: %d matches\n", p, len(locs))
	}
	return locs
}

// First returns the first location in document order, if any.
func (p *Path) First(root *ir.Node) (Location, bool) {
	locs := p.Locate(root)
	if len(locs) == 0 {
		return Location{}, false
	}
	return locs[0], true
}

package doc

import (
	"fmt"

	"github.com/signadot/jsonkv/debug"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/path"
)

// TransformResult is what a transform produces: the value to splice back
// into the located position, plus an optional side payload for values the
// transform removed rather than retained (pop).
type TransformResult struct {
	Value   *ir.Node
	Removed *ir.Node
}

// Transform rewrites a located value. It receives the value extracted
// from the tree via take-and-replace, so large subtrees move without
// cloning. A transform must not mutate its input before its last
// possible failure: on error the extracted value is restored verbatim
// and the document reads exactly as before the call.
type Transform func(v *ir.Node) (*TransformResult, error)

// ValueOp resolves p to its first location in document order, applies
// transform to the extracted value, and on success splices the result
// back at the same position. project then computes the externally
// visible result from the side payload when one was produced, or from
// the spliced value otherwise; removed reports which of the two it
// received, since a removed value can look like anything, an empty
// array included. The splice is the sole externally visible mutation
// point; a failed transform leaves no partial write behind.
func ValueOp[T any](d *Document, p *path.Path, transform Transform, project func(v *ir.Node, removed bool) (T, error)) (T, error) {
	var zero T
	loc, ok := p.First(d.Root)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	if debug.Op() {
		debug.Logf("value op at %s on %s\n", p, debug.Doc{Node: loc.Value})
	}
	taken := loc.Value.Take()
	res, err := transform(taken)
	if err != nil {
		loc.Replace(taken)
		return zero, err
	}
	loc.Replace(res.Value)
	if res.Removed != nil {
		return project(res.Removed, true)
	}
	return project(loc.Value, false)
}

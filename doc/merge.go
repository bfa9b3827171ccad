package doc

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
	"github.com/signadot/jsonkv/path"
)

// Merge applies an RFC 7386 merge patch to the value at p. The located
// value is rendered to JSON, merged, re-parsed, and spliced back through
// the mutation protocol, so a bad patch leaves the document untouched.
func Merge(d *Document, p *path.Path, patch []byte) error {
	if _, err := parse.Parse(patch); err != nil {
		return err
	}
	transform := func(v *ir.Node) (*TransformResult, error) {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(v, buf); err != nil {
			return nil, err
		}
		merged, err := jsonpatch.MergePatch(buf.Bytes(), patch)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", parse.ErrParse, err)
		}
		res, err := parse.Parse(merged)
		if err != nil {
			return nil, err
		}
		return &TransformResult{Value: res}, nil
	}
	_, err := ValueOp(d, p, transform, func(*ir.Node, bool) (struct{}, error) {
		return struct{}{}, nil
	})
	return err
}

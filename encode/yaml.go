package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/jsonkv/ir"
)

func encodeYAML(node *ir.Node, w io.Writer) error {
	v := toAny(node)
	d, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// toAny lowers a tree into goccy/go-yaml's ordered representation so
// object member order survives the YAML round trip.
func toAny(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return int64(0)
	case ir.StringType:
		return node.String
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toAny(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Values))
		for i, v := range node.Values {
			res[i] = yaml.MapItem{Key: node.Keys[i], Value: toAny(v)}
		}
		return res
	}
	return nil
}

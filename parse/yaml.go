package parse

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/signadot/jsonkv/ir"
)

func (p *parser) parseYAML(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return p.fromAny(v, 0)
}

func (p *parser) fromAny(v any, depth int) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromFloat(float64(x)), nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case []any:
		if depth >= p.maxDepth {
			return nil, fmt.Errorf("%w (max %d)", ErrTooDeep, p.maxDepth)
		}
		res := ir.EmptyArray()
		for _, e := range x {
			n, err := p.fromAny(e, depth+1)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, n)
		}
		return res, nil
	case yaml.MapSlice:
		if depth >= p.maxDepth {
			return nil, fmt.Errorf("%w (max %d)", ErrTooDeep, p.maxDepth)
		}
		res := ir.EmptyObject()
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			n, err := p.fromAny(item.Value, depth+1)
			if err != nil {
				return nil, err
			}
			res.Set(key, n)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: unsupported yaml value %T", ErrParse, v)
	}
}

package codec

import (
	"fmt"
	"math"

	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
)

// Version 2 layout: like version 3 but with a single number tag carrying
// an IEEE float payload; the engine of that era had no integer
// representation.
const (
	v2TagNull   byte = 0x00
	v2TagBool   byte = 0x01
	v2TagNumber byte = 0x02
	v2TagString byte = 0x03
	v2TagArray  byte = 0x04
	v2TagObject byte = 0x05
)

func decodeV2(r *reader) (*ir.Node, error) {
	return decodeV2Node(r, 0)
}

func decodeV2Node(r *reader, depth int) (*ir.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d", ErrDecode, maxDepth)
	}
	tag, err := r.u8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case v2TagNull:
		return ir.Null(), nil
	case v2TagBool:
		b, err := r.u8()
		if err != nil {
			return nil, err
		}
		if b > 1 {
			return nil, fmt.Errorf("%w: bad bool byte 0x%02x", ErrDecode, b)
		}
		return ir.FromBool(b == 1), nil
	case v2TagNumber:
		bits, err := r.u64()
		if err != nil {
			return nil, err
		}
		return v2Number(math.Float64frombits(bits)), nil
	case v2TagString:
		s, err := r.str()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case v2TagArray:
		n, err := r.count()
		if err != nil {
			return nil, err
		}
		res := ir.EmptyArray()
		for range n {
			v, err := decodeV2Node(r, depth+1)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, v)
		}
		return res, nil
	case v2TagObject:
		n, err := r.count()
		if err != nil {
			return nil, err
		}
		res := ir.EmptyObject()
		for range n {
			key, err := r.str()
			if err != nil {
				return nil, err
			}
			v, err := decodeV2Node(r, depth+1)
			if err != nil {
				return nil, err
			}
			res.Set(key, v)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: bad type tag 0x%02x", ErrDecode, tag)
}

// v2Number restores the integer representation a version 2 writer lost:
// integral floats in the exactly-representable range come back as
// integers, matching what that engine produced for user-supplied ints.
func v2Number(f float64) *ir.Node {
	const maxExact = int64(1) << 53
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		i := int64(f)
		if i > -maxExact && i < maxExact {
			return ir.FromInt(i)
		}
	}
	return ir.FromFloat(f)
}

// Version 1 layout: the whole document as one length-prefixed JSON text.
func decodeV1(r *reader) (*ir.Node, error) {
	text, err := r.str()
	if err != nil {
		return nil, err
	}
	node, err := parse.Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: embedded document: %v", ErrDecode, err)
	}
	return node, nil
}

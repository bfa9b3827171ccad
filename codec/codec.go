// Package codec persists ir trees as dense versioned binary. The encoder
// always writes the current version; decoders for every previously
// shipped version are retained and dispatched by the leading version
// marker. Decoders are independent of one another so legacy layouts stay
// frozen.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/signadot/jsonkv/ir"
)

// CurrentVersion is the format version written by Encode. Decoders exist
// for all versions in [1, CurrentVersion].
const CurrentVersion = 3

// Node type tags of the version 3 layout.
const (
	tagNull   byte = 0x00
	tagBool   byte = 0x01
	tagInt    byte = 0x02
	tagFloat  byte = 0x03
	tagString byte = 0x04
	tagArray  byte = 0x05
	tagObject byte = 0x06
)

const maxDepth = 128

// Encode serializes node at the current format version: a one-byte
// version marker followed by the depth-first pre-order tagged tree.
func Encode(node *ir.Node) []byte {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte(CurrentVersion)
	encodeNode(buf, node)
	return buf.Bytes()
}

func encodeNode(buf *bytes.Buffer, node *ir.Node) {
	switch node.Type {
	case ir.NullType:
		buf.WriteByte(tagNull)
	case ir.BoolType:
		buf.WriteByte(tagBool)
		if node.Bool {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case ir.NumberType:
		if node.Int64 != nil {
			buf.WriteByte(tagInt)
			writeUint64(buf, uint64(*node.Int64))
			return
		}
		var f float64
		if node.Float64 != nil {
			f = *node.Float64
		}
		buf.WriteByte(tagFloat)
		writeUint64(buf, math.Float64bits(f))
	case ir.StringType:
		buf.WriteByte(tagString)
		writeString(buf, node.String)
	case ir.ArrayType:
		buf.WriteByte(tagArray)
		writeUint32(buf, uint32(len(node.Values)))
		for _, v := range node.Values {
			encodeNode(buf, v)
		}
	case ir.ObjectType:
		buf.WriteByte(tagObject)
		writeUint32(buf, uint32(len(node.Values)))
		for i, v := range node.Values {
			writeString(buf, node.Keys[i])
			encodeNode(buf, v)
		}
	}
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

// decoders maps a format version to its decoder. Each entry inverts one
// shipped layout and never delegates to another entry.
var decoders = map[byte]func(*reader) (*ir.Node, error){
	1: decodeV1,
	2: decodeV2,
	3: decodeV3,
}

// Decode reconstructs a tree from bytes produced by any shipped format
// version. Truncated input fails with ErrShortRead; any other malformed
// byte fails with ErrDecode.
func Decode(data []byte) (*ir.Node, error) {
	r := &reader{data: data}
	version, err := r.u8()
	if err != nil {
		return nil, err
	}
	dec, ok := decoders[version]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrDecode, version)
	}
	node, err := dec(r)
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrDecode, len(r.data)-r.pos)
	}
	return node, nil
}

// DecodeVersion decodes unmarked bytes whose version the host supplies
// out of band.
func DecodeVersion(data []byte, version int) (*ir.Node, error) {
	if version < 1 || version > CurrentVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrDecode, version)
	}
	r := &reader{data: data}
	return decoders[byte(version)](r)
}

func decodeV3(r *reader) (*ir.Node, error) {
	return decodeV3Node(r, 0)
}

func decodeV3Node(r *reader, depth int) (*ir.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d", ErrDecode, maxDepth)
	}
	tag, err := r.u8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNull:
		return ir.Null(), nil
	case tagBool:
		b, err := r.u8()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return ir.FromBool(false), nil
		case 1:
			return ir.FromBool(true), nil
		}
		return nil, fmt.Errorf("%w: bad bool byte 0x%02x", ErrDecode, b)
	case tagInt:
		v, err := r.u64()
		if err != nil {
			return nil, err
		}
		return ir.FromInt(int64(v)), nil
	case tagFloat:
		v, err := r.u64()
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(math.Float64frombits(v)), nil
	case tagString:
		s, err := r.str()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case tagArray:
		n, err := r.count()
		if err != nil {
			return nil, err
		}
		res := ir.EmptyArray()
		for range n {
			v, err := decodeV3Node(r, depth+1)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, v)
		}
		return res, nil
	case tagObject:
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
			v, err := decodeV3Node(r, depth+1)
			if err != nil {
				return nil, err
			}
			res.Set(key, v)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: bad type tag 0x%02x", ErrDecode, tag)
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) u8() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrShortRead, r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) u32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d", ErrShortRead, r.pos)
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, fmt.Errorf("%w: need 8 bytes at offset %d", ErrShortRead, r.pos)
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if int(n) > len(r.data)-r.pos {
		return "", fmt.Errorf("%w: string of %d bytes at offset %d", ErrShortRead, n, r.pos)
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// count reads a container element count and rejects counts that cannot
// fit in the remaining input, so a corrupt count fails fast instead of
// driving a huge allocation loop.
func (r *reader) count() (int, error) {
	n, err := r.u32()
	if err != nil {
		return 0, err
	}
	if int64(n) > int64(len(r.data)-r.pos) {
		return 0, fmt.Errorf("%w: count %d overflows %d remaining bytes",
			ErrDecode, n, len(r.data)-r.pos)
	}
	return int(n), nil
}

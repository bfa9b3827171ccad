// Package encode renders ir trees to text. Rendering is a single forward
// streaming pass over the tree; nothing is buffered beyond the
// destination writer. With no options the output is compact, with no
// inserted whitespace.
package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/signadot/jsonkv/format"
	"github.com/signadot/jsonkv/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent     string
	newline    string
	space      string
	hasIndent  bool
	hasNewline bool

	depth    int
	hasValue []bool

	format format.Format
	Color  func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() {
		return encodeYAML(node, w)
	}
	return encode(node, w, es)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return es.writeValue(w, node.Type, "null")
	case ir.BoolType:
		v := "false"
		if node.Bool {
			v = "true"
		}
		return es.writeValue(w, node.Type, v)
	case ir.NumberType:
		if node.Float64 != nil {
			f := *node.Float64
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: non-finite number", ErrEncoding)
			}
		}
		return es.writeValue(w, node.Type, node.NumberLiteral())
	case ir.StringType:
		return es.writeValue(w, node.Type, quoteJSON(node.String))
	case ir.ArrayType:
		if err := es.enter(w, "["); err != nil {
			return err
		}
		for _, v := range node.Values {
			if err := es.beforeElement(w); err != nil {
				return err
			}
			if err := encode(v, w, es); err != nil {
				return err
			}
		}
		return es.leave(w, "]")
	case ir.ObjectType:
		if err := es.enter(w, "{"); err != nil {
			return err
		}
		for i, v := range node.Values {
			if err := es.beforeElement(w); err != nil {
				return err
			}
			if err := es.writeKey(w, quoteJSON(node.Keys[i])); err != nil {
				return err
			}
			if err := encode(v, w, es); err != nil {
				return err
			}
		}
		return es.leave(w, "}")
	}
	return fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
}

// enter opens a container: depth grows and the new level starts with its
// has-value flag clear so empty containers render without interior
// whitespace.
func (es *EncState) enter(w io.Writer, bracket string) error {
	es.depth++
	es.hasValue = append(es.hasValue, false)
	return es.write(w, es.color(ir.ObjectType, SepColor, bracket))
}

func (es *EncState) leave(w io.Writer, bracket string) error {
	hadValue := es.hasValue[len(es.hasValue)-1]
	es.hasValue = es.hasValue[:len(es.hasValue)-1]
	es.depth--
	if hadValue {
		if err := es.newLine(w); err != nil {
			return err
		}
	}
	return es.write(w, es.color(ir.ObjectType, SepColor, bracket))
}

func (es *EncState) beforeElement(w io.Writer) error {
	if es.hasValue[len(es.hasValue)-1] {
		if err := es.write(w, ","); err != nil {
			return err
		}
	}
	es.hasValue[len(es.hasValue)-1] = true
	return es.newLine(w)
}

func (es *EncState) writeKey(w io.Writer, quoted string) error {
	if err := es.write(w, es.color(ir.ObjectType, FieldColor, quoted)); err != nil {
		return err
	}
	if err := es.write(w, ":"); err != nil {
		return err
	}
	if es.space != "" {
		return es.write(w, es.space)
	}
	return nil
}

func (es *EncState) writeValue(w io.Writer, t ir.Type, v string) error {
	return es.write(w, es.color(t, ValueColor, v))
}

func (es *EncState) newLine(w io.Writer) error {
	if es.hasNewline {
		if err := es.write(w, es.newline); err != nil {
			return err
		}
	}
	if es.hasIndent && es.indent != "" {
		if err := es.write(w, strings.Repeat(es.indent, es.depth)); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

const hexDigits = "0123456789abcdef"

func quoteJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[r>>4])
				b.WriteByte(hexDigits[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Package parse ingests external text into ir trees. JSON is decoded at
// the token level so object member order survives and numbers keep their
// integral or floating representation; YAML goes through goccy/go-yaml
// with ordered maps.
package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/jsonkv/format"
	"github.com/signadot/jsonkv/ir"
)

const DefaultMaxDepth = 128

type ParseOption func(*parser)

func ParseFormat(f format.Format) ParseOption {
	return func(p *parser) { p.format = f }
}

// MaxDepth bounds container nesting during decoding.
func MaxDepth(n int) ParseOption {
	return func(p *parser) { p.maxDepth = n }
}

type parser struct {
	format   format.Format
	maxDepth int
}

func Parse(data []byte, opts ...ParseOption) (*ir.Node, error) {
	p := &parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	switch p.format {
	case format.JSONFormat:
		return p.parseJSON(data)
	case format.YAMLFormat:
		return p.parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, p.format)
	}
}

func (p *parser) parseJSON(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	node, err := p.value(dec, tok, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrParse)
	}
	return node, nil
}

func (p *parser) value(dec *json.Decoder, tok json.Token, depth int) (*ir.Node, error) {
	switch t := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case json.Number:
		return number(t.String())
	case json.Delim:
		if depth >= p.maxDepth {
			return nil, fmt.Errorf("%w (max %d)", ErrTooDeep, p.maxDepth)
		}
		switch t {
		case '[':
			return p.array(dec, depth+1)
		case '{':
			return p.object(dec, depth+1)
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
}

func (p *parser) array(dec *json.Decoder, depth int) (*ir.Node, error) {
	res := ir.EmptyArray()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		v, err := p.value(dec, tok, depth)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, v)
	}
	if _, err := dec.Token(); err != nil { // closing ]
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return res, nil
}

func (p *parser) object(dec *json.Decoder, depth int) (*ir.Node, error) {
	res := ir.EmptyObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrParse)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		v, err := p.value(dec, valTok, depth)
		if err != nil {
			return nil, err
		}
		// duplicate keys collapse to the last occurrence
		res.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing }
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return res, nil
}

func number(lit string) (*ir.Node, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return ir.FromInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrParse, lit)
	}
	return ir.FromFloat(f), nil
}

// Package path compiles document path expressions and resolves them
// against ir trees.
//
// The compiled grammar is root-anchored:
//   - "$" → the whole document
//   - ".name" or ["name"] / ['name'] → object member
//   - "[0]", "[-1]" → array index, negative counts from the end
//   - ".*" or "[*]" → wildcard over an object's values or an array's
//     elements, in document order
//
// Legacy expressions (bare ".", leading ".", bare member names) are
// accepted after rewriting with Normalize, a pure string transform the
// caller applies once per invocation.
package path

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one compiled selector: exactly one of Field, Index, or
// Wildcard is set.
type Segment struct {
	Field    *string
	Index    *int
	Wildcard bool
}

func (s *Segment) String() string {
	switch {
	case s.Wildcard:
		return "[*]"
	case s.Field != nil:
		if quoteField(*s.Field) {
			return "[" + strconv.Quote(*s.Field) + "]"
		}
		return "." + *s.Field
	case s.Index != nil:
		return fmt.Sprintf("[%d]", *s.Index)
	}
	return ""
}

type Path struct {
	raw  string
	segs []Segment
}

const DefaultMaxDepth = 128

type CompileOption func(*compiler)

// MaxDepth bounds the number of selectors a path may compile to.
func MaxDepth(n int) CompileOption {
	return func(c *compiler) { c.maxDepth = n }
}

// Normalize rewrites a legacy path to its root-anchored form:
// "." becomes "$", a leading "." gets a "$" prefix, and anything else not
// starting with "$" gets a "$." prefix.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "$") {
		return raw
	}
	if raw == "." {
		return "$"
	}
	if strings.HasPrefix(raw, ".") {
		return "$" + raw
	}
	return "$." + raw
}

type compiler struct {
	in       string
	pos      int
	maxDepth int
}

// Compile parses a root-anchored path expression. Compilation is linear
// in the expression length and fails with ErrParse on malformed syntax.
func Compile(raw string, opts ...CompileOption) (*Path, error) {
	c := &compiler{in: raw, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.HasPrefix(raw, "$") {
		return nil, fmt.Errorf("%w: path must begin with $, got %q", ErrParse, raw)
	}
	c.pos = 1
	p := &Path{raw: raw}
	for c.pos < len(c.in) {
		seg, err := c.segment()
		if err != nil {
			return nil, err
		}
		p.segs = append(p.segs, seg)
		if len(p.segs) > c.maxDepth {
			return nil, fmt.Errorf("%w (max %d)", ErrTooDeep, c.maxDepth)
		}
	}
	return p, nil
}

func MustCompile(raw string) *Path {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (c *compiler) segment() (Segment, error) {
	switch c.in[c.pos] {
	case '.':
		c.pos++
		return c.member()
	case '[':
		c.pos++
		return c.bracket()
	default:
		return Segment{}, fmt.Errorf("%w: unexpected %q at offset %d",
			ErrParse, c.in[c.pos], c.pos)
	}
}

func (c *compiler) member() (Segment, error) {
	if c.pos < len(c.in) && c.in[c.pos] == '*' {
		c.pos++
		return Segment{Wildcard: true}, nil
	}
	// normalized legacy paths can produce ".[" sequences
	if c.pos < len(c.in) && c.in[c.pos] == '[' {
		c.pos++
		return c.bracket()
	}
	start := c.pos
	for c.pos < len(c.in) && c.in[c.pos] != '.' && c.in[c.pos] != '[' {
		c.pos++
	}
	if c.pos == start {
		return Segment{}, fmt.Errorf("%w: empty member name at offset %d", ErrParse, start)
	}
	name := c.in[start:c.pos]
	return Segment{Field: &name}, nil
}

func (c *compiler) bracket() (Segment, error) {
	if c.pos >= len(c.in) {
		return Segment{}, fmt.Errorf("%w: unterminated bracket", ErrParse)
	}
	switch ch := c.in[c.pos]; {
	case ch == '*':
		c.pos++
		if err := c.expect(']'); err != nil {
			return Segment{}, err
		}
		return Segment{Wildcard: true}, nil
	case ch == '\'' || ch == '"':
		name, err := c.quoted(ch)
		if err != nil {
			return Segment{}, err
		}
		if err := c.expect(']'); err != nil {
			return Segment{}, err
		}
		return Segment{Field: &name}, nil
	default:
		start := c.pos
		if ch == '-' {
			c.pos++
		}
		for c.pos < len(c.in) && c.in[c.pos] >= '0' && c.in[c.pos] <= '9' {
			c.pos++
		}
		i, err := strconv.Atoi(c.in[start:c.pos])
		if err != nil {
			return Segment{}, fmt.Errorf("%w: bad index at offset %d", ErrParse, start)
		}
		if err := c.expect(']'); err != nil {
			return Segment{}, err
		}
		return Segment{Index: &i}, nil
	}
}

func (c *compiler) quoted(quote byte) (string, error) {
	c.pos++
	var b strings.Builder
	for c.pos < len(c.in) {
		ch := c.in[c.pos]
		switch ch {
		case quote:
			c.pos++
			return b.String(), nil
		case '\\':
			c.pos++
			if c.pos >= len(c.in) {
				return "", fmt.Errorf("%w: unterminated escape", ErrParse)
			}
			b.WriteByte(c.in[c.pos])
			c.pos++
		default:
			b.WriteByte(ch)
			c.pos++
		}
	}
	return "", fmt.Errorf("%w: unterminated string in bracket", ErrParse)
}

func (c *compiler) expect(ch byte) error {
	if c.pos >= len(c.in) || c.in[c.pos] != ch {
		return fmt.Errorf("%w: expected %q at offset %d", ErrParse, ch, c.pos)
	}
	c.pos++
	return nil
}

func quoteField(field string) bool {
	if field == "" {
		return true
	}
	return strings.ContainsAny(field, ".[]'\" *")
}

// String renders the canonical root-anchored form.
func (p *Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for i := range p.segs {
		b.WriteString(p.segs[i].String())
	}
	return b.String()
}

// Raw returns the expression the path was compiled from.
func (p *Path) Raw() string { return p.raw }

// IsRoot reports whether the path addresses the whole document.
func (p *Path) IsRoot() bool { return len(p.segs) == 0 }

// Len returns the number of compiled selectors.
func (p *Path) Len() int { return len(p.segs) }

// Split separates the path into its parent path and last selector.
// ok is false for the root path, which has neither.
func (p *Path) Split() (parent *Path, last *Segment, ok bool) {
	if len(p.segs) == 0 {
		return nil, nil, false
	}
	parent = &Path{segs: p.segs[:len(p.segs)-1]}
	parent.raw = parent.String()
	return parent, &p.segs[len(p.segs)-1], true
}

// Package doc holds the document type and the generic
// locate-transform-commit protocol every write operation goes through.
package doc

import (
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/parse"
)

// Document is one root value bound to a store key. All mutation happens
// in place on this single owned tree.
type Document struct {
	Root *ir.Node
}

func New(root *ir.Node) *Document {
	return &Document{Root: root}
}

func FromText(data []byte, opts ...parse.ParseOption) (*Document, error) {
	root, err := parse.Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

// SetOption governs whether a SET may create, must replace, or must not
// overwrite its target.
type SetOption int

const (
	SetAny SetOption = iota
	SetMustExist
	SetMustNotExist
)

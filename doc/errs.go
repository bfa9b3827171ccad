package doc

import (
	"errors"
	"fmt"

	"github.com/signadot/jsonkv/arrindex"
	"github.com/signadot/jsonkv/ir"
)

var (
	ErrPathNotFound     = errors.New("path does not exist")
	ErrTypeMismatch     = errors.New("wrong type of path value")
	ErrIndexOutOfBounds = arrindex.ErrOutOfBounds
)

func typeErr(expected string, found *ir.Node) error {
	return fmt.Errorf("%w: expected %s but found %s",
		ErrTypeMismatch, expected, found.TypeName())
}

func literalErr(expected string, found *ir.Node) error {
	return fmt.Errorf("%w: expected %s value but found %s",
		ErrTypeMismatch, expected, found.TypeName())
}

package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/jsonkv/format"
)

var (
	ErrParse     = errors.New("parse error")
	ErrTooDeep   = fmt.Errorf("%w: document too deep", ErrParse)
	ErrBadFormat = format.ErrBadFormat
)

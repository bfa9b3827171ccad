package path

import (
	"errors"
	"fmt"
)

var (
	ErrParse   = errors.New("path parse error")
	ErrTooDeep = fmt.Errorf("%w: too many path segments", ErrParse)
)

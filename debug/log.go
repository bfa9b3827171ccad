package debug

import (
	"fmt"
	"os"

	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/ir"
)

// Doc wraps an ir node so Logf renders it as a document.
type Doc struct{ *ir.Node }

func (y Doc) String() string {
	if y.Node == nil {
		return "<nil>"
	}
	return encode.MustString(y.Node)
}

func Logf(msg string, args ...any) {
	for i := range args {
		if n, ok := args[i].(*ir.Node); ok {
			args[i] = Doc{n}
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

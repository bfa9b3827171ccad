package codec

import (
	"fmt"

	"github.com/signadot/jsonkv/debug"
)

// LoadAux reads store-wide auxiliary metadata written ahead of per-key
// documents: a length-prefixed banner string. Nothing is retained after
// validation; the hook exists so loads of historical data that carry the
// banner succeed. There is no corresponding save hook.
func LoadAux(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	r := &reader{data: data}
	banner, err := r.str()
	if err != nil {
		return err
	}
	if r.pos != len(r.data) {
		return fmt.Errorf("%w: %d trailing aux bytes", ErrDecode, len(r.data)-r.pos)
	}
	if debug.Codec() {
		debug.Logf("aux banner: %q\n", banner)
	}
	return nil
}

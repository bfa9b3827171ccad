package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Path  bool
	Op    bool
	Codec bool
	Store bool
}

var d *debug

func init() {
	d = &debug{}
	d.Path = boolEnv("JSONKV_DEBUG_PATH")
	d.Op = boolEnv("JSONKV_DEBUG_OP")
	d.Codec = boolEnv("JSONKV_DEBUG_CODEC")
	d.Store = boolEnv("JSONKV_DEBUG_STORE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Path() bool {
	return d.Path
}
func Op() bool {
	return d.Op
}
func Codec() bool {
	return d.Codec
}
func Store() bool {
	return d.Store
}

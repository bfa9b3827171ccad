package jsonkv

import (
	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders from and to with stable formatting and returns a unified
// text diff between them. An empty string means the documents render
// identically.
func Diff(from, to *ir.Node) string {
	fromText := render(from)
	toText := render(to)
	if fromText == toText {
		return ""
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(fromText, toText, true)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	return diffCfg.DiffPrettyText(diffs)
}

func render(n *ir.Node) string {
	return encode.MustString(n,
		encode.Indent("  "),
		encode.Newline("\n"),
		encode.Space(" "),
	)
}

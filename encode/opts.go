package encode

import "github.com/signadot/jsonkv/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent sets the per-level indentation string. Unset means no
// indentation is inserted.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s; es.hasIndent = true }
}

// Newline sets the string emitted before each element. Unset means
// elements are not separated by line breaks.
func Newline(s string) EncodeOption {
	return func(es *EncState) { es.newline = s; es.hasNewline = true }
}

// Space sets the string emitted after an object key's colon.
func Space(s string) EncodeOption {
	return func(es *EncState) { es.space = s }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

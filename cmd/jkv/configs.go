package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsonkv/encode"
	"github.com/signadot/jsonkv/format"
	"github.com/signadot/jsonkv/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	DB      string `cli:"name=db desc='store file (default jsonkv.db)'"`
	Color   bool   `cli:"name=color desc='encode with color'"`
	Compact bool   `cli:"name=compact desc='output without whitespace'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) dbFile() string {
	if cfg.DB != "" {
		return cfg.DB
	}
	return "jsonkv.db"
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	var fmat format.Format
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{
		parse.ParseFormat(fmat),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmat format.Format
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
	}
	if !cfg.Compact {
		res = append(res,
			encode.Indent("  "),
			encode.Newline("\n"),
			encode.Space(" "))
	}
	return cfg.withColors(res, w)
}

// withColors appends color options to res when they would be honored:
// only the JSON encoder colors its output, and absent an explicit
// -color flag only terminals get color.
func (cfg *MainConfig) withColors(res []encode.EncodeOption, w io.Writer) []encode.EncodeOption {
	if !encode.FormatFromOpts(res...).IsJSON() {
		return res
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	NX bool `cli:"name=nx desc='only set if the path does not exist'"`
	XX bool `cli:"name=xx desc='only set if the path already exists'"`

	Set *cli.Command
}

type DelConfig struct {
	*MainConfig

	Del *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Keys *cli.Command
}

type TypeConfig struct {
	*MainConfig

	Type *cli.Command
}

type AppendConfig struct {
	*MainConfig

	Append *cli.Command
}

type PopConfig struct {
	*MainConfig

	Pop *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

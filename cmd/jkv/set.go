package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
	"github.com/signadot/jsonkv/doc"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a key, a path, and a value", cli.ErrUsage)
	}
	if cfg.NX && cfg.XX {
		return fmt.Errorf("%w: -nx and -xx are mutually exclusive", cli.ErrUsage)
	}
	key, path := args[0], args[1]
	value, err := valueArg(cc, args[2])
	if err != nil {
		return err
	}
	opt := doc.SetAny
	switch {
	case cfg.NX:
		opt = doc.SetMustNotExist
	case cfg.XX:
		opt = doc.SetMustExist
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	applied, err := jsonkv.Set(s, key, path, value, opt, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error setting %q at %s: %w", key, path, err)
	}
	if !applied {
		fmt.Fprintln(cc.Out, "(nothing set)")
		return nil
	}
	if err := saveStore(cfg.MainConfig, s); err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, "OK")
	return nil
}

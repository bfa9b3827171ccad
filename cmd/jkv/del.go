package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
)

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		cfg.Del.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: del requires a key and an optional path", cli.ErrUsage)
	}
	key, path := args[0], "$"
	if len(args) == 2 {
		path = args[1]
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	n, err := jsonkv.Del(s, key, path)
	if err != nil {
		return fmt.Errorf("error deleting %q at %s: %w", key, path, err)
	}
	if n > 0 {
		if err := saveStore(cfg.MainConfig, s); err != nil {
			return err
		}
	}
	fmt.Fprintln(cc.Out, n)
	return nil
}

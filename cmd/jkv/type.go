package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
)

func typeOf(cfg *TypeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Type.Parse(cc, args)
	if err != nil {
		cfg.Type.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: type requires a key and an optional path", cli.ErrUsage)
	}
	key, path := args[0], "$"
	if len(args) == 2 {
		path = args[1]
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	name, ok, err := jsonkv.Type(s, key, path)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cc.Out, "(none)")
		return nil
	}
	fmt.Fprintln(cc.Out, name)
	return nil
}

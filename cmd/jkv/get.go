package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key", cli.ErrUsage)
	}
	key := args[0]
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	text, ok, err := jsonkv.Get(s, key, cfg.encOpts(cc.Out), args[1:]...)
	if err != nil {
		return fmt.Errorf("error getting %q: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("no such key %q", key)
	}
	fmt.Fprintln(cc.Out, text)
	return nil
}

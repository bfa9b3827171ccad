package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	keys := args
	if len(keys) == 0 {
		keys = s.Keys()
	}
	for i, key := range keys {
		text, ok, err := jsonkv.Get(s, key, cfg.encOpts(cc.Out))
		if err != nil {
			return fmt.Errorf("error dumping %q: %w", key, err)
		}
		if !ok {
			return fmt.Errorf("no such key %q", key)
		}
		if i > 0 {
			fmt.Fprintln(cc.Out)
		}
		fmt.Fprintf(cc.Out, "%s:\n%s\n", key, text)
	}
	return nil
}

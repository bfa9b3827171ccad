package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: keys takes no arguments", cli.ErrUsage)
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	for _, key := range s.Keys() {
		fmt.Fprintln(cc.Out, key)
	}
	return nil
}

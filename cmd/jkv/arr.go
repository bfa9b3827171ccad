package main

import (
	"fmt"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
)

func arrAppend(cfg *AppendConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Append.Parse(cc, args)
	if err != nil {
		cfg.Append.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: append requires a key, a path, and values", cli.ErrUsage)
	}
	key, path := args[0], args[1]
	items := make([][]byte, 0, len(args)-2)
	for _, arg := range args[2:] {
		item, err := valueArg(cc, arg)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	n, err := jsonkv.ArrAppend(s, key, path, items...)
	if err != nil {
		return fmt.Errorf("error appending to %q at %s: %w", key, path, err)
	}
	if err := saveStore(cfg.MainConfig, s); err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, n)
	return nil
}

func arrPop(cfg *PopConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Pop.Parse(cc, args)
	if err != nil {
		cfg.Pop.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: pop requires a key, a path, and an optional index", cli.ErrUsage)
	}
	key, path := args[0], args[1]
	index := -1
	if len(args) == 3 {
		index, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: bad index %q", cli.ErrUsage, args[2])
		}
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	popped, ok, err := jsonkv.ArrPop(s, key, path, index)
	if err != nil {
		return fmt.Errorf("error popping %q at %s: %w", key, path, err)
	}
	if !ok {
		fmt.Fprintln(cc.Out, "(empty array)")
		return nil
	}
	if err := saveStore(cfg.MainConfig, s); err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, popped)
	return nil
}

package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonkv"
	"github.com/signadot/jsonkv/doc"
	"github.com/signadot/jsonkv/ir"
	"github.com/signadot/jsonkv/store"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two keys", cli.ErrUsage)
	}
	s, err := openStore(cfg.MainConfig)
	if err != nil {
		return err
	}
	from, err := rootOf(s, args[0])
	if err != nil {
		return err
	}
	to, err := rootOf(s, args[1])
	if err != nil {
		return err
	}
	text := jsonkv.Diff(from, to)
	if text == "" {
		return nil
	}
	fmt.Fprint(cc.Out, text)
	return cli.ExitCodeErr(1)
}

func rootOf(s *store.Store, key string) (*ir.Node, error) {
	var res *ir.Node
	err := s.View(key, func(d *doc.Document) error {
		res = d.Root.Clone()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("no such key %q", key)
	}
	return res, nil
}

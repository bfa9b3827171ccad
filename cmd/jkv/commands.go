package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "jkv").
		WithSynopsis("jkv [opts] command [opts]").
		WithDescription("jkv is a tool for working with keyed json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jkvMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			DelCommand(cfg),
			KeysCommand(cfg),
			TypeCommand(cfg),
			AppendCommand(cfg),
			PopCommand(cfg),
			DumpCommand(cfg),
			DiffCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <key> [paths]").
		WithDescription("get document elements from the store").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("set").
		WithAliases("s").
		WithSynopsis("set [-nx|-xx] <key> <path> <value|->").
		WithDescription("set a document element in the store").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func DelCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DelConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("del").
		WithAliases("d", "rm").
		WithSynopsis("del <key> [path]").
		WithDescription("delete a document element or a whole key").
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
	cfg.Del = cmd
	return cmd
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("keys").
		WithAliases("k", "ls").
		WithSynopsis("keys").
		WithDescription("list the keys in the store").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
	cfg.Keys = cmd
	return cmd
}

func TypeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypeConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("type").
		WithAliases("t", "ty").
		WithSynopsis("type <key> [path]").
		WithDescription("report the type of a document element").
		WithRun(func(cc *cli.Context, args []string) error {
			return typeOf(cfg, cc, args)
		})
	cfg.Type = cmd
	return cmd
}

func AppendCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AppendConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("append").
		WithAliases("a", "ap").
		WithSynopsis("append <key> <path> <value> [values]").
		WithDescription("append values to an array in a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return arrAppend(cfg, cc, args)
		})
	cfg.Append = cmd
	return cmd
}

func PopCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PopConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("pop").
		WithAliases("p").
		WithSynopsis("pop <key> <path> [index]").
		WithDescription("pop an element from an array in a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return arrPop(cfg, cc, args)
		})
	cfg.Pop = cmd
	return cmd
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("dump").
		WithSynopsis("dump [keys]").
		WithDescription("dump store documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("di").
		WithSynopsis("diff <key> <key>").
		WithDescription("diff two store documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

package main

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/signadot/jsonkv/store"

	"github.com/scott-cotton/cli"
)

// openStore loads the store file if it exists and starts empty
// otherwise. Commands that mutate the store follow up with saveStore.
func openStore(cfg *MainConfig) (*store.Store, error) {
	s := store.New(store.Register())
	err := s.LoadFile(cfg.dbFile())
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func saveStore(cfg *MainConfig, s *store.Store) error {
	return s.SaveFile(cfg.dbFile())
}

// valueArg reads a JSON value argument, with "-" meaning stdin.
func valueArg(cc *cli.Context, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	var r io.Reader = cc.In
	if r == nil {
		r = os.Stdin
	}
	return io.ReadAll(r)
}

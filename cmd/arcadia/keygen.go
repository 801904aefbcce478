package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/status-im/arcadia/chain/types"
)

var ErrKeyFileExists = errors.New("key file already exists, use --force to overwrite")

func keygen(cCtx *cli.Context) error {
	path := cCtx.String(KeygenOutFlag)
	if _, err := os.Stat(path); err == nil && !cCtx.Bool(KeygenForceFlag) {
		return fmt.Errorf("%s: %w", path, ErrKeyFileExists)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dataDirFileMode); err != nil {
			return err
		}
	}

	keypair, err := types.NewRandomKeypair()
	if err != nil {
		return err
	}
	if err := types.SaveKeypairFile(path, keypair); err != nil {
		return err
	}
	fmt.Fprintf(cCtx.App.Writer, "wrote %s\naddress: %s\n", path, keypair.PublicKey())
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/cli/prompt"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
	"github.com/ava-labs/collectiblevm/utils"
)

var (
	_ Cmd = (*keyCreateCmd)(nil)
	_ Cmd = (*keyImportCmd)(nil)
	_ Cmd = (*addressCmd)(nil)
	_ Cmd = (*setKeyCmd)(nil)
	_ Cmd = (*endpointCmd)(nil)
)

func printAddress(label string, addr codec.Address) {
	utils.Outf(
		"{{cyan}}%s:{{/}} %s {{cyan}}bech32:{{/}} %s\n",
		label,
		addr,
		codec.MustAddressBech32(consts.HRP, addr),
	)
}

type keyCreateCmd struct {
	cmd *argparse.Command
}

func (c *keyCreateCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("key-create", "Creates a new private key and stores it in the keystore")
}

func (c *keyCreateCmd) Run(_ context.Context, e *Env) error {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return err
	}
	addr, err := e.handler.StoreKey(priv)
	if err != nil {
		return err
	}
	printAddress("created address", addr)
	return nil
}

func (c *keyCreateCmd) Happened() bool {
	return c.cmd.Happened()
}

type keyImportCmd struct {
	cmd *argparse.Command

	hex *string
}

func (c *keyImportCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("key-import", "Imports a hex encoded ed25519 private key")
	c.hex = c.cmd.String("k", "key", &argparse.Options{
		Help:     "hex encoded private key",
		Required: true,
	})
}

func (c *keyImportCmd) Run(_ context.Context, e *Env) error {
	priv, err := ed25519.HexToKey(*c.hex)
	if err != nil {
		return err
	}
	addr, err := e.handler.StoreKey(priv)
	if err != nil {
		return err
	}
	printAddress("imported address", addr)
	return nil
}

func (c *keyImportCmd) Happened() bool {
	return c.cmd.Happened()
}

type addressCmd struct {
	cmd *argparse.Command
}

func (c *addressCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("address", "Prints the address of the default key")
}

func (c *addressCmd) Run(_ context.Context, e *Env) error {
	factory, err := e.handler.GetDefaultKey()
	if err != nil {
		return err
	}
	printAddress("address", factory.Address())
	return nil
}

func (c *addressCmd) Happened() bool {
	return c.cmd.Happened()
}

type setKeyCmd struct {
	cmd *argparse.Command
}

func (c *setKeyCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("set-key", "Selects the default key among the stored keys")
}

func (c *setKeyCmd) Run(_ context.Context, e *Env) error {
	addrs, err := e.handler.GetKeys()
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil
	}
	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(addrs))
	for i, addr := range addrs {
		utils.Outf("%d) {{cyan}}address:{{/}} %s\n", i, addr)
	}
	index, err := prompt.Choice("set default key", len(addrs))
	if err != nil {
		return err
	}
	return e.handler.StoreDefaultKey(addrs[index])
}

func (c *setKeyCmd) Happened() bool {
	return c.cmd.Happened()
}

type endpointCmd struct {
	cmd *argparse.Command

	uri *string
}

func (c *endpointCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("endpoint", "Stores the default API endpoint")
	c.uri = c.cmd.String("", "set", &argparse.Options{
		Help:     "API endpoint, e.g. http://127.0.0.1:9650/ext",
		Required: true,
	})
}

func (c *endpointCmd) Run(ctx context.Context, e *Env) error {
	e.uri = *c.uri
	cli, err := e.Client()
	if err != nil {
		return err
	}
	networkID, chainID, err := cli.Network(ctx)
	if err != nil {
		return err
	}
	if err := e.handler.StoreDefaultURI(*c.uri); err != nil {
		return err
	}
	utils.Outf(
		"{{green}}stored endpoint:{{/}} %s {{cyan}}networkID:{{/}} %d {{cyan}}chainID:{{/}} %s\n",
		*c.uri,
		networkID,
		chainID,
	)
	return nil
}

func (c *endpointCmd) Happened() bool {
	return c.cmd.Happened()
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/cli/prompt"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/utils"
)

var (
	_ Cmd = (*reserveCmd)(nil)
	_ Cmd = (*mintCmd)(nil)
	_ Cmd = (*mintOneCmd)(nil)
)

type reserveCmd struct {
	cmd *argparse.Command

	count *int
}

func (c *reserveCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("reserve", "Mints tokens to the admin without payment (admin only)")
	c.count = c.cmd.Int("n", "count", &argparse.Options{
		Help:     "number of tokens to reserve",
		Required: true,
	})
}

func (c *reserveCmd) Run(ctx context.Context, e *Env) error {
	count, err := toUint64(c.count)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	minted, err := cli.Reserve(ctx, factory, count)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}reserved tokens:{{/}} %v\n", minted)
	return nil
}

func (c *reserveCmd) Happened() bool {
	return c.cmd.Happened()
}

type mintCmd struct {
	cmd *argparse.Command

	count *int
}

func (c *mintCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("mint", "Mints a batch of tokens, paying the unit price for each")
	c.count = c.cmd.Int("n", "count", &argparse.Options{
		Help: "number of tokens to mint (prompted for when omitted)",
	})
}

func (c *mintCmd) Run(ctx context.Context, e *Env) error {
	count, err := toUint64(c.count)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	supply, err := cli.TotalSupply(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		count, err = prompt.Uint("count", supply.MaxPerMint)
		if err != nil {
			return err
		}
	}
	utils.Outf(
		"{{yellow}}paying:{{/}} %s %s\n",
		utils.FormatBalance(count*supply.UnitPrice),
		consts.Symbol,
	)
	minted, err := cli.Mint(ctx, factory, count)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}minted tokens:{{/}} %v\n", minted)
	return nil
}

func (c *mintCmd) Happened() bool {
	return c.cmd.Happened()
}

type mintOneCmd struct {
	cmd *argparse.Command
}

func (c *mintOneCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("mint-one", "Mints a single token, paying exactly the unit price")
}

func (c *mintOneCmd) Run(ctx context.Context, e *Env) error {
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	id, err := cli.MintOne(ctx, factory)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}minted token:{{/}} %d\n", id)
	return nil
}

func (c *mintOneCmd) Happened() bool {
	return c.cmd.Happened()
}

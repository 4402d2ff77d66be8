// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/utils"
)

var (
	_ Cmd = (*infoCmd)(nil)
	_ Cmd = (*balanceCmd)(nil)
)

type infoCmd struct {
	cmd *argparse.Command
}

func (c *infoCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("info", "Prints the collection parameters and state")
}

func (c *infoCmd) Run(ctx context.Context, e *Env) error {
	cli, err := e.Client()
	if err != nil {
		return err
	}
	networkID, chainID, err := cli.Network(ctx)
	if err != nil {
		return err
	}
	height, err := cli.Height(ctx)
	if err != nil {
		return err
	}
	supply, err := cli.TotalSupply(ctx)
	if err != nil {
		return err
	}
	maxLevel, err := cli.MaxLevel(ctx)
	if err != nil {
		return err
	}
	baseURI, err := cli.BaseURI(ctx)
	if err != nil {
		return err
	}
	admin, err := cli.Admin(ctx)
	if err != nil {
		return err
	}
	treasury, err := cli.Treasury(ctx)
	if err != nil {
		return err
	}

	utils.Outf("{{cyan}}networkID:{{/}} %d {{cyan}}chainID:{{/}} %s {{cyan}}height:{{/}} %d\n", networkID, chainID, height)
	utils.Outf(
		"{{cyan}}supply:{{/}} %d/%d {{cyan}}max per mint:{{/}} %d {{cyan}}unit price:{{/}} %s %s\n",
		supply.TotalSupply,
		supply.MaxSupply,
		supply.MaxPerMint,
		utils.FormatBalance(supply.UnitPrice),
		consts.Symbol,
	)
	utils.Outf("{{cyan}}max level:{{/}} %d {{cyan}}base uri:{{/}} %s\n", maxLevel, baseURI)
	printAddress("admin", admin)
	utils.Outf("{{cyan}}treasury:{{/}} %s %s\n", utils.FormatBalance(treasury), consts.Symbol)
	return nil
}

func (c *infoCmd) Happened() bool {
	return c.cmd.Happened()
}

type balanceCmd struct {
	cmd *argparse.Command

	address *string
}

func (c *balanceCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("balance", "Prints the balance of an address (defaults to the default key)")
	c.address = c.cmd.String("a", "address", &argparse.Options{
		Help: "address to look up",
	})
}

func (c *balanceCmd) Run(ctx context.Context, e *Env) error {
	cli, err := e.Client()
	if err != nil {
		return err
	}
	addr, err := e.addressOrDefault(*c.address)
	if err != nil {
		return err
	}
	balance, err := cli.Balance(ctx, addr)
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}balance:{{/}} %s %s\n", utils.FormatBalance(balance), consts.Symbol)
	return nil
}

func (c *balanceCmd) Happened() bool {
	return c.cmd.Happened()
}

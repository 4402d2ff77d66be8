// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/cli/prompt"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/utils"
)

var (
	_ Cmd = (*withdrawCmd)(nil)
	_ Cmd = (*fundCmd)(nil)
	_ Cmd = (*transferCmd)(nil)
	_ Cmd = (*transferAdminCmd)(nil)
)

type withdrawCmd struct {
	cmd *argparse.Command
}

func (c *withdrawCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("withdraw", "Moves the whole treasury to the admin (admin only)")
}

func (c *withdrawCmd) Run(ctx context.Context, e *Env) error {
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	treasury, err := cli.Treasury(ctx)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}treasury:{{/}} %s %s\n", utils.FormatBalance(treasury), consts.Symbol)
	if err := e.Confirm(); err != nil {
		return err
	}
	amount, err := cli.Withdraw(ctx, factory)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}withdrawn:{{/}} %s %s\n", utils.FormatBalance(amount), consts.Symbol)
	return nil
}

func (c *withdrawCmd) Happened() bool {
	return c.cmd.Happened()
}

type fundCmd struct {
	cmd *argparse.Command

	amount *string
}

func (c *fundCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("fund", "Deposits native currency into the treasury")
	c.amount = c.cmd.String("", "amount", &argparse.Options{
		Help:     "amount in " + consts.Symbol + ", e.g. 1.5",
		Required: true,
	})
}

func (c *fundCmd) Run(ctx context.Context, e *Env) error {
	amount, err := utils.ParseBalance(*c.amount)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	treasury, err := cli.Fund(ctx, factory, amount)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}treasury:{{/}} %s %s\n", utils.FormatBalance(treasury), consts.Symbol)
	return nil
}

func (c *fundCmd) Happened() bool {
	return c.cmd.Happened()
}

type transferCmd struct {
	cmd *argparse.Command

	to     *string
	amount *string
	memo   *string
}

func (c *transferCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("transfer", "Sends native currency to another address")
	c.to = c.cmd.String("", "to", &argparse.Options{
		Help: "recipient address (prompted for when omitted)",
	})
	c.amount = c.cmd.String("", "amount", &argparse.Options{
		Help: "amount in " + consts.Symbol + ", e.g. 1.5 (prompted for when omitted)",
	})
	c.memo = c.cmd.String("", "memo", &argparse.Options{
		Help: "optional memo",
	})
}

func (c *transferCmd) Run(ctx context.Context, e *Env) error {
	var (
		to  codec.Address
		err error
	)
	if len(*c.to) > 0 {
		to, err = prompt.ParseAddress(*c.to)
	} else {
		to, err = prompt.Address("recipient")
	}
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	balance, err := cli.Balance(ctx, factory.Address())
	if err != nil {
		return err
	}
	var amount uint64
	if len(*c.amount) > 0 {
		amount, err = prompt.ParseAmount(*c.amount, balance)
	} else {
		amount, err = prompt.Amount("amount", balance)
	}
	if err != nil {
		return err
	}
	utils.Outf(
		"{{yellow}}sending:{{/}} %s %s {{yellow}}to:{{/}} %s\n",
		utils.FormatBalance(amount),
		consts.Symbol,
		to,
	)
	if err := e.Confirm(); err != nil {
		return err
	}
	remaining, err := cli.Transfer(ctx, factory, to, amount, []byte(*c.memo))
	if err != nil {
		return err
	}
	utils.Outf("{{green}}remaining balance:{{/}} %s %s\n", utils.FormatBalance(remaining), consts.Symbol)
	return nil
}

func (c *transferCmd) Happened() bool {
	return c.cmd.Happened()
}

type transferAdminCmd struct {
	cmd *argparse.Command

	to *string
}

func (c *transferAdminCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("transfer-admin", "Hands the administrator role to another address (admin only)")
	c.to = c.cmd.String("", "to", &argparse.Options{
		Help:     "new administrator",
		Required: true,
	})
}

func (c *transferAdminCmd) Run(ctx context.Context, e *Env) error {
	to, err := prompt.ParseAddress(*c.to)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	printAddress("new admin", to)
	if err := e.Confirm(); err != nil {
		return err
	}
	if err := cli.TransferAdmin(ctx, factory, to); err != nil {
		return err
	}
	utils.Outf("{{green}}admin transferred{{/}}\n")
	return nil
}

func (c *transferAdminCmd) Happened() bool {
	return c.cmd.Happened()
}

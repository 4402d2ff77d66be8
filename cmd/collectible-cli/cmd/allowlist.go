// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/cli/prompt"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/utils"
)

var (
	_ Cmd = (*allowlistAddCmd)(nil)
	_ Cmd = (*allowlistRemoveCmd)(nil)
	_ Cmd = (*allowlistCmd)(nil)
)

type allowlistAddCmd struct {
	cmd *argparse.Command

	address *string
}

func (c *allowlistAddCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("allowlist-add", "Adds an address to the upgrade allowlist (admin only)")
	c.address = c.cmd.String("a", "address", &argparse.Options{
		Help:     "address to add",
		Required: true,
	})
}

func (c *allowlistAddCmd) Run(ctx context.Context, e *Env) error {
	addr, err := prompt.ParseAddress(*c.address)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	added, err := cli.AllowlistAdd(ctx, factory, addr)
	if err != nil {
		return err
	}
	if !added {
		utils.Outf("{{yellow}}already allowed:{{/}} %s\n", addr)
		return nil
	}
	utils.Outf("{{green}}allowed:{{/}} %s\n", addr)
	return nil
}

func (c *allowlistAddCmd) Happened() bool {
	return c.cmd.Happened()
}

type allowlistRemoveCmd struct {
	cmd *argparse.Command

	address *string
}

func (c *allowlistRemoveCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("allowlist-remove", "Removes an address from the upgrade allowlist (admin only)")
	c.address = c.cmd.String("a", "address", &argparse.Options{
		Help:     "address to remove",
		Required: true,
	})
}

func (c *allowlistRemoveCmd) Run(ctx context.Context, e *Env) error {
	addr, err := prompt.ParseAddress(*c.address)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	if err := e.Confirm(); err != nil {
		return err
	}
	removed, err := cli.AllowlistRemove(ctx, factory, addr)
	if err != nil {
		return err
	}
	if !removed {
		utils.Outf("{{yellow}}not on allowlist:{{/}} %s\n", addr)
		return nil
	}
	utils.Outf("{{green}}removed:{{/}} %s\n", addr)
	return nil
}

func (c *allowlistRemoveCmd) Happened() bool {
	return c.cmd.Happened()
}

type allowlistCmd struct {
	cmd *argparse.Command

	address *string
}

func (c *allowlistCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("allowlist", "Prints the upgrade allowlist slots, or checks a single address")
	c.address = c.cmd.String("a", "address", &argparse.Options{
		Help: "address to check",
	})
}

func (c *allowlistCmd) Run(ctx context.Context, e *Env) error {
	cli, err := e.Client()
	if err != nil {
		return err
	}
	if len(*c.address) > 0 {
		addr, err := prompt.ParseAddress(*c.address)
		if err != nil {
			return err
		}
		allowed, err := cli.IsAllowed(ctx, addr)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}%s allowed:{{/}} %t\n", addr, allowed)
		return nil
	}
	slots, err := cli.Allowlist(ctx)
	if err != nil {
		return err
	}
	for i, addr := range slots {
		if addr == codec.EmptyAddress {
			utils.Outf("%d) {{yellow}}<empty>{{/}}\n", i)
			continue
		}
		utils.Outf("%d) %s\n", i, addr)
	}
	return nil
}

func (c *allowlistCmd) Happened() bool {
	return c.cmd.Happened()
}

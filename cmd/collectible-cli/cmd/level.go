// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/utils"
)

var (
	_ Cmd = (*incrementCmd)(nil)
	_ Cmd = (*upgradeCmd)(nil)
)

type incrementCmd struct {
	cmd *argparse.Command

	id *int
}

func (c *incrementCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("increment", "Raises the level of a token by one, up to the ceiling")
	c.id = c.cmd.Int("t", "token", &argparse.Options{
		Help:     "token id",
		Required: true,
	})
}

func (c *incrementCmd) Run(ctx context.Context, e *Env) error {
	id, err := toUint64(c.id)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	level, err := cli.IncrementLevel(ctx, factory, id)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}token %d level:{{/}} %d\n", id, level)
	return nil
}

func (c *incrementCmd) Happened() bool {
	return c.cmd.Happened()
}

type upgradeCmd struct {
	cmd *argparse.Command

	id *int
}

func (c *upgradeCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("upgrade", "Raises the level of a token by one (upgrade allowlist only)")
	c.id = c.cmd.Int("t", "token", &argparse.Options{
		Help:     "token id",
		Required: true,
	})
}

func (c *upgradeCmd) Run(ctx context.Context, e *Env) error {
	id, err := toUint64(c.id)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	level, err := cli.Upgrade(ctx, factory, id)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}token %d level:{{/}} %d\n", id, level)
	return nil
}

func (c *upgradeCmd) Happened() bool {
	return c.cmd.Happened()
}

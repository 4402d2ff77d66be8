// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/cli/prompt"
	"github.com/ava-labs/collectiblevm/utils"
)

const maxBaseURILen = 256

var (
	_ Cmd = (*tokenURICmd)(nil)
	_ Cmd = (*tokensCmd)(nil)
	_ Cmd = (*setBaseURICmd)(nil)
	_ Cmd = (*setMaxLevelCmd)(nil)
)

type tokenURICmd struct {
	cmd *argparse.Command

	id *int
}

func (c *tokenURICmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("token-uri", "Prints the metadata URI, level and owner of a token")
	c.id = c.cmd.Int("t", "token", &argparse.Options{
		Help:     "token id",
		Required: true,
	})
}

func (c *tokenURICmd) Run(ctx context.Context, e *Env) error {
	id, err := toUint64(c.id)
	if err != nil {
		return err
	}
	cli, err := e.Client()
	if err != nil {
		return err
	}
	uri, err := cli.TokenURI(ctx, id)
	if err != nil {
		return err
	}
	level, err := cli.Level(ctx, id)
	if err != nil {
		return err
	}
	owner, err := cli.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}token:{{/}} %d {{cyan}}level:{{/}} %d {{cyan}}uri:{{/}} %s\n", id, level, uri)
	printAddress("owner", owner)
	return nil
}

func (c *tokenURICmd) Happened() bool {
	return c.cmd.Happened()
}

type tokensCmd struct {
	cmd *argparse.Command

	address *string
}

func (c *tokensCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("tokens", "Lists the tokens held by an address (defaults to the default key)")
	c.address = c.cmd.String("a", "address", &argparse.Options{
		Help: "owner address",
	})
}

func (c *tokensCmd) Run(ctx context.Context, e *Env) error {
	addr, err := e.addressOrDefault(*c.address)
	if err != nil {
		return err
	}
	cli, err := e.Client()
	if err != nil {
		return err
	}
	tokens, err := cli.TokensOfOwner(ctx, addr)
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}tokens held by %s:{{/}} %d\n", addr, len(tokens))
	for _, id := range tokens {
		level, err := cli.Level(ctx, id)
		if err != nil {
			return err
		}
		utils.Outf("  %d {{cyan}}level:{{/}} %d\n", id, level)
	}
	return nil
}

func (c *tokensCmd) Happened() bool {
	return c.cmd.Happened()
}

type setBaseURICmd struct {
	cmd *argparse.Command

	uri *string
}

func (c *setBaseURICmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("set-base-uri", "Replaces the metadata base URI (admin only)")
	c.uri = c.cmd.String("", "base-uri", &argparse.Options{
		Help: "new base URI (prompted for when omitted)",
	})
}

func (c *setBaseURICmd) Run(ctx context.Context, e *Env) error {
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	current, err := cli.BaseURI(ctx)
	if err != nil {
		return err
	}
	uri := *c.uri
	if len(uri) == 0 {
		uri, err = prompt.String("base uri", 1, maxBaseURILen)
		if err != nil {
			return err
		}
	}
	utils.Outf("{{yellow}}base uri:{{/}} %q -> %q\n", current, uri)
	if err := e.Confirm(); err != nil {
		return err
	}
	if err := cli.SetBaseURI(ctx, factory, uri); err != nil {
		return err
	}
	utils.Outf("{{green}}base uri updated{{/}}\n")
	return nil
}

func (c *setBaseURICmd) Happened() bool {
	return c.cmd.Happened()
}

type setMaxLevelCmd struct {
	cmd *argparse.Command

	level *int
}

func (c *setMaxLevelCmd) New(parser *argparse.Parser) {
	c.cmd = parser.NewCommand("set-max-level", "Replaces the level ceiling (admin only)")
	c.level = c.cmd.Int("l", "level", &argparse.Options{
		Help:     "new ceiling",
		Required: true,
	})
}

func (c *setMaxLevelCmd) Run(ctx context.Context, e *Env) error {
	level, err := toUint64(c.level)
	if err != nil {
		return err
	}
	factory, cli, err := e.Signer()
	if err != nil {
		return err
	}
	current, err := cli.MaxLevel(ctx)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}max level:{{/}} %d -> %d\n", current, level)
	if err := e.Confirm(); err != nil {
		return err
	}
	if err := cli.SetMaxLevel(ctx, factory, level); err != nil {
		return err
	}
	utils.Outf("{{green}}max level updated{{/}}\n")
	return nil
}

func (c *setMaxLevelCmd) Happened() bool {
	return c.cmd.Happened()
}

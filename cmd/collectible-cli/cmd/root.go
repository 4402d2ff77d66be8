// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/collectiblevm/api/jsonrpc"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/cli"
	"github.com/ava-labs/collectiblevm/cli/prompt"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

const defaultDir = ".collectible-cli"

var (
	ErrNoCommand     = errors.New("no command specified")
	ErrNegativeValue = errors.New("value must not be negative")
)

// Cmd is a single subcommand.
type Cmd interface {
	New(parser *argparse.Parser)
	Run(ctx context.Context, e *Env) error
	Happened() bool
}

// Env is shared by every subcommand.
type Env struct {
	handler *cli.Handler
	uri     string
	yes     bool

	client *jsonrpc.JSONRPCClient
}

// Client connects to the configured endpoint on first use.
func (e *Env) Client() (*jsonrpc.JSONRPCClient, error) {
	if e.client != nil {
		return e.client, nil
	}
	uri := e.uri
	if len(uri) == 0 {
		var err error
		uri, err = e.handler.GetDefaultURI()
		if err != nil {
			return nil, err
		}
	}
	cli, err := jsonrpc.NewJSONRPCClient(uri)
	if err != nil {
		return nil, err
	}
	e.client = cli
	return cli, nil
}

// Signer returns the default key together with a connected client.
func (e *Env) Signer() (*auth.ED25519Factory, *jsonrpc.JSONRPCClient, error) {
	factory, err := e.handler.GetDefaultKey()
	if err != nil {
		return nil, nil, err
	}
	cli, err := e.Client()
	if err != nil {
		return nil, nil, err
	}
	return factory, cli, nil
}

// Confirm asks before irreversible commands unless --yes was passed.
func (e *Env) Confirm() error {
	if e.yes {
		return nil
	}
	return prompt.Continue()
}

func commands() []Cmd {
	return []Cmd{
		&keyCreateCmd{},
		&keyImportCmd{},
		&addressCmd{},
		&setKeyCmd{},
		&endpointCmd{},
		&infoCmd{},
		&reserveCmd{},
		&mintCmd{},
		&mintOneCmd{},
		&incrementCmd{},
		&upgradeCmd{},
		&allowlistAddCmd{},
		&allowlistRemoveCmd{},
		&allowlistCmd{},
		&tokenURICmd{},
		&tokensCmd{},
		&setBaseURICmd{},
		&setMaxLevelCmd{},
		&withdrawCmd{},
		&fundCmd{},
		&transferCmd{},
		&transferAdminCmd{},
		&balanceCmd{},
	}
}

// Execute parses [args] and runs the selected subcommand.
func Execute(ctx context.Context, args []string) error {
	parser := argparse.NewParser(consts.Name+"-cli", "Command line client for a bounded collectible collection")
	dir := parser.String("d", "dir", &argparse.Options{
		Help:    "directory the keystore is kept in (defaults to ~/" + defaultDir + ")",
		Default: "",
	})
	uri := parser.String("u", "uri", &argparse.Options{
		Help: "API endpoint of the node, e.g. http://127.0.0.1:9650/ext (overrides the stored endpoint)",
	})
	yes := parser.Flag("y", "yes", &argparse.Options{
		Help: "skip confirmation of irreversible commands",
	})

	cmds := commands()
	for _, c := range cmds {
		c.New(parser)
	}
	args, ok := hoistCommand(args)
	if !ok {
		fmt.Fprint(os.Stderr, parser.Usage(nil))
		return ErrNoCommand
	}
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		return err
	}

	if len(*dir) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		*dir = filepath.Join(home, defaultDir)
	}
	handler, err := cli.New(*dir)
	if err != nil {
		return err
	}
	defer handler.Close()

	env := &Env{
		handler: handler,
		uri:     *uri,
		yes:     *yes,
	}
	for _, c := range cmds {
		if c.Happened() {
			return c.Run(ctx, env)
		}
	}
	fmt.Fprint(os.Stderr, parser.Usage(nil))
	return ErrNoCommand
}

// hoistCommand moves the subcommand directly behind the program name.
// argparse only reads global flags that follow the subcommand, so
// "-d dir key-create" is rewritten to "key-create -d dir". It reports false
// when [args] names no subcommand.
func hoistCommand(args []string) ([]string, bool) {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-d" || arg == "--dir" || arg == "-u" || arg == "--uri":
			// skip the flag's value
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			hoisted := make([]string, 0, len(args))
			hoisted = append(hoisted, args[0], arg)
			hoisted = append(hoisted, args[1:i]...)
			hoisted = append(hoisted, args[i+1:]...)
			return hoisted, true
		}
	}
	return args, false
}

func toUint64(v *int) (uint64, error) {
	if *v < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeValue, *v)
	}
	return uint64(*v), nil
}

// addressOrDefault parses [s] or falls back to the default key's address.
func (e *Env) addressOrDefault(s string) (codec.Address, error) {
	if len(s) > 0 {
		return prompt.ParseAddress(s)
	}
	factory, err := e.handler.GetDefaultKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return factory.Address(), nil
}

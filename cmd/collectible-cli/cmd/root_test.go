// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/akamensky/argparse"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/api/jsonrpc"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/cli"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/config"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/vm"
)

func run(t *testing.T, args ...string) error {
	return Execute(context.Background(), append([]string{"collectible-cli"}, args...))
}

func newNode(t *testing.T, admin codec.Address) string {
	require := require.New(t)

	g := genesis.New(admin, "ipfs://c/", []*genesis.CustomAllocation{
		{Address: admin.String(), Balance: 1_000},
	})
	g.UnitPrice = 100
	g.MaxSupply = 4
	g.MaxLevel = 2

	cfg := config.NewDefaultConfig()
	cfg.DatabaseType = config.MemoryDatabase
	v := vm.New(logging.NoLog{}, cfg, g)
	require.NoError(v.Initialize(context.Background()))
	t.Cleanup(func() {
		require.NoError(v.Shutdown(context.Background()))
	})

	handler, err := jsonrpc.JSONRPCServerFactory{}.New(v)
	require.NoError(err)
	srv := httptest.NewServer(handler.Handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNoCommand(t *testing.T) {
	require := require.New(t)
	require.ErrorIs(run(t, "-d", t.TempDir()), ErrNoCommand)
}

func TestKeyCommands(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	require.ErrorIs(run(t, "-d", dir, "address"), cli.ErrNoKeys)
	require.NoError(run(t, "-d", dir, "key-create"))
	require.NoError(run(t, "-d", dir, "address"))
	require.NoError(run(t, "address", "-d", dir))
	require.NoError(run(t, "--dir="+dir, "address"))

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	require.NoError(run(t, "-d", dir, "key-import", "-k", priv.ToHex()))
	require.ErrorIs(run(t, "-d", dir, "key-import", "-k", priv.ToHex()), cli.ErrDuplicate)

	handler, err := cli.New(dir)
	require.NoError(err)
	defer handler.Close()
	keys, err := handler.GetKeys()
	require.NoError(err)
	require.Len(keys, 2)
	require.Equal(auth.NewED25519Address(priv.PublicKey()), keys[1])
}

func TestHoistCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
		ok   bool
	}{
		{
			name: "command first",
			args: []string{"cli", "info", "-d", "x"},
			want: []string{"cli", "info", "-d", "x"},
			ok:   true,
		},
		{
			name: "globals first",
			args: []string{"cli", "-d", "x", "-y", "mint", "-n", "2"},
			want: []string{"cli", "mint", "-d", "x", "-y", "-n", "2"},
			ok:   true,
		},
		{
			name: "flag value named like a command",
			args: []string{"cli", "--uri", "info", "balance"},
			want: []string{"cli", "balance", "--uri", "info"},
			ok:   true,
		},
		{
			name: "assigned global",
			args: []string{"cli", "--dir=x", "address"},
			want: []string{"cli", "address", "--dir=x"},
			ok:   true,
		},
		{
			name: "no command",
			args: []string{"cli", "-d", "x", "-y"},
			want: []string{"cli", "-d", "x", "-y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, ok := hoistCommand(tt.args)
			require.Equal(tt.ok, ok)
			require.Equal(tt.want, got)
		})
	}
}

func TestMintUsage(t *testing.T) {
	require := require.New(t)

	parser := argparse.NewParser("cli", "")
	mint := &mintCmd{}
	mint.New(parser)
	mintOne := &mintOneCmd{}
	mintOne.New(parser)

	require.Contains(mint.cmd.Usage(nil), "paying the unit price for each")
	require.Contains(mintOne.cmd.Usage(nil), "paying exactly the unit price")
	for _, usage := range []string{mint.cmd.Usage(nil), mintOne.cmd.Usage(nil)} {
		require.NotContains(usage, "allowlist")
	}
}

func TestToUint64(t *testing.T) {
	require := require.New(t)

	v := 7
	out, err := toUint64(&v)
	require.NoError(err)
	require.Equal(uint64(7), out)

	v = -1
	_, err = toUint64(&v)
	require.ErrorIs(err, ErrNegativeValue)
}

func TestAdminFlow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	admin := auth.NewED25519Address(priv.PublicKey())
	uri := newNode(t, admin)

	require.NoError(run(t, "-d", dir, "key-import", "-k", priv.ToHex()))
	require.NoError(run(t, "-d", dir, "endpoint", "--set", uri))
	require.NoError(run(t, "-d", dir, "info"))

	require.NoError(run(t, "-d", dir, "reserve", "-n", "2"))
	require.NoError(run(t, "-d", dir, "tokens"))
	require.NoError(run(t, "-d", dir, "token-uri", "-t", "1"))
	require.NoError(run(t, "-d", dir, "increment", "-t", "0"))

	require.NoError(run(t, "-d", dir, "allowlist-add", "-a", admin.String()))
	require.NoError(run(t, "-d", dir, "allowlist"))
	require.NoError(run(t, "-d", dir, "allowlist", "-a", admin.String()))
	require.NoError(run(t, "-d", dir, "upgrade", "-t", "0"))
	require.Error(run(t, "-d", dir, "upgrade", "-t", "5"))
	require.NoError(run(t, "-d", dir, "increment", "-t", "1"))
	require.NoError(run(t, "-d", dir, "-y", "set-max-level", "-l", "3"))
	require.NoError(run(t, "-d", dir, "upgrade", "-t", "1"))
	require.NoError(run(t, "-d", dir, "-y", "allowlist-remove", "-a", admin.String()))

	require.NoError(run(t, "-d", dir, "-y", "set-base-uri", "--base-uri", "ipfs://d/"))
	require.NoError(run(t, "-d", dir, "fund", "--amount", "0.000000000000000050"))
	require.NoError(run(t, "-d", dir, "-y", "withdraw"))
	require.NoError(run(t, "-d", dir, "balance"))

	c, err := jsonrpc.NewJSONRPCClient(uri)
	require.NoError(err)
	level, err := c.Level(ctx, 1)
	require.NoError(err)
	require.Equal(uint64(2), level)
	tokenURI, err := c.TokenURI(ctx, 1)
	require.NoError(err)
	require.Equal("ipfs://d/1/2", tokenURI)
	allowed, err := c.IsAllowed(ctx, admin)
	require.NoError(err)
	require.False(allowed)
	treasury, err := c.Treasury(ctx)
	require.NoError(err)
	require.Zero(treasury)
	balance, err := c.Balance(ctx, admin)
	require.NoError(err)
	require.Equal(uint64(1_000), balance)

	other, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	to := auth.NewED25519Address(other.PublicKey())
	require.NoError(run(t, "-d", dir, "-y", "transfer", "--to", to.String(), "--amount", "0.000000000000000010"))
	require.NoError(run(t, "-d", dir, "-y", "transfer-admin", "--to", to.String()))
	newAdmin, err := c.Admin(ctx)
	require.NoError(err)
	require.Equal(to, newAdmin)
	require.Error(run(t, "-d", dir, "-y", "withdraw"))
}

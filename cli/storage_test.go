// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
)

func TestKeys(t *testing.T) {
	require := require.New(t)
	h := NewWithDatabase(memdb.New())

	_, err := h.GetDefaultKey()
	require.ErrorIs(err, ErrNoKeys)

	first, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	second, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	firstAddr, err := h.StoreKey(first)
	require.NoError(err)
	require.Equal(auth.NewED25519Address(first.PublicKey()), firstAddr)
	_, err = h.StoreKey(first)
	require.ErrorIs(err, ErrDuplicate)

	secondAddr, err := h.StoreKey(second)
	require.NoError(err)

	addrs, err := h.GetKeys()
	require.NoError(err)
	require.Equal([]codec.Address{firstAddr, secondAddr}, addrs)

	// The first key is the default until changed.
	factory, err := h.GetDefaultKey()
	require.NoError(err)
	require.Equal(firstAddr, factory.Address())

	require.NoError(h.StoreDefaultKey(secondAddr))
	factory, err = h.GetDefaultKey()
	require.NoError(err)
	require.Equal(secondAddr, factory.Address())

	unknown, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	require.ErrorIs(h.StoreDefaultKey(auth.NewED25519Address(unknown.PublicKey())), ErrKeyNotFound)
	require.NoError(h.Close())
}

func TestDefaultURI(t *testing.T) {
	require := require.New(t)
	h := NewWithDatabase(memdb.New())

	_, err := h.GetDefaultURI()
	require.ErrorIs(err, ErrNoEndpoint)

	require.NoError(h.StoreDefaultURI("http://127.0.0.1:9650/ext"))
	uri, err := h.GetDefaultURI()
	require.NoError(err)
	require.Equal("http://127.0.0.1:9650/ext", uri)
}

func TestOpenKeystore(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	h, err := New(dir)
	require.NoError(err)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	addr, err := h.StoreKey(priv)
	require.NoError(err)
	require.NoError(h.Close())

	h, err = New(dir)
	require.NoError(err)
	factory, err := h.GetDefaultKey()
	require.NoError(err)
	require.Equal(addr, factory.Address())
	require.NoError(h.Close())
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePrivateKeyDifferent(t *testing.T) {
	require := require.New(t)

	a, err := GeneratePrivateKey()
	require.NoError(err)
	b, err := GeneratePrivateKey()
	require.NoError(err)
	require.NotEqual(a, b)
	require.NotEqual(EmptyPrivateKey, a)
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)

	msg := []byte("mint 3")
	sig := Sign(msg, priv)
	require.True(Verify(msg, priv.PublicKey(), sig))
	require.False(Verify([]byte("mint 4"), priv.PublicKey(), sig))

	other, err := GeneratePrivateKey()
	require.NoError(err)
	require.False(Verify(msg, other.PublicKey(), sig))
}

func TestSaveLoad(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)

	path := filepath.Join(t.TempDir(), "key.pk")
	require.NoError(priv.Save(path))
	loaded, err := LoadKey(path)
	require.NoError(err)
	require.Equal(priv, loaded)

	_, err = HexToKey("0x1234")
	require.ErrorIs(err, ErrInvalidPrivateKey)
}

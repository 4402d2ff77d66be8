// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())
	id := ids.GenerateTestID()

	wp := NewWriter(64, 1024)
	wp.PackAddress(addr)
	wp.PackID(id)
	wp.PackUint64(42)
	wp.PackInt64(-7)
	wp.PackBool(true)
	wp.PackString("ipfs://base/")
	wp.PackBytes([]byte{1, 2, 3})
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 1024)
	var (
		raddr Address
		rid   ids.ID
		rb    []byte
	)
	rp.UnpackAddress(true, &raddr)
	rp.UnpackID(true, &rid)
	require.Equal(uint64(42), rp.UnpackUint64(true))
	require.Equal(int64(-7), rp.UnpackInt64(true))
	require.True(rp.UnpackBool())
	require.Equal("ipfs://base/", rp.UnpackString(true))
	rp.UnpackBytes(-1, true, &rb)
	require.NoError(rp.Err())
	require.True(rp.Empty())
	require.Equal(addr, raddr)
	require.Equal(id, rid)
	require.Equal([]byte{1, 2, 3}, rb)
}

func TestPackerRequiredUnpack(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(64, 1024)
	wp.PackAddress(EmptyAddress)
	rp := NewReader(wp.Bytes(), 1024)
	var addr Address
	rp.UnpackAddress(true, &addr)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerLimit(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(8, 8)
	wp.PackAddress(EmptyAddress)
	require.Error(wp.Err())
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

func TestParseAddress(t *testing.T) {
	require := require.New(t)

	addr := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	parsed, err := ParseAddress(" " + addr.String() + " ")
	require.NoError(err)
	require.Equal(addr, parsed)

	parsed, err = ParseAddress(codec.MustAddressBech32(consts.HRP, addr))
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = ParseAddress("")
	require.ErrorIs(err, ErrInputEmpty)

	_, err = ParseAddress("not-an-address")
	require.Error(err)
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		input string
		max   uint64
		want  uint64
		err   error
	}{
		{input: "3", max: 3, want: 3},
		{input: " 0 ", max: 3, want: 0},
		{input: "4", max: 3, err: ErrInputTooLarge},
		{input: "", max: 3, err: ErrInputEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)

			v, err := ParseUint(tt.input, tt.max)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.want, v)
		})
	}

	_, err := ParseUint("-1", 3)
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	require := require.New(t)

	amount, err := ParseAmount("1.5", 2*consts.DefaultUnitPrice*10)
	require.NoError(err)
	require.Equal(uint64(1_500_000_000_000_000_000), amount)

	_, err = ParseAmount("2", 1)
	require.ErrorIs(err, ErrInputTooLarge)

	_, err = ParseAmount("", 1)
	require.ErrorIs(err, ErrInputEmpty)
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

func TestRegistryCoversEveryAction(t *testing.T) {
	require := require.New(t)

	actionParser, outputParser, err := NewRegistry()
	require.NoError(err)

	for id := consts.ReserveID; id <= consts.TransferID; id++ {
		_, ok := actionParser.LookupIndex(id)
		require.True(ok, "action %d", id)
		_, ok = outputParser.LookupIndex(id)
		require.True(ok, "output %d", id)
	}
}

func TestActionEncoding(t *testing.T) {
	actionParser, _, err := NewRegistry()
	require.NoError(t, err)

	tests := map[string]chain.Action{
		"Reserve":       &Reserve{Count: 4},
		"Mint":          &Mint{Count: 2},
		"MintOne":       &MintOne{},
		"Upgrade":       &Upgrade{TokenID: 9},
		"AllowlistAdd":  &AllowlistAdd{Address: bob},
		"SetBaseURI":    &SetBaseURI{URI: "ipfs://x/"},
		"Withdraw":      &Withdraw{},
		"TransferAdmin": &TransferAdmin{To: alice},
		"Transfer":      &Transfer{To: bob, Value: 5, Memo: []byte("hi")},
	}
	for name, action := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			p := codec.NewWriter(consts.ByteLen+action.Size(), consts.NetworkSizeLimit)
			p.PackByte(action.GetTypeID())
			action.Marshal(p)
			require.NoError(p.Err())
			require.Len(p.Bytes(), consts.ByteLen+action.Size())

			parsed, err := actionParser.Unmarshal(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
			require.NoError(err)
			require.Equal(action, parsed)
		})
	}
}

func TestUnmarshalRejectsEmptyAddress(t *testing.T) {
	require := require.New(t)

	p := codec.NewWriter(codec.AddressLen, consts.NetworkSizeLimit)
	p.PackAddress(codec.EmptyAddress)
	_, err := UnmarshalAllowlistAdd(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.ErrorIs(err, codec.ErrFieldNotPopulated)
}

func TestOutputEncoding(t *testing.T) {
	require := require.New(t)

	_, outputParser, err := NewRegistry()
	require.NoError(err)

	output := &MintResult{TokenIDs: []uint64{3, 4, 5}, Paid: 300}
	raw, err := chain.MarshalOutput(output)
	require.NoError(err)
	parsed, err := chain.UnmarshalOutput(raw, outputParser)
	require.NoError(err)
	require.Equal(output, parsed)
}

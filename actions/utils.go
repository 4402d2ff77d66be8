// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
)

// MaxTokensPerOutput bounds the identifiers listed in a single output. A
// [MintResult] listing this many tokens still encodes within
// [consts.NetworkSizeLimit].
const MaxTokensPerOutput = (consts.NetworkSizeLimit - consts.ByteLen - consts.IntLen - consts.Uint64Len) / consts.Uint64Len

func tokenIDsSize(tokenIDs []uint64) int {
	return consts.IntLen + len(tokenIDs)*consts.Uint64Len
}

func packTokenIDs(p *codec.Packer, tokenIDs []uint64) {
	p.PackInt(len(tokenIDs))
	for _, id := range tokenIDs {
		p.PackUint64(id)
	}
}

func unpackTokenIDs(p *codec.Packer) ([]uint64, error) {
	count := p.UnpackInt(false)
	if count > MaxTokensPerOutput {
		return nil, ErrTooManyTokens
	}
	tokenIDs := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		tokenIDs = append(tokenIDs, p.UnpackUint64(false))
	}
	return tokenIDs, p.Err()
}

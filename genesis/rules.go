// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/consts"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	networkID      uint32
	chainID        ids.ID
	validityWindow int64
	collection     *collectible.Collection
}

func NewRules(networkID uint32, chainID ids.ID, collection *collectible.Collection) *Rules {
	return &Rules{
		networkID:      networkID,
		chainID:        chainID,
		validityWindow: consts.ValidityWindow,
		collection:     collection,
	}
}

func (r *Rules) NetworkID() uint32 {
	return r.networkID
}

func (r *Rules) GetChainID() ids.ID {
	return r.chainID
}

func (r *Rules) GetValidityWindow() int64 {
	return r.validityWindow
}

func (r *Rules) Collection() *collectible.Collection {
	return r.collection
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
)

// NewRegistry returns the parsers for every action and its output.
//
// When registering new actions, ALWAYS make sure to append at the end.
func NewRegistry() (chain.ActionRegistry, chain.OutputRegistry, error) {
	actionParser := codec.NewTypeParser[chain.Action]()
	outputParser := codec.NewTypeParser[chain.Output]()

	errs := &wrappers.Errs{}
	errs.Add(
		actionParser.Register(&Reserve{}, UnmarshalReserve),
		actionParser.Register(&Mint{}, UnmarshalMint),
		actionParser.Register(&MintOne{}, UnmarshalMintOne),
		actionParser.Register(&IncrementLevel{}, UnmarshalIncrementLevel),
		actionParser.Register(&Upgrade{}, UnmarshalUpgrade),
		actionParser.Register(&AllowlistAdd{}, UnmarshalAllowlistAdd),
		actionParser.Register(&AllowlistRemove{}, UnmarshalAllowlistRemove),
		actionParser.Register(&SetBaseURI{}, UnmarshalSetBaseURI),
		actionParser.Register(&SetMaxLevel{}, UnmarshalSetMaxLevel),
		actionParser.Register(&Withdraw{}, UnmarshalWithdraw),
		actionParser.Register(&Fund{}, UnmarshalFund),
		actionParser.Register(&TransferAdmin{}, UnmarshalTransferAdmin),
		actionParser.Register(&Transfer{}, UnmarshalTransfer),

		outputParser.Register(&ReserveResult{}, UnmarshalReserveResult),
		outputParser.Register(&MintResult{}, UnmarshalMintResult),
		outputParser.Register(&MintOneResult{}, UnmarshalMintOneResult),
		outputParser.Register(&LevelResult{}, UnmarshalLevelResult),
		outputParser.Register(&UpgradeResult{}, UnmarshalUpgradeResult),
		outputParser.Register(&AllowlistAddResult{}, UnmarshalAllowlistAddResult),
		outputParser.Register(&AllowlistRemoveResult{}, UnmarshalAllowlistRemoveResult),
		outputParser.Register(&SetBaseURIResult{}, UnmarshalSetBaseURIResult),
		outputParser.Register(&SetMaxLevelResult{}, UnmarshalSetMaxLevelResult),
		outputParser.Register(&WithdrawResult{}, UnmarshalWithdrawResult),
		outputParser.Register(&FundResult{}, UnmarshalFundResult),
		outputParser.Register(&TransferAdminResult{}, UnmarshalTransferAdminResult),
		outputParser.Register(&TransferResult{}, UnmarshalTransferResult),
	)
	if errs.Errored() {
		return nil, nil, errs.Err
	}
	return actionParser, outputParser, nil
}

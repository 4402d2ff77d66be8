// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// Note: Registry will error during initialization if a duplicate ID is assigned. We explicitly assign IDs to avoid accidental remapping.
const (
	// Action TypeIDs
	ReserveID         uint8 = 0
	MintID            uint8 = 1
	MintOneID         uint8 = 2
	IncrementLevelID  uint8 = 3
	UpgradeID         uint8 = 4
	AllowlistAddID    uint8 = 5
	AllowlistRemoveID uint8 = 6
	SetBaseURIID      uint8 = 7
	SetMaxLevelID     uint8 = 8
	WithdrawID        uint8 = 9
	FundID            uint8 = 10
	TransferAdminID   uint8 = 11
	TransferID        uint8 = 12

	// Auth TypeIDs
	ED25519ID uint8 = 0
)

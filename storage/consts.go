// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// State
// 0x0/ (balance)
//   -> [owner] => balance
// 0x1/ (admin) => address
// 0x2/ (supply) => next token id
// 0x3/ (max level) => level
// 0x4/ (base uri) => string
// 0x5/ (level)
//   -> [tokenID] => level
// 0x6/ (allowlist length) => slots
// 0x7/ (allowlist slot)
//   -> [index] => address
// 0x8/ (allowlist member)
//   -> [address] => nil
// 0x9/ (treasury) => balance
// 0xa/ (owner)
//   -> [tokenID] => address
// 0xb/ (holder count)
//   -> [address] => count
// 0xc/ (holder token)
//   -> [address|index] => tokenID
// 0xd/ (tx result)
//   -> [txID] => result
// 0xe/ (genesis) => marker
// 0xf/ (height) => executed transactions

const (
	balancePrefix byte = iota
	adminPrefix
	supplyPrefix
	maxLevelPrefix
	baseURIPrefix
	levelPrefix
	allowlistLenPrefix
	allowlistSlotPrefix
	allowlistMemberPrefix
	treasuryPrefix
	ownerPrefix
	holderCountPrefix
	holderTokenPrefix
	txResultPrefix
	genesisPrefix
	heightPrefix
)

// MaxBaseURISize bounds the stored base uri.
const MaxBaseURISize = 1_024

const databaseNamespace = "statedb"

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/utils/units"

const (
	ByteLen   = 1
	BoolLen   = 1
	IDLen     = 32
	Uint16Len = 2
	IntLen    = 4
	Uint64Len = 8
	Int64Len  = 8
	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
	MaxInt    = int(^uint(0) >> 1)

	// NetworkSizeLimit bounds any single transaction accepted over the API.
	NetworkSizeLimit = 64 * units.KiB
)

const (
	HRP      = "collectible"
	Name     = "collectiblevm"
	Symbol   = "CLT"
	Decimals = 18
)

// Collection defaults. [DefaultUnitPrice] is 0.1 of a [Decimals]-denominated
// unit.
const (
	DefaultMaxSupply  uint64 = 1_000
	DefaultMaxPerMint uint64 = 3
	DefaultMaxLevel   uint64 = 4
	DefaultUnitPrice  uint64 = 100_000_000_000_000_000
)

const (
	MillisecondsPerSecond = 1_000
	// ValidityWindow is how far (in ms) a transaction timestamp may drift from
	// the processor clock.
	ValidityWindow int64 = 60 * MillisecondsPerSecond
)

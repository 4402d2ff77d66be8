// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const fromBits, toBits = 8, 5

// AddressBech32 returns a Bech32 address string for [a] with the given [hrp].
func AddressBech32(hrp string, a Address) (string, error) {
	p, err := bech32.ConvertBits(a[:], fromBits, toBits, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, p)
}

// MustAddressBech32 is like [AddressBech32] but panics on error. It is only
// used for display purposes.
func MustAddressBech32(hrp string, a Address) string {
	addr, err := AddressBech32(hrp, a)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a Bech32 encoded address string and verifies the
// human readable part.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, p, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, fmt.Errorf("%w: expected %q, got %q", ErrIncorrectHRP, hrp, phrp)
	}
	// The parsed result may have padding bits appended, which the
	// length check below discards.
	b, err := bech32.ConvertBits(p, toBits, fromBits, false)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) < AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return ToAddress(b[:AddressLen])
}

// ParseAnyAddress accepts either the checksummed hex or the Bech32 form.
func ParseAnyAddress(hrp, s string) (Address, error) {
	if a, err := StringToAddress(s); err == nil {
		return a, nil
	}
	return ParseAddressBech32(hrp, s)
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

const (
	AddressLen  = 33
	checksumLen = 4
)

// Address represents the 33 byte address of a collection account. The first
// byte is the auth type that controls the account.
type Address [AddressLen]byte

// EmptyAddress is the all-zero address. It is never a valid signer and is used
// as the sentinel for vacated allowlist slots.
var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// ToAddress parses [b] as a raw address.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, ErrInvalidSize
	}
	copy(a[:], b)
	return a, nil
}

// StringToAddress parses the checksummed hex form produced by [Address.String].
func StringToAddress(s string) (Address, error) {
	b, err := fromChecksum(s)
	if err != nil {
		return EmptyAddress, err
	}
	return ToAddress(b)
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return toChecksum(a[:])
}

// MarshalText returns the checksummed hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a checksummed hex address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func toChecksum(b []byte) string {
	checksum := hashing.ComputeHash256(b)
	enc := make([]byte, 0, len(b)+checksumLen)
	enc = append(enc, b...)
	enc = append(enc, checksum[len(checksum)-checksumLen:]...)
	return "0x" + hex.EncodeToString(enc)
}

func fromChecksum(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < checksumLen {
		return nil, ErrBadChecksum
	}
	original := decoded[:len(decoded)-checksumLen]
	checksum := hashing.ComputeHash256(original)
	if !bytes.Equal(checksum[len(checksum)-checksumLen:], decoded[len(decoded)-checksumLen:]) {
		return nil, ErrBadChecksum
	}
	return original, nil
}

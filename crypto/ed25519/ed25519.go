// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"encoding/hex"
	"os"
	"strings"

	"github.com/hdevalence/ed25519consensus"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// We use the ZIP-215 specification for ed25519 signature
// verification (https://zips.z.cash/zip-0215) because it provides
// an explicit validity criteria for signatures and is broadly compatible
// with signatures produced by almost all ed25519 implementations.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey. We use this const
	// to extract the publicKey below.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize
)

var (
	EmptyPublicKey  = [ed25519.PublicKeySize]byte{}
	EmptyPrivateKey = [ed25519.PrivateKeySize]byte{}
	EmptySignature  = [ed25519.SignatureSize]byte{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

// HexToKey decodes a hex encoded private key.
func HexToKey(s string) (PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return EmptyPrivateKey, err
	}
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

// ToHex returns the hex encoding of p.
func (p PrivateKey) ToHex() string {
	return hex.EncodeToString(p[:])
}

// Save writes the hex encoded key to [filename] with owner-only permissions.
func (p PrivateKey) Save(filename string) error {
	return os.WriteFile(filename, []byte(p.ToHex()), 0o600)
}

// LoadKey reads a key written by [PrivateKey.Save].
func LoadKey(filename string) (PrivateKey, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return HexToKey(string(b))
}

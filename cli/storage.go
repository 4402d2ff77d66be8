// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
)

const (
	defaultPrefix  = 0x0
	keyPrefix      = 0x1
	keyIndexPrefix = 0x2

	defaultKeyKey = "key"
	defaultURIKey = "uri"
	keyCountKey   = "keys"
)

func defaultKey(key string) []byte {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], key)
	return k
}

func privateKeyKey(addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	return k
}

func keyIndexKey(i uint64) []byte {
	k := make([]byte, 1+consts.Uint64Len)
	k[0] = keyIndexPrefix
	binary.BigEndian.PutUint64(k[1:], i)
	return k
}

func (h *Handler) StoreDefault(key string, value []byte) error {
	return h.db.Put(defaultKey(key), value)
}

func (h *Handler) GetDefault(key string) ([]byte, error) {
	v, err := h.db.Get(defaultKey(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) keyCount() (uint64, error) {
	v, err := h.GetDefault(keyCountKey)
	if err != nil || len(v) == 0 {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

// StoreKey persists [priv] and returns the address it controls. The first
// stored key becomes the default key.
func (h *Handler) StoreKey(priv ed25519.PrivateKey) (codec.Address, error) {
	addr := auth.NewED25519Address(priv.PublicKey())
	k := privateKeyKey(addr)
	has, err := h.db.Has(k)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if has {
		return codec.EmptyAddress, ErrDuplicate
	}
	count, err := h.keyCount()
	if err != nil {
		return codec.EmptyAddress, err
	}

	batch := h.db.NewBatch()
	if err := batch.Put(k, priv[:]); err != nil {
		return codec.EmptyAddress, err
	}
	if err := batch.Put(keyIndexKey(count), addr[:]); err != nil {
		return codec.EmptyAddress, err
	}
	countBytes := binary.BigEndian.AppendUint64(nil, count+1)
	if err := batch.Put(defaultKey(keyCountKey), countBytes); err != nil {
		return codec.EmptyAddress, err
	}
	if count == 0 {
		if err := batch.Put(defaultKey(defaultKeyKey), addr[:]); err != nil {
			return codec.EmptyAddress, err
		}
	}
	return addr, batch.Write()
}

func (h *Handler) GetKey(addr codec.Address) (ed25519.PrivateKey, error) {
	v, err := h.db.Get(privateKeyKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return ed25519.EmptyPrivateKey, ErrKeyNotFound
	}
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if len(v) != ed25519.PrivateKeyLen {
		return ed25519.EmptyPrivateKey, ErrInvalidKeyLen
	}
	return ed25519.PrivateKey(v), nil
}

// GetKeys returns the stored addresses in the order they were added.
func (h *Handler) GetKeys() ([]codec.Address, error) {
	count, err := h.keyCount()
	if err != nil {
		return nil, err
	}
	addrs := make([]codec.Address, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := h.db.Get(keyIndexKey(i))
		if err != nil {
			return nil, err
		}
		addr, err := codec.ToAddress(v)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func (h *Handler) StoreDefaultKey(addr codec.Address) error {
	if _, err := h.GetKey(addr); err != nil {
		return err
	}
	return h.StoreDefault(defaultKeyKey, addr[:])
}

// GetDefaultKey returns the factory that signs for the default key.
func (h *Handler) GetDefaultKey() (*auth.ED25519Factory, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNoKeys
	}
	addr, err := codec.ToAddress(v)
	if err != nil {
		return nil, err
	}
	priv, err := h.GetKey(addr)
	if err != nil {
		return nil, err
	}
	return auth.NewED25519Factory(priv), nil
}

func (h *Handler) StoreDefaultURI(uri string) error {
	return h.StoreDefault(defaultURIKey, []byte(uri))
}

func (h *Handler) GetDefaultURI() (string, error) {
	v, err := h.GetDefault(defaultURIKey)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", ErrNoEndpoint
	}
	return string(v), nil
}

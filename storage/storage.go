// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func singleKey(prefix byte) []byte {
	return []byte{prefix}
}

func addressKey(prefix byte, addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = prefix
	copy(k[1:], addr[:])
	return k
}

func uint64Key(prefix byte, v uint64) []byte {
	k := make([]byte, 1+consts.Uint64Len)
	k[0] = prefix
	binary.BigEndian.PutUint64(k[1:], v)
	return k
}

func getUint64(ctx context.Context, im state.Immutable, k []byte) (uint64, bool, error) {
	v, err := im.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return n, true, nil
}

func setUint64(ctx context.Context, mu state.Mutable, k []byte, v uint64) error {
	return mu.Insert(ctx, k, database.PackUInt64(v))
}

func getAddress(ctx context.Context, im state.Immutable, k []byte) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	addr, err := codec.ToAddress(v)
	if err != nil {
		return codec.EmptyAddress, false, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return addr, true, nil
}

func setAddress(ctx context.Context, mu state.Mutable, k []byte, addr codec.Address) error {
	v := make([]byte, codec.AddressLen)
	copy(v, addr[:])
	return mu.Insert(ctx, k, v)
}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	return addressKey(balancePrefix, addr)
}

// GetBalance returns 0 for accounts that do not exist.
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	bal, _, err := getUint64(ctx, im, BalanceKey(addr))
	return bal, err
}

func SetBalance(ctx context.Context, mu state.Mutable, addr codec.Address, balance uint64) error {
	k := BalanceKey(addr)
	if balance == 0 {
		return mu.Remove(ctx, k)
	}
	return setUint64(ctx, mu, k, balance)
}

func AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	bal, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, addr, nbal)
}

func SubBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	bal, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, addr, nbal)
}

func AdminKey() []byte {
	return singleKey(adminPrefix)
}

func GetAdmin(ctx context.Context, im state.Immutable) (codec.Address, error) {
	addr, _, err := getAddress(ctx, im, AdminKey())
	return addr, err
}

func SetAdmin(ctx context.Context, mu state.Mutable, addr codec.Address) error {
	return setAddress(ctx, mu, AdminKey(), addr)
}

func SupplyKey() []byte {
	return singleKey(supplyPrefix)
}

func GetSupply(ctx context.Context, im state.Immutable) (uint64, error) {
	supply, _, err := getUint64(ctx, im, SupplyKey())
	return supply, err
}

func SetSupply(ctx context.Context, mu state.Mutable, supply uint64) error {
	return setUint64(ctx, mu, SupplyKey(), supply)
}

func MaxLevelKey() []byte {
	return singleKey(maxLevelPrefix)
}

func GetMaxLevel(ctx context.Context, im state.Immutable) (uint64, error) {
	level, _, err := getUint64(ctx, im, MaxLevelKey())
	return level, err
}

func SetMaxLevel(ctx context.Context, mu state.Mutable, level uint64) error {
	return setUint64(ctx, mu, MaxLevelKey(), level)
}

func BaseURIKey() []byte {
	return singleKey(baseURIPrefix)
}

func GetBaseURI(ctx context.Context, im state.Immutable) (string, error) {
	v, err := im.GetValue(ctx, BaseURIKey())
	if errors.Is(err, database.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func SetBaseURI(ctx context.Context, mu state.Mutable, uri string) error {
	if len(uri) > MaxBaseURISize {
		return fmt.Errorf("%w: %d > %d", ErrBaseURITooLarge, len(uri), MaxBaseURISize)
	}
	return mu.Insert(ctx, BaseURIKey(), []byte(uri))
}

// [levelPrefix] + [tokenID]
func LevelKey(id uint64) []byte {
	return uint64Key(levelPrefix, id)
}

// GetLevel returns 0 for tokens that have never been assigned a level.
func GetLevel(ctx context.Context, im state.Immutable, id uint64) (uint64, error) {
	level, _, err := getUint64(ctx, im, LevelKey(id))
	return level, err
}

func SetLevel(ctx context.Context, mu state.Mutable, id uint64, level uint64) error {
	return setUint64(ctx, mu, LevelKey(id), level)
}

func AllowlistLenKey() []byte {
	return singleKey(allowlistLenPrefix)
}

func GetAllowlistLen(ctx context.Context, im state.Immutable) (uint64, error) {
	n, _, err := getUint64(ctx, im, AllowlistLenKey())
	return n, err
}

func SetAllowlistLen(ctx context.Context, mu state.Mutable, n uint64) error {
	return setUint64(ctx, mu, AllowlistLenKey(), n)
}

// [allowlistSlotPrefix] + [index]
func AllowlistSlotKey(index uint64) []byte {
	return uint64Key(allowlistSlotPrefix, index)
}

// GetAllowlistSlot returns [codec.EmptyAddress] for cleared or unwritten slots.
func GetAllowlistSlot(ctx context.Context, im state.Immutable, index uint64) (codec.Address, error) {
	addr, _, err := getAddress(ctx, im, AllowlistSlotKey(index))
	return addr, err
}

func SetAllowlistSlot(ctx context.Context, mu state.Mutable, index uint64, addr codec.Address) error {
	return setAddress(ctx, mu, AllowlistSlotKey(index), addr)
}

// [allowlistMemberPrefix] + [address]
func AllowlistMemberKey(addr codec.Address) []byte {
	return addressKey(allowlistMemberPrefix, addr)
}

func IsAllowlistMember(ctx context.Context, im state.Immutable, addr codec.Address) (bool, error) {
	_, err := im.GetValue(ctx, AllowlistMemberKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func SetAllowlistMember(ctx context.Context, mu state.Mutable, addr codec.Address, member bool) error {
	k := AllowlistMemberKey(addr)
	if !member {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, []byte{1})
}

func TreasuryKey() []byte {
	return singleKey(treasuryPrefix)
}

func GetTreasury(ctx context.Context, im state.Immutable) (uint64, error) {
	bal, _, err := getUint64(ctx, im, TreasuryKey())
	return bal, err
}

func SetTreasury(ctx context.Context, mu state.Mutable, balance uint64) error {
	return setUint64(ctx, mu, TreasuryKey(), balance)
}

// [ownerPrefix] + [tokenID]
func OwnerKey(id uint64) []byte {
	return uint64Key(ownerPrefix, id)
}

// GetOwner returns false if [id] has not been issued.
func GetOwner(ctx context.Context, im state.Immutable, id uint64) (codec.Address, bool, error) {
	return getAddress(ctx, im, OwnerKey(id))
}

func SetOwner(ctx context.Context, mu state.Mutable, id uint64, owner codec.Address) error {
	return setAddress(ctx, mu, OwnerKey(id), owner)
}

// [holderCountPrefix] + [address]
func HolderCountKey(addr codec.Address) []byte {
	return addressKey(holderCountPrefix, addr)
}

func GetHolderCount(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	n, _, err := getUint64(ctx, im, HolderCountKey(addr))
	return n, err
}

func SetHolderCount(ctx context.Context, mu state.Mutable, addr codec.Address, n uint64) error {
	return setUint64(ctx, mu, HolderCountKey(addr), n)
}

// [holderTokenPrefix] + [address] + [index]
func HolderTokenKey(addr codec.Address, index uint64) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint64Len)
	k[0] = holderTokenPrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint64(k[1+codec.AddressLen:], index)
	return k
}

func GetHolderToken(ctx context.Context, im state.Immutable, addr codec.Address, index uint64) (uint64, error) {
	id, ok, err := getUint64(ctx, im, HolderTokenKey(addr, index))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, database.ErrNotFound
	}
	return id, nil
}

func SetHolderToken(ctx context.Context, mu state.Mutable, addr codec.Address, index uint64, id uint64) error {
	return setUint64(ctx, mu, HolderTokenKey(addr, index), id)
}

// [txResultPrefix] + [txID]
func TxResultKey(txID ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen)
	k[0] = txResultPrefix
	copy(k[1:], txID[:])
	return k
}

// GetTxResult returns the raw result stored for [txID] and whether it exists.
func GetTxResult(ctx context.Context, im state.Immutable, txID ids.ID) ([]byte, bool, error) {
	v, err := im.GetValue(ctx, TxResultKey(txID))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func SetTxResult(ctx context.Context, mu state.Mutable, txID ids.ID, result []byte) error {
	return mu.Insert(ctx, TxResultKey(txID), result)
}

func GenesisKey() []byte {
	return singleKey(genesisPrefix)
}

// GetGenesis returns the hash of the genesis the state was initialized with.
func GetGenesis(ctx context.Context, im state.Immutable) (ids.ID, bool, error) {
	v, err := im.GetValue(ctx, GenesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	id, err := ids.ToID(v)
	if err != nil {
		return ids.Empty, false, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return id, true, nil
}

func SetGenesis(ctx context.Context, mu state.Mutable, genesisID ids.ID) error {
	return mu.Insert(ctx, GenesisKey(), genesisID[:])
}

func HeightKey() []byte {
	return singleKey(heightPrefix)
}

// GetHeight returns the number of transactions executed against the state.
func GetHeight(ctx context.Context, im state.Immutable) (uint64, error) {
	height, _, err := getUint64(ctx, im, HeightKey())
	return height, err
}

func SetHeight(ctx context.Context, mu state.Mutable, height uint64) error {
	return setUint64(ctx, mu, HeightKey(), height)
}

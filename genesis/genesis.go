// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/collectible"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

var ErrMissingAdmin = errors.New("missing admin")

type CustomAllocation struct {
	Address string `json:"address" yaml:"address"`
	Balance uint64 `json:"balance" yaml:"balance"`
}

// Genesis describes the collection and the native balances present when the
// chain starts.
type Genesis struct {
	Admin      string `json:"admin" yaml:"admin"`
	BaseURI    string `json:"baseURI" yaml:"baseURI"`
	MaxLevel   uint64 `json:"maxLevel" yaml:"maxLevel"`
	MaxSupply  uint64 `json:"maxSupply" yaml:"maxSupply"`
	MaxPerMint uint64 `json:"maxPerMint" yaml:"maxPerMint"`
	UnitPrice  uint64 `json:"unitPrice" yaml:"unitPrice"`

	CustomAllocation []*CustomAllocation `json:"customAllocation" yaml:"customAllocation"`
}

// Default returns a genesis with the default collection parameters. [Admin]
// and [BaseURI] must still be set.
func Default() *Genesis {
	return &Genesis{
		MaxLevel:   consts.DefaultMaxLevel,
		MaxSupply:  consts.DefaultMaxSupply,
		MaxPerMint: consts.DefaultMaxPerMint,
		UnitPrice:  consts.DefaultUnitPrice,
	}
}

// New returns a default genesis administered by [admin].
func New(admin codec.Address, baseURI string, customAllocations []*CustomAllocation) *Genesis {
	g := Default()
	g.Admin = admin.String()
	g.BaseURI = baseURI
	g.CustomAllocation = customAllocations
	return g
}

// Parse decodes [b] as JSON, falling back to YAML. Fields missing from [b]
// keep their default value.
func Parse(b []byte) (*Genesis, error) {
	g := Default()
	if json.Valid(b) {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, g); err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	admin, err := g.AdminAddress()
	if err != nil {
		return err
	}
	if admin == codec.EmptyAddress {
		return collectible.ErrZeroAddress
	}
	if len(g.BaseURI) == 0 {
		return collectible.ErrMissingBaseURI
	}
	if len(g.BaseURI) > storage.MaxBaseURISize {
		return storage.ErrBaseURITooLarge
	}
	return g.CollectionConfig().Verify()
}

func (g *Genesis) AdminAddress() (codec.Address, error) {
	if len(g.Admin) == 0 {
		return codec.EmptyAddress, ErrMissingAdmin
	}
	addr, err := codec.ParseAnyAddress(consts.HRP, g.Admin)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: %s", err, g.Admin)
	}
	return addr, nil
}

func (g *Genesis) CollectionConfig() collectible.Config {
	return collectible.Config{
		MaxSupply:  g.MaxSupply,
		MaxPerMint: g.MaxPerMint,
		UnitPrice:  g.UnitPrice,
	}
}

// Bytes returns the canonical JSON encoding of [g].
func (g *Genesis) Bytes() ([]byte, error) {
	return json.Marshal(g)
}

// ID commits to the canonical encoding of [g]. A node refuses to reopen a
// database initialized with a different ID.
func (g *Genesis) ID() (ids.ID, error) {
	b, err := g.Bytes()
	if err != nil {
		return ids.Empty, err
	}
	return hashing.ComputeHash256Array(b), nil
}

// InitializeState writes the collection parameters and the custom allocations
// to [mu].
func (g *Genesis) InitializeState(
	ctx context.Context,
	tracer trace.Tracer,
	mu state.Mutable,
	c *collectible.Collection,
) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	admin, err := g.AdminAddress()
	if err != nil {
		return err
	}
	if err := c.Initialize(ctx, mu, admin, g.BaseURI, g.MaxLevel); err != nil {
		return err
	}

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.ParseAnyAddress(consts.HRP, alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		supply, err = safemath.Add(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if _, err := storage.AddBalance(ctx, mu, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/api"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/server"
)

const Endpoint = "/collectible"

var _ api.HandlerFactory[api.VM] = (*JSONRPCServerFactory)(nil)

type JSONRPCServerFactory struct{}

func (JSONRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := server.NewHandler(NewJSONRPCServer(vm), api.Name)
	if err != nil {
		return api.Handler{}, err
	}
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

type JSONRPCServer struct {
	vm api.VM
}

func NewJSONRPCServer(vm api.VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	NetworkID uint32 `json:"networkId"`
	ChainID   ids.ID `json:"chainId"`
	Height    uint64 `json:"height"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	reply.NetworkID = j.vm.NetworkID()
	reply.ChainID = j.vm.ChainID()
	reply.Height = j.vm.Height()
	return nil
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.vm.Genesis()
	return nil
}

type TotalSupplyReply struct {
	TotalSupply uint64 `json:"totalSupply"`
	MaxSupply   uint64 `json:"maxSupply"`
	MaxPerMint  uint64 `json:"maxPerMint"`
	UnitPrice   uint64 `json:"unitPrice"`
}

func (j *JSONRPCServer) TotalSupply(req *http.Request, _ *struct{}, reply *TotalSupplyReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.TotalSupply")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	c := j.vm.Collection()
	reply.TotalSupply, err = c.TotalSupply(ctx, im)
	if err != nil {
		return err
	}
	cfg := c.Config()
	reply.MaxSupply = cfg.MaxSupply
	reply.MaxPerMint = cfg.MaxPerMint
	reply.UnitPrice = cfg.UnitPrice
	return nil
}

type TokenArgs struct {
	TokenID uint64 `json:"tokenId"`
}

type TokenURIReply struct {
	URI string `json:"uri"`
}

func (j *JSONRPCServer) TokenURI(req *http.Request, args *TokenArgs, reply *TokenURIReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.TokenURI")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.URI, err = j.vm.Collection().TokenURI(ctx, im, args.TokenID)
	return err
}

type LevelReply struct {
	Level uint64 `json:"level"`
}

// Level returns the level of a token. Identifiers that were never issued
// report level 0.
func (j *JSONRPCServer) Level(req *http.Request, args *TokenArgs, reply *LevelReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Level")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Level, err = j.vm.Collection().Level(ctx, im, args.TokenID)
	return err
}

func (j *JSONRPCServer) MaxLevel(req *http.Request, _ *struct{}, reply *LevelReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.MaxLevel")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Level, err = j.vm.Collection().MaxLevel(ctx, im)
	return err
}

type BaseURIReply struct {
	URI string `json:"uri"`
}

func (j *JSONRPCServer) BaseURI(req *http.Request, _ *struct{}, reply *BaseURIReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.BaseURI")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.URI, err = j.vm.Collection().BaseURI(ctx, im)
	return err
}

type AllowlistReply struct {
	// Slots holds every allowlist slot in order. Removed members leave
	// [codec.EmptyAddress] behind.
	Slots []codec.Address `json:"slots"`
}

func (j *JSONRPCServer) Allowlist(req *http.Request, _ *struct{}, reply *AllowlistReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Allowlist")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Slots, err = j.vm.Collection().Allowlist(ctx, im)
	return err
}

type AddressArgs struct {
	Address codec.Address `json:"address"`
}

type IsAllowedReply struct {
	Allowed bool `json:"allowed"`
}

func (j *JSONRPCServer) IsAllowed(req *http.Request, args *AddressArgs, reply *IsAllowedReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.IsAllowed")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Allowed, err = j.vm.Collection().IsAllowed(ctx, im, args.Address)
	return err
}

type OwnerOfReply struct {
	Owner codec.Address `json:"owner"`
}

func (j *JSONRPCServer) OwnerOf(req *http.Request, args *TokenArgs, reply *OwnerOfReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.OwnerOf")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Owner, err = j.vm.Collection().OwnerOf(ctx, im, args.TokenID)
	return err
}

type TokensOfOwnerReply struct {
	TokenIDs []uint64 `json:"tokenIds"`
}

func (j *JSONRPCServer) TokensOfOwner(req *http.Request, args *AddressArgs, reply *TokensOfOwnerReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.TokensOfOwner")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.TokenIDs, err = j.vm.Collection().TokensOfOwner(ctx, im, args.Address)
	return err
}

type TreasuryReply struct {
	Balance uint64 `json:"balance"`
}

func (j *JSONRPCServer) Treasury(req *http.Request, _ *struct{}, reply *TreasuryReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Treasury")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Balance, err = j.vm.Collection().Treasury(ctx, im)
	return err
}

type AdminReply struct {
	Admin codec.Address `json:"admin"`
}

func (j *JSONRPCServer) Admin(req *http.Request, _ *struct{}, reply *AdminReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Admin")
	defer span.End()

	im, err := j.vm.ImmutableState(ctx)
	if err != nil {
		return err
	}
	reply.Admin, err = j.vm.Collection().Admin(ctx, im)
	return err
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	balance, err := j.vm.Balance(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type TxArgs struct {
	TxID ids.ID `json:"txId"`
}

type TxReply struct {
	Height    uint64        `json:"height"`
	Timestamp int64         `json:"timestamp"`
	Actor     codec.Address `json:"actor"`
	Success   bool          `json:"success"`
	Error     string        `json:"error"`
	Output    []byte        `json:"output"`
}

func (r *TxReply) fill(h *chain.Result) {
	r.Height = h.Height
	r.Timestamp = h.Timestamp
	r.Actor = h.Actor
	r.Success = h.Success
	r.Error = string(h.Error)
	r.Output = h.Output
}

func (j *JSONRPCServer) Tx(req *http.Request, args *TxArgs, reply *TxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Tx")
	defer span.End()

	result, found, err := j.vm.GetResult(ctx, args.TxID)
	if err != nil {
		return err
	}
	if !found {
		return ErrTxNotFound
	}
	reply.fill(result)
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID ids.ID `json:"txId"`
	TxReply
}

// SubmitTx executes a signed transaction. Rejected transactions return an
// error. A transaction whose action failed is recorded and reported through
// [TxReply.Success].
func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *SubmitTxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, result, err := j.vm.SubmitBytes(ctx, args.Tx)
	if err != nil {
		return err
	}
	reply.TxID = tx.ID()
	reply.fill(result)
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/collectiblevm/actions"
	"github.com/ava-labs/collectiblevm/api"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/requester"
	"github.com/ava-labs/collectiblevm/utils"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	actionRegistry chain.ActionRegistry
	outputRegistry chain.OutputRegistry
	authRegistry   chain.AuthRegistry

	networkID uint32
	chainID   ids.ID
	g         *genesis.Genesis
}

// NewJSONRPCClient returns a client for the node serving [uri] (for example
// http://127.0.0.1:9650/ext).
func NewJSONRPCClient(uri string) (*JSONRPCClient, error) {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	actionRegistry, outputRegistry, err := actions.NewRegistry()
	if err != nil {
		return nil, err
	}
	authRegistry, err := auth.NewRegistry()
	if err != nil {
		return nil, err
	}
	return &JSONRPCClient{
		requester:      requester.New(uri, api.Name),
		actionRegistry: actionRegistry,
		outputRegistry: outputRegistry,
		authRegistry:   authRegistry,
	}, nil
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

// Network returns the network and chain the node serves. Both are cached
// after the first call.
func (cli *JSONRPCClient) Network(ctx context.Context) (uint32, ids.ID, error) {
	if cli.chainID != ids.Empty {
		return cli.networkID, cli.chainID, nil
	}

	resp := new(NetworkReply)
	err := cli.requester.SendRequest(
		ctx,
		"network",
		nil,
		resp,
	)
	if err != nil {
		return 0, ids.Empty, err
	}
	cli.networkID = resp.NetworkID
	cli.chainID = resp.ChainID
	return resp.NetworkID, resp.ChainID, nil
}

func (cli *JSONRPCClient) Height(ctx context.Context) (uint64, error) {
	resp := new(NetworkReply)
	err := cli.requester.SendRequest(
		ctx,
		"network",
		nil,
		resp,
	)
	return resp.Height, err
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		"genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) TotalSupply(ctx context.Context) (*TotalSupplyReply, error) {
	resp := new(TotalSupplyReply)
	err := cli.requester.SendRequest(
		ctx,
		"totalSupply",
		nil,
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) TokenURI(ctx context.Context, id uint64) (string, error) {
	resp := new(TokenURIReply)
	err := cli.requester.SendRequest(
		ctx,
		"tokenURI",
		&TokenArgs{TokenID: id},
		resp,
	)
	return resp.URI, err
}

func (cli *JSONRPCClient) Level(ctx context.Context, id uint64) (uint64, error) {
	resp := new(LevelReply)
	err := cli.requester.SendRequest(
		ctx,
		"level",
		&TokenArgs{TokenID: id},
		resp,
	)
	return resp.Level, err
}

func (cli *JSONRPCClient) MaxLevel(ctx context.Context) (uint64, error) {
	resp := new(LevelReply)
	err := cli.requester.SendRequest(
		ctx,
		"maxLevel",
		nil,
		resp,
	)
	return resp.Level, err
}

func (cli *JSONRPCClient) BaseURI(ctx context.Context) (string, error) {
	resp := new(BaseURIReply)
	err := cli.requester.SendRequest(
		ctx,
		"baseURI",
		nil,
		resp,
	)
	return resp.URI, err
}

func (cli *JSONRPCClient) Allowlist(ctx context.Context) ([]codec.Address, error) {
	resp := new(AllowlistReply)
	err := cli.requester.SendRequest(
		ctx,
		"allowlist",
		nil,
		resp,
	)
	return resp.Slots, err
}

func (cli *JSONRPCClient) IsAllowed(ctx context.Context, addr codec.Address) (bool, error) {
	resp := new(IsAllowedReply)
	err := cli.requester.SendRequest(
		ctx,
		"isAllowed",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Allowed, err
}

func (cli *JSONRPCClient) OwnerOf(ctx context.Context, id uint64) (codec.Address, error) {
	resp := new(OwnerOfReply)
	err := cli.requester.SendRequest(
		ctx,
		"ownerOf",
		&TokenArgs{TokenID: id},
		resp,
	)
	return resp.Owner, err
}

func (cli *JSONRPCClient) TokensOfOwner(ctx context.Context, addr codec.Address) ([]uint64, error) {
	resp := new(TokensOfOwnerReply)
	err := cli.requester.SendRequest(
		ctx,
		"tokensOfOwner",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.TokenIDs, err
}

func (cli *JSONRPCClient) Treasury(ctx context.Context) (uint64, error) {
	resp := new(TreasuryReply)
	err := cli.requester.SendRequest(
		ctx,
		"treasury",
		nil,
		resp,
	)
	return resp.Balance, err
}

func (cli *JSONRPCClient) Admin(ctx context.Context) (codec.Address, error) {
	resp := new(AdminReply)
	err := cli.requester.SendRequest(
		ctx,
		"admin",
		nil,
		resp,
	)
	return resp.Admin, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Amount, err
}

// Tx returns the recorded result of [txID]. [found] is false if the node has
// not executed it.
func (cli *JSONRPCClient) Tx(ctx context.Context, txID ids.ID) (*TxReply, bool, error) {
	resp := new(TxReply)
	err := cli.requester.SendRequest(
		ctx,
		"tx",
		&TxArgs{TxID: txID},
		resp,
	)
	switch {
	// We use string parsing here because the JSON-RPC library we use may not
	// allows us to perform errors.Is.
	case err != nil && strings.Contains(err.Error(), ErrTxNotFound.Error()):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return resp, true, nil
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, d []byte) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		"submitTx",
		&SubmitTxArgs{Tx: d},
		resp,
	)
	return resp, err
}

// GenerateTransaction signs [action] with [factory]. The timestamp is set to
// the end of the validity window so the node accepts it for as long as
// possible.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	factory chain.AuthFactory,
	action chain.Action,
	value uint64,
) (*chain.Transaction, error) {
	_, chainID, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, consts.ValidityWindow),
		ChainID:   chainID,
		Value:     value,
	}
	return chain.NewTx(base, action).Sign(factory, cli.actionRegistry, cli.authRegistry)
}

// Execute signs and submits [action] and decodes its output. A recorded but
// failed transaction is returned as [ErrTxFailed].
func (cli *JSONRPCClient) Execute(
	ctx context.Context,
	factory chain.AuthFactory,
	action chain.Action,
	value uint64,
) (ids.ID, chain.Output, error) {
	tx, err := cli.GenerateTransaction(ctx, factory, action, value)
	if err != nil {
		return ids.Empty, nil, err
	}
	resp, err := cli.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return tx.ID(), nil, err
	}
	if !resp.Success {
		return resp.TxID, nil, fmt.Errorf("%w: %s", ErrTxFailed, resp.Error)
	}
	output, err := chain.UnmarshalOutput(resp.Output, cli.outputRegistry)
	if err != nil {
		return resp.TxID, nil, err
	}
	return resp.TxID, output, nil
}

func executeTyped[T chain.Output](
	ctx context.Context,
	cli *JSONRPCClient,
	factory chain.AuthFactory,
	action chain.Action,
	value uint64,
) (T, error) {
	var typed T
	_, output, err := cli.Execute(ctx, factory, action, value)
	if err != nil {
		return typed, err
	}
	typed, ok := output.(T)
	if !ok {
		return typed, fmt.Errorf("%w: %T", ErrUnexpectedType, output)
	}
	return typed, nil
}

func (cli *JSONRPCClient) Reserve(ctx context.Context, factory chain.AuthFactory, count uint64) ([]uint64, error) {
	out, err := executeTyped[*actions.ReserveResult](ctx, cli, factory, &actions.Reserve{Count: count}, 0)
	if err != nil {
		return nil, err
	}
	return out.TokenIDs, nil
}

// Mint pays the unit price for each of [count] tokens.
func (cli *JSONRPCClient) Mint(ctx context.Context, factory chain.AuthFactory, count uint64) ([]uint64, error) {
	supply, err := cli.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}
	out, err := executeTyped[*actions.MintResult](ctx, cli, factory, &actions.Mint{Count: count}, count*supply.UnitPrice)
	if err != nil {
		return nil, err
	}
	return out.TokenIDs, nil
}

func (cli *JSONRPCClient) MintOne(ctx context.Context, factory chain.AuthFactory) (uint64, error) {
	supply, err := cli.TotalSupply(ctx)
	if err != nil {
		return 0, err
	}
	out, err := executeTyped[*actions.MintOneResult](ctx, cli, factory, &actions.MintOne{}, supply.UnitPrice)
	if err != nil {
		return 0, err
	}
	return out.TokenID, nil
}

func (cli *JSONRPCClient) IncrementLevel(ctx context.Context, factory chain.AuthFactory, id uint64) (uint64, error) {
	out, err := executeTyped[*actions.LevelResult](ctx, cli, factory, &actions.IncrementLevel{TokenID: id}, 0)
	if err != nil {
		return 0, err
	}
	return out.Level, nil
}

func (cli *JSONRPCClient) Upgrade(ctx context.Context, factory chain.AuthFactory, id uint64) (uint64, error) {
	out, err := executeTyped[*actions.UpgradeResult](ctx, cli, factory, &actions.Upgrade{TokenID: id}, 0)
	if err != nil {
		return 0, err
	}
	return out.Level, nil
}

func (cli *JSONRPCClient) AllowlistAdd(ctx context.Context, factory chain.AuthFactory, addr codec.Address) (bool, error) {
	out, err := executeTyped[*actions.AllowlistAddResult](ctx, cli, factory, &actions.AllowlistAdd{Address: addr}, 0)
	if err != nil {
		return false, err
	}
	return out.Changed, nil
}

func (cli *JSONRPCClient) AllowlistRemove(ctx context.Context, factory chain.AuthFactory, addr codec.Address) (bool, error) {
	out, err := executeTyped[*actions.AllowlistRemoveResult](ctx, cli, factory, &actions.AllowlistRemove{Address: addr}, 0)
	if err != nil {
		return false, err
	}
	return out.Changed, nil
}

func (cli *JSONRPCClient) SetBaseURI(ctx context.Context, factory chain.AuthFactory, uri string) error {
	_, err := executeTyped[*actions.SetBaseURIResult](ctx, cli, factory, &actions.SetBaseURI{URI: uri}, 0)
	return err
}

func (cli *JSONRPCClient) SetMaxLevel(ctx context.Context, factory chain.AuthFactory, level uint64) error {
	_, err := executeTyped[*actions.SetMaxLevelResult](ctx, cli, factory, &actions.SetMaxLevel{Level: level}, 0)
	return err
}

func (cli *JSONRPCClient) TransferAdmin(ctx context.Context, factory chain.AuthFactory, to codec.Address) error {
	_, err := executeTyped[*actions.TransferAdminResult](ctx, cli, factory, &actions.TransferAdmin{To: to}, 0)
	return err
}

// Withdraw moves the treasury to the admin and returns the amount moved.
func (cli *JSONRPCClient) Withdraw(ctx context.Context, factory chain.AuthFactory) (uint64, error) {
	out, err := executeTyped[*actions.WithdrawResult](ctx, cli, factory, &actions.Withdraw{}, 0)
	if err != nil {
		return 0, err
	}
	return out.Amount, nil
}

func (cli *JSONRPCClient) Fund(ctx context.Context, factory chain.AuthFactory, amount uint64) (uint64, error) {
	out, err := executeTyped[*actions.FundResult](ctx, cli, factory, &actions.Fund{}, amount)
	if err != nil {
		return 0, err
	}
	return out.Treasury, nil
}

func (cli *JSONRPCClient) Transfer(
	ctx context.Context,
	factory chain.AuthFactory,
	to codec.Address,
	amount uint64,
	memo []byte,
) (uint64, error) {
	out, err := executeTyped[*actions.TransferResult](ctx, cli, factory, &actions.Transfer{
		To:    to,
		Value: amount,
		Memo:  memo,
	}, 0)
	if err != nil {
		return 0, err
	}
	return out.SenderBalance, nil
}

// WaitForBalance polls until [addr] holds at least [min].
func (cli *JSONRPCClient) WaitForBalance(
	ctx context.Context,
	addr codec.Address,
	min uint64,
) error {
	return Wait(ctx, time.Second, func(ctx context.Context) (bool, error) {
		balance, err := cli.Balance(ctx, addr)
		if err != nil {
			return false, err
		}
		shouldExit := balance >= min
		if !shouldExit {
			utils.Outf(
				"{{yellow}}waiting for %s balance: %s{{/}}\n",
				utils.FormatBalance(min),
				addr,
			)
		}
		return shouldExit, nil
	})
}

func Wait(ctx context.Context, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	for ctx.Err() == nil {
		exit, err := check(ctx)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		time.Sleep(interval)
	}
	return ctx.Err()
}

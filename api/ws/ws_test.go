// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collectiblevm/actions"
	"github.com/ava-labs/collectiblevm/auth"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/config"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/crypto/ed25519"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/utils"
	"github.com/ava-labs/collectiblevm/vm"
)

func newFactory(t *testing.T) *auth.ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

func TestPacker(t *testing.T) {
	require := require.New(t)

	txID := ids.GenerateTestID()
	result := &chain.Result{
		Height:    3,
		Timestamp: 1_000,
		Actor:     codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID()),
		Success:   true,
		Output:    []byte{consts.WithdrawID, 0, 0, 0, 0, 0, 0, 0, 1},
	}

	msg, err := packResultMessage(txID, consts.WithdrawID, result)
	require.NoError(err)
	gotID, action, gotResult, err := unpackResultMessage(msg)
	require.NoError(err)
	require.Equal(txID, gotID)
	require.Equal(consts.WithdrawID, action)
	require.Equal(result, gotResult)

	_, _, _, err = unpackResultMessage(append(msg, 0))
	require.ErrorIs(err, codec.ErrExtraBytes)

	msg, err = packTxMessage(txID, nil, chain.ErrDuplicateTx)
	require.NoError(err)
	gotID, gotResult, reason, err := unpackTxMessage(msg)
	require.NoError(err)
	require.Equal(txID, gotID)
	require.Nil(gotResult)
	require.Equal(chain.ErrDuplicateTx.Error(), reason)

	_, _, _, err = unpackTxMessage([]byte{ResultMode})
	require.ErrorIs(err, ErrUnexpectedMode)

	long := strings.Repeat("a", 2*maxRejectionSize)
	msg, err = packTxMessage(txID, nil, errors.New(long))
	require.NoError(err)
	_, _, reason, err = unpackTxMessage(msg)
	require.NoError(err)
	require.Len(reason, maxRejectionSize)
}

func TestWebSocketServer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	admin := newFactory(t)
	g := genesis.New(admin.Address(), "B/", nil)
	cfg := config.NewDefaultConfig()
	cfg.DatabaseType = config.MemoryDatabase
	v := vm.New(logging.NoLog{}, cfg, g)
	require.NoError(v.Initialize(ctx))
	defer func() { require.NoError(v.Shutdown(ctx)) }()

	w, handler := NewWebSocketServer(v, 16)
	v.AddListener(w)
	srv := httptest.NewServer(handler)
	defer srv.Close()
	uri := "ws" + strings.TrimPrefix(srv.URL, "http")

	subscriber, err := NewWebSocketClient(uri)
	require.NoError(err)
	defer subscriber.Close()
	require.NoError(subscriber.RegisterResults())
	require.Eventually(func() bool {
		return w.resultListeners.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	issuer, err := NewWebSocketClient(uri)
	require.NoError(err)
	defer issuer.Close()

	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, consts.ValidityWindow),
		ChainID:   v.ChainID(),
	}
	tx, err := chain.NewTx(base, &actions.Reserve{Count: 2}).Sign(admin, v.ActionRegistry(), v.AuthRegistry())
	require.NoError(err)
	require.NoError(issuer.IssueTx(tx))

	resp, err := issuer.ListenTx()
	require.NoError(err)
	require.Equal(tx.ID(), resp.TxID)
	require.NotNil(resp.Result)
	require.True(resp.Result.Success)
	require.Empty(resp.Reason)

	executed, err := subscriber.ListenExecuted()
	require.NoError(err)
	require.Equal(tx.ID(), executed.TxID)
	require.Equal(consts.ReserveID, executed.Action)
	require.Equal(resp.Result, executed.Result)

	// Replays are rejected with a reason.
	require.NoError(issuer.IssueTx(tx))
	resp, err = issuer.ListenTx()
	require.NoError(err)
	require.Equal(tx.ID(), resp.TxID)
	require.Nil(resp.Result)
	require.Contains(resp.Reason, chain.ErrDuplicateTx.Error())
}

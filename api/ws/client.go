// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"errors"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/gorilla/websocket"

	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/pubsub"
)

const maxMessageSize = 128 * units.KiB

// Executed is a transaction result streamed by the server.
type Executed struct {
	TxID   ids.ID
	Action uint8
	Result *chain.Result
}

// TxResponse answers a transaction submitted with [WebSocketClient.IssueTx].
// [Result] is nil if the transaction was rejected.
type TxResponse struct {
	TxID   ids.ID
	Result *chain.Result
	Reason string
}

type WebSocketClient struct {
	conn *websocket.Conn

	wl sync.Mutex
	rl sync.Mutex
	cl sync.Once

	// frames may hold several messages so reads are buffered.
	pending [][]byte
}

// NewWebSocketClient dials the websocket server at [uri] (for example
// ws://127.0.0.1:9650/ext/ws).
func NewWebSocketClient(uri string) (*WebSocketClient, error) {
	uri = strings.TrimSuffix(uri, "/")
	if !strings.HasSuffix(uri, Endpoint) {
		uri += Endpoint
	}
	conn, resp, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	conn.SetReadLimit(maxMessageSize)
	return &WebSocketClient{conn: conn}, nil
}

func (c *WebSocketClient) write(msg []byte) error {
	c.wl.Lock()
	defer c.wl.Unlock()

	frame, err := pubsub.CreateBatchMessage(maxMessageSize, [][]byte{msg})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, frame)
}

// RegisterResults subscribes to every executed transaction.
func (c *WebSocketClient) RegisterResults() error {
	return c.write([]byte{ResultMode})
}

// IssueTx sends [tx] to the server for execution.
func (c *WebSocketClient) IssueTx(tx *chain.Transaction) error {
	return c.write(append([]byte{TxMode}, tx.Bytes()...))
}

func (c *WebSocketClient) next() ([]byte, error) {
	for len(c.pending) == 0 {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil, ErrClosed
			}
			return nil, err
		}
		msgs, err := pubsub.ParseBatchMessage(maxMessageSize, frame)
		if err != nil {
			return nil, err
		}
		c.pending = msgs
	}
	msg := c.pending[0]
	c.pending = c.pending[1:]
	return msg, nil
}

// ListenExecuted blocks until the next executed transaction is received.
// Transaction responses received in the meantime are dropped.
func (c *WebSocketClient) ListenExecuted() (*Executed, error) {
	c.rl.Lock()
	defer c.rl.Unlock()

	for {
		msg, err := c.next()
		if err != nil {
			return nil, err
		}
		if len(msg) == 0 || msg[0] != ResultMode {
			continue
		}
		txID, action, result, err := unpackResultMessage(msg)
		if err != nil {
			return nil, err
		}
		return &Executed{TxID: txID, Action: action, Result: result}, nil
	}
}

// ListenTx blocks until the next response to an issued transaction is
// received. Executed results received in the meantime are dropped.
func (c *WebSocketClient) ListenTx() (*TxResponse, error) {
	c.rl.Lock()
	defer c.rl.Unlock()

	for {
		msg, err := c.next()
		if err != nil {
			return nil, err
		}
		if len(msg) == 0 || msg[0] != TxMode {
			continue
		}
		txID, result, reason, err := unpackTxMessage(msg)
		if err != nil {
			return nil, err
		}
		return &TxResponse{TxID: txID, Result: result, Reason: reason}, nil
	}
}

// Close closes the connection to the server.
func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	if errors.Is(err, websocket.ErrCloseSent) {
		return nil
	}
	return err
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/collectiblevm/api"
	"github.com/ava-labs/collectiblevm/chain"
	"github.com/ava-labs/collectiblevm/config"
	"github.com/ava-labs/collectiblevm/pubsub"
)

const Endpoint = "/ws"

var (
	_ api.HandlerFactory[api.VM] = (*WebSocketServerFactory)(nil)
	_ chain.Listener             = (*WebSocketServer)(nil)
)

// With registers a [WebSocketServer] as a listener of [vm] and returns the
// factory for its handler. It returns nil if websockets are disabled.
func With(vm api.VM, cfg config.WebSocketConfig) *WebSocketServerFactory {
	if !cfg.Enabled {
		return nil
	}
	server, handler := NewWebSocketServer(vm, cfg.MaxPendingMessages)
	vm.AddListener(server)
	return NewWebSocketServerFactory(handler)
}

func NewWebSocketServerFactory(server *pubsub.Server) *WebSocketServerFactory {
	return &WebSocketServerFactory{
		handler: server,
	}
}

type WebSocketServerFactory struct {
	handler *pubsub.Server
}

func (w WebSocketServerFactory) New(api.VM) (api.Handler, error) {
	return api.Handler{
		Path:    Endpoint,
		Handler: w.handler,
	}, nil
}

// WebSocketServer streams executed transactions to subscribed connections
// and accepts signed transactions.
type WebSocketServer struct {
	vm     api.VM
	logger logging.Logger
	tracer trace.Tracer

	s *pubsub.Server

	resultListeners *pubsub.Connections

	txL         sync.Mutex
	txListeners map[ids.ID]*pubsub.Connections
}

func NewWebSocketServer(vm api.VM, maxPendingMessages int) (*WebSocketServer, *pubsub.Server) {
	w := &WebSocketServer{
		vm:              vm,
		logger:          vm.Logger(),
		tracer:          vm.Tracer(),
		resultListeners: pubsub.NewConnections(),
		txListeners:     map[ids.ID]*pubsub.Connections{},
	}
	cfg := pubsub.NewDefaultServerConfig()
	cfg.MaxPendingMessages = maxPendingMessages
	w.s = pubsub.New(w.logger, cfg, w.MessageCallback())
	return w, w.s
}

func (w *WebSocketServer) addTxListener(txID ids.ID, c *pubsub.Connection) {
	w.txL.Lock()
	defer w.txL.Unlock()

	connections, ok := w.txListeners[txID]
	if !ok {
		connections = pubsub.NewConnections()
		w.txListeners[txID] = connections
	}
	connections.Add(c)
}

// removeTxListeners returns and forgets the connections waiting on [txID].
func (w *WebSocketServer) removeTxListeners(txID ids.ID) (*pubsub.Connections, bool) {
	w.txL.Lock()
	defer w.txL.Unlock()

	connections, ok := w.txListeners[txID]
	delete(w.txListeners, txID)
	return connections, ok
}

// Executed publishes [result] to result subscribers and to the connection
// that submitted [tx], if any.
func (w *WebSocketServer) Executed(_ context.Context, tx *chain.Transaction, result *chain.Result) {
	txID := tx.ID()
	if w.resultListeners.Len() > 0 {
		msg, err := packResultMessage(txID, tx.Action.GetTypeID(), result)
		if err != nil {
			w.logger.Error("failed to pack result",
				zap.Stringer("txID", txID),
				zap.Error(err),
			)
		} else {
			inactiveConnections := w.s.Publish(msg, w.resultListeners)
			for _, conn := range inactiveConnections {
				w.resultListeners.Remove(conn)
			}
		}
	}

	listeners, ok := w.removeTxListeners(txID)
	if !ok {
		return
	}
	msg, err := packTxMessage(txID, result, nil)
	if err != nil {
		w.logger.Error("failed to pack tx result",
			zap.Stringer("txID", txID),
			zap.Error(err),
		)
		return
	}
	// Skip clearing inactive connections because they'll be deleted
	// regardless.
	_ = w.s.Publish(msg, listeners)
}

func (w *WebSocketServer) reject(txID ids.ID, reason error, c *pubsub.Connection) {
	msg, err := packTxMessage(txID, nil, reason)
	if err != nil {
		w.logger.Error("failed to pack rejection",
			zap.Stringer("txID", txID),
			zap.Error(err),
		)
		return
	}
	if err := c.Send(msg); err != nil {
		w.logger.Debug("failed to send rejection",
			zap.Stringer("txID", txID),
			zap.Error(err),
		)
	}
}

func (w *WebSocketServer) MessageCallback() pubsub.Callback {
	return func(msgBytes []byte, c *pubsub.Connection) {
		ctx, span := w.tracer.Start(context.Background(), "WebSocketServer.Callback")
		defer span.End()

		// Check empty messages
		if len(msgBytes) == 0 {
			w.logger.Error("failed to unmarshal msg",
				zap.Int("len", len(msgBytes)),
			)
			return
		}

		switch msgBytes[0] {
		case ResultMode:
			w.resultListeners.Add(c)
			w.logger.Debug("added result listener")
		case TxMode:
			msgBytes = msgBytes[1:]
			tx, err := chain.ParseTx(msgBytes, w.vm.ActionRegistry(), w.vm.AuthRegistry())
			if err != nil {
				w.logger.Debug("failed to unmarshal tx",
					zap.Int("len", len(msgBytes)),
					zap.Error(err),
				)
				w.reject(ids.Empty, err, c)
				return
			}

			txID := tx.ID()
			w.addTxListener(txID, c)
			if _, err := w.vm.Submit(ctx, tx); err != nil {
				w.removeTxListeners(txID)
				w.logger.Debug("failed to submit tx",
					zap.Stringer("txID", txID),
					zap.Error(err),
				)
				w.reject(txID, err, c)
				return
			}
			w.logger.Debug("submitted tx", zap.Stringer("id", txID))
		default:
			w.logger.Error("unexpected message type",
				zap.Int("len", len(msgBytes)),
				zap.Uint8("mode", msgBytes[0]),
			)
		}
	}
}

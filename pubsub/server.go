// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ServerConfig struct {
	// Size of the ws read buffer
	ReadBufferSize int `json:"readBufferSize" yaml:"readBufferSize"`
	// Size of the ws write buffer
	WriteBufferSize int `json:"writeBufferSize" yaml:"writeBufferSize"`
	// Time allowed to write a message to the peer.
	WriteWait time.Duration `json:"writeWait" yaml:"writeWait"`
	// Time allowed to read the next pong message from the peer.
	PongWait time.Duration `json:"pongWait" yaml:"pongWait"`
	// Send pings to peer with this period. Must be less than pongWait.
	PingPeriod time.Duration `json:"pingPeriod" yaml:"pingPeriod"`
	// Maximum message size in bytes allowed from peer.
	MaxReadMessageSize int `json:"maxReadMessageSize" yaml:"maxReadMessageSize"`
	// Maximum message size in bytes sent to a peer.
	MaxWriteMessageSize int `json:"maxWriteMessageSize" yaml:"maxWriteMessageSize"`
	// Maximum number of pending messages to send to a peer.
	MaxPendingMessages int `json:"maxPendingMessages" yaml:"maxPendingMessages"`
}

func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:      readBufferSize,
		WriteBufferSize:     writeBufferSize,
		WriteWait:           writeWait,
		PongWait:            pongWait,
		PingPeriod:          pingPeriod,
		MaxReadMessageSize:  maxMessageSize,
		MaxWriteMessageSize: maxMessageSize,
		MaxPendingMessages:  maxPendingMessages,
	}
}

// Server maintains the set of active clients and sends messages to the clients.
//
// Mount it on an HTTP route and connect with websocket.DefaultDialer.Dial().
type Server struct {
	log      logging.Logger
	config   *ServerConfig
	upgrader websocket.Upgrader

	// conns a set of all our connections
	conns *Connections
	// Callback function when server receives a message
	callback Callback
}

// New returns a new Server instance. The callback function [f] is called
// by the server in response to messages if not nil.
func New(
	log logging.Logger,
	config *ServerConfig,
	f Callback,
) *Server {
	return &Server{
		log:    log,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns:    NewConnections(),
		callback: f,
	}
}

// ServeHTTP adds a connection to the server, and starts go routines for
// reading and writing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	s.addConnection(newConnection(s, wsConn))
}

// Publish sends [msg] to every connection in [toConns] and returns the
// connections that are no longer active.
func (s *Server) Publish(msg []byte, toConns *Connections) []*Connection {
	inactiveConnections := make([]*Connection, 0)
	for _, conn := range toConns.Conns() {
		if !s.conns.Has(conn) {
			inactiveConnections = append(inactiveConnections, conn)
			continue
		}
		if err := conn.Send(msg); err != nil {
			s.log.Debug("dropping message to subscribed connection",
				zap.Error(err),
			)
		}
	}
	return inactiveConnections
}

// Broadcast sends [msg] to every open connection.
func (s *Server) Broadcast(msg []byte) {
	_ = s.Publish(msg, s.conns)
}

// Len returns the number of open connections.
func (s *Server) Len() int {
	return s.conns.Len()
}

func (s *Server) addConnection(conn *Connection) {
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

func (s *Server) removeConnection(conn *Connection) {
	s.conns.Remove(conn)
	conn.deactivate()
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Callback is invoked for every message read from a connection.
type Callback func([]byte, *Connection)

// Connection is a single websocket subscriber.
type Connection struct {
	s *Server

	// The websocket connection.
	conn *websocket.Conn

	l sync.Mutex
	// Buffered channel of outbound messages. Closed once the connection
	// stops accepting messages.
	send   chan []byte
	closed bool
}

func newConnection(s *Server, conn *websocket.Conn) *Connection {
	return &Connection{
		s:    s,
		conn: conn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	}
}

func (c *Connection) deactivate() {
	c.l.Lock()
	defer c.l.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Send queues [msg] for delivery. It never blocks.
func (c *Connection) Send(msg []byte) error {
	c.l.Lock()
	defer c.l.Unlock()

	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// readPump pumps messages from the websocket connection to the callback.
//
// There is at most one reader on a connection.
func (c *Connection) readPump() {
	defer func() {
		c.s.removeConnection(c)
		// close is called by both the writePump and the readPump so one of them
		// will always error
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(c.s.config.MaxReadMessageSize))
	// SetReadDeadline returns an error if the connection is corrupted
	if err := c.conn.SetReadDeadline(time.Now().Add(c.s.config.PongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.s.config.PongWait))
	})

	for {
		_, reader, err := c.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.s.log.Debug("unexpected close in websockets",
					zap.Error(err),
				)
			}
			return
		}
		if c.s.callback == nil {
			continue
		}
		msgBytes, err := io.ReadAll(reader)
		if err != nil {
			c.s.log.Debug("unexpected error reading bytes from websockets",
				zap.Error(err),
			)
			return
		}
		msgs, err := ParseBatchMessage(c.s.config.MaxReadMessageSize, msgBytes)
		if err != nil {
			c.s.log.Debug("unable to read websockets message",
				zap.Error(err),
			)
			return
		}
		for _, msg := range msgs {
			c.s.callback(msg, c)
		}
	}
}

// writePump pumps queued messages to the websocket connection.
//
// There is at most one writer on a connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.s.config.PingPeriod)
	defer func() {
		c.s.removeConnection(c)
		ticker.Stop()
		// close is called by both the writePump and the readPump so one of them
		// will always error
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.s.config.WriteWait)); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to set the write deadline"),
					zap.Error(err),
				)
				return
			}
			if !ok {
				// The server closed the channel. Attempt to close the connection
				// gracefully.
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			frame, err := CreateBatchMessage(c.s.config.MaxWriteMessageSize, [][]byte{message})
			if err != nil {
				c.s.log.Debug("dropping message",
					zap.Int("size", len(message)),
					zap.Error(err),
				)
				continue
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to write message"),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.s.config.WriteWait)); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to set the write deadline"),
					zap.Error(err),
				)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"SlideBoard/internal/logging"
)

var (
	ErrRemote = errors.New("net: remote error")
	ErrClosed = errors.New("net: connection closed")
)

// Client is a session on a remote Server.
type Client struct {
	Session string

	conn *websocket.Conn
	wmu  sync.Mutex

	mu      sync.Mutex
	pending map[string]chan Reply
	err     error

	events chan Event
	done   chan struct{}
}

// Dial connects to a Server at url, for example ws://host:8080/ws, and
// waits for its hello.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("net: dial %s: %w", url, err)
	}

	var hello Event
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("net: read hello: %w", err)
	}
	if hello.Type != TypeHello {
		conn.Close()
		return nil, fmt.Errorf("net: expected hello, got %q", hello.Type)
	}

	c := &Client{
		Session: hello.Session,
		conn:    conn,
		pending: make(map[string]chan Reply),
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Events delivers change notifications from other sessions. Events are
// dropped while the channel is full. It is closed when the connection ends.
func (c *Client) Events() <-chan Event { return c.events }

// Call sends cmd and waits for its reply. A missing ID is filled in. A
// reply carrying an error is returned together with an error wrapping
// ErrRemote.
func (c *Client) Call(ctx context.Context, cmd Command) (Reply, error) {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	ch := make(chan Reply, 1)

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return Reply{}, err
	}
	c.pending[cmd.ID] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, cmd.ID)
		c.mu.Unlock()
	}()

	c.wmu.Lock()
	err := c.conn.WriteJSON(cmd)
	c.wmu.Unlock()
	if err != nil {
		return Reply{}, fmt.Errorf("net: send %s: %w", cmd.Op, err)
	}

	select {
	case r := <-ch:
		if r.Error != "" {
			return r, fmt.Errorf("%w: %s", ErrRemote, r.Error)
		}
		return r, nil
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return Reply{}, c.err
	}
}

// Close ends the session.
func (c *Client) Close() error {
	c.wmu.Lock()
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.wmu.Unlock()
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) readLoop() {
	defer close(c.events)
	defer close(c.done)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.err = fmt.Errorf("%w: %v", ErrClosed, err)
			c.mu.Unlock()
			return
		}

		var head struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		}
		if err := json.Unmarshal(data, &head); err != nil {
			logging.Logger().Debug("bad message", "err", err)
			continue
		}

		switch head.Type {
		case TypeReply:
			var r Reply
			if err := json.Unmarshal(data, &r); err != nil {
				logging.Logger().Debug("bad reply", "err", err)
				continue
			}
			c.mu.Lock()
			ch := c.pending[r.ID]
			c.mu.Unlock()
			if ch != nil {
				ch <- r
			}
		case TypeChanged:
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				continue
			}
			select {
			case c.events <- ev:
			default:
				logging.Logger().Debug("event dropped", "session", ev.Session)
			}
		}
	}
}

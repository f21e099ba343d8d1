// Package wsconn provides a WebSocket client with reconnection and keepalive.
package wsconn

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/fd1az/cap-alpha/internal/apperror"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateClosed       State = "closed"
)

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	Name           string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite
	PingInterval   time.Duration
	PongTimeout    time.Duration
	MaxMessageSize int64
}

// DefaultConfig returns defaults for a long-lived stream.
func DefaultConfig(url, name string) Config {
	return Config{
		URL:            url,
		Name:           name,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		PingInterval:   30 * time.Second,
		PongTimeout:    10 * time.Second,
		MaxMessageSize: 1 << 20,
	}
}

// MessageHandler receives every inbound message.
type MessageHandler func(ctx context.Context, msg []byte)

// StateHandler is notified of every state transition. err carries the cause
// of a disconnect, if any.
type StateHandler func(state State, err error)

// Client is a reconnecting WebSocket client.
type Client struct {
	cfg Config

	mu        sync.RWMutex
	state     State
	conn      *websocket.Conn
	onMessage MessageHandler
	onState   StateHandler

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// New creates a client. It does not dial.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, apperror.New(apperror.CodeRequiredField, apperror.WithContext("wsconn url"))
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		cfg:    cfg,
		state:  StateDisconnected,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// OnMessage sets the inbound message handler. Call before Connect.
func (c *Client) OnMessage(h MessageHandler) {
	c.mu.Lock()
	c.onMessage = h
	c.mu.Unlock()
}

// OnStateChange sets the state transition handler. Call before Connect.
func (c *Client) OnStateChange(h StateHandler) {
	c.mu.Lock()
	c.onState = h
	c.mu.Unlock()
}

// Connect dials the server and starts the read loop. Later disconnects are
// retried in the background with exponential backoff.
func (c *Client) Connect(ctx context.Context) error {
	if c.State() == StateClosed {
		return apperror.New(apperror.CodeWebSocketClosed, apperror.WithContext(c.cfg.Name))
	}
	c.setState(StateConnecting, nil)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected, err)
		return apperror.New(apperror.CodeWebSocketConnectionError,
			apperror.WithContext(c.cfg.Name), apperror.WithCause(err))
	}
	c.attach(conn)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(c.cfg.MaxMessageSize)
	}
	return conn, nil
}

func (c *Client) attach(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.setState(StateConnected, nil)

	go c.readLoop(conn)
	if c.cfg.PingInterval > 0 {
		go c.pingLoop(conn)
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(c.ctx)
		if err != nil {
			c.handleDisconnect(conn, err)
			return
		}
		c.mu.RLock()
		h := c.onMessage
		c.mu.RUnlock()
		if h != nil {
			h(c.ctx, data)
		}
	}
}

func (c *Client) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(c.ctx, c.cfg.PongTimeout)
			err := conn.Ping(ctx)
			cancel()
			if err != nil {
				// read loop observes the close and reconnects
				_ = conn.Close(websocket.StatusGoingAway, "pong timeout")
				return
			}
		}
	}
}

func (c *Client) handleDisconnect(conn *websocket.Conn, cause error) {
	c.mu.Lock()
	if c.state == StateClosed || c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.mu.Unlock()

	_ = conn.CloseNow()
	c.setState(StateReconnecting, cause)
	go c.reconnect(cause)
}

func (c *Client) reconnect(cause error) {
	backoff := c.cfg.InitialBackoff
	for attempt := 1; c.cfg.MaxReconnects == 0 || attempt <= c.cfg.MaxReconnects; attempt++ {
		select {
		case <-c.ctx.Done():
			return
		case <-time.After(backoff):
		}

		conn, err := c.dial(c.ctx)
		if err == nil {
			if c.State() == StateClosed {
				_ = conn.CloseNow()
				return
			}
			c.attach(conn)
			return
		}
		cause = err
		backoff = min(backoff*2, c.cfg.MaxBackoff)
	}
	c.setState(StateDisconnected, cause)
}

// Send writes a text message.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	c.mu.RLock()
	conn, state := c.conn, c.state
	c.mu.RUnlock()

	if conn == nil || state != StateConnected {
		return apperror.New(apperror.CodeWebSocketClosed, apperror.WithContext(c.cfg.Name))
	}
	if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
		return apperror.New(apperror.CodeWebSocketSendError,
			apperror.WithContext(c.cfg.Name), apperror.WithCause(err))
	}
	return nil
}

// SendJSON encodes v and sends it.
func (c *Client) SendJSON(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperror.New(apperror.CodeInvalidFormat, apperror.WithCause(err))
	}
	return c.Send(ctx, data)
}

// State returns the current state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsConnected reports whether the client is currently connected.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Close stops reconnection and closes the socket. It is idempotent.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		conn := c.conn
		c.conn = nil
		c.mu.Unlock()

		c.setState(StateClosed, nil)
		if conn != nil {
			if err := conn.Close(websocket.StatusNormalClosure, ""); err != nil && !errors.Is(err, net.ErrClosed) {
				_ = conn.CloseNow()
			}
		}
		c.cancel()
	})
	return nil
}

func (c *Client) setState(s State, err error) {
	c.mu.Lock()
	if c.state == StateClosed && s != StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = s
	h := c.onState
	c.mu.Unlock()

	if h != nil {
		h(s, err)
	}
}

package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/vladimirvolkov/freethrow/internal/middleware"
)

const writeTimeout = 5 * time.Second

// frameConn is the part of *websocket.Conn a Conn uses.
type frameConn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// Conn wraps one WebSocket with a buffered outbound queue.
type Conn struct {
	ws       frameConn
	sendCh   chan []byte
	done     chan struct{}
	once     sync.Once
	ID       string
	Nickname string
	IP       string
	limiter  *middleware.IPRateLimiter
}

func NewConn(ws *websocket.Conn, id string, ip string, limiter *middleware.IPRateLimiter) *Conn {
	return newConn(ws, id, ip, limiter)
}

func newConn(ws frameConn, id string, ip string, limiter *middleware.IPRateLimiter) *Conn {
	return &Conn{
		ws:      ws,
		sendCh:  make(chan []byte, 64),
		done:    make(chan struct{}),
		ID:      id,
		IP:      ip,
		limiter: limiter,
	}
}

// Send queues msg for the write loop. A full buffer drops the message.
func (c *Conn) Send(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		slog.Warn("encode failed", "conn", c.ID, "err", err)
		return
	}
	select {
	case c.sendCh <- data:
	default:
		slog.Warn("send buffer full, dropping message", "conn", c.ID, "type", msg.Type)
	}
}

// ReadLoop decodes frames onto the returned channel until the socket fails
// or ctx is done. A read error closes the conn.
func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, 64)
	go func() {
		defer close(ch)
		for {
			_, data, err := c.ws.Read(ctx)
			if err != nil {
				slog.Debug("read ended", "conn", c.ID, "err", err)
				c.Close()
				return
			}
			msg, err := Decode(data)
			if err != nil {
				slog.Warn("bad frame", "conn", c.ID, "err", err)
				continue
			}
			// Per-IP message rate limiting. Over-limit frames are dropped
			// silently, the client stays connected.
			if c.limiter != nil && !c.allowed(msg) {
				slog.Debug("rate limited", "conn", c.ID, "type", msg.Type)
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// allowed charges msg against the limiter. Moves and pings come from a
// stream, so they give way before anything that changes game state.
func (c *Conn) allowed(msg Message) bool {
	if msg.Streamed() {
		return c.limiter.StreamAllowed(c.IP)
	}
	return c.limiter.MessageAllowed(c.IP)
}

// WriteLoop drains the send buffer until the conn closes or ctx is done.
// Each write gets its own deadline so a stalled client cannot pin it.
func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				slog.Warn("write failed", "conn", c.ID, "err", err)
				c.Close()
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) Close() {
	c.CloseWith(websocket.StatusNormalClosure, "")
}

// CloseWith closes the connection once with the given status.
func (c *Conn) CloseWith(code websocket.StatusCode, reason string) {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(code, reason)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Package transport carries packets over a websocket connection, one
// encoded line per text frame. It guarantees that inbound packets are
// delivered to the session callback in arrival order, from a single
// goroutine.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/pokermania/pokercli/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Transport is a websocket connection speaking the textual packet
// format. Sends are fire-and-forget: failures are logged, never
// returned to gameplay code.
type Transport struct {
	serverURL string
	conn      *websocket.Conn
	send      chan protocol.Packet
	onPacket  func(protocol.Packet)
	logger    *log.Logger
	clock     quartz.Clock

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu        sync.RWMutex
	connected bool
}

// New creates a transport for the given server URL. onPacket receives
// every decoded inbound packet, serially.
func New(serverURL string, onPacket func(protocol.Packet), logger *log.Logger, clock quartz.Clock) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	return &Transport{
		serverURL: serverURL,
		send:      make(chan protocol.Packet, sendBuffer),
		onPacket:  onPacket,
		logger:    logger.WithPrefix("transport"),
		clock:     clock,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Connect dials the server and starts the read and write pumps.
func (t *Transport) Connect() error {
	u, err := url.Parse(t.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}

	t.logger.Info("connecting", "url", u.String())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	t.mu.Lock()
	t.conn = conn
	t.connected = true
	t.mu.Unlock()

	go t.readPump()
	go t.writePump()
	return nil
}

// Close shuts the connection down. Safe to call more than once.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.cancel()
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.conn != nil {
			_ = t.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = t.conn.Close()
			t.connected = false
		}
	})
	return nil
}

// IsConnected reports whether the connection is up.
func (t *Transport) IsConnected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.connected
}

// Done is closed when the connection is gone; callers discard their
// session and rebuild on reconnect.
func (t *Transport) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Send queues a packet for delivery. It never blocks and never fails
// the caller: a full buffer or closed connection is logged and the
// packet dropped.
func (t *Transport) Send(pkt protocol.Packet) {
	select {
	case t.send <- pkt:
	case <-t.ctx.Done():
		t.logger.Error("send on closed transport", "packet", pkt.Kind().String())
	default:
		t.logger.Error("send buffer full, dropping packet", "packet", pkt.Kind().String())
	}
}

// readPump reads frames, decodes them and hands packets to the session
// callback. Running alone on one goroutine, it is what serializes all
// replica mutation into arrival order.
func (t *Transport) readPump() {
	defer func() {
		t.mu.Lock()
		t.connected = false
		t.mu.Unlock()
		t.cancel()
	}()

	for {
		select {
		case <-t.ctx.Done():
			return
		default:
		}

		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				t.logger.Error("websocket error", "error", err)
			}
			return
		}

		pkt, err := protocol.Decode(string(data))
		if err != nil {
			t.logger.Error("undecodable frame", "error", err, "frame", string(data))
			continue
		}
		t.onPacket(pkt)
	}
}

// writePump drains the send queue and keeps the connection alive with
// pings on the injected clock.
func (t *Transport) writePump() {
	ticker := t.clock.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = t.conn.Close()
	}()

	for {
		select {
		case pkt := <-t.send:
			_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			line := protocol.Encode(pkt)
			if err := t.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				t.logger.Error("failed to write packet", "packet", pkt.Kind().String(), "error", err)
				return
			}

		case <-ticker.C:
			_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-t.ctx.Done():
			return
		}
	}
}

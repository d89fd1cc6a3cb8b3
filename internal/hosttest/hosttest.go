// Package hosttest provides an in-process stand-in for the host application.
//
// A Host accepts one plugin connection on the loopback interface, records every
// frame the plugin writes and lets a test push event frames and close the socket
// with any code.
package hosttest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/luciancaetano/deckconn/internal/params"
	"github.com/luciancaetano/deckconn/protocol"
)

// DefaultRegisterEvent is the registration verb the real host passes.
const DefaultRegisterEvent = "registerPlugin"

// ErrNoPlugin is returned when no plugin is connected.
var ErrNoPlugin = errors.New("no plugin connected")

// Frame is one frame written by the plugin.
type Frame struct {
	Raw     []byte
	Command protocol.Command
	Err     error
}

// Host is a fake host listening on 127.0.0.1.
type Host struct {
	server   *httptest.Server
	upgrader websocket.Upgrader
	frames   chan Frame

	connected chan struct{}
	gone      chan struct{}

	mu      sync.Mutex
	conn    *websocket.Conn
	readErr error

	writeMu sync.Mutex
}

// New starts a host and stops it when the test ends.
func New(t testing.TB) *Host {
	t.Helper()

	h := &Host{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		frames:    make(chan Frame, 256),
		connected: make(chan struct{}),
		gone:      make(chan struct{}),
	}
	h.server = httptest.NewServer(http.HandlerFunc(h.handleWebSocket))
	t.Cleanup(h.Close)
	return h
}

// Port returns the port the host listens on.
func (h *Host) Port() int {
	u, err := url.Parse(h.server.URL)
	if err != nil {
		return 0
	}
	port, _ := strconv.Atoi(u.Port())
	return port
}

// Parameters returns launch parameters pointing at this host.
// An empty pluginUUID is replaced by a random UUID.
func (h *Host) Parameters(pluginUUID string) params.Parameters {
	if pluginUUID == "" {
		pluginUUID = uuid.NewString()
	}
	return params.Parameters{
		Port:          h.Port(),
		PluginUUID:    pluginUUID,
		RegisterEvent: DefaultRegisterEvent,
		Info:          "{}",
	}
}

// handleWebSocket accepts the plugin connection. Only the first plugin is kept.
func (h *Host) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	if h.conn != nil {
		h.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "already connected"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	h.conn = conn
	h.mu.Unlock()
	close(h.connected)

	go h.readPlugin(conn)
}

// readPlugin records frames until the plugin goes away.
func (h *Host) readPlugin(conn *websocket.Conn) {
	defer close(h.gone)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.mu.Lock()
			h.readErr = err
			h.mu.Unlock()
			return
		}

		cmd, err := protocol.DecodeCommand(data)
		h.frames <- Frame{Raw: data, Command: cmd, Err: err}
	}
}

// WaitConnected blocks until a plugin connected.
func (h *Host) WaitConnected(ctx context.Context) error {
	select {
	case <-h.connected:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next frame written by the plugin.
func (h *Host) Next(ctx context.Context) (Frame, error) {
	select {
	case f := <-h.frames:
		return f, nil
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

// SendFrame writes raw bytes to the plugin as a text frame.
func (h *Host) SendFrame(data []byte) error {
	conn, err := h.plugin()
	if err != nil {
		return err
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// SendEvent marshals v to JSON and writes it to the plugin.
func (h *Host) SendEvent(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return h.SendFrame(data)
}

// CloseWithCode sends a close frame with code and reason and drops the socket
// once the plugin answered or a second passed.
func (h *Host) CloseWithCode(code int, reason string) error {
	conn, err := h.plugin()
	if err != nil {
		return err
	}

	message := websocket.FormatCloseMessage(code, reason)
	h.writeMu.Lock()
	err = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	h.writeMu.Unlock()
	if err != nil {
		return err
	}

	select {
	case <-h.gone:
	case <-time.After(time.Second):
	}
	return conn.Close()
}

// Drop closes the TCP connection without a close frame.
func (h *Host) Drop() error {
	conn, err := h.plugin()
	if err != nil {
		return err
	}
	return conn.NetConn().Close()
}

// Gone is closed once the plugin connection ended.
func (h *Host) Gone() <-chan struct{} {
	return h.gone
}

// CloseCode returns the close code the plugin sent, or 0 if it sent none.
func (h *Host) CloseCode() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	var closeErr *websocket.CloseError
	if errors.As(h.readErr, &closeErr) {
		return closeErr.Code
	}
	return 0
}

// Close stops the host and drops any plugin connection.
func (h *Host) Close() {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	h.server.Close()
}

func (h *Host) plugin() (*websocket.Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return nil, ErrNoPlugin
	}
	return h.conn, nil
}

package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/luciancaetano/deckconn"
	"github.com/luciancaetano/deckconn/internal/appinfo"
	"github.com/luciancaetano/deckconn/internal/params"
	"github.com/luciancaetano/deckconn/protocol"
)

const (
	pingInterval = 54 * time.Second
	sendBuffer   = 256
)

var errNilSubscriber = errors.New("subscriber is required")

// outbound is a frame queued for the write pump. The pump answers on done.
type outbound struct {
	verb string
	data []byte
	done chan error
}

// Conn implements the deckconn.Connection interface
type Conn struct {
	params       params.Parameters
	subscriber   deckconn.Subscriber
	logger       *slog.Logger
	dialer       *websocket.Dialer
	writeTimeout time.Duration
	limiter      *rate.Limiter
	metrics      *metrics

	ctx    context.Context
	cancel context.CancelFunc
	sendCh chan outbound
	done   chan struct{}

	mu      sync.RWMutex
	conn    *websocket.Conn
	info    *appinfo.Info
	state   deckconn.State
	err     error
	closing bool

	closeOnce sync.Once
}

var _ deckconn.Connection = (*Conn)(nil)

// NewConn creates a connection that is not started yet.
func NewConn(cfg *Config) *Conn {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Conn{
		params:       cfg.Parameters,
		subscriber:   cfg.Subscriber,
		logger:       cfg.Logger.With("plugin_uuid", cfg.Parameters.PluginUUID),
		dialer:       cfg.Dialer,
		writeTimeout: cfg.WriteTimeout,
		limiter:      cfg.RateLimitConfig.newLimiter(),
		metrics:      newMetrics(cfg.MetricsRegisterer),
		ctx:          ctx,
		cancel:       cancel,
		sendCh:       make(chan outbound, sendBuffer),
		done:         make(chan struct{}),
		state:        deckconn.StateDisconnected,
	}
}

// Start validates the launch parameters, dials the host and registers the plugin
func (c *Conn) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != deckconn.StateDisconnected {
		c.mu.Unlock()
		return deckconn.ErrAlreadyStarted
	}
	c.state = deckconn.StateConnecting
	c.mu.Unlock()

	if c.subscriber == nil {
		return c.fail(fmt.Errorf("%w: %w", deckconn.ErrInvalidParameters, errNilSubscriber))
	}
	if err := c.params.Validate(); err != nil {
		return c.fail(err)
	}
	info, err := appinfo.Parse(c.params.Info)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %w", deckconn.ErrInvalidParameters, err))
	}
	if _, err := uuid.Parse(c.params.PluginUUID); err != nil {
		c.logger.Warn("plugin uuid is not a UUID", "error", err)
	}

	registration, err := protocol.Encode(protocol.RegisterPlugin{Event: c.params.RegisterEvent, UUID: c.params.PluginUUID})
	if err != nil {
		return c.fail(fmt.Errorf("%s: %w", deckconn.ErrMsgFailedToRegister, err))
	}

	u := url.URL{
		Scheme: deckconn.Scheme,
		Host:   net.JoinHostPort(deckconn.LoopbackHost, strconv.Itoa(c.params.Port)),
	}
	c.logger.Debug("connecting to host", "url", u.String())

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return c.fail(fmt.Errorf("%s %s: %w", deckconn.ErrMsgFailedToConnect, u.String(), err))
	}

	c.mu.Lock()
	if c.state == deckconn.StateClosed {
		c.mu.Unlock()
		conn.Close()
		return deckconn.ErrConnectionClosed
	}
	c.conn = conn
	c.info = info
	c.mu.Unlock()

	conn.SetReadLimit(protocol.MaxFrameSize)

	// Registration is written before the pumps exist so nothing can overtake it.
	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, registration); err != nil {
		return c.fail(fmt.Errorf("%s: %w", deckconn.ErrMsgFailedToRegister, err))
	}
	c.metrics.commandSent(c.params.RegisterEvent, nil)

	c.mu.Lock()
	if c.state == deckconn.StateClosed {
		c.mu.Unlock()
		return deckconn.ErrConnectionClosed
	}
	c.state = deckconn.StateRegistered
	c.mu.Unlock()

	c.logger.Info("registered with host", "port", c.params.Port, "register_event", c.params.RegisterEvent)

	go c.writePump()
	go c.readLoop()

	return nil
}

// Send encodes cmd and writes it to the host
func (c *Conn) Send(ctx context.Context, cmd protocol.Command) error {
	data, err := protocol.Encode(cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", deckconn.ErrMsgFailedToEncode, err)
	}
	verb := cmd.Verb()

	switch c.State() {
	case deckconn.StateDisconnected, deckconn.StateConnecting:
		return deckconn.ErrNotConnected
	case deckconn.StateClosed:
		return deckconn.ErrConnectionClosed
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.sendFailed(verb, err)
		}
	}

	req := outbound{verb: verb, data: data, done: make(chan error, 1)}
	select {
	case c.sendCh <- req:
	case <-ctx.Done():
		return c.sendFailed(verb, ctx.Err())
	case <-c.ctx.Done():
		return deckconn.ErrConnectionClosed
	}

	select {
	case err := <-req.done:
		if err != nil {
			return c.sendFailed(verb, err)
		}
		c.metrics.commandSent(verb, nil)
		return nil
	case <-ctx.Done():
		return c.sendFailed(verb, ctx.Err())
	case <-c.ctx.Done():
		return deckconn.ErrConnectionClosed
	}
}

// sendFailed logs and counts a command that did not reach the host.
func (c *Conn) sendFailed(verb string, err error) error {
	c.metrics.commandSent(verb, err)
	c.logger.Error(deckconn.ErrMsgFailedToSend, "event", verb, "error", err)
	return fmt.Errorf("%s %q: %w", deckconn.ErrMsgFailedToSend, verb, err)
}

// Close sends a normal closure frame and stops the receive loop
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.state == deckconn.StateClosed || c.closing {
		c.mu.Unlock()
		return nil
	}
	c.closing = true
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		c.finish(nil)
		return nil
	}

	deadline := time.Now().Add(closeGracePeriod)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := conn.WriteControl(websocket.CloseMessage, message, deadline)

	// Give the host a chance to echo the close frame before dropping the socket.
	if err == nil {
		timer := time.NewTimer(time.Until(deadline))
		select {
		case <-c.done:
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}

	c.finish(nil)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return err
	}
	return nil
}

// State returns the current lifecycle state
func (c *Conn) State() deckconn.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Done is closed once the connection reached StateClosed
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the connection closed
func (c *Conn) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Wait blocks until the connection is closed or ctx is done
func (c *Conn) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Info returns the decoded -info document. It is nil before Start.
func (c *Conn) Info() *appinfo.Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

// Parameters returns the launch parameters the connection was built from
func (c *Conn) Parameters() params.Parameters {
	return c.params
}

// writePump pumps frames from the send channel to the websocket connection
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case req := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			req.done <- c.conn.WriteMessage(websocket.TextMessage, req.data)

		case <-ticker.C:
			// Keep the connection alive
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Warn("ping failed", "error", err)
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readLoop reads frames until the socket closes. Frame errors never end the loop.
func (c *Conn) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}

		c.metrics.frameReceived()
		c.handleFrame(data)
	}
}

func (c *Conn) handleFrame(data []byte) {
	ev, err := protocol.Decode(data)
	if err != nil {
		c.metrics.decodeFailed(decodeErrorKind(err))
		c.logger.Error("failed to decode frame", "error", err, "size", len(data))
		return
	}

	if u, ok := ev.(protocol.Unrecognized); ok {
		c.metrics.decodeFailed(decodeKindUnrecognized)
		c.logger.Warn("ignoring unrecognized event", "event", u.Name)
		return
	}

	c.dispatch(ev)
}

// dispatch hands ev to the subscriber, recovering panics so the loop survives them.
func (c *Conn) dispatch(ev protocol.Event) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			c.logger.Error("subscriber panic", "event", ev.Verb(), "panic", r, "stack", string(stack))
		}
	}()

	c.metrics.eventDispatched(ev.Verb())
	c.subscriber.HandleEvent(c.ctx, ev)
}

func (c *Conn) handleReadError(err error) {
	c.mu.RLock()
	closing := c.closing
	c.mu.RUnlock()

	var closeErr *websocket.CloseError
	switch {
	case closing:
		c.logger.Debug("connection closed by plugin")
		c.finish(nil)

	case errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure:
		c.logger.Info("host closed the connection")
		c.finish(nil)

	case errors.As(err, &closeErr):
		c.logger.Error(deckconn.ErrMsgUnexpectedClosure, "code", closeErr.Code, "reason", closeErr.Text)
		c.finish(&deckconn.DisconnectError{Code: closeErr.Code, Reason: closeErr.Text})

	default:
		c.logger.Error("read error", "error", err)
		c.finish(fmt.Errorf("%s: %w", deckconn.ErrMsgConnectionClosed, err))
	}
}

// fail ends a Start attempt. The connection cannot be started again.
func (c *Conn) fail(err error) error {
	c.finish(err)
	return err
}

// finish moves the connection to StateClosed exactly once.
func (c *Conn) finish(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.state = deckconn.StateClosed
		c.err = err
		conn := c.conn
		c.mu.Unlock()

		c.cancel()
		if conn != nil {
			conn.Close()
		}
		close(c.done)
	})
}

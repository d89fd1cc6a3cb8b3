package deckconn

import (
	"context"

	"github.com/luciancaetano/deckconn/protocol"
)

// Connection defines the plugin side of the host WebSocket connection.
//
// A Connection is created from the four launch parameters the host passes to the
// plugin process. All traffic uses the JSON envelope encoding from the protocol package.
//
// Example usage:
//
//	import "github.com/luciancaetano/deckconn/plugin"
//
//	params, err := plugin.ParseArgs(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn := plugin.New(plugin.NewConfig(params, subscriber, slog.Default()))
//	if err := conn.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	conn.Send(ctx, protocol.ShowOk{Context: ev.Context})
type Connection interface {
	// Start validates the launch parameters, dials the host on the loopback interface
	// and sends the registration command as the very first frame.
	//
	// Start returns only after the registration frame has been written, so every
	// command sent after Start returns is ordered after registration. The receive
	// loop is running when Start returns.
	//
	// Returns an error wrapping ErrInvalidParameters or ErrInvalidInfo for bad
	// launch parameters, ErrAlreadyStarted if called twice, or the dial/write error.
	// No retry is attempted.
	Start(ctx context.Context) error

	// Send encodes a command and writes it to the host.
	//
	// Encode errors (for example an unreadable image file) are returned without
	// touching the connection. Write errors are returned to the caller and logged;
	// they never stop the receive loop.
	//
	// Returns ErrNotConnected before Start and ErrConnectionClosed after the
	// connection closed.
	//
	// Example:
	//
	//	title := "Ready"
	//	if err := conn.Send(ctx, protocol.SetTitle{Context: ev.Context, Title: &title}); err != nil {
	//	    log.Printf("setTitle failed: %v", err)
	//	}
	Send(ctx context.Context, cmd protocol.Command) error

	// Close closes the connection with a normal closure frame.
	//
	// Close is the explicit stop signal for the receive loop. It is safe to call
	// more than once.
	Close(ctx context.Context) error

	// State returns the current lifecycle state.
	State() State

	// Done returns a channel that is closed once the connection reached StateClosed
	// and the receive loop has exited.
	Done() <-chan struct{}

	// Err returns the reason the connection closed.
	//
	// It is nil while the connection is open, after a normal closure from the host
	// and after Close. Unexpected closures return a *DisconnectError.
	Err() error

	// Wait blocks until the connection is closed or ctx is done and returns Err.
	Wait(ctx context.Context) error
}

// Subscriber receives decoded events from the host.
//
// HandleEvent is called exactly once per successfully decoded frame, in receive
// order, from the receive loop goroutine. The next frame is not read until
// HandleEvent returns, so long running work should be moved to another goroutine.
//
// Frames with unknown verbs and frames that fail to decode are logged and never
// reach the subscriber.
type Subscriber interface {
	HandleEvent(ctx context.Context, event protocol.Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, event protocol.Event)

// HandleEvent calls f(ctx, event).
func (f SubscriberFunc) HandleEvent(ctx context.Context, event protocol.Event) {
	f(ctx, event)
}

// State is the lifecycle state of a Connection.
type State int32

const (
	// StateDisconnected is the state of a connection that was never started.
	StateDisconnected State = iota
	// StateConnecting is set while the socket is being opened.
	StateConnecting
	// StateRegistered is set once the registration frame was written.
	StateRegistered
	// StateClosed is terminal. No frames are written after it.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateRegistered:
		return "registered"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Package deckconn is a client SDK for writing plugins that talk to a Stream Deck
// style host application over a local WebSocket.
//
// The host launches the plugin process with four flag pairs (port, plugin UUID,
// registration verb and an application info document). The plugin connects to
// ws://127.0.0.1:<port>, registers itself and then exchanges JSON envelope frames:
// the host sends events (key presses, appearance, settings, device changes) and
// the plugin sends commands (titles, images, settings, alerts).
//
// # Architecture
//
// The module is split in three layers:
//
//   - protocol: the JSON envelope codec. Commands implement protocol.Command and
//     are serialized with protocol.Encode; frames from the host are parsed with
//     protocol.Decode into one of the protocol.Event variants.
//   - Connection: the engine. It validates the launch parameters, dials the host,
//     writes the registration frame first and runs a receive loop that hands every
//     decoded event to a Subscriber, in order.
//   - plugin: constructors and Run, which drives a connection until the host
//     closes it.
//
// # Quick Start
//
//	import (
//	    "github.com/luciancaetano/deckconn"
//	    "github.com/luciancaetano/deckconn/plugin"
//	    "github.com/luciancaetano/deckconn/protocol"
//	)
//
//	p, err := plugin.ParseArgs(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var conn *plugin.Conn
//	sub := deckconn.SubscriberFunc(func(ctx context.Context, ev protocol.Event) {
//	    if kd, ok := ev.(protocol.KeyDown); ok {
//	        conn.Send(ctx, protocol.ShowOk{Context: kd.Context})
//	    }
//	})
//
//	conn = plugin.New(plugin.NewConfig(p, sub, slog.Default()))
//	if err := plugin.Run(ctx, conn); err != nil {
//	    log.Fatal(err)
//	}
//
// # Wire Format
//
// Every frame is a UTF-8 JSON object with a string "event" field naming the verb:
//
//	{"event":"registerPlugin","uuid":"ABCD-0123"}
//	{"event":"setTitle","context":"K1","payload":{"title":"3","target":0}}
//	{"event":"keyDown","action":"com.example.counter","context":"K1","device":"D1","payload":{"settings":{}}}
//
// Frames with an unknown verb are logged and dropped. Frames with a known verb but a
// missing required field are logged with the verb and field name and dropped. Neither
// stops the receive loop.
//
// # Closure
//
// A normal closure (code 1000) from the host ends the connection without error.
// Any other close code is logged at error level with its code and reason, and
// Err returns a *DisconnectError. There is no reconnection.
//
// # Rate Limiting
//
// Outgoing commands go through a token bucket limiter:
//
//	// Default: 100 commands/second, burst 200
//	cfg.RateLimitConfig = plugin.DefaultRateLimitConfig()
//
//	// Disabled
//	cfg.RateLimitConfig = plugin.NoRateLimit()
//
// # Important
//
//   - Subscribers run on the receive loop goroutine; the next frame is read after they return
//   - Send before Start returns ErrNotConnected
//   - Maximum frame size: 10MB
package deckconn

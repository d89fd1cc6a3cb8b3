package main

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/luciancaetano/deckconn/protocol"
)

const settingCount = "count"

type sender interface {
	Send(ctx context.Context, cmd protocol.Command) error
}

// counter tracks one number per visible key.
type counter struct {
	conn   sender
	logger *slog.Logger

	mu     sync.Mutex
	counts map[protocol.Context]int
}

func newCounter(logger *slog.Logger) *counter {
	return &counter{
		logger: logger,
		counts: make(map[protocol.Context]int),
	}
}

func (c *counter) HandleEvent(ctx context.Context, ev protocol.Event) {
	switch ev := ev.(type) {
	case protocol.WillAppear:
		c.set(ev.Context, countFrom(ev.Payload.Settings))
		c.showCount(ctx, ev.Context)

	case protocol.WillDisappear:
		c.mu.Lock()
		delete(c.counts, ev.Context)
		c.mu.Unlock()

	case protocol.DidReceiveSettings:
		c.set(ev.Context, countFrom(ev.Payload.Settings))
		c.showCount(ctx, ev.Context)

	case protocol.KeyDown:
		n := c.increment(ev.Context)
		c.send(ctx, protocol.SetSettings{Context: ev.Context, Settings: protocol.Settings{settingCount: n}})
		c.showCount(ctx, ev.Context)
		c.send(ctx, protocol.ShowOk{Context: ev.Context})

	case protocol.SystemDidWakeUp:
		c.mu.Lock()
		contexts := make([]protocol.Context, 0, len(c.counts))
		for k := range c.counts {
			contexts = append(contexts, k)
		}
		c.mu.Unlock()
		for _, k := range contexts {
			c.send(ctx, protocol.GetSettings{Context: k})
		}
	}
}

func (c *counter) set(key protocol.Context, n int) {
	c.mu.Lock()
	c.counts[key] = n
	c.mu.Unlock()
}

func (c *counter) increment(key protocol.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key]
}

func (c *counter) showCount(ctx context.Context, key protocol.Context) {
	c.mu.Lock()
	title := strconv.Itoa(c.counts[key])
	c.mu.Unlock()
	c.send(ctx, protocol.SetTitle{Context: key, Title: &title})
}

func (c *counter) send(ctx context.Context, cmd protocol.Command) {
	if err := c.conn.Send(ctx, cmd); err != nil {
		c.logger.Warn("command not sent", "event", cmd.Verb(), "error", err)
	}
}

// countFrom reads the stored count. JSON numbers arrive as float64.
func countFrom(settings protocol.Settings) int {
	switch v := settings[settingCount].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

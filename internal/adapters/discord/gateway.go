// Package discord implements the gateway ports on github.com/bwmarrin/discordgo.
// Gateway push events are translated into the domain event set; REST calls
// back the fetch and mutation capabilities.
package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

const eventBuffer = 256

var intentBits = map[ports.Intent]discordgo.Intent{
	ports.IntentGuilds:           discordgo.IntentGuilds,
	ports.IntentGuildMembers:     discordgo.IntentGuildMembers,
	ports.IntentGuildBans:        discordgo.IntentGuildBans,
	ports.IntentGuildExpressions: discordgo.IntentGuildEmojis,
	ports.IntentGuildInvites:     discordgo.IntentGuildInvites,
}

// Gateway dials Discord. Bot tokens get the scheme prefix the API expects;
// user tokens are passed through as-is.
type Gateway struct {
	logger *zap.Logger
}

var _ ports.Gateway = (*Gateway)(nil)

func NewGateway(logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{logger: logger}
}

func (g *Gateway) Connect(ctx context.Context, token string, kind domain.AccountKind, intents []ports.Intent) (ports.GatewayConnection, error) {
	if kind == domain.AccountKindBot {
		token = "Bot " + token
	}

	sess, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("build discord session: %w", err)
	}

	var mask discordgo.Intent
	for _, intent := range intents {
		mask |= intentBits[intent]
	}
	sess.Identify.Intents = mask
	sess.StateEnabled = true

	conn := &Connection{
		sess:   sess,
		logger: g.logger,
		events: make(chan domain.Event, eventBuffer),
	}
	conn.registerHandlers()

	opened := make(chan error, 1)
	go func() { opened <- sess.Open() }()

	select {
	case err := <-opened:
		if err != nil {
			return nil, fmt.Errorf("open discord gateway: %w", err)
		}
		return conn, nil
	case <-ctx.Done():
		// The dial may still complete in the background; tear it down so no
		// orphan connection lingers.
		go func() {
			if err := <-opened; err == nil {
				_ = sess.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// Connection adapts one discordgo session to the connection port. Incoming
// handler callbacks are funneled into a single buffered channel; events that
// arrive when the buffer is full are dropped rather than blocking the
// websocket reader.
type Connection struct {
	sess   *discordgo.Session
	logger *zap.Logger

	events chan domain.Event

	mu      sync.Mutex
	closed  bool
	self    domain.User
	initial []domain.GuildSnapshot
}

var _ ports.GatewayConnection = (*Connection)(nil)

func (c *Connection) Self() domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.self
}

func (c *Connection) InitialGuilds() []domain.GuildSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.GuildSnapshot, len(c.initial))
	for i, g := range c.initial {
		out[i] = g.Clone()
	}
	return out
}

func (c *Connection) Events() <-chan domain.Event {
	return c.events
}

func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.events)
	c.mu.Unlock()

	return c.sess.Close()
}

func (c *Connection) emit(ev domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("event buffer full, dropping event",
			zap.Stringer("kind", ev.Kind),
			zap.String("guild", ev.GuildID))
	}
}

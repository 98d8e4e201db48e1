// Package fakes provides in-memory stand-ins for the ports interfaces,
// scriptable enough to exercise connect races, partial fetch failures and
// per-target mutation failures without a live gateway.
package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// Gateway hands out a scripted Connection. Zero value is usable.
type Gateway struct {
	mu sync.Mutex

	// ConnectErr fails every connect attempt at the transport level.
	ConnectErr error
	// HoldReady suppresses the ready event so the attempt never completes.
	HoldReady bool
	// Conn is returned by Connect when set; otherwise a bare connection is
	// built around Self.
	Conn *Connection
	Self domain.User

	lastIntents []ports.Intent
	connects    int
}

var _ ports.Gateway = (*Gateway)(nil)

func (g *Gateway) Connect(ctx context.Context, token string, kind domain.AccountKind, intents []ports.Intent) (ports.GatewayConnection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.connects++
	g.lastIntents = intents

	if g.ConnectErr != nil {
		return nil, g.ConnectErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn := g.Conn
	if conn == nil {
		conn = NewConnection(g.Self)
	}
	if !g.HoldReady {
		conn.Emit(domain.Event{Kind: domain.EventReady})
	}
	return conn, nil
}

func (g *Gateway) ConnectCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.connects
}

func (g *Gateway) LastIntents() []ports.Intent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastIntents
}

// Connection implements ports.GatewayConnection against in-memory state.
type Connection struct {
	mu     sync.Mutex
	user   domain.User
	guilds []domain.GuildSnapshot

	events chan domain.Event
	closed bool

	// Per-guild remote collections.
	MembersByGuild   map[string][]domain.MemberRef
	BansByGuild      map[string][]domain.BanRef
	InvitesByGuild   map[string][]domain.InviteRef
	TemplatesByGuild map[string][]domain.TemplateRef

	// FetchErrs forces a per-field fetch failure.
	FetchErrs map[domain.Field]error
	// ResolveErr fails FetchMembersByIDs wholesale.
	ResolveErr error
	// FetchGate, when set, blocks remote fetches until the channel is
	// closed. Used to hold a selection in flight.
	FetchGate chan struct{}
	// MutationErrs fails individual mutations, keyed "verb:targetID".
	MutationErrs map[string]error

	calls []string
}

var _ ports.GatewayConnection = (*Connection)(nil)

func NewConnection(user domain.User, guilds ...domain.GuildSnapshot) *Connection {
	return &Connection{
		user:             user,
		guilds:           guilds,
		events:           make(chan domain.Event, 64),
		MembersByGuild:   map[string][]domain.MemberRef{},
		BansByGuild:      map[string][]domain.BanRef{},
		InvitesByGuild:   map[string][]domain.InviteRef{},
		TemplatesByGuild: map[string][]domain.TemplateRef{},
		FetchErrs:        map[domain.Field]error{},
		MutationErrs:     map[string]error{},
	}
}

func (c *Connection) Self() domain.User {
	return c.user
}

func (c *Connection) InitialGuilds() []domain.GuildSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.GuildSnapshot, len(c.guilds))
	for i, g := range c.guilds {
		out[i] = g.Clone()
	}
	return out
}

func (c *Connection) Events() <-chan domain.Event {
	return c.events
}

// Emit pushes one event into the stream. Emits after Close are dropped.
func (c *Connection) Emit(ev domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.events <- ev
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.events)
	return nil
}

func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Calls lists every mutation issued, newest last.
func (c *Connection) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

func (c *Connection) record(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *Connection) waitGate(ctx context.Context) error {
	c.mu.Lock()
	gate := c.FetchGate
	c.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Connection) fieldErr(field domain.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.FetchErrs[field]
}

func (c *Connection) mutationErr(verb, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.MutationErrs[verb+":"+target]
}

func (c *Connection) guild(id string) (domain.GuildSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.guilds {
		if g.ID == id {
			return g.Clone(), true
		}
	}
	return domain.GuildSnapshot{}, false
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports/fakes"
)

func TestConnectSuccess(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "u1", Username: "ops", Discriminator: "1234"})
	gw := &fakes.Gateway{Conn: conn}
	mgr := NewSessionManager(gw, nil)

	sess, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t", Kind: domain.AccountKindBot})
	require.NoError(t, err)
	defer func() { _ = sess.Disconnect() }()

	assert.Equal(t, domain.SessionLive, sess.State())
	assert.Equal(t, "ops#1234", sess.Self().Tag())
	assert.Equal(t, 1, gw.ConnectCount())
	assert.Len(t, gw.LastIntents(), 5)
}

func TestConnectNoIntents(t *testing.T) {
	gw := &fakes.Gateway{Self: domain.User{ID: "u1"}}
	mgr := NewSessionManager(gw, nil)

	sess, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t", NoIntents: true})
	require.NoError(t, err)
	defer func() { _ = sess.Disconnect() }()

	assert.Empty(t, gw.LastIntents())
}

func TestConnectTimesOutWhenReadyNeverArrives(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "u1"})
	gw := &fakes.Gateway{Conn: conn, HoldReady: true}
	mgr := NewSessionManager(gw, nil)
	mgr.timeout = 30 * time.Millisecond

	start := time.Now()
	_, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t"})

	assert.ErrorIs(t, err, domain.ErrConnectTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, conn.Closed(), "abandoned connection must be closed")
}

func TestConnectTimeoutDisabledSurvivesPastDeadline(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "u1"})
	gw := &fakes.Gateway{Conn: conn, HoldReady: true}
	mgr := NewSessionManager(gw, nil)
	mgr.timeout = 10 * time.Millisecond

	go func() {
		time.Sleep(50 * time.Millisecond)
		conn.Emit(domain.Event{Kind: domain.EventReady})
	}()

	sess, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t", TimeoutDisabled: true})
	require.NoError(t, err, "a late ready must still win when the timeout is disabled")
	_ = sess.Disconnect()
}

func TestConnectTransportError(t *testing.T) {
	cause := errors.New("handshake refused")
	gw := &fakes.Gateway{ConnectErr: cause}
	mgr := NewSessionManager(gw, nil)

	_, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t"})

	var connErr *domain.ConnectError
	require.ErrorAs(t, err, &connErr)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrConnectTimeout)
}

func TestConnectCanceledContext(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "u1"})
	gw := &fakes.Gateway{Conn: conn, HoldReady: true}
	mgr := NewSessionManager(gw, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := mgr.Connect(ctx, domain.Instance{ID: "main", Token: "t", TimeoutDisabled: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConnectTimeout)
	assert.True(t, conn.Closed())
}

func drainEvents(t *testing.T, sess *Session) []domain.Event {
	t.Helper()
	var out []domain.Event
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-sess.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			t.Fatal("event channel never closed")
		}
	}
}

func TestDisconnectLocalAndRemoteConverge(t *testing.T) {
	cases := []struct {
		name string
		stop func(*Session, *fakes.Connection)
	}{
		{"local disconnect", func(s *Session, _ *fakes.Connection) { _ = s.Disconnect() }},
		{"local disconnect twice", func(s *Session, _ *fakes.Connection) {
			_ = s.Disconnect()
			_ = s.Disconnect()
		}},
		{"remote disconnect event", func(_ *Session, c *fakes.Connection) {
			c.Emit(domain.Event{Kind: domain.EventDisconnect})
		}},
		{"remote channel close", func(_ *Session, c *fakes.Connection) { _ = c.Close() }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := fakes.NewConnection(domain.User{ID: "u1"})
			gw := &fakes.Gateway{Conn: conn}
			mgr := NewSessionManager(gw, nil)

			sess, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t"})
			require.NoError(t, err)

			tc.stop(sess, conn)

			events := drainEvents(t, sess)
			terminal := 0
			for _, ev := range events {
				if ev.Kind == domain.EventDisconnect {
					terminal++
				}
			}
			assert.Equal(t, 1, terminal, "subscribers see exactly one terminal event")

			select {
			case <-sess.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("session never finished")
			}
			assert.Equal(t, domain.SessionDisconnected, sess.State())
			assert.True(t, conn.Closed())

			// A second disconnect after teardown stays a no-op.
			require.NoError(t, sess.Disconnect())
		})
	}
}

func TestSessionForwardsEvents(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "u1"})
	gw := &fakes.Gateway{Conn: conn}
	mgr := NewSessionManager(gw, nil)

	sess, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t"})
	require.NoError(t, err)

	conn.Emit(domain.Event{Kind: domain.EventGuildCreate, GuildID: "g1"})
	conn.Emit(domain.Event{Kind: domain.EventChannelCreate, GuildID: "g1"})

	var kinds []domain.EventKind
	for len(kinds) < 2 {
		select {
		case ev := <-sess.Events():
			kinds = append(kinds, ev.Kind)
		case <-time.After(2 * time.Second):
			t.Fatal("events not forwarded")
		}
	}
	assert.Equal(t, []domain.EventKind{domain.EventGuildCreate, domain.EventChannelCreate}, kinds,
		"receipt order is preserved")

	_ = sess.Disconnect()
	drainEvents(t, sess)
}

func TestDisconnectTerminalEventSurvivesFullBuffer(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "u1"})
	gw := &fakes.Gateway{Conn: conn}
	mgr := NewSessionManager(gw, nil)

	sess, err := mgr.Connect(context.Background(), domain.Instance{ID: "main", Token: "t"})
	require.NoError(t, err)

	// Fill the subscriber buffer without draining it.
	for i := 0; i < sessionEventBuffer; i++ {
		conn.Emit(domain.Event{Kind: domain.EventGuildCreate, GuildID: "g1"})
	}
	require.Eventually(t, func() bool {
		return len(sess.out) == sessionEventBuffer
	}, 2*time.Second, 5*time.Millisecond)

	_ = sess.Disconnect()
	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session never finished")
	}

	events := drainEvents(t, sess)
	require.Len(t, events, sessionEventBuffer, "one buffered event is evicted for the terminal one")
	terminal := 0
	for _, ev := range events {
		if ev.Kind == domain.EventDisconnect {
			terminal++
		}
	}
	assert.Equal(t, 1, terminal)
	assert.Equal(t, domain.EventDisconnect, events[len(events)-1].Kind,
		"the terminal event is the last thing subscribers see")
}

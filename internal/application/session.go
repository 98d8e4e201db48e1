package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// DefaultConnectTimeout bounds a connect attempt unless the instance
// disables the timeout.
const DefaultConnectTimeout = 15 * time.Second

// sessionEventBuffer absorbs bursts between the gateway and the aggregator
// without blocking the pump.
const sessionEventBuffer = 256

// SessionManager supervises connect attempts. Each successful attempt
// yields an independent Session; failed attempts leave nothing behind.
type SessionManager struct {
	gateway ports.Gateway
	logger  *zap.Logger
	timeout time.Duration
}

func NewSessionManager(gateway ports.Gateway, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		gateway: gateway,
		logger:  logger,
		timeout: DefaultConnectTimeout,
	}
}

// Connect opens a connection for the instance and waits for the gateway to
// announce readiness. Unless the instance disables it, a wall-clock timer
// bounds the whole attempt: the first of readiness, timer expiry or a
// transport error decides the outcome, and the loser's effect is discarded.
func (m *SessionManager) Connect(ctx context.Context, instance domain.Instance) (*Session, error) {
	dialCtx := ctx
	cancel := context.CancelFunc(func() {})
	if !instance.TimeoutDisabled {
		dialCtx, cancel = context.WithTimeout(ctx, m.timeout)
	}
	defer cancel()

	sess, err := m.dial(dialCtx, instance)
	if err != nil {
		if !instance.TimeoutDisabled && errors.Is(dialCtx.Err(), context.DeadlineExceeded) {
			m.logger.Warn("gateway connect timed out",
				zap.String("instance", string(instance.ID)),
				zap.Duration("timeout", m.timeout))
			return nil, domain.ErrConnectTimeout
		}
		m.logger.Warn("gateway connect failed",
			zap.String("instance", string(instance.ID)),
			zap.Error(err))
		return nil, err
	}

	m.logger.Info("gateway session live",
		zap.String("instance", string(instance.ID)),
		zap.String("user", sess.Self().Tag()),
		zap.Bool("no_intents", instance.NoIntents))
	return sess, nil
}

func (m *SessionManager) dial(ctx context.Context, instance domain.Instance) (*Session, error) {
	intents := ports.DefaultIntents()
	if instance.NoIntents {
		intents = nil
	}

	conn, err := m.gateway.Connect(ctx, instance.Token, instance.Kind, intents)
	if err != nil {
		return nil, &domain.ConnectError{Err: err}
	}

	// The connection is open; wait for the first ready event. Anything else
	// arriving before ready is dropped, the aggregator reseeds from the
	// initial guild list anyway.
	for {
		select {
		case <-ctx.Done():
			_ = conn.Close()
			return nil, &domain.ConnectError{Err: ctx.Err()}
		case ev, ok := <-conn.Events():
			if !ok {
				return nil, &domain.ConnectError{Err: domain.ErrSessionClosed}
			}
			switch ev.Kind {
			case domain.EventReady:
				return newSession(instance, conn, m.logger), nil
			case domain.EventDisconnect:
				_ = conn.Close()
				return nil, &domain.ConnectError{Err: domain.ErrSessionClosed}
			}
		}
	}
}

// Session is one live gateway connection for one instance. It owns the
// connection handle exclusively and fans the event stream out to a single
// subscriber channel. Local disconnects and remote disconnects converge on
// the same terminal state: subscribers see exactly one disconnect event
// followed by channel close.
type Session struct {
	instance domain.Instance
	conn     ports.GatewayConnection
	logger   *zap.Logger

	out  chan domain.Event
	stop chan struct{}
	done chan struct{}

	stopOnce sync.Once

	mu    sync.Mutex
	state domain.SessionState
}

func newSession(instance domain.Instance, conn ports.GatewayConnection, logger *zap.Logger) *Session {
	s := &Session{
		instance: instance,
		conn:     conn,
		logger:   logger,
		out:      make(chan domain.Event, sessionEventBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    domain.SessionLive,
	}
	go s.pump()
	return s
}

func (s *Session) Instance() domain.Instance {
	return s.instance
}

func (s *Session) Self() domain.User {
	return s.conn.Self()
}

// Conn exposes the connection's fetch and mutation capabilities. The
// lifecycle stays owned by the Session.
func (s *Session) Conn() ports.GatewayConnection {
	return s.conn
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events is the session's push stream. Closed after the terminal
// disconnect event.
func (s *Session) Events() <-chan domain.Event {
	return s.out
}

// Done is closed once the session has fully torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Disconnect tears the session down. Idempotent, and safe to call from a
// goroutine consuming Events.
func (s *Session) Disconnect() error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	return nil
}

func (s *Session) pump() {
	defer s.finish()
	for {
		select {
		case <-s.stop:
			return
		case ev, ok := <-s.conn.Events():
			if !ok {
				return
			}
			if ev.Kind == domain.EventDisconnect {
				return
			}
			select {
			case s.out <- ev:
			case <-s.stop:
				return
			}
		}
	}
}

func (s *Session) finish() {
	s.mu.Lock()
	s.state = domain.SessionDisconnected
	s.mu.Unlock()

	_ = s.conn.Close()

	// One terminal notification, then close. The pump has exited, so this
	// is the only sender left; if the subscriber stopped draining and the
	// buffer is full, evict the oldest pending event to make room.
	terminal := domain.Event{Kind: domain.EventDisconnect}
	select {
	case s.out <- terminal:
	default:
		select {
		case <-s.out:
		default:
		}
		select {
		case s.out <- terminal:
		default:
		}
	}
	close(s.out)
	close(s.done)

	s.logger.Info("gateway session disconnected",
		zap.String("instance", string(s.instance.ID)))
}

package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// InstanceService manages stored instances: validating tokens on add,
// listing, removing, and opening sessions for stored credentials.
type InstanceService struct {
	repo     ports.InstanceRepository
	sessions *SessionManager
	logger   *zap.Logger
}

func NewInstanceService(repo ports.InstanceRepository, sessions *SessionManager, logger *zap.Logger) *InstanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstanceService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

// ValidateToken proves the token by connecting once, capturing the account
// identity, and disconnecting. Nothing stays connected afterwards.
func (s *InstanceService) ValidateToken(ctx context.Context, token string, kind domain.AccountKind, opts domain.Instance) (domain.User, error) {
	probe := opts
	probe.Token = token
	probe.Kind = kind

	sess, err := s.sessions.Connect(ctx, probe)
	if err != nil {
		return domain.User{}, fmt.Errorf("validate token: %w", err)
	}
	self := sess.Self()
	_ = sess.Disconnect()
	<-sess.Done()
	return self, nil
}

// Add validates the token, fills in the account identity, and stores the
// instance. An existing instance with the same id is replaced.
func (s *InstanceService) Add(ctx context.Context, instance domain.Instance) (domain.Instance, error) {
	if !instance.Kind.Valid() {
		return domain.Instance{}, fmt.Errorf("add instance: unknown account kind %q", instance.Kind)
	}

	self, err := s.ValidateToken(ctx, instance.Token, instance.Kind, instance)
	if err != nil {
		return domain.Instance{}, err
	}

	instance.Tag = self.Tag()
	instance.AvatarURL = self.AvatarURL
	if created := domain.SnowflakeTime(self.ID); !created.IsZero() {
		instance.CreatedAt = created.Format("2006-01-02")
	}
	if instance.ID == "" {
		instance.ID = domain.InstanceID(self.ID)
	}

	if err := s.repo.Add(ctx, instance); err != nil {
		return domain.Instance{}, fmt.Errorf("store instance: %w", err)
	}
	s.logger.Info("instance stored",
		zap.String("instance", string(instance.ID)),
		zap.String("tag", instance.Tag))
	return instance, nil
}

func (s *InstanceService) List(ctx context.Context) ([]domain.Instance, error) {
	instances, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	return instances, nil
}

func (s *InstanceService) Find(ctx context.Context, id domain.InstanceID) (domain.Instance, error) {
	instance, err := s.repo.Find(ctx, id)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("find instance %s: %w", id, err)
	}
	return instance, nil
}

func (s *InstanceService) Remove(ctx context.Context, id domain.InstanceID) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove instance %s: %w", id, err)
	}
	s.logger.Info("instance removed", zap.String("instance", string(id)))
	return nil
}

// ConnectInstance opens a live session for a stored instance and attaches a
// fresh aggregator to it.
func (s *InstanceService) ConnectInstance(ctx context.Context, id domain.InstanceID, logbook *Logbook) (*Session, *Aggregator, error) {
	instance, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find instance %s: %w", id, err)
	}
	sess, err := s.sessions.Connect(ctx, instance)
	if err != nil {
		return nil, nil, err
	}
	agg := NewAggregator(sess, logbook, s.logger)
	agg.Attach()
	return sess, agg, nil
}

package ports

import (
	"context"

	"github.com/softfang/guildctl/internal/domain"
)

// InstanceRepository is the credential store: a durable mapping of instance
// id to token and connection preferences. Add replaces any existing entry
// with the same id.
type InstanceRepository interface {
	List(ctx context.Context) ([]domain.Instance, error)
	Find(ctx context.Context, id domain.InstanceID) (domain.Instance, error)
	Add(ctx context.Context, instance domain.Instance) error
	Remove(ctx context.Context, id domain.InstanceID) error
}

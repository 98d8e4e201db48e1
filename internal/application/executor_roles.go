package application

import (
	"context"
	"fmt"

	"github.com/softfang/guildctl/internal/domain"
)

// CreateRoles creates count roles with the given name.
func (e *Executor) CreateRoles(ctx context.Context, g domain.GuildSnapshot, name, count, reason string) []domain.ActionOutcome {
	n := domain.IntOrDefault(count, domain.DefaultRepeatCount)
	outcomes := fanOutN([]string{name}, n, func(name string) domain.ActionOutcome {
		role, err := e.conn.CreateRole(ctx, g.ID, name, reason)
		if err != nil {
			return outcomeOf(name, "role "+name, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  role.ID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created role %s", role.Name),
		}
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) RenameRoles(ctx context.Context, g domain.GuildSnapshot, roleIDs []string, name, reason string) []domain.ActionOutcome {
	outcomes := fanOut(roleIDs, func(roleID string) domain.ActionOutcome {
		err := e.conn.RenameRole(ctx, g.ID, roleID, name, reason)
		return outcomeOf(roleID, "role "+roleID, "Renamed", "rename", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteRoles(ctx context.Context, g domain.GuildSnapshot, roleIDs []string, reason string) []domain.ActionOutcome {
	outcomes := fanOut(roleIDs, func(roleID string) domain.ActionOutcome {
		err := e.conn.DeleteRole(ctx, g.ID, roleID, reason)
		return outcomeOf(roleID, "role "+roleID, "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

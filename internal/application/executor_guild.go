package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/softfang/guildctl/internal/domain"
)

// Unban lifts bans by user id. Banned users are not members, so there is no
// resolution step.
func (e *Executor) Unban(ctx context.Context, g domain.GuildSnapshot, userIDs []string) []domain.ActionOutcome {
	outcomes := fanOut(userIDs, func(userID string) domain.ActionOutcome {
		err := e.conn.UnbanMember(ctx, g.ID, userID)
		return outcomeOf(userID, userID, "Unbanned", "unban", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) RenameGuild(ctx context.Context, g domain.GuildSnapshot, name string) []domain.ActionOutcome {
	outcomes := fanOut([]string{g.ID}, func(guildID string) domain.ActionOutcome {
		err := e.conn.RenameGuild(ctx, guildID, name)
		return outcomeOf(guildID, "guild to "+name, "Renamed", "rename", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) SetGuildIcon(ctx context.Context, g domain.GuildSnapshot, iconData string) []domain.ActionOutcome {
	outcomes := fanOut([]string{g.ID}, func(guildID string) domain.ActionOutcome {
		err := e.conn.SetGuildIcon(ctx, guildID, iconData)
		return outcomeOf(guildID, "guild icon", "Set", "set", err)
	})
	return e.report(g.Name, outcomes)
}

// Prune kicks members inactive for the given number of days. days is raw
// user input; blank falls back to the default window.
func (e *Executor) Prune(ctx context.Context, g domain.GuildSnapshot, days, reason string) []domain.ActionOutcome {
	n := domain.IntOrDefault(days, domain.DefaultPruneDays)
	outcomes := fanOut([]string{g.ID}, func(guildID string) domain.ActionOutcome {
		pruned, err := e.conn.PruneGuild(ctx, guildID, n, reason)
		if err != nil {
			return outcomeOf(guildID, "guild", "", "prune", err)
		}
		return domain.ActionOutcome{
			TargetID:  guildID,
			Succeeded: true,
			Message:   fmt.Sprintf("Pruned %d members inactive for %d days", pruned, n),
		}
	})
	return e.report(g.Name, outcomes)
}

// CreateInviteLink creates an invite in the guild's first known channel.
func (e *Executor) CreateInviteLink(ctx context.Context, g domain.GuildSnapshot) []domain.ActionOutcome {
	outcomes := fanOut([]string{g.ID}, func(guildID string) domain.ActionOutcome {
		if len(g.Channels) == 0 {
			return outcomeOf(guildID, "invite", "", "create", errors.New("no known channels"))
		}
		invite, err := e.conn.CreateChannelInvite(ctx, g.Channels[0].ID)
		if err != nil {
			return outcomeOf(guildID, "invite", "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  guildID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created invite %s", invite.Code),
		}
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) LeaveGuild(ctx context.Context, g domain.GuildSnapshot) []domain.ActionOutcome {
	outcomes := fanOut([]string{g.ID}, func(guildID string) domain.ActionOutcome {
		err := e.conn.LeaveGuild(ctx, guildID)
		return outcomeOf(guildID, "guild", "Left", "leave", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteGuild(ctx context.Context, g domain.GuildSnapshot) []domain.ActionOutcome {
	outcomes := fanOut([]string{g.ID}, func(guildID string) domain.ActionOutcome {
		err := e.conn.DeleteGuild(ctx, guildID)
		return outcomeOf(guildID, "guild", "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

// CreateGuilds creates count new guilds owned by the acting account. The
// scope is the account tag because no guild context exists yet.
func (e *Executor) CreateGuilds(ctx context.Context, name, count string) []domain.ActionOutcome {
	n := domain.IntOrDefault(count, domain.DefaultRepeatCount)
	outcomes := fanOutN([]string{name}, n, func(name string) domain.ActionOutcome {
		created, err := e.conn.CreateGuild(ctx, name)
		if err != nil {
			return outcomeOf(name, "guild "+name, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  created.ID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created guild %s", created.Name),
		}
	})
	return e.report(e.conn.Self().Tag(), outcomes)
}

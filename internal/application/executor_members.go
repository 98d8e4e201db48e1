package application

import (
	"context"
	"fmt"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// SetNickname sets every target member's nickname.
func (e *Executor) SetNickname(ctx context.Context, g domain.GuildSnapshot, userIDs []string, nick, reason string) []domain.ActionOutcome {
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := fanOut(members, func(m domain.MemberRef) domain.ActionOutcome {
		err := e.conn.EditMember(ctx, g.ID, m.ID, ports.MemberEdit{Nick: &nick}, reason)
		return outcomeOf(m.ID, memberLabel(m), "Renamed", "rename", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

// Timeout mutes every target member until now plus the given offset string
// (for example "1h30m" or "2d").
func (e *Executor) Timeout(ctx context.Context, g domain.GuildSnapshot, userIDs []string, duration, reason string) []domain.ActionOutcome {
	until := domain.OffsetFrom(e.clock.Now(), duration)
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := fanOut(members, func(m domain.MemberRef) domain.ActionOutcome {
		err := e.conn.EditMember(ctx, g.ID, m.ID, ports.MemberEdit{TimeoutUntil: &until}, reason)
		return outcomeOf(m.ID, memberLabel(m), "Timed out", "time out", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

func (e *Executor) Kick(ctx context.Context, g domain.GuildSnapshot, userIDs []string, reason string) []domain.ActionOutcome {
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := fanOut(members, func(m domain.MemberRef) domain.ActionOutcome {
		err := e.conn.KickMember(ctx, g.ID, m.ID, reason)
		return outcomeOf(m.ID, memberLabel(m), "Kicked", "kick", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

// Ban bans every target member. deleteDays is the raw user input for the
// message-deletion window; blank or invalid falls back to the default.
func (e *Executor) Ban(ctx context.Context, g domain.GuildSnapshot, userIDs []string, deleteDays, reason string) []domain.ActionOutcome {
	days := domain.IntOrDefault(deleteDays, domain.DefaultBanDeleteDays)
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := fanOut(members, func(m domain.MemberRef) domain.ActionOutcome {
		err := e.conn.BanMember(ctx, g.ID, m.ID, days, reason)
		return outcomeOf(m.ID, memberLabel(m), "Banned", "ban", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

// DirectMessage DMs every target member count times, expanding message
// placeholders per member.
func (e *Executor) DirectMessage(ctx context.Context, g domain.GuildSnapshot, userIDs []string, content, count string) []domain.ActionOutcome {
	n := domain.IntOrDefault(count, domain.DefaultRepeatCount)
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := fanOutN(members, n, func(m domain.MemberRef) domain.ActionOutcome {
		body := domain.ExpandPlaceholders(content, e.vars(g, m.ID))
		err := e.conn.SendDirectMessage(ctx, m.ID, body)
		return outcomeOf(m.ID, memberLabel(m), "Messaged", "message", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

// AddRoles grants every role to every target member; each member×role pair
// is an independent outcome.
func (e *Executor) AddRoles(ctx context.Context, g domain.GuildSnapshot, userIDs, roleIDs []string, reason string) []domain.ActionOutcome {
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := crossProduct(members, roleIDs, func(m domain.MemberRef, roleID string) domain.ActionOutcome {
		err := e.conn.AddMemberRole(ctx, g.ID, m.ID, roleID, reason)
		label := fmt.Sprintf("role %s to %s", roleID, memberLabel(m))
		return outcomeOf(m.ID, label, "Added", "add", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

func (e *Executor) RemoveRoles(ctx context.Context, g domain.GuildSnapshot, userIDs, roleIDs []string, reason string) []domain.ActionOutcome {
	members, failures := e.resolveMembers(ctx, g, userIDs)
	outcomes := crossProduct(members, roleIDs, func(m domain.MemberRef, roleID string) domain.ActionOutcome {
		err := e.conn.RemoveMemberRole(ctx, g.ID, m.ID, roleID, reason)
		label := fmt.Sprintf("role %s from %s", roleID, memberLabel(m))
		return outcomeOf(m.ID, label, "Removed", "remove", err)
	})
	return e.report(g.Name, append(outcomes, failures...))
}

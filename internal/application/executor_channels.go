package application

import (
	"context"
	"fmt"

	"github.com/softfang/guildctl/internal/domain"
)

// SendMessage posts to every target channel count times, expanding message
// placeholders.
func (e *Executor) SendMessage(ctx context.Context, g domain.GuildSnapshot, channelIDs []string, content, count string) []domain.ActionOutcome {
	n := domain.IntOrDefault(count, domain.DefaultRepeatCount)
	body := domain.ExpandPlaceholders(content, e.vars(g, ""))
	outcomes := fanOutN(channelIDs, n, func(channelID string) domain.ActionOutcome {
		err := e.conn.SendChannelMessage(ctx, channelID, body)
		return outcomeOf(channelID, "channel "+channelID, "Messaged", "message", err)
	})
	return e.report(g.Name, outcomes)
}

// Purge bulk-deletes recent messages in every target channel. limit is raw
// user input; blank falls back to the unbounded default.
func (e *Executor) Purge(ctx context.Context, g domain.GuildSnapshot, channelIDs []string, limit string) []domain.ActionOutcome {
	n := domain.IntOrDefault(limit, domain.DefaultPurgeLimit)
	outcomes := fanOut(channelIDs, func(channelID string) domain.ActionOutcome {
		deleted, err := e.conn.PurgeChannel(ctx, channelID, n)
		if err != nil {
			return outcomeOf(channelID, "channel "+channelID, "", "purge", err)
		}
		return domain.ActionOutcome{
			TargetID:  channelID,
			Succeeded: true,
			Message:   fmt.Sprintf("Purged %d messages from channel %s", deleted, channelID),
		}
	})
	return e.report(g.Name, outcomes)
}

// CreateInvites creates one invite per target channel and reports the code.
func (e *Executor) CreateInvites(ctx context.Context, g domain.GuildSnapshot, channelIDs []string) []domain.ActionOutcome {
	outcomes := fanOut(channelIDs, func(channelID string) domain.ActionOutcome {
		invite, err := e.conn.CreateChannelInvite(ctx, channelID)
		if err != nil {
			return outcomeOf(channelID, "invite for channel "+channelID, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  channelID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created invite %s for channel %s", invite.Code, channelID),
		}
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) RenameChannels(ctx context.Context, g domain.GuildSnapshot, channelIDs []string, name, reason string) []domain.ActionOutcome {
	outcomes := fanOut(channelIDs, func(channelID string) domain.ActionOutcome {
		err := e.conn.RenameChannel(ctx, channelID, name, reason)
		return outcomeOf(channelID, "channel "+channelID, "Renamed", "rename", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteChannels(ctx context.Context, g domain.GuildSnapshot, channelIDs []string, reason string) []domain.ActionOutcome {
	outcomes := fanOut(channelIDs, func(channelID string) domain.ActionOutcome {
		err := e.conn.DeleteChannel(ctx, channelID, reason)
		return outcomeOf(channelID, "channel "+channelID, "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

// CreateChannels creates count channels of the given type. channelType is
// raw user input; blank falls back to text.
func (e *Executor) CreateChannels(ctx context.Context, g domain.GuildSnapshot, name, count, channelType, reason string) []domain.ActionOutcome {
	n := domain.IntOrDefault(count, domain.DefaultRepeatCount)
	kind := domain.IntOrDefault(channelType, domain.DefaultChannelType)
	outcomes := fanOutN([]string{name}, n, func(name string) domain.ActionOutcome {
		ch, err := e.conn.CreateChannel(ctx, g.ID, name, kind, reason)
		if err != nil {
			return outcomeOf(name, "channel "+name, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  ch.ID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created channel %s", ch.Name),
		}
	})
	return e.report(g.Name, outcomes)
}

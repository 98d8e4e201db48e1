package application

import (
	"context"
	"fmt"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// CreateEmojis uploads the same image as count emojis with the given name.
func (e *Executor) CreateEmojis(ctx context.Context, g domain.GuildSnapshot, name, imageData, count, reason string) []domain.ActionOutcome {
	n := domain.IntOrDefault(count, domain.DefaultRepeatCount)
	outcomes := fanOutN([]string{name}, n, func(name string) domain.ActionOutcome {
		emoji, err := e.conn.CreateEmoji(ctx, g.ID, name, imageData, reason)
		if err != nil {
			return outcomeOf(name, "emoji "+name, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  emoji.ID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created emoji %s", emoji.Name),
		}
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) RenameEmojis(ctx context.Context, g domain.GuildSnapshot, emojiIDs []string, name, reason string) []domain.ActionOutcome {
	outcomes := fanOut(emojiIDs, func(emojiID string) domain.ActionOutcome {
		err := e.conn.RenameEmoji(ctx, g.ID, emojiID, name, reason)
		return outcomeOf(emojiID, "emoji "+emojiID, "Renamed", "rename", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteEmojis(ctx context.Context, g domain.GuildSnapshot, emojiIDs []string, reason string) []domain.ActionOutcome {
	outcomes := fanOut(emojiIDs, func(emojiID string) domain.ActionOutcome {
		err := e.conn.DeleteEmoji(ctx, g.ID, emojiID, reason)
		return outcomeOf(emojiID, "emoji "+emojiID, "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) CreateSticker(ctx context.Context, g domain.GuildSnapshot, upload ports.StickerUpload, reason string) []domain.ActionOutcome {
	outcomes := fanOut([]ports.StickerUpload{upload}, func(up ports.StickerUpload) domain.ActionOutcome {
		sticker, err := e.conn.CreateSticker(ctx, g.ID, up, reason)
		if err != nil {
			return outcomeOf(up.Name, "sticker "+up.Name, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  sticker.ID,
			Succeeded: true,
			Message:   fmt.Sprintf("Created sticker %s", sticker.Name),
		}
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) RenameStickers(ctx context.Context, g domain.GuildSnapshot, stickerIDs []string, name, reason string) []domain.ActionOutcome {
	outcomes := fanOut(stickerIDs, func(stickerID string) domain.ActionOutcome {
		err := e.conn.RenameSticker(ctx, g.ID, stickerID, name, reason)
		return outcomeOf(stickerID, "sticker "+stickerID, "Renamed", "rename", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteStickers(ctx context.Context, g domain.GuildSnapshot, stickerIDs []string, reason string) []domain.ActionOutcome {
	outcomes := fanOut(stickerIDs, func(stickerID string) domain.ActionOutcome {
		err := e.conn.DeleteSticker(ctx, g.ID, stickerID, reason)
		return outcomeOf(stickerID, "sticker "+stickerID, "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) CreateTemplate(ctx context.Context, g domain.GuildSnapshot, name, description string) []domain.ActionOutcome {
	outcomes := fanOut([]string{name}, func(name string) domain.ActionOutcome {
		tpl, err := e.conn.CreateTemplate(ctx, g.ID, name, description)
		if err != nil {
			return outcomeOf(name, "template "+name, "", "create", err)
		}
		return domain.ActionOutcome{
			TargetID:  tpl.Code,
			Succeeded: true,
			Message:   fmt.Sprintf("Created template %s (%s)", tpl.Name, tpl.Code),
		}
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) SyncTemplates(ctx context.Context, g domain.GuildSnapshot, codes []string) []domain.ActionOutcome {
	outcomes := fanOut(codes, func(code string) domain.ActionOutcome {
		err := e.conn.SyncTemplate(ctx, g.ID, code)
		return outcomeOf(code, "template "+code, "Synced", "sync", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteTemplates(ctx context.Context, g domain.GuildSnapshot, codes []string) []domain.ActionOutcome {
	outcomes := fanOut(codes, func(code string) domain.ActionOutcome {
		err := e.conn.DeleteTemplate(ctx, g.ID, code)
		return outcomeOf(code, "template "+code, "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

func (e *Executor) DeleteInvites(ctx context.Context, g domain.GuildSnapshot, codes []string) []domain.ActionOutcome {
	outcomes := fanOut(codes, func(code string) domain.ActionOutcome {
		err := e.conn.DeleteInvite(ctx, code)
		return outcomeOf(code, "invite "+code, "Deleted", "delete", err)
	})
	return e.report(g.Name, outcomes)
}

package fakes

import (
	"context"
	"fmt"

	"github.com/softfang/guildctl/internal/domain"
)

func (c *Connection) FetchAllMembers(ctx context.Context, guildID string) ([]domain.MemberRef, error) {
	if err := c.waitGate(ctx); err != nil {
		return nil, err
	}
	if err := c.fieldErr(domain.FieldMembers); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.MemberRef(nil), c.MembersByGuild[guildID]...), nil
}

func (c *Connection) FetchMembersByIDs(ctx context.Context, guildID string, userIDs []string) ([]domain.MemberRef, error) {
	c.mu.Lock()
	resolveErr := c.ResolveErr
	members := c.MembersByGuild[guildID]
	c.mu.Unlock()

	if resolveErr != nil {
		return nil, resolveErr
	}
	byID := make(map[string]domain.MemberRef, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	out := make([]domain.MemberRef, 0, len(userIDs))
	for _, id := range userIDs {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (c *Connection) GuildChannels(guildID string) ([]domain.ChannelRef, error) {
	if err := c.fieldErr(domain.FieldChannels); err != nil {
		return nil, err
	}
	g, ok := c.guild(guildID)
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g.Channels, nil
}

func (c *Connection) GuildRoles(guildID string) ([]domain.RoleRef, error) {
	if err := c.fieldErr(domain.FieldRoles); err != nil {
		return nil, err
	}
	g, ok := c.guild(guildID)
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g.Roles, nil
}

func (c *Connection) GuildEmojis(guildID string) ([]domain.EmojiRef, error) {
	if err := c.fieldErr(domain.FieldEmojis); err != nil {
		return nil, err
	}
	g, ok := c.guild(guildID)
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g.Emojis, nil
}

func (c *Connection) GuildStickers(guildID string) ([]domain.StickerRef, error) {
	if err := c.fieldErr(domain.FieldStickers); err != nil {
		return nil, err
	}
	g, ok := c.guild(guildID)
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g.Stickers, nil
}

func (c *Connection) GuildBans(ctx context.Context, guildID string) ([]domain.BanRef, error) {
	if err := c.waitGate(ctx); err != nil {
		return nil, err
	}
	if err := c.fieldErr(domain.FieldBans); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.BanRef(nil), c.BansByGuild[guildID]...), nil
}

func (c *Connection) GuildInvites(ctx context.Context, guildID string) ([]domain.InviteRef, error) {
	if err := c.waitGate(ctx); err != nil {
		return nil, err
	}
	if err := c.fieldErr(domain.FieldInvites); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.InviteRef(nil), c.InvitesByGuild[guildID]...), nil
}

func (c *Connection) GuildTemplates(ctx context.Context, guildID string) ([]domain.TemplateRef, error) {
	if err := c.waitGate(ctx); err != nil {
		return nil, err
	}
	if err := c.fieldErr(domain.FieldTemplates); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.TemplateRef(nil), c.TemplatesByGuild[guildID]...), nil
}

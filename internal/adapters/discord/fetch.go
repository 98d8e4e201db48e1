package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/softfang/guildctl/internal/domain"
)

const (
	memberPageSize = 1000
	banPageSize    = 1000
)

// FetchAllMembers pages through the full member list.
func (c *Connection) FetchAllMembers(ctx context.Context, guildID string) ([]domain.MemberRef, error) {
	var out []domain.MemberRef
	after := ""
	for {
		page, err := c.sess.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch members: %w", err)
		}
		for _, m := range page {
			if m == nil || m.User == nil {
				continue
			}
			out = append(out, toMemberRef(m))
			after = m.User.ID
		}
		if len(page) < memberPageSize {
			return out, nil
		}
	}
}

// FetchMembersByIDs resolves specific members one by one. Unknown ids are
// omitted from the result; callers decide how to report them.
func (c *Connection) FetchMembersByIDs(ctx context.Context, guildID string, userIDs []string) ([]domain.MemberRef, error) {
	out := make([]domain.MemberRef, 0, len(userIDs))
	for _, id := range userIDs {
		m, err := c.sess.GuildMember(guildID, id, discordgo.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("resolve member %s: %w", id, err)
		}
		if m == nil || m.User == nil {
			continue
		}
		out = append(out, toMemberRef(m))
	}
	return out, nil
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusNotFound
}

// GuildChannels serves from the push-maintained state cache, falling back
// to the API when the cache has nothing for the guild.
func (c *Connection) GuildChannels(guildID string) ([]domain.ChannelRef, error) {
	if g, err := c.sess.State.Guild(guildID); err == nil && len(g.Channels) > 0 {
		out := make([]domain.ChannelRef, 0, len(g.Channels))
		for _, ch := range g.Channels {
			if ch == nil {
				continue
			}
			out = append(out, toChannelRef(ch))
		}
		return out, nil
	}

	channels, err := c.sess.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch channels: %w", err)
	}
	out := make([]domain.ChannelRef, 0, len(channels))
	for _, ch := range channels {
		if ch == nil {
			continue
		}
		out = append(out, toChannelRef(ch))
	}
	return out, nil
}

func (c *Connection) GuildRoles(guildID string) ([]domain.RoleRef, error) {
	if g, err := c.sess.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		out := make([]domain.RoleRef, 0, len(g.Roles))
		for _, r := range g.Roles {
			if r == nil {
				continue
			}
			out = append(out, toRoleRef(r))
		}
		return out, nil
	}

	roles, err := c.sess.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch roles: %w", err)
	}
	out := make([]domain.RoleRef, 0, len(roles))
	for _, r := range roles {
		if r == nil {
			continue
		}
		out = append(out, toRoleRef(r))
	}
	return out, nil
}

func (c *Connection) GuildEmojis(guildID string) ([]domain.EmojiRef, error) {
	if g, err := c.sess.State.Guild(guildID); err == nil {
		out := make([]domain.EmojiRef, 0, len(g.Emojis))
		for _, e := range g.Emojis {
			if e == nil {
				continue
			}
			out = append(out, toEmojiRef(e))
		}
		return out, nil
	}

	emojis, err := c.sess.GuildEmojis(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch emojis: %w", err)
	}
	out := make([]domain.EmojiRef, 0, len(emojis))
	for _, e := range emojis {
		if e == nil {
			continue
		}
		out = append(out, toEmojiRef(e))
	}
	return out, nil
}

func (c *Connection) GuildStickers(guildID string) ([]domain.StickerRef, error) {
	if g, err := c.sess.State.Guild(guildID); err == nil {
		out := make([]domain.StickerRef, 0, len(g.Stickers))
		for _, s := range g.Stickers {
			if s == nil {
				continue
			}
			out = append(out, toStickerRef(s))
		}
		return out, nil
	}
	return nil, fmt.Errorf("fetch stickers: guild %s not in state", guildID)
}

func (c *Connection) GuildBans(ctx context.Context, guildID string) ([]domain.BanRef, error) {
	var out []domain.BanRef
	after := ""
	for {
		page, err := c.sess.GuildBans(guildID, banPageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch bans: %w", err)
		}
		for _, b := range page {
			if b == nil {
				continue
			}
			out = append(out, toBanRef(b))
			if b.User != nil {
				after = b.User.ID
			}
		}
		if len(page) < banPageSize {
			return out, nil
		}
	}
}

func (c *Connection) GuildInvites(ctx context.Context, guildID string) ([]domain.InviteRef, error) {
	invites, err := c.sess.GuildInvites(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch invites: %w", err)
	}
	out := make([]domain.InviteRef, 0, len(invites))
	for _, i := range invites {
		if i == nil {
			continue
		}
		out = append(out, toInviteRef(i))
	}
	return out, nil
}

// GuildTemplates hits the endpoint directly; the template surface is thin
// enough that a typed wrapper buys nothing.
func (c *Connection) GuildTemplates(ctx context.Context, guildID string) ([]domain.TemplateRef, error) {
	data, err := c.sess.Request("GET", discordgo.EndpointGuild(guildID)+"/templates", nil, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch templates: %w", err)
	}

	var templates []templatePayload
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	out := make([]domain.TemplateRef, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.ref())
	}
	return out, nil
}

type templatePayload struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Creator *struct {
		Username string `json:"username"`
	} `json:"creator"`
}

func (t templatePayload) ref() domain.TemplateRef {
	ref := domain.TemplateRef{Code: t.Code, Name: t.Name}
	if t.Creator != nil {
		ref.CreatedBy = t.Creator.Username
	}
	return ref
}

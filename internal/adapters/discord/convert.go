package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/softfang/guildctl/internal/domain"
)

func toUser(u *discordgo.User) domain.User {
	return domain.User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		AvatarURL:     u.AvatarURL("128"),
		Bot:           u.Bot,
	}
}

func toMemberRef(m *discordgo.Member) domain.MemberRef {
	ref := domain.MemberRef{
		Nick:     m.Nick,
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		ref.ID = m.User.ID
		ref.Username = m.User.Username
		ref.Bot = m.User.Bot
	}
	return ref
}

func toChannelRef(ch *discordgo.Channel) domain.ChannelRef {
	return domain.ChannelRef{
		ID:        ch.ID,
		Name:      ch.Name,
		Type:      int(ch.Type),
		CreatedAt: domain.SnowflakeTime(ch.ID),
	}
}

func toRoleRef(r *discordgo.Role) domain.RoleRef {
	return domain.RoleRef{
		ID:        r.ID,
		Name:      r.Name,
		Managed:   r.Managed,
		CreatedAt: domain.SnowflakeTime(r.ID),
	}
}

func toEmojiRef(e *discordgo.Emoji) domain.EmojiRef {
	return domain.EmojiRef{ID: e.ID, Name: e.Name}
}

func toStickerRef(s *discordgo.Sticker) domain.StickerRef {
	return domain.StickerRef{ID: s.ID, Name: s.Name}
}

func toBanRef(b *discordgo.GuildBan) domain.BanRef {
	ref := domain.BanRef{Reason: b.Reason}
	if b.User != nil {
		ref.UserID = b.User.ID
		ref.Username = b.User.Username
		ref.Bot = b.User.Bot
	}
	return ref
}

func toInviteRef(i *discordgo.Invite) domain.InviteRef {
	ref := domain.InviteRef{
		Code:      i.Code,
		Uses:      i.Uses,
		CreatedAt: i.CreatedAt,
	}
	if i.Channel != nil {
		ref.ChannelID = i.Channel.ID
	}
	if i.Inviter != nil {
		ref.Inviter = i.Inviter.Username
	}
	return ref
}

func toGuildSnapshot(g *discordgo.Guild) domain.GuildSnapshot {
	snap := domain.GuildSnapshot{
		ID:          g.ID,
		Name:        g.Name,
		OwnerID:     g.OwnerID,
		MemberCount: g.MemberCount,
	}
	if g.Icon != "" {
		snap.IconURL = g.IconURL("128")
	}
	if len(g.Channels) > 0 {
		snap.Channels = make([]domain.ChannelRef, 0, len(g.Channels))
		for _, ch := range g.Channels {
			if ch == nil {
				continue
			}
			snap.Channels = append(snap.Channels, toChannelRef(ch))
		}
	}
	if len(g.Roles) > 0 {
		snap.Roles = make([]domain.RoleRef, 0, len(g.Roles))
		for _, r := range g.Roles {
			if r == nil {
				continue
			}
			snap.Roles = append(snap.Roles, toRoleRef(r))
		}
	}
	if len(g.Emojis) > 0 {
		snap.Emojis = make([]domain.EmojiRef, 0, len(g.Emojis))
		for _, e := range g.Emojis {
			if e == nil {
				continue
			}
			snap.Emojis = append(snap.Emojis, toEmojiRef(e))
		}
	}
	if len(g.Stickers) > 0 {
		snap.Stickers = make([]domain.StickerRef, 0, len(g.Stickers))
		for _, s := range g.Stickers {
			if s == nil {
				continue
			}
			snap.Stickers = append(snap.Stickers, toStickerRef(s))
		}
	}
	return snap
}

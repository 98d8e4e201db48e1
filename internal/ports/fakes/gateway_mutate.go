package fakes

import (
	"context"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

func (c *Connection) EditMember(ctx context.Context, guildID, userID string, edit ports.MemberEdit, reason string) error {
	if err := c.mutationErr("edit_member", userID); err != nil {
		return err
	}
	c.record("edit_member:%s:%s", guildID, userID)
	return nil
}

func (c *Connection) KickMember(ctx context.Context, guildID, userID, reason string) error {
	if err := c.mutationErr("kick", userID); err != nil {
		return err
	}
	c.record("kick:%s:%s", guildID, userID)
	return nil
}

func (c *Connection) BanMember(ctx context.Context, guildID, userID string, deleteDays int, reason string) error {
	if err := c.mutationErr("ban", userID); err != nil {
		return err
	}
	c.record("ban:%s:%s:%d", guildID, userID, deleteDays)
	return nil
}

func (c *Connection) UnbanMember(ctx context.Context, guildID, userID string) error {
	if err := c.mutationErr("unban", userID); err != nil {
		return err
	}
	c.record("unban:%s:%s", guildID, userID)
	return nil
}

func (c *Connection) AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	if err := c.mutationErr("add_role", userID+"/"+roleID); err != nil {
		return err
	}
	c.record("add_role:%s:%s:%s", guildID, userID, roleID)
	return nil
}

func (c *Connection) RemoveMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	if err := c.mutationErr("remove_role", userID+"/"+roleID); err != nil {
		return err
	}
	c.record("remove_role:%s:%s:%s", guildID, userID, roleID)
	return nil
}

func (c *Connection) SendDirectMessage(ctx context.Context, userID, content string) error {
	if err := c.mutationErr("dm", userID); err != nil {
		return err
	}
	c.record("dm:%s:%s", userID, content)
	return nil
}

func (c *Connection) SendChannelMessage(ctx context.Context, channelID, content string) error {
	if err := c.mutationErr("message", channelID); err != nil {
		return err
	}
	c.record("message:%s:%s", channelID, content)
	return nil
}

func (c *Connection) PurgeChannel(ctx context.Context, channelID string, limit int) (int, error) {
	if err := c.mutationErr("purge", channelID); err != nil {
		return 0, err
	}
	c.record("purge:%s:%d", channelID, limit)
	return 0, nil
}

func (c *Connection) CreateChannel(ctx context.Context, guildID, name string, channelType int, reason string) (domain.ChannelRef, error) {
	if err := c.mutationErr("create_channel", guildID); err != nil {
		return domain.ChannelRef{}, err
	}
	c.record("create_channel:%s:%s:%d", guildID, name, channelType)
	return domain.ChannelRef{ID: "new-" + name, Name: name, Type: channelType}, nil
}

func (c *Connection) RenameChannel(ctx context.Context, channelID, name, reason string) error {
	if err := c.mutationErr("rename_channel", channelID); err != nil {
		return err
	}
	c.record("rename_channel:%s:%s", channelID, name)
	return nil
}

func (c *Connection) DeleteChannel(ctx context.Context, channelID, reason string) error {
	if err := c.mutationErr("delete_channel", channelID); err != nil {
		return err
	}
	c.record("delete_channel:%s", channelID)
	return nil
}

func (c *Connection) CreateChannelInvite(ctx context.Context, channelID string) (domain.InviteRef, error) {
	if err := c.mutationErr("create_invite", channelID); err != nil {
		return domain.InviteRef{}, err
	}
	c.record("create_invite:%s", channelID)
	return domain.InviteRef{Code: "inv-" + channelID, ChannelID: channelID}, nil
}

func (c *Connection) CreateRole(ctx context.Context, guildID, name, reason string) (domain.RoleRef, error) {
	if err := c.mutationErr("create_role", guildID); err != nil {
		return domain.RoleRef{}, err
	}
	c.record("create_role:%s:%s", guildID, name)
	return domain.RoleRef{ID: "new-" + name, Name: name}, nil
}

func (c *Connection) RenameRole(ctx context.Context, guildID, roleID, name, reason string) error {
	if err := c.mutationErr("rename_role", roleID); err != nil {
		return err
	}
	c.record("rename_role:%s:%s:%s", guildID, roleID, name)
	return nil
}

func (c *Connection) DeleteRole(ctx context.Context, guildID, roleID, reason string) error {
	if err := c.mutationErr("delete_role", roleID); err != nil {
		return err
	}
	c.record("delete_role:%s:%s", guildID, roleID)
	return nil
}

func (c *Connection) CreateEmoji(ctx context.Context, guildID, name, imageData, reason string) (domain.EmojiRef, error) {
	if err := c.mutationErr("create_emoji", guildID); err != nil {
		return domain.EmojiRef{}, err
	}
	c.record("create_emoji:%s:%s", guildID, name)
	return domain.EmojiRef{ID: "new-" + name, Name: name}, nil
}

func (c *Connection) RenameEmoji(ctx context.Context, guildID, emojiID, name, reason string) error {
	if err := c.mutationErr("rename_emoji", emojiID); err != nil {
		return err
	}
	c.record("rename_emoji:%s:%s:%s", guildID, emojiID, name)
	return nil
}

func (c *Connection) DeleteEmoji(ctx context.Context, guildID, emojiID, reason string) error {
	if err := c.mutationErr("delete_emoji", emojiID); err != nil {
		return err
	}
	c.record("delete_emoji:%s:%s", guildID, emojiID)
	return nil
}

func (c *Connection) CreateSticker(ctx context.Context, guildID string, upload ports.StickerUpload, reason string) (domain.StickerRef, error) {
	if err := c.mutationErr("create_sticker", guildID); err != nil {
		return domain.StickerRef{}, err
	}
	c.record("create_sticker:%s:%s", guildID, upload.Name)
	return domain.StickerRef{ID: "new-" + upload.Name, Name: upload.Name}, nil
}

func (c *Connection) RenameSticker(ctx context.Context, guildID, stickerID, name, reason string) error {
	if err := c.mutationErr("rename_sticker", stickerID); err != nil {
		return err
	}
	c.record("rename_sticker:%s:%s:%s", guildID, stickerID, name)
	return nil
}

func (c *Connection) DeleteSticker(ctx context.Context, guildID, stickerID, reason string) error {
	if err := c.mutationErr("delete_sticker", stickerID); err != nil {
		return err
	}
	c.record("delete_sticker:%s:%s", guildID, stickerID)
	return nil
}

func (c *Connection) CreateTemplate(ctx context.Context, guildID, name, description string) (domain.TemplateRef, error) {
	if err := c.mutationErr("create_template", guildID); err != nil {
		return domain.TemplateRef{}, err
	}
	c.record("create_template:%s:%s", guildID, name)
	return domain.TemplateRef{Code: "tpl-" + name, Name: name}, nil
}

func (c *Connection) SyncTemplate(ctx context.Context, guildID, code string) error {
	if err := c.mutationErr("sync_template", code); err != nil {
		return err
	}
	c.record("sync_template:%s:%s", guildID, code)
	return nil
}

func (c *Connection) DeleteTemplate(ctx context.Context, guildID, code string) error {
	if err := c.mutationErr("delete_template", code); err != nil {
		return err
	}
	c.record("delete_template:%s:%s", guildID, code)
	return nil
}

func (c *Connection) DeleteInvite(ctx context.Context, code string) error {
	if err := c.mutationErr("delete_invite", code); err != nil {
		return err
	}
	c.record("delete_invite:%s", code)
	return nil
}

func (c *Connection) RenameGuild(ctx context.Context, guildID, name string) error {
	if err := c.mutationErr("rename_guild", guildID); err != nil {
		return err
	}
	c.record("rename_guild:%s:%s", guildID, name)
	return nil
}

func (c *Connection) SetGuildIcon(ctx context.Context, guildID, iconData string) error {
	if err := c.mutationErr("set_icon", guildID); err != nil {
		return err
	}
	c.record("set_icon:%s", guildID)
	return nil
}

func (c *Connection) PruneGuild(ctx context.Context, guildID string, days int, reason string) (int, error) {
	if err := c.mutationErr("prune", guildID); err != nil {
		return 0, err
	}
	c.record("prune:%s:%d", guildID, days)
	return 0, nil
}

func (c *Connection) LeaveGuild(ctx context.Context, guildID string) error {
	if err := c.mutationErr("leave_guild", guildID); err != nil {
		return err
	}
	c.record("leave_guild:%s", guildID)
	return nil
}

func (c *Connection) DeleteGuild(ctx context.Context, guildID string) error {
	if err := c.mutationErr("delete_guild", guildID); err != nil {
		return err
	}
	c.record("delete_guild:%s", guildID)
	return nil
}

func (c *Connection) CreateGuild(ctx context.Context, name string) (domain.GuildSnapshot, error) {
	if err := c.mutationErr("create_guild", name); err != nil {
		return domain.GuildSnapshot{}, err
	}
	c.record("create_guild:%s", name)
	return domain.GuildSnapshot{ID: "new-" + name, Name: name}, nil
}

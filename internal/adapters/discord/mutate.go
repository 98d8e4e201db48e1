package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

const purgePageSize = 100

func reqOpts(ctx context.Context, reason string) []discordgo.RequestOption {
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	return opts
}

func (c *Connection) EditMember(ctx context.Context, guildID, userID string, edit ports.MemberEdit, reason string) error {
	params := &discordgo.GuildMemberParams{}
	if edit.Nick != nil {
		params.Nick = *edit.Nick
	}
	if edit.TimeoutUntil != nil {
		params.CommunicationDisabledUntil = edit.TimeoutUntil
	}
	if _, err := c.sess.GuildMemberEdit(guildID, userID, params, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("edit member: %w", err)
	}
	return nil
}

func (c *Connection) KickMember(ctx context.Context, guildID, userID, reason string) error {
	if err := c.sess.GuildMemberDelete(guildID, userID, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("kick member: %w", err)
	}
	return nil
}

func (c *Connection) BanMember(ctx context.Context, guildID, userID string, deleteDays int, reason string) error {
	if err := c.sess.GuildBanCreateWithReason(guildID, userID, reason, deleteDays, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("ban member: %w", err)
	}
	return nil
}

func (c *Connection) UnbanMember(ctx context.Context, guildID, userID string) error {
	if err := c.sess.GuildBanDelete(guildID, userID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("unban member: %w", err)
	}
	return nil
}

func (c *Connection) AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	if err := c.sess.GuildMemberRoleAdd(guildID, userID, roleID, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("add role: %w", err)
	}
	return nil
}

func (c *Connection) RemoveMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	if err := c.sess.GuildMemberRoleRemove(guildID, userID, roleID, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

func (c *Connection) SendDirectMessage(ctx context.Context, userID, content string) error {
	dm, err := c.sess.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if _, err := c.sess.ChannelMessageSend(dm.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

func (c *Connection) SendChannelMessage(ctx context.Context, channelID, content string) error {
	if _, err := c.sess.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// PurgeChannel deletes recent messages in bulk-delete pages. A negative
// limit means everything the API will let us page through.
func (c *Connection) PurgeChannel(ctx context.Context, channelID string, limit int) (int, error) {
	deleted := 0
	for limit < 0 || deleted < limit {
		page := purgePageSize
		if limit >= 0 && limit-deleted < page {
			page = limit - deleted
		}
		messages, err := c.sess.ChannelMessages(channelID, page, "", "", "", discordgo.WithContext(ctx))
		if err != nil {
			return deleted, fmt.Errorf("list messages: %w", err)
		}
		if len(messages) == 0 {
			return deleted, nil
		}

		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			if m == nil {
				continue
			}
			ids = append(ids, m.ID)
		}
		if len(ids) == 1 {
			if err := c.sess.ChannelMessageDelete(channelID, ids[0], discordgo.WithContext(ctx)); err != nil {
				return deleted, fmt.Errorf("delete message: %w", err)
			}
		} else if err := c.sess.ChannelMessagesBulkDelete(channelID, ids, discordgo.WithContext(ctx)); err != nil {
			return deleted, fmt.Errorf("bulk delete: %w", err)
		}
		deleted += len(ids)
		if len(messages) < page {
			return deleted, nil
		}
	}
	return deleted, nil
}

func (c *Connection) CreateChannel(ctx context.Context, guildID, name string, channelType int, reason string) (domain.ChannelRef, error) {
	ch, err := c.sess.GuildChannelCreate(guildID, name, discordgo.ChannelType(channelType), reqOpts(ctx, reason)...)
	if err != nil {
		return domain.ChannelRef{}, fmt.Errorf("create channel: %w", err)
	}
	return toChannelRef(ch), nil
}

func (c *Connection) RenameChannel(ctx context.Context, channelID, name, reason string) error {
	if _, err := c.sess.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("rename channel: %w", err)
	}
	return nil
}

func (c *Connection) DeleteChannel(ctx context.Context, channelID, reason string) error {
	if _, err := c.sess.ChannelDelete(channelID, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

func (c *Connection) CreateChannelInvite(ctx context.Context, channelID string) (domain.InviteRef, error) {
	invite, err := c.sess.ChannelInviteCreate(channelID, discordgo.Invite{}, discordgo.WithContext(ctx))
	if err != nil {
		return domain.InviteRef{}, fmt.Errorf("create invite: %w", err)
	}
	ref := toInviteRef(invite)
	if ref.ChannelID == "" {
		ref.ChannelID = channelID
	}
	return ref, nil
}

func (c *Connection) CreateRole(ctx context.Context, guildID, name, reason string) (domain.RoleRef, error) {
	role, err := c.sess.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name}, reqOpts(ctx, reason)...)
	if err != nil {
		return domain.RoleRef{}, fmt.Errorf("create role: %w", err)
	}
	return toRoleRef(role), nil
}

func (c *Connection) RenameRole(ctx context.Context, guildID, roleID, name, reason string) error {
	if _, err := c.sess.GuildRoleEdit(guildID, roleID, &discordgo.RoleParams{Name: name}, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("rename role: %w", err)
	}
	return nil
}

func (c *Connection) DeleteRole(ctx context.Context, guildID, roleID, reason string) error {
	if err := c.sess.GuildRoleDelete(guildID, roleID, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

func (c *Connection) CreateEmoji(ctx context.Context, guildID, name, imageData, reason string) (domain.EmojiRef, error) {
	emoji, err := c.sess.GuildEmojiCreate(guildID, &discordgo.EmojiParams{Name: name, Image: imageData}, reqOpts(ctx, reason)...)
	if err != nil {
		return domain.EmojiRef{}, fmt.Errorf("create emoji: %w", err)
	}
	return toEmojiRef(emoji), nil
}

func (c *Connection) RenameEmoji(ctx context.Context, guildID, emojiID, name, reason string) error {
	if _, err := c.sess.GuildEmojiEdit(guildID, emojiID, &discordgo.EmojiParams{Name: name}, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("rename emoji: %w", err)
	}
	return nil
}

func (c *Connection) DeleteEmoji(ctx context.Context, guildID, emojiID, reason string) error {
	if err := c.sess.GuildEmojiDelete(guildID, emojiID, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("delete emoji: %w", err)
	}
	return nil
}

// CreateSticker uploads through the raw endpoint: sticker creation is a
// multipart form, which the typed client surface does not cover.
func (c *Connection) CreateSticker(ctx context.Context, guildID string, upload ports.StickerUpload, reason string) (domain.StickerRef, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("name", upload.Name); err != nil {
		return domain.StickerRef{}, fmt.Errorf("encode sticker form: %w", err)
	}
	if err := form.WriteField("description", upload.Description); err != nil {
		return domain.StickerRef{}, fmt.Errorf("encode sticker form: %w", err)
	}
	if err := form.WriteField("tags", upload.Tags); err != nil {
		return domain.StickerRef{}, fmt.Errorf("encode sticker form: %w", err)
	}
	part, err := form.CreateFormFile("file", upload.Name+".png")
	if err != nil {
		return domain.StickerRef{}, fmt.Errorf("encode sticker form: %w", err)
	}
	if _, err := io.Copy(part, upload.File); err != nil {
		return domain.StickerRef{}, fmt.Errorf("read sticker file: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.StickerRef{}, fmt.Errorf("encode sticker form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, discordgo.EndpointGuild(guildID)+"/stickers", &body)
	if err != nil {
		return domain.StickerRef{}, fmt.Errorf("build sticker request: %w", err)
	}
	req.Header.Set("Authorization", c.sess.Token)
	req.Header.Set("Content-Type", form.FormDataContentType())
	if reason != "" {
		req.Header.Set("X-Audit-Log-Reason", reason)
	}

	client := c.sess.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return domain.StickerRef{}, fmt.Errorf("create sticker: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.StickerRef{}, fmt.Errorf("create sticker: %s: %s", resp.Status, payload)
	}

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.StickerRef{}, fmt.Errorf("decode sticker response: %w", err)
	}
	return domain.StickerRef{ID: created.ID, Name: created.Name}, nil
}

func (c *Connection) RenameSticker(ctx context.Context, guildID, stickerID, name, reason string) error {
	payload := struct {
		Name string `json:"name"`
	}{Name: name}
	if _, err := c.sess.Request("PATCH", discordgo.EndpointGuild(guildID)+"/stickers/"+stickerID, payload, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("rename sticker: %w", err)
	}
	return nil
}

func (c *Connection) DeleteSticker(ctx context.Context, guildID, stickerID, reason string) error {
	if _, err := c.sess.Request("DELETE", discordgo.EndpointGuild(guildID)+"/stickers/"+stickerID, nil, reqOpts(ctx, reason)...); err != nil {
		return fmt.Errorf("delete sticker: %w", err)
	}
	return nil
}

func (c *Connection) CreateTemplate(ctx context.Context, guildID, name, description string) (domain.TemplateRef, error) {
	payload := struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{Name: name, Description: description}

	data, err := c.sess.Request("POST", discordgo.EndpointGuild(guildID)+"/templates", payload, discordgo.WithContext(ctx))
	if err != nil {
		return domain.TemplateRef{}, fmt.Errorf("create template: %w", err)
	}
	var created templatePayload
	if err := json.Unmarshal(data, &created); err != nil {
		return domain.TemplateRef{}, fmt.Errorf("decode template response: %w", err)
	}
	return created.ref(), nil
}

func (c *Connection) SyncTemplate(ctx context.Context, guildID, code string) error {
	if _, err := c.sess.Request("PUT", discordgo.EndpointGuild(guildID)+"/templates/"+code, nil, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sync template: %w", err)
	}
	return nil
}

func (c *Connection) DeleteTemplate(ctx context.Context, guildID, code string) error {
	if _, err := c.sess.Request("DELETE", discordgo.EndpointGuild(guildID)+"/templates/"+code, nil, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func (c *Connection) DeleteInvite(ctx context.Context, code string) error {
	if _, err := c.sess.InviteDelete(code, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (c *Connection) RenameGuild(ctx context.Context, guildID, name string) error {
	if _, err := c.sess.GuildEdit(guildID, &discordgo.GuildParams{Name: name}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("rename guild: %w", err)
	}
	return nil
}

func (c *Connection) SetGuildIcon(ctx context.Context, guildID, iconData string) error {
	if _, err := c.sess.GuildEdit(guildID, &discordgo.GuildParams{Icon: iconData}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("set guild icon: %w", err)
	}
	return nil
}

func (c *Connection) PruneGuild(ctx context.Context, guildID string, days int, reason string) (int, error) {
	if days < 1 {
		days = 1
	}
	count, err := c.sess.GuildPrune(guildID, uint32(days), reqOpts(ctx, reason)...)
	if err != nil {
		return 0, fmt.Errorf("prune guild: %w", err)
	}
	return int(count), nil
}

func (c *Connection) LeaveGuild(ctx context.Context, guildID string) error {
	if err := c.sess.GuildLeave(guildID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("leave guild: %w", err)
	}
	return nil
}

func (c *Connection) DeleteGuild(ctx context.Context, guildID string) error {
	if err := c.sess.GuildDelete(guildID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	return nil
}

func (c *Connection) CreateGuild(ctx context.Context, name string) (domain.GuildSnapshot, error) {
	guild, err := c.sess.GuildCreate(name, discordgo.WithContext(ctx))
	if err != nil {
		return domain.GuildSnapshot{}, fmt.Errorf("create guild: %w", err)
	}
	return toGuildSnapshot(guild), nil
}

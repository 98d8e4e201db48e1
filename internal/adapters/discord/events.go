package discord

import (
	"encoding/json"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/softfang/guildctl/internal/domain"
)

func (c *Connection) registerHandlers() {
	c.sess.AddHandler(c.onReady)
	c.sess.AddHandler(c.onGuildCreate)
	c.sess.AddHandler(c.onGuildUpdate)
	c.sess.AddHandler(c.onGuildDelete)
	c.sess.AddHandler(c.onChannelCreate)
	c.sess.AddHandler(c.onChannelUpdate)
	c.sess.AddHandler(c.onChannelDelete)
	c.sess.AddHandler(c.onRoleCreate)
	c.sess.AddHandler(c.onRoleUpdate)
	c.sess.AddHandler(c.onRoleDelete)
	c.sess.AddHandler(c.onMemberAdd)
	c.sess.AddHandler(c.onMemberUpdate)
	c.sess.AddHandler(c.onMemberRemove)
	c.sess.AddHandler(c.onEmojisUpdate)
	c.sess.AddHandler(c.onRawEvent)
	c.sess.AddHandler(c.onBanAdd)
	c.sess.AddHandler(c.onBanRemove)
	c.sess.AddHandler(c.onInviteCreate)
	c.sess.AddHandler(c.onInviteDelete)
	c.sess.AddHandler(c.onDisconnect)
}

func (c *Connection) onReady(_ *discordgo.Session, ev *discordgo.Ready) {
	c.mu.Lock()
	if ev.User != nil {
		c.self = toUser(ev.User)
	}
	c.initial = c.initial[:0]
	for _, g := range ev.Guilds {
		if g == nil || g.Unavailable {
			// Unavailable guilds stream in later as guild create events.
			continue
		}
		c.initial = append(c.initial, toGuildSnapshot(g))
	}
	c.mu.Unlock()

	c.emit(domain.Event{Kind: domain.EventReady})
}

func (c *Connection) onGuildCreate(_ *discordgo.Session, ev *discordgo.GuildCreate) {
	if ev.Guild == nil || ev.Unavailable {
		return
	}
	snap := toGuildSnapshot(ev.Guild)
	c.emit(domain.Event{Kind: domain.EventGuildCreate, GuildID: snap.ID, Guild: &snap})
}

func (c *Connection) onGuildUpdate(_ *discordgo.Session, ev *discordgo.GuildUpdate) {
	if ev.Guild == nil {
		return
	}
	snap := toGuildSnapshot(ev.Guild)
	c.emit(domain.Event{Kind: domain.EventGuildUpdate, GuildID: snap.ID, Guild: &snap})
}

func (c *Connection) onGuildDelete(_ *discordgo.Session, ev *discordgo.GuildDelete) {
	if ev.Guild == nil {
		return
	}
	c.emit(domain.Event{Kind: domain.EventGuildDelete, GuildID: ev.ID})
}

func (c *Connection) onChannelCreate(_ *discordgo.Session, ev *discordgo.ChannelCreate) {
	c.emitChannel(domain.EventChannelCreate, ev.Channel)
}

func (c *Connection) onChannelUpdate(_ *discordgo.Session, ev *discordgo.ChannelUpdate) {
	c.emitChannel(domain.EventChannelUpdate, ev.Channel)
}

func (c *Connection) onChannelDelete(_ *discordgo.Session, ev *discordgo.ChannelDelete) {
	c.emitChannel(domain.EventChannelDelete, ev.Channel)
}

func (c *Connection) emitChannel(kind domain.EventKind, ch *discordgo.Channel) {
	if ch == nil || ch.GuildID == "" {
		return
	}
	ref := toChannelRef(ch)
	c.emit(domain.Event{Kind: kind, GuildID: ch.GuildID, Channel: &ref})
}

func (c *Connection) onRoleCreate(_ *discordgo.Session, ev *discordgo.GuildRoleCreate) {
	if ev.Role == nil {
		return
	}
	ref := toRoleRef(ev.Role)
	c.emit(domain.Event{Kind: domain.EventRoleCreate, GuildID: ev.GuildID, Role: &ref})
}

func (c *Connection) onRoleUpdate(_ *discordgo.Session, ev *discordgo.GuildRoleUpdate) {
	if ev.Role == nil {
		return
	}
	ref := toRoleRef(ev.Role)
	c.emit(domain.Event{Kind: domain.EventRoleUpdate, GuildID: ev.GuildID, Role: &ref})
}

func (c *Connection) onRoleDelete(_ *discordgo.Session, ev *discordgo.GuildRoleDelete) {
	c.emit(domain.Event{Kind: domain.EventRoleDelete, GuildID: ev.GuildID, RoleID: ev.RoleID})
}

func (c *Connection) onMemberAdd(_ *discordgo.Session, ev *discordgo.GuildMemberAdd) {
	c.emitMember(domain.EventMemberAdd, ev.Member)
}

func (c *Connection) onMemberUpdate(_ *discordgo.Session, ev *discordgo.GuildMemberUpdate) {
	c.emitMember(domain.EventMemberUpdate, ev.Member)
}

func (c *Connection) emitMember(kind domain.EventKind, m *discordgo.Member) {
	if m == nil || m.User == nil {
		return
	}
	ref := toMemberRef(m)
	c.emit(domain.Event{Kind: kind, GuildID: m.GuildID, Member: &ref})
}

func (c *Connection) onMemberRemove(_ *discordgo.Session, ev *discordgo.GuildMemberRemove) {
	if ev.Member == nil || ev.User == nil {
		return
	}
	c.emit(domain.Event{Kind: domain.EventMemberRemove, GuildID: ev.GuildID, UserID: ev.User.ID})
}

func (c *Connection) onEmojisUpdate(_ *discordgo.Session, ev *discordgo.GuildEmojisUpdate) {
	emojis := make([]domain.EmojiRef, 0, len(ev.Emojis))
	for _, e := range ev.Emojis {
		if e == nil {
			continue
		}
		emojis = append(emojis, toEmojiRef(e))
	}
	c.emit(domain.Event{Kind: domain.EventEmojisUpdate, GuildID: ev.GuildID, Emojis: emojis})
}

const stickersUpdateEventType = "GUILD_STICKERS_UPDATE"

// stickersUpdatePayload mirrors the GUILD_STICKERS_UPDATE dispatch body.
// discordgo's typed events stop at GuildEmojisUpdate, so the sticker set is
// decoded off the raw dispatch stream.
type stickersUpdatePayload struct {
	GuildID  string               `json:"guild_id"`
	Stickers []*discordgo.Sticker `json:"stickers"`
}

func (p stickersUpdatePayload) refs() []domain.StickerRef {
	stickers := make([]domain.StickerRef, 0, len(p.Stickers))
	for _, s := range p.Stickers {
		if s == nil {
			continue
		}
		stickers = append(stickers, toStickerRef(s))
	}
	return stickers
}

func (c *Connection) onRawEvent(_ *discordgo.Session, ev *discordgo.Event) {
	if ev.Type != stickersUpdateEventType {
		return
	}
	var payload stickersUpdatePayload
	if err := json.Unmarshal(ev.RawData, &payload); err != nil {
		c.logger.Warn("decode stickers update", zap.Error(err))
		return
	}
	c.emit(domain.Event{Kind: domain.EventStickersUpdate, GuildID: payload.GuildID, Stickers: payload.refs()})
}

func (c *Connection) onBanAdd(_ *discordgo.Session, ev *discordgo.GuildBanAdd) {
	if ev.User == nil {
		return
	}
	c.emit(domain.Event{Kind: domain.EventBanAdd, GuildID: ev.GuildID, UserID: ev.User.ID})
}

func (c *Connection) onBanRemove(_ *discordgo.Session, ev *discordgo.GuildBanRemove) {
	if ev.User == nil {
		return
	}
	c.emit(domain.Event{Kind: domain.EventBanRemove, GuildID: ev.GuildID, UserID: ev.User.ID})
}

func (c *Connection) onInviteCreate(_ *discordgo.Session, ev *discordgo.InviteCreate) {
	c.emit(domain.Event{Kind: domain.EventInviteCreate, GuildID: ev.GuildID, Code: ev.Code})
}

func (c *Connection) onInviteDelete(_ *discordgo.Session, ev *discordgo.InviteDelete) {
	c.emit(domain.Event{Kind: domain.EventInviteDelete, GuildID: ev.GuildID, Code: ev.Code})
}

func (c *Connection) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	c.emit(domain.Event{Kind: domain.EventDisconnect})
}

package domain

// EventKind enumerates the closed set of gateway events the core consumes.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventReady
	EventGuildCreate
	EventGuildUpdate
	EventGuildDelete
	EventChannelCreate
	EventChannelUpdate
	EventChannelDelete
	EventRoleCreate
	EventRoleUpdate
	EventRoleDelete
	EventMemberAdd
	EventMemberUpdate
	EventMemberRemove
	EventEmojisUpdate
	EventStickersUpdate
	EventBanAdd
	EventBanRemove
	EventInviteCreate
	EventInviteDelete
	EventDisconnect
)

var eventKindNames = map[EventKind]string{
	EventReady:          "ready",
	EventGuildCreate:    "guild_create",
	EventGuildUpdate:    "guild_update",
	EventGuildDelete:    "guild_delete",
	EventChannelCreate:  "channel_create",
	EventChannelUpdate:  "channel_update",
	EventChannelDelete:  "channel_delete",
	EventRoleCreate:     "role_create",
	EventRoleUpdate:     "role_update",
	EventRoleDelete:     "role_delete",
	EventMemberAdd:      "member_add",
	EventMemberUpdate:   "member_update",
	EventMemberRemove:   "member_remove",
	EventEmojisUpdate:   "emojis_update",
	EventStickersUpdate: "stickers_update",
	EventBanAdd:         "ban_add",
	EventBanRemove:      "ban_remove",
	EventInviteCreate:   "invite_create",
	EventInviteDelete:   "invite_delete",
	EventDisconnect:     "disconnect",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one gateway push notification. Which payload fields are set
// depends on Kind; GuildID is set for every guild-scoped event.
type Event struct {
	Kind    EventKind
	GuildID string

	Guild    *GuildSnapshot
	Channel  *ChannelRef
	Role     *RoleRef
	RoleID   string
	Member   *MemberRef
	UserID   string
	Emojis   []EmojiRef
	Stickers []StickerRef
	Code     string
}

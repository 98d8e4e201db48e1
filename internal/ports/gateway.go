package ports

import (
	"context"
	"io"
	"time"

	"github.com/softfang/guildctl/internal/domain"
)

// Intent is an opt-in subscription to a category of push events.
type Intent string

const (
	IntentGuilds           Intent = "guilds"
	IntentGuildMembers     Intent = "guild_members"
	IntentGuildBans        Intent = "guild_bans"
	IntentGuildExpressions Intent = "guild_expressions"
	IntentGuildInvites     Intent = "guild_invites"
)

// DefaultIntents is the fixed capability set requested on connect unless the
// instance suppresses intents entirely.
func DefaultIntents() []Intent {
	return []Intent{
		IntentGuilds,
		IntentGuildMembers,
		IntentGuildBans,
		IntentGuildExpressions,
		IntentGuildInvites,
	}
}

// Gateway opens real-time connections to the event-streaming service. The
// wire protocol is the collaborator's business; the core sees only this
// capability set.
type Gateway interface {
	Connect(ctx context.Context, token string, kind domain.AccountKind, intents []Intent) (GatewayConnection, error)
}

// GatewayConnection is one live authenticated connection. Events delivers
// the typed push stream in receipt order; the channel closes when the
// connection ends. Close is idempotent.
type GatewayConnection interface {
	Self() domain.User
	InitialGuilds() []domain.GuildSnapshot
	Events() <-chan domain.Event
	Close() error

	GuildFetcher
	GuildMutator
}

// GuildFetcher reads guild sub-resources. The cache-backed methods
// (channels, roles, emojis, stickers) resolve locally from push-maintained
// state; the rest hit the remote API and may fail independently.
type GuildFetcher interface {
	FetchAllMembers(ctx context.Context, guildID string) ([]domain.MemberRef, error)
	FetchMembersByIDs(ctx context.Context, guildID string, userIDs []string) ([]domain.MemberRef, error)
	GuildChannels(guildID string) ([]domain.ChannelRef, error)
	GuildRoles(guildID string) ([]domain.RoleRef, error)
	GuildEmojis(guildID string) ([]domain.EmojiRef, error)
	GuildStickers(guildID string) ([]domain.StickerRef, error)
	GuildBans(ctx context.Context, guildID string) ([]domain.BanRef, error)
	GuildInvites(ctx context.Context, guildID string) ([]domain.InviteRef, error)
	GuildTemplates(ctx context.Context, guildID string) ([]domain.TemplateRef, error)
}

// MemberEdit carries the mutable member attributes. Nil fields are left
// untouched.
type MemberEdit struct {
	Nick         *string
	TimeoutUntil *time.Time
}

// StickerUpload is the payload for creating a guild sticker.
type StickerUpload struct {
	Name        string
	Description string
	Tags        string
	File        io.Reader
}

// GuildMutator issues administrative mutations. Every method acts on exactly
// one target; batching and failure isolation live above this interface.
type GuildMutator interface {
	EditMember(ctx context.Context, guildID, userID string, edit MemberEdit, reason string) error
	KickMember(ctx context.Context, guildID, userID, reason string) error
	BanMember(ctx context.Context, guildID, userID string, deleteDays int, reason string) error
	UnbanMember(ctx context.Context, guildID, userID string) error
	AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error

	SendDirectMessage(ctx context.Context, userID, content string) error
	SendChannelMessage(ctx context.Context, channelID, content string) error
	PurgeChannel(ctx context.Context, channelID string, limit int) (int, error)

	CreateChannel(ctx context.Context, guildID, name string, channelType int, reason string) (domain.ChannelRef, error)
	RenameChannel(ctx context.Context, channelID, name, reason string) error
	DeleteChannel(ctx context.Context, channelID, reason string) error
	CreateChannelInvite(ctx context.Context, channelID string) (domain.InviteRef, error)

	CreateRole(ctx context.Context, guildID, name, reason string) (domain.RoleRef, error)
	RenameRole(ctx context.Context, guildID, roleID, name, reason string) error
	DeleteRole(ctx context.Context, guildID, roleID, reason string) error

	CreateEmoji(ctx context.Context, guildID, name, imageData, reason string) (domain.EmojiRef, error)
	RenameEmoji(ctx context.Context, guildID, emojiID, name, reason string) error
	DeleteEmoji(ctx context.Context, guildID, emojiID, reason string) error

	CreateSticker(ctx context.Context, guildID string, upload StickerUpload, reason string) (domain.StickerRef, error)
	RenameSticker(ctx context.Context, guildID, stickerID, name, reason string) error
	DeleteSticker(ctx context.Context, guildID, stickerID, reason string) error

	CreateTemplate(ctx context.Context, guildID, name, description string) (domain.TemplateRef, error)
	SyncTemplate(ctx context.Context, guildID, code string) error
	DeleteTemplate(ctx context.Context, guildID, code string) error
	DeleteInvite(ctx context.Context, code string) error

	RenameGuild(ctx context.Context, guildID, name string) error
	SetGuildIcon(ctx context.Context, guildID, iconData string) error
	PruneGuild(ctx context.Context, guildID string, days int, reason string) (int, error)
	LeaveGuild(ctx context.Context, guildID string) error
	DeleteGuild(ctx context.Context, guildID string) error
	CreateGuild(ctx context.Context, name string) (domain.GuildSnapshot, error)
}

package domain

import "time"

// SessionState is the lifecycle phase of one gateway session. There is no
// transition out of Failed or Disconnected; a fresh connect builds a new
// session.
type SessionState string

const (
	SessionConnecting   SessionState = "connecting"
	SessionLive         SessionState = "live"
	SessionFailed       SessionState = "failed"
	SessionDisconnected SessionState = "disconnected"
)

// Field names one independently loadable sub-resource of a guild snapshot.
type Field string

const (
	FieldMembers   Field = "members"
	FieldChannels  Field = "channels"
	FieldRoles     Field = "roles"
	FieldEmojis    Field = "emojis"
	FieldStickers  Field = "stickers"
	FieldBans      Field = "bans"
	FieldInvites   Field = "invites"
	FieldTemplates Field = "templates"
)

// LazyFields are fetched on guild selection and cleared on deselect. The
// remaining fields are push-maintained for every tracked guild.
var LazyFields = []Field{FieldMembers, FieldBans, FieldInvites, FieldTemplates}

// Lazy reports whether the field is selection-scoped rather than
// push-maintained.
func (f Field) Lazy() bool {
	switch f {
	case FieldMembers, FieldBans, FieldInvites, FieldTemplates:
		return true
	}
	return false
}

// SelectFields is the full set a guild selection attempts to populate.
var SelectFields = []Field{
	FieldMembers, FieldChannels, FieldRoles, FieldEmojis,
	FieldStickers, FieldBans, FieldInvites, FieldTemplates,
}

type MemberRef struct {
	ID       string
	Username string
	Nick     string
	Bot      bool
	JoinedAt time.Time
}

type ChannelRef struct {
	ID        string
	Name      string
	Type      int
	CreatedAt time.Time
}

type RoleRef struct {
	ID        string
	Name      string
	Managed   bool
	CreatedAt time.Time
}

type EmojiRef struct {
	ID   string
	Name string
}

type StickerRef struct {
	ID   string
	Name string
}

type BanRef struct {
	UserID   string
	Username string
	Bot      bool
	Reason   string
}

type InviteRef struct {
	Code      string
	ChannelID string
	Inviter   string
	Uses      int
	CreatedAt time.Time
}

type TemplateRef struct {
	Code      string
	Name      string
	CreatedBy string
}

// GuildSnapshot is the aggregator's in-memory mirror of one guild. Each
// sub-resource slice is independently nilable: nil means not loaded or
// failed to load, which is distinct from a loaded empty collection.
type GuildSnapshot struct {
	ID          string
	Name        string
	OwnerID     string
	IconURL     string
	MemberCount int

	Channels []ChannelRef
	Roles    []RoleRef
	Emojis   []EmojiRef
	Stickers []StickerRef

	Members   []MemberRef
	Bans      []BanRef
	Invites   []InviteRef
	Templates []TemplateRef
}

// Clone returns a deep copy so callers never alias aggregator-owned state.
func (g GuildSnapshot) Clone() GuildSnapshot {
	out := g
	out.Channels = cloneSlice(g.Channels)
	out.Roles = cloneSlice(g.Roles)
	out.Emojis = cloneSlice(g.Emojis)
	out.Stickers = cloneSlice(g.Stickers)
	out.Members = cloneSlice(g.Members)
	out.Bans = cloneSlice(g.Bans)
	out.Invites = cloneSlice(g.Invites)
	out.Templates = cloneSlice(g.Templates)
	return out
}

// ClearLazy drops the selection-scoped fields back to the unloaded state.
func (g *GuildSnapshot) ClearLazy() {
	g.Members = nil
	g.Bans = nil
	g.Invites = nil
	g.Templates = nil
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

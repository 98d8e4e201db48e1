package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// fieldFetchTimeout bounds the background re-fetches triggered by ban and
// invite push events.
const fieldFetchTimeout = 30 * time.Second

// Aggregator converts a session's event stream into a queryable snapshot
// collection. Channels, roles, emojis and stickers are push-maintained for
// every tracked guild; members, bans, invites and templates are fetched
// lazily for the selected guild and cleared on deselect.
type Aggregator struct {
	session *Session
	conn    ports.GatewayConnection
	logbook *Logbook
	logger  *zap.Logger

	mu         sync.Mutex
	guilds     map[string]*domain.GuildSnapshot
	selectedID string
	// epoch advances on every selection change; in-flight lazy fetches
	// carry the epoch they started under and their results are dropped if
	// it moved.
	epoch uint64

	attachOnce sync.Once
	done       chan struct{}
}

func NewAggregator(session *Session, logbook *Logbook, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		session: session,
		conn:    session.Conn(),
		logbook: logbook,
		logger:  logger,
		guilds:  map[string]*domain.GuildSnapshot{},
		done:    make(chan struct{}),
	}
}

// Attach seeds the guild collection from the session's initial guild list
// and starts applying push events. Subscribing happens exactly once; the
// apply loop ends when the session disconnects.
func (a *Aggregator) Attach() {
	a.attachOnce.Do(func() {
		a.mu.Lock()
		for _, g := range a.conn.InitialGuilds() {
			snap := g.Clone()
			a.guilds[snap.ID] = &snap
		}
		a.mu.Unlock()
		go a.run()
	})
}

// Done is closed once the apply loop has detached.
func (a *Aggregator) Done() <-chan struct{} {
	return a.done
}

func (a *Aggregator) run() {
	defer close(a.done)
	for ev := range a.session.Events() {
		a.apply(ev)
	}
}

func (a *Aggregator) apply(ev domain.Event) {
	type refetch struct {
		guildID string
		field   domain.Field
	}
	var pending []refetch

	a.mu.Lock()
	switch ev.Kind {
	case domain.EventGuildCreate:
		if ev.Guild != nil {
			snap := ev.Guild.Clone()
			if existing, ok := a.guilds[snap.ID]; ok {
				// Replays keep any loaded lazy state.
				snap.Members = existing.Members
				snap.Bans = existing.Bans
				snap.Invites = existing.Invites
				snap.Templates = existing.Templates
			}
			a.guilds[snap.ID] = &snap
		}

	case domain.EventGuildUpdate:
		if g, ok := a.guilds[ev.GuildID]; ok && ev.Guild != nil {
			g.Name = ev.Guild.Name
			g.OwnerID = ev.Guild.OwnerID
			g.IconURL = ev.Guild.IconURL
			if ev.Guild.MemberCount > 0 {
				g.MemberCount = ev.Guild.MemberCount
			}
		}

	case domain.EventGuildDelete:
		if _, ok := a.guilds[ev.GuildID]; ok {
			delete(a.guilds, ev.GuildID)
			if a.selectedID == ev.GuildID {
				a.selectedID = ""
				a.epoch++
			}
		}

	case domain.EventChannelCreate, domain.EventChannelUpdate:
		if g, ok := a.guilds[ev.GuildID]; ok && ev.Channel != nil {
			g.Channels = upsertByID(g.Channels, *ev.Channel, func(c domain.ChannelRef) string { return c.ID })
		}

	case domain.EventChannelDelete:
		if g, ok := a.guilds[ev.GuildID]; ok && ev.Channel != nil {
			g.Channels = removeByID(g.Channels, ev.Channel.ID, func(c domain.ChannelRef) string { return c.ID })
		}

	case domain.EventRoleCreate, domain.EventRoleUpdate:
		if g, ok := a.guilds[ev.GuildID]; ok && ev.Role != nil {
			g.Roles = upsertByID(g.Roles, *ev.Role, func(r domain.RoleRef) string { return r.ID })
		}

	case domain.EventRoleDelete:
		if g, ok := a.guilds[ev.GuildID]; ok {
			g.Roles = removeByID(g.Roles, ev.RoleID, func(r domain.RoleRef) string { return r.ID })
		}

	case domain.EventMemberAdd, domain.EventMemberUpdate:
		// Member refs are merged only where the list is loaded; the acting
		// account itself never appears in its own member table.
		if g, ok := a.guilds[ev.GuildID]; ok && ev.Member != nil && g.Members != nil {
			if ev.Member.ID != a.conn.Self().ID {
				g.Members = upsertByID(g.Members, *ev.Member, func(m domain.MemberRef) string { return m.ID })
			}
		}

	case domain.EventMemberRemove:
		if g, ok := a.guilds[ev.GuildID]; ok && g.Members != nil {
			g.Members = removeByID(g.Members, ev.UserID, func(m domain.MemberRef) string { return m.ID })
		}

	case domain.EventEmojisUpdate:
		if g, ok := a.guilds[ev.GuildID]; ok {
			g.Emojis = append([]domain.EmojiRef(nil), ev.Emojis...)
		}

	case domain.EventStickersUpdate:
		if g, ok := a.guilds[ev.GuildID]; ok {
			g.Stickers = append([]domain.StickerRef(nil), ev.Stickers...)
		}

	case domain.EventBanAdd, domain.EventBanRemove:
		// The API only supports full-list retrieval, so a ban delta means a
		// full re-fetch of the loaded list.
		if _, ok := a.guilds[ev.GuildID]; ok && a.selectedID == ev.GuildID {
			pending = append(pending, refetch{guildID: ev.GuildID, field: domain.FieldBans})
		}

	case domain.EventInviteCreate, domain.EventInviteDelete:
		if _, ok := a.guilds[ev.GuildID]; ok && a.selectedID == ev.GuildID {
			pending = append(pending, refetch{guildID: ev.GuildID, field: domain.FieldInvites})
		}

	default:
		// Unknown or untracked events are dropped silently.
	}
	a.mu.Unlock()

	for _, p := range pending {
		a.refetchAsync(p.guildID, p.field)
	}
}

// SelectGuild runs the best-effort parallel fetch of all sub-resources.
// Each fetch is independent: one failing sets only its own field to nil and
// logs the failure. The call resolves once every attempt completed; the
// only error is an untracked guild id.
func (a *Aggregator) SelectGuild(ctx context.Context, guildID string) (domain.GuildSnapshot, error) {
	a.mu.Lock()
	g, ok := a.guilds[guildID]
	if !ok {
		a.mu.Unlock()
		return domain.GuildSnapshot{}, domain.ErrGuildNotTracked
	}
	if prev, tracked := a.guilds[a.selectedID]; tracked && a.selectedID != guildID {
		prev.ClearLazy()
	}
	a.selectedID = guildID
	a.epoch++
	epoch := a.epoch
	name := g.Name
	a.mu.Unlock()

	a.logbook.Append(name, "Selecting guild... (this might take a while)")

	eg, egCtx := errgroup.WithContext(ctx)
	for _, field := range domain.SelectFields {
		eg.Go(func() error {
			a.loadField(egCtx, guildID, epoch, name, field)
			return nil
		})
	}
	_ = eg.Wait()

	snap, ok := a.Guild(guildID)
	if !ok {
		return domain.GuildSnapshot{}, domain.ErrGuildNotTracked
	}
	a.logbook.Append(name, "Selected guild")
	return snap, nil
}

// DeselectGuild clears the current selection's lazily-loaded fields.
func (a *Aggregator) DeselectGuild() {
	a.mu.Lock()
	name := ""
	if g, ok := a.guilds[a.selectedID]; ok {
		g.ClearLazy()
		name = g.Name
	}
	a.selectedID = ""
	a.epoch++
	a.mu.Unlock()

	if name != "" {
		a.logbook.Append(name, "Unselected guild")
	}
}

// Refresh re-issues the fetch for exactly one field, with the same failure
// isolation as selection. Lazy fields require the guild to be selected.
func (a *Aggregator) Refresh(ctx context.Context, guildID string, field domain.Field) error {
	a.mu.Lock()
	g, ok := a.guilds[guildID]
	if !ok {
		a.mu.Unlock()
		return domain.ErrGuildNotTracked
	}
	if field.Lazy() && a.selectedID != guildID {
		a.mu.Unlock()
		return domain.ErrGuildNotSelected
	}
	epoch := a.epoch
	name := g.Name
	a.mu.Unlock()

	a.loadField(ctx, guildID, epoch, name, field)
	return nil
}

func (a *Aggregator) refetchAsync(guildID string, field domain.Field) {
	a.mu.Lock()
	g, ok := a.guilds[guildID]
	if !ok {
		a.mu.Unlock()
		return
	}
	epoch := a.epoch
	name := g.Name
	a.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fieldFetchTimeout)
		defer cancel()
		a.loadField(ctx, guildID, epoch, name, field)
	}()
}

func (a *Aggregator) loadField(ctx context.Context, guildID string, epoch uint64, guildName string, field domain.Field) {
	set, err := a.fetchField(ctx, guildID, field)
	if !a.storeField(guildID, epoch, field, set, err) {
		return
	}
	if err != nil {
		a.logger.Warn("guild resource fetch failed",
			zap.String("guild", guildID),
			zap.String("field", string(field)),
			zap.Error(err))
		a.logbook.Append(guildName, "Failed to fetch %s", field)
		return
	}
	a.logbook.Append(guildName, "Fetched %s", field)
}

// fetchField resolves one field's new value, returned as a setter so the
// store step can apply it under the lock.
func (a *Aggregator) fetchField(ctx context.Context, guildID string, field domain.Field) (func(*domain.GuildSnapshot), error) {
	switch field {
	case domain.FieldMembers:
		members, err := a.conn.FetchAllMembers(ctx, guildID)
		if err != nil {
			return nil, err
		}
		members = excludeUser(members, a.conn.Self().ID)
		return func(g *domain.GuildSnapshot) { g.Members = members }, nil
	case domain.FieldChannels:
		channels, err := a.conn.GuildChannels(guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Channels = channels }, nil
	case domain.FieldRoles:
		roles, err := a.conn.GuildRoles(guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Roles = roles }, nil
	case domain.FieldEmojis:
		emojis, err := a.conn.GuildEmojis(guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Emojis = emojis }, nil
	case domain.FieldStickers:
		stickers, err := a.conn.GuildStickers(guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Stickers = stickers }, nil
	case domain.FieldBans:
		bans, err := a.conn.GuildBans(ctx, guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Bans = bans }, nil
	case domain.FieldInvites:
		invites, err := a.conn.GuildInvites(ctx, guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Invites = invites }, nil
	case domain.FieldTemplates:
		templates, err := a.conn.GuildTemplates(ctx, guildID)
		if err != nil {
			return nil, err
		}
		return func(g *domain.GuildSnapshot) { g.Templates = templates }, nil
	}
	return func(*domain.GuildSnapshot) {}, nil
}

// storeField applies one fetch result. Results for guilds that were removed
// or deselected while the fetch was in flight are dropped; a failed fetch
// clears the field instead of leaving stale data.
func (a *Aggregator) storeField(guildID string, epoch uint64, field domain.Field, set func(*domain.GuildSnapshot), fetchErr error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	g, ok := a.guilds[guildID]
	if !ok {
		return false
	}
	if field.Lazy() && (a.selectedID != guildID || a.epoch != epoch) {
		return false
	}
	if fetchErr != nil {
		clearField(g, field)
		return true
	}
	set(g)
	return true
}

func clearField(g *domain.GuildSnapshot, field domain.Field) {
	switch field {
	case domain.FieldMembers:
		g.Members = nil
	case domain.FieldChannels:
		g.Channels = nil
	case domain.FieldRoles:
		g.Roles = nil
	case domain.FieldEmojis:
		g.Emojis = nil
	case domain.FieldStickers:
		g.Stickers = nil
	case domain.FieldBans:
		g.Bans = nil
	case domain.FieldInvites:
		g.Invites = nil
	case domain.FieldTemplates:
		g.Templates = nil
	}
}

// Guilds returns snapshot copies of every tracked guild, ordered by id.
func (a *Aggregator) Guilds() []domain.GuildSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.GuildSnapshot, 0, len(a.guilds))
	for _, g := range a.guilds {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Guild returns a copy of one tracked guild's snapshot.
func (a *Aggregator) Guild(id string) (domain.GuildSnapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.guilds[id]
	if !ok {
		return domain.GuildSnapshot{}, false
	}
	return g.Clone(), true
}

// Selected returns the currently selected guild's snapshot, if any.
func (a *Aggregator) Selected() (domain.GuildSnapshot, bool) {
	a.mu.Lock()
	id := a.selectedID
	a.mu.Unlock()
	if id == "" {
		return domain.GuildSnapshot{}, false
	}
	return a.Guild(id)
}

func (a *Aggregator) SelectedID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectedID
}

func upsertByID[T any](list []T, item T, key func(T) string) []T {
	id := key(item)
	for i := range list {
		if key(list[i]) == id {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func removeByID[T any](list []T, id string, key func(T) string) []T {
	for i := range list {
		if key(list[i]) == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func excludeUser(members []domain.MemberRef, userID string) []domain.MemberRef {
	out := make([]domain.MemberRef, 0, len(members))
	for _, m := range members {
		if m.ID == userID {
			continue
		}
		out = append(out, m)
	}
	return out
}

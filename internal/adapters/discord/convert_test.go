package discord

import (
	"encoding/json"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/softfang/guildctl/internal/domain"
)

func TestToGuildSnapshotConvertsNestedResources(t *testing.T) {
	g := &discordgo.Guild{
		ID:          "175928847299117063",
		Name:        "alpha",
		OwnerID:     "owner-1",
		MemberCount: 3,
		Channels: []*discordgo.Channel{
			{ID: "c1", Name: "general", Type: discordgo.ChannelTypeGuildText},
			nil,
		},
		Roles: []*discordgo.Role{
			{ID: "r1", Name: "mods", Managed: true},
		},
		Emojis: []*discordgo.Emoji{
			{ID: "e1", Name: "wave"},
		},
		Stickers: []*discordgo.Sticker{
			{ID: "s1", Name: "party"},
		},
	}

	snap := toGuildSnapshot(g)

	assert.Equal(t, "175928847299117063", snap.ID)
	assert.Equal(t, "alpha", snap.Name)
	assert.Equal(t, "owner-1", snap.OwnerID)
	assert.Equal(t, 3, snap.MemberCount)
	assert.Empty(t, snap.IconURL)

	require.Len(t, snap.Channels, 1)
	assert.Equal(t, "general", snap.Channels[0].Name)
	assert.Equal(t, int(discordgo.ChannelTypeGuildText), snap.Channels[0].Type)
	assert.False(t, snap.Channels[0].CreatedAt.IsZero())

	require.Len(t, snap.Roles, 1)
	assert.True(t, snap.Roles[0].Managed)

	require.Len(t, snap.Emojis, 1)
	assert.Equal(t, "wave", snap.Emojis[0].Name)

	require.Len(t, snap.Stickers, 1)
	assert.Equal(t, "party", snap.Stickers[0].Name)
}

func TestToMemberRefToleratesMissingUser(t *testing.T) {
	ref := toMemberRef(&discordgo.Member{Nick: "ghost"})
	assert.Equal(t, "ghost", ref.Nick)
	assert.Empty(t, ref.ID)

	ref = toMemberRef(&discordgo.Member{
		Nick: "ops",
		User: &discordgo.User{ID: "u1", Username: "alice", Bot: true},
	})
	assert.Equal(t, "u1", ref.ID)
	assert.Equal(t, "alice", ref.Username)
	assert.True(t, ref.Bot)
}

func TestTemplatePayloadRef(t *testing.T) {
	var payload templatePayload
	require.NoError(t, json.Unmarshal([]byte(`{"code":"tpl-1","name":"baseline","creator":{"username":"alice"}}`), &payload))

	ref := payload.ref()
	assert.Equal(t, domain.TemplateRef{Code: "tpl-1", Name: "baseline", CreatedBy: "alice"}, ref)

	anon := templatePayload{Code: "tpl-2", Name: "orphan"}
	assert.Equal(t, domain.TemplateRef{Code: "tpl-2", Name: "orphan"}, anon.ref())
}

func TestRawStickersUpdateEmitsDomainEvent(t *testing.T) {
	conn := &Connection{
		logger: zap.NewNop(),
		events: make(chan domain.Event, 4),
	}

	conn.onRawEvent(nil, &discordgo.Event{
		Type:    "GUILD_STICKERS_UPDATE",
		RawData: json.RawMessage(`{"guild_id":"g1","stickers":[{"id":"s1","name":"party"},null,{"id":"s2","name":"wave"}]}`),
	})

	require.Len(t, conn.events, 1)
	ev := <-conn.events
	assert.Equal(t, domain.EventStickersUpdate, ev.Kind)
	assert.Equal(t, "g1", ev.GuildID)
	assert.Equal(t, []domain.StickerRef{{ID: "s1", Name: "party"}, {ID: "s2", Name: "wave"}}, ev.Stickers)
}

func TestRawEventIgnoresOtherTypesAndBadPayloads(t *testing.T) {
	conn := &Connection{
		logger: zap.NewNop(),
		events: make(chan domain.Event, 4),
	}

	conn.onRawEvent(nil, &discordgo.Event{Type: "TYPING_START", RawData: json.RawMessage(`{}`)})
	conn.onRawEvent(nil, &discordgo.Event{Type: "GUILD_STICKERS_UPDATE", RawData: json.RawMessage(`{"guild_id":`)})

	assert.Empty(t, conn.events)
}

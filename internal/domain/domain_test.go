package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTag(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "legacy discriminator", user: User{Username: "mod", Discriminator: "1234"}, want: "mod#1234"},
		{name: "migrated username", user: User{Username: "mod", Discriminator: "0"}, want: "mod"},
		{name: "missing discriminator", user: User{Username: "mod"}, want: "mod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.Tag())
		})
	}
}

func TestSnowflakeTime(t *testing.T) {
	// 175928847299117063 >> 22 == 41944705796 ms past the Discord epoch.
	got := SnowflakeTime("175928847299117063")
	want := time.UnixMilli(1420070400000 + 41944705796).UTC()
	assert.Equal(t, want, got)

	assert.True(t, SnowflakeTime("not-a-snowflake").IsZero())
}

func TestAccountKindValid(t *testing.T) {
	assert.True(t, AccountKindBot.Valid())
	assert.True(t, AccountKindUser.Valid())
	assert.False(t, AccountKind("webhook").Valid())
}

func TestGuildSnapshotCloneDoesNotAlias(t *testing.T) {
	g := GuildSnapshot{
		ID:       "g1",
		Channels: []ChannelRef{{ID: "c1", Name: "general"}},
		Members:  []MemberRef{{ID: "m1", Username: "mod"}},
	}

	clone := g.Clone()
	clone.Channels[0].Name = "renamed"
	clone.Members[0].Username = "other"

	assert.Equal(t, "general", g.Channels[0].Name)
	assert.Equal(t, "mod", g.Members[0].Username)
	assert.Nil(t, clone.Bans, "unloaded fields stay nil after clone")
}

func TestGuildSnapshotClearLazy(t *testing.T) {
	g := GuildSnapshot{
		ID:       "g1",
		Channels: []ChannelRef{{ID: "c1"}},
		Members:  []MemberRef{{ID: "m1"}},
		Bans:     []BanRef{},
		Invites:  []InviteRef{{Code: "inv"}},
	}

	g.ClearLazy()

	assert.Nil(t, g.Members)
	assert.Nil(t, g.Bans)
	assert.Nil(t, g.Invites)
	assert.Nil(t, g.Templates)
	require.NotNil(t, g.Channels, "push-maintained fields survive deselection")
}

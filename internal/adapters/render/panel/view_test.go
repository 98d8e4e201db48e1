package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softfang/guildctl/internal/application"
	"github.com/softfang/guildctl/internal/domain"
)

func TestRenderPanelWithSelection(t *testing.T) {
	selected := domain.GuildSnapshot{
		ID:          "g1",
		Name:        "alpha",
		OwnerID:     "owner-1",
		MemberCount: 42,
		Channels:    []domain.ChannelRef{{ID: "c1", Name: "general"}},
		Roles:       []domain.RoleRef{{ID: "r1", Name: "mod"}},
		Members:     []domain.MemberRef{{ID: "u1", Username: "one"}},
		Invites:     []domain.InviteRef{},
	}

	output, err := Render(View{
		InstanceTag: "ops#1234",
		State:       domain.SessionLive,
		Guilds: []domain.GuildSnapshot{
			selected,
			{ID: "g2", Name: "beta", MemberCount: 7},
		},
		Selected: &selected,
		LogEntries: []application.LogEntry{
			{At: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC), Scope: "alpha", Text: "Fetched members"},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "guildctl panel")
	assert.Contains(t, output, "ops#1234 (live)")
	assert.Contains(t, output, "guilds: 2")
	assert.Contains(t, output, "alpha")
	assert.Contains(t, output, "beta")
	assert.Contains(t, output, "members: 1")
	assert.Contains(t, output, "invites: 0")
	assert.Contains(t, output, "bans: unavailable", "nil fields render as unavailable")
	assert.Contains(t, output, "(09:26:53) [alpha] Fetched members")
}

func TestRenderPanelEmpty(t *testing.T) {
	output, err := Render(View{InstanceTag: "ops", State: domain.SessionLive}, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "guilds: 0")
	assert.Contains(t, output, "No guilds tracked.")
}

func TestRenderPanelLogTailBounded(t *testing.T) {
	entries := []application.LogEntry{
		{Scope: "g", Text: "newest"},
		{Scope: "g", Text: "older"},
		{Scope: "g", Text: "oldest"},
	}
	output, err := Render(View{InstanceTag: "ops", State: domain.SessionLive, LogEntries: entries},
		RenderOptions{MaxLogLines: 2})
	require.NoError(t, err)
	assert.Contains(t, output, "newest")
	assert.Contains(t, output, "older")
	assert.NotContains(t, output, "oldest")
}

func TestRenderInstances(t *testing.T) {
	output, err := RenderInstances([]domain.Instance{
		{
			ID:        "main",
			Kind:      domain.AccountKindBot,
			Tag:       "ops#1234",
			CreatedAt: "2016-04-30",
		},
		{
			ID:              "alt",
			Kind:            domain.AccountKindUser,
			TimeoutDisabled: true,
			NoIntents:       true,
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "instances: 2")
	assert.Contains(t, output, "ops#1234 (main)")
	assert.Contains(t, output, "kind: bot, created: 2016-04-30")
	assert.Contains(t, output, "alt (alt)", "untagged instances fall back to the id")
	assert.Contains(t, output, "no connect timeout")
	assert.Contains(t, output, "no intents")
}

func TestRenderInstancesEmpty(t *testing.T) {
	output, err := RenderInstances(nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No instances stored.")
}

package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports/fakes"
)

func newTestExecutor(conn *fakes.Connection) (*Executor, *Logbook) {
	logbook := NewLogbook(nil)
	return NewExecutor(conn, logbook, nil), logbook
}

func executorGuild(conn *fakes.Connection, memberIDs ...string) domain.GuildSnapshot {
	members := make([]domain.MemberRef, len(memberIDs))
	for i, id := range memberIDs {
		members[i] = domain.MemberRef{ID: id, Username: "user-" + id}
	}
	conn.MembersByGuild["g1"] = members
	return domain.GuildSnapshot{
		ID:      "g1",
		Name:    "alpha",
		OwnerID: "owner-1",
		Channels: []domain.ChannelRef{
			{ID: "c1", Name: "general"},
		},
	}
}

func succeededCount(outcomes []domain.ActionOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Succeeded {
			n++
		}
	}
	return n
}

func TestKickIsolatesPerTargetFailures(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn, "u1", "u2", "u3", "u4", "u5")
	conn.MutationErrs["kick:u3"] = errors.New("missing permission")

	exec, logbook := newTestExecutor(conn)

	outcomes := exec.Kick(context.Background(), g, []string{"u1", "u2", "u3", "u4", "u5"}, "cleanup")

	require.Len(t, outcomes, 5, "every target reports an outcome")
	assert.Equal(t, 4, succeededCount(outcomes))
	for _, o := range outcomes {
		if o.TargetID == "u3" {
			assert.False(t, o.Succeeded)
			assert.Contains(t, o.Message, "missing permission")
		} else {
			assert.True(t, o.Succeeded, "sibling targets are unaffected by %s failing", o.TargetID)
		}
	}
	assert.Len(t, logbookScoped(logbook, "alpha"), 5, "one log line per outcome")
	assert.Len(t, conn.Calls(), 4, "only successful kicks reach the connection")
}

func TestResolutionFailureFailsEveryTargetUniformly(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn, "u1", "u2", "u3")
	conn.ResolveErr = errors.New("members intent denied")

	exec, logbook := newTestExecutor(conn)

	outcomes := exec.Ban(context.Background(), g, []string{"u1", "u2", "u3"}, "", "raid")

	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.False(t, o.Succeeded)
		assert.Contains(t, o.Message, "members intent denied")
	}
	assert.Empty(t, conn.Calls(), "no mutation runs when resolution fails")
	assert.Len(t, logbookScoped(logbook, "alpha"), 3)
}

func TestUnresolvedTargetsBecomeFailures(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn, "u1")

	exec, _ := newTestExecutor(conn)

	outcomes := exec.Kick(context.Background(), g, []string{"u1", "u9"}, "")

	require.Len(t, outcomes, 2)
	byTarget := map[string]domain.ActionOutcome{}
	for _, o := range outcomes {
		byTarget[o.TargetID] = o
	}
	assert.True(t, byTarget["u1"].Succeeded)
	assert.False(t, byTarget["u9"].Succeeded)
	assert.Contains(t, byTarget["u9"].Message, "not found")
}

func TestBanUsesDefaultDeleteDays(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn, "u1")

	exec, _ := newTestExecutor(conn)

	exec.Ban(context.Background(), g, []string{"u1"}, "", "")
	exec.Ban(context.Background(), g, []string{"u1"}, "7", "")

	calls := conn.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "ban:g1:u1:0", calls[0])
	assert.Equal(t, "ban:g1:u1:7", calls[1])
}

func TestDirectMessageRepeatsAndExpandsPlaceholders(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self-id"})
	g := executorGuild(conn, "u1", "u2")

	exec, _ := newTestExecutor(conn)

	outcomes := exec.DirectMessage(context.Background(), g, []string{"u1", "u2"},
		"hi %member%, welcome to %server%", "3")

	assert.Len(t, outcomes, 6, "2 targets x 3 repeats")

	calls := conn.Calls()
	require.Len(t, calls, 6)
	var sawU1 bool
	for _, call := range calls {
		if strings.HasPrefix(call, "dm:u1:") {
			sawU1 = true
			assert.Contains(t, call, "hi <@u1>, welcome to alpha")
		}
	}
	assert.True(t, sawU1)
}

func TestAddRolesFansOutCrossProduct(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn, "u1", "u2")
	conn.MutationErrs["add_role:u1/r2"] = errors.New("role hierarchy")

	exec, logbook := newTestExecutor(conn)

	outcomes := exec.AddRoles(context.Background(), g, []string{"u1", "u2"}, []string{"r1", "r2"}, "")

	require.Len(t, outcomes, 4, "2 members x 2 roles")
	assert.Equal(t, 3, succeededCount(outcomes))
	assert.Len(t, conn.Calls(), 3)
	assert.Len(t, logbookScoped(logbook, "alpha"), 4)
}

func TestSendMessageRepeatCount(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn)

	exec, _ := newTestExecutor(conn)

	outcomes := exec.SendMessage(context.Background(), g, []string{"c1", "c2"}, "ping", "")
	assert.Len(t, outcomes, 2, "blank count falls back to one round")

	outcomes = exec.SendMessage(context.Background(), g, []string{"c1"}, "ping", "4")
	assert.Len(t, outcomes, 4)
}

func TestPurgeUsesDefaultLimit(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn)

	exec, _ := newTestExecutor(conn)

	outcomes := exec.Purge(context.Background(), g, []string{"c1"}, "")
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded)
	assert.Equal(t, []string{"purge:c1:-1"}, conn.Calls())
}

func TestCreateChannelsRepeats(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn)

	exec, _ := newTestExecutor(conn)

	outcomes := exec.CreateChannels(context.Background(), g, "spam", "3", "", "")
	assert.Len(t, outcomes, 3)
	assert.Len(t, conn.Calls(), 3)
	assert.Equal(t, "create_channel:g1:spam:0", conn.Calls()[0])
}

func TestPruneParsesDays(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn)

	exec, _ := newTestExecutor(conn)

	exec.Prune(context.Background(), g, "", "")
	exec.Prune(context.Background(), g, "30", "")

	calls := conn.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "prune:g1:7", calls[0])
	assert.Equal(t, "prune:g1:30", calls[1])
}

func TestCreateInviteLinkNeedsAChannel(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn)

	exec, _ := newTestExecutor(conn)

	outcomes := exec.CreateInviteLink(context.Background(), g)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded)
	assert.Contains(t, outcomes[0].Message, "inv-c1")

	bare := domain.GuildSnapshot{ID: "g2", Name: "empty"}
	outcomes = exec.CreateInviteLink(context.Background(), bare)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded)
	assert.Contains(t, outcomes[0].Message, "no known channels")
}

func TestCreateGuildsScopedToAccount(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self", Username: "ops", Discriminator: "0"})
	exec, logbook := newTestExecutor(conn)

	outcomes := exec.CreateGuilds(context.Background(), "lab", "2")
	assert.Len(t, outcomes, 2)
	assert.Len(t, logbookScoped(logbook, "ops"), 2)
}

func TestUnbanSkipsResolution(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "self"})
	g := executorGuild(conn)
	conn.ResolveErr = errors.New("should not be called")

	exec, _ := newTestExecutor(conn)

	outcomes := exec.Unban(context.Background(), g, []string{"b1", "b2"})
	require.Len(t, outcomes, 2)
	assert.Equal(t, 2, succeededCount(outcomes))
}

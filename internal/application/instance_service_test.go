package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports/fakes"
)

func newTestInstanceService(gw *fakes.Gateway) (*InstanceService, *fakes.InstanceRepository) {
	repo := fakes.NewInstanceRepository()
	return NewInstanceService(repo, NewSessionManager(gw, nil), nil), repo
}

func TestAddValidatesAndStores(t *testing.T) {
	gw := &fakes.Gateway{Self: domain.User{
		ID:            "175928847299117063",
		Username:      "ops",
		Discriminator: "1234",
		AvatarURL:     "https://cdn.example/avatar.png",
	}}
	svc, repo := newTestInstanceService(gw)

	stored, err := svc.Add(context.Background(), domain.Instance{
		ID:    "main",
		Token: "tok",
		Kind:  domain.AccountKindBot,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InstanceID("main"), stored.ID)
	assert.Equal(t, "ops#1234", stored.Tag)
	assert.Equal(t, "https://cdn.example/avatar.png", stored.AvatarURL)
	assert.Equal(t, "2016-04-30", stored.CreatedAt)

	found, err := repo.Find(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, stored, found)
	assert.Equal(t, 1, gw.ConnectCount(), "validation connects exactly once")
}

func TestAddDefaultsIDToAccountID(t *testing.T) {
	gw := &fakes.Gateway{Self: domain.User{ID: "42", Username: "ops"}}
	svc, _ := newTestInstanceService(gw)

	stored, err := svc.Add(context.Background(), domain.Instance{Token: "tok", Kind: domain.AccountKindUser})
	require.NoError(t, err)
	assert.Equal(t, domain.InstanceID("42"), stored.ID)
}

func TestAddRejectsUnknownKind(t *testing.T) {
	gw := &fakes.Gateway{}
	svc, repo := newTestInstanceService(gw)

	_, err := svc.Add(context.Background(), domain.Instance{ID: "x", Token: "tok", Kind: "webhook"})
	require.Error(t, err)
	assert.Zero(t, gw.ConnectCount())

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddFailsWhenTokenInvalid(t *testing.T) {
	gw := &fakes.Gateway{ConnectErr: errors.New("401 unauthorized")}
	svc, repo := newTestInstanceService(gw)

	_, err := svc.Add(context.Background(), domain.Instance{ID: "x", Token: "bad", Kind: domain.AccountKindBot})
	require.Error(t, err)

	var connErr *domain.ConnectError
	assert.ErrorAs(t, err, &connErr)

	list, lerr := repo.List(context.Background())
	require.NoError(t, lerr)
	assert.Empty(t, list, "a failed validation stores nothing")
}

func TestAddReplacesExistingID(t *testing.T) {
	gw := &fakes.Gateway{Self: domain.User{ID: "42", Username: "first"}}
	svc, repo := newTestInstanceService(gw)

	_, err := svc.Add(context.Background(), domain.Instance{ID: "main", Token: "one", Kind: domain.AccountKindBot})
	require.NoError(t, err)

	gw.Self = domain.User{ID: "42", Username: "second"}
	_, err = svc.Add(context.Background(), domain.Instance{ID: "main", Token: "two", Kind: domain.AccountKindBot})
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "two", list[0].Token)
	assert.Equal(t, "second", list[0].Tag)
}

func TestRemoveUnknownInstance(t *testing.T) {
	svc, _ := newTestInstanceService(&fakes.Gateway{})
	err := svc.Remove(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)
}

func TestConnectInstance(t *testing.T) {
	conn := fakes.NewConnection(domain.User{ID: "42", Username: "ops"},
		domain.GuildSnapshot{ID: "g1", Name: "alpha"})
	gw := &fakes.Gateway{Conn: conn}
	svc, repo := newTestInstanceService(gw)
	require.NoError(t, repo.Add(context.Background(), domain.Instance{ID: "main", Token: "tok", Kind: domain.AccountKindBot}))

	sess, agg, err := svc.ConnectInstance(context.Background(), "main", NewLogbook(nil))
	require.NoError(t, err)
	defer func() { _ = sess.Disconnect() }()

	assert.Equal(t, domain.SessionLive, sess.State())
	require.Len(t, agg.Guilds(), 1)
	assert.Equal(t, "alpha", agg.Guilds()[0].Name)
}

func TestConnectInstanceUnknownID(t *testing.T) {
	svc, _ := newTestInstanceService(&fakes.Gateway{})
	_, _, err := svc.ConnectInstance(context.Background(), "ghost", NewLogbook(nil))
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubdesk/matchday/internal/apperr"
	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/session"
	"github.com/clubdesk/matchday/internal/testutil"
	"github.com/clubdesk/matchday/internal/user/model"
	"github.com/clubdesk/matchday/internal/user/repository"
)

type fixture struct {
	svc      Service
	repo     repository.Repository
	sessions *session.Manager
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenSQLite(t, &model.User{}, &session.Session{})
	logger := testutil.Logger(t)
	repo := repository.New(db, logger)
	sessions := session.NewManager(session.NewDBStore(db, nil), time.Hour, nil, logger)
	return &fixture{svc: New(repo, sessions, logger), repo: repo, sessions: sessions}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	user, err := f.svc.Register(ctx, &model.Credentials{Username: "  alice ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, auth.RoleUser, user.Role)

	stored, err := f.repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)

	_, err = f.svc.Register(ctx, &model.Credentials{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, model.ErrUserExists)

	tests := []struct {
		name string
		req  model.Credentials
		want error
	}{
		{name: "blank username", req: model.Credentials{Username: "   ", Password: "x"}, want: model.ErrMissingCredentials},
		{name: "no password", req: model.Credentials{Username: "bob"}, want: model.ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.Register(ctx, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = f.svc.Register(ctx, &model.Credentials{Username: "bob", Password: strings.Repeat("x", 73)})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.svc.Register(ctx, &model.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	user, sess, err := f.svc.Login(ctx, &model.Credentials{Username: "alice ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, sess)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, auth.RoleUser, sess.Role)

	loaded, err := f.sessions.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.UserID)

	_, _, wrongPassword := f.svc.Login(ctx, &model.Credentials{Username: "alice", Password: "nope"})
	_, _, unknownUser := f.svc.Login(ctx, &model.Credentials{Username: "mallory", Password: "nope"})
	assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, model.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	_, _, err = f.svc.Login(ctx, &model.Credentials{Username: "alice"})
	assert.ErrorIs(t, err, model.ErrMissingCredentials)
}

func TestService_LogoutAndMe(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.svc.Register(ctx, &model.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	user, sess, err := f.svc.Login(ctx, &model.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	me, err := f.svc.Me(ctx)
	require.NoError(t, err)
	assert.Nil(t, me)

	authed := auth.WithIdentity(ctx, auth.Identity{UserID: user.ID, Role: user.Role, SessionID: sess.ID})
	me, err = f.svc.Me(authed)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "alice", me.Username)

	ghost := auth.WithIdentity(ctx, auth.Identity{UserID: "deleted", Role: auth.RoleUser})
	me, err = f.svc.Me(ghost)
	require.NoError(t, err)
	assert.Nil(t, me)

	require.NoError(t, f.svc.Logout(authed, sess.ID))
	_, err = f.sessions.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.EnsureAdmin(ctx, "admin", "admin12345")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.EnsureAdmin(ctx, "admin", "changed")
	require.NoError(t, err)
	assert.False(t, created)

	user, sess, err := f.svc.Login(ctx, &model.Credentials{Username: "admin", Password: "admin12345"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	assert.Equal(t, auth.RoleAdmin, sess.Role)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/mock"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/models"
)

// newTestSessionSvc — хелпер для создания clientSessionService с моками
func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (
	*clientSessionService,
	*mock.MockServerAdapter,
	*mock.MockSessionStorage,
	*mock.MockTranscriptionCache,
) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockTokens := mock.NewMockSessionStorage(ctrl)
	mockCache := mock.NewMockTranscriptionCache(ctrl)

	storages := &store.ClientStorages{Session: mockTokens, Transcriptions: mockCache}
	svc := NewClientSessionService(storages, mockAdapter, logger.Nop()).(*clientSessionService)

	return svc, mockAdapter, mockTokens, mockCache
}

var alice = models.User{ID: 1, Username: "alice", Email: "alice@example.com"}

// ── Initialize ───────────────────────────────────────────────────────────────

func TestClientSessionService_Initialize_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockTokens, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().Token(ctx).Return("", nil)

	session := svc.Initialize(ctx)
	assert.False(t, session.Loading)
	assert.Nil(t, session.User)
	assert.False(t, session.LoggedIn())
}

func TestClientSessionService_Initialize_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockTokens, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockTokens.EXPECT().Token(ctx).Return("tok", nil),
		mockAdapter.EXPECT().CurrentUser(ctx).Return(alice, nil),
	)

	session := svc.Initialize(ctx)
	require.True(t, session.LoggedIn())
	assert.Equal(t, "alice", session.User.Username)
	assert.Equal(t, "tok", session.Token)
	assert.False(t, session.Loading)
	assert.True(t, session.ExpiresAt.IsZero(), "opaque token has no expiry")
}

func TestClientSessionService_Initialize_ClearsOnAnyFailure(t *testing.T) {
	failures := map[string]error{
		"unauthorized": &adapter.RemoteError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"},
		"network":      adapter.ErrNetwork,
		"server":       &adapter.RemoteError{Status: http.StatusInternalServerError},
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockAdapter, mockTokens, _ := newTestSessionSvc(t, ctrl)
			ctx := context.Background()

			gomock.InOrder(
				mockTokens.EXPECT().Token(ctx).Return("expired", nil),
				mockAdapter.EXPECT().CurrentUser(ctx).Return(models.User{}, failure),
				mockTokens.EXPECT().DeleteToken(ctx).Return(nil),
			)

			session := svc.Initialize(ctx)
			assert.False(t, session.LoggedIn())
			assert.Empty(t, session.Token)
			assert.False(t, session.Loading)
		})
	}
}

func TestClientSessionService_Initialize_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockTokens, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().Token(ctx).Return("", errors.New("database is locked"))
	mockTokens.EXPECT().DeleteToken(ctx).Return(errors.New("database is locked"))

	session := svc.Initialize(ctx)
	assert.False(t, session.LoggedIn())
	assert.False(t, session.Loading)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientSessionService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockTokens, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	gomock.InOrder(
		mockAdapter.EXPECT().
			Login(ctx, models.Credentials{Username: "alice", Password: "pw"}).
			Return(models.Token{AccessToken: token, TokenType: "bearer"}, nil),
		mockTokens.EXPECT().SaveToken(ctx, token).Return(nil),
		mockCache.EXPECT().Clear(ctx).Return(nil),
		mockAdapter.EXPECT().CurrentUser(ctx).Return(alice, nil),
	)

	session, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.True(t, session.LoggedIn())
	assert.Equal(t, token, session.Token)
	assert.Equal(t, alice, *session.User)
	assert.True(t, session.ExpiresAt.Equal(exp))
	assert.False(t, session.Loading)

	// Session() возвращает копию
	session.User.Username = "mallory"
	assert.Equal(t, "alice", svc.Session().User.Username)
}

func TestClientSessionService_Login_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	// действующая сессия до неудачной попытки
	svc.session = models.Session{Token: "old", User: &alice}

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.Token{}, &adapter.RemoteError{Status: http.StatusUnauthorized, Detail: "Incorrect username or password"})

	_, err := svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrAuth)
	require.ErrorIs(t, err, adapter.ErrUnauthorized)

	// никаких частичных записей: SaveToken не вызывался, пользователь прежний
	session := svc.Session()
	assert.Equal(t, "old", session.Token)
	assert.Equal(t, "alice", session.User.Username)
}

func TestClientSessionService_Login_NetworkErrorIsNotAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Token{}, adapter.ErrNetwork)

	_, err := svc.Login(ctx, "alice", "pw")
	require.ErrorIs(t, err, adapter.ErrNetwork)
	assert.NotErrorIs(t, err, ErrAuth)
}

func TestClientSessionService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestSessionSvc(t, ctrl)

	_, err := svc.Login(context.Background(), " ", "pw")
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Login(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestClientSessionService_Login_ProfileFetchFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockTokens, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Token{AccessToken: "fresh"}, nil),
		mockTokens.EXPECT().SaveToken(ctx, "fresh").Return(nil),
		mockCache.EXPECT().Clear(ctx).Return(nil),
		mockAdapter.EXPECT().CurrentUser(ctx).Return(models.User{}, adapter.ErrNetwork),
	)
	// токен остаётся сохранённым: DeleteToken не ожидается

	session, err := svc.Login(ctx, "alice", "pw")
	require.ErrorIs(t, err, adapter.ErrNetwork)
	assert.Equal(t, "fresh", session.Token)
	assert.Nil(t, session.User)
	assert.False(t, session.Loading)
}

func TestClientSessionService_Login_SaveTokenFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockTokens, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Token{AccessToken: "fresh"}, nil)
	mockTokens.EXPECT().SaveToken(ctx, "fresh").Return(errors.New("disk full"))

	_, err := svc.Login(ctx, "alice", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist token")
	assert.False(t, svc.Session().LoggedIn())
}

func TestClientSessionService_Login_LogoutDuringProfileFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockTokens, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Token{AccessToken: "fresh"}, nil)
	mockTokens.EXPECT().SaveToken(ctx, "fresh").Return(nil)
	mockCache.EXPECT().Clear(ctx).Return(nil).Times(2)
	mockTokens.EXPECT().DeleteToken(ctx).Return(nil)
	mockAdapter.EXPECT().CurrentUser(ctx).DoAndReturn(func(ctx context.Context) (models.User, error) {
		// выход из системы, пока профиль ещё загружается
		require.NoError(t, svc.Logout(ctx))
		return alice, nil
	})

	_, err := svc.Login(ctx, "alice", "pw")
	require.ErrorIs(t, err, ErrSessionChanged)
	assert.Nil(t, svc.Session().User, "user must not reappear after logout")
	assert.Empty(t, svc.Session().Token)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestClientSessionService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Register(ctx, models.Registration{Username: "alice", Email: "alice@example.com", Password: "pw"}).
		Return(alice, nil)

	user, err := svc.Register(ctx, " alice ", "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.False(t, svc.Session().LoggedIn(), "registration does not log in")
}

func TestClientSessionService_Register_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "", "pw")
	require.ErrorIs(t, err, ErrValidation)

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).
		Return(models.User{}, &adapter.RemoteError{Status: http.StatusBadRequest, Detail: "Username already registered"})

	_, err = svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.ErrorIs(t, err, ErrAuth)
	assert.Contains(t, err.Error(), "Username already registered")
}

// ── Logout / Teardown ────────────────────────────────────────────────────────

func TestClientSessionService_Logout_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockTokens, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	svc.session = models.Session{Token: "tok", User: &alice}

	mockTokens.EXPECT().DeleteToken(ctx).Return(nil).Times(2)
	mockCache.EXPECT().Clear(ctx).Return(nil).Times(2)

	require.NoError(t, svc.Logout(ctx))
	first := svc.Session()
	require.NoError(t, svc.Logout(ctx))

	assert.Equal(t, first, svc.Session())
	assert.False(t, svc.Session().LoggedIn())
}

func TestClientSessionService_Logout_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockTokens, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().DeleteToken(ctx).Return(errors.New("locked"))
	mockCache.EXPECT().Clear(ctx).Return(errors.New("locked"))

	err := svc.Logout(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete token")
	assert.Contains(t, err.Error(), "clear snapshot")
	assert.False(t, svc.Session().LoggedIn())
}

func TestClientSessionService_Teardown(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestSessionSvc(t, ctrl)

	svc.session = models.Session{Token: "tok", User: &alice}
	svc.Teardown()

	assert.Equal(t, models.Session{}, svc.Session())
}

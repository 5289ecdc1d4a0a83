package auth_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/linkedin-post-stats/auth"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	fakesessionrepo "github.com/jrsteele09/linkedin-post-stats/sessions/repofakes"
	"github.com/jrsteele09/linkedin-post-stats/users"
	fakeuserrepo "github.com/jrsteele09/linkedin-post-stats/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "alice"
	testPassword = "correct"
)

// testFixture holds all test dependencies
type testFixture struct {
	sessionRepo *fakesessionrepo.FakeSessionRepo
	service     *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	userService, err := users.NewService(fakeuserrepo.NewFakeUserRepo())
	require.NoError(t, err)
	sr := fakesessionrepo.NewFakeSessionRepo()
	manager, err := sessions.NewManager(sr, []byte("secret"))
	require.NoError(t, err)
	service, err := auth.NewService(userService, manager)
	require.NoError(t, err)
	return &testFixture{sessionRepo: sr, service: service}
}

func TestNewService_Validation(t *testing.T) {
	_, err := auth.NewService(nil, nil)
	require.Error(t, err)
}

func TestService_RegisterDoesNotLogIn(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, testUsername, testPassword)
	require.NoError(t, err)
	require.Equal(t, testUsername, user.Username)
	require.Equal(t, 0, f.sessionRepo.Len())

	_, err = f.service.Register(ctx, testUsername, testPassword)
	require.ErrorIs(t, err, autherrors.ErrDuplicateUsername)
}

func TestService_Login(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	registered, err := f.service.Register(ctx, testUsername, testPassword)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		class    error
		message  string
	}{
		{name: "unknown user", username: "bob", password: testPassword, class: autherrors.ErrUnauthorized, message: auth.MsgIncorrectUsername},
		{name: "wrong password", username: testUsername, password: "wrong", class: autherrors.ErrUnauthorized, message: auth.MsgIncorrectPassword},
		{name: "missing username", username: "", password: testPassword, class: autherrors.ErrValidation, message: auth.MsgMissingCredentials},
		{name: "missing password", username: testUsername, password: "", class: autherrors.ErrValidation, message: auth.MsgMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(ctx, tt.username, tt.password)
			require.ErrorIs(t, err, tt.class)
			require.Equal(t, tt.message, autherrors.Message(err, ""))
		})
	}
	require.Equal(t, 0, f.sessionRepo.Len())

	t.Run("success", func(t *testing.T) {
		result, err := f.service.Login(ctx, testUsername, testPassword)
		require.NoError(t, err)
		require.NotEmpty(t, result.Token)
		require.Equal(t, registered.ID, result.User.ID)

		userID, ok := f.service.CurrentUser(ctx, result.Token)
		require.True(t, ok)
		require.Equal(t, registered.ID, userID)
	})
}

func TestService_Logout(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	_, err := f.service.Register(ctx, testUsername, testPassword)
	require.NoError(t, err)
	result, err := f.service.Login(ctx, testUsername, testPassword)
	require.NoError(t, err)

	f.service.Logout(ctx, result.Token)
	_, ok := f.service.CurrentUser(ctx, result.Token)
	require.False(t, ok)

	// logging out twice, or without a session, is harmless
	f.service.Logout(ctx, result.Token)
	f.service.Logout(ctx, "")
}

func TestValidateState(t *testing.T) {
	require.NoError(t, auth.ValidateState("abc123"))
	require.ErrorIs(t, auth.ValidateState(""), autherrors.ErrInvalidState)
	require.ErrorIs(t, auth.ValidateState(" abc "), autherrors.ErrInvalidState)
}

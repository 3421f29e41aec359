package session

import (
	"context"
	"errors"
	"testing"

	"devconnector/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	registerFunc    func(name, email, password string) (string, error)
	loginFunc       func(email, password string) (string, error)
	currentUserFunc func(token string) (models.User, error)
}

func (f *fakeAuthAPI) Register(_ context.Context, name, email, password string) (string, error) {
	if f.registerFunc != nil {
		return f.registerFunc(name, email, password)
	}
	return "", errors.New("not implemented")
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (string, error) {
	if f.loginFunc != nil {
		return f.loginFunc(email, password)
	}
	return "", errors.New("not implemented")
}

func (f *fakeAuthAPI) CurrentUser(_ context.Context, token string) (models.User, error) {
	if f.currentUserFunc != nil {
		return f.currentUserFunc(token)
	}
	return models.User{}, errors.New("not implemented")
}

func TestSession_StartsAnonymous(t *testing.T) {
	t.Parallel()

	s := New(&fakeAuthAPI{})
	assert.Equal(t, StateAnonymous, s.State())
	assert.Empty(t, s.Token())
}

func TestSession_InitWithEmptyTokenStaysAnonymous(t *testing.T) {
	t.Parallel()

	s := New(&fakeAuthAPI{})
	s.Init(context.Background(), "")
	assert.Equal(t, StateAnonymous, s.State())
}

func TestSession_InitWithValidTokenAuthenticates(t *testing.T) {
	t.Parallel()

	user := models.User{ID: uuid.New(), Name: "Ann"}
	api := &fakeAuthAPI{
		currentUserFunc: func(token string) (models.User, error) {
			assert.Equal(t, "stored-token", token)
			return user, nil
		},
	}

	s := New(api)
	s.Init(context.Background(), "stored-token")

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "stored-token", s.Token())
	assert.Equal(t, user, s.User())
}

func TestSession_InitWithRejectedTokenClearsIt(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		currentUserFunc: func(string) (models.User, error) {
			return models.User{}, errors.New("unexpected status 401")
		},
	}

	s := New(api)
	s.Init(context.Background(), "stale-token")

	assert.Equal(t, StateAnonymous, s.State())
	assert.Empty(t, s.Token())
}

func TestSession_LoginSuccess(t *testing.T) {
	t.Parallel()

	user := models.User{ID: uuid.New(), Name: "Ann"}
	api := &fakeAuthAPI{
		loginFunc: func(email, password string) (string, error) {
			return "fresh-token", nil
		},
		currentUserFunc: func(token string) (models.User, error) {
			return user, nil
		},
	}

	s := New(api)
	require.NoError(t, s.Login(context.Background(), "ann@x.com", "secret123"))

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "fresh-token", s.Token())
	assert.Equal(t, user, s.User())
}

func TestSession_LoginFailureLandsInFailed(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		loginFunc: func(string, string) (string, error) {
			return "", errors.New("invalid credentials")
		},
	}

	s := New(api)
	err := s.Login(context.Background(), "ann@x.com", "wrong")
	require.Error(t, err)

	assert.Equal(t, StateFailed, s.State())
	assert.Empty(t, s.Token())
}

func TestSession_FailedLoginCanRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	api := &fakeAuthAPI{
		loginFunc: func(string, string) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("invalid credentials")
			}
			return "fresh-token", nil
		},
		currentUserFunc: func(string) (models.User, error) {
			return models.User{Name: "Ann"}, nil
		},
	}

	s := New(api)
	require.Error(t, s.Login(context.Background(), "ann@x.com", "wrong"))
	require.NoError(t, s.Login(context.Background(), "ann@x.com", "secret123"))
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestSession_RegisterAuthenticates(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		registerFunc: func(name, email, password string) (string, error) {
			return "fresh-token", nil
		},
		currentUserFunc: func(string) (models.User, error) {
			return models.User{Name: "Ann"}, nil
		},
	}

	s := New(api)
	require.NoError(t, s.Register(context.Background(), "Ann", "ann@x.com", "secret123"))
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestSession_LoginWhileAuthenticatedRejected(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		loginFunc: func(string, string) (string, error) { return "fresh-token", nil },
		currentUserFunc: func(string) (models.User, error) {
			return models.User{Name: "Ann"}, nil
		},
	}

	s := New(api)
	require.NoError(t, s.Login(context.Background(), "ann@x.com", "secret123"))

	err := s.Login(context.Background(), "ann@x.com", "secret123")
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)

	// The rejected call must not disturb the established session.
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "fresh-token", s.Token())
}

func TestSession_LogoutReturnsToAnonymous(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		loginFunc: func(string, string) (string, error) { return "fresh-token", nil },
		currentUserFunc: func(string) (models.User, error) {
			return models.User{Name: "Ann"}, nil
		},
	}

	s := New(api)
	require.NoError(t, s.Login(context.Background(), "ann@x.com", "secret123"))

	s.Logout()
	assert.Equal(t, StateAnonymous, s.State())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.User().Name)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "failed", StateFailed.String())
}

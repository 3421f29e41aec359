package session

import (
	"context"
	"errors"
	"sync"

	"devconnector/internal/models"
)

// State is the client-side view of "is a user logged in".
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrBusy                 = errors.New("an authentication attempt is already in progress")
	ErrAlreadyAuthenticated = errors.New("already authenticated, log out first")
)

// AuthAPI is the slice of the server the session depends on.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

// Session replaces the original's module-load side effect with an explicit
// state object. Transitions: anonymous -> authenticating ->
// authenticated | failed -> anonymous (on logout). Init runs once at
// startup with whatever token was previously stored.
type Session struct {
	mu    sync.Mutex
	api   AuthAPI
	state State
	token string
	user  models.User
}

func New(api AuthAPI) *Session {
	return &Session{api: api, state: StateAnonymous}
}

// Init verifies a previously stored token against the API. An empty or
// rejected token leaves the session anonymous; a valid one authenticates
// it without a fresh login.
func (s *Session) Init(ctx context.Context, storedToken string) {
	if storedToken == "" {
		return
	}

	user, err := s.api.CurrentUser(ctx, storedToken)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateAnonymous
		s.token = ""
		return
	}
	s.state = StateAuthenticated
	s.token = storedToken
	s.user = user
}

// Login drives anonymous/failed -> authenticating -> authenticated|failed.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}

	token, err := s.api.Login(ctx, email, password)
	return s.settle(ctx, token, err)
}

// Register behaves like Login: a successful registration leaves the
// session authenticated with the fresh token.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}

	token, err := s.api.Register(ctx, name, email, password)
	return s.settle(ctx, token, err)
}

// Logout always lands in anonymous and drops the token. The token itself
// stays valid server-side until it expires.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.token = ""
	s.user = models.User{}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the credential to store for the next Init, empty unless
// authenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// begin starts an authentication attempt. Only anonymous and failed
// sessions may start one; an authenticated session must log out first.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateAuthenticating:
		return ErrBusy
	case StateAuthenticated:
		return ErrAlreadyAuthenticated
	}
	s.state = StateAuthenticating
	s.token = ""
	s.user = models.User{}
	return nil
}

func (s *Session) settle(ctx context.Context, token string, err error) error {
	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.mu.Unlock()
		return err
	}

	user, err := s.api.CurrentUser(ctx, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		return err
	}

	s.state = StateAuthenticated
	s.token = token
	s.user = user
	return nil
}

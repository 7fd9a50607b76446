package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/validator"
)

// AuthAPI is the slice of the API client the session service depends on.
type AuthAPI interface {
	Login(ctx context.Context, req hoaapi.LoginRequest) (*hoaapi.AuthResponse, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req hoaapi.RegisterRequest) (*hoaapi.AuthResponse, error)
	Me(ctx context.Context) (*hoaapi.User, error)
	SendResetLink(ctx context.Context, req hoaapi.SendResetLinkRequest) (*hoaapi.StatusResponse, error)
	VerifyOTP(ctx context.Context, req hoaapi.VerifyOTPRequest) (*hoaapi.StatusResponse, error)
	ResetPassword(ctx context.Context, req hoaapi.ResetPasswordRequest) (*hoaapi.StatusResponse, error)
}

// Service handles login, registration, logout and session restore.
type Service struct {
	api   AuthAPI
	store *Store
}

// NewService creates a new session service.
func NewService(api AuthAPI, store *Store) *Service {
	return &Service{api: api, store: store}
}

// Login establishes a session and persists the issued credential.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	req := hoaapi.LoginRequest{Email: email, Password: password}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	user := fromAPI(resp.User)
	s.store.Set(user, resp.Token)
	log.Info().Int64("user_id", user.ID).Msg("Logged in")
	return user, nil
}

// Register creates an account and establishes a session.
func (s *Service) Register(ctx context.Context, req hoaapi.RegisterRequest) (*User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	user := fromAPI(resp.User)
	s.store.Set(user, resp.Token)
	log.Info().Int64("user_id", user.ID).Msg("Registered")
	return user, nil
}

// Logout invalidates the session server-side and clears local state. Local
// state is cleared even when the server call fails; a dead session on this
// device is the priority.
func (s *Service) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.store.Clear()
	if err != nil {
		log.Warn().Err(err).Msg("Server-side logout failed, local session cleared anyway")
	}
	return err
}

// Restore revalidates a previously stored credential against /me. A missing
// credential returns ErrNoStoredSession; a rejected one is wiped.
func (s *Service) Restore(ctx context.Context) (*User, error) {
	token, err := s.store.credentials.Retrieve()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoStoredSession
	}

	s.store.restoreToken(token)
	apiUser, err := s.api.Me(ctx)
	if err != nil {
		s.store.Clear()
		return nil, err
	}

	user := fromAPI(*apiUser)
	s.store.setUser(user)
	log.Info().Int64("user_id", user.ID).Msg("Session restored")
	return user, nil
}

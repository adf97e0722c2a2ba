package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/idx"
	"github.com/aussiebroadwan/stocktake/pkg/jwtx"
	"github.com/aussiebroadwan/stocktake/pkg/slogx"
)

// SessionService issues and checks the signed session cookie. Each login
// gets a session row so logout takes effect before the token expires.
type SessionService struct {
	Store    store.Store
	Users    *UserService
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Now      func() time.Time
}

// IssuedSession is the result of a successful login.
type IssuedSession struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Login checks credentials and opens a new session.
func (s *SessionService) Login(ctx context.Context, email, password string) (IssuedSession, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Users.Authenticate(ctx, email, password)
	if err != nil {
		return IssuedSession{}, err
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := s.now()
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return IssuedSession{}, fmt.Errorf("create session: %w", err)
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(u.ID, sess.ID, u.Email, ttl, s.Issuer, nil, now))
	if err != nil {
		l.Error("failed to sign session", slog.Any("error", err))
		return IssuedSession{}, fmt.Errorf("sign session: %w", err)
	}

	l.Info("user logged in", slog.String("user_id", u.ID), slog.String("session_id", sess.ID))
	return IssuedSession{User: u, Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

// Authenticate verifies the token signature and that its session row is
// still live. It satisfies httpx.SessionAuthenticator.
func (s *SessionService) Authenticate(ctx context.Context, token string) (httpx.Principal, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return httpx.Principal{}, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	sid, err := idx.Parse(claims.ID)
	if err != nil {
		return httpx.Principal{}, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	sess, err := s.Store.Sessions().GetSession(ctx, sid.String())
	if errors.Is(err, store.ErrNotFound) {
		return httpx.Principal{}, ErrSessionInvalid
	}
	if err != nil {
		return httpx.Principal{}, fmt.Errorf("load session: %w", err)
	}

	if sess.UserID != claims.Subject || !sess.Active(s.now()) {
		return httpx.Principal{}, ErrSessionInvalid
	}

	return httpx.Principal{
		UserID:    sess.UserID,
		SessionID: sess.ID,
		Email:     claims.Email,
	}, nil
}

// Logout revokes the session behind token. Unknown or already invalid
// tokens are ignored so logout always succeeds for the client.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return nil
	}

	if err := s.Store.Sessions().RevokeSession(ctx, claims.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}

	slogx.FromContext(ctx).Info("user logged out", slog.String("session_id", claims.ID))
	return nil
}

var _ httpx.SessionAuthenticator = (*SessionService)(nil)

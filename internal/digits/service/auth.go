package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/store"
	"github.com/aussiebroadwan/digits/pkg/cryptox"
	"github.com/aussiebroadwan/digits/pkg/idx"
	"github.com/aussiebroadwan/digits/pkg/slogx"
)

// DefaultSessionTTL is two weeks, the usual lifetime of a browser login.
const DefaultSessionTTL = 14 * 24 * time.Hour

type AuthService struct {
	// Store holds users. Sessions are kept there too unless Sessions is set.
	Store    store.Store
	Sessions store.Sessions

	SessionTTL time.Duration
	Now        func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) sessions() store.Sessions {
	if s.Sessions != nil {
		return s.Sessions
	}
	return s.Store.Sessions()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	in, err := ValidateRegister(in)
	if err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password1)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.Users().CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, invalid("username", "a user with that username already exists")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and opens a session. The returned token is the
// cookie value; only its fingerprint is stored.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Session, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.BurnPasswordCheck(password)
		log.Info("login for unknown user")
		return "", domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("get user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login with wrong password", slog.String("user_id", user.ID))
			return "", domain.Session{}, ErrInvalidCredentials
		}
		return "", domain.Session{}, fmt.Errorf("verify password: %w", err)
	}

	token, sess, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", domain.Session{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, sess, nil
}

func (s *AuthService) openSession(ctx context.Context, userID string) (string, domain.Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, err
	}

	now := s.now()
	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	if err := s.sessions().CreateSession(ctx, sess); err != nil {
		return "", domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return token, sess, nil
}

// Logout ends the session behind token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions().DeleteSession(ctx, cryptox.FingerprintToken(token))
}

// Authenticate resolves a session token into the actor it belongs to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	if token == "" {
		return domain.Actor{}, ErrUnauthorized
	}

	hash := cryptox.FingerprintToken(token)
	sess, err := s.sessions().GetSessionByTokenHash(ctx, hash)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Actor{}, ErrUnauthorized
	}
	if err != nil {
		return domain.Actor{}, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.sessions().DeleteSession(ctx, hash); err != nil {
			slogx.FromContext(ctx).Warn("failed to drop expired session", slog.Any("error", err))
		}
		return domain.Actor{}, ErrUnauthorized
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Actor{}, ErrUnauthorized
	}
	if err != nil {
		return domain.Actor{}, fmt.Errorf("get user: %w", err)
	}

	return domain.Actor{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: sess.ID,
		TokenHash: sess.TokenHash,
	}, nil
}

// ChangePassword replaces the actor's password. The current session stays
// valid, every other session of the user is revoked.
func (s *AuthService) ChangePassword(ctx context.Context, actor domain.Actor, in domain.ChangePasswordInput) error {
	if actor.IsZero() {
		return ErrUnauthorized
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, actor.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnauthorized
		}
		if err != nil {
			return err
		}

		if err := cryptox.VerifyPassword(in.OldPassword, user.PasswordHash); err != nil {
			if errors.Is(err, cryptox.ErrPasswordMismatch) {
				return invalid("old_password", "your old password was entered incorrectly")
			}
			return err
		}

		if err := ValidateNewPassword(user.Username, in.NewPassword1, in.NewPassword2); err != nil {
			return err
		}

		hash, err := cryptox.HashPassword(in.NewPassword1)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}

		if s.Sessions == nil {
			return tx.Sessions().DeleteUserSessionsExcept(ctx, user.ID, actor.TokenHash)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Sessions outside the database cannot join the transaction.
	if s.Sessions != nil {
		if err := s.Sessions.DeleteUserSessionsExcept(ctx, actor.UserID, actor.TokenHash); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", actor.UserID))
	return nil
}

// Profile returns the actor's account.
func (s *AuthService) Profile(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if actor.IsZero() {
		return domain.User{}, ErrUnauthorized
	}
	user, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUnauthorized
	}
	return user, err
}

// Package services contains the application services for the story client.
// This file defines the authentication service: signup, login, silent
// session restore, and logout.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hacksnooze/internal/client/api"
	"hacksnooze/internal/client/models"
	"hacksnooze/internal/client/repositories/credentials"
	"hacksnooze/internal/logging"
)

// AuthService defines the session lifecycle operations for the CLI.
//
// Contract:
//   - Signup: create an account on the server and open a session.
//   - Login: exchange credentials for a session token and profile.
//   - Restore: attempt silent re-authentication from stored credentials.
//     This is the one operation that absorbs failures: any problem —
//     missing credentials, expired token, network error — yields nil
//     rather than an error, so a broken cache never blocks startup.
//   - Logout: discard the stored credentials and the local favorites cache.
//
// Except for Restore, all methods propagate errors to the caller.
type AuthService interface {
	Signup(ctx context.Context, username string, password []byte, name string) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Restore(ctx context.Context) *models.User
	Logout(ctx context.Context, user *models.User) error
	Close(ctx context.Context) error
}

type authService struct {
	client api.Client
	creds  credentials.Repository
	logger logging.Logger
}

func NewAuthService(client api.Client, creds credentials.Repository, logger logging.Logger) AuthService {
	return &authService{client: client, creds: creds, logger: logger.With("component", "auth")}
}

func (a *authService) Signup(ctx context.Context, username string, password []byte, name string) (*models.User, error) {
	user, err := a.client.Signup(ctx, username, string(password), name)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	a.persistSession(ctx, user)
	return user, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	user, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	a.persistSession(ctx, user)
	return user, nil
}

// persistSession caches the credential pair for later silent restore.
// A cache write failure downgrades to a warning: the in-memory session is
// already valid and losing auto-login is the lesser harm.
func (a *authService) persistSession(ctx context.Context, user *models.User) {
	err := a.creds.Save(ctx, credentials.Session{Token: user.Token, Username: user.Username})
	if err != nil {
		a.logger.Warn(ctx, "failed to store session", "error", err)
	}
}

// Restore attempts silent re-authentication using the stored token. A nil
// result means "no session"; it is never an error. A token whose exp claim
// is already in the past is discarded without a network call.
func (a *authService) Restore(ctx context.Context) *models.User {
	sess, err := a.creds.Load(ctx)
	if err != nil {
		a.logger.Debug(ctx, "session restore failed", "error", err)
		return nil
	}
	if sess == nil {
		return nil
	}

	if tokenExpired(sess.Token) {
		a.logger.Debug(ctx, "stored token expired", "username", sess.Username)
		if err := a.creds.Clear(ctx); err != nil {
			a.logger.Debug(ctx, "failed to clear stale session", "error", err)
		}
		return nil
	}

	user, err := a.client.GetUser(ctx, sess.Token, sess.Username)
	if err != nil {
		a.logger.Debug(ctx, "session restore failed", "username", sess.Username, "error", err)
		return nil
	}

	a.logger.Info(ctx, "session restored", "username", user.Username)
	return user
}

// Logout removes the stored credentials and wipes the user's local
// favorites cache. Remote favorites stay intact and reload on next login.
func (a *authService) Logout(ctx context.Context, user *models.User) error {
	if err := a.creds.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if user != nil {
		user.ClearFavorites()
	}
	return nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// tokenExpired reports whether the stored token is a JWT whose exp claim
// lies in the past. The claims are read without signature verification:
// this is only an optimization to skip a doomed request, the server stays
// authoritative. Tokens that do not parse are sent to the server as-is.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

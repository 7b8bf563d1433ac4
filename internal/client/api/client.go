// Package api talks to the remote story service over its JSON HTTP
// interface and maps wire records into client models.
package api

import (
	"context"

	"hacksnooze/internal/client/models"
)

// Client is the transport seam between the services layer and the remote
// story API. All mutating calls require the session token of the acting
// user; ListStories, Signup, and Login are unauthenticated.
//
// Errors are reported through the shared taxonomy: shared.ErrorNetwork,
// shared.ErrorServer, shared.ErrorAuth, shared.ErrorValidation,
// shared.ErrorNotFound, matched with errors.Is.
type Client interface {
	Close() error
	ListStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, token string, draft models.StoryDraft) (models.Story, error)
	DeleteStory(ctx context.Context, token string, storyID string) error
	Signup(ctx context.Context, username, password, name string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, token string, username string) (*models.User, error)
	AddFavorite(ctx context.Context, token string, username, storyID string) error
	RemoveFavorite(ctx context.Context, token string, username, storyID string) error
}

package services

import (
	"context"
	"fmt"
	"sync"

	"hacksnooze/internal/client/api"
	"hacksnooze/internal/client/models"
	"hacksnooze/internal/logging"
	"hacksnooze/internal/shared"
)

// StoryService owns every operation that touches the story feed or the
// user's story collections. Local state is mutated only after the remote
// call has succeeded, so a failed call leaves the collections exactly as
// they were.
type StoryService interface {
	FetchAll(ctx context.Context) (*models.StoryList, error)
	Add(ctx context.Context, user *models.User, list *models.StoryList, draft models.StoryDraft) (models.Story, error)
	Remove(ctx context.Context, user *models.User, list *models.StoryList, storyID string) error
	Favorite(ctx context.Context, user *models.User, story models.Story) error
	Unfavorite(ctx context.Context, user *models.User, story models.Story) error
}

type storyService struct {
	client api.Client
	logger logging.Logger

	// mu keeps at most one mutating call in flight, so an accidental
	// double submit cannot interleave collection updates.
	mu sync.Mutex
}

func NewStoryService(client api.Client, logger logging.Logger) StoryService {
	return &storyService{client: client, logger: logger.With("component", "stories")}
}

func (s *storyService) FetchAll(ctx context.Context) (*models.StoryList, error) {
	stories, err := s.client.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stories: %w", err)
	}
	return models.NewStoryList(stories), nil
}

// Add creates the story remotely, then prepends the server-assigned record
// to both the feed and the user's own stories. Marking the story as "own"
// is purely local bookkeeping; the server derives ownership from the token.
func (s *storyService) Add(ctx context.Context, user *models.User, list *models.StoryList, draft models.StoryDraft) (models.Story, error) {
	if err := requireLogin(user); err != nil {
		return models.Story{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	story, err := s.client.CreateStory(ctx, user.Token, draft)
	if err != nil {
		return models.Story{}, fmt.Errorf("add story: %w", err)
	}

	list.Stories.Prepend(story)
	user.OwnStories.Prepend(story)

	s.logger.Info(ctx, "story added", "story_id", story.ID)
	return story, nil
}

// Remove deletes the story remotely, then evicts the id from the feed, the
// user's own stories, and the user's favorites — the story may well be a
// favorite of the very user deleting it. Absent ids are a no-op locally.
func (s *storyService) Remove(ctx context.Context, user *models.User, list *models.StoryList, storyID string) error {
	if err := requireLogin(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.DeleteStory(ctx, user.Token, storyID); err != nil {
		return fmt.Errorf("remove story: %w", err)
	}

	list.Stories.Remove(storyID)
	user.OwnStories.Remove(storyID)
	user.Favorites.Remove(storyID)

	s.logger.Info(ctx, "story removed", "story_id", storyID)
	return nil
}

func (s *storyService) Favorite(ctx context.Context, user *models.User, story models.Story) error {
	if err := requireLogin(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.AddFavorite(ctx, user.Token, user.Username, story.ID); err != nil {
		return fmt.Errorf("favorite: %w", err)
	}

	user.Favorites.Append(story)
	return nil
}

func (s *storyService) Unfavorite(ctx context.Context, user *models.User, story models.Story) error {
	if err := requireLogin(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.RemoveFavorite(ctx, user.Token, user.Username, story.ID); err != nil {
		return fmt.Errorf("unfavorite: %w", err)
	}

	user.Favorites.Remove(story.ID)
	return nil
}

func requireLogin(user *models.User) error {
	if user == nil || user.Token == "" {
		return fmt.Errorf("%w: not logged in", shared.ErrorAuth)
	}
	return nil
}

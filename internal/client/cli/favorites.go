package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"hacksnooze/internal/shared"
)

func (a *App) requireUser() error {
	if a.user == nil {
		printlnFn("You need to log in first.")
		return fmt.Errorf("%w: not logged in", shared.ErrorAuth)
	}
	return nil
}

// Favorites lists the current user's favorite stories.
func (a *App) Favorites(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	a.printStories(a.user.Favorites.Stories())
	return nil
}

// MyStories lists the stories submitted by the current user.
func (a *App) MyStories(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	a.printStories(a.user.OwnStories.Stories())
	return nil
}

// Fav prompts for a story id from the feed and marks it as a favorite.
func (a *App) Fav(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter story id to favorite", os.Stdout)
	if err != nil {
		return err
	}

	if a.stories == nil {
		printlnFn("The feed has not loaded yet, try 'list' first.")
		return nil
	}
	story, ok := a.stories.Stories.Get(id)
	if !ok {
		printlnFn("No such story in the feed:", id)
		return nil
	}

	if err := a.storyService.Favorite(ctx, a.user, story); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Favorited:", story.Title)
	return nil
}

// Unfav prompts for a story id and removes it from the favorites.
func (a *App) Unfav(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter story id to unfavorite", os.Stdout)
	if err != nil {
		return err
	}

	story, ok := a.user.Favorites.Get(id)
	if !ok {
		printlnFn("Not in your favorites:", id)
		return nil
	}

	if err := a.storyService.Unfavorite(ctx, a.user, story); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Unfavorited:", story.Title)
	return nil
}

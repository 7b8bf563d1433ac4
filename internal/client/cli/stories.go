package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"hacksnooze/internal/client/models"
)

// formatStory renders one feed line. A leading star marks a favorite of
// the current user; a trailing marker flags stories the user may delete.
// A story with an unparseable URL still renders, with the problem visible
// in place of the hostname.
func formatStory(story models.Story, user *models.User) string {
	var b strings.Builder

	if user != nil && user.IsFavorite(story.ID) {
		b.WriteString("* ")
	} else {
		b.WriteString("  ")
	}

	host, err := story.Hostname()
	if err != nil {
		host = "invalid url"
	}

	fmt.Fprintf(&b, "%s  %s (%s) by %s [posted by %s]", story.ID, story.Title, host, story.Author, story.Username)

	if user != nil && user.Owns(story) {
		b.WriteString("  [yours — deletable]")
	}

	return b.String()
}

func (a *App) printStories(stories []models.Story) {
	if len(stories) == 0 {
		printlnFn("No stories.")
		return
	}
	for _, story := range stories {
		printlnFn(formatStory(story, a.user))
	}
}

// List shows the current feed, fetching it first if it has not loaded yet.
func (a *App) List(ctx context.Context) error {
	if a.stories == nil {
		if err := a.refreshFeed(ctx); err != nil {
			log.Printf("Error: %s", err.Error())
			return err
		}
	}
	a.printStories(a.stories.Stories.Stories())
	return nil
}

// Submit prompts for the story fields and posts a new story. The server
// assigns the id and creation time; the new story lands at the top of the
// feed and of the user's own stories.
func (a *App) Submit(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	author, err := getSimpleText(a.reader, "Enter author", os.Stdout)
	if err != nil {
		return err
	}
	url, err := getSimpleText(a.reader, "Enter URL", os.Stdout)
	if err != nil {
		return err
	}

	if a.stories == nil {
		a.stories = models.NewStoryList(nil)
	}

	draft := models.StoryDraft{Title: title, Author: author, URL: url}
	story, err := a.storyService.Add(ctx, a.user, a.stories, draft)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Submitted:")
	printlnFn(formatStory(story, a.user))
	return nil
}

// Delete prompts for a story id and deletes that story. The id disappears
// from the feed, the user's own stories, and the user's favorites alike.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter story id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if a.stories == nil {
		a.stories = models.NewStoryList(nil)
	}

	if err := a.storyService.Remove(ctx, a.user, a.stories, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Deleted.")
	return nil
}

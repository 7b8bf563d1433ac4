// Package cli is the interactive front end: it translates REPL commands
// into service calls and re-renders the affected story lists.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"hacksnooze/internal/client/api"
	"hacksnooze/internal/client/client"
	"hacksnooze/internal/client/config"
	"hacksnooze/internal/client/models"
	"hacksnooze/internal/client/services"
	"hacksnooze/internal/logging"
)

// App holds the session state for one run of the client: the current user
// (nil while anonymous) and the last fetched story feed. The App is the
// single writer of both; every mutation goes through its command handlers.
type App struct {
	config       *config.Config
	authService  services.AuthService
	storyService services.StoryService
	logger       logging.Logger
	reader       *bufio.Reader

	user    *models.User
	stories *models.StoryList
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.LogLevel)

	repos, err := client.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	apiClient := api.NewHTTPClient(api.Config{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.RequestTimeout,
		MaxAttempts:    cfg.MaxAttempts,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
	}, logger)

	as := services.NewAuthService(apiClient, repos.Credentials, logger)
	ss := services.NewStoryService(apiClient, logger)

	return &App{
		config:       cfg,
		authService:  as,
		storyService: ss,
		logger:       logger,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Username)
}

// Run restores the saved session if one exists, loads the feed, and hands
// control to the REPL. Neither startup step may block the prompt: restore
// absorbs its failures by design, and a failed feed fetch just leaves the
// feed empty until the next "list".
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	if user := a.authService.Restore(ctx); user != nil {
		a.user = user
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Name))
	}

	if err := a.refreshFeed(ctx); err != nil {
		printlnFn("Stories are still loading, try 'list' in a moment.")
	}

	printlnFn("hacksnooze CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) refreshFeed(ctx context.Context) error {
	list, err := a.storyService.FetchAll(ctx)
	if err != nil {
		a.logger.Warn(ctx, "feed fetch failed", "error", err)
		return err
	}
	a.stories = list
	return nil
}

// Command bizpilot generates and refines business plans against the
// BizPilot API from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driven/api"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driven/config/file"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driven/storage/sqlite"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driven/watch"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/cli"
	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/services"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// Environment variables that override stored settings for one run.
const (
	envAPIURL     = "BIZPILOT_API_URL"
	envAPITimeout = "BIZPILOT_API_TIMEOUT"
	envDataDir    = "BIZPILOT_DATA_DIR"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is the normal case.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}
	applyEnv(settings, os.Getenv)

	store, err := sqlite.NewStore(os.Getenv(envDataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening data store: %v\n", err)
		return err
	}
	defer store.Close()

	client := api.NewClient(api.ConfigFromSettings(settings.API))
	sessionManager := services.NewSessionManager(store.KeyValueStore())
	authService := services.NewAuthService(client, store.CredentialsStore())
	ideaService := services.NewIdeaService(sessionManager, client, authService)
	assistantService := services.NewAssistantService(client)

	watcher := watch.NewFileWatcher(store.Path(), watch.DefaultDebounce)
	defer watcher.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Session:   sessionManager,
		Idea:      ideaService,
		Auth:      authService,
		Settings:  settingsService,
		Assistant: assistantService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{Watcher: watcher})

	return cli.Execute(ctx)
}

// applyEnv overrides API settings from the environment. Unusable values are
// ignored with a warning.
func applyEnv(settings *domain.AppSettings, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(envAPIURL)); v != "" {
		settings.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(getenv(envAPITimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			logger.Warn("ignoring %s=%q: not a positive number of seconds", envAPITimeout, v)
		} else {
			settings.API.TimeoutSeconds = n
		}
	}
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"storydesk/internal/config"
	"storydesk/internal/imagesearch"
	"storydesk/internal/log"
	"storydesk/internal/moderation"
	"storydesk/internal/session"
	"storydesk/internal/storyapi"
	"storydesk/internal/tui"
	"storydesk/internal/unsplash"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("storydesk %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting storydesk", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	kv, err := session.OpenBoltKV(config.DefaultDataPath())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	// the client reads the token through the session store; the session
	// store calls auth endpoints through the client
	var sess *session.Store
	apiClient := storyapi.NewClient(cfg.API.BaseURL, func() string { return sess.Token() }, logger)
	sess = session.NewStore(kv, apiClient, themeHook(logger), logger)
	defer sess.Close()

	moderationStore := moderation.NewStore(apiClient, logger)
	imageClient := unsplash.NewClient(unsplash.DefaultBaseURL, cfg.Unsplash.AccessKey, logger)
	imageStore := imagesearch.NewStore(imageClient, cfg.Unsplash.PerPage, logger)

	model := tui.NewModel(sess, moderationStore, imageStore, cfg.API.PageSize)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// themeHook persists the theme preference flipped on login
func themeHook(logger *slog.Logger) session.ThemeHook {
	return func(theme string) {
		if err := config.SaveTheme(theme); err != nil {
			logger.Warn("failed to save theme preference", "error", err)
		}
	}
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to storydesk!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var baseURL string
	for {
		fmt.Print("Enter the moderation API URL (e.g., https://api.example.com): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		baseURL = strings.TrimSpace(input)
		if baseURL != "" {
			break
		}
		fmt.Println("API URL cannot be empty. Please try again.")
	}
	cfg.API.BaseURL = baseURL

	// the Unsplash key is optional; cover image search stays disabled
	// without one
	fmt.Print("Unsplash access key (optional, hidden input, Enter to skip): ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err == nil {
		cfg.Unsplash.AccessKey = strings.TrimSpace(string(keyBytes))
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run storydesk again to start the application.")

	return nil
}

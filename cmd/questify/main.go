// cmd/questify/main.go
//
// This is the entry point for the Questify terminal client.
//
// Flow:
// 1. Load configuration (config.yaml and QUESTIFY_* env vars)
// 2. Initialize the .questify folder and open the logbook
// 3. Wire the API client, its services and the session store
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/questify/internal/api"
	"github.com/yourusername/questify/internal/config"
	"github.com/yourusername/questify/internal/logbook"
	"github.com/yourusername/questify/internal/session"
	"github.com/yourusername/questify/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitQuestifyDir(cfg.HomeDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .questify directory: %v\n", err)
		os.Exit(1)
	}

	book, err := logbook.New(cfg.LogPath(), cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer book.Close()

	client, err := api.NewClient(cfg.BackendURL, book.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating API client: %v\n", err)
		os.Exit(1)
	}

	store := session.NewStore()
	// A transparent refresh mints a new access token; the session store
	// tracks its expiry.
	client.SetRefreshHook(func(auth api.AuthResponse) {
		store.SetToken(auth.AccessToken)
	})
	services := api.NewServices(client)

	book.Info("Questify starting against %s", cfg.BackendURL)

	p := tea.NewProgram(
		tui.NewApp(cfg, services, store, book),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

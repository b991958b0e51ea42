package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/coolguy173/focus-app1/internal/logging"
	"github.com/coolguy173/focus-app1/internal/scoring"
	"github.com/coolguy173/focus-app1/internal/theme"
	"github.com/coolguy173/focus-app1/internal/timer"
	"github.com/coolguy173/focus-app1/internal/tui"
)

const (
	appName         = "focusbattle"
	defaultServer   = "http://localhost:8080"
	loginTimeout    = 10 * time.Second
	passwordEnvName = "FOCUS_PASSWORD"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var serverURL, username string

	root := &cobra.Command{
		Use:           "focus",
		Short:         "Fight 25 minute focus battles from your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "scoring server URL (defaults to the saved one)")
	root.PersistentFlags().StringVar(&username, "username", "", "account username (defaults to the saved one)")

	root.AddCommand(newBattleCmd(&serverURL, &username))
	root.AddCommand(newStatsCmd(&serverURL, &username))
	root.AddCommand(newThemeCmd())
	return root
}

// resolveSettings merges flags with the saved settings, preferring flags, and
// persists the merge so the next run can omit them.
func resolveSettings(store *theme.Store, serverURL, username string) (theme.Settings, error) {
	settings, err := store.Load()
	if err != nil {
		return theme.Settings{}, err
	}

	if serverURL != "" {
		settings.ServerURL = serverURL
	}
	if settings.ServerURL == "" {
		settings.ServerURL = defaultServer
	}
	if username != "" {
		settings.Username = username
	}
	if settings.Username == "" {
		return theme.Settings{}, fmt.Errorf("no username configured, pass --username")
	}

	if err := store.Save(settings); err != nil {
		return theme.Settings{}, err
	}
	return settings, nil
}

func loggedInClient(settings theme.Settings) (*scoring.Client, error) {
	password := os.Getenv(passwordEnvName)
	if password == "" {
		return nil, fmt.Errorf("set %s to your account password", passwordEnvName)
	}

	client, err := scoring.NewClient(settings.ServerURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()
	if err := client.Login(ctx, settings.Username, password); err != nil {
		return nil, fmt.Errorf("login as %q at %s: %w", settings.Username, settings.ServerURL, err)
	}
	return client, nil
}

func newBattleCmd(serverURL, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "battle",
		Short: "Start the battle screen",
		RunE: func(_ *cobra.Command, _ []string) error {
			logging.InitLogger("warn", "text")

			store := theme.NewStore(appName)
			settings, err := resolveSettings(store, *serverURL, *username)
			if err != nil {
				return err
			}

			client, err := loggedInClient(settings)
			if err != nil {
				return err
			}

			engine := timer.NewEngine(clockwork.NewRealClock())
			go engine.Run()
			defer engine.Stop()

			themes := theme.NewController(store)
			model := tui.NewModel(engine, themes, client)

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("battle screen failed: %w", err)
			}
			return nil
		},
	}
}

func newStatsCmd(serverURL, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print your current record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := theme.NewStore(appName)
			settings, err := resolveSettings(store, *serverURL, *username)
			if err != nil {
				return err
			}

			client, err := loggedInClient(settings)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
			defer cancel()
			stats, err := client.Stats(ctx)
			if err != nil {
				return fmt.Errorf("fetch stats: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wins=%d losses=%d streak=%d\n", stats.Wins, stats.Losses, stats.Streak)
			return nil
		},
	}
}

func newThemeCmd() *cobra.Command {
	themeCmd := &cobra.Command{Use: "theme", Short: "Manage the color theme"}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := theme.NewStore(appName).Load()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), settings.Theme)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Select and persist a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := theme.Theme(args[0])
			if !theme.Valid(name) {
				return fmt.Errorf("unknown theme %q, valid themes: %v", args[0], theme.All)
			}
			controller := theme.NewController(theme.NewStore(appName))
			applied := controller.Apply(name)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), applied)
			return nil
		},
	})

	return themeCmd
}

// Package cli is the terminal front end of the booking service.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"booking_service/internal/client/api"
	"booking_service/internal/client/session"
	"booking_service/internal/facade"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
)

type Options struct {
	Server     string
	SessionDir string
	JSON       bool
	Verbose    bool
}

// App holds what every command shares. It is initialised once per process,
// so the shell reuses one façade cache across commands.
type App struct {
	opts Options
	log  *slog.Logger

	client  *api.Client
	facade  *facade.Facade
	session *session.Store

	rl *readline.Instance
}

func NewApp() *App {
	return &App{log: slogdiscard.NewDiscardLogger()}
}

func (a *App) init() error {
	if a.facade != nil {
		return nil
	}

	if a.opts.Verbose {
		a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	storage, err := session.NewFileStorage(a.opts.SessionDir)
	if err != nil {
		return err
	}

	a.client = api.New(a.opts.Server, defaultTimeout)
	a.facade = facade.New(a.log, a.client, nil)

	a.session, err = session.New(a.log, storage, a.facade)
	if err != nil {
		return err
	}

	a.client.WithToken(a.session.Token())

	return nil
}

// NewRootCommand builds bookingctl. The same tree serves one-shot runs and the shell.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Browse and book hotels and restaurants",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.opts.Server, "server", envOr("BOOKINGCTL_SERVER", defaultServer), "booking service base URL")
	root.PersistentFlags().StringVar(&a.opts.SessionDir, "session-dir", envOr("BOOKINGCTL_SESSION_DIR", defaultSessionDir()), "directory holding the saved session")
	root.PersistentFlags().BoolVar(&a.opts.JSON, "json", false, "print JSON instead of tables")
	root.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		hotelsCmd(a),
		hotelCmd(a),
		restaurantsCmd(a),
		restaurantCmd(a),
		featuredCmd(a),
		registerCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		bookHotelCmd(a),
		bookRestaurantCmd(a),
		cancelCmd(a),
		reviewCmd(a),
		dashboardCmd(a),
		profileCmd(a),
		adminCmd(a),
		shellCmd(a),
	)

	return root
}

// Execute runs bookingctl with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(NewApp()).ExecuteContext(ctx)
}

func (a *App) requireUser() (models.User, error) {
	user, ok := a.session.CurrentUser()
	if !ok {
		return models.User{}, session.ErrNotSignedIn
	}

	return user, nil
}

func (a *App) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return filepath.Join(home, ".bookingctl")
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}

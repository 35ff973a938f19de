// Package app assembles the fleet client: config, logging, the persisted
// session, the API gateway, and the terminal UI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"golang.org/x/term"

	"fleetcli/internal/api"
	"fleetcli/internal/config"
	"fleetcli/internal/logging"
	"fleetcli/internal/services"
	"fleetcli/internal/session"
	"fleetcli/internal/tui"
)

// App owns every long-lived resource of a fleetcli run.
type App struct {
	config  *config.Config
	log     logging.Logger
	closers []func() error

	db      *sql.DB
	gateway *api.Gateway

	auth      *services.AuthService
	vehicles  *services.VehicleService
	reminders *services.ReminderService
}

// NewApp wires all components together. On error everything opened so far
// is closed again.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{config: cfg}

	logger, closeLog, err := logging.NewFileLogger(cfg.LogFile, slog.LevelInfo)
	if err != nil {
		return nil, err
	}
	a.log = logger
	a.closers = append(a.closers, closeLog)

	db, err := session.OpenDB(ctx, cfg.SessionDBPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	store, err := session.NewStore(ctx, session.NewSQLiteRepository(db), logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.gateway = api.NewGateway(cfg.BaseURL, cfg.RequestTimeout, store, logger)
	a.auth = services.NewAuthService(a.gateway, store, logger)
	a.vehicles = services.NewVehicleService(a.gateway)
	a.reminders = services.NewReminderService(a.gateway)

	return a, nil
}

// Run starts the terminal UI and blocks until the user quits.
func (a *App) Run(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("fleetcli requires an interactive terminal")
	}

	a.log.Info(ctx, "starting UI",
		"base_url", a.config.BaseURL,
		"session_db", a.config.SessionDBPath)

	return tui.Run(tui.Deps{
		Auth:          a.auth,
		Vehicles:      a.vehicles,
		Reminders:     a.reminders,
		LeaseWarnDays: a.config.LeaseWarnDays,
		Log:           a.log,
	}, a.gateway)
}

// Close releases resources in reverse open order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

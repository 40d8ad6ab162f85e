package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/clients/gmailclient"
	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/services"
	"github.com/finn1817/schedule-app/pkg/postgres"
	"github.com/finn1817/schedule-app/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands.
// Google clients and the database are created on first use so commands that
// do not need them, such as serve, start without OAuth or a database.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	auth         *utils.Authenticator
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
	database     *postgres.DB
}

func (app *AppContext) authenticator() (*utils.Authenticator, error) {
	if app.auth != nil {
		return app.auth, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	store, err := utils.NewTokenStore()
	if err != nil {
		return nil, err
	}

	app.auth = utils.NewAuthenticator(oauthConfig, store, app.Logger)
	return app.auth, nil
}

// SheetsClient returns the shared sheets client
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	auth, err := app.authenticator()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing sheets client")
	app.sheetsClient, err = sheetsclient.NewClient(app.Ctx, auth, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	return app.sheetsClient, nil
}

// GmailClient returns the shared gmail client
func (app *AppContext) GmailClient() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	auth, err := app.authenticator()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	app.gmailClient, err = gmailclient.NewClient(app.Ctx, auth, app.Env, app.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.Logger.Debug("Gmail client initialized successfully")

	return app.gmailClient, nil
}

// Database connects to PostgreSQL and applies migrations on first use
func (app *AppContext) Database() (*postgres.DB, error) {
	if app.database != nil {
		return app.database, nil
	}

	if app.Cfg.DatabaseURL == "" {
		return nil, services.ErrNoDatabase
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Debug("Database initialized successfully")

	app.database = database
	return app.database, nil
}

// Close releases the database pool and flushes the logger
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}

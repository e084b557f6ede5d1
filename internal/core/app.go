package core

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	"github.com/ademenev/booktrack/internal/config"
	"github.com/ademenev/booktrack/internal/db"
	"github.com/ademenev/booktrack/internal/jobs"
	"github.com/ademenev/booktrack/internal/websocket"
)

// App holds the core components of the application. It implements
// jobs.JobContext so background jobs can reach the database, the config and
// the websocket hub without global state.
type App struct {
	config     *config.Config
	database   *sql.DB
	wsHub      *websocket.Hub
	jobManager *jobs.JobManager
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, and running migrations.
func New(migrationsFS embed.FS) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database, migrationsFS); err != nil {
		// We can't proceed without a valid database schema.
		// Close the DB connection before failing.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	log.Println("Core application setup complete.")
	return &App{
		config:     cfg,
		database:   database,
		wsHub:      hub,
		jobManager: jobs.NewManager(),
	}, nil
}

// NewFromComponents assembles an App from preexisting components. Used by
// tests and tooling that manage their own configuration and database.
func NewFromComponents(cfg *config.Config, database *sql.DB, hub *websocket.Hub, jm *jobs.JobManager) *App {
	return &App{
		config:     cfg,
		database:   database,
		wsHub:      hub,
		jobManager: jm,
	}
}

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

func (a *App) DB() *sql.DB                  { return a.database }
func (a *App) Config() *config.Config       { return a.config }
func (a *App) WsHub() *websocket.Hub        { return a.wsHub }
func (a *App) JobManager() *jobs.JobManager { return a.jobManager }

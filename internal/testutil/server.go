// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/ademenev/booktrack/internal/api"
	"github.com/ademenev/booktrack/internal/config"
	"github.com/ademenev/booktrack/internal/core"
	"github.com/ademenev/booktrack/internal/jobs"
	"github.com/ademenev/booktrack/internal/websocket"
)

// SetupTestServer initializes a full core.App and api.Server for integration
// testing. The returned database handle lets tests seed and inspect rows
// directly.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	db := SetupTestDB(t)

	cfg := &config.Config{}
	hub := websocket.NewHub()
	go hub.Run()

	app := core.NewFromComponents(cfg, db, hub, jobs.NewManager())
	return api.NewServer(app), db
}

package testutil

import (
	"database/sql"
	"testing"

	"github.com/ademenev/booktrack/internal/config"
	"github.com/ademenev/booktrack/internal/jobs"
	"github.com/ademenev/booktrack/internal/websocket"
)

// MockJobContext satisfies jobs.JobContext for importer and job tests.
// The websocket hub is nil so jobs skip broadcasting during tests.
type MockJobContext struct {
	db  *sql.DB
	cfg *config.Config
	jm  *jobs.JobManager
}

// NewMockJobContext builds a job context over a fresh in-memory database,
// with the import directory pointed at importPath.
func NewMockJobContext(t *testing.T, importPath string) *MockJobContext {
	t.Helper()
	cfg := &config.Config{}
	cfg.Import.Path = importPath
	return &MockJobContext{
		db:  SetupTestDB(t),
		cfg: cfg,
		jm:  jobs.NewManager(),
	}
}

func (m *MockJobContext) DB() *sql.DB                  { return m.db }
func (m *MockJobContext) Config() *config.Config       { return m.cfg }
func (m *MockJobContext) WsHub() *websocket.Hub        { return nil }
func (m *MockJobContext) JobManager() *jobs.JobManager { return m.jm }

package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection used by the integration tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties every table. Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)

	if err := setup.Migrate(ctx); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return setup
}

// Migrate applies the schema. Every statement is idempotent.
func (t *TestDatabaseSetup) Migrate(ctx context.Context) error {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_timeclock.sql")

	schema, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = t.DB.Exec(ctx, string(schema))
	return err
}

// TruncateAllTables deletes all rows from the schema's tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"reprocess_logs",
		"system_settings",
		"time_records",
		"employees",
		"work_locations",
		"work_schedules",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

const (
	fixtureUserID     = "0190a5e4-0000-7000-8000-000000000001"
	fixtureAdminID    = "0190a5e4-0000-7000-8000-000000000002"
	fixtureScheduleID = "0190a5e4-0000-7000-8000-000000000010"
	fixtureLocationID = "0190a5e4-0000-7000-8000-000000000020"
	fixtureEmployeeID = "0190a5e4-0000-7000-8000-000000000030"
)

// SeedEmployee inserts one user, schedule, location and employee wired
// together.
func (t *TestDatabaseSetup) SeedEmployee(ctx context.Context) error {
	statements := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO users (id, name, email, role) VALUES ($1, 'Ana Lima', 'ana@example.com', 'employee'), ($2, 'Admin', 'admin@example.com', 'admin')`,
			[]interface{}{fixtureUserID, fixtureAdminID}},
		{`INSERT INTO work_schedules (id, name, type, work_days, start_time, end_time, lunch_start, lunch_end, tolerance_minutes)
			VALUES ($1, 'Office', '5x2', '{1,2,3,4,5}', '08:00', '17:00', '12:00', '13:00', 10)`,
			[]interface{}{fixtureScheduleID}},
		{`INSERT INTO work_locations (id, name, latitude, longitude, radius_meters) VALUES ($1, 'HQ', -23.55, -46.63, 100)`,
			[]interface{}{fixtureLocationID}},
		{`INSERT INTO employees (id, user_id, employee_code, department, work_schedule_id, work_location_id)
			VALUES ($1, $2, 'E001', 'Engineering', $3, $4)`,
			[]interface{}{fixtureEmployeeID, fixtureUserID, fixtureScheduleID, fixtureLocationID}},
	}

	for _, s := range statements {
		if _, err := t.DB.Exec(ctx, s.query, s.args...); err != nil {
			return err
		}
	}
	return nil
}

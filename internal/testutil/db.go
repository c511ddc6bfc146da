// Package testutil opens isolated in-memory ledgers for tests.
package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/smallbiznis/railpos/internal/config"
	"github.com/smallbiznis/railpos/internal/migration"
	"github.com/smallbiznis/railpos/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB returns a migrated SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:railpos_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	conn, err := db.Open(config.DriverSQLite, dsn)
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Run(conn))
	return conn
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
	nodeErr  error
)

// NewNode returns the process-wide test ID generator. Separate nodes with the
// same number would hand out colliding IDs.
func NewNode(t testing.TB) *snowflake.Node {
	t.Helper()
	nodeOnce.Do(func() {
		node, nodeErr = snowflake.NewNode(1)
	})
	require.NoError(t, nodeErr)
	return node
}

// Day is midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ClockAt returns a clock fixed at noon UTC on the given date.
func ClockAt(year int, month time.Month, day int) clock.Fixed {
	return clock.Fixed{At: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestNewDBMetrics_Defaults(t *testing.T) {
	_, provider := newTestMeter(t)

	m, err := NewDBMetrics(provider.Meter("test"), DBMetricsConfig{}, nil)

	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, m.config.SlowQueryThreshold)
	assert.Equal(t, 15*time.Second, m.config.PoolStatsInterval)
}

func TestDBMetrics_RecordQuery(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := NewDBMetrics(provider.Meter("test"), DBMetricsConfig{SlowQueryThreshold: 100 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordQuery(ctx, "select", "projects", 10*time.Millisecond, nil)
	m.RecordQuery(ctx, "SELECT", "projects", 250*time.Millisecond, gorm.ErrRecordNotFound)
	m.RecordQuery(ctx, "", "", time.Millisecond, assert.AnError)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), sumValue(t, rm, "db_query_total", AttrDBOperation.String("SELECT"), AttrDBTable.String("projects")))
	assert.Equal(t, int64(1), sumValue(t, rm, "db_slow_query_total", AttrDBTable.String("projects")))
	assert.Equal(t, int64(1), sumValue(t, rm, "db_query_errors_total", AttrDBOperation.String("UNKNOWN"), AttrDBTable.String("unknown")))
}

func TestDBMetricsPlugin_RecordsGormOperations(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := NewDBMetrics(provider.Meter("test"), DBMetricsConfig{}, nil)
	require.NoError(t, err)
	db := newSQLiteDB(t)
	require.NoError(t, db.Use(NewDBMetricsPlugin(m)))

	require.NoError(t, db.Create(&widget{ID: "w1", Name: "one"}).Error)
	var got widget
	require.NoError(t, db.First(&got, "id = ?", "w1").Error)
	require.NoError(t, db.Model(&widget{}).Where("id = ?", "w1").Update("name", "uno").Error)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), sumValue(t, rm, "db_query_total", AttrDBOperation.String("INSERT"), AttrDBTable.String("widgets")))
	assert.Equal(t, int64(1), sumValue(t, rm, "db_query_total", AttrDBOperation.String("SELECT"), AttrDBTable.String("widgets")))
	assert.Equal(t, int64(1), sumValue(t, rm, "db_query_total", AttrDBOperation.String("UPDATE"), AttrDBTable.String("widgets")))
}

func TestDBMetrics_PoolStats(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := NewDBMetrics(provider.Meter("test"), DBMetricsConfig{PoolStatsInterval: time.Hour}, nil)
	require.NoError(t, err)
	sqlDB, err := newSQLiteDB(t).DB()
	require.NoError(t, err)

	m.StartPoolStatsCollection(context.Background(), sqlDB)
	m.Stop()
	m.Stop()

	_, ok := findMetric(collect(t, reader), "db_pool_connections_max")
	assert.True(t, ok)
}

func TestDetectOperationType(t *testing.T) {
	assert.Equal(t, "SELECT", detectOperationType("  select count(*) from x"))
	assert.Equal(t, "DELETE", detectOperationType("DELETE FROM x"))
	assert.Equal(t, "OTHER", detectOperationType("PRAGMA foreign_keys"))
}

func TestGormRecordCounter(t *testing.T) {
	db := newSQLiteDB(t)
	require.NoError(t, db.Create(&widget{ID: "a"}).Error)
	require.NoError(t, db.Create(&widget{ID: "b"}).Error)

	counts, err := NewGormRecordCounter(db, "widgets").CountRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"widgets": 2}, counts)

	_, err = NewGormRecordCounter(db, "missing").CountRecords(context.Background())
	assert.ErrorContains(t, err, "count missing")
}

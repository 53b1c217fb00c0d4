package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ gormlogger.Interface = (*GormLogger)(nil)

func complianceLookup() (string, int64) {
	return `SELECT * FROM "project_compliance" WHERE project_id = 'p1'`, 0
}

func TestGormLogger_LogModeClones(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), gormlogger.Info)

	quieter, ok := gormLog.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gormLog.level)
	assert.Equal(t, gormlogger.Error, quieter.level)
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		wantMsg string
		wantLvl zapcore.Level
	}{
		{name: "driver error", level: gormlogger.Error, begin: time.Now(), err: errors.New("connection reset"), wantMsg: "SQL error", wantLvl: zapcore.ErrorLevel},
		{name: "duplicate key", level: gormlogger.Warn, begin: time.Now(), err: gorm.ErrDuplicatedKey, wantMsg: "SQL constraint violation", wantLvl: zapcore.WarnLevel},
		{name: "duplicate key below warn", level: gormlogger.Error, begin: time.Now(), err: gorm.ErrDuplicatedKey},
		{name: "record not found", level: gormlogger.Info, begin: time.Now(), err: gormlogger.ErrRecordNotFound},
		{name: "slow statement", level: gormlogger.Warn, begin: time.Now().Add(-time.Second), wantMsg: "Slow SQL", wantLvl: zapcore.WarnLevel},
		{name: "fast statement at info", level: gormlogger.Info, begin: time.Now(), wantMsg: "SQL", wantLvl: zapcore.DebugLevel},
		{name: "fast statement at warn", level: gormlogger.Warn, begin: time.Now()},
		{name: "silent", level: gormlogger.Silent, begin: time.Now(), err: errors.New("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gormLog := NewGormLogger(zap.New(core), tt.level)

			gormLog.Trace(context.Background(), tt.begin, complianceLookup, tt.err)

			if tt.wantMsg == "" {
				assert.Empty(t, recorded.All())
				return
			}
			logs := recorded.All()
			require.Len(t, logs, 1)
			assert.Equal(t, tt.wantMsg, logs[0].Message)
			assert.Equal(t, tt.wantLvl, logs[0].Level)
			assert.Contains(t, logs[0].ContextMap()["sql"], "project_compliance")
		})
	}
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Error)
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

	gormLog.Trace(ctx, time.Now(), complianceLookup, errors.New("connection reset"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "req-9", logs[0].ContextMap()["request_id"])
}

func TestGormLogger_SlowThresholdDisabled(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(0))

	gormLog.Trace(context.Background(), time.Now().Add(-time.Hour), complianceLookup, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Printf(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Warn)

	gormLog.Info(context.Background(), "ignored %d", 1)
	gormLog.Warn(context.Background(), "retrying %s", "migration")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "retrying migration", logs[0].Message)
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("off"))
	assert.Equal(t, gormlogger.Error, ParseGormLevel("ERROR"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel(" warn "))
	assert.Equal(t, gormlogger.Info, ParseGormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel(""))
}

package telemetry

import (
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQuery = 200 * time.Millisecond

// QueryTracer is a gorm plugin that installs otelgorm and decorates its
// statement spans with the table, the affected row count and a slow-query
// event.
//
//	db.Use(telemetry.NewQueryTracer("postgresql", telemetry.WithSlowQuery(time.Second)))
type QueryTracer struct {
	system    string
	slow      time.Duration
	variables bool
	log       *zap.Logger
}

// QueryTracerOption configures a QueryTracer.
type QueryTracerOption func(*QueryTracer)

// WithSlowQuery sets the duration above which a statement span is marked
// slow.
func WithSlowQuery(d time.Duration) QueryTracerOption {
	return func(t *QueryTracer) {
		if d > 0 {
			t.slow = d
		}
	}
}

// WithQueryVariables keeps bound values in the recorded SQL. Production
// config refuses it.
func WithQueryVariables(on bool) QueryTracerOption {
	return func(t *QueryTracer) { t.variables = on }
}

// WithTracerLogger logs the plugin's registration to log.
func WithTracerLogger(log *zap.Logger) QueryTracerOption {
	return func(t *QueryTracer) { t.log = log }
}

// NewQueryTracer creates the plugin; system is the db.system value,
// postgresql or sqlite.
func NewQueryTracer(system string, opts ...QueryTracerOption) *QueryTracer {
	t := &QueryTracer{system: system, slow: defaultSlowQuery, log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements gorm.Plugin.
func (t *QueryTracer) Name() string { return "query_tracer" }

// Initialize implements gorm.Plugin. The timing hooks go in before otelgorm
// so decorate runs while its span is still open.
func (t *QueryTracer) Initialize(db *gorm.DB) error {
	if err := registerAround(db, "query_tracer", markStart(dbTracingStartKey), t.decorate); err != nil {
		return err
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(t.system)}
	if !t.variables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	t.log.Info("Database tracing enabled",
		zap.String("db_system", t.system),
		zap.Duration("slow_query_threshold", t.slow),
		zap.Bool("query_variables", t.variables),
	)
	return nil
}

func (t *QueryTracer) decorate(db *gorm.DB, _ string) {
	stmt := db.Statement
	if stmt.Context == nil {
		return
	}
	span := trace.SpanFromContext(stmt.Context)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{attribute.Int64("db.rows_affected", stmt.RowsAffected)}
	if stmt.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", stmt.Table))
	}
	span.SetAttributes(attrs...)

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}

	start, ok := stmt.Context.Value(dbTracingStartKey).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	if elapsed <= t.slow {
		return
	}
	span.SetAttributes(attribute.Bool("db.slow_query", true))
	span.AddEvent("slow_query", trace.WithAttributes(
		attribute.Int64("duration_ms", elapsed.Milliseconds()),
		attribute.Int64("threshold_ms", t.slow.Milliseconds()),
	))
}

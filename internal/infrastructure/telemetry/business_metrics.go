package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("business metrics: meter cannot be nil")

// RecordCounter reports the number of stored rows per table.
type RecordCounter interface {
	CountRecords(ctx context.Context) (map[string]int64, error)
}

// BusinessMetrics tracks domain events: malformed subsidy payloads,
// rejected writes, and periodically sampled record counts.
type BusinessMetrics struct {
	logger *zap.Logger

	malformedSubsidies *Counter
	domainErrors       *Counter
	storedRecords      *Gauge

	counter     RecordCounter
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter         metric.Meter
	Logger        *zap.Logger
	RecordCounter RecordCounter
}

// NewBusinessMetrics creates the domain instruments on cfg.Meter.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:   logger,
		counter:  cfg.RecordCounter,
		stopChan: make(chan struct{}),
	}
	in := NewInstruments(cfg.Meter)
	bm.malformedSubsidies = in.Counter("subsidy_malformed_records_total",
		"Subsidy records whose incentiveDetails could not be decoded", "{records}")
	bm.domainErrors = in.Counter("resource_errors_total",
		"Requests rejected with a domain error, by resource and code", "{errors}")
	bm.storedRecords = in.Gauge("resource_records", "Stored rows per table", "{records}")
	if err := in.Err(); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordMalformedSubsidy counts one undecodable subsidy payload.
func (bm *BusinessMetrics) RecordMalformedSubsidy(ctx context.Context) {
	bm.malformedSubsidies.Inc(ctx)
}

// RecordDomainError counts a rejected request.
func (bm *BusinessMetrics) RecordDomainError(ctx context.Context, resource, code string) {
	bm.domainErrors.Inc(ctx, AttrResource.String(resource), AttrErrorCode.String(code))
}

// StartPeriodicCollection samples record counts every interval (default
// 5 minutes) until Stop or ctx ends. Later calls are no-ops.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if bm.counter == nil {
		return
	}
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collect(ctx)
	for {
		select {
		case <-bm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collect(ctx)
		}
	}
}

func (bm *BusinessMetrics) collect(ctx context.Context) {
	counts, err := bm.counter.CountRecords(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count records for metrics", zap.Error(err))
		return
	}
	for table, n := range counts {
		bm.storedRecords.Record(ctx, n, AttrDBTable.String(table))
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// Package setup runs the one-time startup work: schema migration and
// reference data seeding. It completes before the server accepts traffic.
package setup

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	appsubsidy "github.com/Graviton17/TrustChain-sub001/internal/application/subsidy"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/subsidy"
	"go.uber.org/zap"
)

const (
	// GuardKey names the setup claim in the shared guard.
	GuardKey = "setup"
	// DoneKey marks a finished setup for instances that lost the claim.
	DoneKey = "setup:done"
)

//go:embed seed/subsidies.json
var seedSubsidies []byte

// MigrateFunc brings the schema up to date.
type MigrateFunc func(ctx context.Context) error

// Options selects which steps run.
type Options struct {
	AutoMigrate bool
	Seed        bool
	// LockTTL bounds how long a claim survives a crashed holder.
	LockTTL time.Duration
	// PollInterval is how often a waiting instance rechecks the claim.
	PollInterval time.Duration
}

// Result reports what a Run did.
type Result struct {
	Skipped  bool // another holder ran setup
	Migrated bool
	Seeded   int
}

// Initializer performs setup at most once per process, and at most once
// per guard TTL across processes sharing the guard. Instances that lose the
// claim wait until the holder finishes.
type Initializer struct {
	guard     shared.Guard
	migrate   MigrateFunc
	subsidies subsidy.Repository
	opts      Options
	logger    *zap.Logger
	seed      []byte

	mu     sync.Mutex
	done   atomic.Bool
	result Result
}

// NewInitializer creates an Initializer. migrate may be nil when
// opts.AutoMigrate is false.
func NewInitializer(guard shared.Guard, migrate MigrateFunc, subsidies subsidy.Repository, opts Options, logger *zap.Logger) *Initializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	return &Initializer{
		guard:     guard,
		migrate:   migrate,
		subsidies: subsidies,
		opts:      opts,
		logger:    logger,
		seed:      seedSubsidies,
	}
}

// Run executes setup. Concurrent callers block until the first finishes;
// after a success later calls return the recorded result immediately. A
// failed run leaves the initializer retryable and releases the guard.
//
// When another instance holds the claim, Run polls until that holder
// records completion or gives the claim up, in which case this instance
// claims it and runs setup itself. The wait ends early when ctx is done.
func (i *Initializer) Run(ctx context.Context) (Result, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.done.Load() {
		return i.result, nil
	}

	waiting := false
	for {
		finished, err := i.guard.Held(ctx, DoneKey)
		if err != nil {
			return Result{}, fmt.Errorf("check setup marker: %w", err)
		}
		if finished {
			i.logger.Info("Setup completed by another instance")
			i.result = Result{Skipped: true}
			i.done.Store(true)
			return i.result, nil
		}

		acquired, err := i.guard.Acquire(ctx, GuardKey, i.opts.LockTTL)
		if err != nil {
			return Result{}, fmt.Errorf("acquire setup guard: %w", err)
		}
		if acquired {
			break
		}

		if !waiting {
			i.logger.Info("Setup claimed by another instance, waiting",
				zap.Duration("poll_interval", i.opts.PollInterval),
			)
			waiting = true
		}
		select {
		case <-ctx.Done():
			return Result{}, fmt.Errorf("wait for setup: %w", ctx.Err())
		case <-time.After(i.opts.PollInterval):
		}
	}

	result, err := i.run(ctx)
	release := context.WithoutCancel(ctx)
	if err != nil {
		if rerr := i.guard.Release(release, GuardKey); rerr != nil {
			i.logger.Error("Failed to release setup guard", zap.Error(rerr))
		}
		return Result{}, err
	}

	if _, err := i.guard.Acquire(release, DoneKey, i.opts.LockTTL); err != nil {
		i.logger.Error("Failed to record setup completion", zap.Error(err))
	}
	if err := i.guard.Release(release, GuardKey); err != nil {
		i.logger.Error("Failed to release setup guard", zap.Error(err))
	}

	i.result = result
	i.done.Store(true)
	i.logger.Info("Setup complete",
		zap.Bool("migrated", result.Migrated),
		zap.Int("seeded_subsidies", result.Seeded),
	)
	return result, nil
}

// Done reports whether setup has completed in this process. It does not
// block while Run is waiting.
func (i *Initializer) Done() bool {
	return i.done.Load()
}

func (i *Initializer) run(ctx context.Context) (Result, error) {
	var result Result

	if i.opts.AutoMigrate {
		if i.migrate == nil {
			return result, fmt.Errorf("auto migrate enabled without a migrator")
		}
		if err := i.migrate(ctx); err != nil {
			return result, fmt.Errorf("migrate: %w", err)
		}
		result.Migrated = true
	}

	if i.opts.Seed {
		n, err := i.seedSubsidies(ctx)
		if err != nil {
			return result, fmt.Errorf("seed subsidies: %w", err)
		}
		result.Seeded = n
	}
	return result, nil
}

// seedSubsidies inserts the reference programs when the table is empty.
func (i *Initializer) seedSubsidies(ctx context.Context) (int, error) {
	existing, err := i.subsidies.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		i.logger.Debug("Subsidies present, seed skipped", zap.Int64("existing", existing))
		return 0, nil
	}

	var requests []appsubsidy.CreateSubsidyRequest
	if err := json.Unmarshal(i.seed, &requests); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	for n, req := range requests {
		entity := req.Entity()
		if err := entity.Validate(); err != nil {
			return n, fmt.Errorf("seed record %d (%s): %w", n, req.Name, err)
		}
		if err := i.subsidies.Create(ctx, entity); err != nil {
			return n, fmt.Errorf("seed record %d (%s): %w", n, req.Name, err)
		}
	}
	return len(requests), nil
}

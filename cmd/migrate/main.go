// Command migrate manages the versioned postgres schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/config"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `TrustChain schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down [n]              Roll back n migrations (all when omitted)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Set the recorded version without migrating
  create <name> [desc]  Create the next numbered migration pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Connection settings come from config.toml or TC_DATABASE_* variables.`

var errUsage = errors.New("bad arguments")

// dbCommands need a database connection; the rest only touch files.
var dbCommands = map[string]func(m *migration.Migrator, args []string, log *zap.Logger) error{
	"up": func(m *migration.Migrator, _ []string, _ *zap.Logger) error { return m.Up() },
	"down": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		if len(args) == 0 {
			return m.Down(0)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: step count %q", errUsage, args[0])
		}
		return m.Down(n)
	},
	"goto": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := versionArg(args)
		if err != nil {
			return err
		}
		return m.GoTo(uint(v))
	},
	"force": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := versionArg(args)
		if err != nil {
			return err
		}
		return m.Force(int(v))
	},
	"version": func(m *migration.Migrator, _ []string, log *zap.Logger) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	},
}

func versionArg(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: version required", errUsage)
	}
	v, err := strconv.ParseUint(args[0], 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: version %q", errUsage, args[0])
	}
	return v, nil
}

func main() {
	dir := flag.String("path", "migrations", "Path to migrations directory")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout", TimeFormat: "15:04:05"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if err := dispatch(*dir, args[0], args[1:], log); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func dispatch(dir, command string, args []string, log *zap.Logger) error {
	switch command {
	case "create":
		if len(args) == 0 {
			return fmt.Errorf("%w: migration name required", errUsage)
		}
		var description string
		if len(args) > 1 {
			description = args[1]
		}
		mf, err := migration.CreateMigration(dir, args[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created", zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath), zap.String("down_file", mf.DownPath))
		return nil
	case "list":
		names, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println("  -", n)
		}
		return nil
	}

	run, ok := dbCommands[command]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("SQL migrations target postgres, got driver %q; sqlite schemas come from setup.auto_migrate", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	m, err := migration.New(db, dir, log)
	if err != nil {
		return err
	}
	defer m.Close()

	return run(m, args, log)
}

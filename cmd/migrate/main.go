// Command migrate manages the badge service's database schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/badgekit/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("invalid arguments")

// fileCommands only touch migration files and never open the database.
var fileCommands = map[string]func(dir string, args []string, log *zap.Logger) error{
	"create": createCmd,
	"list":   listCmd,
}

// schemaCommands run against the configured database.
var schemaCommands = map[string]func(m *migration.Migrator, args []string, log *zap.Logger) error{
	"up":      func(m *migration.Migrator, _ []string, _ *zap.Logger) error { return m.Up() },
	"down":    func(m *migration.Migrator, _ []string, _ *zap.Logger) error { return m.Down() },
	"step":    stepCmd,
	"version": versionCmd,
	"force":   forceCmd,
}

func main() {
	dir := flag.String("path", "", "Migrations directory (default: the migrations built into the binary)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(args[0], args[1:], *dir, log); err != nil {
		_ = log.Sync()
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(command string, args []string, dir string, log *zap.Logger) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			log.Error("Failed to resolve migrations path", zap.Error(err))
			return err
		}
		dir = abs
	}
	log = log.With(zap.String("command", command))

	if fn, ok := fileCommands[command]; ok {
		return report(log, fn(dir, args, log))
	}

	fn, ok := schemaCommands[command]
	if !ok {
		log.Error("Unknown command")
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return err
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Error("Database unreachable",
			zap.String("host", cfg.Database.Host),
			zap.String("dbname", cfg.Database.DBName),
			zap.Error(err))
		return err
	}

	m, err := migration.New(db, dir, log)
	if err != nil {
		log.Error("Failed to create migrator", zap.Error(err))
		return err
	}
	defer m.Close()

	return report(log, fn(m, args, log))
}

func report(log *zap.Logger, err error) error {
	if err != nil && !errors.Is(err, errUsage) {
		log.Error("Command failed", zap.Error(err))
	}
	return err
}

func createCmd(dir string, args []string, log *zap.Logger) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: create needs a name", errUsage)
	}
	if dir == "" {
		dir = defaultMigrationsDir
	}
	var description string
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath))
	return nil
}

func listCmd(dir string, _ []string, log *zap.Logger) error {
	var (
		files []string
		err   error
	)
	if dir == "" {
		files, err = migration.Files()
	} else {
		files, err = migration.ListMigrations(dir)
	}
	if err != nil {
		return err
	}

	log.Info("Available migrations", zap.Int("count", len(files)))
	for _, f := range files {
		fmt.Println("  -", f)
	}
	return nil
}

func stepCmd(m *migration.Migrator, args []string, _ *zap.Logger) error {
	n, err := intArg(args, "step count")
	if err != nil {
		return err
	}
	return m.Steps(n)
}

func forceCmd(m *migration.Migrator, args []string, _ *zap.Logger) error {
	v, err := intArg(args, "version")
	if err != nil {
		return err
	}
	return m.Force(v)
}

func versionCmd(m *migration.Migrator, _ []string, log *zap.Logger) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		log.Info("No migrations applied")
		return nil
	}
	log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%w: %s required", errUsage, what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", errUsage, what, args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Println(`Badge service schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply every pending migration
  down                  Roll every migration back
  step <n>              Move n migrations (negative rolls back)
  version               Print the current schema version
  force <version>       Set the version after a failed run, without migrating
  create <name> [desc]  Write a new up/down file pair
  list                  Print the known migrations

Flags:
  -path string          Migrations directory (default: built into the binary)
  -log-level string     debug, info, warn or error (default: info)

The database is read from BADGE_DATABASE_HOST, BADGE_DATABASE_PORT,
BADGE_DATABASE_USER, BADGE_DATABASE_PASSWORD, BADGE_DATABASE_DBNAME and
BADGE_DATABASE_SSLMODE, or from a .env file.

Examples:
  migrate up
  migrate step -1
  migrate create add_badge_priority "Order badges by priority"`)
}

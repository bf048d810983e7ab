package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/prubianes/guit-app-api/internal/config"
	"github.com/prubianes/guit-app-api/internal/database"
	"github.com/prubianes/guit-app-api/internal/logger"
)

const usage = "usage: migrate <up|down [N]|goto V|force V|version>"

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(args); err != nil {
		logger.Get().Errorw("migration failed", "error", err)
		return 1
	}
	return 0
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBDriver != "postgres" {
		return fmt.Errorf("DB_DRIVER=%s: sqlite schemas are created by the API on startup", cfg.DBDriver)
	}

	m, err := migrate.New(cfg.MigrationsPath, database.MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Get().Warnw("migrate close", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	log := logger.Get().With("command", args[0], "source", cfg.MigrationsPath)

	switch args[0] {
	case "up":
		err = m.Up()

	case "down":
		steps, perr := intArg(args, 1)
		if perr != nil {
			return perr
		}
		err = m.Steps(-steps)

	case "goto":
		target, perr := intArg(args, 0)
		if perr != nil {
			return perr
		}
		err = m.Migrate(uint(target))

	case "force":
		target, perr := intArg(args, -1)
		if perr != nil {
			return perr
		}
		err = m.Force(target)

	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info("no migrations applied")
			return nil
		}
		if verr != nil {
			return fmt.Errorf("failed to get version: %w", verr)
		}
		log.Infow("schema version", "version", version, "dirty", dirty)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", args[0], err)
	}

	version, dirty, _ := m.Version()
	log.Infow("migration applied", "version", version, "dirty", dirty)
	return nil
}

// intArg reads args[1] as a non-negative integer. When it is missing, a
// positive def is returned instead. force also accepts -1.
func intArg(args []string, def int) (int, error) {
	if len(args) < 2 {
		if def > 0 {
			return def, nil
		}
		return 0, fmt.Errorf("%s requires a version argument", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[1])
	}
	if n < 0 && !(args[0] == "force" && n == -1) {
		return 0, fmt.Errorf("%s expects a non-negative number, got %d", args[0], n)
	}
	if n == 0 && args[0] == "down" {
		return 0, errors.New("down expects at least one step")
	}
	return n, nil
}

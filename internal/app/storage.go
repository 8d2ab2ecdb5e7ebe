package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/basketball-roster/db"
	"github.com/riskibarqy/basketball-roster/internal/config"
	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	cacherepo "github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/basketball-roster/internal/platform/cache"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type teamStore interface {
	team.Repository
	team.ScoreboardReader
}

type playerStore interface {
	player.Repository
	player.ScoreboardReader
}

type repositories struct {
	teams   teamStore
	players playerStore
	close   func() error
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		conn, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			teams:   postgres.NewTeamRepository(conn),
			players: postgres.NewPlayerRepository(conn),
			close:   conn.Close,
		}
	default:
		var (
			seedTeams   []team.Team
			seedPlayers []player.Player
		)
		if cfg.DBSeedDemo {
			seedTeams = memory.SeedTeams()
			seedPlayers = memory.SeedPlayers()
			if err := memory.ValidateSeed(seedTeams, seedPlayers); err != nil {
				return repositories{}, fmt.Errorf("demo seed: %w", err)
			}
		}
		teams := memory.NewTeamRepository(seedTeams)
		repos = repositories{
			teams:   teams,
			players: memory.NewPlayerRepository(teams, seedPlayers),
			close:   func() error { return nil },
		}
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}

	logger.Info("repositories ready",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"seed_demo", cfg.DBSeedDemo,
	)
	return repos, nil
}

func openPostgres(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := db.PrepareDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := db.Name(dsn)

	conn, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(cfg.DBMaxOpenConns)
	conn.SetMaxIdleConns(cfg.DBMaxIdleConns)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.DBAutoMigrate {
		if err := migrateUp(conn, dbName, logger); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	if cfg.DBSeedDemo {
		if err := postgres.BootstrapSeed(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("seed postgres: %w", err)
		}
		logger.Info("demo seed applied", "db_name", dbName)
	}

	return conn, nil
}

// migrateUp applies the embedded migrations. The migrate driver shares the pool and is not closed here.
func migrateUp(conn *sqlx.DB, dbName string, logger *logging.Logger) error {
	files, err := db.Migrations()
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	source, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	driver, err := migratepostgres.WithInstance(conn.DB, &migratepostgres.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("open migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

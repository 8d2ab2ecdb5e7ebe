package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/basketball-roster/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT (public_id) DO NOTHING"

// BootstrapSeed loads the demo teams and players into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	teams, players := memory.SeedTeams(), memory.SeedPlayers()
	if err := memory.ValidateSeed(teams, players); err != nil {
		return err
	}

	countQuery, _, err := qb.Select("COUNT(1)").From("basketball_teams").ToSQL()
	if err != nil {
		return fmt.Errorf("build count teams query: %w", err)
	}
	var count int
	if err := db.GetContext(ctx, &count, countQuery); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range teams {
		if err := seedRow(ctx, tx, "basketball_teams", teamInsertModel(t)); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}
	for _, p := range players {
		if err := seedRow(ctx, tx, "basketball_players", playerInsertModel(p)); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func seedRow(ctx context.Context, tx *sqlx.Tx, table string, model any) error {
	query, args, err := qb.InsertModel(table, model, seedConflictSuffix)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

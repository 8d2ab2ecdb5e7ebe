package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	qb "github.com/riskibarqy/basketball-roster/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, ownerUserID string, filter player.ListFilter) ([]player.Player, error) {
	query, args, err := playerListQuery(ownerUserID, filter.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("build list players by owner query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by owner: %w", err)
	}

	return playersToDomain(rows), nil
}

// playerListQuery filters on the team's current league through a join, never on the player's
// denormalized league_id.
func playerListQuery(ownerUserID, leagueID string) (string, []any, error) {
	b := qb.Select(prefixed("p", playerColumns)...).From("basketball_players p")
	conditions := []qb.Condition{qb.Eq("p.owner_user_id", ownerUserID)}
	if leagueID != "" {
		b = b.Join("basketball_teams t", "t.public_id = p.team_public_id")
		conditions = append(conditions, qb.Eq("t.league_id", leagueID))
	}
	return b.Where(conditions...).OrderBy("p.id").ToSQL()
}

func (r *PlayerRepository) GetByOwner(ctx context.Context, ownerUserID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).From("basketball_players").
		Where(
			qb.Eq("public_id", playerID),
			qb.Eq("owner_user_id", ownerUserID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("basketball_players", playerInsertModel(p), "")
	if err != nil {
		return fmt.Errorf("build create player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: team=%s", player.ErrUnknownTeam, p.TeamID)
		}
		return fmt.Errorf("create player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (bool, error) {
	query, args, err := qb.UpdateModel("basketball_players", playerUpdateModel(p),
		qb.Eq("public_id", p.ID),
		qb.Eq("owner_user_id", p.OwnerUserID),
	)
	if err != nil {
		return false, fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: team=%s", player.ErrUnknownTeam, p.TeamID)
		}
		return false, fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected update player: %w", err)
	}

	return affected > 0, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, ownerUserID, playerID string) (bool, error) {
	query, args, err := qb.DeleteFrom("basketball_players").
		Where(
			qb.Eq("public_id", playerID),
			qb.Eq("owner_user_id", ownerUserID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete player: %w", err)
	}

	return affected > 0, nil
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("basketball_players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all players: %w", err)
	}

	return playersToDomain(rows), nil
}

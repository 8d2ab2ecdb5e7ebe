package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	qb "github.com/riskibarqy/basketball-roster/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("basketball_teams").
		Where(qb.Eq("public_id", strings.TrimSpace(teamID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerUserID string, filter team.ListFilter) ([]team.Team, error) {
	conditions := []qb.Condition{qb.Eq("owner_user_id", ownerUserID)}
	if filter.LeagueID != "" {
		conditions = append(conditions, qb.Eq("league_id", filter.LeagueID))
	}

	query, args, err := qb.Select(teamColumns...).From("basketball_teams").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by owner query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by owner: %w", err)
	}

	return teamsToDomain(rows), nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("basketball_teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all teams: %w", err)
	}

	return teamsToDomain(rows), nil
}

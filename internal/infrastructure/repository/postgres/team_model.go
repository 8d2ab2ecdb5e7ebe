package postgres

import (
	"time"

	"github.com/riskibarqy/basketball-roster/internal/domain/team"
)

var teamColumns = []string{"public_id", "owner_user_id", "name", "league_id", "created_at", "updated_at"}

type teamTableModel struct {
	PublicID    string    `db:"public_id"`
	OwnerUserID string    `db:"owner_user_id"`
	Name        string    `db:"name"`
	LeagueID    string    `db:"league_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func teamInsertModel(t team.Team) teamTableModel {
	return teamTableModel{
		PublicID:    t.ID,
		OwnerUserID: t.OwnerUserID,
		Name:        t.Name,
		LeagueID:    t.LeagueID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.PublicID,
		Name:        m.Name,
		LeagueID:    m.LeagueID,
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func teamsToDomain(rows []teamTableModel) []team.Team {
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

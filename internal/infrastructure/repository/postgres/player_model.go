package postgres

import (
	"time"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
)

var playerColumns = []string{
	"public_id",
	"owner_user_id",
	"team_public_id",
	"team_name",
	"league_id",
	"full_name",
	"height",
	"weight",
	"position",
	"jersey_number",
	"created_at",
	"updated_at",
}

type playerTableModel struct {
	PublicID     string    `db:"public_id"`
	OwnerUserID  string    `db:"owner_user_id"`
	TeamID       string    `db:"team_public_id"`
	TeamName     string    `db:"team_name"`
	LeagueID     string    `db:"league_id"`
	FullName     string    `db:"full_name"`
	Height       float64   `db:"height"`
	Weight       float64   `db:"weight"`
	Position     string    `db:"position"`
	JerseyNumber int       `db:"jersey_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func playerInsertModel(p player.Player) playerTableModel {
	return playerTableModel{
		PublicID:     p.ID,
		OwnerUserID:  p.OwnerUserID,
		TeamID:       p.TeamID,
		TeamName:     p.TeamName,
		LeagueID:     p.LeagueID,
		FullName:     p.FullName,
		Height:       p.Height,
		Weight:       p.Weight,
		Position:     p.Position,
		JerseyNumber: p.JerseyNumber,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// playerMutableColumns excludes public_id, owner_user_id and created_at, which never change.
type playerMutableColumns struct {
	TeamID       string    `db:"team_public_id"`
	TeamName     string    `db:"team_name"`
	LeagueID     string    `db:"league_id"`
	FullName     string    `db:"full_name"`
	Height       float64   `db:"height"`
	Weight       float64   `db:"weight"`
	Position     string    `db:"position"`
	JerseyNumber int       `db:"jersey_number"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func playerUpdateModel(p player.Player) playerMutableColumns {
	return playerMutableColumns{
		TeamID:       p.TeamID,
		TeamName:     p.TeamName,
		LeagueID:     p.LeagueID,
		FullName:     p.FullName,
		Height:       p.Height,
		Weight:       p.Weight,
		Position:     p.Position,
		JerseyNumber: p.JerseyNumber,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.PublicID,
		FullName:     m.FullName,
		Height:       m.Height,
		Weight:       m.Weight,
		Position:     m.Position,
		JerseyNumber: m.JerseyNumber,
		TeamID:       m.TeamID,
		TeamName:     m.TeamName,
		LeagueID:     m.LeagueID,
		OwnerUserID:  m.OwnerUserID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func playersToDomain(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, alias+"."+c)
	}
	return out
}

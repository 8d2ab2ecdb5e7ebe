package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/basketball-roster/internal/domain/team"
)

// Player is a rostered basketball player owned by one user.
//
// TeamName and LeagueID are a snapshot of the referenced team taken at the last create or update of
// the player. They are not refreshed when the team is renamed or moved to another league, so readers
// that need the team's current league must join on TeamID instead.
type Player struct {
	ID           string
	FullName     string
	Height       float64
	Weight       float64
	Position     string
	JerseyNumber int
	TeamID       string
	TeamName     string
	LeagueID     string
	OwnerUserID  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SyncTeam points the player at t and refreshes the denormalized team fields.
func (p *Player) SyncTeam(t team.Team) {
	p.TeamID = t.ID
	p.TeamName = t.Name
	p.LeagueID = t.LeagueID
}

// InSync reports whether the denormalized fields match t.
func (p Player) InSync(t team.Team) bool {
	return p.TeamID == t.ID && p.TeamName == t.Name && p.LeagueID == t.LeagueID
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.OwnerUserID) == "" {
		return fmt.Errorf("player owner user id is required")
	}
	if strings.TrimSpace(p.TeamID) == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("player full name is required")
	}

	return nil
}

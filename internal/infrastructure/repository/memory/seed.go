package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
)

const (
	LeagueIDEastern = "nba-eastern-2025"
	LeagueIDWestern = "nba-western-2025"

	DemoUserID  = "demo-user"
	OtherUserID = "other-user"
)

func SeedTeams() []team.Team {
	createdAt := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return []team.Team{
		{ID: "team-hawks", Name: "Hawks", LeagueID: LeagueIDEastern, OwnerUserID: DemoUserID, CreatedAt: createdAt, UpdatedAt: createdAt},
		{ID: "team-celtics", Name: "Celtics", LeagueID: LeagueIDEastern, OwnerUserID: DemoUserID, CreatedAt: createdAt, UpdatedAt: createdAt},
		{ID: "team-suns", Name: "Suns", LeagueID: LeagueIDWestern, OwnerUserID: DemoUserID, CreatedAt: createdAt, UpdatedAt: createdAt},
		{ID: "team-nuggets", Name: "Nuggets", LeagueID: LeagueIDWestern, OwnerUserID: OtherUserID, CreatedAt: createdAt, UpdatedAt: createdAt},
	}
}

func SeedPlayers() []player.Player {
	createdAt := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)
	return []player.Player{
		{
			ID: "player-demo-01", FullName: "Marcus Hill", Height: 193, Weight: 88, Position: "Guard", JerseyNumber: 3,
			TeamID: "team-hawks", TeamName: "Hawks", LeagueID: LeagueIDEastern, OwnerUserID: DemoUserID,
			CreatedAt: createdAt, UpdatedAt: createdAt,
		},
		{
			ID: "player-demo-02", FullName: "Theo Grant", Height: 208, Weight: 109, Position: "Center", JerseyNumber: 12,
			TeamID: "team-suns", TeamName: "Suns", LeagueID: LeagueIDWestern, OwnerUserID: DemoUserID,
			CreatedAt: createdAt, UpdatedAt: createdAt,
		},
		{
			ID: "player-other-01", FullName: "Jalen Price", Height: 201, Weight: 98, Position: "Forward", JerseyNumber: 0,
			TeamID: "team-nuggets", TeamName: "Nuggets", LeagueID: LeagueIDWestern, OwnerUserID: OtherUserID,
			CreatedAt: createdAt, UpdatedAt: createdAt,
		},
	}
}

// ValidateSeed rejects seed data that the repositories would store in an inconsistent state: a
// record missing required fields, a player pointing at an unknown team, or a player whose team
// snapshot disagrees with that team.
func ValidateSeed(teams []team.Team, players []player.Player) error {
	byID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("seed team %q: %w", t.ID, err)
		}
		if _, dup := byID[t.ID]; dup {
			return fmt.Errorf("seed team %q: duplicate id", t.ID)
		}
		byID[t.ID] = t
	}

	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed player %q: %w", p.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("seed player %q: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}

		t, ok := byID[p.TeamID]
		if !ok {
			return fmt.Errorf("seed player %q: %w: team=%s", p.ID, player.ErrUnknownTeam, p.TeamID)
		}
		if !p.InSync(t) {
			return fmt.Errorf("seed player %q: team snapshot %s/%s does not match team %s/%s",
				p.ID, p.TeamName, p.LeagueID, t.Name, t.LeagueID)
		}
	}

	return nil
}

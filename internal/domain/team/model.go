package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a basketball team owned by one user. Teams are created by the team-management flow; the
// roster only reads them.
type Team struct {
	ID          string
	Name        string
	LeagueID    string
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.LeagueID) == "" {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.OwnerUserID) == "" {
		return fmt.Errorf("team owner user id is required")
	}

	return nil
}

// OwnedBy reports whether userID owns the team.
func (t Team) OwnedBy(userID string) bool {
	return userID != "" && t.OwnerUserID == userID
}

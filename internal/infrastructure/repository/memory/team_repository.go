package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/basketball-roster/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	byID  map[string]team.Team
	order []string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{byID: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		r.put(item)
	}
	return r
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[strings.TrimSpace(teamID)]
	return item, ok, nil
}

func (r *TeamRepository) ListByOwner(_ context.Context, ownerUserID string, filter team.ListFilter) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range r.order {
		item := r.byID[id]
		if item.OwnerUserID != ownerUserID {
			continue
		}
		if filter.LeagueID != "" && item.LeagueID != filter.LeagueID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TeamRepository) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// UpsertTeams inserts or replaces teams by ID. It stands in for the team-management flow and
// applies nothing when any team is invalid.
func (r *TeamRepository) UpsertTeams(_ context.Context, items []team.Team) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("upsert team %q: %w", item.ID, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.put(item)
	}
	return nil
}

func (r *TeamRepository) leagueOf(teamID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[teamID]
	return item.LeagueID, ok
}

func (r *TeamRepository) put(item team.Team) {
	if _, exists := r.byID[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.byID[item.ID] = item
}

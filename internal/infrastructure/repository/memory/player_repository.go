package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
)

// PlayerRepository keeps players in memory. It reads teams from the team repository to resolve the
// league filter and to reject unknown team references the way a foreign key would.
type PlayerRepository struct {
	mu    sync.RWMutex
	teams *TeamRepository
	byID  map[string]player.Player
	order []string
}

func NewPlayerRepository(teams *TeamRepository, players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		teams: teams,
		byID:  make(map[string]player.Player, len(players)),
	}
	for _, item := range players {
		r.byID[item.ID] = item
		r.order = append(r.order, item.ID)
	}
	return r
}

func (r *PlayerRepository) ListByOwner(_ context.Context, ownerUserID string, filter player.ListFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.order {
		item := r.byID[id]
		if item.OwnerUserID != ownerUserID {
			continue
		}
		if filter.LeagueID != "" {
			leagueID, ok := r.teams.leagueOf(item.TeamID)
			if !ok || leagueID != filter.LeagueID {
				continue
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PlayerRepository) GetByOwner(_ context.Context, ownerUserID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[playerID]
	if !ok || item.OwnerUserID != ownerUserID {
		return player.Player{}, false, nil
	}
	return item, true, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	if _, ok := r.teams.leagueOf(p.TeamID); !ok {
		return fmt.Errorf("%w: team=%s", player.ErrUnknownTeam, p.TeamID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("duplicate player id: %s", p.ID)
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) (bool, error) {
	if _, ok := r.teams.leagueOf(p.TeamID); !ok {
		return false, fmt.Errorf("%w: team=%s", player.ErrUnknownTeam, p.TeamID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[p.ID]
	if !ok || current.OwnerUserID != p.OwnerUserID {
		return false, nil
	}
	p.CreatedAt = current.CreatedAt
	r.byID[p.ID] = p
	return true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, ownerUserID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[playerID]
	if !ok || current.OwnerUserID != ownerUserID {
		return false, nil
	}
	delete(r.byID, playerID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == playerID })
	return true, nil
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

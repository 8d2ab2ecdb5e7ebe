package cache

import (
	"context"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	basecache "github.com/riskibarqy/basketball-roster/internal/platform/cache"
)

const (
	scoreboardPrefix     = "scoreboard:"
	scoreboardTeamsKey   = scoreboardPrefix + "teams"
	scoreboardPlayersKey = scoreboardPrefix + "players"
)

type teamStore interface {
	team.Repository
	team.ScoreboardReader
}

type playerStore interface {
	player.Repository
	player.ScoreboardReader
}

// TeamRepository caches the unscoped scoreboard read. Owner-scoped reads and team lookups always
// go to the underlying store so writes see the team's current name and league.
type TeamRepository struct {
	next  teamStore
	cache *basecache.Store
}

func NewTeamRepository(next teamStore, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.next.GetByID(ctx, teamID)
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerUserID string, filter team.ListFilter) ([]team.Team, error) {
	return r.next.ListByOwner(ctx, ownerUserID, filter)
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, scoreboardTeamsKey, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

// PlayerRepository caches the unscoped scoreboard read and drops it after every successful write.
type PlayerRepository struct {
	next  playerStore
	cache *basecache.Store
}

func NewPlayerRepository(next playerStore, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, ownerUserID string, filter player.ListFilter) ([]player.Player, error) {
	return r.next.ListByOwner(ctx, ownerUserID, filter)
}

func (r *PlayerRepository) GetByOwner(ctx context.Context, ownerUserID, playerID string) (player.Player, bool, error) {
	return r.next.GetByOwner(ctx, ownerUserID, playerID)
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.invalidateScoreboard(ctx)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (bool, error) {
	ok, err := r.next.Update(ctx, p)
	if err != nil {
		return false, err
	}
	if ok {
		r.invalidateScoreboard(ctx)
	}
	return ok, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, ownerUserID, playerID string) (bool, error) {
	ok, err := r.next.Delete(ctx, ownerUserID, playerID)
	if err != nil {
		return false, err
	}
	if ok {
		r.invalidateScoreboard(ctx)
	}
	return ok, nil
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, scoreboardPlayersKey, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) invalidateScoreboard(ctx context.Context) {
	r.cache.DeletePrefix(ctx, scoreboardPrefix)
}

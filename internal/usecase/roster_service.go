package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	idgen "github.com/riskibarqy/basketball-roster/internal/platform/id"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
)

type RosterOptions struct {
	// RequireOwnedTeam binds the team lookup on create and update to the caller. When false any
	// existing team may be referenced.
	RequireOwnedTeam bool
}

// Roster is an owner's players and teams, optionally narrowed to one league. CurrentTeams holds
// the team each listed player points at as it is stored now, keyed by team ID.
type Roster struct {
	Players      []player.Player
	Teams        []team.Team
	CurrentTeams map[string]team.Team
}

// RosterService owns every owner-scoped player operation.
type RosterService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	opts       RosterOptions
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	opts RosterOptions,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the owner's players and teams. A non-empty leagueID keeps players whose team is
// currently in that league and teams in that league.
func (s *RosterService) List(ctx context.Context, ownerUserID, leagueID string) (Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.List", attribute.String("league_id", leagueID))
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Roster{}, fmt.Errorf("%w: owner user id is required", ErrUnauthorized)
	}
	leagueID = strings.TrimSpace(leagueID)

	var (
		players []player.Player
		teams   []team.Team
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.ListByOwner(ctx, ownerUserID, player.ListFilter{LeagueID: leagueID})
		if err != nil {
			return fmt.Errorf("list players by owner: %w", err)
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.ListByOwner(ctx, ownerUserID, team.ListFilter{LeagueID: leagueID})
		if err != nil {
			return fmt.Errorf("list teams by owner: %w", err)
		}
		teams = items
		return nil
	})
	if err := p.Wait(); err != nil {
		recordSpanError(span, err)
		return Roster{}, err
	}

	if players == nil {
		players = []player.Player{}
	}
	if teams == nil {
		teams = []team.Team{}
	}

	current, err := s.currentTeams(ctx, players, teams)
	if err != nil {
		recordSpanError(span, err)
		return Roster{}, err
	}
	return Roster{Players: players, Teams: teams, CurrentTeams: current}, nil
}

// currentTeams resolves the team of every player, reusing the already listed teams and looking
// up the rest once per team.
func (s *RosterService) currentTeams(ctx context.Context, players []player.Player, listed []team.Team) (map[string]team.Team, error) {
	out := make(map[string]team.Team, len(listed))
	for _, t := range listed {
		out[t.ID] = t
	}

	for _, p := range players {
		if _, ok := out[p.TeamID]; ok {
			continue
		}
		t, exists, err := s.teamRepo.GetByID(ctx, p.TeamID)
		if err != nil {
			return nil, fmt.Errorf("get current team: %w", err)
		}
		if !exists {
			continue
		}
		out[t.ID] = t
	}
	return out, nil
}

func (s *RosterService) Create(ctx context.Context, ownerUserID string, input player.Input) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Create")
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return player.Player{}, fmt.Errorf("%w: owner user id is required", ErrUnauthorized)
	}

	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t, err := s.resolveTeam(ctx, ownerUserID, input.TeamRef())
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, err
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:          playerID,
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	input.Apply(&item)
	item.SyncTeam(t)

	if err := s.playerRepo.Create(ctx, item); err != nil {
		if errors.Is(err, player.ErrUnknownTeam) {
			return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, item.TeamID)
		}
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", item.ID,
		"team_id", item.TeamID,
		"league_id", item.LeagueID,
	)
	return item, nil
}

func (s *RosterService) Get(ctx context.Context, ownerUserID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get", attribute.String("player_id", playerID))
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	playerID = strings.TrimSpace(playerID)
	if ownerUserID == "" {
		return player.Player{}, fmt.Errorf("%w: owner user id is required", ErrUnauthorized)
	}
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if !idgen.Valid(playerID) {
		return player.Player{}, fmt.Errorf("%w: malformed player id", ErrNotFound)
	}

	item, exists, err := s.playerRepo.GetByOwner(ctx, ownerUserID, playerID)
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

// Update rewrites every mutable field of an owned player and re-derives its team snapshot.
func (s *RosterService) Update(ctx context.Context, ownerUserID, playerID string, input player.Input) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Update", attribute.String("player_id", playerID))
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	playerID = strings.TrimSpace(playerID)
	if ownerUserID == "" {
		return player.Player{}, fmt.Errorf("%w: owner user id is required", ErrUnauthorized)
	}
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if !idgen.Valid(playerID) {
		return player.Player{}, fmt.Errorf("%w: malformed player id", ErrNotFound)
	}

	existing, exists, err := s.playerRepo.GetByOwner(ctx, ownerUserID, playerID)
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t, err := s.resolveTeam(ctx, ownerUserID, input.TeamRef())
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, err
	}

	updated := existing
	input.Apply(&updated)
	updated.SyncTeam(t)
	updated.UpdatedAt = s.now().UTC()

	ok, err := s.playerRepo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, player.ErrUnknownTeam) {
			return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, updated.TeamID)
		}
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	switch {
	case existing.TeamID != updated.TeamID:
		s.logger.InfoContext(ctx, "player moved team",
			"player_id", updated.ID,
			"from_team_id", existing.TeamID,
			"to_team_id", updated.TeamID,
		)
	case !existing.InSync(t):
		s.logger.InfoContext(ctx, "player team snapshot refreshed",
			"player_id", updated.ID,
			"team_id", t.ID,
			"stale_team_name", existing.TeamName,
			"stale_league_id", existing.LeagueID,
		)
	}
	return updated, nil
}

func (s *RosterService) Delete(ctx context.Context, ownerUserID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Delete", attribute.String("player_id", playerID))
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	playerID = strings.TrimSpace(playerID)
	if ownerUserID == "" {
		return fmt.Errorf("%w: owner user id is required", ErrUnauthorized)
	}
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if !idgen.Valid(playerID) {
		return fmt.Errorf("%w: malformed player id", ErrNotFound)
	}

	ok, err := s.playerRepo.Delete(ctx, ownerUserID, playerID)
	if err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("delete player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)
	return nil
}

func (s *RosterService) resolveTeam(ctx context.Context, ownerUserID, teamID string) (team.Team, error) {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if s.opts.RequireOwnedTeam && !t.OwnedBy(ownerUserID) {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

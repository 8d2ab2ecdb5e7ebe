package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
)

// Scoreboard is every team and player across all owners.
type Scoreboard struct {
	Teams   []team.Team
	Players []player.Player
}

// ScoreboardService serves the public aggregate read. It depends only on the unscoped reader ports
// and never on the owner-scoped repositories.
type ScoreboardService struct {
	teams   team.ScoreboardReader
	players player.ScoreboardReader
}

func NewScoreboardService(teams team.ScoreboardReader, players player.ScoreboardReader) *ScoreboardService {
	return &ScoreboardService{teams: teams, players: players}
}

func (s *ScoreboardService) AllTeamsAndPlayers(ctx context.Context) (Scoreboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.AllTeamsAndPlayers")
	defer span.End()

	var out Scoreboard
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.teams.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list all teams: %w", err)
		}
		out.Teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.players.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list all players: %w", err)
		}
		out.Players = items
		return nil
	})
	if err := p.Wait(); err != nil {
		recordSpanError(span, err)
		return Scoreboard{}, err
	}

	if out.Teams == nil {
		out.Teams = []team.Team{}
	}
	if out.Players == nil {
		out.Players = []player.Player{}
	}
	return out, nil
}

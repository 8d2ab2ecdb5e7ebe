package httpapi

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
	"github.com/riskibarqy/basketball-roster/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	rosterService     *usecase.RosterService
	scoreboardService *usecase.ScoreboardService
	logger            *logging.Logger
}

func NewHandler(
	rosterService *usecase.RosterService,
	scoreboardService *usecase.ScoreboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:     rosterService,
		scoreboardService: scoreboardService,
		logger:            logger,
	}
}

// playerRequest decodes jersey_number as a float so a fractional value is reported as a field
// violation instead of a JSON type error.
type playerRequest struct {
	FullName     *string  `json:"full_name"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Position     *string  `json:"position"`
	JerseyNumber *float64 `json:"jersey_number"`
	TeamID       *string  `json:"team_id"`
}

var playerFieldOrder = map[string]int{
	"full_name":     0,
	"height":        1,
	"weight":        2,
	"position":      3,
	"jersey_number": 4,
	"team_id":       5,
}

// toInput converts the payload and runs field validation. Violations come back as *player.ValidationError.
func (req playerRequest) toInput() (player.Input, error) {
	input := player.Input{
		FullName: req.FullName,
		Height:   req.Height,
		Weight:   req.Weight,
		Position: req.Position,
		TeamID:   req.TeamID,
	}

	fractional := false
	if req.JerseyNumber != nil {
		v := *req.JerseyNumber
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			fractional = true
			placeholder := player.MinJerseyNumber
			input.JerseyNumber = &placeholder
		} else {
			n := int(v)
			input.JerseyNumber = &n
		}
	}
	input = input.Normalize()

	verr := &player.ValidationError{}
	if err := input.Validate(); err != nil {
		converted, ok := err.(*player.ValidationError)
		if !ok {
			return input, err
		}
		verr = converted
	}
	if fractional {
		verr.Add("jersey_number", "integer", "must be an integer")
	}
	if len(verr.Fields) == 0 {
		return input, nil
	}

	sort.SliceStable(verr.Fields, func(i, j int) bool {
		return playerFieldOrder[verr.Fields[i].Field] < playerFieldOrder[verr.Fields[j].Field]
	})
	return input, verr
}

type rosterDTO struct {
	Players []playerDTO `json:"players"`
	Teams   []teamDTO   `json:"teams"`
}

type scoreboardDTO struct {
	Teams   []teamDTO   `json:"teams"`
	Players []playerDTO `json:"players"`
}

type playerDTO struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Height       float64    `json:"height"`
	Weight       float64    `json:"weight"`
	Position     string     `json:"position"`
	JerseyNumber int        `json:"jerseyNumber"`
	TeamID       string     `json:"teamId"`
	TeamName     string     `json:"teamName"`
	LeagueID     string     `json:"leagueId"`
	CurrentTeam  *teamDTO   `json:"currentTeam,omitempty"`
	OwnerUserID  string     `json:"ownerUserId,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type teamDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LeagueID    string `json:"leagueId"`
	OwnerUserID string `json:"ownerUserId,omitempty"`
}

type messageDTO struct {
	Message string `json:"message"`
}

// renderView selects which fields of a record are exposed to the caller.
type renderView int

const (
	viewOwner renderView = iota
	viewOperator
	viewPublic
)

func playerToDTO(ctx context.Context, v player.Player, view renderView) playerDTO {
	_, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	out := playerDTO{
		ID:           v.ID,
		FullName:     v.FullName,
		Height:       v.Height,
		Weight:       v.Weight,
		Position:     v.Position,
		JerseyNumber: v.JerseyNumber,
		TeamID:       v.TeamID,
		TeamName:     v.TeamName,
		LeagueID:     v.LeagueID,
	}
	if view == viewOperator {
		out.OwnerUserID = v.OwnerUserID
	}
	if view != viewPublic {
		out.CreatedAt = timePtr(v.CreatedAt)
		out.UpdatedAt = timePtr(v.UpdatedAt)
	}
	return out
}

func playersToDTO(ctx context.Context, items []player.Player, view renderView) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(ctx, item, view))
	}
	return out
}

// rosterToDTO renders the owner view. Each player carries its team as stored now next to the
// snapshot taken at its last write.
func rosterToDTO(ctx context.Context, roster usecase.Roster) rosterDTO {
	players := make([]playerDTO, 0, len(roster.Players))
	for _, item := range roster.Players {
		dto := playerToDTO(ctx, item, viewOwner)
		if t, ok := roster.CurrentTeams[item.TeamID]; ok {
			current := teamToDTO(ctx, t, viewOwner)
			dto.CurrentTeam = &current
		}
		players = append(players, dto)
	}

	return rosterDTO{
		Players: players,
		Teams:   teamsToDTO(ctx, roster.Teams, viewOwner),
	}
}

func teamToDTO(ctx context.Context, v team.Team, view renderView) teamDTO {
	_, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	out := teamDTO{
		ID:       v.ID,
		Name:     v.Name,
		LeagueID: v.LeagueID,
	}
	if view == viewOperator {
		out.OwnerUserID = v.OwnerUserID
	}
	return out
}

func teamsToDTO(ctx context.Context, items []team.Team, view renderView) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(ctx, item, view))
	}
	return out
}

func timePtr(v time.Time) *time.Time {
	if v.IsZero() {
		return nil
	}
	utc := v.UTC()
	return &utc
}

package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/basketball-roster/internal/usecase"
)

// GetOperatorScoreboard renders every team and player with owner ids and timestamps.
func (h *Handler) GetOperatorScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOperatorScoreboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	board, err := h.scoreboardService.AllTeamsAndPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get operator scoreboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardDTO{
		Teams:   teamsToDTO(ctx, board.Teams, viewOperator),
		Players: playersToDTO(ctx, board.Players, viewOperator),
	})
}

// GetScoreboard renders the same data for end users, without owner ids.
func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	board, err := h.scoreboardService.AllTeamsAndPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get scoreboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardDTO{
		Teams:   teamsToDTO(ctx, board.Teams, viewPublic),
		Players: playersToDTO(ctx, board.Players, viewPublic),
	})
}

package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	"github.com/riskibarqy/basketball-roster/internal/domain/user"
	"github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/basketball-roster/internal/platform/id"
	"github.com/riskibarqy/basketball-roster/internal/platform/logging"
	"github.com/riskibarqy/basketball-roster/internal/usecase"
)

const (
	tokenUserOne = "token-user-1"
	tokenUserTwo = "token-user-2"
)

type stubVerifier map[string]user.Principal

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teams := memory.NewTeamRepository([]team.Team{
		{ID: "T1", Name: "Hawks", LeagueID: "L1", OwnerUserID: "user-1"},
		{ID: "T2", Name: "Bulls", LeagueID: "L2", OwnerUserID: "user-1"},
		{ID: "T3", Name: "Kings", LeagueID: "L1", OwnerUserID: "user-2"},
	})
	players := memory.NewPlayerRepository(teams, []player.Player{
		{ID: "P-OTHER", FullName: "B. Jones", Height: 200, Weight: 95, Position: "Center", JerseyNumber: 12,
			TeamID: "T3", TeamName: "Kings", LeagueID: "L1", OwnerUserID: "user-2"},
	})

	roster := usecase.NewRosterService(teams, players, id.NewUUIDGenerator(), usecase.RosterOptions{}, logging.NewNop())
	scoreboard := usecase.NewScoreboardService(teams, players)
	handler := NewHandler(roster, scoreboard, logging.NewNop())
	verifier := stubVerifier{
		tokenUserOne: {UserID: "user-1"},
		tokenUserTwo: {UserID: "user-2"},
	}
	return NewRouter(handler, verifier, logging.NewNop(), nil)
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	return data
}

func errorLocations(t *testing.T, body map[string]any) []string {
	t.Helper()

	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	items, _ := errObj["errors"].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		loc, _ := m["location"].(string)
		out = append(out, loc)
	}
	return out
}

const smithPayload = `{"full_name":"A. Smith","height":190,"weight":85,"position":"Guard","jersey_number":23,"team_id":"T1"}`

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestPlayers_RequireBearerToken(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodGet, "/v1/players", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodGet, "/v1/players", "bogus", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", rec.Code)
	}
}

func TestCreatePlayer_DenormalizesTeam(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, smithPayload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data := dataObject(t, decodeBody(t, rec))
	if data["teamName"] != "Hawks" || data["leagueId"] != "L1" {
		t.Fatalf("expected denormalized Hawks/L1, got %v", data)
	}
	if data["fullName"] != "A. Smith" || data["jerseyNumber"] != float64(23) {
		t.Fatalf("unexpected player fields: %v", data)
	}
	if _, ok := data["ownerUserId"]; ok {
		t.Fatalf("owner view must not expose ownerUserId")
	}
	if id, _ := data["id"].(string); id == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreatePlayer_AcceptsJerseyZero(t *testing.T) {
	body := `{"full_name":"Zero","height":30,"weight":200,"position":"Forward","jersey_number":0,"team_id":"T2"}`
	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/players", tokenUserOne, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreatePlayer_ValidationErrorsPerField(t *testing.T) {
	body := `{"full_name":"A. Smith","height":29.99,"position":"Guard","jersey_number":10.5,"team_id":"T1"}`
	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/players", tokenUserOne, body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}

	got := errorLocations(t, decodeBody(t, rec))
	want := []string{"height", "weight", "jersey_number"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected error locations: got %v want %v", got, want)
	}
}

func TestCreatePlayer_UnknownTeam(t *testing.T) {
	body := strings.Replace(smithPayload, `"T1"`, `"T404"`, 1)
	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/players", tokenUserOne, body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreatePlayer_MalformedPayload(t *testing.T) {
	router := newTestRouter(t)

	cases := map[string]string{
		"broken json":   `{"full_name":`,
		"unknown field": `{"full_name":"A","nickname":"x"}`,
		"wrong type":    `{"height":"tall"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestListPlayers_LeagueFilterAndIsolation(t *testing.T) {
	router := newTestRouter(t)

	for _, teamID := range []string{"T1", "T2"} {
		body := strings.Replace(smithPayload, `"T1"`, `"`+teamID+`"`, 1)
		if rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, body); rec.Code != http.StatusCreated {
			t.Fatalf("seed player on %s: status %d", teamID, rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/players?league_id=L1", tokenUserOne, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, decodeBody(t, rec))
	players, _ := data["players"].([]any)
	teams, _ := data["teams"].([]any)
	if len(players) != 1 || len(teams) != 1 {
		t.Fatalf("expected 1 player and 1 team in L1, got %d/%d", len(players), len(teams))
	}
	if p := players[0].(map[string]any); p["teamId"] != "T1" {
		t.Fatalf("expected T1 player, got %v", p)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/players", tokenUserOne, "")
	data = dataObject(t, decodeBody(t, rec))
	players, _ = data["players"].([]any)
	if len(players) != 2 {
		t.Fatalf("expected 2 players without filter, got %d", len(players))
	}
}

func TestListPlayers_IncludesCurrentTeam(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, smithPayload); rec.Code != http.StatusCreated {
		t.Fatalf("seed player: status %d", rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/players", tokenUserOne, "")
	players, _ := dataObject(t, decodeBody(t, rec))["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	current, _ := players[0].(map[string]any)["currentTeam"].(map[string]any)
	if current["id"] != "T1" || current["name"] != "Hawks" || current["leagueId"] != "L1" {
		t.Fatalf("unexpected current team: %v", current)
	}
}

func TestListPlayers_OverlongLeagueMatchesNothing(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, smithPayload); rec.Code != http.StatusCreated {
		t.Fatalf("seed player: status %d", rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/players?league_id="+strings.Repeat("L", 200), tokenUserOne, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataObject(t, decodeBody(t, rec))
	players, _ := data["players"].([]any)
	teams, _ := data["teams"].([]any)
	if len(players) != 0 || len(teams) != 0 {
		t.Fatalf("expected empty roster, got %d/%d", len(players), len(teams))
	}
}

func TestUpdatePlayer_ForeignPlayerIsNotFoundEvenWithInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/v1/players/P-OTHER", tokenUserOne, `{"full_name":""}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPut, "/v1/players/P-OTHER", tokenUserOne, smithPayload)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestUpdatePlayer_RederivesTeamSnapshot(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, smithPayload)
	playerID, _ := dataObject(t, decodeBody(t, rec))["id"].(string)

	body := strings.Replace(smithPayload, `"T1"`, `"T2"`, 1)
	rec = doRequest(t, router, http.MethodPut, "/v1/players/"+playerID, tokenUserOne, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataObject(t, decodeBody(t, rec))
	if data["teamName"] != "Bulls" || data["leagueId"] != "L2" {
		t.Fatalf("expected Bulls/L2 after update, got %v", data)
	}

	rec = doRequest(t, router, http.MethodPut, "/v1/players/"+playerID, tokenUserOne, `{"full_name":"x"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for own player with invalid body, got %d", rec.Code)
	}
}

func TestDeletePlayer_OwnerScopedAndIdempotentTarget(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, smithPayload)
	playerID, _ := dataObject(t, decodeBody(t, rec))["id"].(string)

	if rec := doRequest(t, router, http.MethodDelete, "/v1/players/"+playerID, tokenUserTwo, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting another user's player, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodDelete, "/v1/players/"+playerID, tokenUserOne, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if msg := dataObject(t, decodeBody(t, rec))["message"]; msg != "Player deleted successfully." {
		t.Fatalf("unexpected message: %v", msg)
	}

	if rec := doRequest(t, router, http.MethodDelete, "/v1/players/"+playerID, tokenUserOne, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodGet, "/v1/players/"+playerID, tokenUserOne, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 reading deleted player, got %d", rec.Code)
	}
}

func TestScoreboard_RenderTargets(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/v1/players", tokenUserOne, smithPayload)

	rec := doRequest(t, router, http.MethodGet, "/v1/scoreboard", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, decodeBody(t, rec))
	players, _ := data["players"].([]any)
	teams, _ := data["teams"].([]any)
	if len(players) != 2 || len(teams) != 3 {
		t.Fatalf("expected every owner's records, got %d players %d teams", len(players), len(teams))
	}
	for _, item := range players {
		p := item.(map[string]any)
		if _, ok := p["ownerUserId"]; ok {
			t.Fatalf("public scoreboard must omit ownerUserId: %v", p)
		}
		if _, ok := p["createdAt"]; ok {
			t.Fatalf("public scoreboard must omit timestamps: %v", p)
		}
	}

	if rec := doRequest(t, router, http.MethodGet, "/v1/admin/scoreboard", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected operator scoreboard to require auth, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/admin/scoreboard", tokenUserTwo, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data = dataObject(t, decodeBody(t, rec))
	teams, _ = data["teams"].([]any)
	for _, item := range teams {
		if owner, _ := item.(map[string]any)["ownerUserId"].(string); owner == "" {
			t.Fatalf("operator scoreboard must include owner ids: %v", item)
		}
	}
}

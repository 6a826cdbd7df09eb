package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/fantaleague/fantacalcio/internal/domain/user"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/memory"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
	"github.com/fantaleague/fantacalcio/internal/platform/id"
	"github.com/fantaleague/fantacalcio/internal/platform/logging"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

// staticVerifier accepts any non-empty token as the configured principal.
type staticVerifier struct {
	principal user.Principal
}

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return user.Principal{}, fmt.Errorf("%w: empty token", usecase.ErrUnauthorized)
	}

	return v.principal, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository()
	teamRepo := memory.NewTeamRepository()
	rulesRepo := memory.NewRulesRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	lineupRepo := memory.NewLineupRepository()
	eventRepo := memory.NewMatchEventRepository()
	resultRepo := memory.NewMatchResultRepository()
	rulesCache := cache.NewStore(time.Minute)
	tableCache := cache.NewStore(time.Minute)

	settlement, err := usecase.NewSettlementService(
		leagueRepo, teamRepo, lineupRepo, playerRepo, eventRepo, resultRepo, rulesRepo,
		rulesCache, tableCache, 2,
	)
	if err != nil {
		t.Fatalf("NewSettlementService: %v", err)
	}
	t.Cleanup(settlement.Close)

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, teamRepo, rulesRepo, id.NewRandomGenerator(), rulesCache),
		usecase.NewAuctionService(leagueRepo, teamRepo, playerRepo, rosterRepo),
		usecase.NewLineupService(leagueRepo, teamRepo, rosterRepo, playerRepo, lineupRepo),
		settlement,
		usecase.NewStandingsService(leagueRepo, teamRepo, resultRepo, tableCache),
		usecase.NewIngestionService(playerRepo, eventRepo),
		usecase.NewPlayerService(playerRepo),
		logging.NewNop(),
	)

	verifier := staticVerifier{principal: user.Principal{UserID: "u-test", Email: "test@example.com"}}
	server := httptest.NewServer(NewRouter(handler, verifier, logging.NewNop()))
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, server *httptest.Server, method, path, token, body string) (*http.Response, responseEnvelope) {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var envelope responseEnvelope
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	return resp, envelope
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, err := server.Client().Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}

func TestCreateLeague(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodPost, "/v1/leagues", "tok",
		`{"name":"Lega Amici","teamName":"AC Divano"}`)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, envelope = %+v", resp.StatusCode, envelope)
	}
	if envelope.APIVersion != apiVersion {
		t.Fatalf("apiVersion = %q", envelope.APIVersion)
	}

	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T", envelope.Data)
	}
	if data["name"] != "Lega Amici" {
		t.Fatalf("league name = %v", data["name"])
	}
	if data["status"] != "draft" {
		t.Fatalf("league status = %v", data["status"])
	}
	if data["adminUserId"] != "u-test" {
		t.Fatalf("admin = %v", data["adminUserId"])
	}
	if data["inviteCode"] == "" {
		t.Fatal("invite code missing")
	}
}

func TestCreateLeague_RequiresToken(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodPost, "/v1/leagues", "", `{"name":"Lega"}`)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if envelope.Error == nil || envelope.Error.Status != "UNAUTHENTICATED" {
		t.Fatalf("error = %+v", envelope.Error)
	}
}

func TestCreateLeague_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodPost, "/v1/leagues", "tok",
		`{"name":"Lega Amici","surprise":true}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("error = %+v", envelope.Error)
	}
}

func TestListPlayers_PublicWithRoleFilter(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodGet, "/v1/players?role=P", "", "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	items, ok := envelope.Data.([]any)
	if !ok {
		t.Fatalf("data is %T", envelope.Data)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded goalkeepers")
	}
	for _, raw := range items {
		item := raw.(map[string]any)
		if item["role"] != "P" {
			t.Fatalf("non-goalkeeper in filtered list: %+v", item)
		}
	}
}

func TestGetPlayer_NotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodGet, "/v1/players/p-missing", "", "")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if envelope.Error == nil || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("error = %+v", envelope.Error)
	}
}

func TestGetRules_DefaultsWithoutOverride(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodPost, "/v1/leagues", "tok", `{"name":"Lega Regole"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	leagueID := envelope.Data.(map[string]any)["id"].(string)

	resp, envelope = doJSON(t, server, http.MethodGet, "/v1/leagues/"+leagueID+"/rules", "tok", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rules status = %d", resp.StatusCode)
	}
	data := envelope.Data.(map[string]any)
	if data["baseRating"] != 6.0 {
		t.Fatalf("baseRating = %v", data["baseRating"])
	}
	if data["goalThreshold"] != 66.0 {
		t.Fatalf("goalThreshold = %v", data["goalThreshold"])
	}
}

func TestSettleMatchday_BadMatchdayPath(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, envelope := doJSON(t, server, http.MethodPost, "/v1/leagues/l-x/matchdays/zero/settle", "tok", "")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if envelope.Error == nil || envelope.Error.Errors[0].Reason != "invalidInput" {
		t.Fatalf("error = %+v", envelope.Error)
	}
}

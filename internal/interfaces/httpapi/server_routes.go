package httpapi

import "net/http"

func registerHealthRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}

// Public routes need no token: the player pool and settled league tables
// are readable by anyone holding a league link.
func registerPublicRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /v1/players", h.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", h.GetPlayer)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", h.GetStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/results", h.ListResults)
}

func registerAuthorizedRoutes(mux *http.ServeMux, h *Handler, verifier TokenVerifier) {
	authorized := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, handler))
	}

	authorized("POST /v1/leagues", h.CreateLeague)
	authorized("GET /v1/leagues", h.ListLeagues)
	authorized("GET /v1/leagues/{leagueID}", h.GetLeague)
	authorized("POST /v1/leagues/join", h.JoinLeague)
	authorized("POST /v1/leagues/{leagueID}/auction/start", h.StartAuction)
	authorized("POST /v1/leagues/{leagueID}/season/start", h.StartSeason)
	authorized("GET /v1/leagues/{leagueID}/rules", h.GetRules)
	authorized("PUT /v1/leagues/{leagueID}/rules", h.UpdateRules)

	authorized("POST /v1/leagues/{leagueID}/auction/purchases", h.BuyPlayer)
	authorized("GET /v1/teams/{teamID}/roster", h.GetRoster)

	authorized("PUT /v1/leagues/{leagueID}/lineups/{matchday}", h.SubmitLineup)
	authorized("GET /v1/teams/{teamID}/lineups/{matchday}", h.GetLineup)

	authorized("POST /v1/matchdays/{matchday}/events", h.ImportEvents)
	authorized("POST /v1/leagues/{leagueID}/matchdays/{matchday}/settle", h.SettleMatchday)
}

package httpapi

import "net/http"

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createLeagueRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, err)
		return
	}

	created, err := h.leagues.CreateLeague(ctx, toCreateLeagueInput(userID, req))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toLeagueResponse(created))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.leagues.ListLeaguesByUser(ctx, userID)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponses(items))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	item, err := h.leagues.GetLeague(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponse(item))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req joinLeagueRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, err)
		return
	}

	joined, err := h.leagues.JoinLeague(ctx, toJoinLeagueInput(userID, req))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toTeamResponse(joined))
}

func (h *Handler) StartAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartAuction")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	updated, err := h.leagues.StartAuction(ctx, userID, r.PathValue("leagueID"))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponse(updated))
}

func (h *Handler) StartSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSeason")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	updated, err := h.leagues.StartSeason(ctx, userID, r.PathValue("leagueID"))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponse(updated))
}

func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRules")
	defer span.End()

	ruleSet, err := h.leagues.GetRules(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toRuleSetPayload(ruleSet))
}

func (h *Handler) UpdateRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRules")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req ruleSetPayload
	if err := h.decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, err)
		return
	}

	updated, err := h.leagues.UpdateRules(ctx, userID, r.PathValue("leagueID"), req.toRuleSet())
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toRuleSetPayload(updated))
}

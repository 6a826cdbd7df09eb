package httpapi

import (
	"net/http"

	"github.com/fantaleague/fantacalcio/internal/usecase"
)

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	matchday, err := pathMatchday(r)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	var req submitLineupRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, err)
		return
	}

	saved, err := h.lineups.SubmitLineup(ctx, usecase.SubmitLineupInput{
		UserID:     userID,
		LeagueID:   r.PathValue("leagueID"),
		Matchday:   matchday,
		Formation:  req.Formation,
		StarterIDs: req.Starters,
		BenchIDs:   req.Bench,
	})
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLineupResponse(saved))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	if _, ok := requirePrincipal(ctx, w); !ok {
		return
	}

	matchday, err := pathMatchday(r)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	item, err := h.lineups.GetLineup(ctx, r.PathValue("teamID"), matchday)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLineupResponse(item))
}

package httpapi

import (
	"net/http"

	"github.com/fantaleague/fantacalcio/internal/usecase"
)

func (h *Handler) BuyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuyPlayer")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req buyPlayerRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, err)
		return
	}

	entry, err := h.auctions.BuyPlayer(ctx, usecase.BuyPlayerInput{
		UserID:   userID,
		LeagueID: r.PathValue("leagueID"),
		TeamID:   req.TeamID,
		PlayerID: req.PlayerID,
		Price:    req.Price,
	})
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterEntryResponse{
		TeamID:        entry.TeamID,
		PlayerID:      entry.PlayerID,
		PurchasePrice: entry.PurchasePrice,
		AcquiredAt:    entry.CreatedAt,
	})
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	if _, ok := requirePrincipal(ctx, w); !ok {
		return
	}

	items, err := h.auctions.ListRoster(ctx, r.PathValue("teamID"))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toRosterResponses(items))
}

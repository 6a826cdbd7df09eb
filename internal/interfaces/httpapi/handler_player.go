package httpapi

import (
	"net/http"

	"github.com/fantaleague/fantacalcio/internal/domain/player"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	role := player.Role(r.URL.Query().Get("role"))
	items, err := h.players.ListPlayers(ctx, role)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	out := make([]playerResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toPlayerResponse(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	item, err := h.players.GetPlayer(ctx, r.PathValue("playerID"))
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPlayerResponse(item))
}

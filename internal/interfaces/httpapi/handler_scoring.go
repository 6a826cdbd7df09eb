package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

func (h *Handler) ImportEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportEvents")
	defer span.End()

	if _, ok := requirePrincipal(ctx, w); !ok {
		return
	}

	matchday, err := pathMatchday(r)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	var req importEventsRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, err)
		return
	}

	events := make([]matchevent.Event, 0, len(req.Events))
	for _, item := range req.Events {
		events = append(events, item.toEvent(matchday))
	}

	imported, err := h.ingestion.ImportEvents(ctx, events)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importEventsResponse{Imported: imported})
}

func (h *Handler) SettleMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleMatchday")
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

	settled, err := h.settlement.SettleMatchday(ctx, userID, r.PathValue("leagueID"), matchday)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSettlementResponse(settled))
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	matchday := 0
	if raw := r.URL.Query().Get("matchday"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(ctx, w, fmt.Errorf("%w: matchday must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		matchday = parsed
	}

	results, err := h.settlement.ListResults(ctx, r.PathValue("leagueID"), matchday)
	if err != nil {
		h.respondError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toResultResponses(results))
}

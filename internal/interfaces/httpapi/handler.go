package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fantaleague/fantacalcio/internal/platform/logging"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

// Handler bundles the usecase services behind the HTTP surface.
type Handler struct {
	leagues    *usecase.LeagueService
	auctions   *usecase.AuctionService
	lineups    *usecase.LineupService
	settlement *usecase.SettlementService
	standings  *usecase.StandingsService
	ingestion  *usecase.IngestionService
	players    *usecase.PlayerService

	validate *validator.Validate
	logger   *logging.Logger
}

func NewHandler(
	leagues *usecase.LeagueService,
	auctions *usecase.AuctionService,
	lineups *usecase.LineupService,
	settlement *usecase.SettlementService,
	standings *usecase.StandingsService,
	ingestion *usecase.IngestionService,
	players *usecase.PlayerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagues:    leagues,
		auctions:   auctions,
		lineups:    lineups,
		settlement: settlement,
		standings:  standings,
		ingestion:  ingestion,
		players:    players,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
	}
}

// decodeBody parses a JSON request body strictly (unknown fields rejected)
// and runs struct validation on the result.
func (h *Handler) decodeBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// respondError hides 500 internals behind a generic message; everything
// else is surfaced to the client as-is.
func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, err error) {
	if mapError(err).HTTPStatus == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	h.logger.WarnContext(ctx, "request rejected", "error", err)
	writeError(ctx, w, err)
}

func pathMatchday(r *http.Request) (int, error) {
	matchday, err := strconv.Atoi(r.PathValue("matchday"))
	if err != nil || matchday <= 0 {
		return 0, fmt.Errorf("%w: matchday must be a positive integer", usecase.ErrInvalidInput)
	}

	return matchday, nil
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (string, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no authenticated principal", usecase.ErrUnauthorized))
		return "", false
	}

	return principal.UserID, true
}

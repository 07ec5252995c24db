package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

// RegisterTeam stores a new team captained by the caller.
func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}
	var req registerTeamRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Register(ctx, req.input(principal.UserID))
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed", "captain_id", principal.UserID, "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.logger.InfoContext(ctx, "team registered", "team_id", created.ID, "captain_id", principal.UserID)
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

// SubmitPickem replaces the caller's pick'em predictions.
func (h *Handler) SubmitPickem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPickem")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}
	var req pickemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.pickemService.Submit(ctx, principal.UserID, req.predictions())
	if err != nil {
		h.logger.WarnContext(ctx, "submit pickem failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, pickemToDTO(saved))
}

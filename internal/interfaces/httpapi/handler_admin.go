package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

func (h *Handler) ImportGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportGame")
	defer span.End()

	var req importGameRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.Import(ctx, usecase.ImportGameInput{
		MatchID:       req.MatchID,
		GameID:        req.GameID,
		RadiantTeamID: strings.TrimSpace(req.RadiantTeamID),
		DireTeamID:    strings.TrimSpace(req.DireTeamID),
		SkipFantasy:   req.SkipFantasy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import game failed", "match_id", req.MatchID, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, saveResultResponse(result))
}

func (h *Handler) SaveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveGame")
	defer span.End()

	var req saveGameRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bundle := game.Bundle{Game: req.Game.toDomain(req.MatchID)}
	for _, p := range req.Performances {
		bundle.Performances = append(bundle.Performances, p.toDomain())
	}
	result, err := h.saveService.SaveSafe(ctx, req.MatchID, bundle, usecase.SaveOptions{
		SkipPostProcessing: req.SkipPostProcessing,
		SkipFantasyUpdates: req.SkipFantasyUpdates,
		LogPrefix:          "[admin-save]",
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save game failed", "match_id", req.MatchID, "game_id", req.Game.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, saveResultResponse(result))
}

func saveResultResponse(result usecase.SaveResult) batchResponse {
	switch {
	case result.Skipped:
		return batchResponse{
			Success: false,
			Message: fmt.Sprintf("Match %s does not exist, game %s was not saved", result.MatchID, result.GameID),
			Results: result,
		}
	case result.Failed():
		return batchResponse{
			Success: true,
			Message: fmt.Sprintf("Game %s saved, some post-save steps failed", result.GameID),
			Results: result,
		}
	default:
		return batchResponse{
			Success: true,
			Message: fmt.Sprintf("Game %s saved", result.GameID),
			Results: result,
		}
	}
}

func (h *Handler) RecalculateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateMatch")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	result, err := h.scoringService.Recalculate(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	groups, err := h.scoringService.RecomputeStandings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute standings failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		items = append(items, groupToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, batchResponse{
		Success: true,
		Message: fmt.Sprintf("Match %s recalculated", matchID),
		Results: map[string]any{
			"match":  matchResultToDTO(matchID, result),
			"groups": items,
		},
	})
}

func (h *Handler) RecalculateStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateStats")
	defer span.End()

	run, err := h.jobOrchestrator.RunStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate stats failed", "run_id", run.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, batchResponse{
		Success: true,
		Message: "Tournament, player and team statistics recalculated",
		Results: jobRunToDTO(run),
	})
}

func (h *Handler) RecalculateFantasy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateFantasy")
	defer span.End()

	run, err := h.jobOrchestrator.RunFantasy(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate fantasy failed", "run_id", run.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, batchResponse{
		Success: true,
		Message: "Fantasy scores and leaderboard recalculated",
		Results: jobRunToDTO(run),
	})
}

func (h *Handler) ReprocessMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReprocessMatches")
	defer span.End()

	var req reprocessRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reprocessService.Reprocess(ctx, req.options())
	if err != nil {
		h.logger.ErrorContext(ctx, "reprocess matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	message := fmt.Sprintf("Reprocessed %d of %d games, %d skipped, %d errors",
		result.Succeeded, result.Total, result.Skipped, result.Errored)
	if req.DryRun {
		message = "Dry run: " + message
	}
	writeSuccess(ctx, w, http.StatusOK, batchResponse{
		Success: result.Errored == 0,
		Message: message,
		Results: result,
	})
}

func (h *Handler) ExportPickems(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportPickems")
	defer span.End()

	body, err := h.pickemService.ExportCSV(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export pickems failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, usecase.ExportFileName(time.Now().UTC())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) PublishPickemSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishPickemSheet")
	defer span.End()

	rows, err := h.pickemService.PublishToSheet(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "publish pickem sheet failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, batchResponse{
		Success: true,
		Message: fmt.Sprintf("Published %d pick'em rows", rows),
		Results: map[string]int{"rows": rows},
	})
}

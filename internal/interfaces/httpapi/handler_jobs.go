package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

const defaultJobRunsLimit = 50

func (h *Handler) EnqueueJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnqueueJob")
	defer span.End()

	var req enqueueJobRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var reprocess *usecase.ReprocessOptions
	if req.Reprocess != nil {
		opts := req.Reprocess.options()
		reprocess = &opts
	}
	job, err := h.jobOrchestrator.Enqueue(ctx, req.Type, reprocess)
	if err != nil {
		h.logger.WarnContext(ctx, "enqueue job failed", "type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusAccepted, job)
}

func (h *Handler) ListJobRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobRuns")
	defer span.End()

	limit, err := queryLimit(r, defaultJobRunsLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	runs, err := h.jobOrchestrator.ListRuns(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list job runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]jobRunDTO, 0, len(runs))
	for _, run := range runs {
		items = append(items, jobRunToDTO(run))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RunStatsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunStatsJob")
	defer span.End()

	run, err := h.jobOrchestrator.RunStats(ctx)
	h.writeJobRun(w, r.WithContext(ctx), "stats", run, err)
}

func (h *Handler) RunFantasyJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFantasyJob")
	defer span.End()

	run, err := h.jobOrchestrator.RunFantasy(ctx)
	h.writeJobRun(w, r.WithContext(ctx), "fantasy", run, err)
}

func (h *Handler) writeJobRun(w http.ResponseWriter, r *http.Request, name string, run jobrun.Run, err error) {
	ctx := r.Context()
	if err != nil {
		h.logger.WarnContext(ctx, "internal job failed", "job", name, "run_id", run.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, batchResponse{
		Success: true,
		Message: fmt.Sprintf("Job %s completed", name),
		Results: jobRunToDTO(run),
	})
}

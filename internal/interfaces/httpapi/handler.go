package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

type Handler struct {
	teamService      *usecase.TeamService
	statsService     *usecase.StatsService
	fantasyService   *usecase.FantasyService
	importService    *usecase.GameImportService
	saveService      *usecase.GameSaveService
	scoringService   *usecase.MatchScoringService
	reprocessService *usecase.ReprocessService
	jobOrchestrator  *usecase.JobOrchestratorService
	pickemService    *usecase.PickemService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	statsService *usecase.StatsService,
	fantasyService *usecase.FantasyService,
	importService *usecase.GameImportService,
	saveService *usecase.GameSaveService,
	scoringService *usecase.MatchScoringService,
	reprocessService *usecase.ReprocessService,
	jobOrchestrator *usecase.JobOrchestratorService,
	pickemService *usecase.PickemService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Handler{
		teamService:      teamService,
		statsService:     statsService,
		fantasyService:   fantasyService,
		importService:    importService,
		saveService:      saveService,
		scoringService:   scoringService,
		reprocessService: reprocessService,
		jobOrchestrator:  jobOrchestrator,
		pickemService:    pickemService,
		logger:           logger.Named("http"),
		validator:        validate,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

type ImportGameInput struct {
	MatchID       string
	GameID        string
	RadiantTeamID string
	DireTeamID    string
	SkipFantasy   bool
}

// GameImportService pulls one provider match into a tournament match.
type GameImportService struct {
	ingestion *IngestionService
	saver     *GameSaveService
	logger    *logging.Logger
}

func NewGameImportService(ingestion *IngestionService, saver *GameSaveService, logger *logging.Logger) *GameImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameImportService{ingestion: ingestion, saver: saver, logger: logger.Named("import")}
}

// Import fetches, transforms and saves a game. Practice games and invalid
// data are rejected with a *ValidationError before anything is written.
func (s *GameImportService) Import(ctx context.Context, input ImportGameInput) (SaveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameImportService.Import")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.GameID = strings.TrimSpace(input.GameID)
	if input.MatchID == "" || input.GameID == "" {
		return SaveResult{}, fmt.Errorf("%w: matchId and gameId are required", ErrInvalidInput)
	}

	payload, err := s.ingestion.FetchMatch(ctx, input.GameID)
	if err != nil {
		return SaveResult{}, err
	}
	bundle, err := s.ingestion.Transform(ctx, payload, TeamMapping{
		RadiantTeamID: input.RadiantTeamID,
		DireTeamID:    input.DireTeamID,
	})
	if err != nil {
		return SaveResult{}, err
	}
	if !bundle.Game.IsParsed {
		s.logger.InfoContext(ctx, "importing unparsed game", "game_id", input.GameID)
	}

	return s.saver.SaveSafe(ctx, input.MatchID, bundle, SaveOptions{
		SkipFantasyUpdates: input.SkipFantasy,
		LogPrefix:          "[import]",
	})
}

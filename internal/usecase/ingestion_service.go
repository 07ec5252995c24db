package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

// MatchProvider is the match data provider (OpenDota).
type MatchProvider interface {
	FetchMatch(ctx context.Context, providerMatchID string) (ExternalMatch, error)
	RequestParse(ctx context.Context, providerMatchID string) error
}

type ExternalMatch struct {
	MatchID               int64
	RadiantWin            bool
	Duration              int
	StartTime             int64
	FirstBloodTime        int
	RadiantName           string
	DireName              string
	RadiantTowerStatus    *int
	DireTowerStatus       *int
	RadiantBarracksStatus *int
	DireBarracksStatus    *int
	// Version is only present once the replay has been parsed.
	Version   *int
	PicksBans []ExternalPickBan
	Players   []ExternalPlayer
}

type ExternalPickBan struct {
	IsPick bool
	HeroID int
	Team   int
	Order  int
}

type ExternalPlayer struct {
	AccountID         int64
	PlayerSlot        int
	HeroID            int
	Kills             int
	Deaths            int
	Assists           int
	GoldPerMin        int
	XPPerMin          int
	LastHits          int
	Denies            int
	NetWorth          int
	HeroDamage        int
	TowerDamage       int
	HeroHealing       int
	Gold              int
	GoldSpent         int
	TotalGold         int
	ObsPlaced         int
	SenPlaced         int
	ObserverKills     int
	SentryKills       int
	CourierKills      int
	CampsStacked      int
	RunePickups       int
	RoshanKills       int
	BuybackCount      int
	FirstBloodClaimed bool
	KillStreaks       map[string]int
	MultiKills        map[string]int
	// HasParsedLogs is set when lane_pos, obs_log or purchase_log is present.
	HasParsedLogs bool
}

func (p ExternalPlayer) IsRadiant() bool {
	return p.PlayerSlot < 128
}

func (p ExternalPlayer) accountKey() string {
	return strconv.FormatInt(p.AccountID, 10)
}

// TeamMapping is the optional manual side assignment sent with an import.
type TeamMapping struct {
	RadiantTeamID string
	DireTeamID    string
}

type IngestionService struct {
	provider MatchProvider
	teamRepo team.Repository
	logger   *logging.Logger
}

func NewIngestionService(provider MatchProvider, teamRepo team.Repository, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider: provider,
		teamRepo: teamRepo,
		logger:   logger.Named("ingestion"),
	}
}

func (s *IngestionService) FetchMatch(ctx context.Context, providerMatchID string) (ExternalMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.FetchMatch")
	defer span.End()

	providerMatchID = strings.TrimSpace(providerMatchID)
	if _, err := strconv.ParseInt(providerMatchID, 10, 64); err != nil {
		return ExternalMatch{}, fmt.Errorf("%w: provider match id must be numeric, got %q", ErrInvalidInput, providerMatchID)
	}
	if s.provider == nil {
		return ExternalMatch{}, fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}

	payload, err := s.provider.FetchMatch(ctx, providerMatchID)
	if err != nil {
		return ExternalMatch{}, fmt.Errorf("fetch provider match id=%s: %w", providerMatchID, err)
	}
	return payload, nil
}

func (s *IngestionService) RequestParse(ctx context.Context, providerMatchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RequestParse")
	defer span.End()

	if s.provider == nil {
		return fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}
	if err := s.provider.RequestParse(ctx, strings.TrimSpace(providerMatchID)); err != nil {
		return fmt.Errorf("request parse id=%s: %w", providerMatchID, err)
	}
	return nil
}

// Transform resolves both sides against the current rosters and converts the
// provider payload into a game and its performances.
func (s *IngestionService) Transform(ctx context.Context, payload ExternalMatch, mapping TeamMapping) (game.Bundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Transform")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return game.Bundle{}, fmt.Errorf("list teams: %w", err)
	}
	return transformMatch(ctx, s.logger, payload, teams, mapping)
}

// IsParsed reports whether the provider has parsed the replay.
func IsParsed(payload ExternalMatch) bool {
	if payload.Version != nil {
		return true
	}
	for _, p := range payload.Players {
		if p.HasParsedLogs {
			return true
		}
	}
	return false
}

func transformMatch(ctx context.Context, logger *logging.Logger, payload ExternalMatch, teams []team.Team, mapping TeamMapping) (game.Bundle, error) {
	if payload.MatchID <= 0 {
		return game.Bundle{}, fmt.Errorf("%w: provider payload has no match id", ErrInvalidInput)
	}

	var radiantAccounts, direAccounts []string
	for _, p := range payload.Players {
		if p.IsRadiant() {
			radiantAccounts = append(radiantAccounts, p.accountKey())
		} else {
			direAccounts = append(direAccounts, p.accountKey())
		}
	}

	radiant, err := resolveSide(ctx, logger, "radiant", radiantAccounts, mapping.RadiantTeamID, payload.RadiantName, teams)
	if err != nil {
		return game.Bundle{}, err
	}
	dire, err := resolveSide(ctx, logger, "dire", direAccounts, mapping.DireTeamID, payload.DireName, teams)
	if err != nil {
		return game.Bundle{}, err
	}
	if radiant.ID == dire.ID {
		return game.Bundle{}, fmt.Errorf("%w: radiant and dire both resolved to team %s", ErrInvalidInput, radiant.ID)
	}

	g := game.Game{
		ID:             strconv.FormatInt(payload.MatchID, 10),
		RadiantWin:     payload.RadiantWin,
		Duration:       payload.Duration,
		StartTime:      payload.StartTime,
		FirstBloodTime: payload.FirstBloodTime,
		RadiantTeam:    game.TeamSnapshot{ID: radiant.ID, Name: radiant.DisplayName()},
		DireTeam:       game.TeamSnapshot{ID: dire.ID, Name: dire.DisplayName()},
		IsParsed:       IsParsed(payload),
	}
	for _, pb := range payload.PicksBans {
		g.PicksBans = append(g.PicksBans, game.PickBan{IsPick: pb.IsPick, HeroID: pb.HeroID, Team: pb.Team, Order: pb.Order})
	}

	rosterByAccount := make(map[string]team.Player)
	for _, t := range teams {
		for _, pl := range t.Players {
			if pl.SteamID32 == "" {
				continue
			}
			if pl.TeamID == "" {
				pl.TeamID = t.ID
			}
			rosterByAccount[pl.SteamID32] = pl
		}
	}

	roshanBySide := map[bool]int{}
	for _, p := range payload.Players {
		roshanBySide[p.IsRadiant()] += p.RoshanKills
	}

	perfs := make([]game.Performance, 0, len(payload.Players))
	for _, p := range payload.Players {
		isRadiant := p.IsRadiant()
		side, enemyBarracks, enemyTowers := dire, payload.RadiantBarracksStatus, payload.RadiantTowerStatus
		if isRadiant {
			side, enemyBarracks, enemyTowers = radiant, payload.DireBarracksStatus, payload.DireTowerStatus
		}
		won := isRadiant == payload.RadiantWin

		account := p.accountKey()
		playerID := game.PlaceholderPlayerID(account)
		var role team.Role
		if rostered, ok := rosterByAccount[account]; ok {
			playerID = rostered.ID
			role = rostered.Role
		}

		in := fantasy.PointsInput{
			Role:            role,
			Kills:           p.Kills,
			Deaths:          p.Deaths,
			Assists:         p.Assists,
			Gold:            p.Gold,
			TeamWon:         won,
			TeamRoshanKills: roshanBySide[isRadiant],
		}
		if enemyBarracks != nil && enemyTowers != nil {
			in.HasStructureData = true
			in.EnemyBarracksBits = *enemyBarracks
			in.EnemyTowerBits = *enemyTowers
		}

		perfs = append(perfs, game.Performance{
			PlayerID:          playerID,
			TeamID:            side.ID,
			AccountID:         p.AccountID,
			HeroID:            p.HeroID,
			Kills:             p.Kills,
			Deaths:            p.Deaths,
			Assists:           p.Assists,
			GPM:               p.GoldPerMin,
			XPM:               p.XPPerMin,
			LastHits:          p.LastHits,
			Denies:            p.Denies,
			NetWorth:          p.NetWorth,
			HeroDamage:        p.HeroDamage,
			TowerDamage:       p.TowerDamage,
			HeroHealing:       p.HeroHealing,
			ObsPlaced:         p.ObsPlaced,
			SenPlaced:         p.SenPlaced,
			ObserverKills:     p.ObserverKills,
			SentryKills:       p.SentryKills,
			CourierKills:      p.CourierKills,
			FirstBloodClaimed: p.FirstBloodClaimed,
			HighestKillStreak: highestKey(p.KillStreaks),
			BuybackCount:      p.BuybackCount,
			DoubleKills:       p.MultiKills["2"],
			TripleKills:       p.MultiKills["3"],
			UltraKills:        p.MultiKills["4"],
			Rampages:          p.MultiKills["5"],
			CampsStacked:      p.CampsStacked,
			RunesPickedUp:     p.RunePickups,
			RoshanKills:       p.RoshanKills,
			GoldSpent:         p.GoldSpent,
			TotalGold:         p.TotalGold,
			Win:               won,
			FantasyPoints:     fantasy.Points(in),
		})
	}

	return game.Bundle{Game: g, Performances: perfs}, nil
}

// resolveSide picks the team whose roster overlaps most with the side's
// accounts, then the manual mapping, then a case-insensitive name match.
func resolveSide(
	ctx context.Context,
	logger *logging.Logger,
	side string,
	accounts []string,
	mappedTeamID string,
	providerName string,
	teams []team.Team,
) (team.Team, error) {
	type overlap struct {
		team  team.Team
		count int
	}
	scores := make([]overlap, 0, len(teams))
	for _, t := range teams {
		roster := t.AccountSet()
		count := 0
		for _, a := range accounts {
			if _, ok := roster[a]; ok {
				count++
			}
		}
		scores = append(scores, overlap{team: t, count: count})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].count > scores[j].count })

	switch {
	case len(scores) > 0 && scores[0].count > 0 && (len(scores) == 1 || scores[1].count < scores[0].count):
		return scores[0].team, nil
	case len(scores) > 1 && scores[0].count > 0:
		logger.WarnContext(ctx, "roster overlap is tied",
			"side", side,
			"team_a", scores[0].team.ID,
			"team_b", scores[1].team.ID,
			"overlap", scores[0].count,
		)
	default:
		logger.WarnContext(ctx, "no roster overlap", "side", side, "provider_name", providerName)
	}

	if mappedTeamID = strings.TrimSpace(mappedTeamID); mappedTeamID != "" {
		for _, t := range teams {
			if t.ID == mappedTeamID {
				return t, nil
			}
		}
		logger.WarnContext(ctx, "manual team mapping does not exist", "side", side, "team_id", mappedTeamID)
	}

	if name := strings.ToLower(strings.TrimSpace(providerName)); name != "" {
		for _, t := range teams {
			if strings.ToLower(strings.TrimSpace(t.Name)) == name {
				return t, nil
			}
		}
	}

	return team.Team{}, fmt.Errorf("%w: tournament team not found for %s side (name=%q); this might be a scrim or practice game", ErrNotFound, side, providerName)
}

func highestKey(counts map[string]int) int {
	highest := 0
	for key := range counts {
		if n, err := strconv.Atoi(key); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

package httpapi

import (
	"sort"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

type importGameRequest struct {
	MatchID       string `json:"matchId" validate:"required"`
	GameID        string `json:"gameId" validate:"required,numeric"`
	RadiantTeamID string `json:"radiantTeamId"`
	DireTeamID    string `json:"direTeamId"`
	SkipFantasy   bool   `json:"skipFantasy"`
}

type saveGameRequest struct {
	MatchID            string           `json:"matchId" validate:"required"`
	Game               gameDTO          `json:"game"`
	Performances       []performanceDTO `json:"performances"`
	SkipPostProcessing bool             `json:"skipPostProcessing"`
	SkipFantasyUpdates bool             `json:"skipFantasyUpdates"`
}

type reprocessRequest struct {
	MatchIDs                  []string `json:"matchIds" validate:"omitempty,dive,required"`
	ForceReprocess            bool     `json:"forceReprocess"`
	RequestParsingForUnparsed bool     `json:"requestParsingForUnparsed"`
	UpdateFantasyScores       bool     `json:"updateFantasyScores"`
	DryRun                    bool     `json:"dryRun"`
}

func (r reprocessRequest) options() usecase.ReprocessOptions {
	return usecase.ReprocessOptions{
		GameIDs:                   r.MatchIDs,
		ForceReprocess:            r.ForceReprocess,
		RequestParsingForUnparsed: r.RequestParsingForUnparsed,
		UpdateFantasyScores:       r.UpdateFantasyScores,
		DryRun:                    r.DryRun,
	}
}

type enqueueJobRequest struct {
	Type      string            `json:"type" validate:"required,oneof=stats fantasy standings reprocess"`
	Reprocess *reprocessRequest `json:"reprocess"`
}

type registerTeamRequest struct {
	Name    string                  `json:"name" validate:"required,min=3,max=64"`
	Tag     string                  `json:"tag" validate:"required,min=2,max=4"`
	Players []registerPlayerRequest `json:"players" validate:"required,len=5,unique=Role,unique=SteamID32,dive"`
}

type registerPlayerRequest struct {
	Nickname  string `json:"nickname" validate:"required,min=2"`
	Role      string `json:"role" validate:"required,oneof='Carry' 'Mid' 'Offlane' 'Soft Support' 'Hard Support'"`
	SteamID32 string `json:"steamId32" validate:"required,numeric"`
	SteamID   string `json:"steamId"`
	MMR       int    `json:"mmr" validate:"min=1"`
}

func (r registerTeamRequest) input(captainID string) usecase.RegisterTeamInput {
	players := make([]team.Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, team.Player{
			Nickname:  p.Nickname,
			Role:      team.Role(p.Role),
			SteamID32: p.SteamID32,
			SteamID:   p.SteamID,
			MMR:       p.MMR,
		})
	}
	return usecase.RegisterTeamInput{CaptainID: captainID, Name: r.Name, Tag: r.Tag, Players: players}
}

// pickemRequest carries team ids per placement bucket.
type pickemRequest struct {
	Champion              string   `json:"champion"`
	RunnerUp              string   `json:"runnerUp"`
	ThirdPlace            string   `json:"thirdPlace"`
	FourthPlace           string   `json:"fourthPlace"`
	FifthToSixth          []string `json:"fifthToSixth" validate:"max=2"`
	SeventhToEighth       []string `json:"seventhToEighth" validate:"max=2"`
	NinthToTwelfth        []string `json:"ninthToTwelfth" validate:"max=4"`
	ThirteenthToSixteenth []string `json:"thirteenthToSixteenth" validate:"max=4"`
	Pool                  []string `json:"pool"`
}

func (r pickemRequest) predictions() pickem.Predictions {
	return pickem.Predictions{
		Champion:              r.Champion,
		RunnerUp:              r.RunnerUp,
		ThirdPlace:            r.ThirdPlace,
		FourthPlace:           r.FourthPlace,
		FifthToSixth:          r.FifthToSixth,
		SeventhToEighth:       r.SeventhToEighth,
		NinthToTwelfth:        r.NinthToTwelfth,
		ThirteenthToSixteenth: r.ThirteenthToSixteenth,
		Pool:                  r.Pool,
	}
}

type pickemDTO struct {
	UserID      string        `json:"userId"`
	Predictions pickemRequest `json:"predictions"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

func pickemToDTO(p pickem.Pickem) pickemDTO {
	pred := p.Predictions
	return pickemDTO{
		UserID: p.UserID,
		Predictions: pickemRequest{
			Champion:              pred.Champion,
			RunnerUp:              pred.RunnerUp,
			ThirdPlace:            pred.ThirdPlace,
			FourthPlace:           pred.FourthPlace,
			FifthToSixth:          pred.FifthToSixth,
			SeventhToEighth:       pred.SeventhToEighth,
			NinthToTwelfth:        pred.NinthToTwelfth,
			ThirteenthToSixteenth: pred.ThirteenthToSixteenth,
			Pool:                  pred.Pool,
		},
		LastUpdated: p.LastUpdated,
	}
}

// batchResponse is the body of every admin batch endpoint.
type batchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Results any    `json:"results"`
}

type playerDTO struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Role      string `json:"role"`
	SteamID32 string `json:"steamId32,omitempty"`
	MMR       int    `json:"mmr,omitempty"`
	TeamID    string `json:"teamId"`
}

type teamDTO struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Tag     string      `json:"tag,omitempty"`
	Status  string      `json:"status,omitempty"`
	Players []playerDTO `json:"players"`
}

func teamToDTO(t team.Team) teamDTO {
	out := teamDTO{ID: t.ID, Name: t.Name, Tag: t.Tag, Status: t.Status, Players: make([]playerDTO, 0, len(t.Players))}
	for _, p := range t.Players {
		out.Players = append(out.Players, playerDTO{
			ID:        p.ID,
			Nickname:  p.Nickname,
			Role:      string(p.Role),
			SteamID32: p.SteamID32,
			MMR:       p.MMR,
			TeamID:    p.TeamID,
		})
	}
	return out
}

type teamRefDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type matchDTO struct {
	ID           string     `json:"id"`
	TeamA        teamRefDTO `json:"teamA"`
	TeamB        teamRefDTO `json:"teamB"`
	Status       string     `json:"status"`
	GroupID      string     `json:"groupId,omitempty"`
	RoundID      string     `json:"roundId,omitempty"`
	Round        string     `json:"round,omitempty"`
	BracketType  string     `json:"bracketType,omitempty"`
	PlayoffRound int        `json:"playoffRound,omitempty"`
	SeriesFormat string     `json:"seriesFormat"`
	GameIDs      []string   `json:"game_ids"`
	WinnerID     string     `json:"winnerId,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:           m.ID,
		TeamA:        teamRefDTO(m.TeamA),
		TeamB:        teamRefDTO(m.TeamB),
		Status:       string(m.Status),
		GroupID:      m.GroupID,
		RoundID:      m.RoundID,
		Round:        m.Round,
		BracketType:  m.BracketType,
		PlayoffRound: m.PlayoffRound,
		SeriesFormat: string(m.EffectiveFormat()),
		GameIDs:      append([]string{}, m.GameIDs...),
		WinnerID:     m.WinnerID,
		CompletedAt:  m.CompletedAt,
	}
	if !m.ScheduledFor.IsZero() {
		scheduled := m.ScheduledFor.UTC()
		out.ScheduledFor = &scheduled
	}
	return out
}

type teamSnapshotDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pickBanDTO struct {
	IsPick bool `json:"is_pick"`
	HeroID int  `json:"hero_id"`
	Team   int  `json:"team"`
	Order  int  `json:"order"`
}

type gameDTO struct {
	ID             string          `json:"id"`
	RadiantWin     bool            `json:"radiant_win"`
	Duration       int             `json:"duration"`
	StartTime      int64           `json:"start_time"`
	FirstBloodTime int             `json:"firstBloodTime"`
	PicksBans      []pickBanDTO    `json:"picks_bans"`
	RadiantTeam    teamSnapshotDTO `json:"radiant_team"`
	DireTeam       teamSnapshotDTO `json:"dire_team"`
	IsParsed       bool            `json:"isParsed"`
}

func gameToDTO(g game.Game) gameDTO {
	out := gameDTO{
		ID:             g.ID,
		RadiantWin:     g.RadiantWin,
		Duration:       g.Duration,
		StartTime:      g.StartTime,
		FirstBloodTime: g.FirstBloodTime,
		PicksBans:      make([]pickBanDTO, 0, len(g.PicksBans)),
		RadiantTeam:    teamSnapshotDTO(g.RadiantTeam),
		DireTeam:       teamSnapshotDTO(g.DireTeam),
		IsParsed:       g.IsParsed,
	}
	for _, pb := range g.PicksBans {
		out.PicksBans = append(out.PicksBans, pickBanDTO(pb))
	}
	return out
}

func (d gameDTO) toDomain(matchID string) game.Game {
	out := game.Game{
		ID:             d.ID,
		MatchID:        matchID,
		RadiantWin:     d.RadiantWin,
		Duration:       d.Duration,
		StartTime:      d.StartTime,
		FirstBloodTime: d.FirstBloodTime,
		RadiantTeam:    game.TeamSnapshot(d.RadiantTeam),
		DireTeam:       game.TeamSnapshot(d.DireTeam),
		IsParsed:       d.IsParsed,
	}
	for _, pb := range d.PicksBans {
		out.PicksBans = append(out.PicksBans, game.PickBan(pb))
	}
	return out
}

type performanceDTO struct {
	PlayerID          string  `json:"playerId"`
	TeamID            string  `json:"teamId"`
	AccountID         int64   `json:"accountId"`
	HeroID            int     `json:"heroId"`
	Kills             int     `json:"kills"`
	Deaths            int     `json:"deaths"`
	Assists           int     `json:"assists"`
	GPM               int     `json:"gpm"`
	XPM               int     `json:"xpm"`
	LastHits          int     `json:"lastHits"`
	Denies            int     `json:"denies"`
	NetWorth          int     `json:"netWorth"`
	HeroDamage        int     `json:"heroDamage"`
	TowerDamage       int     `json:"towerDamage"`
	HeroHealing       int     `json:"heroHealing"`
	ObsPlaced         int     `json:"obsPlaced"`
	SenPlaced         int     `json:"senPlaced"`
	ObserverKills     int     `json:"observerKills"`
	SentryKills       int     `json:"sentryKills"`
	CourierKills      int     `json:"courierKills"`
	FirstBloodClaimed bool    `json:"firstBloodClaimed"`
	HighestKillStreak int     `json:"highestKillStreak"`
	BuybackCount      int     `json:"buybackCount"`
	DoubleKills       int     `json:"doubleKills"`
	TripleKills       int     `json:"tripleKills"`
	UltraKills        int     `json:"ultraKills"`
	Rampages          int     `json:"rampages"`
	CampsStacked      int     `json:"campsStacked"`
	RunesPickedUp     int     `json:"runesPickedUp"`
	RoshanKills       int     `json:"roshanKills"`
	GoldSpent         int     `json:"goldSpent"`
	TotalGold         int     `json:"totalGold"`
	Win               bool    `json:"win"`
	FantasyPoints     float64 `json:"fantasyPoints"`
}

func performanceToDTO(p game.Performance) performanceDTO {
	return performanceDTO(p)
}

func (d performanceDTO) toDomain() game.Performance {
	return game.Performance(d)
}

type gameDetailsDTO struct {
	Game         gameDTO          `json:"game"`
	Performances []performanceDTO `json:"performances"`
}

type matchDetailsDTO struct {
	Match matchDTO         `json:"match"`
	Games []gameDetailsDTO `json:"games"`
}

func matchDetailsToDTO(details usecase.MatchDetails) matchDetailsDTO {
	out := matchDetailsDTO{Match: matchToDTO(details.Match), Games: make([]gameDetailsDTO, 0, len(details.Games))}
	for _, g := range details.Games {
		item := gameDetailsDTO{Game: gameToDTO(g.Game), Performances: make([]performanceDTO, 0, len(g.Performances))}
		for _, p := range g.Performances {
			item.Performances = append(item.Performances, performanceToDTO(p))
		}
		out.Games = append(out.Games, item)
	}
	return out
}

type standingDTO struct {
	TeamID        string            `json:"teamId"`
	TeamName      string            `json:"teamName"`
	Points        int               `json:"points"`
	Wins          int               `json:"wins"`
	Losses        int               `json:"losses"`
	Draws         int               `json:"draws"`
	MatchesPlayed int               `json:"matchesPlayed"`
	HeadToHead    map[string]string `json:"headToHead"`
}

type groupDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Standings []standingDTO `json:"standings"`
}

// groupToDTO lists standings ordered by points, then wins, then team id.
func groupToDTO(g match.Group) groupDTO {
	out := groupDTO{ID: g.ID, Name: g.Name, Standings: make([]standingDTO, 0, len(g.Standings))}
	for _, row := range g.Standings {
		h2h := make(map[string]string, len(row.HeadToHead))
		for opponent, result := range row.HeadToHead {
			h2h[opponent] = string(result)
		}
		out.Standings = append(out.Standings, standingDTO{
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Points:        row.Points,
			Wins:          row.Wins,
			Losses:        row.Losses,
			Draws:         row.Draws,
			MatchesPlayed: row.MatchesPlayed,
			HeadToHead:    h2h,
		})
	}
	sort.Slice(out.Standings, func(i, j int) bool {
		a, b := out.Standings[i], out.Standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.TeamID < b.TeamID
	})
	return out
}

type matchResultDTO struct {
	MatchID     string     `json:"matchId"`
	TeamAScore  int        `json:"teamAScore"`
	TeamBScore  int        `json:"teamBScore"`
	Status      string     `json:"status"`
	WinnerID    string     `json:"winnerId,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func matchResultToDTO(matchID string, r match.Result) matchResultDTO {
	return matchResultDTO{
		MatchID:     matchID,
		TeamAScore:  r.TeamAScore,
		TeamBScore:  r.TeamBScore,
		Status:      string(r.Status),
		WinnerID:    r.WinnerID,
		CompletedAt: r.CompletedAt,
	}
}

type leaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"userId"`
	DisplayName  string  `json:"displayName"`
	TotalScore   float64 `json:"totalScore"`
	GamesPlayed  int     `json:"gamesPlayed"`
	AverageScore float64 `json:"averageScore"`
}

type playerLeaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	PlayerID     string  `json:"playerId"`
	Nickname     string  `json:"nickname"`
	TeamName     string  `json:"teamName"`
	AverageScore float64 `json:"averageScore"`
	TotalPoints  float64 `json:"totalPoints"`
	TotalGames   int     `json:"totalGames"`
}

type leaderboardDTO struct {
	Overall     []leaderboardEntryDTO                  `json:"overall"`
	ByRole      map[string][]playerLeaderboardEntryDTO `json:"byRole"`
	LastUpdated time.Time                              `json:"lastUpdated"`
}

func leaderboardToDTO(lb fantasy.Leaderboard) leaderboardDTO {
	out := leaderboardDTO{
		Overall:     make([]leaderboardEntryDTO, 0, len(lb.Overall)),
		ByRole:      make(map[string][]playerLeaderboardEntryDTO, len(lb.ByRole)),
		LastUpdated: lb.GeneratedAt.UTC(),
	}
	for _, entry := range lb.Overall {
		out.Overall = append(out.Overall, leaderboardEntryDTO{
			Rank:         entry.Rank,
			UserID:       entry.UserID,
			DisplayName:  entry.DisplayName,
			TotalScore:   entry.TotalScore,
			GamesPlayed:  entry.PlayerGames,
			AverageScore: entry.AverageScore,
		})
	}
	for role, entries := range lb.ByRole {
		items := make([]playerLeaderboardEntryDTO, 0, len(entries))
		for _, entry := range entries {
			items = append(items, playerLeaderboardEntryDTO(entry))
		}
		out.ByRole[string(role)] = items
	}
	return out
}

type jobRunDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Summary    any        `json:"summary,omitempty"`
	Error      string     `json:"error,omitempty"`
	TraceID    string     `json:"traceId,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func jobRunToDTO(run jobrun.Run) jobRunDTO {
	return jobRunDTO{
		ID:         run.ID,
		Name:       run.Name,
		Status:     string(run.Status),
		Summary:    run.Summary,
		Error:      run.Error,
		TraceID:    run.TraceID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}

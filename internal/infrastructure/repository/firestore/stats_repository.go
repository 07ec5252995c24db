package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
)

// StatsRepository stores the derived tournamentStats, playerStats and
// teamStats documents.
type StatsRepository struct {
	client *firestore.Client
}

func NewStatsRepository(client *firestore.Client) *StatsRepository {
	return &StatsRepository{client: client}
}

// ReplaceAll overwrites every stats document and deletes player and team
// documents that are no longer produced. All writes land in one commit; a
// replacement larger than one batch is refused and the stored documents stay
// as they were.
func (r *StatsRepository) ReplaceAll(ctx context.Context, tournament stats.TournamentStats, players []stats.PlayerStats, teams []stats.TeamStats) error {
	playerCol := r.client.Collection(colPlayerStats)
	teamCol := r.client.Collection(colTeamStats)

	stalePlayers, err := listRefs(ctx, playerCol)
	if err != nil {
		return fmt.Errorf("list player stats: %w", err)
	}
	staleTeams, err := listRefs(ctx, teamCol)
	if err != nil {
		return fmt.Errorf("list team stats: %w", err)
	}

	w := newBatchWriter(r.client)
	w.Set(r.client.Collection(colTournamentStats).Doc(docTournamentStats), tournamentStatsToDoc(tournament))

	keepPlayers := make(map[string]struct{}, len(players))
	for _, p := range players {
		keepPlayers[p.PlayerID] = struct{}{}
		w.Set(playerCol.Doc(p.PlayerID), playerStatsToDoc(p))
	}
	keepTeams := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		keepTeams[t.TeamID] = struct{}{}
		w.Set(teamCol.Doc(t.TeamID), teamStatsToDoc(t))
	}
	for _, ref := range stalePlayers {
		if _, ok := keepPlayers[ref.ID]; !ok {
			w.Delete(ref)
		}
	}
	for _, ref := range staleTeams {
		if _, ok := keepTeams[ref.ID]; !ok {
			w.Delete(ref)
		}
	}

	if err := w.CommitAtomic(ctx); err != nil {
		return fmt.Errorf("replace stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) GetTournament(ctx context.Context) (stats.TournamentStats, bool, error) {
	var doc tournamentStatsDoc
	found, err := r.get(ctx, r.client.Collection(colTournamentStats).Doc(docTournamentStats), &doc)
	if err != nil || !found {
		return stats.TournamentStats{}, found, err
	}
	return tournamentStatsFromDoc(doc), true, nil
}

func (r *StatsRepository) GetPlayer(ctx context.Context, playerID string) (stats.PlayerStats, bool, error) {
	var doc playerStatsDoc
	found, err := r.get(ctx, r.client.Collection(colPlayerStats).Doc(playerID), &doc)
	if err != nil || !found {
		return stats.PlayerStats{}, found, err
	}
	return playerStatsFromDoc(doc), true, nil
}

func (r *StatsRepository) GetTeam(ctx context.Context, teamID string) (stats.TeamStats, bool, error) {
	var doc teamStatsDoc
	found, err := r.get(ctx, r.client.Collection(colTeamStats).Doc(teamID), &doc)
	if err != nil || !found {
		return stats.TeamStats{}, found, err
	}
	return teamStatsFromDoc(doc), true, nil
}

func (r *StatsRepository) get(ctx context.Context, ref *firestore.DocumentRef, dst any) (bool, error) {
	snap, err := ref.Get(ctx)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", ref.Path, err)
	}
	if err := snap.DataTo(dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", ref.Path, err)
	}
	return true, nil
}

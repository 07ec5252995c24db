package firestore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
)

// FantasyRepository reads fantasyLineups/{userId}/rounds/{roundId} and writes
// the recalculated totals, playerRoundStats and the current leaderboard.
type FantasyRepository struct {
	client *firestore.Client
}

func NewFantasyRepository(client *firestore.Client) *FantasyRepository {
	return &FantasyRepository{client: client}
}

func (r *FantasyRepository) ListUserLineups(ctx context.Context) ([]fantasy.UserLineups, error) {
	users, err := readAll(r.client.Collection(colFantasyLineups).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list fantasy lineups: %w", err)
	}

	out := make([]fantasy.UserLineups, 0, len(users))
	for _, userSnap := range users {
		var userData lineupUserDoc
		if err := userSnap.DataTo(&userData); err != nil {
			return nil, fmt.Errorf("decode fantasy user %s: %w", userSnap.Ref.ID, err)
		}
		item := fantasy.UserLineups{UserID: userSnap.Ref.ID, DisplayName: displayNameFromDoc(userData)}

		rounds, err := readAll(userSnap.Ref.Collection(colRounds).Documents(ctx))
		if err != nil {
			return nil, fmt.Errorf("list rounds of fantasy user %s: %w", item.UserID, err)
		}
		for _, roundSnap := range rounds {
			var roundData roundLineupDoc
			if err := roundSnap.DataTo(&roundData); err != nil {
				return nil, fmt.Errorf("decode round %s of fantasy user %s: %w", roundSnap.Ref.ID, item.UserID, err)
			}
			item.Rounds = append(item.Rounds, roundLineupFromDoc(roundSnap.Ref.ID, roundData))
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *FantasyRepository) SaveRecalculation(ctx context.Context, totals []fantasy.UserTotals, playerRounds []fantasy.PlayerRoundStats) error {
	w := newBatchWriter(r.client)
	for _, item := range playerRounds {
		ref := r.client.Collection(colPlayerRoundStats).Doc(playerRoundStatsID(item.PlayerID, item.RoundID))
		w.Set(ref, playerRoundStatsToDoc(item))
	}
	for _, item := range totals {
		w.Set(r.client.Collection(colFantasyLineups).Doc(item.UserID), userTotalsUpdate(item), firestore.MergeAll)
	}

	if _, err := w.Commit(ctx); err != nil {
		return fmt.Errorf("save fantasy recalculation: %w", err)
	}
	return nil
}

func (r *FantasyRepository) SaveLeaderboard(ctx context.Context, board fantasy.Leaderboard) error {
	if _, err := r.client.Collection(colFantasyLeaderboard).Doc(docLeaderboard).Set(ctx, leaderboardToDoc(board)); err != nil {
		return fmt.Errorf("save fantasy leaderboard: %w", err)
	}
	return nil
}

func (r *FantasyRepository) GetLeaderboard(ctx context.Context) (fantasy.Leaderboard, bool, error) {
	snap, err := r.client.Collection(colFantasyLeaderboard).Doc(docLeaderboard).Get(ctx)
	if isNotFound(err) {
		return fantasy.Leaderboard{}, false, nil
	}
	if err != nil {
		return fantasy.Leaderboard{}, false, fmt.Errorf("get fantasy leaderboard: %w", err)
	}
	var doc leaderboardDoc
	if err := snap.DataTo(&doc); err != nil {
		return fantasy.Leaderboard{}, false, fmt.Errorf("decode fantasy leaderboard: %w", err)
	}
	return leaderboardFromDoc(doc), true, nil
}

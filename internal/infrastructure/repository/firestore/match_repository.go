package firestore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
)

type MatchRepository struct {
	client *firestore.Client
}

func NewMatchRepository(client *firestore.Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	docs, err := readAll(r.client.Collection(colMatches).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	out := make([]match.Match, 0, len(docs))
	for _, doc := range docs {
		var data matchDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("decode match %s: %w", doc.Ref.ID, err)
		}
		out = append(out, matchFromDoc(doc.Ref.ID, data))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	doc, err := r.client.Collection(colMatches).Doc(matchID).Get(ctx)
	if isNotFound(err) {
		return match.Match{}, false, nil
	}
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match %s: %w", matchID, err)
	}
	var data matchDoc
	if err := doc.DataTo(&data); err != nil {
		return match.Match{}, false, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return matchFromDoc(matchID, data), true, nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID string, result match.Result) error {
	updates := make([]firestore.Update, 0, 5)
	for path, value := range resultUpdates(result) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].Path < updates[j].Path })

	if _, err := r.client.Collection(colMatches).Doc(matchID).Update(ctx, updates); err != nil {
		return fmt.Errorf("update match result %s: %w", matchID, err)
	}
	return nil
}

// GameRepository stores matches/{matchId}/games/{gameId} and the
// performances/{playerId} subcollection under each game.
type GameRepository struct {
	client *firestore.Client
}

func NewGameRepository(client *firestore.Client) *GameRepository {
	return &GameRepository{client: client}
}

func (r *GameRepository) games(matchID string) *firestore.CollectionRef {
	return r.client.Collection(colMatches).Doc(matchID).Collection(colGames)
}

func (r *GameRepository) ListByMatch(ctx context.Context, matchID string) ([]game.Game, error) {
	docs, err := readAll(r.games(matchID).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list games of match %s: %w", matchID, err)
	}
	out := make([]game.Game, 0, len(docs))
	for _, doc := range docs {
		var data gameDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("decode game %s/%s: %w", matchID, doc.Ref.ID, err)
		}
		out = append(out, gameFromDoc(doc.Ref.ID, matchID, data))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, matchID, gameID string) (game.Game, bool, error) {
	doc, err := r.games(matchID).Doc(gameID).Get(ctx)
	if isNotFound(err) {
		return game.Game{}, false, nil
	}
	if err != nil {
		return game.Game{}, false, fmt.Errorf("get game %s/%s: %w", matchID, gameID, err)
	}
	var data gameDoc
	if err := doc.DataTo(&data); err != nil {
		return game.Game{}, false, fmt.Errorf("decode game %s/%s: %w", matchID, gameID, err)
	}
	return gameFromDoc(gameID, matchID, data), true, nil
}

func (r *GameRepository) ListPerformances(ctx context.Context, matchID, gameID string) ([]game.Performance, error) {
	docs, err := readAll(r.games(matchID).Doc(gameID).Collection(colPerformances).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list performances %s/%s: %w", matchID, gameID, err)
	}
	out := make([]game.Performance, 0, len(docs))
	for _, doc := range docs {
		var data performanceDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("decode performance %s/%s/%s: %w", matchID, gameID, doc.Ref.ID, err)
		}
		if data.PlayerID == "" {
			data.PlayerID = doc.Ref.ID
		}
		out = append(out, performanceFromDoc(data))
	}
	return out, nil
}

// SaveBundle adds the game id to the match, writes the game and replaces its
// performances. Performance documents not in the new bundle are deleted.
func (r *GameRepository) SaveBundle(ctx context.Context, matchID string, bundle game.Bundle) error {
	gameID := strings.TrimSpace(bundle.Game.ID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	gameRef := r.games(matchID).Doc(gameID)
	perfCol := gameRef.Collection(colPerformances)

	existing, err := listRefs(ctx, perfCol)
	if err != nil {
		return fmt.Errorf("list existing performances %s/%s: %w", matchID, gameID, err)
	}

	w := newBatchWriter(r.client)
	w.Update(r.client.Collection(colMatches).Doc(matchID), []firestore.Update{
		{Path: "game_ids", Value: firestore.ArrayUnion(gameIDValue(gameID))},
	})
	w.Set(gameRef, gameToDoc(bundle.Game))

	keep := make(map[string]struct{}, len(bundle.Performances))
	for _, p := range bundle.Performances {
		keep[p.PlayerID] = struct{}{}
	}
	for _, ref := range existing {
		if _, ok := keep[ref.ID]; !ok {
			w.Delete(ref)
		}
	}
	for _, p := range bundle.Performances {
		w.Set(perfCol.Doc(p.PlayerID), performanceToDoc(p))
	}

	if _, err := w.Commit(ctx); err != nil {
		return fmt.Errorf("save game bundle %s/%s: %w", matchID, gameID, err)
	}
	return nil
}

// GroupRepository stores groups/{groupId} with the standings map inline.
type GroupRepository struct {
	client *firestore.Client
}

func NewGroupRepository(client *firestore.Client) *GroupRepository {
	return &GroupRepository{client: client}
}

func (r *GroupRepository) List(ctx context.Context) ([]match.Group, error) {
	docs, err := readAll(r.client.Collection(colGroups).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	out := make([]match.Group, 0, len(docs))
	for _, doc := range docs {
		var data groupDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("decode group %s: %w", doc.Ref.ID, err)
		}
		out = append(out, groupFromDoc(doc.Ref.ID, data))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GroupRepository) ReplaceStandings(ctx context.Context, groups []match.Group) error {
	w := newBatchWriter(r.client)
	for _, g := range groups {
		w.Set(r.client.Collection(colGroups).Doc(g.ID), map[string]any{
			"standings": standingsToDoc(g.Standings),
		}, firestore.Merge([]string{"standings"}))
	}
	if _, err := w.Commit(ctx); err != nil {
		return fmt.Errorf("replace group standings: %w", err)
	}
	return nil
}

package firestore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/sourcegraph/conc/pool"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

// TeamRepository reads teams/{teamId} with its players subcollection.
type TeamRepository struct {
	client *firestore.Client
}

func NewTeamRepository(client *firestore.Client) *TeamRepository {
	return &TeamRepository{client: client}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	docs, err := readAll(r.client.Collection(colTeams).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	p := pool.NewWithResults[team.Team]().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(8)
	for _, doc := range docs {
		p.Go(func(ctx context.Context) (team.Team, error) {
			return r.teamFromSnapshot(ctx, doc)
		})
	}
	teams, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	doc, err := r.client.Collection(colTeams).Doc(teamID).Get(ctx)
	if isNotFound(err) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team %s: %w", teamID, err)
	}
	item, err := r.teamFromSnapshot(ctx, doc)
	if err != nil {
		return team.Team{}, false, err
	}
	return item, true, nil
}

// Create writes the team document and its players in one commit. It fails
// when the team document already exists.
func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	teamRef := r.client.Collection(colTeams).Doc(item.ID)

	w := newBatchWriter(r.client)
	w.Create(teamRef, teamToDoc(item))
	for _, p := range item.Players {
		w.Set(teamRef.Collection(colPlayers).Doc(p.ID), playerToDoc(p))
	}
	if err := w.CommitAtomic(ctx); err != nil {
		return fmt.Errorf("create team %s: %w", item.ID, err)
	}
	return nil
}

func (r *TeamRepository) teamFromSnapshot(ctx context.Context, doc *firestore.DocumentSnapshot) (team.Team, error) {
	var data teamDoc
	if err := doc.DataTo(&data); err != nil {
		return team.Team{}, fmt.Errorf("decode team %s: %w", doc.Ref.ID, err)
	}
	item := team.Team{ID: doc.Ref.ID, Name: data.Name, Tag: data.Tag, CaptainID: data.CaptainID, Status: data.Status}

	players, err := readAll(doc.Ref.Collection(colPlayers).Documents(ctx))
	if err != nil {
		return team.Team{}, fmt.Errorf("list players of team %s: %w", item.ID, err)
	}
	item.Players = make([]team.Player, 0, len(players))
	for _, p := range players {
		var pd playerDoc
		if err := p.DataTo(&pd); err != nil {
			return team.Team{}, fmt.Errorf("decode player %s/%s: %w", item.ID, p.Ref.ID, err)
		}
		item.Players = append(item.Players, playerFromDoc(p.Ref.ID, item.ID, pd))
	}
	return item, nil
}

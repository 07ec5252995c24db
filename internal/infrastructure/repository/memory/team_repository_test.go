package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

func TestTeamRepository_CreateRejectsExistingID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(SeedTeams())

	if err := repo.Create(ctx, team.Team{ID: TeamIDAlpha, Name: "Copy"}); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}
	item := team.Team{ID: "echo", Name: "Echo", Players: []team.Player{{ID: "echo-carry", SteamID32: "9001"}}}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok, err := repo.GetByID(ctx, "echo")
	if err != nil || !ok {
		t.Fatalf("get echo: ok=%v err=%v", ok, err)
	}
	if got.Players[0].TeamID != "echo" {
		t.Fatalf("expected player team id to be filled, got %q", got.Players[0].TeamID)
	}
	alpha, _, _ := repo.GetByID(ctx, TeamIDAlpha)
	if alpha.Name == "Copy" {
		t.Fatalf("existing team was overwritten")
	}
}

func TestPickemRepository_SavePickemReplacesByUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickemRepository([]pickem.Pickem{{UserID: "u1", Predictions: pickem.Predictions{Champion: "a"}}}, nil)

	pool := []string{"c"}
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.SavePickem(ctx, pickem.Pickem{UserID: "u1", Predictions: pickem.Predictions{Champion: "b", Pool: pool}, LastUpdated: at}); err != nil {
		t.Fatalf("save: %v", err)
	}
	pool[0] = "mutated"
	if err := repo.SavePickem(ctx, pickem.Pickem{UserID: "u2"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	items, err := repo.ListPickems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 pickems, got %d", len(items))
	}
	if items[0].Predictions.Champion != "b" || items[0].Predictions.Pool[0] != "c" || !items[0].LastUpdated.Equal(at) {
		t.Fatalf("unexpected replaced pickem %+v", items[0])
	}
}

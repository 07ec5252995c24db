package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

type sheetStub struct {
	rows [][]string
}

func (s *sheetStub) Publish(_ context.Context, rows [][]string) (int, error) {
	s.rows = rows
	return len(rows), nil
}

func newPickemFixture(sheet SheetPublisher) *PickemService {
	teams := memory.NewTeamRepository([]team.Team{
		{ID: "t-name", Name: "Named, Inc"},
		{ID: "t-tag", Tag: "TAG"},
	})
	pickems := memory.NewPickemRepository(
		[]pickem.Pickem{
			{
				UserID: "u2",
				Predictions: pickem.Predictions{
					Champion:     "t-name",
					RunnerUp:     "t-tag",
					FifthToSixth: []string{"t-missing"},
					Pool:         []string{"t-name", "t-tag"},
				},
				LastUpdated: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			},
			{UserID: "u1", Predictions: pickem.Predictions{Champion: "t-tag"}},
		},
		[]pickem.UserProfile{
			{UserID: "u1", DisplayName: "Ann"},
			{UserID: "u2", DisplayName: "Zoe \"Z\"", DiscordUsername: "zoe#1"},
		},
	)
	return NewPickemService(pickems, teams, sheet, logging.NewNop())
}

func TestCSVEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", csvEscape("plain"))
	assert.Equal(t, `"a,b"`, csvEscape("a,b"))
	assert.Equal(t, `"say ""hi"""`, csvEscape(`say "hi"`))
	assert.Equal(t, "\"line\nbreak\"", csvEscape("line\nbreak"))
	assert.Equal(t, "\"cr\rhere\"", csvEscape("cr\rhere"))
}

func TestPickemService_ExportCSV(t *testing.T) {
	t.Parallel()

	out, err := newPickemFixture(nil).ExportCSV(t.Context())
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "userId,displayName,discordUsername,submittedAt,champion"))
	assert.True(t, strings.HasSuffix(lines[0], "pool_count,pool_list"))
	assert.Equal(t, 22, strings.Count(lines[0], ",")+1)

	assert.True(t, strings.HasPrefix(lines[1], "u1,Ann,,,TAG,"))
	assert.True(t, strings.HasPrefix(lines[2], `u2,"Zoe ""Z""",zoe#1,2026-09-01T12:00:00Z,"Named, Inc",TAG,,,t-missing,`))
	assert.True(t, strings.HasSuffix(lines[2], `,2,"Named, Inc | TAG"`))
}

func TestPickemService_PublishToSheet(t *testing.T) {
	t.Parallel()

	sheet := &sheetStub{}
	written, err := newPickemFixture(sheet).PublishToSheet(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, written)
	assert.Equal(t, "userId", sheet.rows[0][0])
	assert.Equal(t, "Named, Inc", sheet.rows[2][4])

	_, err = newPickemFixture(nil).PublishToSheet(t.Context())
	assert.True(t, errors.Is(err, ErrDependencyUnavailable))
}

func TestExportFileName(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "pickem_export_2026-10-16.csv", ExportFileName(at))
}

func TestPickemService_SubmitReplacesEarlierSubmission(t *testing.T) {
	t.Parallel()

	svc := newPickemFixture(nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 2, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600)) }

	got, err := svc.Submit(t.Context(), " u1 ", pickem.Predictions{
		Champion: " t-name ",
		RunnerUp: "t-tag",
		Pool:     []string{"", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "t-name", got.Predictions.Champion)
	assert.Empty(t, got.Predictions.Pool)
	assert.Equal(t, time.Date(2026, 10, 2, 7, 30, 0, 0, time.UTC), got.LastUpdated)

	stored, err := svc.pickemRepo.ListPickems(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, p := range stored {
		if p.UserID == "u1" {
			assert.Equal(t, "t-name", p.Predictions.Champion)
			assert.Equal(t, "t-tag", p.Predictions.RunnerUp)
		}
	}

	out, err := svc.ExportCSV(t.Context())
	require.NoError(t, err)
	assert.Contains(t, string(out), `u1,Ann,,2026-10-02T07:30:00Z,"Named, Inc",TAG,`)
}

func TestPickemService_SubmitRejectsInvalidPredictions(t *testing.T) {
	t.Parallel()

	svc := newPickemFixture(nil)

	_, err := svc.Submit(t.Context(), "u3", pickem.Predictions{
		Champion: "t-name",
		RunnerUp: "t-ghost",
		Pool:     []string{"t-name"},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{
		"runnerUp: unknown team t-ghost",
		"team t-name is placed in both champion and pool",
	}, validationErr.Messages)

	_, err = svc.Submit(t.Context(), "  ", pickem.Predictions{Champion: "t-name"})
	require.ErrorIs(t, err, ErrUnauthorized)

	stored, err := svc.pickemRepo.ListPickems(t.Context())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

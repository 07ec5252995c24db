package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
)

func TestPickemData_RoundTrip(t *testing.T) {
	t.Parallel()

	in := pickem.Pickem{
		UserID:      "uid-1",
		LastUpdated: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Predictions: pickem.Predictions{
			Champion:     "alpha",
			RunnerUp:     "bravo",
			FifthToSixth: []string{"delta", "echo"},
			Pool:         []string{"foxtrot"},
		},
	}
	got := pickemFromData("uid-1", pickemToData(in))

	assert.Equal(t, in.UserID, got.UserID)
	assert.True(t, in.LastUpdated.Equal(got.LastUpdated))
	assert.Equal(t, "alpha", got.Predictions.Champion)
	assert.Equal(t, "bravo", got.Predictions.RunnerUp)
	assert.Empty(t, got.Predictions.ThirdPlace)
	assert.Equal(t, []string{"delta", "echo"}, got.Predictions.FifthToSixth)
	assert.Equal(t, []string{"foxtrot"}, got.Predictions.Pool)
	assert.Empty(t, got.Predictions.NinthToTwelfth)
}

func TestPickemFromData_SinglePlacementAsString(t *testing.T) {
	t.Parallel()

	got := pickemFromData("doc-id", map[string]any{
		"predictions": map[string]any{
			"champion": "alpha",
			"pool":     []any{"bravo", " ", "delta"},
		},
	})
	assert.Equal(t, "doc-id", got.UserID)
	assert.Equal(t, "alpha", got.Predictions.Champion)
	assert.Equal(t, []string{"bravo", "delta"}, got.Predictions.Pool)
}

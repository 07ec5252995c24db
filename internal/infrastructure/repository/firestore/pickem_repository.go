package firestore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
)

// PickemRepository stores pickems/{userId} and reads userProfiles/{uid}.
type PickemRepository struct {
	client *firestore.Client
}

func NewPickemRepository(client *firestore.Client) *PickemRepository {
	return &PickemRepository{client: client}
}

func (r *PickemRepository) ListPickems(ctx context.Context) ([]pickem.Pickem, error) {
	docs, err := readAll(r.client.Collection(colPickems).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list pickems: %w", err)
	}
	out := make([]pickem.Pickem, 0, len(docs))
	for _, doc := range docs {
		out = append(out, pickemFromData(doc.Ref.ID, doc.Data()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// SavePickem merges the submission into pickems/{userId}.
func (r *PickemRepository) SavePickem(ctx context.Context, item pickem.Pickem) error {
	ref := r.client.Collection(colPickems).Doc(item.UserID)
	if _, err := ref.Set(ctx, pickemToData(item), firestore.MergeAll); err != nil {
		return fmt.Errorf("save pickem %s: %w", item.UserID, err)
	}
	return nil
}

func (r *PickemRepository) ListUserProfiles(ctx context.Context) ([]pickem.UserProfile, error) {
	docs, err := readAll(r.client.Collection(colUserProfiles).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list user profiles: %w", err)
	}
	out := make([]pickem.UserProfile, 0, len(docs))
	for _, doc := range docs {
		data := doc.Data()
		name := stringField(data, "displayName")
		if name == "" {
			name = stringField(data, "name")
		}
		out = append(out, pickem.UserProfile{
			UserID:          doc.Ref.ID,
			DisplayName:     name,
			DiscordUsername: stringField(data, "discordUsername"),
		})
	}
	return out, nil
}

// pickemFromData tolerates single placements stored either as a string or
// as a one element array.
func pickemFromData(docID string, data map[string]any) pickem.Pickem {
	item := pickem.Pickem{UserID: docID}
	if userID := stringField(data, "userId"); userID != "" {
		item.UserID = userID
	}
	if ts, ok := timeField(data["lastUpdated"]); ok {
		item.LastUpdated = ts
	}

	preds, _ := data["predictions"].(map[string]any)
	first := func(key string) string {
		if values := stringList(preds[key]); len(values) > 0 {
			return values[0]
		}
		return ""
	}
	item.Predictions = pickem.Predictions{
		Champion:              first("champion"),
		RunnerUp:              first("runnerUp"),
		ThirdPlace:            first("thirdPlace"),
		FourthPlace:           first("fourthPlace"),
		FifthToSixth:          stringList(preds["fifthToSixth"]),
		SeventhToEighth:       stringList(preds["seventhToEighth"]),
		NinthToTwelfth:        stringList(preds["ninthToTwelfth"]),
		ThirteenthToSixteenth: stringList(preds["thirteenthToSixteenth"]),
		Pool:                  stringList(preds["pool"]),
	}
	return item
}

// pickemToData stores every placement as an array, which pickemFromData
// reads back.
func pickemToData(item pickem.Pickem) map[string]any {
	one := func(id string) []string {
		if id == "" {
			return []string{}
		}
		return []string{id}
	}
	list := func(ids []string) []string {
		return append([]string{}, ids...)
	}
	p := item.Predictions
	return map[string]any{
		"userId":      item.UserID,
		"lastUpdated": item.LastUpdated,
		"predictions": map[string]any{
			"champion":              one(p.Champion),
			"runnerUp":              one(p.RunnerUp),
			"thirdPlace":            one(p.ThirdPlace),
			"fourthPlace":           one(p.FourthPlace),
			"fifthToSixth":          list(p.FifthToSixth),
			"seventhToEighth":       list(p.SeventhToEighth),
			"ninthToTwelfth":        list(p.NinthToTwelfth),
			"thirteenthToSixteenth": list(p.ThirteenthToSixteenth),
			"pool":                  list(p.Pool),
		},
	}
}

func stringField(data map[string]any, key string) string {
	value, _ := data[key].(string)
	return strings.TrimSpace(value)
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func timeField(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		ts, err := time.Parse(time.RFC3339, v)
		return ts, err == nil
	}
	return time.Time{}, false
}

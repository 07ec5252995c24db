package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/errgroup"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

// SheetPublisher replaces the content of the configured sheet range.
type SheetPublisher interface {
	Publish(ctx context.Context, rows [][]string) (int, error)
}

var pickemHeaders = []string{
	"userId", "displayName", "discordUsername", "submittedAt",
	"champion", "runnerUp", "thirdPlace", "fourthPlace",
	"fifthToSixth_1", "fifthToSixth_2",
	"seventhToEighth_1", "seventhToEighth_2",
	"ninthToTwelfth_1", "ninthToTwelfth_2", "ninthToTwelfth_3", "ninthToTwelfth_4",
	"thirteenthToSixteenth_1", "thirteenthToSixteenth_2", "thirteenthToSixteenth_3", "thirteenthToSixteenth_4",
	"pool_count", "pool_list",
}

type PickemService struct {
	pickemRepo pickem.Repository
	teamRepo   team.Repository
	sheet      SheetPublisher
	logger     *logging.Logger
	now        func() time.Time
}

func NewPickemService(pickemRepo pickem.Repository, teamRepo team.Repository, sheet SheetPublisher, logger *logging.Logger) *PickemService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PickemService{
		pickemRepo: pickemRepo,
		teamRepo:   teamRepo,
		sheet:      sheet,
		logger:     logger.Named("pickem"),
		now:        time.Now,
	}
}

// Submit replaces the user's predictions. Every id must name a registered
// team and no team may be placed twice.
func (s *PickemService) Submit(ctx context.Context, userID string, predictions pickem.Predictions) (pickem.Pickem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickemService.Submit")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return pickem.Pickem{}, fmt.Errorf("%w: user is required", ErrUnauthorized)
	}
	predictions = trimPredictions(predictions)

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return pickem.Pickem{}, fmt.Errorf("list teams: %w", err)
	}
	known := make(map[string]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}
	if problems := predictions.Problems(known); len(problems) > 0 {
		return pickem.Pickem{}, &ValidationError{Messages: problems}
	}

	item := pickem.Pickem{UserID: userID, Predictions: predictions, LastUpdated: s.now().UTC()}
	if err := s.pickemRepo.SavePickem(ctx, item); err != nil {
		return pickem.Pickem{}, fmt.Errorf("save pickem: %w", err)
	}
	s.logger.InfoContext(ctx, "pickem submitted", "user_id", userID)
	return item, nil
}

func trimPredictions(p pickem.Predictions) pickem.Predictions {
	list := func(ids []string) []string {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
		return out
	}
	p.Champion = strings.TrimSpace(p.Champion)
	p.RunnerUp = strings.TrimSpace(p.RunnerUp)
	p.ThirdPlace = strings.TrimSpace(p.ThirdPlace)
	p.FourthPlace = strings.TrimSpace(p.FourthPlace)
	p.FifthToSixth = list(p.FifthToSixth)
	p.SeventhToEighth = list(p.SeventhToEighth)
	p.NinthToTwelfth = list(p.NinthToTwelfth)
	p.ThirteenthToSixteenth = list(p.ThirteenthToSixteenth)
	p.Pool = list(p.Pool)
	return p
}

// ExportCSV renders every pick'em submission with team names resolved.
func (s *PickemService) ExportCSV(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickemService.ExportCSV")
	defer span.End()

	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, row := range rows {
		if i > 0 {
			_ = buf.WriteByte('\n')
		}
		for j, value := range row {
			if j > 0 {
				_ = buf.WriteByte(',')
			}
			_, _ = buf.WriteString(csvEscape(value))
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	s.logger.InfoContext(ctx, "pickem csv exported", "rows", len(rows)-1, "bytes", len(out))
	return out, nil
}

// PublishToSheet writes the export, header included, to the sheet and
// returns the number of rows written.
func (s *PickemService) PublishToSheet(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickemService.PublishToSheet")
	defer span.End()

	if s.sheet == nil {
		return 0, fmt.Errorf("%w: google sheet publishing is not configured", ErrDependencyUnavailable)
	}
	rows, err := s.rows(ctx)
	if err != nil {
		return 0, err
	}
	written, err := s.sheet.Publish(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("publish pickem sheet: %w", err)
	}
	s.logger.InfoContext(ctx, "pickem sheet published", "rows", written)
	return written, nil
}

// ExportFileName is the download name for an export made at the given time.
func ExportFileName(now time.Time) string {
	return "pickem_export_" + now.UTC().Format("2006-01-02") + ".csv"
}

func (s *PickemService) rows(ctx context.Context) ([][]string, error) {
	var (
		pickems  []pickem.Pickem
		teams    []team.Team
		profiles []pickem.UserProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if pickems, err = s.pickemRepo.ListPickems(gctx); err != nil {
			return fmt.Errorf("list pickems: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if teams, err = s.teamRepo.List(gctx); err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if profiles, err = s.pickemRepo.ListUserProfiles(gctx); err != nil {
			return fmt.Errorf("list user profiles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.DisplayName()
	}
	teamName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}
	profileByUser := make(map[string]pickem.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	type pickemRow struct {
		sortName string
		userID   string
		values   []string
	}
	body := make([]pickemRow, 0, len(pickems))
	for _, p := range pickems {
		profile := profileByUser[p.UserID]
		pred := p.Predictions

		values := []string{p.UserID, profile.DisplayName, profile.DiscordUsername, submittedAt(p.LastUpdated)}
		values = append(values, teamName(pred.Champion), teamName(pred.RunnerUp), teamName(pred.ThirdPlace), teamName(pred.FourthPlace))
		values = append(values, slots(pred.FifthToSixth, 2, teamName)...)
		values = append(values, slots(pred.SeventhToEighth, 2, teamName)...)
		values = append(values, slots(pred.NinthToTwelfth, 4, teamName)...)
		values = append(values, slots(pred.ThirteenthToSixteenth, 4, teamName)...)

		pool := make([]string, 0, len(pred.Pool))
		for _, id := range pred.Pool {
			pool = append(pool, teamName(id))
		}
		values = append(values, strconv.Itoa(len(pool)), strings.Join(pool, " | "))

		body = append(body, pickemRow{sortName: profile.DisplayName, userID: p.UserID, values: values})
	}
	sort.Slice(body, func(i, j int) bool {
		if body[i].sortName != body[j].sortName {
			return body[i].sortName < body[j].sortName
		}
		return body[i].userID < body[j].userID
	})

	rows := make([][]string, 0, len(body)+1)
	rows = append(rows, append([]string(nil), pickemHeaders...))
	for _, row := range body {
		rows = append(rows, row.values)
	}
	return rows, nil
}

func slots(ids []string, size int, name func(string) string) []string {
	out := make([]string, size)
	for i := 0; i < size && i < len(ids); i++ {
		if ids[i] != "" {
			out[i] = name(ids[i])
		}
	}
	return out
}

func submittedAt(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format(time.RFC3339)
}

func csvEscape(value string) string {
	if !strings.ContainsAny(value, ",\"\r\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

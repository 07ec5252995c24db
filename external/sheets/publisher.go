package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

var spreadsheetIDRegex = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

type Config struct {
	// Spreadsheet accepts either the bare id or a full sheet URL.
	Spreadsheet     string
	SheetName       string
	CredentialsFile string
	Logger          *logging.Logger
	// Options replace the credentials file when set.
	Options []option.ClientOption
}

// Publisher overwrites one sheet tab with a table of rows.
type Publisher struct {
	service       *gsheets.Service
	spreadsheetID string
	sheetName     string
	logger        *logging.Logger
}

func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	spreadsheetID, err := extractSpreadsheetID(cfg.Spreadsheet)
	if err != nil {
		return nil, err
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Pickem"
	}

	opts := cfg.Options
	if len(opts) == 0 {
		credentials, err := os.ReadFile(strings.TrimSpace(cfg.CredentialsFile))
		if err != nil {
			return nil, fmt.Errorf("read sheets credentials: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(credentials, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parse sheets credentials: %w", err)
		}
		opts = []option.ClientOption{option.WithHTTPClient(jwt.Client(ctx))}
	}

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Publisher{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.Named("sheets"),
	}, nil
}

// Publish clears the tab and writes rows starting at A1. It returns the
// number of rows written.
func (p *Publisher) Publish(ctx context.Context, rows [][]string) (int, error) {
	clearRange := fmt.Sprintf("%s!A:ZZ", p.sheetName)
	if _, err := p.service.Spreadsheets.Values.Clear(p.spreadsheetID, clearRange, &gsheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return 0, fmt.Errorf("clear sheet %s: %w", p.sheetName, err)
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	writeRange := fmt.Sprintf("%s!A1", p.sheetName)
	resp, err := p.service.Spreadsheets.Values.Update(p.spreadsheetID, writeRange, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("write sheet %s: %w", p.sheetName, err)
	}

	written := len(rows)
	if resp != nil && resp.UpdatedRows > 0 {
		written = int(resp.UpdatedRows)
	}
	p.logger.InfoContext(ctx, "sheet published", "sheet", p.sheetName, "rows", written)
	return written, nil
}

func extractSpreadsheetID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("spreadsheet id is required")
	}
	if !strings.Contains(value, "/") {
		return value, nil
	}
	matches := spreadsheetIDRegex.FindStringSubmatch(value)
	if len(matches) < 2 {
		return "", fmt.Errorf("could not extract spreadsheet id from %q", value)
	}
	return matches[1], nil
}

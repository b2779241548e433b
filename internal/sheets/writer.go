package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

// Writer exports a Workbook to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets workbook writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Export writes the three workbook tabs, clearing any previous contents.
// Returns the spreadsheet id so callers can print a link.
func (w *Writer) Export(ctx context.Context, wb *Workbook) (string, error) {
	spreadsheetID, sheetIDs, err := w.ensureSpreadsheet(ctx)
	if err != nil {
		return "", err
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	for _, tab := range wb.Tabs() {
		w.logger.Info("exporting tab", "tab", tab.Title, "rows", len(tab.Values))

		if _, err := w.service.Spreadsheets.Values.Clear(
			spreadsheetID, tab.Title+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("failed to clear tab %s: %w", tab.Title, err)
		}

		values := tab.Values
		if err := common.WithRetry(ctx, func() error {
			return w.writeTab(ctx, spreadsheetID, tab.Title, values)
		}, retryOpts); err != nil {
			return "", fmt.Errorf("failed to write tab %s: %w", tab.Title, err)
		}

		if w.config.EnableFormatting {
			if err := w.formatTab(ctx, spreadsheetID, sheetIDs[tab.Title], len(tab.Values)); err != nil {
				// Formatting is cosmetic, the data is already written.
				w.logger.Warn("failed to format tab", "tab", tab.Title, "error", err)
			}
		}
	}

	w.logger.Info("workbook export completed", "spreadsheet_id", spreadsheetID)
	return spreadsheetID, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// ensureSpreadsheet opens the configured spreadsheet (creating one if no id is
// configured) and guarantees the three tabs exist, returning their sheet ids.
func (w *Writer) ensureSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	titles := []string{TabTransactions, TabDebts, TabAccounts}

	if w.config.SpreadsheetID == "" {
		tabSheets := make([]*sheets.Sheet, 0, len(titles))
		for _, title := range titles {
			tabSheets = append(tabSheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{Title: title},
			})
		}

		created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{
				Title:    w.config.SpreadsheetName,
				TimeZone: w.config.TimeZone,
			},
			Sheets: tabSheets,
		}).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
		}

		w.logger.Info("created new spreadsheet",
			"id", created.SpreadsheetId,
			"url", created.SpreadsheetUrl)
		return created.SpreadsheetId, sheetIDsByTitle(created), nil
	}

	spreadsheet, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
	}

	existing := sheetIDsByTitle(spreadsheet)
	var requests []*sheets.Request
	for _, title := range titles {
		if _, ok := existing[title]; !ok {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			})
		}
	}

	if len(requests) > 0 {
		response, err := w.service.Spreadsheets.BatchUpdate(w.config.SpreadsheetID,
			&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to add missing tabs: %w", err)
		}
		for _, reply := range response.Replies {
			if reply.AddSheet != nil {
				existing[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
			}
		}
	}

	return w.config.SpreadsheetID, existing, nil
}

func sheetIDsByTitle(spreadsheet *sheets.Spreadsheet) map[string]int64 {
	ids := make(map[string]int64, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			ids[sheet.Properties.Title] = sheet.Properties.SheetId
		}
	}
	return ids
}

// writeTab writes the values to a tab in batches to stay under API limits.
func (w *Writer) writeTab(ctx context.Context, spreadsheetID, title string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		valueRange := &sheets.ValueRange{Values: values[i:end]}
		rangeStr := fmt.Sprintf("%s!A%d", title, i+1)

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", title, "start_row", i+1, "rows", end-i)
	}

	return nil
}

// formatTab bolds and freezes the header row and auto-sizes the columns.
func (w *Writer) formatTab(ctx context.Context, spreadsheetID string, sheetID int64, totalRows int) error {
	if totalRows == 0 {
		return nil
	}

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   8,
				},
			},
		},
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	return err
}

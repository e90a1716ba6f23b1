package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"go-backoffice/internal/config"
	"go-backoffice/internal/model"
)

// ReportSheet appends daily summaries to a spreadsheet.
type ReportSheet interface {
	AppendDailySummary(ctx context.Context, day string, summary model.SalesSummary) error
}

// GoogleReportSheet implements ReportSheet with the Google Sheets API.
type GoogleReportSheet struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

func NewGoogleReportSheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleReportSheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleReportSheet{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// summaryRow is the column layout of the export sheet.
func summaryRow(day string, s model.SalesSummary) []interface{} {
	return []interface{}{
		day,
		s.TodayTransactions,
		s.TodayRevenue.StringFixed(2),
		s.WeekTransactions,
		s.WeekRevenue.StringFixed(2),
		s.TotalProducts,
		s.LowStockProducts,
		s.CurrencyCode,
	}
}

func (r *GoogleReportSheet) AppendDailySummary(ctx context.Context, day string, summary model.SalesSummary) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{summaryRow(day, summary)}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("daily summary appended", zap.String("range", r.sheetRange), zap.String("day", day))
	return nil
}

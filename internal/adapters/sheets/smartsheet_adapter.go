package sheets

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/clients/smartsheet"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
	"github.com/zatekoja/aiportfolioboard/pkg/config"
	apperrors "github.com/zatekoja/aiportfolioboard/pkg/errors"
	"github.com/zatekoja/aiportfolioboard/pkg/retry"
)

const (
	defaultSheetTitle = "AI Use Cases"
	liveSourceLabel   = "Smartsheet (live)"
)

// SmartsheetAdapter implements SheetSource against the Smartsheet API
type SmartsheetAdapter struct {
	client  smartsheet.Client
	sheetID string
	columns entities.ColumnMap
	retry   retry.Config
	metrics *observability.Metrics
}

// NewSmartsheetAdapter creates the live sheet source. Only transient failures are retried.
func NewSmartsheetAdapter(client smartsheet.Client, sheet *config.SheetConfig, retryCfg retry.Config, metrics *observability.Metrics) providers.SheetSource {
	retryCfg.Retryable = isTransient
	return &SmartsheetAdapter{
		client:  client,
		sheetID: sheet.SheetID,
		columns: sheet.ColumnMap,
		retry:   retryCfg,
		metrics: metrics,
	}
}

// FetchSheet returns rows keyed by source column title, restricted to mapped columns
func (a *SmartsheetAdapter) FetchSheet(ctx context.Context) (*entities.SheetPayload, error) {
	if !a.client.HasToken() {
		return nil, apperrors.NewUnavailableError("SMARTSHEET_API_TOKEN is not configured")
	}

	ctx, span := observability.StartSpan(ctx, "smartsheet.GetSheet")
	defer span.End()

	var sheet *smartsheet.Sheet
	start := time.Now()
	err := retry.Do(ctx, a.retry, func(ctx context.Context) error {
		var err error
		sheet, err = a.client.GetSheet(ctx, a.sheetID)
		return err
	})
	if err != nil {
		observability.RecordError(span, err)
		observability.RecordUpstreamFetch(ctx, a.metrics, "error", time.Since(start))
		return nil, classifyError(err)
	}
	observability.RecordUpstreamFetch(ctx, a.metrics, "success", time.Since(start))

	rows := a.rowsFromSheet(sheet)
	log.Debug().Int("rows", len(rows)).Str("sheet", sheet.Name).Msg("fetched sheet")

	title := sheet.Name
	if title == "" {
		title = defaultSheetTitle
	}
	return &entities.SheetPayload{
		Metadata: entities.SheetMetadata{
			Title:       title,
			Source:      liveSourceLabel,
			SheetName:   sheet.Name,
			LastUpdated: "live",
		},
		Rows: rows,
	}, nil
}

func (a *SmartsheetAdapter) rowsFromSheet(sheet *smartsheet.Sheet) []entities.RawRow {
	titles := make(map[int64]string, len(sheet.Columns))
	for _, col := range sheet.Columns {
		titles[col.ID] = col.Title
	}

	rows := make([]entities.RawRow, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		raw := make(entities.RawRow, len(a.columns))
		for _, cell := range row.Cells {
			title, ok := titles[cell.ColumnID]
			if !ok {
				continue
			}
			if _, mapped := a.columns[title]; !mapped {
				continue
			}
			raw[title] = cellText(cell)
		}
		// empty rows are kept so row positions stay aligned with the sheet
		rows = append(rows, raw)
	}
	return rows
}

// cellText prefers the display value, then the raw value
func cellText(cell smartsheet.Cell) string {
	if cell.DisplayValue != "" {
		return cell.DisplayValue
	}
	switch v := cell.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func classifyError(err error) error {
	var statusErr *smartsheet.StatusError
	if errors.As(err, &statusErr) {
		return apperrors.NewExternalError(statusErr.Error(), err)
	}
	return apperrors.NewExternalError("Smartsheet request failed", err)
}

// network errors and 5xx/429 responses may succeed on a second try
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *smartsheet.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError || statusErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

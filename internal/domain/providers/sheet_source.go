package providers

import (
	"context"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// SheetSource defines the interface for fetching raw rows from the live spreadsheet
type SheetSource interface {
	// FetchSheet issues one upstream request and returns the rows keyed by source column name
	FetchSheet(ctx context.Context) (*entities.SheetPayload, error)
}

// LocalSource defines the interface for reading the bundled data file
type LocalSource interface {
	// ReadRows reads the file and returns its rows keyed by canonical field name
	ReadRows(ctx context.Context) ([]entities.RawRow, entities.SheetMetadata, error)
}

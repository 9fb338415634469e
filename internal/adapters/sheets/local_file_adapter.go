package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
	apperrors "github.com/zatekoja/aiportfolioboard/pkg/errors"
)

type localDocument struct {
	Metadata struct {
		Title       string `json:"title"`
		Source      string `json:"source"`
		LastUpdated string `json:"last_updated"`
	} `json:"metadata"`
	UseCases []map[string]json.RawMessage `json:"use_cases"`
}

// LocalFileAdapter implements LocalSource over the bundled use_cases.json file
type LocalFileAdapter struct {
	path string
}

// NewLocalFileAdapter creates a local source reading path on every call
func NewLocalFileAdapter(path string) providers.LocalSource {
	return &LocalFileAdapter{path: path}
}

// ReadRows returns one raw row per use case, keyed by the canonical field names in the file
func (a *LocalFileAdapter) ReadRows(ctx context.Context) ([]entities.RawRow, entities.SheetMetadata, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, entities.SheetMetadata{}, apperrors.NewInternalError("failed to read local data file", err)
	}

	var doc localDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.SheetMetadata{}, apperrors.NewInternalError("failed to parse local data file", err)
	}

	rows := make([]entities.RawRow, 0, len(doc.UseCases))
	for _, obj := range doc.UseCases {
		raw := make(entities.RawRow, len(obj))
		for key, value := range obj {
			raw[key] = jsonText(value)
		}
		rows = append(rows, raw)
	}

	meta := entities.SheetMetadata{
		Title:       doc.Metadata.Title,
		Source:      doc.Metadata.Source,
		LastUpdated: doc.Metadata.LastUpdated,
	}
	if meta.Title == "" {
		meta.Title = defaultSheetTitle
	}
	if meta.Source == "" {
		meta.Source = "Local data file"
	}
	return rows, meta, nil
}

// jsonText renders a JSON value as text: strings unquoted, numbers verbatim, null empty
func jsonText(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

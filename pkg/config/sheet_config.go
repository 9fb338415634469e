package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// SheetConfig identifies the live sheet and how its columns map onto initiative fields
type SheetConfig struct {
	SheetID   string
	ColumnMap entities.ColumnMap
}

type sheetConfigDocument struct {
	SheetID   sheetID           `json:"sheet_id" yaml:"sheet_id"`
	ColumnMap map[string]string `json:"column_map" yaml:"column_map"`
}

// sheetID accepts both numeric and string ids; Smartsheet ids exceed float64 precision, so numbers are kept verbatim
type sheetID string

func (id *sheetID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = sheetID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("sheet_id must be a string or number")
	}
	*id = sheetID(n.String())
	return nil
}

// LoadSheetConfig reads and validates the sheet mapping document.
// The document is JSON, or YAML when the file ends in .yaml/.yml.
// Any error here is meant to stop the process.
func LoadSheetConfig(path string) (*SheetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet config: %w", err)
	}

	var doc sheetConfigDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet config %s: %w", path, err)
	}

	return ParseSheetConfig(string(doc.SheetID), doc.ColumnMap)
}

// ParseSheetConfig validates a raw column mapping of source column name to canonical field
func ParseSheetConfig(sheetID string, columns map[string]string) (*SheetConfig, error) {
	sheetID = strings.TrimSpace(sheetID)
	if sheetID == "" {
		return nil, fmt.Errorf("sheet config: sheet_id is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("sheet config: column_map is empty")
	}

	// sorted so the reported error is stable
	titles := make([]string, 0, len(columns))
	for title := range columns {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	mapping := make(entities.ColumnMap, len(columns))
	claimed := make(map[entities.Field]string, len(columns))
	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			return nil, fmt.Errorf("sheet config: empty column title")
		}
		field, err := entities.ParseField(columns[title])
		if err != nil {
			return nil, fmt.Errorf("sheet config: column %q: %w", title, err)
		}
		if other, dup := claimed[field]; dup {
			return nil, fmt.Errorf("sheet config: columns %q and %q both map to %q", other, title, field)
		}
		claimed[field] = title
		mapping[title] = field
	}

	if _, ok := claimed[entities.FieldName]; !ok {
		return nil, fmt.Errorf("sheet config: no column maps to %q", entities.FieldName)
	}

	return &SheetConfig{SheetID: sheetID, ColumnMap: mapping}, nil
}

package entities

import (
	"fmt"
	"time"
)

// Field is a canonical initiative field name
type Field string

const (
	FieldID             Field = "id"
	FieldName           Field = "name"
	FieldStatus         Field = "status"
	FieldDepartment     Field = "department"
	FieldOwner          Field = "owner"
	FieldHeadlineImpact Field = "headline_impact"
)

// fieldAliases lists the accepted spellings of canonical fields in mapping documents
var fieldAliases = map[string]Field{
	"id":              FieldID,
	"name":            FieldName,
	"status":          FieldStatus,
	"department":      FieldDepartment,
	"owner":           FieldOwner,
	"headline_impact": FieldHeadlineImpact,
	"impactText":      FieldHeadlineImpact,
}

// ParseField resolves a canonical field name or alias
func ParseField(name string) (Field, error) {
	if f, ok := fieldAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown canonical field %q", name)
}

// RawRow is one source row keyed by source column name
type RawRow map[string]string

// ColumnMap maps source column names onto canonical fields
type ColumnMap map[string]Field

// LocalColumnMap is the identity mapping used for the bundled data file
var LocalColumnMap = ColumnMap{
	string(FieldID):             FieldID,
	string(FieldName):           FieldName,
	string(FieldStatus):         FieldStatus,
	string(FieldDepartment):     FieldDepartment,
	string(FieldOwner):          FieldOwner,
	string(FieldHeadlineImpact): FieldHeadlineImpact,
}

// SheetMetadata describes a fetched sheet
type SheetMetadata struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	SheetName   string `json:"sheet_name,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// SheetPayload is the body served by the proxy endpoint and stored in the payload cache
type SheetPayload struct {
	Metadata  SheetMetadata `json:"metadata"`
	Rows      []RawRow      `json:"rows"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// CachedPayload is an encoded SheetPayload together with the time it was fetched
type CachedPayload struct {
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

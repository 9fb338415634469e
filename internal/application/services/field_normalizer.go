package services

import (
	"strconv"
	"strings"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/pkg/utils"
)

// NormalizeRow maps one raw row onto the canonical initiative fields.
// position is the 1-based index of the row in its source and becomes the ID when no id column is mapped.
// Rows without a name are rejected (ok == false); that is filtering, not an error.
func NormalizeRow(row entities.RawRow, columns entities.ColumnMap, position int) (entities.Initiative, bool) {
	fields := make(map[entities.Field]string, len(columns))
	for title, field := range columns {
		if value, ok := row[title]; ok {
			fields[field] = strings.TrimSpace(value)
		}
	}

	name := fields[entities.FieldName]
	if name == "" {
		return entities.Initiative{}, false
	}

	id := fields[entities.FieldID]
	if id == "" {
		id = strconv.Itoa(position)
	}

	return entities.Initiative{
		ID:         id,
		Name:       name,
		Status:     entities.Status(fields[entities.FieldStatus]),
		Department: fields[entities.FieldDepartment],
		Owner:      fields[entities.FieldOwner],
		ImpactText: fields[entities.FieldHeadlineImpact],
	}, true
}

// NormalizeRows normalizes rows in order, dropping those without a name
func NormalizeRows(rows []entities.RawRow, columns entities.ColumnMap) []entities.Initiative {
	initiatives := make([]entities.Initiative, 0, len(rows))
	for i, row := range rows {
		if initiative, ok := NormalizeRow(row, columns, i+1); ok {
			initiatives = append(initiatives, initiative)
		}
	}
	return initiatives
}

// AttachImpact returns a copy of initiatives with parsed impact figures. ImpactText is left untouched.
func AttachImpact(initiatives []entities.Initiative, parser *utils.ImpactParser) []entities.Initiative {
	if parser == nil {
		parser = utils.NewImpactParser(nil, nil)
	}
	out := make([]entities.Initiative, len(initiatives))
	for i, initiative := range initiatives {
		impact := parser.Parse(initiative.ImpactText)
		initiative.Impact = entities.DerivedImpact{
			DollarAmount: impact.DollarAmount,
			FTECount:     impact.FTECount,
		}
		out[i] = initiative
	}
	return out
}

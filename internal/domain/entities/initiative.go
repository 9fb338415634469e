package entities

import "github.com/shopspring/decimal"

// Status is the pipeline stage of an initiative
type Status string

const (
	StatusInProduction  Status = "In Production"
	StatusPocDone       Status = "POC Done"
	StatusPocInProgress Status = "POC In Progress"
)

// OwnerTBD marks an initiative that still has no executive sponsor
const OwnerTBD = "TBD"

// IsClassified reports whether the status is one of the three named pipeline stages.
// Comparison is case-sensitive.
func (s Status) IsClassified() bool {
	switch s {
	case StatusInProduction, StatusPocDone, StatusPocInProgress:
		return true
	}
	return false
}

// Rank orders stages from most to least mature; unclassified sorts last
func (s Status) Rank() int {
	switch s {
	case StatusInProduction:
		return 0
	case StatusPocDone:
		return 1
	case StatusPocInProgress:
		return 2
	}
	return 3
}

// DerivedImpact holds the numbers parsed out of an initiative's impact text
type DerivedImpact struct {
	DollarAmount decimal.NullDecimal
	FTECount     decimal.NullDecimal
}

// HasFigures reports whether either a dollar or an FTE figure was found
func (d DerivedImpact) HasFigures() bool {
	return d.DollarAmount.Valid || d.FTECount.Valid
}

// Initiative represents one tracked AI use case in the portfolio
type Initiative struct {
	ID         string
	Name       string
	Status     Status
	Department string
	Owner      string
	ImpactText string
	Impact     DerivedImpact
}

// NeedsOwner reports whether the initiative carries the TBD owner sentinel
func (i Initiative) NeedsOwner() bool {
	return i.Owner == OwnerTBD
}

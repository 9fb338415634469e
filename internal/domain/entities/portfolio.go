package entities

import "github.com/shopspring/decimal"

// KPIs are the headline metrics shown at the top of the board
type KPIs struct {
	TotalInitiatives  int
	TotalDollarImpact decimal.Decimal
	TotalFTEImpact    decimal.Decimal
	InProduction      int
	PocDone           int
	PocInProgress     int
	Unclassified      int
}

// StageGroups partitions initiatives by pipeline stage. Every initiative lands in exactly one bucket.
type StageGroups struct {
	InProduction  []Initiative
	PocDone       []Initiative
	PocInProgress []Initiative
	Unclassified  []Initiative
}

// Count returns the number of initiatives across all buckets
func (g StageGroups) Count() int {
	return len(g.InProduction) + len(g.PocDone) + len(g.PocInProgress) + len(g.Unclassified)
}

// Highlight is an initiative surfaced as a strategic highlight
type Highlight struct {
	InitiativeID string
	Name         string
	Department   string
	Status       Status
	Text         string
}

// PortfolioSummary is recomputed from scratch on every load
type PortfolioSummary struct {
	KPIs            KPIs
	Groups          StageGroups
	Highlights      []Highlight
	Recommendations []string
}

// PortfolioMetadata describes where a portfolio came from
type PortfolioMetadata struct {
	Title       string
	Source      string
	LastUpdated string
}

// Portfolio is the result of one full pipeline run
type Portfolio struct {
	Metadata    PortfolioMetadata
	Initiatives []Initiative
	Summary     PortfolioSummary
}

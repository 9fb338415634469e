package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// PortfolioResponse is the JSON view of a portfolio. Amounts are plain JSON numbers.
type PortfolioResponse struct {
	Metadata        MetadataResponse     `json:"metadata"`
	KPIs            KPIResponse          `json:"kpis"`
	Initiatives     []InitiativeResponse `json:"initiatives"`
	Groups          GroupsResponse       `json:"groups"`
	Highlights      []HighlightResponse  `json:"highlights"`
	Recommendations []string             `json:"recommendations"`
}

type MetadataResponse struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	LastUpdated string `json:"last_updated,omitempty"`
}

type KPIResponse struct {
	TotalInitiatives  int     `json:"total_initiatives"`
	TotalDollarImpact float64 `json:"total_dollar_impact"`
	TotalFTEImpact    float64 `json:"total_fte_impact"`
	InProduction      int     `json:"in_production"`
	PocDone           int     `json:"poc_done"`
	PocInProgress     int     `json:"poc_in_progress"`
	Unclassified      int     `json:"unclassified"`
}

type InitiativeResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Department     string   `json:"department"`
	Owner          string   `json:"owner"`
	HeadlineImpact string   `json:"headline_impact"`
	DollarAmount   *float64 `json:"dollar_amount"`
	FTECount       *float64 `json:"fte_count"`
	NeedsOwner     bool     `json:"needs_owner"`
}

type GroupsResponse struct {
	InProduction  []InitiativeResponse `json:"in_production"`
	PocDone       []InitiativeResponse `json:"poc_done"`
	PocInProgress []InitiativeResponse `json:"poc_in_progress"`
	Unclassified  []InitiativeResponse `json:"unclassified"`
}

type HighlightResponse struct {
	InitiativeID string `json:"initiative_id"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Status       string `json:"status"`
	Text         string `json:"text"`
}

// NewPortfolioResponse converts a portfolio into its JSON view
func NewPortfolioResponse(p *entities.Portfolio) PortfolioResponse {
	kpis := p.Summary.KPIs
	highlights := make([]HighlightResponse, 0, len(p.Summary.Highlights))
	for _, h := range p.Summary.Highlights {
		highlights = append(highlights, HighlightResponse{
			InitiativeID: h.InitiativeID,
			Name:         h.Name,
			Department:   h.Department,
			Status:       string(h.Status),
			Text:         h.Text,
		})
	}

	recommendations := p.Summary.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	return PortfolioResponse{
		Metadata: MetadataResponse{
			Title:       p.Metadata.Title,
			Source:      p.Metadata.Source,
			LastUpdated: p.Metadata.LastUpdated,
		},
		KPIs: KPIResponse{
			TotalInitiatives:  kpis.TotalInitiatives,
			TotalDollarImpact: kpis.TotalDollarImpact.InexactFloat64(),
			TotalFTEImpact:    kpis.TotalFTEImpact.InexactFloat64(),
			InProduction:      kpis.InProduction,
			PocDone:           kpis.PocDone,
			PocInProgress:     kpis.PocInProgress,
			Unclassified:      kpis.Unclassified,
		},
		Initiatives: initiativeResponses(p.Initiatives),
		Groups: GroupsResponse{
			InProduction:  initiativeResponses(p.Summary.Groups.InProduction),
			PocDone:       initiativeResponses(p.Summary.Groups.PocDone),
			PocInProgress: initiativeResponses(p.Summary.Groups.PocInProgress),
			Unclassified:  initiativeResponses(p.Summary.Groups.Unclassified),
		},
		Highlights:      highlights,
		Recommendations: recommendations,
	}
}

func initiativeResponses(initiatives []entities.Initiative) []InitiativeResponse {
	out := make([]InitiativeResponse, 0, len(initiatives))
	for _, i := range initiatives {
		out = append(out, InitiativeResponse{
			ID:             i.ID,
			Name:           i.Name,
			Status:         string(i.Status),
			Department:     i.Department,
			Owner:          i.Owner,
			HeadlineImpact: i.ImpactText,
			DollarAmount:   optionalFloat(i.Impact.DollarAmount),
			FTECount:       optionalFloat(i.Impact.FTECount),
			NeedsOwner:     i.NeedsOwner(),
		})
	}
	return out
}

func optionalFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

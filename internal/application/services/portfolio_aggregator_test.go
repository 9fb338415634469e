package services_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/aiportfolioboard/internal/application/services"
	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

func initiative(id, name string, status entities.Status, dept, owner, impact string) entities.Initiative {
	return entities.Initiative{
		ID:         id,
		Name:       name,
		Status:     status,
		Department: dept,
		Owner:      owner,
		ImpactText: impact,
	}
}

func samplePortfolio() []entities.Initiative {
	return services.AttachImpact([]entities.Initiative{
		initiative("1", "Claims triage", entities.StatusInProduction, "Operations", "Dana", "$300K annual savings; 4-6 FTEs"),
		initiative("2", "Contract review", entities.StatusPocDone, "Legal", "TBD", "$1.2M"),
		initiative("3", "Forecasting", entities.StatusPocInProgress, "Finance", "Lee", "No financial data"),
		initiative("4", "Invoice matching", entities.StatusPocDone, "Finance", "TBD", "2 FTE"),
		initiative("5", "Chat assistant", entities.Status("Paused"), "Support", "Kim", ""),
	}, nil)
}

func TestAggregate_KPIs(t *testing.T) {
	initiatives := samplePortfolio()
	summary := services.NewPortfolioAggregator(services.AggregatorConfig{}).Aggregate(initiatives)

	kpis := summary.KPIs
	assert.Equal(t, 5, kpis.TotalInitiatives)
	assert.True(t, decimal.NewFromInt(1500000).Equal(kpis.TotalDollarImpact), kpis.TotalDollarImpact.String())
	assert.True(t, decimal.NewFromInt(8).Equal(kpis.TotalFTEImpact), kpis.TotalFTEImpact.String())
	assert.Equal(t, 1, kpis.InProduction)
	assert.Equal(t, 2, kpis.PocDone)
	assert.Equal(t, 1, kpis.PocInProgress)
	assert.Equal(t, 1, kpis.Unclassified)
	assert.Equal(t, kpis.TotalInitiatives, kpis.InProduction+kpis.PocDone+kpis.PocInProgress+kpis.Unclassified)
}

func TestGroupByStatus_PartitionsInOrder(t *testing.T) {
	initiatives := samplePortfolio()
	groups := services.GroupByStatus(initiatives)

	assert.Equal(t, len(initiatives), groups.Count())
	require.Len(t, groups.PocDone, 2)
	assert.Equal(t, "2", groups.PocDone[0].ID)
	assert.Equal(t, "4", groups.PocDone[1].ID)
	require.Len(t, groups.Unclassified, 1)
	assert.Equal(t, "Chat assistant", groups.Unclassified[0].Name)
}

func TestGroupByStatus_Empty(t *testing.T) {
	groups := services.GroupByStatus(nil)
	assert.Equal(t, 0, groups.Count())

	summary := services.NewPortfolioAggregator(services.AggregatorConfig{}).Aggregate(nil)
	assert.Equal(t, 0, summary.KPIs.TotalInitiatives)
	assert.True(t, summary.KPIs.TotalDollarImpact.IsZero())
	assert.Empty(t, summary.Highlights)
	assert.Empty(t, summary.Recommendations)
}

func TestAggregate_SingleNeedsOwnerRecommendation(t *testing.T) {
	summary := services.NewPortfolioAggregator(services.AggregatorConfig{}).Aggregate(samplePortfolio())

	var ownerRecs []string
	for _, rec := range summary.Recommendations {
		if strings.Contains(rec, "sponsor") {
			ownerRecs = append(ownerRecs, rec)
		}
	}
	require.Len(t, ownerRecs, 1)
	assert.Contains(t, ownerRecs[0], "2 initiatives")
	assert.Contains(t, ownerRecs[0], "Contract review, Invoice matching")
}

func TestAggregate_DefaultRuleOrder(t *testing.T) {
	summary := services.NewPortfolioAggregator(services.AggregatorConfig{}).Aggregate(samplePortfolio())

	require.Len(t, summary.Recommendations, 4)
	assert.True(t, strings.HasPrefix(summary.Recommendations[0], "Assign executive sponsors"))
	assert.True(t, strings.HasPrefix(summary.Recommendations[1], "Prioritize production rollout"))
	assert.True(t, strings.HasPrefix(summary.Recommendations[2], "Confirm the pipeline stage"))
	assert.True(t, strings.HasPrefix(summary.Recommendations[3], "Quantify dollar or FTE impact"))
}

func TestAggregate_CustomRules(t *testing.T) {
	always := func([]entities.Initiative, entities.StageGroups) (string, bool) { return "always", true }
	never := func([]entities.Initiative, entities.StageGroups) (string, bool) { return "never", false }

	aggregator := services.NewPortfolioAggregator(services.AggregatorConfig{
		Rules: []services.RecommendationRule{never, always},
	})
	assert.Equal(t, []string{"always"}, aggregator.Aggregate(samplePortfolio()).Recommendations)

	none := services.NewPortfolioAggregator(services.AggregatorConfig{Rules: []services.RecommendationRule{}})
	assert.Empty(t, none.Aggregate(samplePortfolio()).Recommendations)
}

func TestProductionBacklogRule(t *testing.T) {
	tests := []struct {
		name     string
		statuses []entities.Status
		fires    bool
	}{
		{"no completed POCs", []entities.Status{entities.StatusInProduction}, false},
		{"one POC, nothing live", []entities.Status{entities.StatusPocDone}, true},
		{"equal counts", []entities.Status{entities.StatusPocDone, entities.StatusInProduction}, true},
		{"more live than done", []entities.Status{entities.StatusPocDone, entities.StatusInProduction, entities.StatusInProduction}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var initiatives []entities.Initiative
			for i, s := range tt.statuses {
				initiatives = append(initiatives, initiative(string(rune('a'+i)), "x", s, "", "", ""))
			}
			_, ok := services.ProductionBacklogRule(initiatives, services.GroupByStatus(initiatives))
			assert.Equal(t, tt.fires, ok)
		})
	}
}

func TestDepartmentConcentrationRule(t *testing.T) {
	rule := services.DepartmentConcentrationRule(4)
	build := func(depts ...string) []entities.Initiative {
		var out []entities.Initiative
		for i, d := range depts {
			out = append(out, initiative(string(rune('a'+i)), "x", entities.StatusPocDone, d, "", ""))
		}
		return out
	}

	text, ok := rule(build("Finance", "Finance", "Finance", "Legal"), entities.StageGroups{})
	require.True(t, ok)
	assert.Equal(t, "Broaden adoption beyond Finance, which accounts for 3 of 4 initiatives.", text)

	_, ok = rule(build("Finance", "Finance", "Legal", "Legal"), entities.StageGroups{})
	assert.False(t, ok, "exactly half is not concentration")

	_, ok = rule(build("Finance", "Finance", "Finance"), entities.StageGroups{})
	assert.False(t, ok, "fewer than four initiatives")

	_, ok = rule(build("", "", "", "Legal"), entities.StageGroups{})
	assert.False(t, ok, "blank departments are not counted")
}

func TestSelectHighlights_Ordering(t *testing.T) {
	highlights := services.SelectHighlights(samplePortfolio(), services.DefaultMaxHighlights)

	require.Len(t, highlights, 3)
	assert.Equal(t, "2", highlights[0].InitiativeID)
	assert.Equal(t, "1", highlights[1].InitiativeID)
	assert.Equal(t, "4", highlights[2].InitiativeID)

	assert.Equal(t, "Contract review (Legal), POC Done: $1,200,000 estimated impact", highlights[0].Text)
	assert.Equal(t, "Claims triage (Operations), In Production: $300,000 estimated impact, 6 FTEs", highlights[1].Text)
	assert.Equal(t, "Invoice matching (Finance), POC Done: 2 FTEs", highlights[2].Text)
}

func TestSelectHighlights_TiesBreakOnStageThenOrder(t *testing.T) {
	initiatives := services.AttachImpact([]entities.Initiative{
		initiative("a", "Early", entities.StatusPocInProgress, "", "", "$50K"),
		initiative("b", "Live", entities.StatusInProduction, "", "", "$50K"),
		initiative("c", "Live too", entities.StatusInProduction, "", "", "$50K"),
		initiative("d", "Live, no figures", entities.StatusInProduction, "", "", "TBD"),
		initiative("e", "Idea", entities.StatusPocInProgress, "", "", "none"),
	}, nil)

	highlights := services.SelectHighlights(initiatives, 10)

	ids := make([]string, 0, len(highlights))
	for _, h := range highlights {
		ids = append(ids, h.InitiativeID)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids)
	assert.Equal(t, "Live, no figures, In Production", highlights[3].Text)
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$300,000", services.FormatDollars(decimal.NewFromInt(300000)))
	assert.Equal(t, "$1,250.50", services.FormatDollars(decimal.RequireFromString("1250.5")))
	assert.Equal(t, "$0", services.FormatDollars(decimal.Zero))
}

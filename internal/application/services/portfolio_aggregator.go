package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// DefaultMaxHighlights is the number of strategic highlights shown on the board
const DefaultMaxHighlights = 3

// RecommendationRule inspects the whole portfolio and optionally emits one recommendation
type RecommendationRule func(initiatives []entities.Initiative, groups entities.StageGroups) (string, bool)

// AggregatorConfig configures the heuristics. Nil Rules means DefaultRecommendationRules.
type AggregatorConfig struct {
	Rules         []RecommendationRule
	MaxHighlights int
}

// PortfolioAggregator derives KPIs, stage groups, highlights and recommendations
type PortfolioAggregator struct {
	rules         []RecommendationRule
	maxHighlights int
}

// NewPortfolioAggregator creates an aggregator
func NewPortfolioAggregator(cfg AggregatorConfig) *PortfolioAggregator {
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRecommendationRules()
	}
	maxHighlights := cfg.MaxHighlights
	if maxHighlights <= 0 {
		maxHighlights = DefaultMaxHighlights
	}
	return &PortfolioAggregator{rules: rules, maxHighlights: maxHighlights}
}

// Aggregate is deterministic for a given input order
func (a *PortfolioAggregator) Aggregate(initiatives []entities.Initiative) entities.PortfolioSummary {
	groups := GroupByStatus(initiatives)

	recommendations := make([]string, 0, len(a.rules))
	for _, rule := range a.rules {
		if text, ok := rule(initiatives, groups); ok {
			recommendations = append(recommendations, text)
		}
	}

	return entities.PortfolioSummary{
		KPIs:            ComputeKPIs(initiatives, groups),
		Groups:          groups,
		Highlights:      SelectHighlights(initiatives, a.maxHighlights),
		Recommendations: recommendations,
	}
}

// GroupByStatus partitions initiatives into the three named stages plus unclassified, keeping input order
func GroupByStatus(initiatives []entities.Initiative) entities.StageGroups {
	var groups entities.StageGroups
	for _, initiative := range initiatives {
		switch initiative.Status {
		case entities.StatusInProduction:
			groups.InProduction = append(groups.InProduction, initiative)
		case entities.StatusPocDone:
			groups.PocDone = append(groups.PocDone, initiative)
		case entities.StatusPocInProgress:
			groups.PocInProgress = append(groups.PocInProgress, initiative)
		default:
			groups.Unclassified = append(groups.Unclassified, initiative)
		}
	}
	return groups
}

// ComputeKPIs sums only the figures that were actually found
func ComputeKPIs(initiatives []entities.Initiative, groups entities.StageGroups) entities.KPIs {
	dollars := decimal.Zero
	ftes := decimal.Zero
	for _, initiative := range initiatives {
		if initiative.Impact.DollarAmount.Valid {
			dollars = dollars.Add(initiative.Impact.DollarAmount.Decimal)
		}
		if initiative.Impact.FTECount.Valid {
			ftes = ftes.Add(initiative.Impact.FTECount.Decimal)
		}
	}

	return entities.KPIs{
		TotalInitiatives:  len(initiatives),
		TotalDollarImpact: dollars,
		TotalFTEImpact:    ftes,
		InProduction:      len(groups.InProduction),
		PocDone:           len(groups.PocDone),
		PocInProgress:     len(groups.PocInProgress),
		Unclassified:      len(groups.Unclassified),
	}
}

// SelectHighlights orders by dollar amount (missing last), then stage maturity, then input order.
// Initiatives with no figures are only eligible when they are in production.
func SelectHighlights(initiatives []entities.Initiative, max int) []entities.Highlight {
	candidates := make([]entities.Initiative, 0, len(initiatives))
	for _, initiative := range initiatives {
		if initiative.Impact.HasFigures() || initiative.Status == entities.StatusInProduction {
			candidates = append(candidates, initiative)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Impact.DollarAmount, candidates[j].Impact.DollarAmount
		if a.Valid != b.Valid {
			return a.Valid
		}
		if a.Valid && !a.Decimal.Equal(b.Decimal) {
			return a.Decimal.GreaterThan(b.Decimal)
		}
		return candidates[i].Status.Rank() < candidates[j].Status.Rank()
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}

	highlights := make([]entities.Highlight, 0, len(candidates))
	for _, initiative := range candidates {
		highlights = append(highlights, entities.Highlight{
			InitiativeID: initiative.ID,
			Name:         initiative.Name,
			Department:   initiative.Department,
			Status:       initiative.Status,
			Text:         highlightText(initiative),
		})
	}
	return highlights
}

func highlightText(initiative entities.Initiative) string {
	subject := initiative.Name
	if initiative.Department != "" {
		subject += " (" + initiative.Department + ")"
	}

	stage := string(initiative.Status)
	if !initiative.Status.IsClassified() {
		stage = "Unclassified"
	}

	var figures []string
	if initiative.Impact.DollarAmount.Valid {
		figures = append(figures, FormatDollars(initiative.Impact.DollarAmount.Decimal)+" estimated impact")
	}
	if initiative.Impact.FTECount.Valid {
		figures = append(figures, plural(initiative.Impact.FTECount.Decimal, "FTE", "FTEs"))
	}

	if len(figures) == 0 {
		return fmt.Sprintf("%s, %s", subject, stage)
	}
	return fmt.Sprintf("%s, %s: %s", subject, stage, strings.Join(figures, ", "))
}

// FormatDollars renders an amount as US dollars, dropping cents when they are zero
func FormatDollars(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return strings.TrimSuffix(money.New(cents, money.USD).Display(), ".00")
}

// DefaultRecommendationRules returns the built-in heuristics in evaluation order
func DefaultRecommendationRules() []RecommendationRule {
	return []RecommendationRule{
		NeedsOwnerRule,
		ProductionBacklogRule,
		UnclassifiedStageRule,
		UnquantifiedImpactRule,
		DepartmentConcentrationRule(4),
	}
}

// NeedsOwnerRule fires once when any initiative has the TBD owner sentinel
func NeedsOwnerRule(initiatives []entities.Initiative, _ entities.StageGroups) (string, bool) {
	var names []string
	for _, initiative := range initiatives {
		if initiative.NeedsOwner() {
			names = append(names, initiative.Name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return fmt.Sprintf("Assign executive sponsors to %s currently marked %s: %s.",
		countOf(len(names), "initiative", "initiatives"), entities.OwnerTBD, strings.Join(names, ", ")), true
}

// ProductionBacklogRule fires when completed POCs are piling up relative to production
func ProductionBacklogRule(_ []entities.Initiative, groups entities.StageGroups) (string, bool) {
	done, live := len(groups.PocDone), len(groups.InProduction)
	if done == 0 || done < live {
		return "", false
	}
	return fmt.Sprintf("Prioritize production rollout: %s waiting versus %s in production.",
		countOf(done, "completed POC is", "completed POCs are"), countOf(live, "initiative", "initiatives")), true
}

// UnclassifiedStageRule fires when some statuses match none of the known stages
func UnclassifiedStageRule(_ []entities.Initiative, groups entities.StageGroups) (string, bool) {
	if len(groups.Unclassified) == 0 {
		return "", false
	}
	names := make([]string, 0, len(groups.Unclassified))
	for _, initiative := range groups.Unclassified {
		names = append(names, initiative.Name)
	}
	return fmt.Sprintf("Confirm the pipeline stage of %s with an unrecognized status: %s.",
		countOf(len(names), "initiative", "initiatives"), strings.Join(names, ", ")), true
}

// UnquantifiedImpactRule fires when initiatives carry neither a dollar nor an FTE figure
func UnquantifiedImpactRule(initiatives []entities.Initiative, _ entities.StageGroups) (string, bool) {
	missing := 0
	for _, initiative := range initiatives {
		if !initiative.Impact.HasFigures() {
			missing++
		}
	}
	if missing == 0 {
		return "", false
	}
	return fmt.Sprintf("Quantify dollar or FTE impact for %s without a measurable estimate.",
		countOf(missing, "initiative", "initiatives")), true
}

// DepartmentConcentrationRule fires when one department owns more than half of at least minTotal initiatives
func DepartmentConcentrationRule(minTotal int) RecommendationRule {
	return func(initiatives []entities.Initiative, _ entities.StageGroups) (string, bool) {
		total := len(initiatives)
		if total < minTotal {
			return "", false
		}

		counts := make(map[string]int)
		var order []string
		for _, initiative := range initiatives {
			if initiative.Department == "" {
				continue
			}
			if _, seen := counts[initiative.Department]; !seen {
				order = append(order, initiative.Department)
			}
			counts[initiative.Department]++
		}

		top, topCount := "", 0
		for _, dept := range order {
			if counts[dept] > topCount {
				top, topCount = dept, counts[dept]
			}
		}
		if topCount*2 <= total {
			return "", false
		}
		return fmt.Sprintf("Broaden adoption beyond %s, which accounts for %d of %d initiatives.", top, topCount, total), true
	}
}

func countOf(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

func plural(n decimal.Decimal, singular, pluralForm string) string {
	if n.Equal(decimal.NewFromInt(1)) {
		return n.String() + " " + singular
	}
	return n.String() + " " + pluralForm
}

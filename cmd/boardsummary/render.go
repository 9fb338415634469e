package main

import (
	"fmt"
	"strings"

	"github.com/zatekoja/aiportfolioboard/internal/application/services"
	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// RenderMarkdown lays the portfolio out the way the dashboard does: KPIs, highlights,
// recommendations, then one table per pipeline stage.
func RenderMarkdown(p *entities.Portfolio) string {
	var b strings.Builder
	kpis := p.Summary.KPIs

	title := p.Metadata.Title
	if title == "" {
		title = "AI Use Cases"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if p.Metadata.Source != "" {
		fmt.Fprintf(&b, "_Source: %s", p.Metadata.Source)
		if p.Metadata.LastUpdated != "" {
			fmt.Fprintf(&b, ", updated %s", p.Metadata.LastUpdated)
		}
		b.WriteString("_\n\n")
	}

	b.WriteString("## Key metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Initiatives | %d |\n", kpis.TotalInitiatives)
	fmt.Fprintf(&b, "| Estimated dollar impact | %s |\n", services.FormatDollars(kpis.TotalDollarImpact))
	fmt.Fprintf(&b, "| Estimated FTE impact | %s |\n", kpis.TotalFTEImpact.String())
	fmt.Fprintf(&b, "| In production | %d |\n", kpis.InProduction)
	fmt.Fprintf(&b, "| POC done | %d |\n", kpis.PocDone)
	fmt.Fprintf(&b, "| POC in progress | %d |\n", kpis.PocInProgress)
	if kpis.Unclassified > 0 {
		fmt.Fprintf(&b, "| Unclassified | %d |\n", kpis.Unclassified)
	}
	b.WriteString("\n")

	if len(p.Summary.Highlights) > 0 {
		b.WriteString("## Strategic highlights\n\n")
		for _, h := range p.Summary.Highlights {
			fmt.Fprintf(&b, "- %s\n", h.Text)
		}
		b.WriteString("\n")
	}

	if len(p.Summary.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range p.Summary.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	groups := p.Summary.Groups
	writeStage(&b, string(entities.StatusInProduction), groups.InProduction)
	writeStage(&b, string(entities.StatusPocDone), groups.PocDone)
	writeStage(&b, string(entities.StatusPocInProgress), groups.PocInProgress)
	writeStage(&b, "Unclassified", groups.Unclassified)

	return b.String()
}

func writeStage(b *strings.Builder, heading string, initiatives []entities.Initiative) {
	if len(initiatives) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s (%d)\n\n", heading, len(initiatives))
	b.WriteString("| Initiative | Department | Owner | Impact |\n|---|---|---|---|\n")
	for _, i := range initiatives {
		owner := i.Owner
		if i.NeedsOwner() {
			owner = "**" + entities.OwnerTBD + "**"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", cell(i.Name), cell(i.Department), cell(owner), cell(i.ImpactText))
	}
	b.WriteString("\n")
}

// cell keeps free text from breaking the table
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

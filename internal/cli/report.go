package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/engine"
	"github.com/Veraticus/rfq-flow/internal/model"
)

// RenderSummary renders the end-of-run box.
func RenderSummary(summary *engine.Summary, dryRun bool) string {
	if summary.Items == 0 {
		return FormatInfo("No queue items to process")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Queue items: %d\n", ChartIcon, summary.Items)
	fmt.Fprintf(&b, "%s\n", FormatSuccess(fmt.Sprintf("Drafted: %d", summary.Drafted())))
	if n := summary.Failed(); n > 0 {
		fmt.Fprintf(&b, "%s\n", FormatError(fmt.Sprintf("Failed: %d", n)))
	}
	if n := summary.Skipped(); n > 0 {
		fmt.Fprintf(&b, "%s\n", WarningStyle.Render(fmt.Sprintf("%s Skipped: %d", SkipIcon, n)))
		for _, status := range summary.Statuses() {
			if status.IsSkipped() {
				fmt.Fprintf(&b, "    %s %d\n", SubtleStyle.Render(string(status)+":"), summary.Counts[status])
			}
		}
	}
	fmt.Fprintf(&b, "Time taken: %s", summary.Duration.Round(time.Millisecond))

	title := "RFQ Run Complete"
	if dryRun {
		title += " (dry run)"
	}
	return RenderBox(title, b.String())
}

// RenderProcessMatches renders process search results grouped by vendor.
func RenderProcessMatches(query string, groups []catalog.VendorGroup[catalog.ProcessMatch]) string {
	if len(groups) == 0 {
		return FormatWarning(fmt.Sprintf("No vendors found for process %q", query))
	}

	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("Vendors offering %q (%d)", query, len(groups))))
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString(renderVendorHeading(g.Vendor))
		for _, m := range g.Matches {
			fmt.Fprintf(&b, "  • %s\n", BoldStyle.Render(m.Process.Name))
			for _, s := range m.Process.Specs {
				fmt.Fprintf(&b, "      %s\n", formatSpec(s))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSpecMatches renders spec search results grouped by vendor.
func RenderSpecMatches(query string, groups []catalog.VendorGroup[catalog.SpecMatch]) string {
	if len(groups) == 0 {
		return FormatWarning(fmt.Sprintf("No vendors found for spec %q", query))
	}

	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("Vendors listing spec %q (%d)", query, len(groups))))
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString(renderVendorHeading(g.Vendor))
		for _, m := range g.Matches {
			fmt.Fprintf(&b, "  • %s  %s\n", BoldStyle.Render(m.Process), formatSpec(m.Spec))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVendorHeading(v model.Vendor) string {
	heading := InfoStyle.Bold(true).Render(v.Name)
	var details []string
	if v.Location != "" {
		details = append(details, v.Location)
	}
	if v.Website != "" {
		details = append(details, v.Website)
	}
	if v.IsCUIApproved() {
		details = append(details, "CUI approved")
	}
	if len(details) > 0 {
		heading += " " + SubtleStyle.Render("("+strings.Join(details, ", ")+")")
	}
	return heading + "\n"
}

func formatSpec(s model.Spec) string {
	if s.Familiar {
		return s.Number + " " + SuccessStyle.Render(SuccessIcon+" familiar")
	}
	return s.Number
}

// RenderOutcomes renders outcome log entries as a table, newest first.
func RenderOutcomes(outcomes []model.Outcome) string {
	if len(outcomes) == 0 {
		return FormatInfo("The outcome log is empty")
	}

	header := []string{"Time", "Quote", "Part", "Process", "Vendor", "Recipient", "Status"}
	rows := make([][]string, len(outcomes))
	for i, o := range outcomes {
		rows[i] = []string{
			o.Timestamp.Local().Format("2006-01-02 15:04"),
			o.QuoteID,
			o.PartNumber,
			o.Process,
			o.VendorID,
			o.Recipient,
			StatusIcon(o.Status) + " " + string(o.Status),
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = TableCellStyle.Width(widths[i] + 2).Render(c)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, out...))
	}

	lines := []string{renderRow(header, TableHeaderStyle)}
	for i, row := range rows {
		style := StatusStyle(outcomes[i].Status)
		if outcomes[i].Status == model.OutcomeDrafted {
			style = lipgloss.NewStyle()
		}
		lines = append(lines, renderRow(row, style))
	}
	lines = append(lines, SubtleStyle.Render(strconv.Itoa(len(outcomes))+" entries"))
	return strings.Join(lines, "\n")
}

// RenderStatusCounts renders a one-line tally per status, in status order.
func RenderStatusCounts(counts map[model.OutcomeStatus]int) string {
	if len(counts) == 0 {
		return ""
	}

	statuses := make([]model.OutcomeStatus, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = StatusStyle(status).Render(fmt.Sprintf("%s %s: %d", StatusIcon(status), status, counts[status]))
	}
	return ChartIcon + " " + strings.Join(parts, "  ")
}

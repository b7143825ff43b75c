// Package cli renders rfq output for the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rfq-flow/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5B8DEF")
	// SuccessColor marks created drafts.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor marks skipped vendors.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor marks failed drafts.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor is used for neutral notices.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor is used for secondary details.
	SubtleColor = lipgloss.Color("#666666")
	borderColor = lipgloss.Color("#333")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames run summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// TableHeaderStyle underlines the outcome table header.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	// TableCellStyle pads outcome table cells.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	MailIcon    = "✉️"
	ChartIcon   = "📊"
	SkipIcon    = "↷"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the mail icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(MailIcon + " " + title)
}

// RenderBox renders content under a title in a rounded box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}

// StatusStyle picks the color for an outcome status.
func StatusStyle(status model.OutcomeStatus) lipgloss.Style {
	switch {
	case status == model.OutcomeDrafted:
		return SuccessStyle
	case status == model.OutcomeFailedDraft:
		return ErrorStyle
	case status.IsSkipped():
		return WarningStyle
	default:
		return lipgloss.NewStyle()
	}
}

// StatusIcon picks the icon shown beside an outcome status.
func StatusIcon(status model.OutcomeStatus) string {
	switch {
	case status == model.OutcomeDrafted:
		return SuccessIcon
	case status == model.OutcomeFailedDraft:
		return ErrorIcon
	case status.IsSkipped():
		return SkipIcon
	default:
		return " "
	}
}

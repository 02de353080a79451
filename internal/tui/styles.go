package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/squarelake/paydesk/pkg/domain"
)

// Palette: slate chrome, amber accent, status colors for tickets and jobs.
var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4ec")).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c8c8d4"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#707888"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#505868"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05c5c"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844"))

	logoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)

	groupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#505868")).Italic(true)

	cursorBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844"))

	inputPromptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844"))
	inputPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#505868")).Italic(true)

	toastErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0a0a10")).Background(lipgloss.Color("#e05c5c")).Padding(0, 1)
	toastOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0a0a10")).Background(lipgloss.Color("#34d474")).Padding(0, 1)
)

// statusStyle colors a ticket, batch, or job status string.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case domain.TicketOpen, "FAILED", "REJECTED":
		return errorStyle
	case domain.TicketPending, "RUNNING", "PROCESSING":
		return warnStyle
	case domain.TicketResolved, "DONE", "OK", "ACTIVE", "SUCCEEDED":
		return okStyle
	case domain.TicketClosed, "DISABLED":
		return metaStyle
	default:
		return dimStyle
	}
}

// roleStyle colors a role code in user listings.
func roleStyle(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleSuperAdmin:
		return errorStyle
	case domain.RoleAdmin:
		return warnStyle
	case domain.RoleCustomerService:
		return okStyle
	default:
		return dimStyle
	}
}

// helpEntry renders one key/label pair for the bottom help line.
func helpEntry(key, label string) string {
	return accentStyle.Render(key) + " " + dimStyle.Render(label)
}

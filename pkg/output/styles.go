package output

import "github.com/charmbracelet/lipgloss"

var (
	titleColor   = lipgloss.Color("#4ECDC4")
	subtleColor  = lipgloss.Color("#666666")
	successColor = lipgloss.Color("#95E1D3")
	warningColor = lipgloss.Color("#FFE66D")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(titleColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)

// tint colors a schedule row with its refinancing period color.
func tint(line, color string) string {
	if color == "" {
		return line
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(line)
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/pinroute/internal/client"
	"golang.org/x/term"
)

// Theme holds the color scheme for command output.
type Theme struct {
	Title   lipgloss.Color
	Success lipgloss.Color
	Warn    lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color

	// plain disables styling, e.g. when stdout is not a terminal.
	plain bool
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Warn:    lipgloss.Color("#FFAF00"), // amber
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// stdoutIsTerminal reports whether output goes to an interactive terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// outputTheme returns the default theme, unstyled when stdout is not a terminal.
func outputTheme() Theme {
	t := defaultTheme
	t.plain = !stdoutIsTerminal()
	return t
}

func (t Theme) render(s lipgloss.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Render(text)
}

func (t Theme) title(text string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Title).Bold(true), text)
}

func (t Theme) success(text string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Success).Bold(true), text)
}

func (t Theme) warn(text string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Warn), text)
}

func (t Theme) failure(text string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Error).Bold(true), text)
}

func (t Theme) hint(text string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Hint).Italic(true), text)
}

// confidence colors a score: green above 90, amber otherwise.
func (t Theme) confidence(score int) string {
	s := fmt.Sprintf("%d%%", score)
	if score > 90 {
		return t.success(s)
	}
	return t.warn(s)
}

func formatAddress(a client.Address) string {
	parts := []string{a.OfficeName}
	if a.OfficeType != "" {
		parts[0] += " " + a.OfficeType
	}
	parts = append(parts, a.District)
	if a.State != "" {
		parts = append(parts, a.State)
	}
	return strings.Join(parts, ", ") + " - " + a.Pincode
}

// renderValidation formats a validation result.
func renderValidation(t Theme, v *client.Validation) string {
	var b strings.Builder
	if v.Success && v.CorrectedAddress != nil {
		fmt.Fprintf(&b, "%s %s\n", t.success("✓"), formatAddress(*v.CorrectedAddress))
		fmt.Fprintf(&b, "  Confidence: %s\n", t.confidence(v.Confidence))
	} else {
		fmt.Fprintf(&b, "%s %s\n", t.failure("✗"), v.Message)
	}
	if v.Success && v.Message != "" {
		fmt.Fprintf(&b, "  %s\n", t.hint(v.Message))
	}

	if len(v.Alternatives) > 0 {
		label := "Alternatives:"
		if !v.Success {
			label = "Did you mean:"
		}
		fmt.Fprintf(&b, "\n%s\n", t.title(label))
		for _, alt := range v.Alternatives {
			fmt.Fprintf(&b, "  • %s, %s - %s (%s)\n", alt.OfficeName, alt.District, alt.Pincode, t.confidence(alt.Confidence))
		}
	}
	return b.String()
}

// renderRoute formats a route result.
func renderRoute(t Theme, r *client.RouteResult) string {
	var b strings.Builder
	if !r.Success || r.Route == nil {
		fmt.Fprintf(&b, "%s %s\n", t.failure("✗"), r.Message)
		return b.String()
	}

	route := r.Route
	fmt.Fprintf(&b, "%s\n\n", t.title(fmt.Sprintf("%s → %s", route.Source.Hub, route.Destination.Hub)))
	for _, leg := range route.Path {
		line := fmt.Sprintf("  %d. %s (%s)", leg.StepNumber, leg.HubName, leg.District)
		if leg.DistanceFromPrevious != nil {
			line += t.hint(fmt.Sprintf("  +%d km", *leg.DistanceFromPrevious))
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\n  Distance: %d km\n", route.TotalDistance)
	fmt.Fprintf(&b, "  Hops:     %d\n", route.NumberOfHops)
	fmt.Fprintf(&b, "  Time:     %s\n", formatMinutes(route.EstimatedTime))
	if route.Message != "" {
		fmt.Fprintf(&b, "\n  %s\n", t.hint(route.Message))
	}
	return b.String()
}

// formatMinutes renders minutes as "20h 23m".
func formatMinutes(m int64) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

// renderHubs formats the hub list as an aligned table.
func renderHubs(t Theme, hubs []client.Hub) string {
	width := 0
	for _, h := range hubs {
		width = max(width, len(h.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.title(fmt.Sprintf("%d hubs", len(hubs))))
	for _, h := range hubs {
		fmt.Fprintf(&b, "  %-*s  %-12s %d connections\n", width, h.Name, h.District, h.Connections)
	}
	return b.String()
}

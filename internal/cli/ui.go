package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lotplan/pkg/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError     = lipgloss.NewStyle().Foreground(colorRed)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconGhost   = "◌"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Layout Output
// =============================================================================

// formatPose renders a position and rotation compactly, e.g. "(140, 20) 45°".
func formatPose(p layout.Pose) string {
	return fmt.Sprintf("(%s, %s) %s°", formatNum(p.X), formatNum(p.Y), formatNum(p.Rotation))
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printViolations warns about spots left outside the canvas.
func printViolations(s *layout.State) {
	if v := s.Violations(); len(v) > 0 {
		printWarning("%d spot(s) lie outside the canvas: %v", len(v), v)
		printDetail("move them or enlarge the canvas before publishing")
	}
}

// spotTable builds the table shown by show and the editor. The row of the
// spot with id selected is highlighted; pass 0 for none.
func spotTable(s *layout.State, selected int) *table.Table {
	violations := s.Violations()
	spots := s.Spots()

	rows := make([][]string, len(spots))
	for i, sp := range spots {
		rows[i] = []string{
			strconv.Itoa(sp.ID), sp.Label,
			formatNum(sp.X), formatNum(sp.Y), formatNum(sp.Rotation) + "°",
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "X", "Y", "Rotation").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(spots) {
				return base
			}
			sp := spots[row]
			switch {
			case sp.ID == selected:
				return base.Foreground(colorGreen).Bold(true)
			case slices.Contains(violations, sp.ID):
				return base.Foreground(colorRed)
			default:
				return base
			}
		})
}

// printLayout prints the canvas summary, the spot table and the ghost.
func printLayout(s *layout.State) {
	canvas, size := s.Canvas(), s.SpotSize()
	fmt.Println(StyleTitle.Render("Layout"))
	printKeyValue("Canvas", fmt.Sprintf("%s × %s", formatNum(canvas.Width), formatNum(canvas.Height)))
	printKeyValue("Spot size", fmt.Sprintf("%s × %s", formatNum(size.W), formatNum(size.H)))
	printKeyValue("Spots", strconv.Itoa(s.Len()))

	if s.Len() > 0 {
		fmt.Println(spotTable(s, 0).Render())
	}

	if ghost, err := s.Suggest(); err == nil {
		fmt.Println(StyleDim.Render(iconGhost+" next suggested spot ") + StyleHighlight.Render(formatPose(ghost)))
	}
	printViolations(s)
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// Step sizes cycled with +/- in the editor, in canvas units.
var editorSteps = []float64{1, 5, 10, 25, 50}

const editorResizeStep = 50.0

var (
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	editorInputStyle  = lipgloss.NewStyle().Foreground(colorWhite).Underline(true)
)

func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the layout interactively",
		Long: `Open the layout in a keyboard-driven editor. Every key press is one edit and
is refused, with the reason shown, if it would leave the canvas or overlap
another spot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadDraft()
			if err != nil {
				return err
			}
			m := newEditorModel(s, c.saveDraft)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if em, ok := final.(editorModel); ok && em.dirty {
				printWarning("Quit without saving")
			}
			return nil
		},
	}
}

type editorMode int

const (
	modeNormal editorMode = iota
	modeLabel
)

// editorModel is the bubbletea model behind lotplan edit. It holds the only
// reference to the layout while the program runs.
type editorModel struct {
	state *layout.State
	save  func(*layout.State) error

	selected    int // spot id, 0 when the layout is empty
	step        int // index into editorSteps
	mode        editorMode
	input       string
	status      string
	statusErr   bool
	dirty       bool
	confirmQuit bool
}

func newEditorModel(s *layout.State, save func(*layout.State) error) editorModel {
	m := editorModel{state: s, save: save, step: 2}
	if spots := s.Spots(); len(spots) > 0 {
		m.selected = spots[len(spots)-1].ID
	}
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.mode == modeLabel {
		return m.updateLabel(key), nil
	}

	k := key.String()
	if k != "q" && k != "ctrl+c" {
		m.confirmQuit = false
	}
	delta := editorSteps[m.step]

	switch k {
	case "q", "ctrl+c":
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus("unsaved changes: press s to save or q again to quit", true)
			return m, nil
		}
		return m, tea.Quit
	case "s":
		if err := m.save(m.state); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.dirty = false
		m.setStatus("saved", false)
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "up":
		m.nudge(0, -delta)
	case "down":
		m.nudge(0, delta)
	case "left":
		m.nudge(-delta, 0)
	case "right":
		m.nudge(delta, 0)
	case "+", "=":
		m.step = min(m.step+1, len(editorSteps)-1)
		m.setStatus(fmt.Sprintf("step %s", formatNum(editorSteps[m.step])), false)
	case "-":
		m.step = max(m.step-1, 0)
		m.setStatus(fmt.Sprintf("step %s", formatNum(editorSteps[m.step])), false)
	case "r":
		m.rotate(layout.DefaultRotateStep)
	case "R":
		m.rotate(-layout.DefaultRotateStep)
	case "a":
		sp, err := m.state.Add()
		m.apply(err, "added "+sp.Label)
		if err == nil {
			m.selected = sp.ID
		}
	case "g", "enter":
		sp, err := m.state.AcceptSuggestion()
		m.apply(err, "added "+sp.Label+" at the suggestion")
		if err == nil {
			m.selected = sp.ID
		}
	case "x", "delete":
		if m.selected == 0 {
			return m, nil
		}
		id := m.selected
		m.cycle(-1)
		if err := m.state.Remove(id); err != nil {
			m.selected = id
			m.apply(err, "")
			return m, nil
		}
		if m.selected == id {
			m.selected = 0
		}
		m.apply(nil, fmt.Sprintf("removed spot %d", id))
	case "l":
		if sp, ok := m.state.Spot(m.selected); ok {
			m.mode = modeLabel
			m.input = sp.Label
		}
	case ">":
		c := m.state.Canvas()
		m.apply(m.state.ResizeCanvas(c.Width+editorResizeStep, c.Height+editorResizeStep), "canvas enlarged")
	case "<":
		c := m.state.Canvas()
		m.apply(m.state.ResizeCanvas(c.Width-editorResizeStep, c.Height-editorResizeStep), "canvas shrunk")
	}
	return m, nil
}

func (m editorModel) updateLabel(key tea.KeyMsg) editorModel {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.setStatus("relabel cancelled", false)
	case tea.KeyEnter:
		m.mode = modeNormal
		m.apply(m.state.Relabel(m.selected, m.input), "relabelled to "+m.input)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m
}

func (m *editorModel) nudge(dx, dy float64) {
	sp, ok := m.state.Spot(m.selected)
	if !ok {
		return
	}
	m.apply(m.state.Move(sp.ID, sp.X+dx, sp.Y+dy), "moved "+sp.Label)
}

func (m *editorModel) rotate(delta float64) {
	sp, ok := m.state.Spot(m.selected)
	if !ok {
		return
	}
	m.apply(m.state.Rotate(sp.ID, delta), "rotated "+sp.Label)
}

// cycle moves the selection through spots in creation order.
func (m *editorModel) cycle(dir int) {
	spots := m.state.Spots()
	if len(spots) == 0 {
		m.selected = 0
		return
	}
	i := 0
	for j, sp := range spots {
		if sp.ID == m.selected {
			i = j
			break
		}
	}
	i = (i + dir + len(spots)) % len(spots)
	m.selected = spots[i].ID
}

// apply records the outcome of an edit. A refused edit changed nothing, so
// only its reason is shown.
func (m *editorModel) apply(err error, ok string) {
	if err != nil {
		m.setStatus(errors.UserMessage(err), true)
		return
	}
	m.dirty = true
	m.setStatus(ok, false)
}

func (m *editorModel) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m editorModel) View() string {
	var b strings.Builder

	canvas := m.state.Canvas()
	title := fmt.Sprintf("Lot %s × %s · %d spot(s) · step %s",
		formatNum(canvas.Width), formatNum(canvas.Height), m.state.Len(), formatNum(editorSteps[m.step]))
	if m.dirty {
		title += " · modified"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	if m.state.Len() > 0 {
		b.WriteString(spotTable(m.state, m.selected).Render())
		b.WriteString("\n")
	} else {
		b.WriteString(StyleDim.Render("No spots yet. Press a to add one."))
		b.WriteString("\n")
	}

	if ghost, err := m.state.Suggest(); err == nil {
		b.WriteString(StyleDim.Render(iconGhost+" suggestion ") + StyleHighlight.Render(formatPose(ghost)))
		b.WriteString("\n")
	}
	if v := m.state.Violations(); len(v) > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%s outside the canvas: %v", iconWarning, v)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.mode == modeLabel:
		b.WriteString("Label: " + editorInputStyle.Render(m.input+" ") + StyleDim.Render("  ⏎ apply  esc cancel"))
	case m.status != "" && m.statusErr:
		b.WriteString(editorErrorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(editorStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab select  ←↑↓→ move  +/- step  r/R rotate  a add  g accept  l label  x remove  </> canvas  s save  q quit"))
	return b.String()
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/store"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// boardCommand creates the board command.
func (c *CLI) boardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Edit the dashboard interactively",
		Long: `Open a full-screen editor for the dashboard.

  tab / shift+tab   select widget
  m / r             start moving / resizing the selected widget
  arrows or hjkl    nudge the preview
  enter / esc       commit / cancel the gesture
  a                 add a widget
  L                 lock or unlock
  x                 remove
  g                 toggle the debug grid
  q                 quit

The preview turns red where the widget would collide or leave the grid;
committing it is rejected and the widget stays where it was.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			p := tea.NewProgram(newBoardModel(svc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("board: %w", err)
			}
			if err := svc.LastSaveError(); err != nil {
				return fmt.Errorf("last change not saved: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// boardModel - Interactive dashboard editor
// =============================================================================

// boardModel is the bubbletea model of the board command. It only reads
// the Store between keystrokes and changes it through gestures and single
// operations, so autosave sees one commit per action.
type boardModel struct {
	svc     *dashboard.Service
	st      *store.Store
	cursor  int
	gesture *store.Gesture

	adding    bool
	addCursor int
	types     []string

	status    string
	statusErr bool
}

func newBoardModel(svc *dashboard.Service) boardModel {
	return boardModel{
		svc:   svc,
		st:    svc.Store(),
		types: svc.Store().Registry().Types(),
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

// selected returns the widget under the cursor.
func (m boardModel) selected() (layout.Widget, bool) {
	ws := m.st.Widgets()
	if len(ws) == 0 {
		return layout.Widget{}, false
	}
	return ws[min(m.cursor, len(ws)-1)], true
}

func (m *boardModel) setStatus(ok bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = !ok
}

// report shows err, or a save failure after a committed change.
func (m *boardModel) report(verb, id string, err error) {
	switch {
	case err != nil:
		m.setStatus(false, "%s %s: %s", verb, id, errors.UserMessage(err))
	case m.svc.LastSaveError() != nil:
		m.setStatus(false, "%s %s, not saved: %v", verb, id, m.svc.LastSaveError())
	default:
		m.setStatus(true, "%s %s", verb, id)
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch {
	case m.adding:
		return m.updateAdd(key)
	case m.gesture != nil:
		return m.updateGesture(key)
	default:
		return m.updateIdle(key)
	}
}

func (m boardModel) updateIdle(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.st.Widgets())
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "down", "j":
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case "shift+tab", "up", "k":
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case "m", "r":
		w, ok := m.selected()
		if !ok {
			m.setStatus(false, "no widget selected")
			break
		}
		begin := m.st.BeginMove
		if key.String() == "r" {
			begin = m.st.BeginResize
		}
		g, ok := begin(w.ID)
		if !ok {
			m.setStatus(false, "%s is locked", w.ID)
			break
		}
		m.gesture = g
		m.setStatus(true, "%s %s", g.Kind(), w.ID)
	case "L":
		if w, ok := m.selected(); ok {
			verb := "locked"
			if w.Locked {
				verb = "unlocked"
			}
			m.report(verb, w.ID, m.st.Apply(layout.SetWidgetLock{ID: w.ID, Locked: !w.Locked}))
		}
	case "x":
		if w, ok := m.selected(); ok {
			m.report("removed", w.ID, m.st.Apply(layout.RemoveWidget{ID: w.ID}))
			if m.cursor > 0 && m.cursor >= len(m.st.Widgets()) {
				m.cursor--
			}
		}
	case "a":
		m.adding = true
		m.addCursor = 0
	case "g":
		if m.st.ToggleDebugGrid() {
			m.setStatus(true, "debug grid on")
		} else {
			m.setStatus(true, "debug grid off")
		}
	}
	return m, nil
}

func (m boardModel) updateGesture(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.gesture
	switch key.String() {
	case "left", "h":
		g.Nudge(-1, 0)
	case "right", "l":
		g.Nudge(1, 0)
	case "up", "k":
		g.Nudge(0, -1)
	case "down", "j":
		g.Nudge(0, 1)
	case "enter":
		id, kind := g.WidgetID(), g.Kind()
		valid := g.Valid()
		if g.Commit() {
			m.report(kind.String()+"d", id, nil)
		} else if !valid {
			m.setStatus(false, "%s %s rejected: target is occupied or out of bounds", kind, id)
		} else {
			m.setStatus(false, "%s %s rejected", kind, id)
		}
		m.gesture = nil
	case "esc", "q":
		g.Cancel()
		m.gesture = nil
		m.setStatus(true, "cancelled")
	}
	return m, nil
}

func (m boardModel) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "q":
		m.adding = false
	case "up", "k", "shift+tab":
		if m.addCursor > 0 {
			m.addCursor--
		}
	case "down", "j", "tab":
		if m.addCursor < len(m.types)-1 {
			m.addCursor++
		}
	case "enter":
		m.adding = false
		if len(m.types) == 0 {
			break
		}
		widgetType := m.types[m.addCursor]
		id, err := m.st.Add(widgetType, nil)
		if err != nil {
			m.report("add", widgetType, err)
			break
		}
		m.report("added", id, nil)
		m.cursor = len(m.st.Widgets()) - 1
	}
	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder
	snap := m.st.Snapshot()

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Dashboard %s", snap.Grid)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d widgets", len(snap.Widgets))))
	b.WriteString("\n")

	view := gridView{cfg: snap.Grid, widgets: snap.Widgets, debug: snap.DebugGrid}
	if w, ok := m.selected(); ok {
		view.selected = w.ID
	}
	if m.gesture != nil {
		r := m.gesture.Preview()
		view.highlight = &r
		view.highlightValid = m.gesture.Valid()
	}
	b.WriteString(view.Render())
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.addMenu())
	} else if len(snap.Widgets) > 0 {
		b.WriteString(widgetTable(snap.Widgets))
	}
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(m.status))
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(m.help()))

	return b.String()
}

func (m boardModel) help() string {
	switch {
	case m.adding:
		return "↑/↓ choose  ⏎ add  esc back"
	case m.gesture != nil:
		return "arrows nudge  ⏎ commit  esc cancel"
	default:
		return "tab select  m move  r resize  a add  L lock  x remove  g grid  q quit"
	}
}

func (m boardModel) addMenu() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Add widget"))
	b.WriteString("\n")
	reg := m.st.Registry()
	for i, t := range m.types {
		size := reg.DefaultSize(t)
		line := fmt.Sprintf("%-16s %s", t, listDimStyle.Render(size.String()))
		if i == m.addCursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

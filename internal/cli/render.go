package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/store"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

// cellWidth is the number of terminal columns per grid cell.
const cellWidth = 2

var (
	styleGridBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	styleEmptyCell  = lipgloss.NewStyle().Foreground(colorDim)
	styleRuler      = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader     = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// widgetLabel is the single-character tag drawn at a widget's origin.
func widgetLabel(i int) string {
	const labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	return string(labels[i%len(labels)])
}

func widgetStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(widgetColors[i%len(widgetColors)]).
		Foreground(lipgloss.Color("232")).
		Bold(true)
}

// gridView draws the widgets of a grid cell by cell.
type gridView struct {
	cfg     grid.Config
	widgets []layout.Widget
	debug   bool

	// highlight, when set, is drawn over the widgets, e.g. a gesture preview.
	highlight      *grid.Rect
	highlightValid bool
	selected       string
}

func (v gridView) owners() [][]int {
	owner := make([][]int, v.cfg.Rows)
	for y := range owner {
		owner[y] = make([]int, v.cfg.Columns)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}
	for i, w := range v.widgets {
		for y := max(w.Y, 0); y < min(w.Y+w.Height, v.cfg.Rows); y++ {
			for x := max(w.X, 0); x < min(w.X+w.Width, v.cfg.Columns); x++ {
				owner[y][x] = i
			}
		}
	}
	return owner
}

func (v gridView) cell(owner [][]int, x, y int) string {
	blank := strings.Repeat(" ", cellWidth)
	if v.highlight != nil && v.highlight.Contains(grid.Point{X: x, Y: y}) {
		color := colorGreen
		if !v.highlightValid {
			color = colorRed
		}
		return lipgloss.NewStyle().Background(color).Render(blank)
	}

	i := owner[y][x]
	if i < 0 {
		if v.debug {
			return styleEmptyCell.Render("·" + strings.Repeat(" ", cellWidth-1))
		}
		return blank
	}
	w := v.widgets[i]
	style := widgetStyle(i)
	if w.ID == v.selected {
		style = style.Underline(true)
	}
	if x == w.X && y == w.Y {
		label := widgetLabel(i)
		if w.Locked {
			label += "*"
		}
		return style.Render(fmt.Sprintf("%-*s", cellWidth, label))
	}
	return style.Render(blank)
}

// Render returns the bordered grid.
func (v gridView) Render() string {
	owner := v.owners()
	var b strings.Builder

	if v.debug {
		b.WriteString(v.ruler())
		b.WriteString("\n")
	}
	rows := make([]string, v.cfg.Rows)
	for y := 0; y < v.cfg.Rows; y++ {
		var line strings.Builder
		for x := 0; x < v.cfg.Columns; x++ {
			line.WriteString(v.cell(owner, x, y))
		}
		if v.debug {
			line.WriteString(styleRuler.Render(fmt.Sprintf(" %d", y)))
		}
		rows[y] = line.String()
	}
	b.WriteString(styleGridBorder.Render(strings.Join(rows, "\n")))
	return b.String()
}

// ruler labels every fifth column above the grid.
func (v gridView) ruler() string {
	var b strings.Builder
	b.WriteString(" ")
	for x := 0; x < v.cfg.Columns; x++ {
		if x%5 == 0 {
			b.WriteString(fmt.Sprintf("%-*d", cellWidth, x))
			continue
		}
		b.WriteString(strings.Repeat(" ", cellWidth))
	}
	return styleRuler.Render(strings.TrimRight(b.String(), " "))
}

// renderDashboard renders the grid followed by a legend table.
func renderDashboard(snap store.Snapshot, debug bool) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Dashboard %s", snap.Grid)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d widgets", len(snap.Widgets))))
	b.WriteString("\n")
	b.WriteString(gridView{cfg: snap.Grid, widgets: snap.Widgets, debug: debug || snap.DebugGrid}.Render())
	if len(snap.Widgets) > 0 {
		b.WriteString("\n")
		b.WriteString(widgetTable(snap.Widgets))
	}
	return b.String()
}

// widgetTable lists widgets with their grid label.
func widgetTable(widgets []layout.Widget) string {
	rows := make([][]string, len(widgets))
	for i, w := range widgets {
		locked := ""
		if w.Locked {
			locked = iconLocked
		}
		rows[i] = []string{
			widgetLabel(i),
			w.ID,
			w.WidgetType,
			fmt.Sprintf("%d,%d", w.X, w.Y),
			fmt.Sprintf("%dx%d", w.Width, w.Height),
			locked,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Type", "Pos", "Size", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			switch col {
			case 0:
				return widgetStyle(row).Padding(0, 1)
			case 5:
				return styleLocked.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// constraintsTable lists the size limits of every registered type.
func constraintsTable(reg *widget.Registry, types []string) string {
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		c, ok := reg.Constraints(t)
		size := reg.DefaultSize(t)
		if !ok {
			rows = append(rows, []string{t, "-", "-", fmt.Sprintf("%dx%d", size.Width, size.Height)})
			continue
		}
		rows = append(rows, []string{
			t,
			fmt.Sprintf("%dx%d", c.MinWidth, c.MinHeight),
			fmt.Sprintf("%dx%d", c.MaxWidth, c.MaxHeight),
			fmt.Sprintf("%dx%d", size.Width, size.Height),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Min", "Max", "Default").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

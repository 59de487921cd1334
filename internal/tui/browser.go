// Package tui is an interactive terminal browser over saved sampling runs:
// pick a run, pick a grid or projected profile, and inspect it as an ASCII
// chart without leaving the terminal.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/exosim-labs/transpec/internal/storage"
)

type browserState int

const (
	stateRuns browserState = iota
	stateSeries
	stateChart
)

// series is one plottable array from a run: a sampled grid or one column
// of the projected profiles.
type series struct {
	name   string
	values []float64
}

type browser struct {
	store *storage.Store
	runs  []storage.RunMetadata
	err   error

	state        browserState
	cursor       int
	seriesCursor int
	run          *storage.RunMetadata
	series       []series

	width, height int
}

func NewBrowser(st *storage.Store) *browser {
	b := &browser{store: st, width: 80, height: 24}
	runs, err := st.List()
	if err != nil {
		b.err = err
		return b
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	b.runs = runs
	return b
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		return b, nil
	}
	return b, nil
}

func (b browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch b.state {
	case stateRuns:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.runs)-1 {
				b.cursor++
			}
		case "enter", " ":
			if len(b.runs) > 0 {
				b.openRun(b.runs[b.cursor])
			}
		}
	case stateSeries:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "esc":
			b.state, b.seriesCursor, b.err = stateRuns, 0, nil
		case "up", "k":
			if b.seriesCursor > 0 {
				b.seriesCursor--
			}
		case "down", "j":
			if b.seriesCursor < len(b.series)-1 {
				b.seriesCursor++
			}
		case "enter", " ":
			if len(b.series) > 0 {
				b.state = stateChart
			}
		}
	case stateChart:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "esc":
			b.state = stateSeries
		}
	}
	return b, nil
}

// openRun loads every grid snapshot and profile column of a run up front so
// the series view can show sparklines and the chart view never blocks.
func (b *browser) openRun(meta storage.RunMetadata) {
	b.run = &meta
	b.series = b.series[:0]
	b.err = nil

	names := make([]string, 0, len(meta.Grids))
	for name := range meta.Grids {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g, err := b.store.LoadGrid(meta.ID, name)
		if err != nil {
			b.err = err
			continue
		}
		b.series = append(b.series, series{name: name, values: g.Values})
	}

	header, rows, err := b.store.LoadProfiles(meta.ID)
	if err == nil && len(rows) > 0 {
		for j := 1; j < len(header); j++ {
			col := make([]float64, 0, len(rows))
			for _, row := range rows {
				if j < len(row) {
					col = append(col, row[j])
				}
			}
			b.series = append(b.series, series{name: "profile " + header[j], values: col})
		}
	}

	b.state, b.seriesCursor = stateSeries, 0
}

func (b browser) View() string {
	switch b.state {
	case stateRuns:
		return b.viewRuns()
	case stateSeries:
		return b.viewSeries()
	case stateChart:
		return b.viewChart()
	}
	return ""
}

func (b browser) viewRuns() string {
	var s strings.Builder
	s.WriteString("\n\n    " + titleStyle.Render("TRANSPEC") + "\n")
	s.WriteString("    " + subtleStyle.Render("saved sampling runs") + "\n")
	s.WriteString("    " + subtleStyle.Render(strings.Repeat("─", 25)) + "\n\n")

	if len(b.runs) == 0 {
		s.WriteString("    " + dimStyle.Render("no runs saved yet") + "\n")
	}
	for i, run := range b.runs {
		label := fmt.Sprintf("%-28s", run.ID)
		info := fmt.Sprintf("%s  %d grids", run.Timestamp.Format("2006-01-02 15:04"), len(run.Grids))
		if n := len(run.Warnings); n > 0 {
			info += warnStyle.Render(fmt.Sprintf("  %d warnings", n))
		}
		if i == b.cursor {
			s.WriteString(fmt.Sprintf("    %s %s  %s\n",
				cursorStyle.Render("▸"), selectedStyle.Render(label), accentStyle.Render(info)))
		} else {
			s.WriteString(fmt.Sprintf("      %s  %s\n",
				dimStyle.Render(label), dimStyle.Render(info)))
		}
	}

	if b.err != nil {
		s.WriteString("\n    " + warnStyle.Render(b.err.Error()) + "\n")
	}
	s.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "open", "q", "quit") + "\n")
	return s.String()
}

func (b browser) viewSeries() string {
	var s strings.Builder
	s.WriteString("\n\n    " + titleStyle.Render(b.run.ID) + "\n")
	s.WriteString("    " + subtleStyle.Render("grids and projected profiles") + "\n")
	s.WriteString("    " + subtleStyle.Render(strings.Repeat("─", 25)) + "\n\n")

	for i, ser := range b.series {
		label := fmt.Sprintf("%-28s", ser.name)
		spark := sparkline(ser.values, 24)
		count := fmt.Sprintf("%5d pts", len(ser.values))
		if i == b.seriesCursor {
			s.WriteString(fmt.Sprintf("    %s %s %s %s\n",
				cursorStyle.Render("▸"), selectedStyle.Render(label),
				accentStyle.Render(spark), selectedStyle.Render(count)))
		} else {
			s.WriteString(fmt.Sprintf("      %s %s %s\n",
				dimStyle.Render(label), dimStyle.Render(spark), dimStyle.Render(count)))
		}
	}

	if b.err != nil {
		s.WriteString("\n    " + warnStyle.Render(b.err.Error()) + "\n")
	}
	s.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "chart", "esc", "back", "q", "quit") + "\n")
	return s.String()
}

func (b browser) viewChart() string {
	ser := b.series[b.seriesCursor]

	w := b.width - 16
	if w < 30 {
		w = 30
	}
	h := b.height - 10
	if h < 5 {
		h = 5
	}
	if h > 25 {
		h = 25
	}

	chart := asciigraph.Plot(ser.values,
		asciigraph.Height(h), asciigraph.Width(w), asciigraph.Caption(ser.name))

	var s strings.Builder
	s.WriteString("\n  " + titleStyle.Render(b.run.ID) + dimStyle.Render("  /  ") +
		selectedStyle.Render(ser.name) + "\n\n")
	s.WriteString(chartStyle.Render(chart) + "\n\n")
	s.WriteString("  " + keyHints("esc", "back", "q", "quit") + "\n")
	return s.String()
}

func RunBrowser(st *storage.Store) error {
	p := tea.NewProgram(NewBrowser(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

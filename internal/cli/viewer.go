package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/pipeline"
	"github.com/matzehuels/seqmap/pkg/render/linear"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

const (
	viewerDefaultWidth  = 80
	viewerDefaultHeight = 24
	viewerMinZoom       = 10
	viewerChrome        = 4 // title, help, blank, status
)

var (
	viewerCursorStyle    = lipgloss.NewStyle().Reverse(true)
	viewerSelectionStyle = lipgloss.NewStyle().Foreground(colorCyan).Underline(true)
	viewerSequenceStyle  = lipgloss.NewStyle().Foreground(colorGray)
	viewerGutterStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command that browses a document in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [document]",
		Short: "Browse a document in the terminal",
		Long: `Browse a document in the terminal.

The view command draws the sequence with its annotations stacked underneath,
wrapped to the terminal width. The status line lists the annotations under
the cursor.

Keys:
  ←/→ h/l     move one base
  ↑/↓ k/j     move one line
  pgup/pgdn   move one page
  g/G         jump to start/end
  q           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			doc, err := pipeline.Load(args[0])
			if err != nil {
				return fmt.Errorf("load document %s: %w", args[0], err)
			}
			m := newViewerModel(doc, sink.DefaultTheme().With(cfg.Colors))
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(os.Stdout),
			)
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// viewerModel - Terminal sequence map
// =============================================================================

// viewerModel is the bubbletea model for the terminal map.
type viewerModel struct {
	doc    *document.Document
	theme  sink.Theme
	width  int // terminal columns
	height int // terminal rows
	zoom   int // bases per line
	cursor int
	offset int // first visible display line
	tracks []linear.Track
}

func newViewerModel(doc *document.Document, theme sink.Theme) viewerModel {
	m := viewerModel{doc: doc, theme: theme}
	m.resize(viewerDefaultWidth, viewerDefaultHeight)
	return m
}

// resize recomputes the line width and the row packing for a terminal size.
func (m *viewerModel) resize(width, height int) {
	m.width, m.height = width, height
	m.zoom = max(width-m.gutterWidth()-1, viewerMinZoom)
	m.tracks = linear.PackRows(m.doc.Annotations.All(), m.doc.Len(), linear.RowOptions{
		Zoom:      m.zoom,
		RowHeight: 1,
	})
	m.scrollToCursor()
}

func (m viewerModel) gutterWidth() int {
	return len(fmt.Sprint(m.doc.Len())) + 1
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l":
			m.moveCursor(1)
		case "up", "k":
			m.moveCursor(-m.zoom)
		case "down", "j":
			m.moveCursor(m.zoom)
		case "pgup":
			m.moveCursor(-m.zoom * m.pageLines())
		case "pgdown":
			m.moveCursor(m.zoom * m.pageLines())
		case "home", "g":
			m.moveCursor(-m.cursor)
		case "end", "G":
			m.moveCursor(m.doc.Len())
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}
	return m, nil
}

// moveCursor shifts the cursor by delta bases, clamped to the sequence.
func (m *viewerModel) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(m.doc.Len()-1, 0))
	m.scrollToCursor()
}

// pageLines is the number of whole display lines that fit on screen,
// assuming the tallest line.
func (m viewerModel) pageLines() int {
	tallest := 1
	for _, t := range m.tracks {
		tallest = max(tallest, m.lineHeight(t))
	}
	return max(1, (m.height-viewerChrome)/tallest)
}

func (m viewerModel) lineHeight(t linear.Track) int {
	return 1 + len(t.Rows) + 1
}

// scrollToCursor adjusts offset so the cursor's line is on screen.
func (m *viewerModel) scrollToCursor() {
	line := m.cursor / m.zoom
	if line < m.offset {
		m.offset = line
		return
	}
	budget := m.height - viewerChrome
	for m.offset < line {
		used := 0
		for i := m.offset; i <= line && i < len(m.tracks); i++ {
			used += m.lineHeight(m.tracks[i])
		}
		if used <= budget {
			return
		}
		m.offset++
	}
}

func (m viewerModel) View() string {
	var b strings.Builder

	topology := "linear"
	if m.doc.Circular {
		topology = "circular"
	}
	b.WriteString(StyleTitle.Render(m.doc.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d bp · %s · %s", m.doc.Len(), topology, plural(m.doc.Annotations.Len(), "annotation"))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ base  ↑/↓ line  pgup/pgdn page  g/G ends  q quit"))
	b.WriteString("\n\n")

	budget := m.height - viewerChrome
	for i := m.offset; i < len(m.tracks); i++ {
		h := m.lineHeight(m.tracks[i])
		if h > budget && i > m.offset {
			break
		}
		budget -= h
		b.WriteString(m.renderLine(m.tracks[i]))
	}

	b.WriteString(m.statusLine())
	return b.String()
}

// renderLine draws the sequence of one display line and its annotation rows.
func (m viewerModel) renderLine(t linear.Track) string {
	var b strings.Builder
	start := t.Line * m.zoom
	end := min(start+m.zoom, m.doc.Len())
	gutter := m.gutterWidth()

	b.WriteString(viewerGutterStyle.Render(fmt.Sprintf("%*d ", gutter-1, start)))
	seq := m.doc.Sequence()
	for pos := start; pos < end; pos++ {
		ch := string(seq[pos])
		switch {
		case pos == m.cursor:
			b.WriteString(viewerCursorStyle.Render(ch))
		case m.doc.Selection.Contains(pos):
			b.WriteString(viewerSelectionStyle.Render(ch))
		default:
			b.WriteString(viewerSequenceStyle.Render(ch))
		}
	}
	b.WriteString("\n")

	for row := range t.Rows {
		b.WriteString(strings.Repeat(" ", gutter))
		b.WriteString(m.renderRow(t, row))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// renderRow draws the features of one row as bars with arrow heads and
// their caption when it fits inside the bar.
func (m viewerModel) renderRow(t linear.Track, row int) string {
	cells := make([]rune, m.zoom)
	owner := make([]int, m.zoom)
	for i := range cells {
		cells[i] = ' '
		owner[i] = -1
	}

	for si, s := range t.Slots {
		f := s.Fragment
		if s.Row != row || f.Len() == 0 {
			continue
		}
		bar := featureBar(s.Annotation, f)
		for x, r := range bar {
			cells[f.Start+x] = r
			owner[f.Start+x] = si
		}
	}

	var b strings.Builder
	for x := 0; x < len(cells); {
		o := owner[x]
		j := x
		for j < len(cells) && owner[j] == o {
			j++
		}
		run := string(cells[x:j])
		if o < 0 {
			b.WriteString(run)
		} else {
			color := m.theme.FeatureColor(t.Slots[o].Annotation.Type)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run))
		}
		x = j
	}
	return strings.TrimRight(b.String(), " ")
}

// featureBar returns the characters of one fragment: a bar of '=', an arrow
// head on the fragment that ends the feature, and the caption centered when
// there is room.
func featureBar(a annotation.Annotation, f linear.Fragment) []rune {
	n := f.Len()
	bar := []rune(strings.Repeat("=", n))
	if f.HasArrow() {
		switch f.Orientation {
		case interval.Plus:
			bar[n-1] = '>'
		case interval.Minus:
			bar[0] = '<'
		}
	}
	caption := []rune(a.Caption)
	if len(caption) > 0 && len(caption)+2 <= n {
		at := (n - len(caption)) / 2
		copy(bar[at:], caption)
	}
	return bar
}

// statusLine names the cursor position and the annotations covering it.
func (m viewerModel) statusLine() string {
	pos := StyleNumber.Render(fmt.Sprint(m.cursor))
	here := m.doc.Annotations.At(m.cursor)
	if len(here) == 0 {
		return StyleDim.Render("pos ") + pos
	}
	names := make([]string, len(here))
	for i, a := range here {
		names[i] = fmt.Sprintf("%s (%s %s)", a.Caption, a.Type, a.Span)
	}
	return StyleDim.Render("pos ") + pos + StyleDim.Render(" · ") + StyleValue.Render(strings.Join(names, ", "))
}

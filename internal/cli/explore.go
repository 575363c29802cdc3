package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cariskill/roadmap/pkg/dag"
	pkgio "github.com/cariskill/roadmap/pkg/io"
	"github.com/cariskill/roadmap/pkg/pipeline"
	"github.com/cariskill/roadmap/pkg/status"
	"github.com/cariskill/roadmap/pkg/visibility"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		in   inputFlags
		save string
	)

	cmd := &cobra.Command{
		Use:   "explore [payload]",
		Short: "Browse the roadmap interactively",
		Long: `Browse the roadmap interactively.

Move with the arrow keys, fold and unfold a subtree with space, and mark the
selected module as done with x. Locked modules cannot be marked until all of
their prerequisites are done. With --save the final completion list is
written on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd, &in, args)
			if err != nil {
				return err
			}

			m := newExploreModel(c.newRunner(), res, statusSet(res), collapseState(res))
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("explore: %w", err)
			}

			done := final.(exploreModel).completedIDs()
			if save == "" {
				printInfo("%d modules completed", len(done))
				return nil
			}
			if err := pkgio.ExportCompletion(done, save); err != nil {
				return err
			}
			printSuccess("Saved %d completed modules", len(done))
			printFile(save)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&save, "save", "", "write the completion list here on exit")

	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type exploreKeys struct {
	Up       key.Binding
	Down     key.Binding
	Collapse key.Binding
	Complete key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultExploreKeys() exploreKeys {
	return exploreKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Collapse: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "fold")),
		Complete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Collapse, k.Complete, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Collapse, k.Complete}, {k.Help, k.Quit}}
}

// =============================================================================
// exploreModel
// =============================================================================

// exploreModel is the bubbletea model behind `roadmap explore`. Every change
// to the completion set or collapse state re-decorates the built graph; the
// layout is reused.
type exploreModel struct {
	runner    *pipeline.Runner
	res       *pipeline.Result
	completed status.Set
	collapsed visibility.CollapseState

	rows    []*dag.Node
	cursor  int
	offset  int
	height  int
	message string

	keys exploreKeys
	help help.Model
}

func newExploreModel(runner *pipeline.Runner, res *pipeline.Result, completed status.Set, collapsed visibility.CollapseState) exploreModel {
	m := exploreModel{
		runner:    runner,
		res:       res,
		completed: completed,
		collapsed: collapsed,
		height:    15,
		keys:      defaultExploreKeys(),
		help:      help.New(),
	}
	m.rows = treeRows(res.View, res.Visible)
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
		m.help.Width = msg.Width
	case tea.KeyMsg:
		m.message = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Collapse):
			m.toggleCollapse()
		case key.Matches(msg, m.keys.Complete):
			m.toggleComplete()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *exploreModel) move(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.rows)-1, 0))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *exploreModel) selected() *dag.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *exploreModel) toggleCollapse() {
	n := m.selected()
	if n == nil || !n.Collapsible {
		return
	}
	m.collapsed = m.collapsed.Toggle(n.ID)
	m.refresh(n.ID)
}

// toggleComplete follows the click contract: synthetic and locked nodes
// cannot be marked, completed ones can be unmarked.
func (m *exploreModel) toggleComplete() {
	n := m.selected()
	if n == nil || n.Kind.IsSynthetic() {
		return
	}
	if !status.Actionable(n, n.Status) {
		m.message = fmt.Sprintf("%s is locked", n.Label)
		return
	}
	if m.completed.Has(n.ID) {
		delete(m.completed, n.ID)
	} else {
		m.completed[n.ID] = struct{}{}
	}
	m.refresh(n.ID)
}

// refresh re-decorates the graph and keeps the cursor on id.
func (m *exploreModel) refresh(id string) {
	m.res = m.runner.Redecorate(m.res, m.completed, m.collapsed)
	m.rows = treeRows(m.res.View, m.res.Visible)
	if i := slices.IndexFunc(m.rows, func(n *dag.Node) bool { return n.ID == id }); i >= 0 {
		m.cursor = i
	}
	m.move(0)
}

func (m exploreModel) completedIDs() []string {
	ids := make([]string, 0, len(m.completed))
	for _, id := range m.res.View.NodeIDs() {
		if m.completed.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m exploreModel) View() string {
	var b strings.Builder

	subject := m.res.Snapshot.Subject
	b.WriteString(StyleTitle.Render(subject))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(countsLine(m.res.Stats.Counts)))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(StyleWarning.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m exploreModel) renderRow(i int) string {
	n := m.rows[i]
	style, icon := statusStyle(n.Status)
	if n.Kind.IsSynthetic() {
		style, icon = nodeStyle(n.Kind, n.Status), iconOrigin
	}

	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
		style = style.Bold(true)
	}
	fold := "  "
	if n.Collapsible {
		fold = "▾ "
		if n.Collapsed {
			fold = "▸ "
		}
	}

	text := strings.Repeat("  ", n.Depth) + fold + icon + " " + n.Label
	if n.Percentage != "" {
		text += " " + StyleDim.Render(n.Percentage)
	}
	return cursor + style.Render(text)
}

// treeRows lists visible nodes in depth-first order from the root. A node
// reachable along several paths is listed once, under its first parent.
func treeRows(g *dag.DAG, vis visibility.Result) []*dag.Node {
	var rows []*dag.Node
	seen := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		if seen[id] || !vis.IsVisible(id) {
			return
		}
		seen[id] = true
		n, ok := g.Node(id)
		if !ok {
			return
		}
		rows = append(rows, n)
		for _, child := range g.Children(id) {
			walk(child)
		}
	}
	if root := g.Root(); root != "" {
		walk(root)
	}
	return rows
}

func statusSet(res *pipeline.Result) status.Set {
	set := make(status.Set)
	for id, s := range res.Statuses {
		if s == dag.StatusCompleted {
			set[id] = struct{}{}
		}
	}
	return set
}

func collapseState(res *pipeline.Result) visibility.CollapseState {
	state := make(visibility.CollapseState)
	for _, n := range res.View.Nodes() {
		if n.Collapsed {
			state[n.ID] = true
		}
	}
	return state
}

// countsLine summarizes a tally for single-line output.
func countsLine(c status.Counts) string {
	return fmt.Sprintf("%d/%d completed", c.Completed, c.Total())
}

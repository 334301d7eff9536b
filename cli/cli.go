// cli/cli.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/cosmoview/catalog"
	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/report"
	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/mwiater/cosmoview/internal/viewer"
)

// animationInterval is the delay between two steps of the value sweep.
const animationInterval = 500 * time.Millisecond

// viewState represents the current state of the application's view.
type viewState int

const (
	// viewDatasetSelector is the state where the user picks a catalog entry.
	viewDatasetSelector viewState = iota
	// viewLoading is the state while the dataset is fetched and validated.
	viewLoading
	// viewExplorer is the state where the user browses the parameter space.
	viewExplorer
)

// loadFunc fetches and decodes one catalog entry.
type loadFunc func(ctx context.Context, e catalog.Entry) (*dataset.Dataset, error)

// model is the main application model for the Bubble Tea UI.
type model struct {
	// Application configuration.
	config *catalog.Config
	// Loader for the selected entry; replaced in tests.
	load loadFunc
	// Current view state of the application.
	state viewState
	// Indicates if the dataset load is in progress.
	isLoading bool
	// Stores the load error. A failed load never reaches the explorer.
	err error

	datasetList list.Model
	paramList   list.Model
	spinner     spinner.Model
	progress    progress.Model
	viewport    viewport.Model

	// The entry being loaded or explored.
	selectedEntry catalog.Entry
	// Session of the loaded dataset, nil outside the explorer.
	session *viewer.Session
	// Last rejected command, shown in the status line.
	status string
	// Whether the value sweep is running.
	animating bool
	// Incremented each time the sweep starts; ticks of older sweeps are dropped.
	animationGen int

	// Current width and height of the terminal.
	width, height int
	// Timestamp when the load started.
	requestStartTime time.Time
	logger           *slog.Logger
}

// initialModel initializes a new model with default values and sets up
// the spinner, progress bar, lists and viewport.
func initialModel(cfg *catalog.Config) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := make([]list.Item, len(cfg.Datasets))
	for i, e := range cfg.Datasets {
		items[i] = item{title: e.Name, desc: fmt.Sprintf("%s %s", e.SourceType(), e.Path), isDefault: e.Name == cfg.DefaultDataset}
	}
	datasetList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	datasetList.Title = "Select a Dataset"

	paramList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	paramList.Title = "Parameters"
	paramList.SetShowHelp(false)
	paramList.SetShowStatusBar(false)
	paramList.SetFilteringEnabled(false)

	client := cfg.Client()
	return &model{
		config: cfg,
		load: func(ctx context.Context, e catalog.Entry) (*dataset.Dataset, error) {
			return catalog.LoadEntry(ctx, e, client)
		},
		state:       viewDatasetSelector,
		datasetList: datasetList,
		paramList:   paramList,
		spinner:     s,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		viewport:    viewport.New(60, 12),
		logger:      slog.Default(),
	}
}

// item represents a selectable entry in a Bubble Tea list, used for both
// datasets and parameters.
type item struct {
	title     string
	desc      string
	isDefault bool
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string {
	if i.isDefault {
		return "Default dataset"
	}
	return i.desc
}

// FilterValue returns the title of the item, used for filtering in the list.
func (i item) FilterValue() string { return i.title }

// datasetLoadedMsg is sent when the selected dataset decoded and validated.
type datasetLoadedMsg struct {
	entry catalog.Entry
	ds    *dataset.Dataset
}

// datasetLoadErr is sent when the dataset could not be loaded.
type datasetLoadErr error

// tickMsg drives the value sweep animation started as generation gen.
type tickMsg struct {
	gen int
	at  time.Time
}

// loadDatasetCmd performs the single asynchronous load of an entry.
func loadDatasetCmd(e catalog.Entry, load loadFunc) tea.Cmd {
	return func() tea.Msg {
		ds, err := load(context.Background(), e)
		if err != nil {
			return datasetLoadErr(err)
		}
		return datasetLoadedMsg{entry: e, ds: ds}
	}
}

// tickCmd schedules the next animation step.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(animationInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// Init initializes the Bubble Tea model. It returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.typingFilter() {
				return m, tea.Quit
			}
		case "esc":
			if m.state == viewExplorer || m.err != nil {
				m.backToDatasets()
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.datasetList.SetSize(msg.Width-2, msg.Height-4)
		m.paramList.SetSize(msg.Width/3, msg.Height-6)
		m.progress.Width = max(10, msg.Width*2/3-12)
		m.viewport.Width = max(20, msg.Width*2/3-4)
		m.viewport.Height = max(5, msg.Height-12)
		m.refresh()

	case datasetLoadedMsg:
		m.isLoading = false
		m.startExplorer(msg.entry, msg.ds)
		return m, nil

	case datasetLoadErr:
		m.isLoading = false
		m.err = msg
		m.state = viewDatasetSelector
		return m, nil

	case tickMsg:
		if m.animating && m.state == viewExplorer && msg.gen == m.animationGen {
			m.apply(selection.StepValue{Delta: 1, Wrap: true})
			return m, tickCmd(m.animationGen)
		}
		return m, nil
	}

	switch m.state {
	case viewDatasetSelector:
		if m.isLoading || m.err != nil {
			break
		}
		// enter while typing a filter only applies the filter.
		filtering := m.typingFilter()
		m.datasetList, cmd = m.datasetList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && !filtering {
			if _, ok := m.datasetList.SelectedItem().(item); ok {
				m.selectedEntry = m.config.Datasets[m.datasetList.GlobalIndex()]
				m.state = viewLoading
				m.isLoading = true
				m.requestStartTime = time.Now()
				m.err = nil
				cmds = append(cmds, m.spinner.Tick, loadDatasetCmd(m.selectedEntry, m.load))
			}
		}

	case viewExplorer:
		if msg, ok := msg.(tea.KeyMsg); ok {
			cmds = append(cmds, m.handleExplorerKey(msg))
		} else {
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// typingFilter reports whether keys are going to the dataset list filter.
func (m *model) typingFilter() bool {
	return m.state == viewDatasetSelector && m.datasetList.FilterState() == list.Filtering
}

// handleExplorerKey maps explorer keys onto session commands.
func (m *model) handleExplorerKey(msg tea.KeyMsg) tea.Cmd {
	n := m.session.Dataset().NumParameters()
	if n == 0 {
		return nil
	}
	param := m.session.Selection().Parameter

	switch msg.String() {
	case "up", "k", "shift+tab":
		m.apply(selection.SelectParameter{Index: (param - 1 + n) % n})
	case "down", "j", "tab":
		m.apply(selection.SelectParameter{Index: (param + 1) % n})
	case "left", "h":
		m.apply(selection.StepValue{Delta: -1})
	case "right", "l":
		m.apply(selection.StepValue{Delta: 1})
	case "home":
		m.apply(selection.SelectValue{Index: 0})
	case "end":
		p, _ := m.session.Dataset().Parameter(param)
		m.apply(selection.SelectValue{Index: p.Count() - 1})
	case "f":
		m.apply(selection.ToggleFiducial{})
	case "r":
		m.apply(selection.ToggleRange{})
	case "d":
		m.apply(selection.ResetSelection{})
	case "a":
		m.animating = !m.animating
		if m.animating {
			m.animationGen++
			return tickCmd(m.animationGen)
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// apply runs one command against the session and refreshes the panels.
func (m *model) apply(cmd selection.Command) {
	m.status = ""
	if err := m.session.Apply(cmd); err != nil {
		m.status = err.Error()
	}
	m.refresh()
}

// startExplorer opens a session on a freshly loaded dataset.
func (m *model) startExplorer(e catalog.Entry, ds *dataset.Dataset) {
	m.session = viewer.NewSession(ds,
		viewer.WithName(e.Name),
		viewer.WithOptions(query.Options{ShowFiducial: m.config.ShowFiducial}),
		viewer.WithLogger(m.logger),
	)
	items := make([]list.Item, 0, ds.NumParameters())
	for _, p := range ds.Parameters() {
		items = append(items, item{title: p.Name, desc: p.RangeString})
	}
	m.paramList.SetItems(items)
	m.state = viewExplorer
	m.animating = false
	m.status = ""
	m.refresh()
}

// backToDatasets leaves the explorer (or an error) for the dataset list.
func (m *model) backToDatasets() {
	m.state = viewDatasetSelector
	m.session = nil
	m.animating = false
	m.err = nil
	m.status = ""
}

// refresh recomputes the frame and pushes it into the widgets.
func (m *model) refresh() {
	if m.session == nil {
		return
	}
	f := m.session.Frame()
	m.paramList.Select(f.Selection.Parameter)
	m.viewport.SetContent(statsContent(f))
}

// View renders the application's UI based on its current state.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\n(esc to go back, q to quit)", m.err))
	}

	switch m.state {
	case viewDatasetSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.datasetList.View())

	case viewLoading:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Loading %s... %ss\n", m.spinner.View(), m.selectedEntry.Name, timer)

	case viewExplorer:
		return m.explorerView()

	default:
		return "Unknown state"
	}
}

// explorerView renders the header, parameter list, value bar and statistics.
func (m *model) explorerView() string {
	f := m.session.Frame()
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("Dataset: "+f.Dataset),
		headerStyle.MarginLeft(1).Render(f.Label),
	)
	help := lipgloss.NewStyle().Faint(true).Render(" (↑/↓ parameter, ←/→ value, f fiducial, r range, a animate, esc back, q quit)")
	b.WriteString(status + help + "\n\n")

	p := f.Parameter
	percent := 1.0
	if p.Count() > 1 {
		percent = float64(f.Selection.Value) / float64(p.Count()-1)
	}
	valueLine := fmt.Sprintf("%s  %s  (%d/%d)", p.Name, p.Label(f.Selection.Value), f.Selection.Value+1, p.Count())

	toggles := fmt.Sprintf("fiducial: %s  range: %s", onOff(f.Options.ShowFiducial), onOff(!f.Options.HideRange))
	if m.animating {
		toggles += "  animating"
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		valueLine,
		m.progress.ViewAs(percent),
		lipgloss.NewStyle().Faint(true).Render(toggles),
		"",
		m.viewport.View(),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.paramList.View(), "  ", right))

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.status))
	}
	return b.String()
}

// statsContent lists the plotted curves and both statistics panels.
func statsContent(f viewer.Frame) string {
	title := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var b strings.Builder
	b.WriteString(title.Render("Curves") + "\n")
	for _, c := range f.Curves.Xi.Curves {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", c.Role, c.Label))
	}

	b.WriteString("\n" + title.Render("Clustering ξ(r)") + "\n")
	for _, l := range report.XiLines(f.Xi, f.XiErr) {
		b.WriteString(fmt.Sprintf("  %-20s %s\n", l.Label+":", l.Value))
	}
	b.WriteString("\n" + title.Render("Mass function n(M)") + "\n")
	for _, l := range report.MassLines(f.Mass, f.MassErr) {
		b.WriteString(fmt.Sprintf("  %-20s %s\n", l.Label+":", l.Value))
	}

	for _, err := range f.Omitted() {
		if errors.Is(err, query.ErrCurveNotFound) {
			b.WriteString(muted.Render("  omitted: "+err.Error()) + "\n")
		}
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// StartGUI runs the interactive explorer over the datasets in configPath
// and blocks until the UI exits. Diagnostic output goes to debug.log.
func StartGUI(configPath string) error {
	f, err := tea.LogToFile("debug.log", "debug")
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	cfg, err := catalog.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if len(cfg.Datasets) == 0 {
		return errors.New("config must contain at least one dataset")
	}
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	m := initialModel(&cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

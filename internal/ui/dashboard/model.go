package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/leetcode-tracker/internal/keys"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/render"
	"github.com/nhle/leetcode-tracker/internal/theme"
	"github.com/nhle/leetcode-tracker/internal/tracker"
	"github.com/nhle/leetcode-tracker/internal/ui"
	helpview "github.com/nhle/leetcode-tracker/internal/ui/help"
)

// Service is the part of the tracker the dashboard drives.
type Service interface {
	Today() model.Date
	Daily(ctx context.Context, date model.Date, force bool) (tracker.DailyView, error)
	MarkSolved(ctx context.Context, id string) (tracker.MarkResult, error)
	MarkUnsolved(ctx context.Context, id string) (tracker.MarkResult, error)
	Profile(ctx context.Context) (tracker.Profile, error)
}

// LoadedMsg carries a freshly loaded daily view and profile.
type LoadedMsg struct {
	Date    model.Date
	View    tracker.DailyView
	Profile tracker.Profile
	Err     error
}

// MarkedMsg is sent when a mark or unmark finishes.
type MarkedMsg struct {
	ID     string
	Result tracker.MarkResult
	Err    error
}

// Model is the dashboard: the daily three, profile stats, heatmap and goals.
type Model struct {
	ctx      context.Context
	svc      Service
	keys     *keys.KeyMap
	layout   ui.Layout
	help     helpview.Model
	showHelp bool

	date    model.Date
	cursor  int
	view    tracker.DailyView
	profile tracker.Profile
	loading bool
	status  string
	err     error
}

// New creates a dashboard model showing date.
func New(ctx context.Context, svc Service, date model.Date) Model {
	k := keys.DefaultKeyMap()
	return Model{
		ctx:     ctx,
		svc:     svc,
		keys:    k,
		layout:  ui.NewLayout(80, 24),
		help:    helpview.New(k, 80, 24),
		date:    date,
		loading: true,
	}
}

// Init loads the initial data.
func (m Model) Init() tea.Cmd {
	return m.load(false)
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.help.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case LoadedMsg:
		if !msg.Date.Equal(m.date) {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.view = msg.View
			m.profile = msg.Profile
		}
		return m, nil

	case MarkedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("%s: %s", msg.ID, msg.Result.Outcome)
		return m, m.load(false)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(model.Difficulties)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m.setDate(m.date.AddDays(-1))

	case key.Matches(msg, m.keys.NextDay):
		if next := m.date.AddDays(1); !next.After(m.svc.Today()) {
			return m.setDate(next)
		}
		return m, nil

	case key.Matches(msg, m.keys.Today):
		return m.setDate(m.svc.Today())

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = "refetching"
		return m, m.load(true)

	case key.Matches(msg, m.keys.Toggle):
		p := m.Selected()
		if p == nil {
			return m, nil
		}
		return m, m.toggle(p.ID, m.view.Solved[p.ID])
	}
	return m, nil
}

func (m Model) setDate(d model.Date) (tea.Model, tea.Cmd) {
	if d.Equal(m.date) {
		return m, nil
	}
	m.date = d
	m.loading = true
	m.status = ""
	return m, m.load(false)
}

// Selected returns the problem under the cursor, or nil.
func (m Model) Selected() *model.Problem {
	return m.view.Selection.Pick(model.Difficulties[m.cursor])
}

// Date returns the day being shown.
func (m Model) Date() model.Date {
	return m.date
}

func (m Model) load(force bool) tea.Cmd {
	ctx, svc, date := m.ctx, m.svc, m.date
	return func() tea.Msg {
		view, err := svc.Daily(ctx, date, force)
		if err != nil {
			return LoadedMsg{Date: date, Err: err}
		}
		profile, err := svc.Profile(ctx)
		return LoadedMsg{Date: date, View: view, Profile: profile, Err: err}
	}
}

func (m Model) toggle(id string, solved bool) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		var (
			res tracker.MarkResult
			err error
		)
		if solved {
			res, err = svc.MarkUnsolved(ctx, id)
		} else {
			res, err = svc.MarkSolved(ctx, id)
		}
		return MarkedMsg{ID: id, Result: res, Err: err}
	}
}

// View renders the dashboard.
func (m Model) View() string {
	header := m.layout.Header("LeetCode tracker", m.date.String())
	statusBar := m.layout.StatusBar(m.statusLine())

	if m.showHelp {
		return m.layout.Frame(header, m.help.Full(), statusBar)
	}

	return m.layout.Frame(header, m.content(), statusBar)
}

func (m Model) content() string {
	if m.loading && m.view.Selection.Date.IsZero() {
		return theme.HelpStyle.Render("Loading...")
	}

	var problems []string
	for i, d := range model.Difficulties {
		block := render.Problem(d, m.view.Selection.Pick(d), m.view.Solved)
		if i == m.cursor {
			problems = append(problems, theme.SelectedItemStyle.Render(block))
		} else {
			problems = append(problems, theme.ListItemStyle.Render(block))
		}
	}
	daily := theme.PanelStyle.Render(strings.Join(problems, "\n\n"))

	profile := theme.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		render.Stats(m.profile.Stats),
		"",
		"Last 30 days",
		render.Heatmap(m.profile.Stats.Heatmap),
	))

	var goals []string
	for _, g := range m.profile.Goals {
		goals = append(goals, render.Goal(g))
	}
	if len(goals) == 0 {
		goals = append(goals, theme.HelpStyle.Render("No goals yet"))
	}
	goalPanel := theme.PanelStyle.Render(strings.Join(goals, "\n"))

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.layout.Columns(daily, profile),
		goalPanel,
	)
	if m.err != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, theme.ErrorStyle.Render("Error: "+m.err.Error()))
	}
	return body
}

func (m Model) statusLine() string {
	hints := m.help.Short()
	if m.status != "" {
		return m.status + "  |  " + hints
	}
	return hints
}

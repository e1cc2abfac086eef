// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tui is the interactive pull request browser. One Model drives a
// session through its fetch cycle: the fetch runs as a single tea.Cmd whose
// result message is the only writer of session state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	"github.com/sirseerhq/ado-dashboard/internal/config"
	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
	"github.com/sirseerhq/ado-dashboard/internal/logging"
	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
	"github.com/sirseerhq/ado-dashboard/internal/session"
)

// -- styles -------------------------------------------------------------------

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginLeft(2)

	dimStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)

	bodyStyle = lipgloss.NewStyle().PaddingLeft(2)

	errPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 2)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 3)
)

const (
	titleText      = "Azure DevOps Pull Requests Dashboard"
	idleText       = "Press r to fetch pull requests"
	emptyText      = "No pull requests found in the selected time period."
	noMatchText    = "No pull requests match the selected filters."
	incompleteText = "Please provide Azure DevOps organization, project, and PAT to continue. Press s to edit the settings."
)

type mode int

const (
	modeTable mode = iota
	modeFilters
	modeSettings
)

// -- messages -----------------------------------------------------------------

type fetchResultMsg struct {
	fetchID string
	records []pullrequest.Record
	err     error
}

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

// -- commands -----------------------------------------------------------------

func fetchCmd(ctx context.Context, client azdo.Client, fetchID string, q azdo.Query) tea.Cmd {
	return func() tea.Msg {
		records, err := session.Run(ctx, client, q)
		return fetchResultMsg{fetchID: fetchID, records: records, err: err}
	}
}

func saveCmd(save func(dir string) (string, error), dir string, rows int) tea.Cmd {
	return func() tea.Msg {
		path, err := save(dir)
		return exportDoneMsg{path: path, rows: rows, err: err}
	}
}

// -- model --------------------------------------------------------------------

// Options configures a Model.
type Options struct {
	Config    *config.Config
	StartDate time.Time

	// NewClient builds the client used for the next fetch. It is called
	// again after the connection settings change. Defaults to a RESTClient.
	NewClient func(*config.Config) azdo.Client

	Logger *log.Logger
}

// Model is the Bubble Tea model of the browser.
type Model struct {
	session     *session.Session
	cfg         config.Config
	since       time.Time
	newClient   func(*config.Config) azdo.Client
	clientStale bool
	logger      *log.Logger
	cancel      context.CancelFunc

	mode     mode
	table    table.Model
	spinner  spinner.Model
	filters  *filterForm
	settings *settingsForm

	warning   error
	notice    string
	noticeErr bool

	width  int
	height int
}

// New creates an idle browser.
func New(opts Options) Model {
	cfg := config.DefaultConfig()
	if opts.Config != nil {
		cfg = opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	newClient := opts.NewClient
	if newClient == nil {
		newClient = func(c *config.Config) azdo.Client {
			return azdo.NewRESTClient(c.PAT, c.ClientOptions())
		}
	}
	since := opts.StartDate
	if since.IsZero() {
		since, _ = azdo.ParseStartDate("", time.Now())
	}

	t := table.New(
		table.WithColumns(columns(nil)),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithWidth(120),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	return Model{
		session:     session.New(nil, logger),
		cfg:         *cfg,
		since:       since,
		newClient:   newClient,
		clientStale: true,
		logger:      logger,
		table:       t,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Session exposes the browser's session.
func (m Model) Session() *session.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeTable()

	case fetchResultMsg:
		if m.session.Complete(msg.fetchID, msg.records, msg.err) {
			if m.cancel != nil {
				m.cancel()
				m.cancel = nil
			}
			m.refreshTable()
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.logger.Error("export failed", "err", msg.err)
			m.setNotice(fmt.Sprintf("Export failed: %v", msg.err), true)
		} else {
			m.setNotice(fmt.Sprintf("Saved %d pull requests to %s", msg.rows, msg.path), false)
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != session.StateFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.mode {
	case modeFilters:
		return m.updateFilters(msg)
	case modeSettings:
		return m.updateSettings(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "r":
		return m.startFetch()

	case "f":
		if m.session.State() != session.StateLoaded {
			return m, nil
		}
		m.filters = newFilterForm(m.session.Options(), m.session.Criteria())
		m.mode = modeFilters
		return m, m.filters.Init()

	case "c":
		if m.session.State() == session.StateLoaded && !m.session.Criteria().IsEmpty() {
			m.session.SetCriteria(pullrequest.Criteria{})
			m.refreshTable()
			m.setNotice("Filters cleared", false)
		}
		return m, nil

	case "e":
		return m.export()

	case "s":
		if m.session.State() == session.StateFetching {
			return m, nil
		}
		m.settings = newSettingsForm(m.cfg, m.since)
		m.mode = modeSettings
		return m, m.settings.Init()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(key)
	return m, cmd
}

// startFetch begins a fetch cycle unless one is already in flight.
func (m Model) startFetch() (tea.Model, tea.Cmd) {
	if m.session.State() == session.StateFetching {
		return m, nil
	}

	if err := m.cfg.Validate(); err != nil {
		m.warning = err
		m.logger.Warn("fetch blocked", "err", err)
		return m, nil
	}
	m.warning = nil
	m.notice = ""

	if m.clientStale || m.session.Client() == nil {
		m.session.SetClient(m.newClient(&m.cfg))
		m.clientStale = false
	}

	q := azdo.Query{
		Organization: m.cfg.Azure.Organization,
		Project:      m.cfg.Azure.Project,
		StartDate:    m.since,
	}
	info := m.session.Begin(q)
	m.refreshTable()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	return m, tea.Batch(m.spinner.Tick, fetchCmd(ctx, m.session.Client(), info.FetchID, q))
}

func (m Model) export() (tea.Model, tea.Cmd) {
	if !m.session.CanExport() {
		return m, nil
	}
	artifact, err := m.session.Export()
	if err != nil {
		m.setNotice(fmt.Sprintf("Export failed: %v", err), true)
		return m, nil
	}
	return m, saveCmd(artifact.SaveTo, m.cfg.Defaults.ExportDir, len(m.session.Filtered()))
}

func (m Model) updateFilters(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.filters.Update(msg)
	if m.filters.done {
		return m.finishFilters(), nil
	}
	return m, cmd
}

func (m Model) finishFilters() Model {
	if !m.filters.cancelled {
		m.session.SetCriteria(m.filters.Criteria())
		m.refreshTable()
	}
	m.filters = nil
	m.mode = modeTable
	return m
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.settings.Update(msg)
	if m.settings.done {
		return m.finishSettings(), nil
	}
	return m, cmd
}

func (m Model) finishSettings() Model {
	if !m.settings.cancelled {
		m.cfg.Apply(m.settings.Overrides())
		if since, err := azdo.ParseStartDate(m.settings.since, time.Now()); err == nil {
			m.since = since
		}
		m.clientStale = true
		m.warning = nil
		m.logger.Info("connection settings changed",
			"organization", m.cfg.Azure.Organization,
			"project", m.cfg.Azure.Project,
			"since", m.since.Format(azdo.StartDateLayout))
	}
	m.settings = nil
	m.mode = modeTable
	return m
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) refreshTable() {
	records := m.session.Filtered()
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row(r.Fields())
	}
	m.table.SetRows(nil)
	m.table.SetColumns(columns(m.session.Records()))
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) resizeTable() {
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	m.table.SetHeight(h)
	if m.width > 4 {
		m.table.SetWidth(m.width - 4)
	}
}

// columns sizes each column to its widest value, within limits.
func columns(records []pullrequest.Record) []table.Column {
	titles := pullrequest.Columns()
	limits := []int{10, 60, 12, 30, 30, 19}

	widths := make([]int, len(titles))
	for i, t := range titles {
		widths[i] = lipgloss.Width(t)
	}
	for _, r := range records {
		for i, f := range r.Fields() {
			if w := lipgloss.Width(f); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cols := make([]table.Column, len(titles))
	for i, t := range titles {
		cols[i] = table.Column{Title: t, Width: min(widths[i], max(limits[i], lipgloss.Width(t)))}
	}
	return cols
}

// -- view ---------------------------------------------------------------------

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n" + titleStyle.Render(titleText) + "\n")
	b.WriteString(bodyStyle.Render(m.connectionLine()) + "\n\n")

	switch m.mode {
	case modeFilters:
		b.WriteString(bodyStyle.Render(formStyle.Render(m.filters.View())) + "\n")
		return b.String()
	case modeSettings:
		b.WriteString(bodyStyle.Render(formStyle.Render(m.settings.View())) + "\n")
		return b.String()
	}

	if m.warning != nil {
		b.WriteString(bodyStyle.Render(warnStyle.Render(warningText(m.warning))) + "\n\n")
	}

	b.WriteString(bodyStyle.Render(m.body()) + "\n")

	if m.notice != "" {
		style := okStyle
		if m.noticeErr {
			style = errStyle
		}
		b.WriteString("\n" + bodyStyle.Render(style.Render(m.notice)) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(m.helpLine()) + "\n")
	return b.String()
}

func (m Model) body() string {
	switch m.session.State() {
	case session.StateFetching:
		return m.spinner.View() + " Fetching pull requests..."

	case session.StateEmpty:
		return warnStyle.Render(emptyText)

	case session.StateError:
		return errPanelStyle.Render(errStyle.Render(m.session.Err().Error()))

	case session.StateLoaded:
		var b strings.Builder
		b.WriteString(okStyle.Render(m.session.Info().Summary()) + "\n")
		if line := filterLine(m.session.Criteria()); line != "" {
			b.WriteString(labelStyle.Render(line) + "\n")
		}
		b.WriteString("\n")

		filtered := m.session.Filtered()
		if len(filtered) == 0 {
			b.WriteString(warnStyle.Render(noMatchText) + "\n")
		} else {
			b.WriteString(m.table.View() + "\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("Showing %d of %d pull requests", len(filtered), len(m.session.Records()))))
		return b.String()

	default:
		return dimStyle.Render(idleText)
	}
}

func (m Model) connectionLine() string {
	org := m.cfg.Azure.Organization
	if org == "" {
		org = "(organization not set)"
	}
	project := m.cfg.Azure.Project
	if project == "" {
		project = "(project not set)"
	}
	return fmt.Sprintf("%s %s / %s  %s %s",
		labelStyle.Render("project"), org, project,
		labelStyle.Render("since"), m.since.Format(azdo.StartDateLayout))
}

func (m Model) helpLine() string {
	keys := []string{"r fetch", "s settings"}
	if m.session.State() == session.StateLoaded {
		keys = append(keys, "f filters", "c clear filters", "e export csv", "↑/↓ scroll")
	}
	keys = append(keys, "q quit")
	return strings.Join(keys, " • ")
}

func filterLine(c pullrequest.Criteria) string {
	if c.IsEmpty() {
		return ""
	}
	sel := c.Selection()
	var parts []string
	if len(sel.Statuses) > 0 {
		parts = append(parts, "status: "+strings.Join(sel.Statuses, ", "))
	}
	if len(sel.Repositories) > 0 {
		parts = append(parts, "repository: "+strings.Join(sel.Repositories, ", "))
	}
	if len(sel.Creators) > 0 {
		parts = append(parts, "creator: "+strings.Join(sel.Creators, ", "))
	}
	return "Filtered by " + strings.Join(parts, "; ")
}

func warningText(err error) string {
	if errors.Is(err, relayerrors.ErrConfigIncomplete) {
		return incompleteText
	}
	return err.Error()
}

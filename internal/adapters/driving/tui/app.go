package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/invoicename/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/invoicename/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/invoicename/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/invoicename/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// row is one file in the review list.
type row struct {
	result   domain.FileResult
	selected bool
}

// selectable returns true if the row holds a plan that can still be applied.
func (r row) selectable() bool {
	return r.result.Status == domain.StatusPlanned && r.result.Plan != nil
}

// App is the review TUI following the Elm architecture. It runs a dry-run
// over a directory, lets the user pick plans and applies only those.
type App struct {
	ports  *Ports
	ctx    context.Context
	dir    string
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar

	rows     []row
	cursor   int
	applying bool
	showHelp bool
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a review application for dir.
func NewApp(ports *Ports, dir string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:  ports,
		ctx:    context.Background(),
		dir:    dir,
		styles: s,
		keymap: km,
		bar:    status.NewBar(s, km),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("invoicename - review"),
		a.loadPlans(),
	)
}

// loadPlans runs a dry-run over the directory.
func (a *App) loadPlans() tea.Cmd {
	ctx, rename, dir := a.ctx, a.ports.Rename, a.dir
	return func() tea.Msg {
		report, err := rename.Run(ctx, domain.RunOptions{Dir: dir}, nil)
		return messages.PlansLoaded{Report: report, Err: err}
	}
}

// applySelected applies the selected plans in list order.
func (a *App) applySelected() tea.Cmd {
	plans := make(map[int]domain.RenamePlan)
	order := make([]int, 0, len(a.rows))
	for i, r := range a.rows {
		if r.selected && r.selectable() {
			plans[i] = *r.result.Plan
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return nil
	}

	ctx, rename := a.ctx, a.ports.Rename
	return func() tea.Msg {
		results := make(map[int]domain.FileResult, len(order))
		for _, i := range order {
			results[i] = rename.ApplyPlan(ctx, plans[i])
		}
		return messages.PlansApplied{Results: results}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.PlansLoaded:
		a.loaded(msg)
		return a, nil

	case messages.PlansApplied:
		a.applied(msg)
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if keymap.Matches(k, a.keymap.Quit) {
		return a, tea.Quit
	}
	if a.applying || a.bar.State() == status.StateLoading {
		return a, nil
	}

	switch {
	case keymap.Matches(k, a.keymap.Help):
		a.showHelp = !a.showHelp
	case keymap.Matches(k, a.keymap.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case keymap.Matches(k, a.keymap.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case keymap.Matches(k, a.keymap.Toggle):
		if a.cursor < len(a.rows) && a.rows[a.cursor].selectable() {
			a.rows[a.cursor].selected = !a.rows[a.cursor].selected
			a.updateSelection()
		}
	case keymap.Matches(k, a.keymap.ToggleAll):
		a.toggleAll()
	case keymap.Matches(k, a.keymap.Apply):
		cmd := a.applySelected()
		if cmd != nil {
			a.applying = true
			a.bar.SetState(status.StateApplying)
		}
		return a, cmd
	case keymap.Matches(k, a.keymap.Reload):
		a.bar.SetState(status.StateLoading)
		return a, a.loadPlans()
	}
	return a, nil
}

func (a *App) loaded(msg messages.PlansLoaded) {
	a.err = msg.Err
	a.rows = nil
	a.cursor = 0
	if msg.Err != nil {
		a.bar.SetState(status.StateError)
		a.bar.SetMessage(msg.Err.Error())
		return
	}
	for _, r := range msg.Report.Results {
		rw := row{result: r}
		rw.selected = rw.selectable()
		a.rows = append(a.rows, rw)
	}
	a.bar.SetState(status.StateReady)
	a.updateSelection()
}

func (a *App) applied(msg messages.PlansApplied) {
	a.applying = false
	done, failed := 0, 0
	for i, r := range msg.Results {
		if i < 0 || i >= len(a.rows) {
			continue
		}
		a.rows[i] = row{result: r}
		if r.Status.IsFailure() {
			failed++
		} else {
			done++
		}
	}
	a.bar.SetState(status.StateDone)
	a.bar.SetMessage(fmt.Sprintf("%d applied, %d failed", done, failed))
	a.updateSelection()
}

func (a *App) toggleAll() {
	all := true
	for _, r := range a.rows {
		if r.selectable() && !r.selected {
			all = false
			break
		}
	}
	for i := range a.rows {
		if a.rows[i].selectable() {
			a.rows[i].selected = !all
		}
	}
	a.updateSelection()
}

func (a *App) updateSelection() {
	selected, total := 0, 0
	for _, r := range a.rows {
		if !r.selectable() {
			continue
		}
		total++
		if r.selected {
			selected++
		}
	}
	a.bar.SetSelection(selected, total)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Review renames in " + a.dir))
	b.WriteString("\n\n")

	for i, r := range a.rows {
		b.WriteString(a.renderRow(i, r))
		b.WriteString("\n")
	}
	if len(a.rows) == 0 && a.bar.State() == status.StateReady {
		b.WriteString(a.styles.Muted.Render("No PDF files found."))
		b.WriteString("\n")
	}

	if a.showHelp {
		b.WriteString("\n")
		b.WriteString(a.renderHelp())
	}

	b.WriteString("\n")
	b.WriteString(a.bar.View())
	return b.String()
}

func (a *App) renderRow(i int, r row) string {
	cursor := "  "
	if i == a.cursor {
		cursor = "> "
	}

	check := "   "
	if r.selectable() {
		check = "[ ]"
		if r.selected {
			check = "[x]"
		}
	}

	tag := a.styles.ForStatus(r.result.Status).Render(r.result.Status.Tag(true))
	line := fmt.Sprintf("%s%s %s %s", cursor, check, tag, describe(r.result))
	if i == a.cursor {
		return a.styles.Cursor.Render(line)
	}
	return line
}

// describe renders the file part of a row.
func describe(r domain.FileResult) string {
	switch {
	case r.Plan != nil && r.Status != domain.StatusUnchanged && r.Err == nil:
		return r.FileName() + " -> " + r.Plan.ProposedName()
	case r.Err != nil:
		return r.FileName() + ": " + r.Err.Error()
	default:
		return r.FileName()
	}
}

func (a *App) renderHelp() string {
	var lines []string
	for _, group := range a.keymap.FullHelp() {
		var hints []string
		for _, binding := range group {
			h := binding.Help()
			hints = append(hints, fmt.Sprintf("%-8s %s", h.Key, h.Desc))
		}
		lines = append(lines, strings.Join(hints, "   "))
	}
	return a.styles.Help.Render(strings.Join(lines, "\n"))
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Err returns the error from the last dry-run, if any.
func (a *App) Err() error {
	return a.err
}

// Cursor returns the row under the cursor.
func (a *App) Cursor() int {
	return a.cursor
}

// Selected returns the plans currently selected for apply.
func (a *App) Selected() []domain.RenamePlan {
	var out []domain.RenamePlan
	for _, r := range a.rows {
		if r.selected && r.selectable() {
			out = append(out, *r.result.Plan)
		}
	}
	return out
}

// Results returns the current result of every row.
func (a *App) Results() []domain.FileResult {
	out := make([]domain.FileResult, len(a.rows))
	for i, r := range a.rows {
		out[i] = r.result
	}
	return out
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.bar.SetWidth(width)
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/components/input"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/components/status"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/keymap"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/messages"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/styles"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/views/plan"
	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// App is the single-screen TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	planView *plan.View
	input    *input.PromptInput
	status   *status.Bar
	spinner  spinner.Model

	// account is the display name of the logged-in user, empty when logged out.
	account string
	tier    domain.AccountTier

	// busy is true while a generation command is running.
	busy bool

	// notice is true when a saved session differs from the plan on screen.
	notice bool

	// changes is the watcher channel, nil when not watching.
	changes <-chan struct{}

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	a := &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		planView: plan.NewView(s, km),
		input:    input.NewPromptInput(s),
		status:   status.NewBar(s, km),
		spinner:  sp,
		tier:     domain.TierFree,
	}

	// The process may already hold a session, e.g. when started after a CLI
	// command in the same process.
	if current := ports.Session.Current(); current.HasBaseline() {
		a.showPlan(current.CurrentPlan)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.input.Init(),
		tea.SetWindowTitle("BizPilot"),
		a.loadAccount(),
		a.checkSavedSession(),
	}
	if a.ports.Watcher != nil {
		cmds = append(cmds, a.startWatch())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.AccountLoaded:
		a.tier = msg.Tier
		a.account = ""
		if msg.Authenticated {
			a.account = msg.Name
		}
		a.planView.SetTier(msg.Tier)
		return a, nil

	case messages.PlanGenerated:
		a.busy = false
		if msg.Err != nil {
			a.status.SetState(status.StateError, domain.UserMessage(msg.Err))
			return a, nil
		}
		a.showPlan(msg.Plan)
		a.input.Reset()
		// This write is ours; whatever was saved before is now replaced.
		a.notice = false
		if msg.Modified {
			a.status.SetState(status.StateInfo, "Plan updated.")
		} else {
			a.status.SetState(status.StateInfo, "Plan generated.")
		}
		return a, nil

	case messages.SessionRestored:
		if !msg.OK {
			a.notice = false
			a.status.SetState(status.StateError, "No saved session to restore.")
			return a, nil
		}
		a.showPlan(msg.Plan)
		a.notice = false
		a.status.SetState(status.StateInfo, "Session restored.")
		return a, nil

	case messages.SessionCleared:
		a.showPlan(nil)
		a.notice = false
		a.input.Reset()
		a.status.SetState(status.StateInfo, "Session cleared.")
		return a, nil

	case messages.SavedSessionChecked:
		a.notice = msg.Available
		return a, nil

	case messages.WatchStarted:
		a.changes = msg.Changes
		return a, waitForChange(a.changes)

	case messages.SavedSessionChanged:
		return a, tea.Batch(a.checkSavedSession(), waitForChange(a.changes))

	case messages.WatchStopped:
		a.changes = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(k, a.keymap.Submit):
		return a, a.submit()

	case keymap.Matches(k, a.keymap.Restore):
		if a.busy {
			return a, nil
		}
		return a, a.restore()

	case keymap.Matches(k, a.keymap.Clear):
		if a.busy {
			return a, nil
		}
		return a, a.clear()

	case keymap.Matches(k, a.keymap.ScrollUp), keymap.Matches(k, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.planView, cmd = a.planView.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit generates a plan from the input, or modifies the plan on screen.
func (a *App) submit() tea.Cmd {
	if a.busy {
		a.status.SetState(status.StateError, domain.UserMessage(domain.ErrUpdateInProgress))
		return nil
	}
	text := strings.TrimSpace(a.input.Value())

	modify := a.ports.Session.Current().HasBaseline()
	if !modify && text == "" {
		a.status.SetState(status.StateError, domain.UserMessage(domain.ErrEmptyPrompt))
		return nil
	}

	a.busy = true
	label := "Generating business plan..."
	if modify {
		label = "Updating business plan..."
	}
	a.status.SetState(status.StateGenerating, label)

	ctx, idea := a.ctx, a.ports.Idea
	run := func() tea.Msg {
		if modify {
			p, err := idea.RequestUpdate(ctx, text)
			return messages.PlanGenerated{Plan: p, Modified: true, Err: err}
		}
		p, err := idea.Generate(ctx, text)
		return messages.PlanGenerated{Plan: p, Err: err}
	}
	return tea.Batch(run, a.spinner.Tick)
}

func (a *App) restore() tea.Cmd {
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		p, ok := session.Restore(ctx)
		return messages.SessionRestored{Plan: p, Prompt: session.Current().OriginalPrompt, OK: ok}
	}
}

func (a *App) clear() tea.Cmd {
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		session.Clear(ctx)
		return messages.SessionCleared{}
	}
}

func (a *App) loadAccount() tea.Cmd {
	ctx, auth := a.ctx, a.ports.Auth
	return func() tea.Msg {
		creds, err := auth.Current(ctx)
		if err != nil {
			return messages.AccountLoaded{Tier: domain.TierFree}
		}
		return messages.AccountLoaded{
			Name:          creds.Account.DisplayName(),
			Tier:          creds.Tier(),
			Authenticated: creds.IsAuthenticated(),
		}
	}
}

// checkSavedSession compares the saved plan with the one on screen.
func (a *App) checkSavedSession() tea.Cmd {
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		saved := session.LoadPersisted(ctx)
		if !saved.HasBaseline() {
			return messages.SavedSessionChecked{}
		}
		return messages.SavedSessionChecked{Available: !samePlan(saved.CurrentPlan, session.Current().CurrentPlan)}
	}
}

func (a *App) startWatch() tea.Cmd {
	ctx, watcher := a.ctx, a.ports.Watcher
	return func() tea.Msg {
		changes, err := watcher.Watch(ctx)
		if err != nil {
			return messages.WatchStopped{Err: err}
		}
		return messages.WatchStarted{Changes: changes}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return messages.WatchStopped{}
		}
		return messages.SavedSessionChanged{}
	}
}

func samePlan(a, b domain.PlanDocument) bool {
	if len(b) == 0 {
		return false
	}
	x, errA := a.Canonical()
	y, errB := b.Canonical()
	return errA == nil && errB == nil && x == y
}

func (a *App) showPlan(p domain.PlanDocument) {
	a.planView.SetPlan(p)
	if len(p) > 0 {
		a.input.SetMode(input.ModeChange)
	} else {
		a.input.SetMode(input.ModeIdea)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{a.viewHeader()}
	if a.notice {
		sections = append(sections, a.styles.Notice.Render(
			"A saved session is available. Press ctrl+r to restore it."))
	}
	sections = append(sections, a.planView.View())

	prompt := a.input.View()
	if a.busy {
		prompt = a.spinner.View() + " " + a.styles.Muted.Render(a.status.Message())
	}
	sections = append(sections, prompt, a.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewHeader() string {
	who := a.styles.Muted.Render("not logged in (run: bizpilot login)")
	if a.account != "" {
		who = a.styles.Normal.Render(a.account) + " " + a.styles.Badge.Render(a.tier.String())
	}
	return a.styles.Title.Render("BizPilot") + "  " + who
}

// SetDimensions sets the terminal dimensions and lays out the components.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// header, notice, input (3 lines with border) and status bar
	a.planView.SetDimensions(width, height-7)
	a.input.SetWidth(width)
	a.status.SetWidth(width)
}

// Busy reports whether a generation is running.
func (a *App) Busy() bool {
	return a.busy
}

// NoticeVisible reports whether the saved session banner is shown.
func (a *App) NoticeVisible() bool {
	return a.notice
}

// Status returns the status bar state and message.
func (a *App) Status() (status.State, string) {
	return a.status.State(), a.status.Message()
}

// Plan returns the plan on screen.
func (a *App) Plan() domain.PlanDocument {
	return a.planView.Plan()
}

// Tier returns the account tier in use.
func (a *App) Tier() domain.AccountTier {
	return a.tier
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

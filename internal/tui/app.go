// internal/tui/app.go
//
// The main TUI for Questify. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
	"github.com/yourusername/questify/internal/config"
	"github.com/yourusername/questify/internal/logbook"
	"github.com/yourusername/questify/internal/quest"
	"github.com/yourusername/questify/internal/session"
)

// screen identifies which view is on screen. Navigation between screens
// always passes through the guard in navigate().
type screen int

const (
	screenBoot screen = iota // waiting for the initial identity fetch
	screenLogin
	screenRegister
	screenForgotPassword
	screenDashboard
	screenMuseums
	screenRouteDetail
	screenStopScan
	screenAdminPanel
	screenAdminMuseums
	screenAdminRoutes
	screenAdminPaintings
	screenAdminRouteStops
	screenNotFound
)

// adminScreens require the ADMIN role.
var adminScreens = map[screen]bool{
	screenAdminPanel:      true,
	screenAdminMuseums:    true,
	screenAdminRoutes:     true,
	screenAdminPaintings:  true,
	screenAdminRouteStops: true,
}

// publicScreens are reachable without a session.
var publicScreens = map[screen]bool{
	screenBoot:           true,
	screenLogin:          true,
	screenRegister:       true,
	screenForgotPassword: true,
}

const requestTimeout = 30 * time.Second

// view is what every screen implements, following the pattern of one
// self-contained model per screen.
type view interface {
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
}

// sessionReadyMsg settles the boot-time identity fetch.
type sessionReadyMsg struct{}

// refreshTickMsg drives the proactive session refresh check.
type refreshTickMsg time.Time

// sessionRefreshedMsg settles a proactive refresh.
type sessionRefreshedMsg struct {
	auth *api.AuthResponse
	err  error
}

// navigateMsg asks the app to switch screens; views emit it.
type navigateMsg struct {
	target screen
	// quest coordinates, used by the quest screens
	museumID   int64
	routeID    int64
	stopNumber int
}

// App is the root model. It owns the only shared mutable state (the session
// store) and the currently mounted screen view.
type App struct {
	cfg      *config.Config
	services *api.Services
	session  *session.Store
	logbook  *logbook.Logbook
	state    *config.LocalState

	screen  screen
	current view
	gen     int // bumped on navigation; stale async results are dropped

	width     int
	height    int
	statusMsg string
}

// NewApp wires the root model. The session starts in the loading state; the
// Init command performs the silent identity fetch.
func NewApp(cfg *config.Config, services *api.Services, store *session.Store, book *logbook.Logbook) *App {
	state, err := config.LoadState(cfg.StatePath())
	if err != nil {
		book.Warn("Local state unreadable: %v", err)
		state = &config.LocalState{}
	}
	return &App{
		cfg:      cfg,
		services: services,
		session:  store,
		logbook:  book,
		state:    state,
		screen:   screenBoot,
	}
}

// Init kicks off the silent session fetch and the refresh tick.
func (a *App) Init() tea.Cmd {
	fetch := func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		a.session.Init(ctx, a.services.Auth)
		return sessionReadyMsg{}
	}
	return tea.Batch(fetch, a.scheduleRefreshTick())
}

func (a *App) scheduleRefreshTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// proactiveRefresh renews the session shortly before the access token
// expires, so interactive requests rarely pay the 401 round trip. A failure
// is not fatal; the transparent retry in the client remains the backstop.
func (a *App) proactiveRefresh() tea.Cmd {
	exp := a.session.ExpiresAt()
	if a.session.State() != session.StateAuthenticated || exp.IsZero() {
		return nil
	}
	if time.Until(exp) > 2*time.Minute {
		return nil
	}
	services := a.services
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		auth, err := services.Auth.Refresh(ctx)
		return sessionRefreshedMsg{auth: auth, err: err}
	}
}

// Update routes messages to the mounted screen after handling global keys
// and navigation.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.current != nil {
			return a, a.current.Update(msg)
		}
		return a, nil

	case sessionReadyMsg:
		if a.session.State() == session.StateAuthenticated {
			identity := a.session.Identity()
			a.logbook.Info("Session restored for %s", identity.Email)
			cmd := a.navigate(navigateMsg{target: screenDashboard})
			a.statusMsg = fmt.Sprintf("Ingelogd als %s", identity.Email)
			return a, cmd
		}
		return a, a.navigate(navigateMsg{target: screenLogin})

	case navigateMsg:
		return a, a.navigate(msg)

	case refreshTickMsg:
		return a, tea.Batch(a.scheduleRefreshTick(), a.proactiveRefresh())

	case sessionRefreshedMsg:
		if msg.err != nil {
			a.logbook.Warn("Proactive session refresh failed: %v", msg.err)
			return a, nil
		}
		if msg.auth != nil {
			a.session.SetToken(msg.auth.AccessToken)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	if a.current != nil {
		return a, a.current.Update(msg)
	}
	return a, nil
}

// navigate is the route guard. It checks the session state and the role
// requirement of the target on every transition; nothing is cached, so a
// logout immediately flips any guarded view.
func (a *App) navigate(msg navigateMsg) tea.Cmd {
	target := msg.target
	if !publicScreens[target] {
		switch a.session.State() {
		case session.StateLoading:
			return nil // boot screen is still up
		case session.StateUnauthenticated:
			target = screenLogin
		default:
			if adminScreens[target] && !a.session.Allowed(api.RoleAdmin) {
				target = screenNotFound
			}
		}
	}

	a.gen++
	a.screen = target
	a.statusMsg = ""

	var cmd tea.Cmd
	switch target {
	case screenLogin:
		a.current = newLoginView(a)
	case screenRegister:
		a.current = newRegisterView(a)
	case screenForgotPassword:
		a.current = newForgotPasswordView(a)
	case screenDashboard:
		a.current = newDashboardView(a)
	case screenMuseums:
		v := newMuseumsView(a)
		a.current = v
		cmd = v.load()
	case screenRouteDetail:
		v := newRouteDetailView(a, msg.museumID, msg.routeID)
		a.current = v
		cmd = v.load()
	case screenStopScan:
		v := newScanView(a, msg.museumID, msg.routeID, msg.stopNumber)
		a.current = v
		cmd = v.load()
	case screenAdminPanel:
		a.current = newAdminPanelView(a)
	case screenAdminMuseums:
		v := newAdminMuseumsView(a)
		a.current = v
		cmd = v.reload()
	case screenAdminRoutes:
		v := newAdminRoutesView(a)
		a.current = v
		cmd = v.reload()
	case screenAdminPaintings:
		v := newAdminPaintingsView(a)
		a.current = v
		cmd = v.reload()
	case screenAdminRouteStops:
		a.current = newAdminRouteStopsView(a)
	case screenNotFound:
		a.current = newNotFoundView(a)
	default:
		// Unknown targets land on the dashboard.
		a.screen = screenDashboard
		a.current = newDashboardView(a)
	}
	return cmd
}

// goTo builds a navigation command for views to return.
func (a *App) goTo(msg navigateMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// stale reports whether an async result belongs to a screen that has since
// been navigated away from. The request itself is not aborted; its result
// is simply never committed.
func (a *App) stale(gen int) bool {
	return gen != a.gen
}

// logout clears the session and returns to the login screen. The network
// call is best effort; the local session dies regardless.
func (a *App) logout() tea.Cmd {
	a.logbook.Info("Logging out")
	services := a.services
	a.session.Clear()
	return tea.Sequence(
		func() tea.Msg {
			ctx, cancel := withTimeout()
			defer cancel()
			_ = services.Auth.Logout(ctx)
			return nil
		},
		a.goTo(navigateMsg{target: screenLogin}),
	)
}

// rememberStop persists the advisory resume state.
func (a *App) rememberStop(museumID, routeID int64, stopNumber int, museumName, routeName string) {
	a.state.VisitStop(museumID, routeID, stopNumber, museumName, routeName)
	if err := config.SaveState(a.cfg.StatePath(), a.state); err != nil {
		a.logbook.Warn("Could not save local state: %v", err)
	}
}

// View renders the mounted screen inside the shared chrome.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch {
	case a.screen == screenBoot:
		content = mutedStyle.Render("Sessie wordt geladen...")
	case a.current != nil:
		content = a.current.View(width - 6)
	}

	header := titleStyle.Render("▣ QUESTIFY")
	body := panelStyle.Width(max(40, width-2)).Render(content)

	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.statusMsg != "" {
		sections = append(sections, statusStyle.Render(a.statusMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderLogPanel() string {
	lines := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	head := logHeadStyle.Render("LOG")
	body := mutedStyle.Render(joinLines(lines))
	return logPanelStyle.Render(head + "\n" + body)
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// withTimeout bounds every async command; suspension points are exactly the
// network request boundaries.
func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Narrow accessors so quest code and tests see interfaces, not services.
func (a *App) routeFetcher() quest.RouteFetcher       { return a.services.Museums }
func (a *App) paintingFetcher() quest.PaintingFetcher { return a.services.Paintings }
func (a *App) progressStarter() quest.ProgressStarter { return a.services.Progress }
func (a *App) progressFetcher() quest.ProgressFetcher { return a.services.Progress }
func (a *App) verifier() quest.Verifier               { return a.services.Verification }

package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/yourusername/questify/internal/api"
	"github.com/yourusername/questify/internal/config"
	"github.com/yourusername/questify/internal/logbook"
	"github.com/yourusername/questify/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	client, err := api.NewClient("http://127.0.0.1:1/api", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	book, err := logbook.New(filepath.Join(t.TempDir(), "questify.log"), "development")
	if err != nil {
		t.Fatalf("logbook.New: %v", err)
	}
	t.Cleanup(func() { book.Close() })
	cfg := &config.Config{
		BackendURL:  "http://127.0.0.1:1/api",
		Environment: "development",
		HomeDir:     t.TempDir(),
	}
	return NewApp(cfg, api.NewServices(client), session.NewStore(), book)
}

func authenticate(app *App, role string) {
	app.session.SetIdentity(&api.Identity{ID: 1, Email: "bezoeker@example.com", Role: role})
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	app := newTestApp(t)
	app.session.Clear()

	app.navigate(navigateMsg{target: screenDashboard})
	if app.screen != screenLogin {
		t.Fatalf("screen = %v, want login", app.screen)
	}
	if _, ok := app.current.(*loginView); !ok {
		t.Fatalf("current view = %T, want *loginView", app.current)
	}
}

func TestGuardStaysPutWhileLoading(t *testing.T) {
	app := newTestApp(t)

	app.navigate(navigateMsg{target: screenDashboard})
	if app.screen != screenBoot {
		t.Fatalf("screen = %v, want boot while the session is loading", app.screen)
	}
}

func TestGuardAllowsAuthenticatedUser(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleUser)

	app.navigate(navigateMsg{target: screenMuseums})
	if app.screen != screenMuseums {
		t.Fatalf("screen = %v, want museums", app.screen)
	}
}

func TestGuardBlocksNonAdminFromAdminScreens(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleUser)

	for _, target := range []screen{screenAdminPanel, screenAdminMuseums, screenAdminRoutes, screenAdminPaintings, screenAdminRouteStops} {
		app.navigate(navigateMsg{target: target})
		if app.screen != screenNotFound {
			t.Fatalf("target %v landed on %v, want not-found", target, app.screen)
		}
	}
}

func TestGuardAdmitsAdmin(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleAdmin)

	app.navigate(navigateMsg{target: screenAdminMuseums})
	if app.screen != screenAdminMuseums {
		t.Fatalf("screen = %v, want admin museums", app.screen)
	}
}

func TestGuardReEvaluatesAfterLogout(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleAdmin)
	app.navigate(navigateMsg{target: screenAdminPanel})
	if app.screen != screenAdminPanel {
		t.Fatalf("screen = %v, want admin panel", app.screen)
	}

	app.session.Clear()
	app.navigate(navigateMsg{target: screenAdminPanel})
	if app.screen != screenLogin {
		t.Fatalf("screen after logout = %v, want login", app.screen)
	}
}

func TestNavigationInvalidatesInFlightResults(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleUser)

	app.navigate(navigateMsg{target: screenMuseums})
	inFlight := app.gen
	app.navigate(navigateMsg{target: screenDashboard})

	if !app.stale(inFlight) {
		t.Fatal("result from the abandoned screen was not marked stale")
	}
	if app.stale(app.gen) {
		t.Fatal("current generation reads as stale")
	}
}

func TestMuseumsViewBuildsRouteEntries(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleUser)
	app.navigate(navigateMsg{target: screenMuseums})

	v, ok := app.current.(*museumsView)
	if !ok {
		t.Fatalf("current view = %T", app.current)
	}
	v.Update(museumsLoadedMsg{gen: app.gen, museums: []api.Museum{
		{MuseumID: 1, Name: "Rijksmuseum", Routes: []api.Route{
			{RouteID: 10, MuseumID: 1, Name: "Gouden Eeuw", TotalStops: 2},
			{RouteID: 11, MuseumID: 1, Name: "Vermeer"},
		}},
		{MuseumID: 2, Name: "Mauritshuis"},
	}})

	if len(v.entries) != 2 {
		t.Fatalf("entries = %d, want 2 (museum without routes contributes none)", len(v.entries))
	}

	// Selecting the first entry navigates to its route overview.
	cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(navigateMsg)
	if !ok {
		t.Fatalf("command produced %T, want navigateMsg", cmd())
	}
	if msg.target != screenRouteDetail || msg.museumID != 1 || msg.routeID != 10 {
		t.Fatalf("navigate = %+v", msg)
	}
}

func TestMuseumsViewDropsStaleLoad(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleUser)
	app.navigate(navigateMsg{target: screenMuseums})
	v := app.current.(*museumsView)
	oldGen := app.gen

	app.navigate(navigateMsg{target: screenDashboard})
	v.Update(museumsLoadedMsg{gen: oldGen, museums: []api.Museum{{MuseumID: 1, Name: "Rijksmuseum"}}})

	if len(v.museums) != 0 {
		t.Fatal("stale museum list was committed after navigating away")
	}
}

func TestAdminDeleteRequiresExplicitYes(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleAdmin)
	app.navigate(navigateMsg{target: screenAdminMuseums})

	v := app.current.(*adminMuseumsView)
	v.Update(adminMuseumsLoadedMsg{gen: app.gen, museums: []api.Museum{{MuseumID: 1, Name: "Rijksmuseum"}}})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if v.mode != adminModeConfirmDelete {
		t.Fatalf("mode = %v, want confirm", v.mode)
	}

	// Any key but Y cancels without a network call.
	cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if cmd != nil {
		t.Fatal("cancel produced a command")
	}
	if v.mode != adminModeList {
		t.Fatalf("mode after cancel = %v, want list", v.mode)
	}

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("confirm produced no delete command")
	}
}

func TestRouteStopMoveUpFromFirstPositionIsLocalNoOp(t *testing.T) {
	app := newTestApp(t)
	authenticate(app, api.RoleAdmin)
	app.navigate(navigateMsg{target: screenAdminRouteStops})

	v := app.current.(*adminRouteStopsView)
	v.routeID = 10
	v.mode = adminModeList
	v.Update(adminRouteStopsLoadedMsg{gen: app.gen, stops: []api.RouteStop{
		{RouteStopID: 100, PaintingID: 7, SequenceNumber: 1},
		{RouteStopID: 101, PaintingID: 8, SequenceNumber: 2},
	}})

	if cmd := v.moveSelected(-1); cmd != nil {
		t.Fatal("moving the first stop up should not issue a request")
	}
	v.selection = 1
	if cmd := v.moveSelected(+1); cmd != nil {
		t.Fatal("moving the last stop down should not issue a request")
	}
	if cmd := v.moveSelected(-1); cmd == nil {
		t.Fatal("moving the last stop up should issue a request")
	}
}

func TestFormNumericHelpers(t *testing.T) {
	f := newForm(
		formField{label: "Museum ID"},
		formField{label: "Jaar (optioneel)"},
	)

	if _, ok := f.IntValue(0); ok {
		t.Fatal("empty required numeric parsed")
	}
	f.SetValue(0, " 42 ")
	if n, ok := f.IntValue(0); !ok || n != 42 {
		t.Fatalf("IntValue = (%d, %v)", n, ok)
	}

	if got := f.OptionalIntValue(1); got != nil {
		t.Fatalf("empty optional = %v, want nil", got)
	}
	f.SetValue(1, "1642")
	if got := f.OptionalIntValue(1); got == nil || *got != 1642 {
		t.Fatalf("OptionalIntValue = %v", got)
	}
	f.SetValue(1, "zeventiende eeuw")
	if got := f.OptionalIntValue(1); got != nil {
		t.Fatalf("invalid optional = %v, want nil", got)
	}
}

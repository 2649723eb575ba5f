package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// routeEntry is one selectable route within a museum card.
type routeEntry struct {
	museum api.Museum
	route  api.Route
}

// museumsView lists museums with their routes; selecting a route opens the
// route overview.
type museumsView struct {
	app       *App
	loading   bool
	spin      spinner.Model
	errMsg    string
	museums   []api.Museum
	entries   []routeEntry
	selection int
}

type museumsLoadedMsg struct {
	gen     int
	museums []api.Museum
	err     error
}

func newMuseumsView(app *App) *museumsView {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &museumsView{app: app, spin: spin, loading: true}
}

func (v *museumsView) load() tea.Cmd {
	app, gen := v.app, v.app.gen
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		museums, err := app.services.Museums.List(ctx)
		return museumsLoadedMsg{gen: gen, museums: museums, err: err}
	})
}

func (v *museumsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case museumsLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.loading = false
		if msg.err != nil {
			v.errMsg = "Kon de musea niet laden."
			v.app.logbook.Warn("Museum list failed: %v", msg.err)
			return nil
		}
		v.museums = msg.museums
		v.entries = nil
		for _, museum := range msg.museums {
			for _, route := range museum.Routes {
				v.entries = append(v.entries, routeEntry{museum: museum, route: route})
			}
		}
		v.selection = 0
		return nil

	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selection > 0 {
				v.selection--
			}
		case "down", "j":
			if v.selection < len(v.entries)-1 {
				v.selection++
			}
		case "enter":
			if v.selection < len(v.entries) {
				entry := v.entries[v.selection]
				return v.app.goTo(navigateMsg{
					target:   screenRouteDetail,
					museumID: entry.museum.MuseumID,
					routeID:  entry.route.RouteID,
				})
			}
		case "r":
			v.loading = true
			return v.load()
		case "esc":
			return v.app.goTo(navigateMsg{target: screenDashboard})
		}
	}
	return nil
}

func (v *museumsView) View(width int) string {
	rows := []string{headingStyle.Render("Kies een route"), ""}
	switch {
	case v.loading:
		rows = append(rows, v.spin.View()+" Musea worden geladen...")
	case v.errMsg != "":
		rows = append(rows, errorStyle.Render(v.errMsg))
	case len(v.entries) == 0:
		rows = append(rows, mutedStyle.Render("Er zijn nog geen routes beschikbaar."))
	default:
		var lastMuseum int64
		idx := 0
		for _, entry := range v.entries {
			if entry.museum.MuseumID != lastMuseum {
				lastMuseum = entry.museum.MuseumID
				rows = append(rows, accentStyle.Render(entry.museum.Name))
				if entry.museum.Address != "" {
					rows = append(rows, mutedStyle.Render(entry.museum.Address))
				}
			}
			line := fmt.Sprintf("  %s", entry.route.Name)
			if entry.route.TotalStops > 0 {
				line += mutedStyle.Render(fmt.Sprintf("  · %d stops", entry.route.TotalStops))
			}
			if idx == v.selection {
				line = selectedRowStyle.Render("▸" + line[1:])
			}
			rows = append(rows, line)
			idx++
		}
	}
	rows = append(rows, keyHintStyle.Render("Enter → route openen    R → verversen    Esc → dashboard"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

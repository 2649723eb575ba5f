package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/quest"
)

// routeDetailView is the route overview: ordered stops, painting metadata
// where it resolved, and backend progress.
type routeDetailView struct {
	app      *App
	museumID int64
	routeID  int64

	loading bool
	spin    spinner.Model
	bar     progress.Model
	view    *quest.RouteView
}

type routeViewLoadedMsg struct {
	gen  int
	view *quest.RouteView
}

func newRouteDetailView(app *App, museumID, routeID int64) *routeDetailView {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	bar := progress.New(progress.WithSolidFill("#c4952c"))
	bar.Width = 48
	return &routeDetailView{
		app:      app,
		museumID: museumID,
		routeID:  routeID,
		loading:  true,
		spin:     spin,
		bar:      bar,
	}
}

func (v *routeDetailView) load() tea.Cmd {
	app, gen := v.app, v.app.gen
	museumID, routeID := v.museumID, v.routeID
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		view := quest.LoadRouteView(ctx, app.routeFetcher(), app.progressFetcher(), app.paintingFetcher(), museumID, routeID)
		return routeViewLoadedMsg{gen: gen, view: view}
	})
}

func (v *routeDetailView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case routeViewLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.loading = false
		v.view = msg.view
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
		case "enter", "s":
			return v.startScan()
		case "r":
			v.loading = true
			return v.load()
		case "esc":
			return v.app.goTo(navigateMsg{target: screenMuseums})
		}
	}
	return nil
}

// startScan opens the first incomplete stop, or stop 1 when progress is
// unknown.
func (v *routeDetailView) startScan() tea.Cmd {
	if v.view == nil || v.view.Route == nil {
		return nil
	}
	stopNumber := 1
	if p := v.view.Progress; p != nil && p.CurrentStopNumber > 0 {
		stopNumber = p.CurrentStopNumber
	}
	return v.app.goTo(navigateMsg{
		target:     screenStopScan,
		museumID:   v.museumID,
		routeID:    v.routeID,
		stopNumber: stopNumber,
	})
}

func (v *routeDetailView) View(width int) string {
	rows := []string{headingStyle.Render("Voortgang"), ""}

	if v.loading {
		rows = append(rows, v.spin.View()+" Route wordt geladen...")
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}
	view := v.view

	// Each section renders with whatever data it obtained; a failed fetch
	// only blanks its own section.
	if view.RouteErr != nil {
		rows = append(rows, errorStyle.Render("Kon route details niet laden"))
	}

	if p := view.Progress; p != nil {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d van %d schilderijen gevonden", p.CompletedStops, p.TotalStops)))
		ratio := 0.0
		if p.TotalStops > 0 {
			ratio = float64(p.CompletedStops) / float64(p.TotalStops)
			if ratio > 1 {
				ratio = 1
			}
		}
		rows = append(rows, v.bar.ViewAs(ratio), "")
	}

	if view.IsCompleted() {
		rows = append(rows,
			okStyle.Render("🏆 Gefeliciteerd!"),
			mutedStyle.Render("Je hebt alle schilderijen gevonden!"),
			"")
	}

	if route := view.Route; route != nil {
		rows = append(rows, accentStyle.Render(route.Name))
		if route.Description != "" {
			rows = append(rows, mutedStyle.Render(route.Description))
		}
		rows = append(rows, "")
		for _, stop := range view.SortedStops() {
			marker := "○"
			if view.Completed(stop.PaintingID) {
				marker = okStyle.Render("●")
			}
			title := fmt.Sprintf("Stop %d", stop.SequenceNumber)
			subtitle := ""
			if detail := view.Detail(stop.PaintingID); detail != nil {
				title = detail.Title
				subtitle = detail.Artist
			}
			line := fmt.Sprintf("%s %d. %s", marker, stop.SequenceNumber, title)
			if subtitle != "" {
				line += mutedStyle.Render("  — " + subtitle)
			}
			rows = append(rows, line)
		}
	}

	rows = append(rows, keyHintStyle.Render("Enter → start scannen    R → verversen    Esc → musea"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
	"github.com/yourusername/questify/internal/quest"
)

// scanView drives one stop of the quest: show hints, pick a photo, submit
// it for verification, and advance on a match. The machine itself lives in
// the quest package; this view renders it and feeds it events.
type scanView struct {
	app        *App
	museumID   int64
	routeID    int64
	stopNumber int

	machine *quest.StopScan
	loading bool
	spin    spinner.Model

	picker     filepicker.Model
	picking    bool
	photoPath  string
	submitting bool
}

type scanLoadedMsg struct {
	gen     int
	machine *quest.StopScan
}

type scanResultMsg struct {
	gen    int
	result *api.VerificationResult
	err    error
}

func newScanView(app *App, museumID, routeID int64, stopNumber int) *scanView {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	picker := filepicker.New()
	picker.AllowedTypes = []string{".jpg", ".jpeg", ".png"}
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}

	return &scanView{
		app:        app,
		museumID:   museumID,
		routeID:    routeID,
		stopNumber: stopNumber,
		loading:    true,
		spin:       spin,
		picker:     picker,
	}
}

// load rebuilds the stop state from scratch; revisiting a stop never
// carries match state over.
func (v *scanView) load() tea.Cmd {
	app, gen := v.app, v.app.gen
	museumID, routeID, stopNumber := v.museumID, v.routeID, v.stopNumber
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		machine := quest.LoadStopScan(ctx, app.routeFetcher(), app.paintingFetcher(), app.progressStarter(), museumID, routeID, stopNumber)
		return scanLoadedMsg{gen: gen, machine: machine}
	})
}

func (v *scanView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scanLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.loading = false
		v.machine = msg.machine
		if route := v.machine.Route(); route != nil && v.machine.Stop() != nil {
			museumName := ""
			if len(v.app.state.RecentRoutes) > 0 {
				museumName = v.app.state.RecentRoutes[0].MuseumName
			}
			v.app.rememberStop(v.museumID, v.routeID, v.stopNumber, museumName, route.Name)
		}
		return nil

	case scanResultMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.submitting = false
		v.machine.ApplyVerification(msg.result, msg.err)
		if v.machine.Phase() == quest.PhaseMatched {
			v.app.logbook.Info("Stop %d matched", v.stopNumber)
		}
		return nil

	case spinner.TickMsg:
		if !v.loading && !v.submitting {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return cmd
	}

	if v.picking {
		return v.updatePicker(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return v.handleKey(key)
	}
	return nil
}

func (v *scanView) updatePicker(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		v.picking = false
		return nil
	}
	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)
	if ok, path := v.picker.DidSelectFile(msg); ok {
		v.photoPath = path
		v.picking = false
	}
	return cmd
}

func (v *scanView) handleKey(key tea.KeyMsg) tea.Cmd {
	if v.loading || v.submitting || v.machine == nil {
		return nil
	}
	switch key.String() {
	case "esc":
		return v.app.goTo(navigateMsg{target: screenRouteDetail, museumID: v.museumID, routeID: v.routeID})
	case "m":
		return v.app.goTo(navigateMsg{target: screenMuseums})
	}

	switch v.machine.Phase() {
	case quest.PhaseReady:
		switch key.String() {
		case "h":
			v.machine.RevealHint()
		case "f":
			v.picking = true
			return v.picker.Init()
		case "enter":
			return v.submit()
		}
	case quest.PhaseMatched:
		if key.String() == "enter" {
			if next, ok := v.machine.NextStop(); ok {
				return v.app.goTo(navigateMsg{
					target:     screenStopScan,
					museumID:   v.museumID,
					routeID:    v.routeID,
					stopNumber: next,
				})
			}
			// Last stop: back to the route overview.
			return v.app.goTo(navigateMsg{target: screenRouteDetail, museumID: v.museumID, routeID: v.routeID})
		}
	}
	return nil
}

// submit validates locally first; without a selected photo no network call
// is made.
func (v *scanView) submit() tea.Cmd {
	if !v.machine.BeginSubmit(v.photoPath) {
		return nil
	}
	v.submitting = true
	app, gen := v.app, v.app.gen
	routeID := v.routeID
	paintingID := v.machine.Stop().PaintingID
	path := v.photoPath
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		file, err := os.Open(path)
		if err != nil {
			return scanResultMsg{gen: gen, err: err}
		}
		defer file.Close()
		result, err := app.verifier().VerifyPainting(ctx, routeID, paintingID, filepath.Base(path), file)
		return scanResultMsg{gen: gen, result: result, err: err}
	})
}

func (v *scanView) View(width int) string {
	if v.loading {
		return v.spin.View() + " Stop wordt geladen..."
	}
	machine := v.machine

	total := machine.TotalStops()
	header := headingStyle.Render(fmt.Sprintf("Stop %d", v.stopNumber))
	if route := machine.Route(); route != nil && total > 0 {
		header += mutedStyle.Render(fmt.Sprintf("  · stop %d van %d in %s", v.stopNumber, total, route.Name))
	}
	rows := []string{header, ""}

	switch machine.Phase() {
	case quest.PhaseStopNotFound, quest.PhaseLoadFailed:
		rows = append(rows,
			errorStyle.Render(machine.ErrorMessage()),
			keyHintStyle.Render("Esc → terug naar route"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case quest.PhaseMatched:
		rows = append(rows, okStyle.Render("Gevonden!"),
			mutedStyle.Render("Je hebt het schilderij correct geïdentificeerd"), "")
		if p := machine.VerifiedPainting(); p != nil {
			rows = append(rows, accentStyle.Render(p.Title))
			meta := ""
			if p.Artist != "" {
				meta = p.Artist
			}
			if p.Year != 0 {
				meta += fmt.Sprintf("  · %d", p.Year)
			}
			if meta != "" {
				rows = append(rows, mutedStyle.Render(meta))
			}
			if p.InfoText != "" {
				rows = append(rows, "", p.InfoText)
			}
		}
		action := "Enter → ga verder"
		if machine.IsLastStop() {
			action = "Enter → terug naar routeoverzicht"
		}
		rows = append(rows, keyHintStyle.Render(action+"    Esc → route"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	// Awaiting a scan (ready or submitting).
	hintRows := []string{accentStyle.Render("HINT")}
	visible := machine.VisibleHints()
	if len(visible) == 0 {
		hintRows = append(hintRows, quest.MsgHintFallback)
	} else {
		hintRows = append(hintRows, visible...)
	}
	if machine.HasMoreHints() {
		hintRows = append(hintRows, mutedStyle.Render("H → extra hint"))
	}
	rows = append(rows, hintBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, hintRows...)), "")

	if v.picking {
		rows = append(rows, headingStyle.Render("Kies een foto"), v.picker.View())
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	if v.photoPath != "" {
		rows = append(rows, mutedStyle.Render("Foto: ")+filepath.Base(v.photoPath))
	} else {
		rows = append(rows, mutedStyle.Render("Nog geen foto gekozen. Zorg dat het schilderij goed in beeld is."))
	}

	if v.submitting {
		rows = append(rows, "", v.spin.View()+" Foto wordt gecontroleerd...")
	} else if msg := machine.ResultMessage(); msg != "" {
		rows = append(rows, "", errorStyle.Render(msg))
	}

	rows = append(rows, keyHintStyle.Render("F → foto kiezen    Enter → scan schilderij    Esc → route    M → alle musea"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// adminModeRoutePrompt asks for a route id before anything can be listed.
const adminModeRoutePrompt = adminModeHintForm + 1

// adminRouteStopsView manages the ordered stops of one route at a time.
type adminRouteStopsView struct {
	app       *App
	mode      adminMode
	routeID   int64
	stops     []api.RouteStop
	selection int
	prompt    *form
	form      *form
	busy      bool
	errMsg    string
}

type adminRouteStopsLoadedMsg struct {
	gen   int
	stops []api.RouteStop
	err   error
}

type adminRouteStopMutatedMsg struct {
	gen int
	err error
}

func newAdminRouteStopsView(app *App) *adminRouteStopsView {
	return &adminRouteStopsView{
		app:    app,
		mode:   adminModeRoutePrompt,
		prompt: newForm(formField{label: "Route ID"}),
	}
}

func (v *adminRouteStopsView) reload() tea.Cmd {
	if v.routeID == 0 {
		return nil
	}
	app, gen, routeID := v.app, v.app.gen, v.routeID
	v.busy = true
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		stops, err := app.services.RouteStopAdmin.ByRoute(ctx, routeID)
		return adminRouteStopsLoadedMsg{gen: gen, stops: stops, err: err}
	}
}

func (v *adminRouteStopsView) mutate(op func() error) tea.Cmd {
	gen := v.app.gen
	v.busy = true
	return func() tea.Msg {
		return adminRouteStopMutatedMsg{gen: gen, err: op()}
	}
}

func (v *adminRouteStopsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminRouteStopsLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			if api.IsNotFound(msg.err) {
				v.errMsg = "Route niet gevonden."
				v.mode = adminModeRoutePrompt
			} else {
				v.errMsg = "Kon stops niet laden."
			}
			return nil
		}
		v.errMsg = ""
		v.stops = msg.stops
		if v.selection >= len(v.stops) {
			v.selection = max(0, len(v.stops)-1)
		}
		return nil

	case adminRouteStopMutatedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Opslaan mislukt. Probeer het opnieuw."
			v.app.logbook.Warn("Route stop mutation failed: %v", msg.err)
			return nil
		}
		v.mode = adminModeList
		return v.reload()

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch v.mode {
		case adminModeRoutePrompt:
			return v.handlePromptKey(msg)
		case adminModeList:
			return v.handleListKey(msg)
		case adminModeForm:
			return v.handleFormKey(msg)
		case adminModeConfirmDelete:
			return v.handleConfirmKey(msg)
		}
	}
	switch v.mode {
	case adminModeRoutePrompt:
		return v.prompt.Update(msg)
	case adminModeForm:
		return v.form.Update(msg)
	}
	return nil
}

func (v *adminRouteStopsView) handlePromptKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		id, ok := v.prompt.IntValue(0)
		if !ok || id <= 0 {
			v.errMsg = "Route ID moet een getal zijn."
			return nil
		}
		v.routeID = id
		v.errMsg = ""
		v.mode = adminModeList
		return v.reload()
	case "esc":
		return v.app.goTo(navigateMsg{target: screenAdminPanel})
	}
	return v.prompt.Update(key)
}

func (v *adminRouteStopsView) handleListKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up":
		if v.selection > 0 {
			v.selection--
		}
	case "down":
		if v.selection < len(v.stops)-1 {
			v.selection++
		}
	case "n":
		v.form = newForm(
			formField{label: "Schilderij ID"},
			formField{label: "Volgnummer (optioneel)"},
		)
		v.mode = adminModeForm
	case "d":
		if v.selected() != nil {
			v.mode = adminModeConfirmDelete
		}
	case "K", "-":
		return v.moveSelected(-1)
	case "J", "+":
		return v.moveSelected(+1)
	case "l":
		v.routeID = 0
		v.stops = nil
		v.selection = 0
		v.prompt.Reset()
		v.mode = adminModeRoutePrompt
	case "r":
		return v.reload()
	case "esc":
		return v.app.goTo(navigateMsg{target: screenAdminPanel})
	}
	return nil
}

// moveSelected sends the stop's new absolute sequence number. Moving the
// first stop up is a local no-op, there is nothing above position 1.
func (v *adminRouteStopsView) moveSelected(delta int) tea.Cmd {
	stop := v.selected()
	if stop == nil {
		return nil
	}
	target := stop.SequenceNumber + delta
	if target < 1 || target > len(v.stops) {
		return nil
	}
	id := stop.RouteStopID
	return v.mutate(func() error {
		ctx, cancel := withTimeout()
		defer cancel()
		return v.app.services.RouteStopAdmin.UpdateSequence(ctx, id, target)
	})
}

func (v *adminRouteStopsView) handleFormKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		paintingID, ok := v.form.IntValue(0)
		if !ok {
			v.errMsg = "Schilderij ID moet een getal zijn."
			return nil
		}
		seq := len(v.stops) + 1
		if n := v.form.OptionalIntValue(1); n != nil {
			seq = *n
		}
		in := api.RouteStopInput{PaintingID: paintingID, SequenceNumber: seq}
		routeID := v.routeID
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			_, err := v.app.services.RouteStopAdmin.Add(ctx, routeID, in)
			return err
		})
	case "esc":
		v.mode = adminModeList
		v.errMsg = ""
		return nil
	}
	return v.form.Update(key)
}

func (v *adminRouteStopsView) handleConfirmKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "y", "Y":
		stop := v.selected()
		if stop == nil {
			v.mode = adminModeList
			return nil
		}
		id := stop.RouteStopID
		v.mode = adminModeList
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			return v.app.services.RouteStopAdmin.Remove(ctx, id)
		})
	default:
		v.mode = adminModeList
		return nil
	}
}

func (v *adminRouteStopsView) selected() *api.RouteStop {
	if v.selection < 0 || v.selection >= len(v.stops) {
		return nil
	}
	return &v.stops[v.selection]
}

func (v *adminRouteStopsView) View(width int) string {
	rows := []string{headingStyle.Render("Routestops")}
	if v.routeID != 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("Route %d", v.routeID)))
	}
	rows = append(rows, "")

	switch v.mode {
	case adminModeRoutePrompt:
		rows = append(rows, accentStyle.Render("Welke route wil je beheren?"), "", v.prompt.View())
		if v.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(v.errMsg))
		}
		rows = append(rows, keyHintStyle.Render("Enter → laden    Esc → beheer"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case adminModeForm:
		rows = append(rows, accentStyle.Render("Stop toevoegen"), "", v.form.View())
		if v.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(v.errMsg))
		}
		rows = append(rows, keyHintStyle.Render("Enter → opslaan    Esc → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case adminModeConfirmDelete:
		rows = append(rows,
			errorStyle.Render("Stop uit deze route verwijderen?"),
			keyHintStyle.Render("Y → verwijderen    elke andere toets → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	if v.busy {
		rows = append(rows, mutedStyle.Render("Laden..."))
	}
	if v.errMsg != "" {
		rows = append(rows, errorStyle.Render(v.errMsg))
	}
	if len(v.stops) == 0 && !v.busy {
		rows = append(rows, mutedStyle.Render("Deze route heeft nog geen stops."))
	}
	for i, stop := range v.stops {
		label := fmt.Sprintf("schilderij %d", stop.PaintingID)
		if stop.Painting != nil {
			label = fmt.Sprintf("%s, %s", stop.Painting.Title, stop.Painting.Artist)
		}
		line := fmt.Sprintf("%2d. %s", stop.SequenceNumber, label)
		if i == v.selection {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, keyHintStyle.Render("N → toevoegen    D → verwijderen    +/- → verplaatsen    L → andere route    R → verversen    Esc → beheer"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// adminRoutesView is the routes CRUD screen. It also loads the museum list
// so rows can show the museum's name instead of a bare id.
type adminRoutesView struct {
	app         *App
	mode        adminMode
	routes      []api.Route
	museumNames map[int64]string
	selection   int
	form        *form
	editing     *api.Route
	busy        bool
	errMsg      string
}

type adminRoutesLoadedMsg struct {
	gen     int
	routes  []api.Route
	museums []api.Museum
	err     error
}

type adminRouteMutatedMsg struct {
	gen int
	err error
}

func newAdminRoutesView(app *App) *adminRoutesView {
	return &adminRoutesView{app: app, busy: true, museumNames: map[int64]string{}}
}

// reload fans out the route and museum fetches; museum names are optional
// enrichment, so their failure is ignored.
func (v *adminRoutesView) reload() tea.Cmd {
	app, gen := v.app, v.app.gen
	v.busy = true
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		routes, err := app.services.RouteAdmin.List(ctx)
		museums, _ := app.services.MuseumAdmin.List(ctx)
		return adminRoutesLoadedMsg{gen: gen, routes: routes, museums: museums, err: err}
	}
}

func (v *adminRoutesView) mutate(op func() error) tea.Cmd {
	gen := v.app.gen
	v.busy = true
	return func() tea.Msg {
		return adminRouteMutatedMsg{gen: gen, err: op()}
	}
}

func (v *adminRoutesView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminRoutesLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Kon routes niet laden."
			return nil
		}
		v.errMsg = ""
		v.routes = msg.routes
		for _, m := range msg.museums {
			v.museumNames[m.MuseumID] = m.Name
		}
		if v.selection >= len(v.routes) {
			v.selection = max(0, len(v.routes)-1)
		}
		return nil

	case adminRouteMutatedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Opslaan mislukt. Probeer het opnieuw."
			v.app.logbook.Warn("Route mutation failed: %v", msg.err)
			return nil
		}
		v.mode = adminModeList
		v.editing = nil
		return v.reload()

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch v.mode {
		case adminModeList:
			return v.handleListKey(msg)
		case adminModeForm:
			return v.handleFormKey(msg)
		case adminModeConfirmDelete:
			return v.handleConfirmKey(msg)
		}
	}
	if v.mode == adminModeForm {
		return v.form.Update(msg)
	}
	return nil
}

func (v *adminRoutesView) handleListKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if v.selection > 0 {
			v.selection--
		}
	case "down", "j":
		if v.selection < len(v.routes)-1 {
			v.selection++
		}
	case "n":
		v.editing = nil
		v.form = newRouteForm(nil)
		v.mode = adminModeForm
	case "enter", "e":
		if r := v.selected(); r != nil {
			v.editing = r
			v.form = newRouteForm(r)
			v.mode = adminModeForm
		}
	case "d":
		if v.selected() != nil {
			v.mode = adminModeConfirmDelete
		}
	case "a":
		if r := v.selected(); r != nil {
			id, active := r.RouteID, r.IsActive
			return v.mutate(func() error {
				ctx, cancel := withTimeout()
				defer cancel()
				if active {
					return v.app.services.RouteAdmin.Deactivate(ctx, id)
				}
				return v.app.services.RouteAdmin.Activate(ctx, id)
			})
		}
	case "r":
		return v.reload()
	case "esc":
		return v.app.goTo(navigateMsg{target: screenAdminPanel})
	}
	return nil
}

func newRouteForm(r *api.Route) *form {
	f := newForm(
		formField{label: "Museum ID"},
		formField{label: "Naam"},
		formField{label: "Omschrijving"},
	)
	if r != nil {
		f.SetValue(0, fmt.Sprintf("%d", r.MuseumID))
		f.SetValue(1, r.Name)
		f.SetValue(2, r.Description)
	}
	return f
}

func (v *adminRoutesView) handleFormKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		museumID, ok := v.form.IntValue(0)
		if !ok {
			v.errMsg = "Museum ID moet een getal zijn."
			return nil
		}
		name := v.form.Value(1)
		if name == "" {
			v.errMsg = "Naam is verplicht."
			return nil
		}
		in := api.RouteInput{
			MuseumID:    museumID,
			Name:        name,
			Description: v.form.Value(2),
			IsActive:    true,
		}
		editing := v.editing
		if editing != nil {
			in.IsActive = editing.IsActive
		}
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			if editing != nil {
				_, err := v.app.services.RouteAdmin.Update(ctx, editing.RouteID, in)
				return err
			}
			_, err := v.app.services.RouteAdmin.Create(ctx, in)
			return err
		})
	case "esc":
		v.mode = adminModeList
		v.editing = nil
		v.errMsg = ""
		return nil
	}
	return v.form.Update(key)
}

func (v *adminRoutesView) handleConfirmKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "y", "Y":
		r := v.selected()
		if r == nil {
			v.mode = adminModeList
			return nil
		}
		id := r.RouteID
		v.mode = adminModeList
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			return v.app.services.RouteAdmin.Delete(ctx, id)
		})
	default:
		v.mode = adminModeList
		return nil
	}
}

func (v *adminRoutesView) selected() *api.Route {
	if v.selection < 0 || v.selection >= len(v.routes) {
		return nil
	}
	return &v.routes[v.selection]
}

func (v *adminRoutesView) View(width int) string {
	rows := []string{headingStyle.Render("Routebeheer"), ""}

	switch v.mode {
	case adminModeForm:
		title := "Nieuwe route"
		if v.editing != nil {
			title = fmt.Sprintf("Route bewerken · %s", v.editing.Name)
		}
		rows = append(rows, accentStyle.Render(title), "", v.form.View())
		if v.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(v.errMsg))
		}
		rows = append(rows, keyHintStyle.Render("Enter → opslaan    Esc → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case adminModeConfirmDelete:
		name := ""
		if r := v.selected(); r != nil {
			name = r.Name
		}
		rows = append(rows,
			errorStyle.Render(fmt.Sprintf("Route %q verwijderen?", name)),
			keyHintStyle.Render("Y → verwijderen    elke andere toets → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	if v.busy {
		rows = append(rows, mutedStyle.Render("Laden..."))
	}
	if v.errMsg != "" {
		rows = append(rows, errorStyle.Render(v.errMsg))
	}
	if len(v.routes) == 0 && !v.busy {
		rows = append(rows, mutedStyle.Render("Nog geen routes."))
	}
	for i, r := range v.routes {
		museum := v.museumNames[r.MuseumID]
		if museum == "" {
			museum = fmt.Sprintf("museum %d", r.MuseumID)
		}
		status := mutedStyle.Render("inactief")
		if r.IsActive {
			status = okStyle.Render("actief")
		}
		line := fmt.Sprintf("%d · %s — %s (%s)", r.RouteID, r.Name, museum, status)
		if i == v.selection {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, keyHintStyle.Render("N → nieuw    E → bewerken    D → verwijderen    A → (de)activeren    R → verversen    Esc → beheer"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

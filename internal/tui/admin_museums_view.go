package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// adminMode is the shared list/form/confirm cycle of every CRUD screen.
type adminMode int

const (
	adminModeList adminMode = iota
	adminModeForm
	adminModeConfirmDelete
)

// adminMuseumsView is the museums CRUD screen. Every mutation is followed
// by a full list reload so the rows always reflect server truth.
type adminMuseumsView struct {
	app       *App
	mode      adminMode
	museums   []api.Museum
	selection int
	form      *form
	editing   *api.Museum // nil means create mode
	busy      bool
	errMsg    string
}

type adminMuseumsLoadedMsg struct {
	gen     int
	museums []api.Museum
	err     error
}

type adminMuseumMutatedMsg struct {
	gen int
	err error
}

func newAdminMuseumsView(app *App) *adminMuseumsView {
	return &adminMuseumsView{app: app, busy: true}
}

func (v *adminMuseumsView) reload() tea.Cmd {
	app, gen := v.app, v.app.gen
	v.busy = true
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		museums, err := app.services.MuseumAdmin.List(ctx)
		return adminMuseumsLoadedMsg{gen: gen, museums: museums, err: err}
	}
}

func (v *adminMuseumsView) mutate(op func() error) tea.Cmd {
	gen := v.app.gen
	v.busy = true
	return func() tea.Msg {
		return adminMuseumMutatedMsg{gen: gen, err: op()}
	}
}

func (v *adminMuseumsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminMuseumsLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Kon musea niet laden."
			return nil
		}
		v.errMsg = ""
		v.museums = msg.museums
		if v.selection >= len(v.museums) {
			v.selection = max(0, len(v.museums)-1)
		}
		return nil

	case adminMuseumMutatedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			// The form stays populated so nothing is lost.
			v.errMsg = "Opslaan mislukt. Probeer het opnieuw."
			v.app.logbook.Warn("Museum mutation failed: %v", msg.err)
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

func (v *adminMuseumsView) handleListKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if v.selection > 0 {
			v.selection--
		}
	case "down", "j":
		if v.selection < len(v.museums)-1 {
			v.selection++
		}
	case "n":
		v.editing = nil
		v.form = newMuseumForm(nil)
		v.mode = adminModeForm
	case "enter", "e":
		if m := v.selected(); m != nil {
			v.editing = m
			v.form = newMuseumForm(m)
			v.mode = adminModeForm
		}
	case "d":
		if v.selected() != nil {
			v.mode = adminModeConfirmDelete
		}
	case "a":
		if m := v.selected(); m != nil {
			id := m.MuseumID
			active := m.IsActive
			return v.mutate(func() error {
				ctx, cancel := withTimeout()
				defer cancel()
				if active {
					return v.app.services.MuseumAdmin.Deactivate(ctx, id)
				}
				return v.app.services.MuseumAdmin.Activate(ctx, id)
			})
		}
	case "r":
		return v.reload()
	case "esc":
		return v.app.goTo(navigateMsg{target: screenAdminPanel})
	}
	return nil
}

func newMuseumForm(m *api.Museum) *form {
	f := newForm(
		formField{label: "Naam"},
		formField{label: "Adres"},
		formField{label: "Omschrijving"},
	)
	if m != nil {
		f.SetValue(0, m.Name)
		f.SetValue(1, m.Address)
		f.SetValue(2, m.Description)
	}
	return f
}

func (v *adminMuseumsView) handleFormKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		name, address := v.form.Value(0), v.form.Value(1)
		if name == "" || address == "" {
			v.errMsg = "Naam en adres zijn verplicht."
			return nil
		}
		in := api.MuseumInput{
			Name:        name,
			Address:     address,
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
				_, err := v.app.services.MuseumAdmin.Update(ctx, editing.MuseumID, in)
				return err
			}
			_, err := v.app.services.MuseumAdmin.Create(ctx, in)
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

// handleConfirmKey gates the delete: only an explicit "y" fires the call,
// anything else cancels without touching the network.
func (v *adminMuseumsView) handleConfirmKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "y", "Y":
		m := v.selected()
		if m == nil {
			v.mode = adminModeList
			return nil
		}
		id := m.MuseumID
		v.mode = adminModeList
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			return v.app.services.MuseumAdmin.Delete(ctx, id)
		})
	default:
		v.mode = adminModeList
		return nil
	}
}

func (v *adminMuseumsView) selected() *api.Museum {
	if v.selection < 0 || v.selection >= len(v.museums) {
		return nil
	}
	return &v.museums[v.selection]
}

func (v *adminMuseumsView) View(width int) string {
	rows := []string{headingStyle.Render("Museabeheer"), ""}

	switch v.mode {
	case adminModeForm:
		title := "Nieuw museum"
		if v.editing != nil {
			title = fmt.Sprintf("Museum bewerken · %s", v.editing.Name)
		}
		rows = append(rows, accentStyle.Render(title), "", v.form.View())
		if v.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(v.errMsg))
		}
		rows = append(rows, keyHintStyle.Render("Enter → opslaan    Esc → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case adminModeConfirmDelete:
		m := v.selected()
		name := ""
		if m != nil {
			name = m.Name
		}
		rows = append(rows,
			errorStyle.Render(fmt.Sprintf("Museum %q verwijderen?", name)),
			keyHintStyle.Render("Y → verwijderen    elke andere toets → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	if v.busy {
		rows = append(rows, mutedStyle.Render("Laden..."))
	}
	if v.errMsg != "" {
		rows = append(rows, errorStyle.Render(v.errMsg))
	}
	if len(v.museums) == 0 && !v.busy {
		rows = append(rows, mutedStyle.Render("Nog geen musea."))
	}
	for i, m := range v.museums {
		status := mutedStyle.Render("inactief")
		if m.IsActive {
			status = okStyle.Render("actief")
		}
		line := fmt.Sprintf("%d · %s — %s (%s)", m.MuseumID, m.Name, m.Address, status)
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

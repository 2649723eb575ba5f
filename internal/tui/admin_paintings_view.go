package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// adminModeHintForm extends the shared CRUD cycle with the add-hint form,
// which only the paintings screen has.
const adminModeHintForm = adminModeConfirmDelete + 1

// adminPaintingsView is the paintings CRUD screen, including hint management
// and an optional museum filter.
type adminPaintingsView struct {
	app       *App
	mode      adminMode
	paintings []api.PaintingDetail
	selection int
	filter    *int64
	form      *form
	hintForm  *form
	editing   *api.PaintingDetail
	busy      bool
	errMsg    string
}

type adminPaintingsLoadedMsg struct {
	gen       int
	paintings []api.PaintingDetail
	err       error
}

type adminPaintingMutatedMsg struct {
	gen int
	err error
}

func newAdminPaintingsView(app *App) *adminPaintingsView {
	return &adminPaintingsView{app: app, busy: true}
}

func (v *adminPaintingsView) reload() tea.Cmd {
	app, gen, filter := v.app, v.app.gen, v.filter
	v.busy = true
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		var (
			paintings []api.PaintingDetail
			err       error
		)
		if filter != nil {
			paintings, err = app.services.PaintingAdmin.ByMuseum(ctx, *filter)
		} else {
			paintings, err = app.services.PaintingAdmin.List(ctx)
		}
		return adminPaintingsLoadedMsg{gen: gen, paintings: paintings, err: err}
	}
}

func (v *adminPaintingsView) mutate(op func() error) tea.Cmd {
	gen := v.app.gen
	v.busy = true
	return func() tea.Msg {
		return adminPaintingMutatedMsg{gen: gen, err: op()}
	}
}

func (v *adminPaintingsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminPaintingsLoadedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Kon schilderijen niet laden."
			return nil
		}
		v.errMsg = ""
		v.paintings = msg.paintings
		if v.selection >= len(v.paintings) {
			v.selection = max(0, len(v.paintings)-1)
		}
		return nil

	case adminPaintingMutatedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Opslaan mislukt. Probeer het opnieuw."
			v.app.logbook.Warn("Painting mutation failed: %v", msg.err)
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
		case adminModeHintForm:
			return v.handleHintKey(msg)
		case adminModeConfirmDelete:
			return v.handleConfirmKey(msg)
		}
	}
	switch v.mode {
	case adminModeForm:
		return v.form.Update(msg)
	case adminModeHintForm:
		return v.hintForm.Update(msg)
	}
	return nil
}

func (v *adminPaintingsView) handleListKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if v.selection > 0 {
			v.selection--
		}
	case "down", "j":
		if v.selection < len(v.paintings)-1 {
			v.selection++
		}
	case "n":
		v.editing = nil
		v.form = newPaintingForm(nil)
		v.mode = adminModeForm
	case "enter", "e":
		if p := v.selected(); p != nil {
			v.editing = p
			v.form = newPaintingForm(p)
			v.mode = adminModeForm
		}
	case "h":
		if v.selected() != nil {
			v.hintForm = newForm(
				formField{label: "Type", placeholder: "STANDARD of EXTRA"},
				formField{label: "Tekst"},
				formField{label: "Volgorde (optioneel)"},
			)
			v.mode = adminModeHintForm
		}
	case "d":
		if v.selected() != nil {
			v.mode = adminModeConfirmDelete
		}
	case "f":
		// Toggle: filter on the selected painting's museum, or clear it.
		if v.filter != nil {
			v.filter = nil
			return v.reload()
		}
		if p := v.selected(); p != nil {
			id := p.MuseumID
			v.filter = &id
			return v.reload()
		}
	case "r":
		return v.reload()
	case "esc":
		return v.app.goTo(navigateMsg{target: screenAdminPanel})
	}
	return nil
}

func newPaintingForm(p *api.PaintingDetail) *form {
	f := newForm(
		formField{label: "Museum ID"},
		formField{label: "Titel"},
		formField{label: "Kunstenaar"},
		formField{label: "Jaar (optioneel)"},
		formField{label: "Museumlabel (optioneel)"},
		formField{label: "Herkenningssleutel (optioneel)"},
		formField{label: "Info-titel (optioneel)"},
		formField{label: "Infotekst (optioneel)"},
		formField{label: "Externe link (optioneel)"},
	)
	if p != nil {
		f.SetValue(0, fmt.Sprintf("%d", p.MuseumID))
		f.SetValue(1, p.Title)
		f.SetValue(2, p.Artist)
		if p.Year != 0 {
			f.SetValue(3, fmt.Sprintf("%d", p.Year))
		}
		f.SetValue(4, p.MuseumLabel)
		f.SetValue(5, p.ImageRecognitionKey)
		f.SetValue(6, p.InfoTitle)
		f.SetValue(7, p.InfoText)
		f.SetValue(8, p.ExternalLink)
	}
	return f
}

func (v *adminPaintingsView) handleFormKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		museumID, ok := v.form.IntValue(0)
		if !ok {
			v.errMsg = "Museum ID moet een getal zijn."
			return nil
		}
		title, artist := v.form.Value(1), v.form.Value(2)
		if title == "" || artist == "" {
			v.errMsg = "Titel en kunstenaar zijn verplicht."
			return nil
		}
		in := api.PaintingInput{
			MuseumID:            museumID,
			Title:               title,
			Artist:              artist,
			Year:                v.form.OptionalIntValue(3),
			MuseumLabel:         v.form.Value(4),
			ImageRecognitionKey: v.form.Value(5),
			InfoTitle:           v.form.Value(6),
			InfoText:            v.form.Value(7),
			ExternalLink:        v.form.Value(8),
		}
		editing := v.editing
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			if editing != nil {
				_, err := v.app.services.PaintingAdmin.Update(ctx, editing.PaintingID, in)
				return err
			}
			_, err := v.app.services.PaintingAdmin.Create(ctx, in)
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

func (v *adminPaintingsView) handleHintKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		p := v.selected()
		if p == nil {
			v.mode = adminModeList
			return nil
		}
		hintType := v.hintForm.Value(0)
		if hintType != api.HintTypeStandard && hintType != api.HintTypeExtra {
			v.errMsg = "Type moet STANDARD of EXTRA zijn."
			return nil
		}
		text := v.hintForm.Value(1)
		if text == "" {
			v.errMsg = "Tekst is verplicht."
			return nil
		}
		in := api.HintInput{
			HintType:     hintType,
			Text:         text,
			DisplayOrder: v.hintForm.OptionalIntValue(2),
		}
		paintingID := p.PaintingID
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			_, err := v.app.services.PaintingAdmin.AddHint(ctx, paintingID, in)
			return err
		})
	case "esc":
		v.mode = adminModeList
		v.errMsg = ""
		return nil
	}
	return v.hintForm.Update(key)
}

func (v *adminPaintingsView) handleConfirmKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "y", "Y":
		p := v.selected()
		if p == nil {
			v.mode = adminModeList
			return nil
		}
		id := p.PaintingID
		v.mode = adminModeList
		return v.mutate(func() error {
			ctx, cancel := withTimeout()
			defer cancel()
			return v.app.services.PaintingAdmin.Delete(ctx, id)
		})
	default:
		v.mode = adminModeList
		return nil
	}
}

func (v *adminPaintingsView) selected() *api.PaintingDetail {
	if v.selection < 0 || v.selection >= len(v.paintings) {
		return nil
	}
	return &v.paintings[v.selection]
}

func (v *adminPaintingsView) View(width int) string {
	rows := []string{headingStyle.Render("Schilderijenbeheer"), ""}

	switch v.mode {
	case adminModeForm:
		title := "Nieuw schilderij"
		if v.editing != nil {
			title = fmt.Sprintf("Schilderij bewerken · %s", v.editing.Title)
		}
		rows = append(rows, accentStyle.Render(title), "", v.form.View())
		if v.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(v.errMsg))
		}
		rows = append(rows, keyHintStyle.Render("Enter → opslaan    Esc → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case adminModeHintForm:
		title := "Hint toevoegen"
		if p := v.selected(); p != nil {
			title = fmt.Sprintf("Hint toevoegen · %s", p.Title)
		}
		rows = append(rows, accentStyle.Render(title), "", v.hintForm.View())
		if v.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(v.errMsg))
		}
		rows = append(rows, keyHintStyle.Render("Enter → opslaan    Esc → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case adminModeConfirmDelete:
		title := ""
		if p := v.selected(); p != nil {
			title = p.Title
		}
		rows = append(rows,
			errorStyle.Render(fmt.Sprintf("Schilderij %q verwijderen?", title)),
			keyHintStyle.Render("Y → verwijderen    elke andere toets → annuleren"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	if v.filter != nil {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("Filter: museum %d", *v.filter)))
	}
	if v.busy {
		rows = append(rows, mutedStyle.Render("Laden..."))
	}
	if v.errMsg != "" {
		rows = append(rows, errorStyle.Render(v.errMsg))
	}
	if len(v.paintings) == 0 && !v.busy {
		rows = append(rows, mutedStyle.Render("Nog geen schilderijen."))
	}
	for i, p := range v.paintings {
		hints := len(p.StandardHints) + len(p.ExtraHints)
		line := fmt.Sprintf("%d · %s, %s (museum %d, %d hints)", p.PaintingID, p.Title, p.Artist, p.MuseumID, hints)
		if i == v.selection {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, keyHintStyle.Render("N → nieuw    E → bewerken    H → hint    D → verwijderen    F → filter    R → verversen    Esc → beheer"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

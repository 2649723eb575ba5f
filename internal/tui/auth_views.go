package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// loginView is the public login screen.
type loginView struct {
	app     *App
	form    *form
	busy    bool
	spin    spinner.Model
	errMsg  string
	infoMsg string
}

type loginResultMsg struct {
	gen      int
	auth     *api.AuthResponse
	identity *api.Identity
	err      error
}

func newLoginView(app *App) *loginView {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &loginView{
		app:  app,
		spin: spin,
		form: newForm(
			formField{label: "E-mail", placeholder: "naam@voorbeeld.nl"},
			formField{label: "Wachtwoord", secret: true},
		),
	}
}

func (v *loginView) submit() tea.Cmd {
	email, password := v.form.Value(0), v.form.Value(1)
	if email == "" || password == "" {
		v.errMsg = "Vul e-mail en wachtwoord in."
		return nil
	}
	v.busy = true
	v.errMsg = ""
	app, gen := v.app, v.app.gen
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		auth, err := app.services.Auth.Login(ctx, api.Credentials{Email: email, Password: password})
		if err != nil {
			return loginResultMsg{gen: gen, err: err}
		}
		identity, err := app.services.Auth.Me(ctx)
		return loginResultMsg{gen: gen, auth: auth, identity: identity, err: err}
	})
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Inloggen mislukt. Controleer je gegevens."
			v.app.logbook.Warn("Login failed: %v", msg.err)
			return nil
		}
		v.app.session.SetIdentity(msg.identity)
		if msg.auth != nil {
			v.app.session.SetToken(msg.auth.AccessToken)
		}
		v.app.logbook.Info("Logged in as %s", msg.identity.Email)
		return v.app.goTo(navigateMsg{target: screenDashboard})

	case spinner.TickMsg:
		if !v.busy {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return cmd

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "enter":
			return v.submit()
		case "ctrl+r":
			return v.app.goTo(navigateMsg{target: screenRegister})
		case "ctrl+f":
			return v.app.goTo(navigateMsg{target: screenForgotPassword})
		}
	}
	return v.form.Update(msg)
}

func (v *loginView) View(width int) string {
	rows := []string{headingStyle.Render("Inloggen"), "", v.form.View()}
	if v.busy {
		rows = append(rows, "", v.spin.View()+" Bezig met inloggen...")
	}
	if v.errMsg != "" {
		rows = append(rows, "", errorStyle.Render(v.errMsg))
	}
	if v.infoMsg != "" {
		rows = append(rows, "", okStyle.Render(v.infoMsg))
	}
	rows = append(rows, keyHintStyle.Render("Enter → inloggen    Ctrl+R → registreren    Ctrl+F → wachtwoord vergeten"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// registerView is the public registration screen. After a successful signup
// it switches to a token prompt so the activation link from the mail can be
// redeemed without leaving the terminal.
type registerView struct {
	app        *App
	form       *form
	activation *form
	activating bool
	busy       bool
	errMsg     string
	okMsg      string
}

type registerResultMsg struct {
	gen int
	err error
}

type activationResultMsg struct {
	gen int
	err error
}

func newRegisterView(app *App) *registerView {
	return &registerView{
		app: app,
		form: newForm(
			formField{label: "Voornaam"},
			formField{label: "Achternaam"},
			formField{label: "E-mail"},
			formField{label: "Wachtwoord", secret: true},
			formField{label: "Herhaal wachtwoord", secret: true},
		),
		activation: newForm(formField{label: "Activatiecode (uit de e-mail)"}),
	}
}

func (v *registerView) submit() tea.Cmd {
	if v.form.Value(2) == "" || v.form.Value(3) == "" {
		v.errMsg = "E-mail en wachtwoord zijn verplicht."
		return nil
	}
	if v.form.Value(3) != v.form.Value(4) {
		v.errMsg = "Wachtwoorden komen niet overeen."
		return nil
	}
	v.busy = true
	v.errMsg = ""
	app, gen := v.app, v.app.gen
	reg := api.Registration{
		FirstName: v.form.Value(0),
		LastName:  v.form.Value(1),
		Email:     v.form.Value(2),
		Password:  v.form.Value(3),
	}
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		_, err := app.services.Auth.Register(ctx, reg)
		return registerResultMsg{gen: gen, err: err}
	}
}

func (v *registerView) activate() tea.Cmd {
	token := v.activation.Value(0)
	if token == "" {
		v.errMsg = "Vul de activatiecode in."
		return nil
	}
	v.busy = true
	v.errMsg = ""
	app, gen := v.app, v.app.gen
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return activationResultMsg{gen: gen, err: app.services.Auth.Activate(ctx, token)}
	}
}

func (v *registerView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case registerResultMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Registreren mislukt. Probeer het later opnieuw."
			v.app.logbook.Warn("Registration failed: %v", msg.err)
			return nil
		}
		v.activating = true
		v.okMsg = "Account aangemaakt. Check je e-mail voor de activatiecode."
		return nil

	case activationResultMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Activeren mislukt. Controleer de code."
			return nil
		}
		v.okMsg = "Account geactiveerd. Je kunt nu inloggen."
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "enter":
			if v.activating {
				return v.activate()
			}
			return v.submit()
		case "esc":
			return v.app.goTo(navigateMsg{target: screenLogin})
		}
	}
	if v.activating {
		return v.activation.Update(msg)
	}
	return v.form.Update(msg)
}

func (v *registerView) View(width int) string {
	title, action := "Account aanmaken", "Enter → registreren"
	active := v.form
	if v.activating {
		title, action = "Account activeren", "Enter → activeren"
		active = v.activation
	}
	rows := []string{headingStyle.Render(title), "", active.View()}
	if v.errMsg != "" {
		rows = append(rows, "", errorStyle.Render(v.errMsg))
	}
	if v.okMsg != "" {
		rows = append(rows, "", okStyle.Render(v.okMsg))
	}
	rows = append(rows, keyHintStyle.Render(action+"    Esc → terug naar inloggen"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// forgotPasswordView requests a reset mail, then confirms the token with a
// new password.
type forgotPasswordView struct {
	app       *App
	request   *form
	confirm   *form
	confirmed bool // switched after the reset mail is requested
	busy      bool
	errMsg    string
	okMsg     string
}

type resetRequestedMsg struct {
	gen int
	err error
}

type resetConfirmedMsg struct {
	gen int
	err error
}

func newForgotPasswordView(app *App) *forgotPasswordView {
	return &forgotPasswordView{
		app:     app,
		request: newForm(formField{label: "E-mail"}),
		confirm: newForm(
			formField{label: "Reset-token (uit de e-mail)"},
			formField{label: "Nieuw wachtwoord", secret: true},
		),
	}
}

func (v *forgotPasswordView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case resetRequestedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Aanvraag mislukt. Probeer het later opnieuw."
			return nil
		}
		v.confirmed = true
		v.okMsg = "Als het adres bekend is, is er een e-mail onderweg."
		return nil

	case resetConfirmedMsg:
		if v.app.stale(msg.gen) {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Wachtwoord resetten mislukt. Controleer het token."
			return nil
		}
		v.okMsg = "Wachtwoord aangepast. Je kunt nu inloggen."
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "enter":
			return v.submit()
		case "esc":
			return v.app.goTo(navigateMsg{target: screenLogin})
		}
	}
	if v.confirmed {
		return v.confirm.Update(msg)
	}
	return v.request.Update(msg)
}

func (v *forgotPasswordView) submit() tea.Cmd {
	app, gen := v.app, v.app.gen
	v.errMsg = ""
	if !v.confirmed {
		email := v.request.Value(0)
		if email == "" {
			v.errMsg = "Vul je e-mailadres in."
			return nil
		}
		v.busy = true
		return func() tea.Msg {
			ctx, cancel := withTimeout()
			defer cancel()
			return resetRequestedMsg{gen: gen, err: app.services.Auth.RequestPasswordReset(ctx, email)}
		}
	}
	token, password := v.confirm.Value(0), v.confirm.Value(1)
	if token == "" || password == "" {
		v.errMsg = "Vul token en nieuw wachtwoord in."
		return nil
	}
	v.busy = true
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := app.services.Auth.ValidateResetToken(ctx, token); err != nil {
			return resetConfirmedMsg{gen: gen, err: err}
		}
		err := app.services.Auth.ConfirmPasswordReset(ctx, api.PasswordReset{Token: token, NewPassword: password})
		return resetConfirmedMsg{gen: gen, err: err}
	}
}

func (v *forgotPasswordView) View(width int) string {
	rows := []string{headingStyle.Render("Wachtwoord vergeten"), ""}
	if v.confirmed {
		rows = append(rows, v.confirm.View())
	} else {
		rows = append(rows, v.request.View())
	}
	if v.errMsg != "" {
		rows = append(rows, "", errorStyle.Render(v.errMsg))
	}
	if v.okMsg != "" {
		rows = append(rows, "", okStyle.Render(v.okMsg))
	}
	rows = append(rows, keyHintStyle.Render("Enter → versturen    Esc → terug naar inloggen"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// notFoundView is where role-gated navigation dead-ends.
type notFoundView struct {
	app *App
}

func newNotFoundView(app *App) *notFoundView {
	return &notFoundView{app: app}
}

func (v *notFoundView) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter":
			return v.app.goTo(navigateMsg{target: screenDashboard})
		}
	}
	return nil
}

func (v *notFoundView) View(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Pagina niet gevonden"),
		mutedStyle.Render("Deze pagina bestaat niet of je hebt er geen toegang toe."),
		keyHintStyle.Render("Enter → naar dashboard"),
	)
}

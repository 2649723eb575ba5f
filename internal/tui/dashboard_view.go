package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/questify/internal/api"
)

// menuItem implements list.Item for plain menus.
type menuItem struct {
	title string
	desc  string
	id    string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

const (
	menuStartQuest = "start-quest"
	menuResume     = "resume"
	menuAdmin      = "admin"
	menuLogout     = "logout"
)

// dashboardView is the landing screen after login.
type dashboardView struct {
	app  *App
	menu list.Model
}

func newDashboardView(app *App) *dashboardView {
	items := buildDashboardMenu(app)
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Dashboard"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetSize(60, 4*len(items))
	return &dashboardView{app: app, menu: menu}
}

func buildDashboardMenu(app *App) []list.Item {
	items := []list.Item{
		menuItem{id: menuStartQuest, title: "Start een speurtocht", desc: "Kies een museum en een route"},
	}
	if app.state.HasResume() {
		desc := fmt.Sprintf("Verder bij stop %d", app.state.LastStopNumber)
		if len(app.state.RecentRoutes) > 0 && app.state.RecentRoutes[0].RouteName != "" {
			desc = fmt.Sprintf("%s · stop %d", app.state.RecentRoutes[0].RouteName, app.state.LastStopNumber)
		}
		items = append(items, menuItem{id: menuResume, title: "Ga verder waar je was", desc: desc})
	}
	if app.session.Allowed(api.RoleAdmin) {
		items = append(items, menuItem{id: menuAdmin, title: "Beheer", desc: "Musea, routes, schilderijen en stops"})
	}
	items = append(items, menuItem{id: menuLogout, title: "Uitloggen", desc: "Sessie beëindigen"})
	return items
}

func (v *dashboardView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.menu.SetSize(max(40, msg.Width-6), max(8, msg.Height-12))
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return v.selected()
		case "q":
			return tea.Quit
		}
	}
	var cmd tea.Cmd
	v.menu, cmd = v.menu.Update(msg)
	return cmd
}

func (v *dashboardView) selected() tea.Cmd {
	item, ok := v.menu.SelectedItem().(menuItem)
	if !ok {
		return nil
	}
	switch item.id {
	case menuStartQuest:
		return v.app.goTo(navigateMsg{target: screenMuseums})
	case menuResume:
		return v.app.goTo(navigateMsg{
			target:     screenStopScan,
			museumID:   v.app.state.LastMuseumID,
			routeID:    v.app.state.LastRouteID,
			stopNumber: v.app.state.LastStopNumber,
		})
	case menuAdmin:
		return v.app.goTo(navigateMsg{target: screenAdminPanel})
	case menuLogout:
		return v.app.logout()
	}
	return nil
}

func (v *dashboardView) View(width int) string {
	identity := v.app.session.Identity()
	greeting := ""
	if identity != nil {
		greeting = mutedStyle.Render(fmt.Sprintf("Welkom, %s %s", identity.FirstName, identity.LastName))
	}
	return lipgloss.JoinVertical(lipgloss.Left, greeting, v.menu.View())
}

package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// adminPanelView is the admin landing menu.
type adminPanelView struct {
	app  *App
	menu list.Model
}

func newAdminPanelView(app *App) *adminPanelView {
	items := []list.Item{
		menuItem{id: "museums", title: "Musea", desc: "Musea beheren"},
		menuItem{id: "routes", title: "Routes", desc: "Routes beheren"},
		menuItem{id: "paintings", title: "Schilderijen", desc: "Schilderijen en hints beheren"},
		menuItem{id: "route-stops", title: "Route stops", desc: "Stops en volgorde beheren"},
		menuItem{id: "back", title: "Terug", desc: "Naar het dashboard"},
	}
	menu := list.New(items, list.NewDefaultDelegate(), 60, 4*len(items))
	menu.Title = "Beheer"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	return &adminPanelView{app: app, menu: menu}
}

func (v *adminPanelView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.menu.SetSize(max(40, msg.Width-6), max(8, msg.Height-12))
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			item, ok := v.menu.SelectedItem().(menuItem)
			if !ok {
				return nil
			}
			switch item.id {
			case "museums":
				return v.app.goTo(navigateMsg{target: screenAdminMuseums})
			case "routes":
				return v.app.goTo(navigateMsg{target: screenAdminRoutes})
			case "paintings":
				return v.app.goTo(navigateMsg{target: screenAdminPaintings})
			case "route-stops":
				return v.app.goTo(navigateMsg{target: screenAdminRouteStops})
			case "back":
				return v.app.goTo(navigateMsg{target: screenDashboard})
			}
		case "esc":
			return v.app.goTo(navigateMsg{target: screenDashboard})
		}
	}
	var cmd tea.Cmd
	v.menu, cmd = v.menu.Update(msg)
	return cmd
}

func (v *adminPanelView) View(width int) string {
	return v.menu.View()
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	userModels "messenger-client/internal/features/user/models"
)

const (
	settingsAvatar = iota
	settingsName
	settingsBio
)

// settingsView — редактирование своего профиля
type settingsView struct {
	form    *form
	phone   string
	loading bool
	err     string
}

func newSettingsView() *settingsView {
	return &settingsView{
		form: newForm(
			field{label: "Avatar URL", input: newInput("https://...", 512)},
			field{label: "Name", input: newInput("Your name", 64)},
			field{label: "About", input: newInput("A few words about you", 256)},
		),
	}
}

func (v *settingsView) reset(user *userModels.User) {
	v.form.reset()
	v.loading = false
	v.err = ""
	v.phone = ""
	if user != nil {
		v.phone = user.Phone
		v.form.set(settingsAvatar, user.Avatar)
		v.form.set(settingsName, user.Name)
		v.form.set(settingsBio, user.Bio)
	}
	v.form.setFocus(settingsName)
}

func (v *settingsView) update(a *App, m *messengerView, msg tea.KeyMsg) tea.Cmd {
	if v.form.handleNav(msg) {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.backToList(a)
		return nil
	case "ctrl+l":
		a.logout()
		return nil
	case "enter":
		return v.save(a)
	}
	return v.form.update(msg)
}

func (v *settingsView) save(a *App) tea.Cmd {
	user := a.deps.Router.User()
	if user == nil || v.loading {
		return nil
	}
	v.loading = true
	v.err = ""
	ctx, auth := a.ctx, a.deps.Auth
	name := v.form.trimmed(settingsName)
	bio := v.form.trimmed(settingsBio)
	avatar := v.form.trimmed(settingsAvatar)
	return func() tea.Msg {
		updated, err := auth.UpdateProfile(ctx, user, name, bio, avatar)
		return settingsResultMsg{user: updated, err: err}
	}
}

func (v *settingsView) view(a *App) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(avatarStyle.Render(userModels.Initial(v.form.trimmed(settingsName))))
	b.WriteString(" " + subtleStyle.Render(v.phone))
	b.WriteString("\n\n")
	b.WriteString(v.form.view())

	switch {
	case v.loading:
		b.WriteString("\n" + subtleStyle.Render("Saving..."))
	case v.err != "":
		b.WriteString("\n" + errorStyle.Render(v.err))
	}

	b.WriteString(helpStyle.Render("\nenter: save • esc: back • ctrl+l: log out • ctrl+c: quit"))
	return boxStyle.Render(b.String())
}

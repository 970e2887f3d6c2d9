package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	authService "messenger-client/internal/features/auth/service"
	userModels "messenger-client/internal/features/user/models"
)

const (
	profileAvatar = iota
	profileName
	profileBio
	profilePhone
)

// profileView — обязательное заполнение профиля после первого входа
type profileView struct {
	form    *form
	loading bool
	err     string
}

func newProfileView() *profileView {
	return &profileView{
		form: newForm(
			field{label: "Avatar URL", input: newInput("https://...", 512)},
			field{label: "Name *", input: newInput("Your name", 64)},
			field{label: "About", input: newInput("A few words about you", 256)},
			field{label: "Contact phone", input: newInput("+79990000000", 20)},
		),
	}
}

func (v *profileView) reset(user *userModels.User) {
	v.form.reset()
	v.loading = false
	v.err = ""
	if user != nil {
		v.form.set(profilePhone, user.Phone)
	}
	v.form.setFocus(profileName)
}

func (v *profileView) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileResultMsg:
		v.loading = false
		if msg.err != nil {
			v.err = authService.ErrorText(msg.err, authService.MsgProfileFailed)
			return nil
		}
		if _, err := a.deps.Router.ProfileCompleted(a.ctx, msg.user); err != nil {
			v.err = err.Error()
		}
		return nil

	case tea.KeyMsg:
		if v.form.handleNav(msg) {
			return nil
		}
		switch msg.String() {
		case "ctrl+l":
			a.logout()
			return nil
		case "enter":
			return v.submit(a)
		}
	}
	return v.form.update(msg)
}

func (v *profileView) submit(a *App) tea.Cmd {
	if v.loading {
		return nil
	}
	user := a.deps.Router.User()
	if user == nil {
		return nil
	}
	if v.form.trimmed(profileName) == "" {
		v.err = authService.ErrNameRequired.Error()
		return nil
	}

	v.loading = true
	v.err = ""
	ctx, auth := a.ctx, a.deps.Auth
	name := v.form.trimmed(profileName)
	bio := v.form.trimmed(profileBio)
	phone := v.form.trimmed(profilePhone)
	avatar := v.form.trimmed(profileAvatar)
	return func() tea.Msg {
		updated, err := auth.CompleteProfile(ctx, user, name, bio, phone, avatar)
		return profileResultMsg{user: updated, err: err}
	}
}

func (v *profileView) view(a *App) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Set up your profile"))
	b.WriteString("\n\n")

	initial := "?"
	if name := v.form.trimmed(profileName); name != "" {
		initial = userModels.Initial(name)
	}
	b.WriteString(avatarStyle.Render(initial))
	b.WriteString("\n\n")
	b.WriteString(v.form.view())

	switch {
	case v.loading:
		b.WriteString("\n" + subtleStyle.Render("Saving..."))
	case v.err != "":
		b.WriteString("\n" + errorStyle.Render(v.err))
	}

	b.WriteString(helpStyle.Render("\nenter: save • tab: next field • ctrl+l: log out • ctrl+c: quit"))
	return boxStyle.Render(b.String())
}

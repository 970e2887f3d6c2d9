package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authService "messenger-client/internal/features/auth/service"
)

const (
	loginPhone = iota
	loginPassword
)

// loginView — вход и регистрация по телефону и паролю
type loginView struct {
	form     *form
	register bool
	loading  bool
	err      string
}

func newLoginView() *loginView {
	return &loginView{
		form: newForm(
			field{label: "Phone", input: newInput("+79990000000", 20)},
			field{label: "Password", input: newPasswordInput("password")},
		),
	}
}

func (v *loginView) reset() {
	v.form.reset()
	v.register = false
	v.loading = false
	v.err = ""
}

func (v *loginView) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authResultMsg:
		v.loading = false
		if msg.err != nil {
			v.err = authService.ErrorText(msg.err, authService.MsgAuthFailed)
			return nil
		}
		if _, err := a.deps.Router.LoggedIn(a.ctx, msg.user); err != nil {
			v.err = err.Error()
		}
		return nil

	case tea.KeyMsg:
		if v.form.handleNav(msg) {
			return nil
		}
		switch msg.String() {
		case "ctrl+r":
			v.register = !v.register
			v.err = ""
			return nil
		case "enter":
			return v.submit(a)
		}
	}
	return v.form.update(msg)
}

func (v *loginView) submit(a *App) tea.Cmd {
	if v.loading {
		return nil
	}
	phone := v.form.trimmed(loginPhone)
	password := v.form.value(loginPassword)
	if phone == "" || password == "" {
		v.err = authService.ErrMissingCredentials.Error()
		return nil
	}

	v.loading = true
	v.err = ""
	ctx, auth, register := a.ctx, a.deps.Auth, v.register
	return func() tea.Msg {
		if register {
			user, err := auth.Register(ctx, phone, password)
			return authResultMsg{user: user, err: err, register: true}
		}
		user, err := auth.Login(ctx, phone, password)
		return authResultMsg{user: user, err: err}
	}
}

func (v *loginView) view(a *App) string {
	title := "Sign in"
	toggle := "ctrl+r: create an account"
	if v.register {
		title = "Create account"
		toggle = "ctrl+r: back to sign in"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Messenger"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(v.form.view())

	switch {
	case v.loading:
		b.WriteString("\n" + subtleStyle.Render("Please wait..."))
	case v.err != "":
		b.WriteString("\n" + errorStyle.Render(v.err))
	}

	b.WriteString(helpStyle.Render("\nenter: submit • tab: next field • " + toggle + " • ctrl+c: quit"))
	return boxStyle.Render(b.String())
}

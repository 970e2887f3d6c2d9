package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	adminService "messenger-client/internal/features/admin/service"
	authService "messenger-client/internal/features/auth/service"
	userModels "messenger-client/internal/features/user/models"
	"messenger-client/internal/platform/gateway"
)

const (
	adminPhone = iota
	adminPassword
	adminName
)

const (
	MsgCreateFailed = "Failed to create user"
	MsgToggleFailed = "Failed to update user"
)

// adminView — список всех пользователей, создание и блокировка
type adminView struct {
	form      *form
	listFocus bool
	users     []userModels.User
	loaded    bool
	cursor    int
	busy      bool
	err       string
	info      string
}

func newAdminView() *adminView {
	return &adminView{
		form: newForm(
			field{label: "Phone *", input: newInput("+79990000000", 20)},
			field{label: "Password *", input: newPasswordInput("password")},
			field{label: "Name", input: newInput("Name", 64)},
		),
	}
}

func (v *adminView) reset() {
	v.form.reset()
	v.listFocus = false
	v.users = nil
	v.loaded = false
	v.cursor = 0
	v.busy = false
	v.err = ""
	v.info = ""
}

func (v *adminView) setUsers(items []userModels.User) {
	v.users = items
	v.loaded = true
	if v.cursor >= len(items) {
		v.cursor = len(items) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *adminView) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminCreateResultMsg:
		v.busy = false
		if msg.err != nil {
			v.err = adminErrorText(msg.err, MsgCreateFailed)
			return nil
		}
		v.form.reset()
		v.info = "User created"
		a.usersSync.Refresh()
		return nil

	case adminToggleResultMsg:
		v.busy = false
		if msg.err != nil {
			v.err = adminErrorText(msg.err, MsgToggleFailed)
			return nil
		}
		a.usersSync.Refresh()
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			a.deps.Router.CloseAdmin()
			return nil
		case "ctrl+l":
			a.logout()
			return nil
		case "tab", "shift+tab":
			v.switchFocus()
			return nil
		}
		if v.listFocus {
			return v.updateList(a, msg)
		}
		return v.updateForm(a, msg)
	}
	return nil
}

func (v *adminView) switchFocus() {
	v.listFocus = !v.listFocus
	if v.listFocus {
		for i := range v.form.fields {
			v.form.fields[i].input.Blur()
		}
		return
	}
	v.form.setFocus(adminPhone)
}

func (v *adminView) updateForm(a *App, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "down":
		v.form.next()
		return nil
	case "up":
		v.form.prev()
		return nil
	case "enter":
		return v.create(a)
	}
	return v.form.update(msg)
}

func (v *adminView) updateList(a *App, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.users)-1 {
			v.cursor++
		}
	case "b", "enter":
		return v.toggle(a)
	}
	return nil
}

func (v *adminView) create(a *App) tea.Cmd {
	if v.busy {
		return nil
	}
	phone := v.form.trimmed(adminPhone)
	password := v.form.value(adminPassword)
	if phone == "" || password == "" {
		v.err = adminService.ErrIncompleteForm.Error()
		return nil
	}

	v.busy = true
	v.err = ""
	v.info = ""
	ctx, admin := a.ctx, a.deps.Admin
	name := v.form.trimmed(adminName)
	return func() tea.Msg {
		_, err := admin.CreateUser(ctx, phone, password, name)
		return adminCreateResultMsg{err: err}
	}
}

// toggle недоступен для администраторов
func (v *adminView) toggle(a *App) tea.Cmd {
	if v.busy || v.cursor >= len(v.users) {
		return nil
	}
	target := v.users[v.cursor]
	if target.IsAdmin {
		v.err = adminService.ErrAdminImmune.Error()
		return nil
	}

	v.busy = true
	v.err = ""
	v.info = ""
	ctx, admin := a.ctx, a.deps.Admin
	return func() tea.Msg {
		err := admin.ToggleBlock(ctx, &target)
		return adminToggleResultMsg{userID: target.ID, err: err}
	}
}

func adminErrorText(err error, fallback string) string {
	switch {
	case errors.Is(err, adminService.ErrIncompleteForm), errors.Is(err, adminService.ErrAdminImmune):
		return err.Error()
	case gateway.IsTransport(err):
		return authService.MsgServerUnreachable
	}
	return authService.ErrorText(err, fallback)
}

func (v *adminView) view(a *App) string {
	formBox := paneStyle
	listBox := paneStyle
	if v.listFocus {
		listBox = activePaneStyle
	} else {
		formBox = activePaneStyle
	}

	var f strings.Builder
	f.WriteString(lipgloss.NewStyle().Bold(true).Render("New user"))
	f.WriteString("\n\n")
	f.WriteString(v.form.view())
	switch {
	case v.busy:
		f.WriteString("\n" + subtleStyle.Render("Please wait..."))
	case v.err != "":
		f.WriteString("\n" + errorStyle.Render(v.err))
	case v.info != "":
		f.WriteString("\n" + successStyle.Render(v.info))
	}

	var l strings.Builder
	l.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Users (%d)", len(v.users))))
	l.WriteString("\n\n")
	if !v.loaded {
		l.WriteString(subtleStyle.Render("Loading..."))
	}
	for i := range v.users {
		u := &v.users[i]
		marker := "  "
		if v.listFocus && i == v.cursor {
			marker = selectedStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%-4d %-16s %s", marker, u.ID, truncate(u.DisplayName(), 16), u.Phone)
		if u.IsAdmin {
			line += " " + badgeAdmin
		}
		if u.IsBlocked {
			line += " " + badgeBlocked
		}
		if u.CreatedAt != nil && !u.CreatedAt.IsZero() {
			line += " " + subtleStyle.Render(u.CreatedAt.Date())
		}
		l.WriteString(line + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		formBox.Width(40).Render(f.String()),
		listBox.Width(64).Render(strings.TrimRight(l.String(), "\n")),
	)

	help := "tab: switch pane • enter: create • esc: back to chats • ctrl+l: log out"
	if v.listFocus {
		help = "tab: switch pane • ↑/↓: select • b: block/unblock • esc: back to chats • ctrl+l: log out"
	}
	return titleStyle.Render("Admin panel") + "\n" + body + "\n" + helpStyle.Render(help)
}

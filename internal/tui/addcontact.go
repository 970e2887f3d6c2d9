package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	contactService "messenger-client/internal/features/contact/service"
	userModels "messenger-client/internal/features/user/models"
)

// searchView — поиск пользователя по телефону и добавление в контакты
type searchView struct {
	phone     textinput.Model
	searching bool
	adding    bool
	candidate *userModels.User
	err       string
}

func newSearchView() *searchView {
	return &searchView{
		phone: newInput("+79990000000", 20),
	}
}

func (v *searchView) reset() {
	v.phone.Reset()
	_ = v.phone.Focus()
	v.searching = false
	v.adding = false
	v.candidate = nil
	v.err = ""
}

func (v *searchView) applyResult(msg searchResultMsg) {
	// ответ на устаревший запрос
	if msg.phone != strings.TrimSpace(v.phone.Value()) {
		return
	}
	v.searching = false
	if msg.err != nil {
		v.candidate = nil
		v.err = contactService.SearchErrorText(msg.err)
		return
	}
	v.candidate = msg.user
	v.err = ""
}

func (v *searchView) update(a *App, m *messengerView, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.backToList(a)
		return nil
	case "enter":
		return v.find(a)
	case "ctrl+s":
		return v.add(a)
	}

	before := v.phone.Value()
	var cmd tea.Cmd
	v.phone, cmd = v.phone.Update(msg)
	if v.phone.Value() != before && !v.adding {
		// ответ на прежний номер будет отброшен в applyResult
		v.searching = false
		v.candidate = nil
		v.err = ""
	}
	return cmd
}

func (v *searchView) find(a *App) tea.Cmd {
	phone := strings.TrimSpace(v.phone.Value())
	if phone == "" || v.searching {
		return nil
	}
	v.searching = true
	v.candidate = nil
	v.err = ""
	ctx, contacts := a.ctx, a.deps.Contacts
	return func() tea.Msg {
		user, err := contacts.Search(ctx, phone)
		return searchResultMsg{phone: phone, user: user, err: err}
	}
}

// add отправляет ровно один запрос на найденного кандидата
func (v *searchView) add(a *App) tea.Cmd {
	if v.candidate == nil || v.adding {
		return nil
	}
	v.adding = true
	candidate := *v.candidate
	ctx, contacts, userID := a.ctx, a.deps.Contacts, a.userID()
	return func() tea.Msg {
		err := contacts.Add(ctx, userID, &candidate)
		return addContactResultMsg{contactID: candidate.ID, err: err}
	}
}

func (v *searchView) view(a *App) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add contact"))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("Phone number"))
	b.WriteString("\n")
	b.WriteString(v.phone.View())
	b.WriteString("\n\n")

	switch {
	case v.searching:
		b.WriteString(subtleStyle.Render("Searching..."))
	case v.err != "":
		b.WriteString(errorStyle.Render(v.err))
	case v.candidate != nil:
		c := v.candidate
		b.WriteString(avatarStyle.Render(c.Initial()) + " " + selectedStyle.Render(c.DisplayName()) + "\n")
		b.WriteString(subtleStyle.Render(c.Phone) + "\n")
		if c.Bio != "" {
			b.WriteString(c.Bio + "\n")
		}
		if v.adding {
			b.WriteString("\n" + subtleStyle.Render("Adding..."))
		} else {
			b.WriteString("\n" + successStyle.Render("ctrl+s: add to contacts"))
		}
	}

	b.WriteString(helpStyle.Render("\nenter: search • ctrl+s: add • esc: back • ctrl+c: quit"))
	return boxStyle.Render(b.String())
}

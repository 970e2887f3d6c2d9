package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authService "messenger-client/internal/features/auth/service"
	chatModels "messenger-client/internal/features/chat/models"
	contactModels "messenger-client/internal/features/contact/models"
	contactService "messenger-client/internal/features/contact/service"
	"messenger-client/internal/platform/gateway"
)

const (
	MsgSendFailed = "Failed to send message"

	listPaneWidth = 34
)

type messengerMode int

const (
	modeBrowse messengerMode = iota
	modeSettings
	modeAddContact
)

type paneFocus int

const (
	focusList paneFocus = iota
	focusChat
)

// messengerView — список чатов слева, открытая переписка справа.
// Настройки и добавление контакта заменяют обе панели.
type messengerView struct {
	mode  messengerMode
	focus paneFocus

	contacts []contactModels.Contact
	loaded   bool
	cursor   int

	self     int64
	active   *contactModels.Contact
	messages []chatModels.Message
	draft    textinput.Model
	viewport viewport.Model
	sending  bool

	notice string

	search   *searchView
	settings *settingsView

	width, height int
}

func newMessengerView() *messengerView {
	draft := newInput("Type a message...", 4096)
	draft.Prompt = ""
	return &messengerView{
		draft:    draft,
		viewport: viewport.New(40, 10),
		search:   newSearchView(),
		settings: newSettingsView(),
	}
}

func (v *messengerView) reset() {
	v.mode = modeBrowse
	v.focus = focusList
	v.contacts = nil
	v.loaded = false
	v.cursor = 0
	v.closeChat()
	v.notice = ""
}

func (v *messengerView) resize(width, height int) {
	v.width, v.height = width, height

	chatWidth := width - listPaneWidth - 6
	if chatWidth < 20 {
		chatWidth = 20
	}
	// заголовок, поле ввода, рамки и подсказка
	chatHeight := height - 9
	if chatHeight < 3 {
		chatHeight = 3
	}
	v.viewport.Width = chatWidth
	v.viewport.Height = chatHeight
	v.draft.Width = chatWidth - 2
	v.renderMessages()
}

// conversation возвращает переписку, для которой нужен опрос сообщений
func (v *messengerView) conversation(userID int64) (chatModels.Conversation, bool) {
	if v.mode != modeBrowse || v.active == nil {
		return chatModels.Conversation{}, false
	}
	return chatModels.Conversation{UserID: userID, ContactID: v.active.ID}, true
}

func (v *messengerView) setContacts(items []contactModels.Contact) {
	v.contacts = items
	v.loaded = true
	if v.cursor >= len(items) {
		v.cursor = len(items) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	if v.active == nil {
		return
	}
	for i := range items {
		if items[i].ID == v.active.ID {
			c := items[i]
			v.active = &c
			return
		}
	}
}

// setMessages целиком заменяет переписку снимком
func (v *messengerView) setMessages(userID int64, conv chatModels.Conversation, items []chatModels.Message) {
	if v.active == nil || conv.ContactID != v.active.ID || conv.UserID != userID {
		return
	}
	grew := len(items) != len(v.messages)
	v.self = userID
	v.messages = items
	v.renderMessages()
	if grew {
		v.viewport.GotoBottom()
	}
}

func (v *messengerView) open(userID int64, c contactModels.Contact) {
	// тот же чат: переписка и черновик остаются, опрос уже идет
	if v.active != nil && v.active.ID == c.ID && v.self == userID {
		v.active = &c
		v.focusChat()
		v.renderMessages()
		return
	}
	v.self = userID
	v.active = &c
	v.messages = nil
	v.sending = false
	v.draft.Reset()
	v.focusChat()
	v.renderMessages()
}

func (v *messengerView) closeChat() {
	v.active = nil
	v.messages = nil
	v.sending = false
	v.draft.Reset()
	v.draft.Blur()
	v.viewport.SetContent("")
}

func (v *messengerView) focusChat() {
	if v.active == nil {
		return
	}
	v.focus = focusChat
	_ = v.draft.Focus()
}

func (v *messengerView) focusList() {
	v.focus = focusList
	v.draft.Blur()
}

func (v *messengerView) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sendResultMsg:
		v.sending = false
		if msg.err != nil {
			v.notice = gateway.Message(msg.err, MsgSendFailed)
			return nil
		}
		if v.active != nil && msg.conv.ContactID == v.active.ID {
			v.draft.Reset()
		}
		v.notice = ""
		a.messagesSync.Refresh()
		a.contactsSync.Refresh()
		return nil

	case searchResultMsg:
		if v.mode == modeAddContact {
			v.search.applyResult(msg)
		}
		return nil

	case addContactResultMsg:
		v.search.adding = false
		v.backToList(a)
		if msg.err != nil {
			v.notice = contactService.MsgAddFailed
		}
		return nil

	case settingsResultMsg:
		if v.mode != modeSettings {
			return nil
		}
		v.settings.loading = false
		if msg.err != nil {
			v.settings.err = authService.ErrorText(msg.err, authService.MsgProfileFailed)
			return nil
		}
		if _, err := a.deps.Router.ProfileUpdated(a.ctx, msg.user); err != nil {
			v.settings.err = err.Error()
			return nil
		}
		v.backToList(a)
		return nil

	case tea.KeyMsg:
		switch v.mode {
		case modeSettings:
			return v.settings.update(a, v, msg)
		case modeAddContact:
			return v.search.update(a, v, msg)
		}
		if v.focus == focusChat {
			return v.updateChat(a, msg)
		}
		return v.updateList(a, msg)
	}
	return nil
}

func (v *messengerView) backToList(a *App) {
	v.mode = modeBrowse
	if v.active != nil {
		v.focusChat()
	} else {
		v.focusList()
	}
	a.contactsSync.Refresh()
}

func (v *messengerView) updateList(a *App, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.contacts)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.contacts) {
			v.notice = ""
			v.open(a.userID(), v.contacts[v.cursor])
		}
	case "tab":
		v.focusChat()
	case "esc":
		v.closeChat()
	case "a":
		v.mode = modeAddContact
		v.notice = ""
		v.draft.Blur()
		v.search.reset()
	case "s":
		v.mode = modeSettings
		v.notice = ""
		v.draft.Blur()
		v.settings.reset(a.deps.Router.User())
	case "p":
		// вход в панель показан только администраторам
		if a.deps.Router.CanOpenAdmin() {
			_, _ = a.deps.Router.OpenAdmin()
		}
	case "ctrl+l":
		a.logout()
	case "q":
		a.Close()
		return tea.Quit
	}
	return nil
}

func (v *messengerView) updateChat(a *App, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "tab":
		v.focusList()
		return nil
	case "ctrl+l":
		a.logout()
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return cmd
	case "enter":
		return v.send(a)
	}

	var cmd tea.Cmd
	v.draft, cmd = v.draft.Update(msg)
	return cmd
}

// send: пустое сообщение не отправляется вовсе
func (v *messengerView) send(a *App) tea.Cmd {
	if v.active == nil || v.sending {
		return nil
	}
	content := v.draft.Value()
	if strings.TrimSpace(content) == "" {
		return nil
	}

	conv := chatModels.Conversation{UserID: a.userID(), ContactID: v.active.ID}
	v.sending = true
	ctx, chat := a.ctx, a.deps.Chat
	return func() tea.Msg {
		_, err := chat.Send(ctx, conv, content)
		return sendResultMsg{conv: conv, err: err}
	}
}

func (v *messengerView) renderMessages() {
	if v.active == nil {
		v.viewport.SetContent("")
		return
	}
	if v.messages == nil {
		v.viewport.SetContent(subtleStyle.Render("Loading..."))
		return
	}
	if len(v.messages) == 0 {
		v.viewport.SetContent(subtleStyle.Render("No messages yet. Say hi!"))
		return
	}

	var b strings.Builder
	for i := range v.messages {
		m := &v.messages[i]
		if i > 0 {
			b.WriteString("\n")
		}
		if m.IsOwn(v.self) {
			b.WriteString(ownStyle.Render("You"))
		} else {
			name := m.SenderName
			if name == "" {
				name = v.active.DisplayName()
			}
			b.WriteString(otherStyle.Render(name))
		}
		b.WriteString(" " + subtleStyle.Render(m.CreatedAt.Clock()) + "\n")
		b.WriteString(lipgloss.NewStyle().Width(v.viewport.Width).Render(m.Content))
	}
	v.viewport.SetContent(b.String())
}

func (v *messengerView) view(a *App) string {
	switch v.mode {
	case modeSettings:
		return v.settings.view(a)
	case modeAddContact:
		return v.search.view(a)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, v.listPane(a), v.chatPane())

	var b strings.Builder
	b.WriteString(v.header(a))
	b.WriteString("\n")
	b.WriteString(panes)
	if v.notice != "" {
		b.WriteString("\n" + errorStyle.Render(v.notice))
	}
	b.WriteString("\n" + v.help(a))
	return b.String()
}

func (v *messengerView) header(a *App) string {
	user := a.deps.Router.User()
	if user == nil {
		return titleStyle.Render("Messenger")
	}
	line := titleStyle.Render("Messenger") + " " + user.DisplayName()
	if user.IsAdmin {
		line += " " + badgeAdmin
	}
	return line
}

func (v *messengerView) help(a *App) string {
	if v.focus == focusChat {
		return helpStyle.Render("enter: send • pgup/pgdown: scroll • esc: contacts • ctrl+l: log out • ctrl+c: quit")
	}
	keys := []string{"↑/↓: select", "enter: open", "esc: close chat", "a: add contact", "s: settings"}
	if a.deps.Router.CanOpenAdmin() {
		keys = append(keys, "p: admin panel")
	}
	keys = append(keys, "ctrl+l: log out", "q: quit")
	return helpStyle.Render(strings.Join(keys, " • "))
}

func (v *messengerView) listPane(a *App) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Chats"))
	b.WriteString("\n\n")

	switch {
	case !v.loaded:
		b.WriteString(subtleStyle.Render("Loading..."))
	case len(v.contacts) == 0:
		b.WriteString(subtleStyle.Render("No contacts yet.\nPress a to add one."))
	}

	for i := range v.contacts {
		c := &v.contacts[i]
		name := truncate(c.DisplayName(), listPaneWidth-14)
		if seen := c.LastSeen(); seen != "" {
			name = fmt.Sprintf("%-*s %s", listPaneWidth-14, name, subtleStyle.Render(seen))
		}
		preview := subtleStyle.Render(truncate(c.Preview(), listPaneWidth-8))

		marker := "  "
		if i == v.cursor {
			marker = selectedStyle.Render("> ")
		}
		if v.active != nil && v.active.ID == c.ID {
			name = selectedStyle.Render(name)
		}
		b.WriteString(marker + avatarStyle.Render(c.Initial()) + " " + name + "\n")
		b.WriteString("      " + preview + "\n")
	}

	style := paneStyle
	if v.focus == focusList {
		style = activePaneStyle
	}
	return style.Width(listPaneWidth).Height(v.viewport.Height + 3).Render(strings.TrimRight(b.String(), "\n"))
}

func (v *messengerView) chatPane() string {
	style := paneStyle
	if v.focus == focusChat {
		style = activePaneStyle
	}
	style = style.Width(v.viewport.Width + 2)

	if v.active == nil {
		return style.Height(v.viewport.Height + 3).Render(subtleStyle.Render("Select a chat to start messaging"))
	}

	var b strings.Builder
	head := avatarStyle.Render(v.active.Initial()) + " " + lipgloss.NewStyle().Bold(true).Render(v.active.DisplayName())
	if v.active.Bio != "" {
		head += " " + subtleStyle.Render(truncate(v.active.Bio, 40))
	}
	b.WriteString(head + "\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	if v.sending {
		b.WriteString(subtleStyle.Render("Sending..."))
	} else {
		b.WriteString(v.draft.View())
	}
	return style.Render(b.String())
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// Package tui is the terminal front end. App is a single bubbletea model that
// mounts one screen at a time according to navigation.Router and owns the
// pollers feeding the contacts list, the open chat and the admin user list.
package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"messenger-client/internal/common/logger"
	adminService "messenger-client/internal/features/admin/service"
	authService "messenger-client/internal/features/auth/service"
	chatModels "messenger-client/internal/features/chat/models"
	chatService "messenger-client/internal/features/chat/service"
	contactModels "messenger-client/internal/features/contact/models"
	contactService "messenger-client/internal/features/contact/service"
	userModels "messenger-client/internal/features/user/models"
	"messenger-client/internal/navigation"
	"messenger-client/internal/workers"
)

const DefaultPollInterval = time.Second

type Deps struct {
	Router   *navigation.Router
	Auth     authService.AuthService
	Contacts contactService.ContactService
	Chat     chatService.ChatService
	Admin    adminService.AdminService

	PollInterval time.Duration
}

type App struct {
	ctx  context.Context
	deps Deps

	mu   sync.RWMutex
	send func(tea.Msg)

	contactsSync *workers.Synchronizer[int64, contactModels.Contact]
	messagesSync *workers.Synchronizer[chatModels.Conversation, chatModels.Message]
	usersSync    *workers.Synchronizer[int64, userModels.User]

	// последние запущенные подписки, Shutdown ждет их завершения
	subs map[string]*workers.Subscription

	screen        navigation.Screen
	width, height int

	login     *loginView
	profile   *profileView
	messenger *messengerView
	admin     *adminView
}

func New(ctx context.Context, deps Deps) *App {
	if deps.PollInterval <= 0 {
		deps.PollInterval = DefaultPollInterval
	}

	a := &App{
		ctx:       ctx,
		deps:      deps,
		width:     100,
		height:    30,
		login:     newLoginView(),
		profile:   newProfileView(),
		messenger: newMessengerView(),
		admin:     newAdminView(),
		subs:      make(map[string]*workers.Subscription),
	}

	a.contactsSync = workers.NewSynchronizer[int64, contactModels.Contact]("contacts", deps.PollInterval,
		deps.Contacts.List,
		func(u workers.Update[int64, contactModels.Contact]) {
			a.dispatch(contactsUpdatedMsg{update: u})
		})
	a.messagesSync = workers.NewSynchronizer[chatModels.Conversation, chatModels.Message]("messages", deps.PollInterval,
		deps.Chat.History,
		func(u workers.Update[chatModels.Conversation, chatModels.Message]) {
			a.dispatch(messagesUpdatedMsg{update: u})
		})
	a.usersSync = workers.NewSynchronizer[int64, userModels.User]("admin_users", deps.PollInterval,
		func(ctx context.Context, _ int64) ([]userModels.User, error) {
			return deps.Admin.ListUsers(ctx)
		},
		func(u workers.Update[int64, userModels.User]) {
			a.dispatch(usersUpdatedMsg{update: u})
		})

	a.screen = deps.Router.Screen()
	a.enter(a.screen)
	return a
}

// SetSender задает доставку асинхронных сообщений в цикл событий.
// Для tea.Program это Program.Send.
func (a *App) SetSender(send func(tea.Msg)) {
	a.mu.Lock()
	a.send = send
	a.mu.Unlock()
}

// Attach подключает App к запущенной программе и включает опрос
// для текущего экрана.
func (a *App) Attach(p *tea.Program) {
	a.SetSender(p.Send)
	a.reconcile()
}

// Close останавливает все опросы
func (a *App) Close() {
	a.contactsSync.Stop()
	a.messagesSync.Stop()
	a.usersSync.Stop()
}

// Shutdown останавливает опросы и ждет выхода их горутин, но не дольше timeout.
// Вызывается после завершения tea.Program, иначе Program.Send может заблокировать опрос.
func (a *App) Shutdown(timeout time.Duration) bool {
	a.Close()

	deadline := time.After(timeout)
	for name, sub := range a.subs {
		select {
		case <-sub.Done():
		case <-deadline:
			logger.Warn().Str("poller", name).Msg("Poller did not stop in time")
			return false
		}
	}
	return true
}

// Screen возвращает смонтированный экран
func (a *App) Screen() navigation.Screen {
	return a.screen
}

func (a *App) dispatch(msg tea.Msg) {
	a.mu.RLock()
	send := a.send
	a.mu.RUnlock()

	if send == nil {
		return
	}
	send(msg)
}

func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("Messenger")
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.messenger.resize(a.width, a.height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}

	case contactsUpdatedMsg:
		if a.contactsSync.IsCurrent(msg.update.Generation) {
			a.messenger.setContacts(msg.update.Items)
		}
		return a, nil

	case messagesUpdatedMsg:
		if a.messagesSync.IsCurrent(msg.update.Generation) {
			a.messenger.setMessages(a.userID(), msg.update.Key, msg.update.Items)
		}
		return a, nil

	case usersUpdatedMsg:
		if a.usersSync.IsCurrent(msg.update.Generation) {
			a.admin.setUsers(msg.update.Items)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.screen {
	case navigation.ScreenLogin:
		cmd = a.login.update(a, msg)
	case navigation.ScreenProfileSetup:
		cmd = a.profile.update(a, msg)
	case navigation.ScreenMessenger:
		cmd = a.messenger.update(a, msg)
	case navigation.ScreenAdmin:
		cmd = a.admin.update(a, msg)
	}

	a.reconcile()
	return a, cmd
}

func (a *App) View() string {
	switch a.screen {
	case navigation.ScreenLogin:
		return a.login.view(a)
	case navigation.ScreenProfileSetup:
		return a.profile.view(a)
	case navigation.ScreenAdmin:
		return a.admin.view(a)
	default:
		return a.messenger.view(a)
	}
}

// reconcile приводит экран и опросы к состоянию маршрутизатора
func (a *App) reconcile() {
	screen := a.deps.Router.Screen()
	if screen != a.screen {
		logger.Debug().Str("from", a.screen.String()).Str("to", screen.String()).Msg("Screen changed")
		a.screen = screen
		a.enter(screen)
	}

	// опрос без получателя бессмысленен: до Attach ничего не запускаем
	a.mu.RLock()
	attached := a.send != nil
	a.mu.RUnlock()

	user := a.deps.Router.User()
	if !attached || user == nil {
		a.Close()
		return
	}

	if screen == navigation.ScreenMessenger {
		a.subs["contacts"] = a.contactsSync.Start(a.ctx, user.ID)
		if conv, ok := a.messenger.conversation(user.ID); ok {
			a.subs["messages"] = a.messagesSync.Start(a.ctx, conv)
			a.restoreThread(user.ID, conv)
		} else {
			a.messagesSync.Stop()
		}
	} else {
		a.contactsSync.Stop()
		a.messagesSync.Stop()
	}

	if screen == navigation.ScreenAdmin {
		a.subs["admin_users"] = a.usersSync.Start(a.ctx, user.ID)
	} else {
		a.usersSync.Stop()
	}
}

// restoreThread показывает уже полученный снимок переписки: при том же ключе
// Start не перезапускает опрос, а одинаковый снимок повторно не доставляется.
func (a *App) restoreThread(userID int64, conv chatModels.Conversation) {
	if a.messenger.messages != nil {
		return
	}
	if items := a.messagesSync.Snapshot(); items != nil {
		a.messenger.setMessages(userID, conv, items)
	}
}

// enter сбрасывает состояние экрана при его монтировании
func (a *App) enter(screen navigation.Screen) {
	switch screen {
	case navigation.ScreenLogin:
		a.login.reset()
	case navigation.ScreenProfileSetup:
		a.profile.reset(a.deps.Router.User())
	case navigation.ScreenMessenger:
		a.messenger.reset()
		a.messenger.resize(a.width, a.height)
	case navigation.ScreenAdmin:
		a.admin.reset()
	}
}

func (a *App) userID() int64 {
	if u := a.deps.Router.User(); u != nil {
		return u.ID
	}
	return 0
}

// logout доступен с любого экрана
func (a *App) logout() {
	if _, err := a.deps.Router.Logout(a.ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to clear session")
	}
}

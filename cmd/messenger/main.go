package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"messenger-client/internal/common/config"
	"messenger-client/internal/common/logger"
	adminRemote "messenger-client/internal/features/admin/repository/remote"
	adminService "messenger-client/internal/features/admin/service"
	authRemote "messenger-client/internal/features/auth/repository/remote"
	authService "messenger-client/internal/features/auth/service"
	chatRemote "messenger-client/internal/features/chat/repository/remote"
	chatService "messenger-client/internal/features/chat/service"
	contactRemote "messenger-client/internal/features/contact/repository/remote"
	contactService "messenger-client/internal/features/contact/service"
	sessionRepository "messenger-client/internal/features/session/repository"
	sessionFile "messenger-client/internal/features/session/repository/file"
	sessionMemory "messenger-client/internal/features/session/repository/memory"
	sessionRedis "messenger-client/internal/features/session/repository/redis"
	sessionService "messenger-client/internal/features/session/service"
	"messenger-client/internal/navigation"
	"messenger-client/internal/platform/gateway"
	"messenger-client/internal/platform/redis"
	"messenger-client/internal/tui"
)

func main() {
	ephemeral := flag.Bool("ephemeral", false, "keep the session in memory only")
	flag.Parse()

	// Инициализируем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *ephemeral {
		cfg.Session.Driver = config.SessionDriverMemory
	}

	// stdout занят интерфейсом, журнал пишем в файл
	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.Init("messenger", cfg.Debug, logFile)

	logger.Info().
		Str("gateway", cfg.Gateway.BaseURL).
		Str("session_driver", cfg.Session.Driver).
		Dur("poll_interval", cfg.Poll.Interval).
		Msg("Starting messenger client")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище сессии
	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open session store")
		fmt.Fprintf(os.Stderr, "session store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()
	session := sessionService.NewSessionService(store)

	// Клиент шлюза и сервисы
	client := gateway.NewClient(gateway.Endpoints{
		Auth:     cfg.AuthURL(),
		Users:    cfg.UsersURL(),
		Contacts: cfg.ContactsURL(),
		Messages: cfg.MessagesURL(),
	}, cfg.Gateway.Timeout)

	router := navigation.NewRouter(session)
	screen := router.Restore(ctx)
	logger.Debug().Str("screen", screen.String()).Msg("Initial screen")

	app := tui.New(ctx, tui.Deps{
		Router:       router,
		Auth:         authService.NewAuthService(authRemote.NewAuthRepository(client)),
		Contacts:     contactService.NewContactService(contactRemote.NewContactRepository(client)),
		Chat:         chatService.NewChatService(chatRemote.NewMessageRepository(client)),
		Admin:        adminService.NewAdminService(adminRemote.NewUserAdminRepository(client)),
		PollInterval: cfg.Poll.Interval,
	})
	defer app.Shutdown(2 * time.Second)

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.Attach(program)

	if _, err := program.Run(); err != nil {
		logger.Error().Err(err).Msg("Terminal UI exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Info().Msg("Messenger client exited")
}

func openSessionStore(ctx context.Context, cfg *config.Config) (sessionRepository.SessionStore, func(), error) {
	switch cfg.Session.Driver {
	case config.SessionDriverMemory:
		return sessionMemory.NewSessionRepository(), func() {}, nil

	case config.SessionDriverRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		client, err := redis.OpenFromConfig(pingCtx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr(), err)
		}
		logger.Info().Str("addr", cfg.RedisAddr()).Msg("Redis session store connected")
		return sessionRedis.NewSessionRepository(client, cfg.Session.Key), func() { _ = client.Close() }, nil

	default:
		logger.Info().Str("path", cfg.Session.Path).Msg("File session store")
		return sessionFile.NewSessionRepository(cfg.Session.Path), func() {}, nil
	}
}

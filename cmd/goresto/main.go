// Точка входа goresto — ролевой сервис ресторанных заказов.
// Загружает конфигурацию, поднимает in-memory репозитории с mock-данными,
// подключает внешний каталог пользователей (опционально), собирает
// сервисный слой и API handlers, запускает HTTP-сервер с ролевой
// диспетчеризацией и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bigkaa/goresto/internal/api/contract"
	"github.com/bigkaa/goresto/internal/api/handlers"
	"github.com/bigkaa/goresto/internal/auth"
	"github.com/bigkaa/goresto/internal/cart"
	"github.com/bigkaa/goresto/internal/config"
	"github.com/bigkaa/goresto/internal/directory"
	"github.com/bigkaa/goresto/internal/domain/sessionstate"
	"github.com/bigkaa/goresto/internal/notify"
	"github.com/bigkaa/goresto/internal/repository"
	"github.com/bigkaa/goresto/internal/seed"
	"github.com/bigkaa/goresto/internal/server"
	"github.com/bigkaa/goresto/internal/service"
	"github.com/bigkaa/goresto/internal/session"
	"github.com/bigkaa/goresto/internal/token"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("goresto запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Автомат фазы процесса: пока loading, запросы получают 503
	machine, err := sessionstate.New(sessionstate.StateLoading)
	if err != nil {
		logger.Error("Ошибка создания автомата состояний", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Шифрование cookie (сессия и корзина используют общий ключ)
	codec, err := session.NewCodec(cfg.SessionSecret)
	if err != nil {
		logger.Error("Ошибка инициализации шифрования cookie", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("GR_SESSION_SECRET не задан, сессии не переживут рестарт процесса")
	}

	sessions := session.NewManager(codec, cfg.SecureCookie)
	carts := cart.NewStore(codec, cfg.SecureCookie, int(cfg.CartTTL.Seconds()), logger)

	// 5. Access-токены
	if cfg.TokenSecret == "" {
		logger.Warn("GR_TOKEN_SECRET не задан, access-токены не переживут рестарт процесса")
	}
	tokens := token.NewManager(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenTTL)

	// 6. Repositories с mock-данными
	users := repository.NewUserRepository(seed.Users())
	dishes := repository.NewDishRepository(seed.Menu())
	orders := repository.NewOrderRepository(seed.Orders())
	appRoles := repository.NewAppRoleRepository(seed.AppRoles())

	// 7. Каталог пользователей: внешний или локальный mock-справочник
	var dir directory.Directory
	var remoteDir *directory.RemoteClient
	if cfg.DirectoryURL != "" {
		remoteDir = directory.NewRemoteClient(
			cfg.DirectoryURL,
			&http.Client{Timeout: cfg.DirectoryTimeout},
			logger,
		)
		dir = remoteDir
		logger.Info("Внешний каталог пользователей подключен",
			slog.String("url", cfg.DirectoryURL),
		)
	} else {
		dir = directory.NewStatic(users)
		logger.Info("Используется локальный mock-справочник пользователей")
	}

	// 8. Services
	authSvc := auth.NewService(dir, sessions, tokens, logger)
	catalogSvc := service.NewCatalogService(dishes, logger)
	orderSvc := service.NewOrderService(orders, service.ProgressionIntervals{
		ToPreparing: cfg.OrderToPreparing,
		ToDelivery:  cfg.OrderToDelivery,
		ToDelivered: cfg.OrderToDelivered,
	}, logger)
	statsSvc := service.NewStatsService(orders, logger)
	userSvc := service.NewUserService(users, logger)
	appRoleSvc := service.NewAppRoleService(appRoles, logger)

	// 9. Уведомления: очередь на сессию, неактивные вытесняются по LRU
	hub := notify.NewHub(
		cfg.NotifyMaxSessions,
		cfg.NotifySessionTTL,
		cfg.NotifyDisplay,
		cfg.NotifyExitDelay,
	)

	// 10. topologymetrics — мониторинг внешнего каталога
	ctx := context.Background()
	var dephealthSvc *service.DephealthService
	if cfg.DirectoryURL != "" {
		dephealthSvc, err = service.NewDephealthService(
			"goresto",
			cfg.DephealthGroup,
			cfg.DirectoryURL,
			cfg.DephealthCheckInterval,
			logger,
		)
		if err != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", err.Error()),
			)
			dephealthSvc = nil
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
			dephealthSvc = nil
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 11. Health handler: readiness проверяет внешний каталог, если он есть
	var dirChecker handlers.ReadinessChecker
	if remoteDir != nil {
		dirChecker = &directoryReadiness{client: remoteDir, timeout: cfg.DirectoryTimeout}
	}
	healthHandler := handlers.NewHealthHandler(dirChecker)

	// 12. API handler
	api := handlers.NewAPI(
		authSvc,
		carts,
		catalogSvc,
		orderSvc,
		statsSvc,
		userSvc,
		appRoleSvc,
		hub,
		logger,
	)

	// 13. OpenAPI-контракт: загрузка, валидация, сверка таблицы маршрутов
	apiContract, err := contract.Load(ctx)
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI-контракта", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger, api, healthHandler, authSvc, apiContract, machine)
	if err != nil {
		logger.Error("Ошибка сборки сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 14. Инициализация завершена: loading → unauthenticated
	if err := machine.TransitionTo(sessionstate.StateUnauthenticated, "system"); err != nil {
		logger.Error("Ошибка перехода из фазы загрузки", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 15. Запуск HTTP-сервера (блокирует до сигнала завершения)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 16. Graceful shutdown фоновых ресурсов
	logger.Info("Останавливаем фоновые ресурсы...")

	orderSvc.Stop()
	hub.Close()
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("goresto остановлен")
}

// --- Вспомогательные типы ---

// directoryReadiness — адаптер RemoteClient → handlers.ReadinessChecker.
type directoryReadiness struct {
	client  *directory.RemoteClient
	timeout time.Duration
}

// CheckReady проверяет readiness внешнего каталога.
func (d *directoryReadiness) CheckReady() (string, string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.client.CheckReady(ctx); err != nil {
		return "fail", err.Error()
	}
	return "ok", ""
}

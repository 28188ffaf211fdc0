// Пакет config — загрузка и валидация конфигурации goresto
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации goresto.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Сессии и cookie ---

	// Ключ шифрования session/cart cookie; пустой — случайный на процесс
	SessionSecret string
	// Ставить ли флаг Secure на cookie (false для локальной разработки)
	SecureCookie bool
	// Время жизни access-токена
	TokenTTL time.Duration
	// Время жизни cart cookie
	CartTTL time.Duration

	// --- JWT ---

	// Секрет подписи access-токенов
	TokenSecret string
	// Issuer access-токенов
	TokenIssuer string

	// --- Каталог пользователей ---

	// URL внешнего каталога; пустой — локальный mock-справочник
	DirectoryURL string
	// Таймаут запросов к внешнему каталогу
	DirectoryTimeout time.Duration

	// --- Уведомления ---

	// Окно показа уведомления
	NotifyDisplay time.Duration
	// Задержка exit-фазы перед физическим удалением
	NotifyExitDelay time.Duration
	// Максимум одновременно отслеживаемых сессий
	NotifyMaxSessions int
	// TTL очереди неактивной сессии
	NotifySessionTTL time.Duration

	// --- Имитация продвижения заказа ---

	// От размещения до начала приготовления
	OrderToPreparing time.Duration
	// От приготовления до передачи в доставку
	OrderToDelivery time.Duration
	// От доставки до вручения
	OrderToDelivered time.Duration

	// --- Dephealth ---

	// Имя группы в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// GR_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("GR_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("GR_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("GR_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// GR_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("GR_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("GR_LOG_LEVEL: %w", err)
	}

	// GR_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("GR_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("GR_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Сессии и cookie ---

	// GR_SESSION_SECRET — опциональный; пустой ключ означает случайный
	// на процесс: после рестарта все cookie перестанут расшифровываться
	cfg.SessionSecret = getEnvDefault("GR_SESSION_SECRET", "")

	// GR_SECURE_COOKIE — флаг Secure на cookie (по умолчанию false)
	cfg.SecureCookie, err = getEnvBool("GR_SECURE_COOKIE", false)
	if err != nil {
		return nil, fmt.Errorf("GR_SECURE_COOKIE: %w", err)
	}

	// GR_TOKEN_TTL — время жизни access-токена (по умолчанию 24h)
	cfg.TokenTTL, err = getEnvDuration("GR_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("GR_TOKEN_TTL: %w", err)
	}

	// GR_CART_TTL — время жизни cart cookie (по умолчанию 720h, 30 суток)
	cfg.CartTTL, err = getEnvDuration("GR_CART_TTL", 720*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("GR_CART_TTL: %w", err)
	}

	// --- JWT ---

	// GR_TOKEN_SECRET — опциональный; пустой означает случайный на процесс
	cfg.TokenSecret = getEnvDefault("GR_TOKEN_SECRET", "")

	// GR_TOKEN_ISSUER — issuer access-токенов (по умолчанию goresto)
	cfg.TokenIssuer = getEnvDefault("GR_TOKEN_ISSUER", "goresto")

	// --- Каталог пользователей ---

	// GR_DIRECTORY_URL — URL внешнего каталога; пустой — mock-справочник
	cfg.DirectoryURL = strings.TrimRight(getEnvDefault("GR_DIRECTORY_URL", ""), "/")

	// GR_DIRECTORY_TIMEOUT — таймаут запросов к каталогу (по умолчанию 10s)
	cfg.DirectoryTimeout, err = getEnvDuration("GR_DIRECTORY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GR_DIRECTORY_TIMEOUT: %w", err)
	}

	// --- Уведомления ---

	// GR_NOTIFY_DISPLAY — окно показа уведомления (по умолчанию 3s)
	cfg.NotifyDisplay, err = getEnvDuration("GR_NOTIFY_DISPLAY", 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GR_NOTIFY_DISPLAY: %w", err)
	}

	// GR_NOTIFY_EXIT_DELAY — задержка exit-фазы (по умолчанию 300ms)
	cfg.NotifyExitDelay, err = getEnvDuration("GR_NOTIFY_EXIT_DELAY", 300*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("GR_NOTIFY_EXIT_DELAY: %w", err)
	}

	// GR_NOTIFY_MAX_SESSIONS — максимум сессий с очередями (по умолчанию 10000)
	cfg.NotifyMaxSessions, err = getEnvInt("GR_NOTIFY_MAX_SESSIONS", 10000)
	if err != nil {
		return nil, fmt.Errorf("GR_NOTIFY_MAX_SESSIONS: %w", err)
	}
	if cfg.NotifyMaxSessions < 1 {
		return nil, fmt.Errorf("GR_NOTIFY_MAX_SESSIONS: значение %d должно быть положительным", cfg.NotifyMaxSessions)
	}

	// GR_NOTIFY_SESSION_TTL — TTL очереди неактивной сессии (по умолчанию 1h)
	cfg.NotifySessionTTL, err = getEnvDuration("GR_NOTIFY_SESSION_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("GR_NOTIFY_SESSION_TTL: %w", err)
	}

	// --- Имитация продвижения заказа ---

	// GR_ORDER_TO_PREPARING — размещён → готовится (по умолчанию 30s)
	cfg.OrderToPreparing, err = getEnvDuration("GR_ORDER_TO_PREPARING", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GR_ORDER_TO_PREPARING: %w", err)
	}

	// GR_ORDER_TO_DELIVERY — готовится → в доставке (по умолчанию 2m)
	cfg.OrderToDelivery, err = getEnvDuration("GR_ORDER_TO_DELIVERY", 2*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("GR_ORDER_TO_DELIVERY: %w", err)
	}

	// GR_ORDER_TO_DELIVERED — в доставке → вручён (по умолчанию 10m)
	cfg.OrderToDelivered, err = getEnvDuration("GR_ORDER_TO_DELIVERED", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("GR_ORDER_TO_DELIVERED: %w", err)
	}

	// --- Dephealth ---

	// GR_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию goresto)
	cfg.DephealthGroup = getEnvDefault("GR_DEPHEALTH_GROUP", "goresto")

	// GR_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("GR_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GR_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// GR_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("GR_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GR_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

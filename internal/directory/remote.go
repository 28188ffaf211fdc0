package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bigkaa/goresto/internal/domain/model"
)

// RemoteClient — клиент внешнего каталога пользователей.
// Используется вместо mock-справочника, когда задан GR_DIRECTORY_URL.
type RemoteClient struct {
	baseURL    string // Базовый URL каталога (без trailing slash)
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRemoteClient создаёт клиент внешнего каталога.
// httpClient — HTTP-клиент (может содержать TLS конфигурацию).
func NewRemoteClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *RemoteClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "directory_client")),
	}
}

// authenticateRequest — тело запроса аутентификации.
type authenticateRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// Authenticate отправляет учётные данные во внешний каталог.
// 200 — пользователь, 401/404 — (nil, nil), остальное — ошибка.
func (c *RemoteClient) Authenticate(ctx context.Context, email, secret string) (*model.User, error) {
	payload, err := json.Marshal(authenticateRequest{Email: email, Secret: secret})
	if err != nil {
		return nil, fmt.Errorf("сериализация запроса аутентификации: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/authenticate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("создание запроса аутентификации: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос к каталогу: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var u model.User
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, fmt.Errorf("декодирование ответа каталога: %w", err)
		}
		return &u, nil
	case http.StatusUnauthorized, http.StatusNotFound:
		c.logger.Debug("каталог отклонил учётные данные",
			slog.String("email", email),
			slog.Int("status", resp.StatusCode),
		)
		return nil, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("каталог вернул статус %d: %s", resp.StatusCode, string(body))
	}
}

// CheckReady проверяет доступность каталога (для readiness probe).
func (c *RemoteClient) CheckReady(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/ready", nil)
	if err != nil {
		return fmt.Errorf("создание запроса readiness: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("каталог недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("каталог вернул статус %d", resp.StatusCode)
	}
	return nil
}

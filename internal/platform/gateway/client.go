package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "messenger-client/internal/common/errors"
	"messenger-client/internal/common/logger"
	"messenger-client/internal/common/validation"
)

// RequestIDHeader передается с каждым запросом для сквозной трассировки
const RequestIDHeader = "X-Request-ID"

// Предельный размер тела ответа
const maxBodySize = 4 << 20

// Endpoints — адреса облачных функций удаленного шлюза
type Endpoints struct {
	Auth     string
	Users    string
	Contacts string
	Messages string
}

// Client выполняет JSON-запросы к удаленному шлюзу.
// Каждый ответ декодируется в явный тип и проверяется validator'ом.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
}

type Option func(*Client)

// WithHTTPClient подменяет http.Client (тесты, прокси)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(endpoints Endpoints, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoints: endpoints,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// errorBody — формат ошибки удаленного шлюза
type errorBody struct {
	Error string `json:"error"`
}

// Get выполняет GET с параметрами запроса
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, endpoint, query, nil, out)
}

// Post отправляет body как JSON
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, endpoint, nil, body, out)
}

// Put отправляет body как JSON
func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, endpoint, nil, body, out)
}

// Do выполняет запрос и декодирует ответ в out (out может быть nil).
//
// Ошибки:
//   - NETWORK_ERROR: запрос не отправлен или ответ не прочитан;
//   - NOT_FOUND / UNAUTHORIZED / FORBIDDEN / REMOTE_ERROR: статус вне 2xx, сообщение из {"error": "..."};
//   - DECODE_ERROR / VALIDATION_ERROR: тело ответа не соответствует ожидаемой схеме.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	target := endpoint
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError(endpoint, err).WithRequestID(requestID)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return apperrors.NewNetworkError(endpoint, err).WithRequestID(requestID)
	}

	logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Gateway request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return apperrors.NewRemoteError(resp.StatusCode, eb.Error).
			WithRequestID(requestID).
			WithDetail("endpoint", endpoint)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		logger.Error().Err(err).Str("request_id", requestID).Str("endpoint", endpoint).Msg("Malformed gateway response")
		return apperrors.Wrapf(err, apperrors.ErrCodeDecode, "decode %s response", method).WithRequestID(requestID)
	}
	if err := validation.Struct(out); err != nil {
		logger.Error().Err(err).Str("request_id", requestID).Str("endpoint", endpoint).Msg("Gateway response failed validation")
		return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid %s response", method).WithRequestID(requestID)
	}
	return nil
}

// Message возвращает текст ошибки для показа пользователю: сообщение сервера,
// если оно есть, иначе fallback.
func Message(err error, fallback string) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.IsTransport() || appErr.IsValidation() || appErr.Status == 0 {
		return fallback
	}
	if appErr.Message == "" || appErr.Message == http.StatusText(appErr.Status) {
		return fallback
	}
	return appErr.Message
}

// IsTransport сообщает, что ошибка возникла до получения ответа
func IsTransport(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.IsTransport()
}

func (e Endpoints) String() string {
	return fmt.Sprintf("auth=%s users=%s contacts=%s messages=%s", e.Auth, e.Users, e.Contacts, e.Messages)
}

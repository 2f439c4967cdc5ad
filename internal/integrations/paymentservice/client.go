package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с PaymentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RequestRefund инициирует возврат средств по бронированию
func (c *Client) RequestRefund(ctx context.Context, refund RefundRequest) (*RefundResponse, error) {
	url := fmt.Sprintf("%s/internal/refunds", c.baseURL)

	body, err := json.Marshal(refund)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity:
		return nil, ErrRefundRejected
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var result RefundResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// RequestRefundWithGracefulDegradation инициирует возврат с graceful degradation
// При недоступности PaymentService возвращает ErrServiceDegraded: отмена бронирования
// при этом не блокируется, возврат дообрабатывается вручную по журналу событий
func (c *Client) RequestRefundWithGracefulDegradation(ctx context.Context, refund RefundRequest) (*RefundResponse, error) {
	c.log.Info("Requesting refund for booking_id=%d, amount=%.2f %s", refund.BookingID, refund.Amount, refund.Currency)

	result, err := c.RequestRefund(ctx, refund)
	if err != nil {
		// Критичную бизнес-ошибку (возврат отклонен) пробрасываем дальше
		if err == ErrRefundRejected {
			c.log.Info("Refund rejected by payment service for booking_id=%d", refund.BookingID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("PaymentService unavailable, applying graceful degradation for booking_id=%d: %v", refund.BookingID, err)
		return nil, fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, refund.BookingID, err)
	}

	c.log.Info("Refund accepted for booking_id=%d, refund_id=%s", refund.BookingID, result.RefundID)
	return result, nil
}

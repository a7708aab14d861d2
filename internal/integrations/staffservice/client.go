package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со StaffService
// Отдает рабочие часы с буфером, услуги и акции сотрудника
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSchedule получает недельное расписание и буфер сотрудника
func (c *Client) GetSchedule(ctx context.Context, staffID int64) (*domain.StaffSchedule, error) {
	url := fmt.Sprintf("%s/internal/staff/%d/schedule", c.baseURL, staffID)

	var schedule Schedule
	if err := c.getJSON(ctx, url, &schedule); err != nil {
		return nil, err
	}

	return schedule.ToDomain(), nil
}

// GetServices получает список услуг сотрудника
func (c *Client) GetServices(ctx context.Context, staffID int64) ([]*domain.Service, error) {
	url := fmt.Sprintf("%s/internal/staff/%d/services", c.baseURL, staffID)

	var services []Service
	if err := c.getJSON(ctx, url, &services); err != nil {
		return nil, err
	}

	result := make([]*domain.Service, len(services))
	for i := range services {
		result[i] = services[i].ToDomain()
	}
	return result, nil
}

// GetOffers получает активные и будущие акции сотрудника
// Порядок элементов - порядок источника, он значим для выбора акции
func (c *Client) GetOffers(ctx context.Context, staffID int64) ([]*domain.Offer, error) {
	url := fmt.Sprintf("%s/internal/staff/%d/offers", c.baseURL, staffID)

	var offers []Offer
	if err := c.getJSON(ctx, url, &offers); err != nil {
		return nil, err
	}

	result := make([]*domain.Offer, len(offers))
	for i := range offers {
		result[i] = offers[i].ToDomain()
	}
	return result, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrStaffNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

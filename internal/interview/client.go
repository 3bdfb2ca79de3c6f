package interview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"quickhire-proctor/internal/config"
)

// Client клиент REST-сервиса вопросов. Ядро прокторинга использует его
// через узкий контракт: генерация и оценка вопросов — забота сервера.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient создает клиент сервиса вопросов
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Start инициализирует интервью и возвращает набор вопросов
func (c *Client) Start(req StartRequest) (*StartResponse, error) {
	var resp StartResponse
	if err := c.post("/interviews/start", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("сервис вопросов вернул ошибку: %s", resp.Error)
	}
	return &resp, nil
}

// EvaluateAnswer отправляет ответ на оценку
func (c *Client) EvaluateAnswer(req EvaluateRequest) (*EvaluateResponse, error) {
	var resp EvaluateResponse
	if err := c.post("/interviews/evaluate-answer", req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("сервис вопросов вернул ошибку: %s", resp.Error)
	}
	return &resp, nil
}

// ReportActivity отправляет сводку подозрительной активности
func (c *Client) ReportActivity(report ActivityReport) error {
	return c.post("/interviews/report-activity", report, nil)
}

// End сохраняет итоги интервью на сервере
func (c *Client) End(req EndRequest) error {
	var resp endResponse
	if err := c.post("/interviews/end", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("сервер отклонил сохранение итогов: %s", resp.Error)
	}
	return nil
}

// post выполняет POST запрос с JSON телом
func (c *Client) post(path string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP ошибка %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	return nil
}

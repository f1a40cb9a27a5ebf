package billclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the bill API over HTTP/JSON. It defines its own wire
// types so it can be used outside the server process.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

var ErrNotFound = errors.New("bill not found")

type BillLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateBillRequest struct {
	TableNumber string     `json:"table_number"`
	Total       float64    `json:"total"`
	Items       []BillLine `json:"items"`
}

type Product struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID uint    `json:"category_id"`
	ImageURL   string  `json:"image_url"`
}

type BillItem struct {
	ID        uint     `json:"id"`
	BillID    uint     `json:"bill_id"`
	ProductID uint     `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product"`
}

type Bill struct {
	ID          uint       `json:"id"`
	TableNumber string     `json:"table_number"`
	Total       float64    `json:"total"`
	Status      string     `json:"status"`
	Items       []BillItem `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateBill posts a submission payload and decodes the created bill.
func (c *Client) CreateBill(ctx context.Context, req CreateBillRequest) (*Bill, error) {
	var bill Bill
	if err := c.do(ctx, http.MethodPost, "/api/bills", req, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *Client) ListBills(ctx context.Context) ([]Bill, error) {
	var bills []Bill
	if err := c.do(ctx, http.MethodGet, "/api/bills", nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (c *Client) CompleteBill(ctx context.Context, id uint) (*Bill, error) {
	var bill Bill
	path := fmt.Sprintf("/api/bills/%d/complete", id)
	body := map[string]string{"status": "completed"}
	if err := c.do(ctx, http.MethodPatch, path, body, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody interface{}) error {
	var reader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bill API returned status %d: %s", resp.StatusCode, string(data))
	}

	if respBody != nil {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

package smartsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client reads sheets from the Smartsheet REST API
type Client interface {
	GetSheet(ctx context.Context, sheetID string) (*Sheet, error)
	HasToken() bool
}

// HTTPClient calls the Smartsheet API with a server-side bearer token
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Sheet is the subset of the GET /sheets/{id} response the board uses
type Sheet struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Column describes a sheet column
type Column struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Index int    `json:"index"`
}

// Row is a sheet row
type Row struct {
	ID        int64  `json:"id"`
	RowNumber int    `json:"rowNumber"`
	Cells     []Cell `json:"cells"`
}

// Cell holds a raw value and its display form. Value may be a string, number or bool.
type Cell struct {
	ColumnID     int64       `json:"columnId"`
	Value        interface{} `json:"value"`
	DisplayValue string      `json:"displayValue"`
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Smartsheet API returned %d: %s", e.StatusCode, e.Reason)
}

// NewClient creates a client. An empty token is allowed; callers check HasToken before use.
func NewClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HasToken reports whether a bearer token is configured
func (c *HTTPClient) HasToken() bool {
	return c.token != ""
}

// GetSheet fetches the full sheet (columns and rows) in one call
func (c *HTTPClient) GetSheet(ctx context.Context, sheetID string) (*Sheet, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, fmt.Errorf("sheet id is required")
	}
	endpoint := fmt.Sprintf("%s/2.0/sheets/%s", c.baseURL, url.PathEscape(sheetID))
	out := &Sheet{}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sheet response: %w", err)
	}

	return nil
}

// Package jobs contains the scheduled jobs that poll the CRM API and
// append their findings to flat text log files. Jobs never fail the
// scheduler: every error ends up as a log line instead.
package jobs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"crm/internal/models"
)

// Client is a small JSON client for the CRM API with a bounded retry
// count per request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
}

// NewClient creates a new API client. retries is the number of extra
// attempts after the first failed one.
func NewClient(baseURL string, retries int) *Client {
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retries:    retries,
	}
}

// getJSON fetches a path and decodes the response body into out. A nil
// out discards the body. Non-2xx statuses count as failures and are
// retried like transport errors.
func (c *Client) getJSON(path string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		resp, err := c.httpClient.Get(c.baseURL + path)
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = func() error {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("unexpected status %s", resp.Status)
			}
			if out == nil {
				return nil
			}
			return json.NewDecoder(resp.Body).Decode(out)
		}()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// Health checks that the API endpoint is responsive.
func (c *Client) Health() error {
	return c.getJSON("/health", nil)
}

// RecentOrders fetches orders placed at or after since.
func (c *Client) RecentOrders(since time.Time) ([]models.Order, error) {
	path := "/api/v1/allOrders?orderDateGte=" + url.QueryEscape(since.Format(time.RFC3339))
	var orders []models.Order
	if err := c.getJSON(path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Totals fetches the three CRM aggregates.
func (c *Client) Totals() (customers, orders int64, revenue float64, err error) {
	var tc struct {
		TotalCustomers int64 `json:"totalCustomers"`
	}
	if err = c.getJSON("/api/v1/totalCustomers", &tc); err != nil {
		return 0, 0, 0, err
	}
	var to struct {
		TotalOrders int64 `json:"totalOrders"`
	}
	if err = c.getJSON("/api/v1/totalOrders", &to); err != nil {
		return 0, 0, 0, err
	}
	var tr struct {
		TotalRevenue float64 `json:"totalRevenue"`
	}
	if err = c.getJSON("/api/v1/totalRevenue", &tr); err != nil {
		return 0, 0, 0, err
	}
	return tc.TotalCustomers, to.TotalOrders, tr.TotalRevenue, nil
}

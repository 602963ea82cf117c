package datastore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// DatasetteClient pushes rows to a remote Datasette through its insert API.
type DatasetteClient struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

// NewDatasetteClient returns a client for the Datasette instance at baseURL.
func NewDatasetteClient(baseURL, apiToken string) *DatasetteClient {
	return &DatasetteClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Connect validates the base URL. No request is made.
func (c *DatasetteClient) Connect() error {
	if c.baseURL == "" {
		return errors.New("datasette remote URL is empty")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL scheme %q", u.Scheme)
	}
	return nil
}

// CreateTable does nothing; the insert API creates tables on demand.
func (c *DatasetteClient) CreateTable(string) error {
	return nil
}

// BatchInsert posts records to /-/insert/{database}/{table}.
func (c *DatasetteClient) BatchInsert(database string, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = path.Join(u.Path, "-/insert", database, table)

	body, err := json.Marshal(map[string]any{"rows": records})
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send rows: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("datasette insert failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// Close does nothing for the HTTP client.
func (c *DatasetteClient) Close() error {
	return nil
}

package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://api.apify.com/v2"

type Config struct {
	// token is the platform API token.
	token string
	// baseURL is the platform API endpoint.
	baseURL string
	// memoryMBytes is the memory hint passed to every actor run.
	memoryMBytes int
	// runID identifies the current actor run, required for metering.
	runID string
	// datasetID is the default dataset receiving output records.
	datasetID string
	// storeID is the default key-value store receiving artifacts.
	storeID string
	httpClient *http.Client
}

// Client talks to the scraping platform backing every provider tool:
// it runs actors, collects their dataset items, persists outputs and
// reports pay-per-event usage.
type Client struct {
	Config
}

func NewClient(opts ...Option) *Client {
	ret := new(Client)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.memoryMBytes == 0 {
		ret.memoryMBytes = 1024
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// CallActor starts an actor run with the given input, waits for it to
// finish and returns the items of its default dataset. maxItems bounds
// the number of items the provider may produce.
func (c *Client) CallActor(ctx context.Context, actorID string, input any, maxItems int) ([]json.RawMessage, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("memory", strconv.Itoa(c.memoryMBytes))
	if maxItems > 0 {
		values.Set("maxItems", strconv.Itoa(maxItems))
	}
	// public actor names use the owner/name form, the API path wants owner~name
	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?%s",
		c.baseURL, strings.ReplaceAll(actorID, "/", "~"), values.Encode())
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := c.do(ctx, http.MethodPost, endpoint, body, &items); err != nil {
		return nil, fmt.Errorf("actor %s run failed: %w", actorID, err)
	}
	return items, nil
}

// Charge reports a pay-per-event charge for the current run. It is a
// no-op without a run ID (local execution).
func (c *Client) Charge(ctx context.Context, eventName string, count int) error {
	if c.runID == "" {
		return nil
	}
	endpoint := fmt.Sprintf("%s/actor-runs/%s/charge", c.baseURL, c.runID)
	body, err := json.Marshal(map[string]any{
		"eventName": eventName,
		"count":     count,
	})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// PushData appends items to the default dataset.
func (c *Client) PushData(ctx context.Context, items ...any) error {
	if c.datasetID == "" {
		return fmt.Errorf("missing default dataset ID")
	}
	endpoint := fmt.Sprintf("%s/datasets/%s/items", c.baseURL, c.datasetID)
	body, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// SetValue stores a record in the default key-value store under the
// given key with the declared content type.
func (c *Client) SetValue(ctx context.Context, key, contentType string, data []byte) error {
	if c.storeID == "" {
		return fmt.Errorf("missing default key-value store ID")
	}
	endpoint := fmt.Sprintf("%s/key-value-stores/%s/records/%s", c.baseURL, c.storeID, url.PathEscape(key))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", contentType)
	c.auth(httpReq)
	return c.send(httpReq, nil)
}

// GetValue retrieves a record from the default key-value store.
func (c *Client) GetValue(ctx context.Context, key string, dist any) error {
	if c.storeID == "" {
		return fmt.Errorf("missing default key-value store ID")
	}
	endpoint := fmt.Sprintf("%s/key-value-stores/%s/records/%s", c.baseURL, c.storeID, url.PathEscape(key))
	return c.do(ctx, http.MethodGet, endpoint, nil, dist)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, dist any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	c.auth(httpReq)
	return c.send(httpReq, dist)
}

func (c *Client) auth(httpReq *http.Request) {
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) send(httpReq *http.Request, dist any) error {
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, bytes.TrimSpace(msg))
	}
	if dist == nil {
		return nil
	}
	return json.NewDecoder(httpResp.Body).Decode(dist)
}

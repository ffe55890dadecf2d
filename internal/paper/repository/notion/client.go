package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"zotero-notion-sync/internal/paper/repository"
	"zotero-notion-sync/pkg/ratelimit"
)

const (
	DefaultBaseURL    = "https://api.notion.com/v1"
	DefaultAPIVersion = "2022-06-28"

	// maxPageSize is the largest page the query endpoint returns.
	maxPageSize = 100
)

// Client is the HTTP wrapper for the Notion REST API.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a new Notion HTTP client authenticated with an
// integration token. limiter may be nil.
func NewClient(baseURL, apiVersion, token string, limiter *ratelimit.Registry) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	base := &http.Client{}
	if limiter != nil {
		base.Transport = limiter.Transport(nil)
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: apiVersion,
		httpClient: oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
}

// QueryDatabase fetches one page of rows via POST /databases/{id}/query.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, startCursor string) (*QueryDatabaseResponse, error) {
	req := QueryDatabaseRequest{StartCursor: startCursor, PageSize: maxPageSize}

	var resp QueryDatabaseResponse
	if err := c.do(ctx, "query", http.MethodPost, "/databases/"+formatID(databaseID)+"/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePage creates a new row via POST /pages.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, "create", http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage modifies the properties of a row via PATCH /pages/{id}.
func (c *Client) UpdatePage(ctx context.Context, pageID string, req UpdatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, "update", http.MethodPatch, "/pages/"+formatID(pageID), req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal notion %s request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notion %s request: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Notion-Version", c.apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call notion %s API: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: notion API %s error %d (%s): %s", repository.ErrRemoteCall, op, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%w: notion API %s error %d: %s", repository.ErrRemoteCall, op, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode notion %s response: %w", op, err)
	}
	return nil
}

// formatID renders ids in canonical hyphenated form; ids that are not UUIDs
// pass through unchanged.
func formatID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

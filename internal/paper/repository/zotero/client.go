package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"zotero-notion-sync/internal/paper/repository"
	"zotero-notion-sync/pkg/ratelimit"
)

const (
	DefaultBaseURL     = "https://api.zotero.org"
	DefaultLibraryType = "group"

	apiVersion = "3"
	// pageLimit is the largest page the API returns.
	pageLimit = 100
)

// Client is the HTTP wrapper for the Zotero Web API v3, bound to one library.
type Client struct {
	baseURL    string
	prefix     string // e.g. "/groups/12345"
	httpClient *http.Client
}

// NewClient creates a new Zotero HTTP client for the library of the given
// type ("group" or "user") and id. limiter may be nil.
func NewClient(baseURL, libraryType, libraryID, apiKey string, limiter *ratelimit.Registry) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if libraryType == "" {
		libraryType = DefaultLibraryType
	}

	base := &http.Client{}
	if limiter != nil {
		base.Transport = limiter.Transport(nil)
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     fmt.Sprintf("/%ss/%s", libraryType, url.PathEscape(libraryID)),
		httpClient: oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})),
	}
}

// TopItems lists every top-level item via GET /items/top.
func (c *Client) TopItems(ctx context.Context) ([]Item, error) {
	return c.listAll(ctx, "top", "/items/top", nil)
}

// Items lists every item, optionally restricted to one item type, via GET /items.
func (c *Client) Items(ctx context.Context, itemType string) ([]Item, error) {
	q := url.Values{}
	if itemType != "" {
		q.Set("itemType", itemType)
	}
	return c.listAll(ctx, "items", "/items", q)
}

// Children lists the child items of key via GET /items/{key}/children.
func (c *Client) Children(ctx context.Context, key string) ([]Item, error) {
	return c.listAll(ctx, "children", "/items/"+url.PathEscape(key)+"/children", nil)
}

// CreateItems creates items via POST /items. Any rejected object fails the call.
func (c *Client) CreateItems(ctx context.Context, items []ItemData) (*WriteResponse, error) {
	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zotero create request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, c.prefix+"/items", body, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call zotero create API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("create", resp)
	}

	var wr WriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("failed to decode zotero create response: %w", err)
	}
	if len(wr.Failed) > 0 {
		idx := make([]string, 0, len(wr.Failed))
		for i := range wr.Failed {
			idx = append(idx, i)
		}
		sort.Strings(idx)
		f := wr.Failed[idx[0]]
		return nil, fmt.Errorf("%w: zotero API create rejected object %s: %d %s", repository.ErrRemoteCall, idx[0], f.Code, f.Message)
	}
	return &wr, nil
}

// UpdateItem writes data back via PATCH /items/{key}, guarded by data.Version.
func (c *Client) UpdateItem(ctx context.Context, data ItemData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal zotero update request: %w", err)
	}

	headers := map[string]string{"If-Unmodified-Since-Version": strconv.Itoa(data.Version)}
	resp, err := c.send(ctx, http.MethodPatch, c.prefix+"/items/"+url.PathEscape(data.Key), body, headers)
	if err != nil {
		return fmt.Errorf("failed to call zotero update API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusError("update", resp)
	}
	return nil
}

// listAll follows start/limit pagination until every result has been read.
func (c *Client) listAll(ctx context.Context, op, path string, q url.Values) ([]Item, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(pageLimit))

	var items []Item
	for start := 0; ; {
		q.Set("start", strconv.Itoa(start))

		resp, err := c.send(ctx, http.MethodGet, c.prefix+path+"?"+q.Encode(), nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to call zotero %s API: %w", op, err)
		}

		if resp.StatusCode != http.StatusOK {
			err := statusError(op, resp)
			resp.Body.Close()
			return nil, err
		}

		var batch []Item
		err = json.NewDecoder(resp.Body).Decode(&batch)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode zotero %s response: %w", op, err)
		}
		items = append(items, batch...)
		start += len(batch)

		total, convErr := strconv.Atoi(resp.Header.Get("Total-Results"))
		if len(batch) < pageLimit || (convErr == nil && start >= total) {
			return items, nil
		}
	}
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, headers map[string]string) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Zotero-API-Version", apiVersion)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	return c.httpClient.Do(httpReq)
}

func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%w: zotero API %s error %d: %s", repository.ErrRemoteCall, op, resp.StatusCode, strings.TrimSpace(string(raw)))
}

// Package commons reads the category graph of Wikimedia Commons through the
// MediaWiki Action API.
package commons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cattree/internal/domain"
	"cattree/internal/log"
	"cattree/internal/ports"
)

const (
	DefaultAPIURL    = "https://commons.wikimedia.org/w/api.php"
	DefaultUserAgent = "cattree/0.1 (category inventory; https://commons.wikimedia.org)"

	// pageLimit is the largest cmlimit anonymous clients may request
	pageLimit = 500
)

// Client implements ports.CategorySource over HTTP
type Client struct {
	http      *http.Client
	apiURL    string
	userAgent string
	pageDelay time.Duration
}

// Ensure Client implements CategorySource
var _ ports.CategorySource = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithPageDelay sets the pause between continuation pages
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.pageDelay = d }
}

// NewClient creates a client for the API at apiURL (DefaultAPIURL when empty)
func NewClient(apiURL string, timeout time.Duration, opts ...Option) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		apiURL:    apiURL,
		userAgent: DefaultUserAgent,
		pageDelay: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type categoryMembersResp struct {
	Continue map[string]any `json:"continue"`
	Query    struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

type categoryInfoResp struct {
	Query struct {
		Pages map[string]struct {
			CategoryInfo *struct {
				Files int `json:"files"`
			} `json:"categoryinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// Subcategories lists every direct subcategory of name, following the
// continuation object until the listing is exhausted.
func (c *Client) Subcategories(ctx context.Context, name string) ([]string, error) {
	params := url.Values{
		"action":  {"query"},
		"list":    {"categorymembers"},
		"cmtitle": {domain.PageTitle(name)},
		"cmtype":  {"subcat"},
		"cmlimit": {strconv.Itoa(pageLimit)},
		"format":  {"json"},
	}

	var names []string
	for page := 1; ; page++ {
		var resp categoryMembersResp
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("list subcategories of %s: %w", name, err)
		}
		for _, m := range resp.Query.CategoryMembers {
			names = append(names, domain.NormalizeName(m.Title))
		}

		if len(resp.Continue) == 0 {
			return names, nil
		}
		log.FromContext(ctx).Debug("next page", "category", name, "page", page+1)
		for k, v := range resp.Continue {
			params.Set(k, fmt.Sprint(v))
		}

		if err := sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
	}
}

// FileCount returns the number of files directly in name.
// A category without categoryinfo has zero files.
func (c *Client) FileCount(ctx context.Context, name string) (int, error) {
	params := url.Values{
		"action": {"query"},
		"titles": {domain.PageTitle(name)},
		"prop":   {"categoryinfo"},
		"format": {"json"},
	}

	var resp categoryInfoResp
	if err := c.get(ctx, params, &resp); err != nil {
		return 0, fmt.Errorf("file count of %s: %w", name, err)
	}
	for _, p := range resp.Query.Pages {
		if p.CategoryInfo != nil {
			return p.CategoryInfo.Files, nil
		}
	}
	return 0, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

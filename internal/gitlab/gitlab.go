// Package gitlab is a push-event source backed by the GitLab REST API.
package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	apiPrefix = "/api/v4"
	pageSize  = 100

	// maxPages guards against a server that never returns an empty page.
	maxPages = 500
)

// StatusError is a non-2xx API response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gitlab: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	RPS        float64 // <= 0 disables rate limiting
	Burst      int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client lists push events of the token owner.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
}

var _ contract.PushSource = &Client{} // Compile-time check

// NewClient builds a client from opts, filling in defaults.
func NewClient(opts Options) *Client {
	base := strings.TrimSuffix(opts.BaseURL, "/")
	if base == "" {
		base = contract.DefaultGitLabURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = contract.DefaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	burst := max(opts.Burst, 1)

	return &Client{
		http:    httpClient,
		baseURL: base + apiPrefix,
		token:   opts.Token,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Name implements the PushSource interface.
func (c *Client) Name() string {
	return string(schema.GitLabProvider)
}

type user struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Connect implements the PushSource interface.
func (c *Client) Connect(ctx context.Context) (schema.Identity, error) {
	var u user
	if _, err := c.getJSON(ctx, "/user", nil, &u); err != nil {
		return schema.Identity{}, contract.NewConnectionError(c.Name(), err)
	}
	return schema.Identity{
		Provider: schema.GitLabProvider,
		Login:    u.Username,
		Name:     u.Name,
	}, nil
}

type event struct {
	ProjectID int       `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	PushData  *struct {
		CommitCount int     `json:"commit_count"`
		CommitTitle *string `json:"commit_title"`
	} `json:"push_data"`
}

// PushEvents implements the PushSource interface.
// The events API bounds are exclusive, so the window is (Dec 31 of year-1, Jan 1 of year+1).
func (c *Client) PushEvents(ctx context.Context, year int) ([]schema.PushEvent, error) {
	query := url.Values{}
	query.Set("action", "pushed")
	query.Set("after", fmt.Sprintf("%d-12-31", year-1))
	query.Set("before", fmt.Sprintf("%d-01-01", year+1))
	query.Set("per_page", strconv.Itoa(pageSize))

	var events []schema.PushEvent
	for page := 1; page <= maxPages; page++ {
		query.Set("page", strconv.Itoa(page))

		var batch []event
		header, err := c.getJSON(ctx, "/events", query, &batch)
		if err != nil {
			return nil, fmt.Errorf("list push events page %d: %w", page, err)
		}
		for _, e := range batch {
			events = append(events, toPushEvent(e))
		}
		log.Debug().Int("page", page).Int("events", len(batch)).Msg("gitlab events page")

		if len(batch) == 0 || (header.Get("X-Next-Page") == "" && len(batch) < pageSize) {
			return events, nil
		}
	}
	return events, nil
}

// ProjectLanguages implements the PushSource interface. Weights are percentages.
// A project that is gone or hidden yields an empty breakdown.
func (c *Client) ProjectLanguages(ctx context.Context, project string) (schema.LanguageWeights, error) {
	langs := schema.LanguageWeights{}
	_, err := c.getJSON(ctx, "/projects/"+url.PathEscape(project)+"/languages", nil, &langs)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return schema.LanguageWeights{}, nil
	}
	if err != nil {
		return nil, err
	}
	return langs, nil
}

func toPushEvent(e event) schema.PushEvent {
	ev := schema.PushEvent{
		Project:   strconv.Itoa(e.ProjectID),
		CreatedAt: e.CreatedAt,
	}
	if e.PushData != nil {
		ev.Push = &schema.PushData{CommitCount: e.PushData.CommitCount}
		if e.PushData.CommitTitle != nil {
			ev.Push.CommitTitle = *e.PushData.CommitTitle
		}
	}
	return ev
}

// getJSON waits for the limiter, performs a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) (http.Header, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.Header, &StatusError{
			Method: http.MethodGet,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.Header, fmt.Errorf("gitlab: decode %s: %w", path, err)
	}
	return resp.Header, nil
}

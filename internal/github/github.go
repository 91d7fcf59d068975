// Package github is a commit source backed by the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	gh "github.com/google/go-github/v74/github"
)

// searchPageSize is the maximum page size accepted by the search API.
const searchPageSize = 100

// ErrNotConnected is returned when a listing is attempted before Connect.
var ErrNotConnected = errors.New("github: not connected")

// Client lists commits authored by the token owner.
type Client struct {
	gh    *gh.Client
	login string
}

var _ contract.CommitSource = &Client{} // Compile-time check

// Option customizes a Client.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL targets a GitHub Enterprise Server instance.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewClient creates a client authenticated with token.
func NewClient(token string, opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := gh.NewClient(o.httpClient).WithAuthToken(token)
	if o.baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(o.baseURL, o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("github: invalid base url %q: %w", o.baseURL, err)
		}
	}
	return &Client{gh: client}, nil
}

// Name implements the CommitSource interface.
func (c *Client) Name() string {
	return string(schema.GitHubProvider)
}

// Connect implements the CommitSource interface.
func (c *Client) Connect(ctx context.Context) (schema.Identity, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return schema.Identity{}, contract.NewConnectionError(c.Name(), err)
	}
	c.login = user.GetLogin()
	return schema.Identity{
		Provider: schema.GitHubProvider,
		Login:    user.GetLogin(),
		Name:     user.GetName(),
	}, nil
}

// SearchCommits implements the CommitSource interface.
// The search API returns at most 1000 results per query.
func (c *Client) SearchCommits(ctx context.Context, year int) ([]schema.CommitEvent, error) {
	if c.login == "" {
		return nil, ErrNotConnected
	}
	query := fmt.Sprintf("author:%s committer-date:%d-01-01..%d-12-31", c.login, year, year)
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: searchPageSize}}

	var events []schema.CommitEvent
	for {
		result, resp, err := c.gh.Search.Commits(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("github: search commits page %d: %w", max(opts.Page, 1), err)
		}
		for _, r := range result.Commits {
			events = append(events, toCommitEvent(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return events, nil
}

// CommitDetail implements the CommitSource interface.
func (c *Client) CommitDetail(ctx context.Context, ev schema.CommitEvent) (schema.CommitDetail, error) {
	owner, repo, err := splitRepo(ev.Project)
	if err != nil {
		return schema.CommitDetail{}, err
	}
	commit, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, ev.SHA, nil)
	if err != nil {
		return schema.CommitDetail{}, fmt.Errorf("github: get commit %s@%s: %w", ev.Project, ev.SHA, err)
	}

	detail := schema.CommitDetail{}
	if stats := commit.GetStats(); stats != nil {
		detail.HasStats = true
		detail.Additions = stats.GetAdditions()
		detail.Deletions = stats.GetDeletions()
	}
	for _, f := range commit.Files {
		detail.Files = append(detail.Files, f.GetFilename())
	}
	return detail, nil
}

// ProjectLanguages implements the CommitSource interface. Weights are byte counts.
func (c *Client) ProjectLanguages(ctx context.Context, project string) (schema.LanguageWeights, error) {
	owner, repo, err := splitRepo(project)
	if err != nil {
		return nil, err
	}
	langs, _, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("github: list languages for %s: %w", project, err)
	}
	weights := make(schema.LanguageWeights, len(langs))
	for lang, bytes := range langs {
		weights[lang] = float64(bytes)
	}
	return weights, nil
}

func toCommitEvent(r *gh.CommitResult) schema.CommitEvent {
	commit := r.GetCommit()
	return schema.CommitEvent{
		SHA:        r.GetSHA(),
		Project:    r.GetRepository().GetFullName(),
		Message:    commit.GetMessage(),
		AuthoredAt: commit.GetAuthor().GetDate().Time,
	}
}

func splitRepo(fullName string) (string, string, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("github: invalid repository name %q", fullName)
	}
	return owner, repo, nil
}

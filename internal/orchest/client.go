// Package orchest reads projects, pipelines and jobs from an Orchest
// webserver, or from a local inventory file standing in for one.
package orchest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oakwood-commons/cmdk/internal/registry"
)

// Endpoint is a list endpoint. Key names the field holding the list; an
// empty Key means the body is the list itself.
type Endpoint struct {
	Path string `yaml:"path" json:"path" toml:"path"`
	Key  string `yaml:"key" json:"key" toml:"key"`
}

// Endpoints holds the three list endpoints the registry reads.
type Endpoints struct {
	Projects  Endpoint `yaml:"projects" json:"projects" toml:"projects"`
	Pipelines Endpoint `yaml:"pipelines" json:"pipelines" toml:"pipelines"`
	Jobs      Endpoint `yaml:"jobs" json:"jobs" toml:"jobs"`
}

// DefaultEndpoints returns the Orchest webserver routes.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Projects:  Endpoint{Path: "/async/projects"},
		Pipelines: Endpoint{Path: "/async/pipelines", Key: "result"},
		Jobs:      Endpoint{Path: "/catch/api-proxy/api/jobs/", Key: "jobs"},
	}
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// ErrMissingKey is returned when a keyed response lacks its list field.
var ErrMissingKey = errors.New("response is missing list field")

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the webserver root, e.g. http://localhost:8000.
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout   time.Duration
	Endpoints Endpoints
	// HTTPClient defaults to a new http.Client.
	HTTPClient *http.Client
}

// Client is a registry.Source backed by the webserver's HTTP API. It is safe
// for concurrent use.
type Client struct {
	base       *url.URL
	timeout    time.Duration
	endpoints  Endpoints
	httpClient *http.Client
}

var _ registry.Source = (*Client)(nil)

// NewClient validates cfg and returns a Client. Empty endpoint paths fall
// back to DefaultEndpoints.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: missing host", cfg.BaseURL)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("backend timeout must be non-negative, got %s", cfg.Timeout)
	}

	defaults := DefaultEndpoints()
	eps := cfg.Endpoints
	if eps.Projects.Path == "" {
		eps.Projects = defaults.Projects
	}
	if eps.Pipelines.Path == "" {
		eps.Pipelines = defaults.Pipelines
	}
	if eps.Jobs.Path == "" {
		eps.Jobs = defaults.Jobs
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{base: base, timeout: cfg.Timeout, endpoints: eps, httpClient: hc}, nil
}

// Projects fetches every project.
func (c *Client) Projects(ctx context.Context) registry.Result[registry.Project] {
	items, err := getList[registry.Project](ctx, c, c.endpoints.Projects)
	if err != nil {
		return registry.Fail[registry.Project](registry.SourceProjects, err)
	}
	return registry.OK(items)
}

// Pipelines fetches every pipeline across projects.
func (c *Client) Pipelines(ctx context.Context) registry.Result[registry.Pipeline] {
	items, err := getList[registry.Pipeline](ctx, c, c.endpoints.Pipelines)
	if err != nil {
		return registry.Fail[registry.Pipeline](registry.SourcePipelines, err)
	}
	return registry.OK(items)
}

// Jobs fetches every job across projects.
func (c *Client) Jobs(ctx context.Context) registry.Result[registry.Job] {
	items, err := getList[registry.Job](ctx, c, c.endpoints.Jobs)
	if err != nil {
		return registry.Fail[registry.Job](registry.SourceJobs, err)
	}
	return registry.OK(items)
}

func (c *Client) resolve(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.base.String() + path
	}
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawQuery = ref.RawQuery
	return u.String()
}

func getList[T any](ctx context.Context, c *Client, ep Endpoint) ([]T, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.resolve(ep.Path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if ep.Key == "" {
		var items []T
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", target, err)
		}
		return items, nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", target, err)
	}
	raw, ok := body[ep.Key]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", target, ErrMissingKey, ep.Key)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s field %q: %w", target, ep.Key, err)
	}
	return items, nil
}

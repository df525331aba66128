package flink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

const (
	// requestTimeout bounds every tool-driven cluster call. No per-call
	// override, no retries.
	requestTimeout = 10 * time.Second

	// metricsBatchSize limits how many metric names are packed into one
	// ?get= query, matching the batching of long metric selections.
	metricsBatchSize = 50

	maxBodyBytes = 8 << 20
)

// Credential is optionally attached to every outbound cluster request.
// A bearer token takes precedence over basic auth when both are set.
type Credential struct {
	BearerToken string
	Username    string
	Password    string
}

var (
	upstreamOnce     sync.Once
	upstreamRequests metric.Int64Counter
)

func upstreamCounter() metric.Int64Counter {
	upstreamOnce.Do(func() {
		upstreamRequests, _ = otel.Meter("flink-mcp-server").Int64Counter(
			"flink.requests.total",
			metric.WithDescription("Outbound requests against the Flink REST API"),
		)
	})
	return upstreamRequests
}

// Client issues GET requests against one Flink REST endpoint and decodes
// the JSON responses into typed payloads. Failures are classified into the
// gateway error taxonomy; a Client never returns a raw transport error.
type Client struct {
	baseURL string
	cred    *Credential
	http    *http.Client
}

// NewClient creates a client for the given base URL. A trailing slash is
// trimmed so paths can always be joined with a leading slash.
func NewClient(baseURL string, cred *Credential) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cred:    cred,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// BaseURL returns the endpoint this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cred != nil {
		switch {
		case c.cred.BearerToken != "":
			req.Header.Set("Authorization", "Bearer "+c.cred.BearerToken)
		case c.cred.Username != "":
			req.SetBasicAuth(c.cred.Username, c.cred.Password)
		}
	}
	return req, nil
}

// Get performs a single GET against the cluster and decodes the JSON body
// into out. Connect and timeout failures map to UNREACHABLE, non-2xx
// statuses to UPSTREAM_ERROR and malformed bodies to DECODE_ERROR.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return types.Unreachablef("building request for %s: %v", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctr := upstreamCounter(); ctr != nil {
			ctr.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unreachable")))
		}
		return types.Unreachablef("connection to %s failed: %v", c.baseURL+path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return types.Unreachablef("reading response from %s: %v", path, err)
	}

	outcome := "ok"
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "upstream_error"
	}
	if ctr := upstreamCounter(); ctr != nil {
		ctr.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	if outcome != "ok" {
		return types.Upstream(resp.StatusCode, strings.TrimSpace(string(body)),
			fmt.Sprintf("GET %s returned HTTP %d", path, resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return types.Decodef("decoding response from %s: %v", path, err)
	}
	return nil
}

// Overview fetches the cluster overview.
func (c *Client) Overview(ctx context.Context) (*ClusterOverview, error) {
	var ov ClusterOverview
	if err := c.Get(ctx, "/overview", &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

// Jobs fetches the job overview listing.
func (c *Client) Jobs(ctx context.Context) (*JobsOverview, error) {
	var jobs JobsOverview
	if err := c.Get(ctx, "/jobs/overview", &jobs); err != nil {
		return nil, err
	}
	return &jobs, nil
}

// Job fetches the details of one job.
func (c *Client) Job(ctx context.Context, jobID string) (*JobDetails, error) {
	var job JobDetails
	if err := c.Get(ctx, "/jobs/"+url.PathEscape(jobID), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// JobConfig fetches the execution configuration of one job.
func (c *Client) JobConfig(ctx context.Context, jobID string) (*JobConfig, error) {
	var cfg JobConfig
	if err := c.Get(ctx, "/jobs/"+url.PathEscape(jobID)+"/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// JobExceptions fetches the exception report of one job.
func (c *Client) JobExceptions(ctx context.Context, jobID string) (*JobExceptions, error) {
	var exc JobExceptions
	if err := c.Get(ctx, "/jobs/"+url.PathEscape(jobID)+"/exceptions", &exc); err != nil {
		return nil, err
	}
	return &exc, nil
}

// JobMetrics fetches job metrics. With names, only those metrics are
// requested; without, the available set is discovered and all values are
// fetched in batches.
func (c *Client) JobMetrics(ctx context.Context, jobID string, names []string) ([]MetricValue, error) {
	return c.metrics(ctx, "/jobs/"+url.PathEscape(jobID)+"/metrics", names)
}

// TaskManagers fetches the task manager listing.
func (c *Client) TaskManagers(ctx context.Context) (*TaskManagerList, error) {
	var tms TaskManagerList
	if err := c.Get(ctx, "/taskmanagers", &tms); err != nil {
		return nil, err
	}
	return &tms, nil
}

// TaskManager fetches the details of one task manager.
func (c *Client) TaskManager(ctx context.Context, tmID string) (*TaskManagerDetails, error) {
	var tm TaskManagerDetails
	if err := c.Get(ctx, "/taskmanagers/"+url.PathEscape(tmID), &tm); err != nil {
		return nil, err
	}
	return &tm, nil
}

// TaskManagerMetrics fetches task manager metrics, filtered like JobMetrics.
func (c *Client) TaskManagerMetrics(ctx context.Context, tmID string, names []string) ([]MetricValue, error) {
	return c.metrics(ctx, "/taskmanagers/"+url.PathEscape(tmID)+"/metrics", names)
}

// Backpressure fetches the backpressure sample of one job vertex.
func (c *Client) Backpressure(ctx context.Context, jobID, vertexID string) (*Backpressure, error) {
	path := "/jobs/" + url.PathEscape(jobID) + "/vertices/" + url.PathEscape(vertexID) + "/backpressure"
	var bp Backpressure
	if err := c.Get(ctx, path, &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Jars fetches the uploaded JAR listing.
func (c *Client) Jars(ctx context.Context) (*JarList, error) {
	var jars JarList
	if err := c.Get(ctx, "/jars", &jars); err != nil {
		return nil, err
	}
	return &jars, nil
}

func (c *Client) metrics(ctx context.Context, basePath string, names []string) ([]MetricValue, error) {
	if len(names) == 0 {
		var available []MetricValue
		if err := c.Get(ctx, basePath, &available); err != nil {
			return nil, err
		}
		names = make([]string, 0, len(available))
		for _, m := range available {
			if m.ID != "" {
				names = append(names, m.ID)
			}
		}
		if len(names) == 0 {
			return []MetricValue{}, nil
		}
	}

	values := make([]MetricValue, 0, len(names))
	for start := 0; start < len(names); start += metricsBatchSize {
		end := start + metricsBatchSize
		if end > len(names) {
			end = len(names)
		}
		path := basePath + "?get=" + url.QueryEscape(strings.Join(names[start:end], ","))
		var batch []MetricValue
		if err := c.Get(ctx, path, &batch); err != nil {
			return nil, err
		}
		values = append(values, batch...)
	}
	return values, nil
}

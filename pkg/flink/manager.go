package flink

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// probeTimeout bounds the reachability check performed by Initialize. It is
// shorter than the regular request timeout so a dead endpoint fails fast.
const probeTimeout = 5 * time.Second

// ConnectionState is a snapshot of the single process-wide cluster connection.
type ConnectionState struct {
	URL           string    `json:"url"`
	Connected     bool      `json:"connected"`
	LastError     string    `json:"lastError,omitempty"`
	LastCheckedAt time.Time `json:"lastCheckedAt"`
}

// InitResult is the status result of an Initialize call. Probe failures are
// reported here, never as a Go error; the server keeps running and allows
// re-initialization.
type InitResult struct {
	Connected bool   `json:"connected"`
	URL       string `json:"url"`
	Message   string `json:"message"`
}

// Manager owns the single live cluster connection shared by all tools.
// Initialize is the only writer; tool handlers only read.
type Manager struct {
	mu     sync.RWMutex
	cred   *Credential
	client *Client
	state  ConnectionState
}

// NewManager creates a Manager with no connection established. The optional
// credential is applied to every client the manager creates.
func NewManager(cred *Credential) *Manager {
	return &Manager{cred: cred}
}

// Initialize stores the endpoint and probes the cluster overview to verify
// reachability. Concurrent calls serialize; the state is fully reset on
// every call, including a previous lastError.
func (m *Manager) Initialize(ctx context.Context, rawURL string) InitResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseURL := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	now := time.Now().UTC()

	if parsed, err := url.Parse(baseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		m.client = nil
		m.state = ConnectionState{URL: baseURL, Connected: false, LastError: "invalid URL: " + rawURL, LastCheckedAt: now}
		return InitResult{Connected: false, URL: baseURL, Message: "invalid Flink URL: " + rawURL}
	}

	client := NewClient(baseURL, m.cred)
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := client.Overview(probeCtx); err != nil {
		m.client = nil
		m.state = ConnectionState{URL: baseURL, Connected: false, LastError: err.Error(), LastCheckedAt: now}
		slog.Warn("flink connection probe failed", "url", baseURL, "error", err)
		return InitResult{Connected: false, URL: baseURL, Message: "failed to connect to Flink at " + baseURL + ": " + err.Error()}
	}

	m.client = client
	m.state = ConnectionState{URL: baseURL, Connected: true, LastCheckedAt: now}
	slog.Info("connected to flink cluster", "url", baseURL)
	return InitResult{Connected: true, URL: baseURL, Message: "successfully connected to Flink cluster at " + baseURL}
}

// Snapshot returns the current connection state without side effects.
func (m *Manager) Snapshot() ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Connected reports whether the last probe succeeded.
func (m *Manager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Connected
}

// Client returns the active REST client, or a NOT_CONNECTED error when no
// successful probe has happened. Handlers that need the cluster call this
// first and fail fast instead of attempting the request.
func (m *Manager) Client() (*Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.client == nil {
		return nil, types.NotConnectedf("Flink connection not initialized; call initialize_connection first")
	}
	return m.client, nil
}

package tts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/vibhusapra/Narrate/internal/config"
)

// DefaultTimeout bounds an outbound synthesis call when neither the
// configuration nor the caller's context supplies a deadline.
const DefaultTimeout = 60 * time.Second

// Dispatcher routes synthesis requests to the adapter registered for the
// requested provider. The registry and the HTTP client are built once and
// never mutated, so a Dispatcher is safe for unsynchronized concurrent use.
type Dispatcher struct {
	adapters map[Provider]Adapter
	order    []Provider
	client   *http.Client
	timeout  time.Duration
}

// NewDispatcher builds the adapter registry from cfg. Base URLs come from
// configuration so tests can point adapters at mock endpoints.
func NewDispatcher(cfg config.TTSConfig) *Dispatcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := &Dispatcher{
		adapters: make(map[Provider]Adapter),
		timeout:  timeout,
		client: &http.Client{
			// Following a redirect would mean a second outbound call and
			// possibly double billing; surface the 3xx as a provider
			// failure instead.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	for _, a := range []Adapter{
		NewLocalAdapter(cfg.LocalURL),
		NewElevenLabsAdapter(cfg.ElevenLabsURL),
		NewOpenAIAdapter(cfg.OpenAIURL),
	} {
		d.adapters[a.Provider()] = a
		d.order = append(d.order, a.Provider())
	}
	return d
}

// Adapter returns the adapter registered for p.
func (d *Dispatcher) Adapter(p Provider) (Adapter, bool) {
	a, ok := d.adapters[p]
	return a, ok
}

// Catalog lists provider descriptions in registration order.
func (d *Dispatcher) Catalog() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(d.order))
	for _, p := range d.order {
		infos = append(infos, d.adapters[p].Info())
	}
	return infos
}

// Synthesize performs one synthesis call. Invalid requests are rejected
// before any network access, and every failure comes back as a *Error.
// Exactly one outbound HTTP request is made per invocation; nothing is
// retried here — retry policy belongs to callers.
func (d *Dispatcher) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errValidation("text cannot be empty")
	}

	adapter, ok := d.adapters[req.Provider]
	if !ok {
		return nil, errValidation("unknown provider: %q", req.Provider)
	}

	info := adapter.Info()
	if info.RequiresAPIKey && strings.TrimSpace(req.APIKey) == "" {
		return nil, errValidation("%s API key required", info.Name)
	}

	wire, err := adapter.BuildRequest(req)
	if err != nil {
		return nil, errValidation("build %s request: %v", info.Name, err)
	}

	// The configured timeout applies only when the caller did not bring
	// its own deadline.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, wire.URL, bytes.NewReader(wire.Body))
	if err != nil {
		return nil, errValidation("build %s request: %v", info.Name, err)
	}
	httpReq.Header = wire.Header

	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		slog.Warn("synthesis transport failure", "provider", req.Provider, "error", err)
		if isTimeout(err) {
			return nil, errConnection(true, "timed out waiting for %s", info.Name)
		}
		return nil, errConnection(false, "cannot connect to %s: check the server address and your connection", info.Name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("synthesis transport failure", "provider", req.Provider, "error", err)
		return nil, errConnection(isTimeout(err), "reading %s response: connection interrupted", info.Name)
	}

	result, err := adapter.ParseResponse(resp.StatusCode, resp.Header, body)
	if err != nil {
		return nil, err
	}

	slog.Info("synthesis complete",
		"provider", req.Provider,
		"model", req.Model,
		"voice", req.Voice,
		"bytes", len(result.Audio),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

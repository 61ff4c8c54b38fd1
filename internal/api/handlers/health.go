package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vibhusapra/Narrate/internal/config"
)

type HealthHandler struct {
	cfg   *config.Config
	local *openai.Client
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	// MLX-Audio speaks the OpenAI API, so the same client probes it.
	clientCfg := openai.DefaultConfig("")
	clientCfg.BaseURL = strings.TrimRight(cfg.TTS.LocalURL, "/") + "/v1"

	return &HealthHandler{
		cfg:   cfg,
		local: openai.NewClientWithConfig(clientCfg),
	}
}

// Health reports reachability of the local server and whether fallback
// keys are configured for the cloud providers. Key values never appear in
// the response.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	providers := map[string]string{
		"local":      h.probeLocal(r.Context()),
		"elevenlabs": keyStatus(h.cfg.TTS.ElevenLabsKey),
		"openai":     keyStatus(h.cfg.TTS.OpenAIKey),
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "providers": providers})
}

func (h *HealthHandler) probeLocal(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.cfg.Health.TimeoutSeconds)*time.Second)
	defer cancel()

	if _, err := h.local.ListModels(ctx); err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		if errors.As(err, &apiErr) || errors.As(err, &reqErr) {
			return "error" // the server answered, but not with a model list
		}
		return "disconnected"
	}
	return "connected"
}

func keyStatus(key string) string {
	if key != "" {
		return "configured"
	}
	return "no_api_key"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vibhusapra/Narrate/internal/config"
	"github.com/vibhusapra/Narrate/internal/tts"
)

type TTSHandler struct {
	dispatcher *tts.Dispatcher
	cfg        config.TTSConfig
}

func NewTTSHandler(d *tts.Dispatcher, cfg config.TTSConfig) *TTSHandler {
	return &TTSHandler{dispatcher: d, cfg: cfg}
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Voice    string `json:"voice"`
	APIKey   string `json:"api_key"`
}

// Synthesize converts text to speech and returns the audio as a
// downloadable attachment.
func (h *TTSHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Provider == "" {
		req.Provider = tts.ProviderLocal.String()
	}
	provider, err := tts.ParseProvider(req.Provider)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.dispatcher.Synthesize(r.Context(), tts.SynthesisRequest{
		Text:     req.Text,
		Provider: provider,
		Model:    req.Model,
		Voice:    req.Voice,
		APIKey:   h.resolveKey(provider, req.APIKey),
	})
	if err != nil {
		writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("narrate_%s.%s", uuid.NewString()[:8], extension(result.MimeType))
	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("X-Provider", result.Provider.String())
	w.WriteHeader(http.StatusOK)
	w.Write(result.Audio)
}

// Providers lists the selectable backends with their models and voices.
func (h *TTSHandler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": h.dispatcher.Catalog()})
}

// resolveKey prefers the key supplied with the request and falls back to
// the server-side key from the environment.
func (h *TTSHandler) resolveKey(p tts.Provider, requestKey string) string {
	if strings.TrimSpace(requestKey) != "" {
		return requestKey
	}
	switch p {
	case tts.ProviderElevenLabs:
		return h.cfg.ElevenLabsKey
	case tts.ProviderOpenAI:
		return h.cfg.OpenAIKey
	}
	return ""
}

// errorStatus maps a synthesis failure to an HTTP status. Provider
// statuses pass through so the client sees what the backend said.
func errorStatus(err error) int {
	var terr *tts.Error
	if !errors.As(err, &terr) {
		return http.StatusInternalServerError
	}
	switch terr.Kind {
	case tts.KindValidation:
		return http.StatusBadRequest
	case tts.KindConnection:
		if terr.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	case tts.KindProvider:
		if terr.Status >= 100 && terr.Status < 600 {
			return terr.Status
		}
		return http.StatusBadGateway
	case tts.KindUnexpectedResponse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func extension(mimeType string) string {
	base := strings.TrimSpace(strings.Split(mimeType, ";")[0])
	switch strings.ToLower(base) {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return "wav"
	case "audio/ogg":
		return "ogg"
	case "audio/flac":
		return "flac"
	case "audio/aac":
		return "aac"
	case "audio/opus":
		return "opus"
	}
	return "bin"
}

package tts

import "net/http"

// Provider identifies a TTS backend.
type Provider string

const (
	ProviderLocal      Provider = "local"
	ProviderElevenLabs Provider = "elevenlabs"
	ProviderOpenAI     Provider = "openai"
)

// ParseProvider resolves a wire identifier to a known Provider. Unknown
// values are a validation failure; there is no fallback or auto-detection.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderLocal, ProviderElevenLabs, ProviderOpenAI:
		return Provider(s), nil
	}
	return "", errValidation("unknown provider: %q", s)
}

func (p Provider) String() string { return string(p) }

// SynthesisRequest holds the parameters for a single text-to-speech call.
// Model and Voice are optional; adapters fill in per-provider defaults.
// APIKey is the per-request credential and must never be logged.
type SynthesisRequest struct {
	Text     string   `json:"text"`
	Provider Provider `json:"provider"`
	Model    string   `json:"model,omitempty"`
	Voice    string   `json:"voice,omitempty"`
	APIKey   string   `json:"api_key,omitempty"`
}

// SynthesisResult holds the synthesized audio and its content type.
// It is a terminal value, never mutated after construction.
type SynthesisResult struct {
	Audio    []byte
	MimeType string
	Provider Provider
}

// WireRequest is the provider-specific HTTP request produced by an
// adapter. The method is always POST.
type WireRequest struct {
	URL    string
	Header http.Header
	Body   []byte
}

// ProviderInfo describes one backend for the catalog endpoint and the UI
// selectors. Models and Voices map wire identifiers to display labels.
type ProviderInfo struct {
	ID             Provider          `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	RequiresAPIKey bool              `json:"requires_api_key"`
	Models         map[string]string `json:"models"`
	Voices         map[string]string `json:"voices"`
	DefaultModel   string            `json:"default_model"`
	DefaultVoice   string            `json:"default_voice"`
}

// Adapter translates between the uniform request/result shape and one
// provider's wire format. Adapters are immutable after construction and
// safe for concurrent use.
type Adapter interface {
	Provider() Provider
	Info() ProviderInfo

	// BuildRequest is a pure mapping: identical requests yield
	// byte-identical wire requests. No I/O.
	BuildRequest(req SynthesisRequest) (*WireRequest, error)

	// ParseResponse converts a provider response into a result or a
	// classified error. No I/O.
	ParseResponse(status int, header http.Header, body []byte) (*SynthesisResult, error)
}

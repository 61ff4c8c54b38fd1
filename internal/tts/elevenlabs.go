package tts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	elevenLabsDefaultModel = "eleven_flash_v2_5"
	elevenLabsDefaultVoice = "21m00Tcm4TlvDq8ikWAM" // Rachel
	elevenLabsDefaultMime  = "audio/mpeg"
)

// ElevenLabsAdapter targets the ElevenLabs cloud API. Auth is a per-request
// API key sent in the xi-api-key header; the voice id is part of the URL.
type ElevenLabsAdapter struct {
	baseURL string
	info    ProviderInfo
}

// NewElevenLabsAdapter creates an ElevenLabsAdapter against baseURL,
// defaulting to the public API endpoint.
func NewElevenLabsAdapter(baseURL string) *ElevenLabsAdapter {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		info: ProviderInfo{
			ID:             ProviderElevenLabs,
			Name:           "ElevenLabs",
			Description:    "Cloud TTS with natural voices",
			RequiresAPIKey: true,
			Models: map[string]string{
				"eleven_flash_v2_5":      "Flash v2.5 (Low latency)",
				"eleven_multilingual_v2": "Multilingual v2 (Best quality)",
				"eleven_turbo_v2_5":      "Turbo v2.5 (Balanced)",
			},
			Voices: map[string]string{
				"21m00Tcm4TlvDq8ikWAM": "Rachel",
				"EXAVITQu4vr4xnSDxMaL": "Bella",
				"ErXwobaYiN019PkySvjV": "Antoni",
				"VR6AewLTigWG4xSOukaG": "Arnold",
				"pNInz6obpgDQGcFmaJgB": "Adam",
			},
			DefaultModel: elevenLabsDefaultModel,
			DefaultVoice: elevenLabsDefaultVoice,
		},
	}
}

func (a *ElevenLabsAdapter) Provider() Provider { return ProviderElevenLabs }

func (a *ElevenLabsAdapter) Info() ProviderInfo { return a.info }

type elevenLabsSpeechBody struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (a *ElevenLabsAdapter) BuildRequest(req SynthesisRequest) (*WireRequest, error) {
	model := req.Model
	if model == "" {
		model = elevenLabsDefaultModel
	}
	voice := req.Voice
	if voice == "" {
		voice = elevenLabsDefaultVoice
	}

	body, err := json.Marshal(elevenLabsSpeechBody{Text: req.Text, ModelID: model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("xi-api-key", req.APIKey)

	return &WireRequest{
		URL:    a.baseURL + "/v1/text-to-speech/" + url.PathEscape(voice),
		Header: header,
		Body:   body,
	}, nil
}

func (a *ElevenLabsAdapter) ParseResponse(status int, header http.Header, body []byte) (*SynthesisResult, error) {
	return parseAudioResponse(ProviderElevenLabs, "ElevenLabs", elevenLabsDefaultMime, status, header, body)
}

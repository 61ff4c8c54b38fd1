package tts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAIDefaultModel = "gpt-4o-mini-tts"
	openAIDefaultVoice = "alloy"
	openAIDefaultMime  = "audio/wav"
)

// OpenAIAdapter targets the OpenAI speech API. Auth is a per-request API
// key sent as a bearer token. Audio is requested in WAV format.
type OpenAIAdapter struct {
	baseURL string
	info    ProviderInfo
}

// NewOpenAIAdapter creates an OpenAIAdapter against baseURL, defaulting
// to the public API endpoint.
func NewOpenAIAdapter(baseURL string) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		info: ProviderInfo{
			ID:             ProviderOpenAI,
			Name:           "OpenAI",
			Description:    "Cloud TTS with GPT-4o voices",
			RequiresAPIKey: true,
			Models: map[string]string{
				"gpt-4o-mini-tts": "GPT-4o Mini TTS (Best)",
				"tts-1":           "TTS-1 (Fast)",
				"tts-1-hd":        "TTS-1 HD (High quality)",
			},
			Voices: map[string]string{
				"alloy":   "Alloy",
				"ash":     "Ash",
				"ballad":  "Ballad",
				"coral":   "Coral",
				"echo":    "Echo",
				"fable":   "Fable",
				"nova":    "Nova",
				"onyx":    "Onyx",
				"sage":    "Sage",
				"shimmer": "Shimmer",
			},
			DefaultModel: openAIDefaultModel,
			DefaultVoice: openAIDefaultVoice,
		},
	}
}

func (a *OpenAIAdapter) Provider() Provider { return ProviderOpenAI }

func (a *OpenAIAdapter) Info() ProviderInfo { return a.info }

type openAISpeechBody struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

func (a *OpenAIAdapter) BuildRequest(req SynthesisRequest) (*WireRequest, error) {
	model := req.Model
	if model == "" {
		model = openAIDefaultModel
	}
	voice := req.Voice
	if voice == "" {
		voice = openAIDefaultVoice
	}

	body, err := json.Marshal(openAISpeechBody{
		Model:          model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: "wav",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+req.APIKey)

	return &WireRequest{
		URL:    a.baseURL + "/v1/audio/speech",
		Header: header,
		Body:   body,
	}, nil
}

func (a *OpenAIAdapter) ParseResponse(status int, header http.Header, body []byte) (*SynthesisResult, error) {
	return parseAudioResponse(ProviderOpenAI, "OpenAI", openAIDefaultMime, status, header, body)
}

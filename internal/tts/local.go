package tts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	localDefaultModel = "mlx-community/Spark-TTS-0.5B-bf16"
	localDefaultVoice = "af_heart"
	localDefaultMime  = "audio/mpeg"
)

// LocalAdapter targets an MLX-Audio server, which exposes an
// OpenAI-compatible speech endpoint and needs no API key.
type LocalAdapter struct {
	baseURL string
	info    ProviderInfo
}

// NewLocalAdapter creates a LocalAdapter for the MLX-Audio server at baseURL.
func NewLocalAdapter(baseURL string) *LocalAdapter {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8000"
	}
	return &LocalAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		info: ProviderInfo{
			ID:             ProviderLocal,
			Name:           "MLX-Audio (Local)",
			Description:    "Local TTS on Apple Silicon",
			RequiresAPIKey: false,
			Models: map[string]string{
				"mlx-community/Spark-TTS-0.5B-bf16": "Spark TTS 0.5B (Best quality, EN/ZH)",
				"mlx-community/Spark-TTS-0.5B-8bit": "Spark TTS 0.5B 8-bit (Faster, less memory)",
				"mlx-community/Kokoro-82M-bf16":     "Kokoro 82M (Fastest)",
			},
			Voices:       map[string]string{}, // Spark TTS uses the model's default voice
			DefaultModel: localDefaultModel,
			DefaultVoice: localDefaultVoice,
		},
	}
}

func (a *LocalAdapter) Provider() Provider { return ProviderLocal }

func (a *LocalAdapter) Info() ProviderInfo { return a.info }

type localSpeechBody struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

func (a *LocalAdapter) BuildRequest(req SynthesisRequest) (*WireRequest, error) {
	model := req.Model
	if model == "" {
		model = localDefaultModel
	}
	voice := req.Voice
	if voice == "" {
		voice = localDefaultVoice
	}

	body, err := json.Marshal(localSpeechBody{Model: model, Input: req.Text, Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &WireRequest{
		URL:    a.baseURL + "/v1/audio/speech",
		Header: header,
		Body:   body,
	}, nil
}

func (a *LocalAdapter) ParseResponse(status int, header http.Header, body []byte) (*SynthesisResult, error) {
	return parseAudioResponse(ProviderLocal, "MLX-Audio", localDefaultMime, status, header, body)
}

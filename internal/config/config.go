package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	TTS       TTSConfig       `yaml:"tts"`
	Health    HealthConfig    `yaml:"health"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TTSConfig carries the base URL for each provider and the outbound
// synthesis timeout. The API keys are optional server-side fallbacks used
// when a request carries none; they are read from the environment only,
// never from the config file.
type TTSConfig struct {
	LocalURL       string `yaml:"local_url"`
	ElevenLabsURL  string `yaml:"elevenlabs_url"`
	OpenAIURL      string `yaml:"openai_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ElevenLabsKey  string `yaml:"-"`
	OpenAIKey      string `yaml:"-"`
}

type HealthConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		TTS: TTSConfig{
			LocalURL:       "http://127.0.0.1:8000",
			ElevenLabsURL:  "https://api.elevenlabs.io",
			OpenAIURL:      "https://api.openai.com",
			TimeoutSeconds: 60,
		},
		Health: HealthConfig{
			TimeoutSeconds: 5,
		},
		RateLimit: RateLimitConfig{
			RPS:   100,
			Burst: 200,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration in three layers: defaults, an optional
// YAML file, then environment overrides. The result is validated and not
// mutated afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Server.Host, "SERVER_HOST")
	overrideInt(&cfg.Server.Port, "SERVER_PORT")
	overrideString(&cfg.TTS.LocalURL, "MLX_AUDIO_URL")
	overrideString(&cfg.TTS.ElevenLabsURL, "ELEVENLABS_URL")
	overrideString(&cfg.TTS.OpenAIURL, "OPENAI_TTS_URL")
	overrideInt(&cfg.TTS.TimeoutSeconds, "TTS_TIMEOUT_SECONDS")
	overrideString(&cfg.TTS.ElevenLabsKey, "ELEVENLABS_API_KEY")
	overrideString(&cfg.TTS.OpenAIKey, "OPENAI_API_KEY")
	overrideInt(&cfg.Health.TimeoutSeconds, "HEALTH_TIMEOUT_SECONDS")
	overrideFloat(&cfg.RateLimit.RPS, "RATE_LIMIT_RPS")
	overrideInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST")
	overrideStringSlice(&cfg.CORS.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var invalid []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		invalid = append(invalid, "server port out of range")
	}
	if c.TTS.TimeoutSeconds <= 0 {
		invalid = append(invalid, "tts timeout must be positive")
	}
	if c.Health.TimeoutSeconds <= 0 {
		invalid = append(invalid, "health timeout must be positive")
	}
	if c.TTS.LocalURL == "" || c.TTS.ElevenLabsURL == "" || c.TTS.OpenAIURL == "" {
		invalid = append(invalid, "provider base URLs must not be empty")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		invalid = append(invalid, "rate limit must be positive")
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(invalid, "; "))
	}
	return nil
}

func overrideString(target *string, envKey string) {
	if v, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(v) != "" {
		*target = v
	}
}

func overrideInt(target *int, envKey string) {
	if v, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if v, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if v, ok := os.LookupEnv(envKey); ok {
		var trimmed []string
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

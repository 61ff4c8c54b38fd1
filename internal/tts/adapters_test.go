package tts

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestParseProvider(t *testing.T) {
	is := is.New(t)

	for _, id := range []string{"local", "elevenlabs", "openai"} {
		p, err := ParseProvider(id)
		is.NoErr(err)
		is.Equal(p.String(), id)
	}

	for _, id := range []string{"", "mlx", "LOCAL", "polly"} {
		_, err := ParseProvider(id)
		is.Equal(KindOf(err), KindValidation) // unknown ids never resolve to a default
	}
}

func TestLocalBuildRequest(t *testing.T) {
	is := is.New(t)

	a := NewLocalAdapter("http://127.0.0.1:9999/")
	wire, err := a.BuildRequest(SynthesisRequest{Text: "Hello world", Provider: ProviderLocal})
	is.NoErr(err)

	is.Equal(wire.URL, "http://127.0.0.1:9999/v1/audio/speech") // trailing slash trimmed
	is.Equal(wire.Header.Get("Content-Type"), "application/json")
	is.Equal(wire.Header.Get("Authorization"), "") // local server is unauthenticated
	is.Equal(wire.Header.Get("xi-api-key"), "")

	var body localSpeechBody
	is.NoErr(json.Unmarshal(wire.Body, &body))
	is.Equal(body.Input, "Hello world")
	is.Equal(body.Model, localDefaultModel)
	is.Equal(body.Voice, localDefaultVoice)
}

func TestElevenLabsBuildRequest(t *testing.T) {
	is := is.New(t)

	a := NewElevenLabsAdapter("")
	req := SynthesisRequest{
		Text:     "Hi",
		Provider: ProviderElevenLabs,
		Model:    "eleven_turbo_v2_5",
		Voice:    "v1",
		APIKey:   "xi-secret-key",
	}
	wire, err := a.BuildRequest(req)
	is.NoErr(err)

	is.Equal(wire.URL, "https://api.elevenlabs.io/v1/text-to-speech/v1") // voice id lives in the path
	is.Equal(wire.Header.Get("xi-api-key"), "xi-secret-key")
	is.Equal(wire.Header.Get("Authorization"), "")

	var body elevenLabsSpeechBody
	is.NoErr(json.Unmarshal(wire.Body, &body))
	is.Equal(body.Text, "Hi")
	is.Equal(body.ModelID, "eleven_turbo_v2_5")

	is.True(!strings.Contains(wire.URL, "xi-secret-key")) // credential only in the header
	is.True(!bytes.Contains(wire.Body, []byte("xi-secret-key")))
}

func TestElevenLabsDefaultsApplied(t *testing.T) {
	is := is.New(t)

	a := NewElevenLabsAdapter("")
	wire, err := a.BuildRequest(SynthesisRequest{Text: "Hi", Provider: ProviderElevenLabs, APIKey: "k"})
	is.NoErr(err)

	is.True(strings.HasSuffix(wire.URL, "/"+elevenLabsDefaultVoice)) // Rachel

	var body elevenLabsSpeechBody
	is.NoErr(json.Unmarshal(wire.Body, &body))
	is.Equal(body.ModelID, elevenLabsDefaultModel)
}

func TestElevenLabsVoiceIsPathEscaped(t *testing.T) {
	is := is.New(t)

	a := NewElevenLabsAdapter("")
	voice := "../admin?x=1"
	wire, err := a.BuildRequest(SynthesisRequest{Text: "Hi", Provider: ProviderElevenLabs, Voice: voice, APIKey: "k"})
	is.NoErr(err)
	is.True(strings.HasSuffix(wire.URL, "/"+url.PathEscape(voice))) // voice cannot rewrite the path
}

func TestOpenAIBuildRequest(t *testing.T) {
	is := is.New(t)

	a := NewOpenAIAdapter("")
	wire, err := a.BuildRequest(SynthesisRequest{
		Text:     "Good evening",
		Provider: ProviderOpenAI,
		APIKey:   "sk-test-123",
	})
	is.NoErr(err)

	is.Equal(wire.URL, "https://api.openai.com/v1/audio/speech")
	is.Equal(wire.Header.Get("Authorization"), "Bearer sk-test-123")
	is.Equal(wire.Header.Get("xi-api-key"), "")

	var body openAISpeechBody
	is.NoErr(json.Unmarshal(wire.Body, &body))
	is.Equal(body.Model, openAIDefaultModel)
	is.Equal(body.Voice, openAIDefaultVoice)
	is.Equal(body.Input, "Good evening")
	is.Equal(body.ResponseFormat, "wav")

	is.True(!bytes.Contains(wire.Body, []byte("sk-test-123")))
}

func TestBuildRequestIsDeterministic(t *testing.T) {
	is := is.New(t)

	req := SynthesisRequest{
		Text:   "The same words, every time.",
		Model:  "m",
		Voice:  "v",
		APIKey: "key",
	}

	adapters := []Adapter{
		NewLocalAdapter(""),
		NewElevenLabsAdapter(""),
		NewOpenAIAdapter(""),
	}
	for _, a := range adapters {
		req.Provider = a.Provider()
		first, err := a.BuildRequest(req)
		is.NoErr(err)
		second, err := a.BuildRequest(req)
		is.NoErr(err)

		is.Equal(first.URL, second.URL)
		is.True(bytes.Equal(first.Body, second.Body)) // byte-identical body for identical input
		if !reflect.DeepEqual(first.Header, second.Header) {
			t.Errorf("%s: headers differ between identical builds", a.Provider())
		}
	}
}

func TestAdapterInfoMatchesProvider(t *testing.T) {
	is := is.New(t)

	for _, a := range []Adapter{NewLocalAdapter(""), NewElevenLabsAdapter(""), NewOpenAIAdapter("")} {
		info := a.Info()
		is.Equal(info.ID, a.Provider())
		if info.DefaultVoice == "" {
			t.Errorf("%s has no default voice", a.Provider())
		}
	}
}

package tts

import (
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestAudioMimeType(t *testing.T) {
	is := is.New(t)

	header := func(ct string) http.Header {
		h := make(http.Header)
		if ct != "" {
			h.Set("Content-Type", ct)
		}
		return h
	}

	cases := []struct {
		name    string
		ct      string
		want    string
		isAudio bool
	}{
		{"absent falls back", "", "audio/mpeg", true},
		{"audio passes through", "audio/wav", "audio/wav", true},
		{"parameters stripped", "audio/mpeg; charset=binary", "audio/mpeg", true},
		{"octet-stream falls back", "application/octet-stream", "audio/mpeg", true},
		{"json is not audio", "application/json", "application/json", false},
		{"html is not audio", "text/html; charset=utf-8", "text/html", false},
		{"plain text is not audio", "text/plain", "text/plain", false},
		{"malformed falls back", ";;;", "audio/mpeg", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, audio := audioMimeType(header(tc.ct), "audio/mpeg")
			is.Equal(got, tc.want)
			is.Equal(audio, tc.isAudio)
		})
	}
}

func TestParseAudioResponseSuccess(t *testing.T) {
	is := is.New(t)

	h := make(http.Header)
	h.Set("Content-Type", "audio/wav")
	body := make([]byte, 16)

	result, err := parseAudioResponse(ProviderLocal, "MLX-Audio", "audio/mpeg", http.StatusOK, h, body)
	is.NoErr(err)
	is.Equal(result.MimeType, "audio/wav")
	is.Equal(len(result.Audio), 16)
	is.Equal(result.Provider, ProviderLocal)
}

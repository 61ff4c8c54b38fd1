package tts

import (
	"mime"
	"net/http"
	"strings"
)

// parseAudioResponse normalizes a provider HTTP response into a result.
// Every adapter returns raw audio bytes on success, so the status and
// content-type handling is shared; only the defaults differ per provider.
func parseAudioResponse(p Provider, name, defaultMime string, status int, header http.Header, body []byte) (*SynthesisResult, error) {
	if status < 200 || status > 299 {
		msg := extractMessage(body)
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, errProvider(status, "%s error: %s", name, msg)
	}

	if len(body) == 0 {
		return nil, errUnexpected("%s returned an empty response body", name)
	}

	mimeType, audio := audioMimeType(header, defaultMime)
	if !audio {
		return nil, errUnexpected("%s returned %s instead of audio", name, mimeType)
	}

	return &SynthesisResult{Audio: body, MimeType: mimeType, Provider: p}, nil
}

// audioMimeType derives the result media type from the response header,
// falling back to the provider's known default when none was sent. The
// second return is false when the body cannot be audio.
func audioMimeType(header http.Header, fallback string) (string, bool) {
	ct := header.Get("Content-Type")
	if ct == "" {
		return fallback, true
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return fallback, true
	}

	switch {
	case mediaType == "application/octet-stream":
		return fallback, true
	case strings.HasPrefix(mediaType, "audio/"):
		return mediaType, true
	case mediaType == "application/json", strings.HasPrefix(mediaType, "text/"):
		return mediaType, false
	}
	return mediaType, true
}

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vibhusapra/Narrate/pkg/chunker"
	"github.com/vibhusapra/Narrate/pkg/textextract"
)

const maxUploadBytes = 32 << 20

// ManuscriptHandler turns uploaded documents into narration-ready text.
type ManuscriptHandler struct{}

func NewManuscriptHandler() *ManuscriptHandler {
	return &ManuscriptHandler{}
}

// Extract pulls plain text out of an uploaded file (txt, md, pdf, docx).
func (h *ManuscriptHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file field required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading upload: " + err.Error()})
		return
	}

	fileType := filepath.Ext(header.Filename)
	if fileType == "" {
		fileType = header.Header.Get("Content-Type")
	}

	extracted, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), fileType)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"text":  extracted.Content,
		"pages": extracted.Pages,
		"type":  extracted.Type,
		"chars": len(extracted.Content),
	})
}

type segmentRequest struct {
	Text     string `json:"text"`
	MaxChars int    `json:"max_chars"`
}

// Segment splits long text into pieces small enough for one synthesis
// call each.
func (h *ManuscriptHandler) Segment(w http.ResponseWriter, r *http.Request) {
	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text cannot be empty"})
		return
	}
	if req.MaxChars < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "max_chars must be positive"})
		return
	}

	segments := chunker.Split(req.Text, chunker.SplitOptions{MaxChars: req.MaxChars})

	writeJSON(w, http.StatusOK, map[string]any{
		"segments": segments,
		"count":    len(segments),
	})
}

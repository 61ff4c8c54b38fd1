package api

import (
	"embed"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Index serves the single-page UI.
func Index(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// StaticHandler serves the bundled UI assets. The embedded paths already
// carry the static/ prefix, so no stripping is needed.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}

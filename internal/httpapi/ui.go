package httpapi

import (
	"embed"
	"net/http"
)

//go:embed static/index.html
var staticFiles embed.FS

// handleIndex serves the comparison page. All session state lives on the
// server; the page only talks to the JSON API.
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}

	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		r.logger.Printf("ui: embedded page missing: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "page unavailable"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

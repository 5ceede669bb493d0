// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pitchlab/rabona/internal/domain/model"
)

const (
	// defaultMaxUploadBytes caps the total request body for POST /analyze.
	defaultMaxUploadBytes = 200 << 20

	// multipartMemoryBytes is how much of the multipart body is kept in
	// memory before spilling to temp files.
	multipartMemoryBytes = 32 << 20
)

// videoField and attributesField name the expected multipart form parts.
const (
	videoField      = "video"
	attributesField = "attributes"
)

// AnalyzeHandler handles clip analysis requests.
type AnalyzeHandler struct {
	deps           Dependencies
	maxUploadBytes int64
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies, opts ...Option) *AnalyzeHandler {
	h := &AnalyzeHandler{
		deps:           deps,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleAnalyze handles POST /analyze requests. The request is a multipart
// form with a "video" file part and an "attributes" JSON part.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	raw := r.FormValue(attributesField)
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingAttributes)
		return
	}
	var attrs model.PlayerAttributes
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	video, _, err := r.FormFile(videoField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingVideo)
		return
	}
	defer func() { _ = video.Close() }()

	session, suggestions, err := h.deps.Analyze(r.Context(), attrs, video)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", ErrAnalyze)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		SessionID:      session.ID,
		Metrics:        session.Metrics,
		Suggestions:    suggestions,
		SimilarPlayers: session.SimilarPlayers,
	})
}

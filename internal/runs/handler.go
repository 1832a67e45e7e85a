package runs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"quotesynth/internal/blob"
	"quotesynth/internal/render"
)

// Handler provides HTTP access to batch runs and their artifacts.
//
//	POST /api/v1/runs                      enqueue a run
//	GET  /api/v1/runs                      list runs
//	GET  /api/v1/runs/{id}                 run status and artifact metadata
//	GET  /api/v1/runs/{id}/artifacts/{fmt} download one artifact
type Handler struct {
	Runs  Scheduler
	Store blob.Store
}

// NewHandler constructs a run HTTP handler.
func NewHandler(runs Scheduler, store blob.Store) *Handler {
	return &Handler{Runs: runs, Store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		writeError(w, http.StatusInternalServerError, "run scheduler not configured")
		return
	}

	p := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case p == "/api/v1/runs":
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case strings.HasPrefix(p, "/api/v1/runs/"):
		h.handleRun(w, r, strings.TrimPrefix(p, "/api/v1/runs/"))
	default:
		http.NotFound(w, r)
	}
}

type createRequest struct {
	Seed        uint64   `json:"seed"`
	Count       int      `json:"count"`
	Formats     []string `json:"formats"`
	Workers     int      `json:"workers"`
	RequestedBy string   `json:"requested_by"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid run request payload")
		return
	}

	formats := make([]render.Format, 0, len(req.Formats))
	for _, name := range req.Formats {
		format, err := render.ParseFormat(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		formats = append(formats, format)
	}

	run, err := h.Runs.Enqueue(r.Context(), Request{
		Seed:        req.Seed,
		Count:       req.Count,
		Formats:     formats,
		Workers:     req.Workers,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"run": run})
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": h.Runs.List()})
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request, remainder string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	segments := strings.Split(remainder, "/")
	id := segments[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}
	run, ok := h.Runs.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	switch {
	case len(segments) == 1:
		writeJSON(w, http.StatusOK, map[string]any{"run": run})
	case len(segments) == 3 && segments[1] == "artifacts":
		h.handleArtifact(w, r, run, segments[2])
	default:
		http.NotFound(w, r)
	}
}

// handleArtifact streams the artifact payload when the store can serve it
// and falls back to redirecting at the presigned URL otherwise.
func (h *Handler) handleArtifact(w http.ResponseWriter, r *http.Request, run Run, name string) {
	for _, artifact := range run.Artifacts {
		if string(artifact.Format) != name {
			continue
		}
		if h.Store != nil {
			info, body, err := h.Store.Get(r.Context(), artifact.Key)
			if err == nil {
				defer func() { _ = body.Close() }()
				contentType := info.ContentType
				if contentType == "" {
					contentType = artifact.ContentType
				}
				w.Header().Set("Content-Type", contentType)
				w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(artifact.Key)))
				w.WriteHeader(http.StatusOK)
				_, _ = io.Copy(w, body)
				return
			}
		}
		if artifact.URL != "" {
			http.Redirect(w, r, artifact.URL, http.StatusTemporaryRedirect)
			return
		}
		writeError(w, http.StatusNotFound, "artifact payload unavailable")
		return
	}
	writeError(w, http.StatusNotFound, "artifact not found")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

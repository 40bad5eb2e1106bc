package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/catalog"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/digest"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/pipeline"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/saved"

	"go.uber.org/zap"
)

// Preferences 抽象偏好服务接口。
type Preferences interface {
	Get(ctx context.Context) (*model.Preferences, error)
	Save(ctx context.Context, raw map[string]any) (model.Preferences, error)
	Reset(ctx context.Context) error
}

// Digests 抽象摘要生成接口。
type Digests interface {
	GetOrGenerate(ctx context.Context, prefs *model.Preferences, force bool) (*model.Digest, error)
}

// SavedJobs 抽象收藏集合接口。
type SavedJobs interface {
	Add(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Jobs(ctx context.Context, c saved.Catalog) ([]model.Job, error)
}

// SaveRequest 表示收藏 API 请求。
type SaveRequest struct {
	ID string `json:"id"`
}

type handler struct {
	catalog *catalog.Catalog
	prefs   Preferences
	digests Digests
	saved   SavedJobs
	logger  *zap.Logger
}

// NewHandler 构造 HTTP 多路复用器。
func NewHandler(cat *catalog.Catalog, prefs Preferences, digests Digests, savedJobs SavedJobs, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{catalog: cat, prefs: prefs, digests: digests, saved: savedJobs, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/api/jobs", h.handleJobs)
	mux.HandleFunc("/api/meta", h.handleMeta)
	mux.HandleFunc("/api/preferences", h.handlePreferences)
	mux.HandleFunc("/api/digest", h.handleDigest)
	mux.HandleFunc("/api/digest/text", h.handleDigestText)
	mux.HandleFunc("/api/saved", h.handleSaved)
	mux.HandleFunc("/api/saved/", h.handleSavedRemove)

	return mux
}

func (h *handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filters := pipeline.Filters{
		Keyword:     q.Get("keyword"),
		Location:    q.Get("location"),
		Mode:        q.Get("mode"),
		Experience:  q.Get("experience"),
		Source:      q.Get("source"),
		MatchesOnly: isTruthy(q.Get("matches_only")),
		SortBy:      q.Get("sort"),
	}

	prefs, err := h.prefs.Get(r.Context())
	if err != nil {
		h.serverError(w, "load preferences", err)
		return
	}

	jobs := pipeline.Apply(h.catalog.Jobs(), filters, prefs)
	writeJSON(w, http.StatusOK, jobs)
}

func (h *handler) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Meta())
}

func (h *handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prefs, err := h.prefs.Get(r.Context())
		if err != nil {
			h.serverError(w, "load preferences", err)
			return
		}
		if prefs == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "preferences not set"})
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	case http.MethodPut, http.MethodPost:
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		prefs, err := h.prefs.Save(r.Context(), raw)
		if err != nil {
			h.serverError(w, "save preferences", err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	case http.MethodDelete:
		if err := h.prefs.Reset(r.Context()); err != nil {
			h.serverError(w, "reset preferences", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	d, ok := h.loadDigest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *handler) handleDigestText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	d, ok := h.loadDigest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(digest.ToPlainText(d)))
}

// loadDigest 读取或生成今天的摘要，偏好未设置时写出 404。
func (h *handler) loadDigest(w http.ResponseWriter, r *http.Request) (*model.Digest, bool) {
	prefs, err := h.prefs.Get(r.Context())
	if err != nil {
		h.serverError(w, "load preferences", err)
		return nil, false
	}

	d, err := h.digests.GetOrGenerate(r.Context(), prefs, isTruthy(r.URL.Query().Get("force")))
	if err != nil {
		h.serverError(w, "get or generate digest", err)
		return nil, false
	}
	if d == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "set preferences to generate a digest"})
		return nil, false
	}
	return d, true
}

func (h *handler) handleSaved(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jobs, err := h.saved.Jobs(r.Context(), h.catalog)
		if err != nil {
			h.serverError(w, "list saved jobs", err)
			return
		}
		writeJSON(w, http.StatusOK, jobs)
	case http.MethodPost:
		var req SaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if _, ok := h.catalog.Get(req.ID); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown job id"})
			return
		}
		if err := h.saved.Add(r.Context(), req.ID); err != nil {
			h.serverError(w, "save job", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleSavedRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/saved/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "job id required"})
		return
	}
	if err := h.saved.Remove(r.Context(), id); err != nil {
		h.serverError(w, "remove saved job", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

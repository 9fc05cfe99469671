package handlers

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
	"go.uber.org/zap"
)

const maxImportBytes = 10 << 20

type LeadHandler struct {
	CreateUC  *usecase.CreateLeadUseCase
	ListUC    *usecase.ListLeadsUseCase
	GetUC     *usecase.GetLeadUseCase
	UpdateUC  *usecase.UpdateLeadUseCase
	DeleteUC  *usecase.DeleteLeadUseCase
	ImportUC  *usecase.ImportLeadsUseCase
	CaptureUC *usecase.CaptureLeadUseCase
	Logger    *zap.Logger

	rateLimiter *RateLimiter
}

type LeadUseCases struct {
	Create  *usecase.CreateLeadUseCase
	List    *usecase.ListLeadsUseCase
	Get     *usecase.GetLeadUseCase
	Update  *usecase.UpdateLeadUseCase
	Delete  *usecase.DeleteLeadUseCase
	Import  *usecase.ImportLeadsUseCase
	Capture *usecase.CaptureLeadUseCase
}

// NewLeadHandler limits public captures to captureLimit requests per minute
// per client IP.
func NewLeadHandler(ucs LeadUseCases, captureLimit int, logger *zap.Logger) *LeadHandler {
	if captureLimit <= 0 {
		captureLimit = 10
	}
	return &LeadHandler{
		CreateUC:    ucs.Create,
		ListUC:      ucs.List,
		GetUC:       ucs.Get,
		UpdateUC:    ucs.Update,
		DeleteUC:    ucs.Delete,
		ImportUC:    ucs.Import,
		CaptureUC:   ucs.Capture,
		Logger:      logger,
		rateLimiter: NewRateLimiter(captureLimit, time.Minute),
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON")
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.GetUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON")
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ImportLeadsResponse struct {
	Success bool `json:"success"`
	*usecase.ImportLeadsOutput
}

// Import handles a multipart upload with the CSV in the "file" field.
func (h *LeadHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "no file provided")
		return
	}
	defer file.Close()

	out, err := h.ImportUC.Execute(r.Context(), file)
	if err != nil {
		if statusForError(err) >= http.StatusInternalServerError {
			h.Logger.Error("lead import failed", zap.Error(err))
		}
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ImportLeadsResponse{Success: true, ImportLeadsOutput: out})
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CaptureLeadInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	if _, err := h.CaptureUC.Execute(r.Context(), input); err != nil {
		status := statusForError(err)
		msg := "Failed to capture lead"
		if status == http.StatusBadRequest {
			msg = "A valid email is required"
		} else {
			h.Logger.Error("lead capture failed", zap.Error(err))
		}
		writeJSON(w, status, CaptureLeadResponse{Success: false, Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, CaptureLeadResponse{Success: true})
}

// getClientIP keys the limiter on the socket address without its port.
// Forwarding headers are not read here; chimw.RealIP has already applied
// them to RemoteAddr.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := rl.now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

package httptransport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/httputil"
)

// maxRecentLimit caps the recent-activity page size.
const maxRecentLimit = 200

// AuditTrail is the read-only slice of the audit recorder consumed by
// history views.
type AuditTrail interface {
	History(ctx context.Context, workflow, recordID string) ([]audit.Entry, error)
	Recent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// AuditHandler exposes the audit trail to workflow detail and dashboard
// views. All routes behind it require authentication.
type AuditHandler struct {
	trail AuditTrail
}

func NewAuditHandler(trail AuditTrail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

func (h *AuditHandler) Register(r chi.Router) {
	r.Get("/recent", h.handleRecent)
	r.Get("/{workflow}/{recordID}", h.handleHistory)
}

type entriesResponse struct {
	Entries []audit.Entry `json:"entries"`
}

func (h *AuditHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid limit"))
			return
		}
		limit = parsed
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	entries, err := h.trail.Recent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to query audit trail", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

func (h *AuditHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	workflow := chi.URLParam(r, "workflow")
	recordID := chi.URLParam(r, "recordID")
	if workflow == "" || recordID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "workflow and record id are required"))
		return
	}

	entries, err := h.trail.History(r.Context(), workflow, recordID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to query audit trail", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

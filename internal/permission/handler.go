package permission

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bcits/ticketdesk/internal/auth"
	"github.com/bcits/ticketdesk/internal/transport"
	"github.com/bcits/ticketdesk/pkg/logger"
)

type ServiceAPI interface {
	GetDefinitions() ([]DefinitionResponse, error)
	GetMatrix(accountID int64) (*MatrixResponse, error)
	BulkUpdate(ctx context.Context, actor *auth.User, dto BulkUpdateDTO) (*BulkUpdateResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) GetDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.Service.GetDefinitions()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to load permission definitions")
		return
	}

	h.WriteJSON(w, http.StatusOK, defs)
}

func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	matrix, err := h.Service.GetMatrix(user.AccountID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to load permission matrix")
		return
	}

	h.WriteJSON(w, http.StatusOK, matrix)
}

func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var dto BulkUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.BulkUpdate(r.Context(), user, dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("bulk permission update failed", "error", err, "actor_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to update permissions")
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

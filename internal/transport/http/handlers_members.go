package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	membermodels "gymdesk/internal/member/models"
	"gymdesk/internal/transport/http/shared"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/requestcontext"
)

// MemberService is the slice of the domain service the members handler
// needs.
type MemberService interface {
	CreateMember(ctx context.Context, name, contact string) (domain.MemberID, error)
	UpdateMember(ctx context.Context, id domain.MemberID, name, contact string) error
	GetMember(ctx context.Context, id domain.MemberID) (*membermodels.Member, error)
	GetAllMembers(ctx context.Context) ([]*membermodels.Member, error)
}

// MembersHandler handles the member registry endpoints.
type MembersHandler struct {
	svc    MemberService
	logger *slog.Logger
}

func NewMembersHandler(svc MemberService, logger *slog.Logger) *MembersHandler {
	return &MembersHandler{svc: svc, logger: logger}
}

// Register registers the member routes with the chi router.
func (h *MembersHandler) Register(r chi.Router) {
	r.Post("/members", h.handleCreate)
	r.Get("/members", h.handleList)
	r.Get("/members/{memberID}", h.handleGet)
	r.Put("/members/{memberID}", h.handleUpdate)
}

type memberRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (h *MembersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := h.svc.CreateMember(ctx, req.Name, req.Contact)
	if err != nil {
		h.logger.WarnContext(ctx, "create member failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]domain.MemberID{"member_id": id})
}

func (h *MembersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.svc.UpdateMember(ctx, id, req.Name, req.Contact); err != nil {
		h.logger.WarnContext(ctx, "update member failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MembersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	m, err := h.svc.GetMember(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, m)
}

func (h *MembersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.GetAllMembers(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if members == nil {
		members = []*membermodels.Member{}
	}
	shared.WriteJSON(w, http.StatusOK, members)
}

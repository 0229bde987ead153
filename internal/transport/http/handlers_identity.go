package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	identitymodels "gymdesk/internal/identity/models"
	"gymdesk/internal/transport/http/shared"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/requestcontext"
)

// IdentityService is the slice of the domain service the identity
// handler needs.
type IdentityService interface {
	GetCallerUserProfile(ctx context.Context) (*identitymodels.Profile, error)
	SaveCallerUserProfile(ctx context.Context, profile identitymodels.Profile) error
	GetUserProfile(ctx context.Context, target domain.Principal) (*identitymodels.Profile, error)
	GetCallerUserRole(ctx context.Context) (domain.Role, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	AssignCallerUserRole(ctx context.Context, target domain.Principal, role domain.Role) error
	LinkPrincipalToMember(ctx context.Context, target domain.Principal, memberID domain.MemberID) error
}

// IdentityHandler handles profile, role, and link endpoints.
type IdentityHandler struct {
	svc    IdentityService
	logger *slog.Logger
}

func NewIdentityHandler(svc IdentityService, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{svc: svc, logger: logger}
}

// Register registers the identity routes with the chi router.
func (h *IdentityHandler) Register(r chi.Router) {
	r.Get("/me/profile", h.handleGetOwnProfile)
	r.Put("/me/profile", h.handleSaveOwnProfile)
	r.Get("/me/role", h.handleGetOwnRole)

	r.Get("/users/{principal}/profile", h.handleGetProfileOf)
	r.Put("/users/{principal}/role", h.handleAssignRole)
	r.Put("/users/{principal}/member", h.handleLinkMember)
}

func (h *IdentityHandler) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetCallerUserProfile(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	// Encodes as null when no profile has been saved yet.
	shared.WriteJSON(w, http.StatusOK, profile)
}

func (h *IdentityHandler) handleSaveOwnProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var profile identitymodels.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.svc.SaveCallerUserProfile(ctx, profile); err != nil {
		h.logger.WarnContext(ctx, "save profile failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *IdentityHandler) handleGetOwnRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, err := h.svc.GetCallerUserRole(ctx)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	isAdmin, err := h.svc.IsCallerAdmin(ctx)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"role":     role,
		"is_admin": isAdmin,
	})
}

func (h *IdentityHandler) handleGetProfileOf(w http.ResponseWriter, r *http.Request) {
	target, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	profile, err := h.svc.GetUserProfile(r.Context(), target)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, profile)
}

func (h *IdentityHandler) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	target, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.svc.AssignCallerUserRole(ctx, target, role); err != nil {
		h.logger.WarnContext(ctx, "assign role failed",
			"error", err.Error(),
			"target", target.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *IdentityHandler) handleLinkMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	target, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req struct {
		MemberID int64 `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.svc.LinkPrincipalToMember(ctx, target, domain.MemberID(req.MemberID)); err != nil {
		h.logger.WarnContext(ctx, "link member failed",
			"error", err.Error(),
			"target", target.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

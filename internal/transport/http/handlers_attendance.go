package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	attendancemodels "gymdesk/internal/attendance/models"
	"gymdesk/internal/transport/http/shared"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/requestcontext"
)

// AttendanceService is the slice of the domain service the attendance
// handler needs.
type AttendanceService interface {
	CheckIn(ctx context.Context, memberID domain.MemberID) (domain.CheckInID, error)
	GetCheckInsForMember(ctx context.Context, memberID domain.MemberID) ([]*attendancemodels.CheckIn, error)
}

// AttendanceHandler handles the check-in ledger endpoints.
type AttendanceHandler struct {
	svc    AttendanceService
	logger *slog.Logger
}

func NewAttendanceHandler(svc AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, logger: logger}
}

// Register registers the attendance routes with the chi router.
func (h *AttendanceHandler) Register(r chi.Router) {
	r.Post("/members/{memberID}/checkins", h.handleCheckIn)
	r.Get("/members/{memberID}/checkins", h.handleList)
}

func (h *AttendanceHandler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	id, err := h.svc.CheckIn(ctx, memberID)
	if err != nil {
		h.logger.WarnContext(ctx, "check-in failed",
			"error", err.Error(),
			"member_id", memberID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]domain.CheckInID{"check_in_id": id})
}

func (h *AttendanceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	records, err := h.svc.GetCheckInsForMember(r.Context(), memberID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if records == nil {
		records = []*attendancemodels.CheckIn{}
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	paymentmodels "gymdesk/internal/payment/models"
	"gymdesk/internal/transport/http/shared"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/requestcontext"
)

// PaymentService is the slice of the domain service the payments handler
// needs.
type PaymentService interface {
	AddPayment(ctx context.Context, memberID domain.MemberID, amount float64, method, notes string) (domain.PaymentID, error)
	GetPaymentsForMember(ctx context.Context, memberID domain.MemberID) ([]*paymentmodels.Payment, error)
}

// PaymentsHandler handles the payment ledger endpoints.
type PaymentsHandler struct {
	svc    PaymentService
	logger *slog.Logger
}

func NewPaymentsHandler(svc PaymentService, logger *slog.Logger) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, logger: logger}
}

// Register registers the payment routes with the chi router.
func (h *PaymentsHandler) Register(r chi.Router) {
	r.Post("/members/{memberID}/payments", h.handleRecord)
	r.Get("/members/{memberID}/payments", h.handleList)
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}

func (h *PaymentsHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := h.svc.AddPayment(ctx, memberID, req.Amount, req.Method, req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "record payment failed",
			"error", err.Error(),
			"member_id", memberID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]domain.PaymentID{"payment_id": id})
}

func (h *PaymentsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	records, err := h.svc.GetPaymentsForMember(r.Context(), memberID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if records == nil {
		records = []*paymentmodels.Payment{}
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

package sandbox

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/store"
)

func validPaymentStatus(s model.PaymentStatus) bool {
	for _, v := range model.PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s *Server) listPayments(c *gin.Context) {
	q := listQuery(c, "transaction_code", "payment_method", "booking_id")
	q.Equal["payment_status"] = c.Query("payment_status")
	q.Equal["payment_method"] = c.Query("payment_method")
	q.Order = "payment_id DESC"

	items, total, err := store.List[model.Payment](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "payments")
		return
	}
	paginated(c, items, total, q)
}

// paymentSummary answers a bare object.
func (s *Server) paymentSummary(c *gin.Context) {
	summary, err := s.rentals.PaymentSummary(c.Request.Context())
	if err != nil {
		failErr(c, err, "payment summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) getPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := store.Get[model.Payment](c.Request.Context(), s.rentals, id)
	if err != nil {
		failErr(c, err, "Payment")
		return
	}
	wrapped(c, http.StatusOK, rec, "")
}

func (s *Server) updatePaymentStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		PaymentStatus model.PaymentStatus `json:"payment_status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !validPaymentStatus(req.PaymentStatus) {
		fail(c, http.StatusBadRequest, "Invalid payment status")
		return
	}
	rec, err := store.Update[model.Payment](c.Request.Context(), s.rentals, id, map[string]any{"payment_status": req.PaymentStatus})
	if err != nil {
		failErr(c, err, "Payment")
		return
	}
	wrapped(c, http.StatusOK, rec, "Payment status updated")
}

func (s *Server) refundPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		RefundAmount model.Money `json:"refund_amount" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	current, err := store.Get[model.Payment](ctx, s.rentals, id)
	if err != nil {
		failErr(c, err, "Payment")
		return
	}
	switch current.PaymentStatus {
	case model.PaymentCompleted, model.PaymentPartiallyRefunded:
	default:
		fail(c, http.StatusConflict, fmt.Sprintf("Payment in status %s cannot be refunded", current.PaymentStatus))
		return
	}
	amount := req.RefundAmount.Round()
	if amount > current.Refundable() {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Refund amount exceeds refundable balance of %s", current.Refundable()))
		return
	}

	rec, err := store.Update[model.Payment](ctx, s.rentals, id, map[string]any{
		"refund_amount":  (current.RefundAmount + amount).Round(),
		"payment_status": current.StatusAfterRefund(amount),
	})
	if err != nil {
		failErr(c, err, "Payment")
		return
	}
	wrapped(c, http.StatusOK, rec, "Refund processed")
}

package sandbox

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/store"
)

func validBookingStatus(s model.BookingStatus) bool {
	for _, v := range model.BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s *Server) listBookings(c *gin.Context) {
	q := listQuery(c, "customer_name", "booking_id", "customer_id", "vehicle_id")
	if status := c.Query("booking_status"); status != "" {
		q.Equal["booking_status"] = status
	}
	q.Where = append(q.Where, store.DateRangeCond("pickup_date", c.Query("pickup_from"), c.Query("pickup_to"))...)
	q.Order = "booking_id"

	items, total, err := store.List[model.Booking](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "bookings")
		return
	}
	paginated(c, items, total, q)
}

func (s *Server) getBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := store.Get[model.Booking](c.Request.Context(), s.rentals, id)
	if err != nil {
		failErr(c, err, "Booking")
		return
	}
	wrapped(c, http.StatusOK, rec, "")
}

func (s *Server) updateBookingStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		BookingStatus model.BookingStatus `json:"booking_status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !validBookingStatus(req.BookingStatus) {
		fail(c, http.StatusBadRequest, "Invalid booking status")
		return
	}
	rec, err := store.Update[model.Booking](c.Request.Context(), s.rentals, id, map[string]any{"booking_status": req.BookingStatus})
	if err != nil {
		failErr(c, err, "Booking")
		return
	}
	wrapped(c, http.StatusOK, rec, "Booking status updated")
}

// updateBookingTotals stores the final total as sent; the calculated total
// is owned by the backend and only validated against here.
func (s *Server) updateBookingTotals(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		DiscountAmount model.Money `json:"discount_amount" binding:"gte=0"`
		ExtraCharges   model.Money `json:"extra_charges" binding:"gte=0"`
		FinalTotal     model.Money `json:"final_total" binding:"gte=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	current, err := store.Get[model.Booking](ctx, s.rentals, id)
	if err != nil {
		failErr(c, err, "Booking")
		return
	}
	if _, err := model.FinalTotal(current.CalculatedTotal, req.DiscountAmount, req.ExtraCharges); err != nil {
		if errors.Is(err, model.ErrDiscountExceedsTotal) {
			fail(c, http.StatusBadRequest, "Discount cannot exceed the calculated total")
			return
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := store.Update[model.Booking](ctx, s.rentals, id, map[string]any{
		"discount_amount": req.DiscountAmount.Round(),
		"extra_charges":   req.ExtraCharges.Round(),
		"final_total":     req.FinalTotal.Round(),
	})
	if err != nil {
		failErr(c, err, "Booking")
		return
	}
	wrapped(c, http.StatusOK, rec, "Booking totals updated")
}

func (s *Server) cancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	current, err := store.Get[model.Booking](ctx, s.rentals, id)
	if err != nil {
		failErr(c, err, "Booking")
		return
	}
	if !current.Cancellable() {
		fail(c, http.StatusConflict, "Booking cannot be cancelled in status "+string(current.BookingStatus))
		return
	}
	rec, err := store.Update[model.Booking](ctx, s.rentals, id, map[string]any{
		"booking_status": model.BookingCancelled,
		"cancel_reason":  req.Reason,
	})
	if err != nil {
		failErr(c, err, "Booking")
		return
	}
	wrapped(c, http.StatusOK, rec, "Booking cancelled")
}

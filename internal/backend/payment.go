package backend

import (
	"context"
	"net/http"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Payment list filter keys.
const (
	PaymentFilterStatus = "payment_status"
	PaymentFilterMethod = "payment_method"
)

// PaymentClient talks to the payments endpoints.
type PaymentClient struct {
	base
}

func paymentTags(id int64) []querycache.Tag {
	return []querycache.Tag{
		querycache.T(TagPayment),
		querycache.ID(TagPayment, idString(id)),
		querycache.T(TagPaymentSummary),
	}
}

// ListRequest describes GET /payments.
func (c *PaymentClient) ListRequest(q restclient.Query) querycache.Request {
	return listRequest[model.Payment](c.base, "/payments", q, querycache.T(TagPayment))
}

// GetRequest describes GET /payments/{id}.
func (c *PaymentClient) GetRequest(id int64) querycache.Request {
	return oneRequest[model.Payment](c.base, "/payments/"+idString(id), querycache.ID(TagPayment, idString(id)))
}

// Get runs GetRequest through the cache.
func (c *PaymentClient) Get(ctx context.Context, id int64) (model.Payment, error) {
	return querycache.Get[model.Payment](ctx, c.cache, c.GetRequest(id))
}

// SummaryRequest describes GET /payments/summary.
func (c *PaymentClient) SummaryRequest() querycache.Request {
	return oneRequest[model.PaymentSummary](c.base, "/payments/summary", querycache.T(TagPaymentSummary), querycache.T(TagPayment))
}

// UpdateStatus changes the settlement status.
func (c *PaymentClient) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) (model.Payment, error) {
	return mutate[model.Payment](ctx, c.base, http.MethodPatch, "/payments/"+idString(id)+"/status",
		map[string]model.PaymentStatus{"payment_status": status}, paymentTags(id)...)
}

// Refund records a refund of amount against the payment.
func (c *PaymentClient) Refund(ctx context.Context, id int64, amount float64) (model.Payment, error) {
	return mutate[model.Payment](ctx, c.base, http.MethodPost, "/payments/"+idString(id)+"/refund",
		map[string]float64{"refund_amount": amount}, paymentTags(id)...)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"emeraldscents-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input order.CreateOrderInput
	if !decodeBody(w, r, &input) {
		return
	}

	o, auth, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := map[string]any{
		"orderId":     o.ID,
		"orderNumber": o.OrderNumber,
		"paymentRef":  o.PaymentRef,
		"total":       o.Total,
		"order":       o,
	}
	if auth != nil {
		resp["authorization_url"] = auth.AuthorizationURL
		resp["access_code"] = auth.AccessCode
		resp["reference"] = auth.Reference
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Track serves the public order-tracking page. No session is involved;
// the caller proves themselves with the order number and account email.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	o, err := h.svc.Track(r.Context(), q.Get("orderNumber"), q.Get("email"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orderNumber":    o.OrderNumber,
		"status":         o.Status,
		"total":          o.Total,
		"trackingNumber": o.TrackingNo,
		"createdAt":      o.CreatedAt,
		"items":          o.Items,
	})
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListByUser(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := &order.OrderFilterInput{}
	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}
	if s := q.Get("status"); s != "" {
		st := order.Status(s)
		filter.Status = &st
	}
	if raw := q.Get("dateFrom"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateFrom = &t
		}
	}
	if raw := q.Get("dateTo"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateTo = &t
		}
	}

	sort := &order.OrderSortInput{
		Field:     order.OrderSortFieldCreatedAt,
		Direction: "DESC",
	}
	if f := q.Get("sortBy"); f == string(order.OrderSortFieldTotal) {
		sort.Field = order.OrderSortFieldTotal
	}
	if d := q.Get("sortDir"); d == "ASC" {
		sort.Direction = "ASC"
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))

	orders, err := h.svc.List(r.Context(), filter, sort, limit, page)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

type updateStatusInput struct {
	Status         order.Status `json:"status"`
	TrackingNumber *string      `json:"trackingNumber"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input updateStatusInput
	if !decodeBody(w, r, &input) {
		return
	}

	err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), input.Status, input.TrackingNumber)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order updated"})
}

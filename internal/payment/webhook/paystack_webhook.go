package webhook

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/metrics"
	"emeraldscents-be/internal/order"
	"emeraldscents-be/internal/payment"

	"go.uber.org/zap"
)

// Handler consumes asynchronous payment confirmations from the provider
// and drives pending orders to PROCESSING.
type Handler struct {
	OrderSvc order.Service
	Gateway  payment.Gateway
	PayRepo  payment.Repository
	Metrics  *metrics.WebhookMetrics
}

func NewWebhookHandler(orderSvc order.Service, gateway payment.Gateway, payRepo payment.Repository) *Handler {
	return &Handler{
		OrderSvc: orderSvc,
		Gateway:  gateway,
		PayRepo:  payRepo,
		Metrics:  &metrics.WebhookMetrics{},
	}
}

func (h *Handler) PaymentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)
	timer := metrics.StartTimer()
	h.Metrics.Received.Inc()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}
	defer r.Body.Close()

	// Authenticity first: a tampered body must change nothing.
	sig := r.Header.Get("x-paystack-signature")
	if err := h.Gateway.VerifySignature(body, sig); err != nil {
		h.Metrics.Rejected.Inc()
		log.Warn("webhook signature mismatch", zap.String("ip", r.RemoteAddr))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid signature"})
		return
	}

	var event payment.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	// Only successful charges act; everything else is acknowledged so
	// the provider stops redelivering.
	if event.Event != payment.EventChargeSuccess {
		log.Debug("ignoring webhook event", zap.String("event", event.Event))
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	eventID := fmt.Sprintf("%d", event.Data.ID)
	if event.Data.ID == 0 {
		eventID = event.Event + ":" + event.Data.Reference
	}

	webhookID, isDuplicate, err := h.PayRepo.SaveWebhookEvent(
		ctx, payment.ProviderPaystack, eventID, event.Event, event.Data.Reference, body,
	)
	if err != nil {
		log.Error("failed to record webhook event", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to process webhook"})
		return
	}
	if isDuplicate {
		h.Metrics.Duplicate.Inc()
		log.Info("duplicate webhook event, skipping",
			zap.String("event_id", eventID),
			zap.String("reference", event.Data.Reference),
		)
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	applied, err := h.OrderSvc.MarkPaidByReference(ctx, event.Data.Reference)
	if err != nil {
		log.Error("failed to reconcile order",
			zap.String("reference", event.Data.Reference),
			zap.Error(err),
		)
		if markErr := h.PayRepo.MarkWebhookFailed(ctx, webhookID, err.Error()); markErr != nil {
			log.Error("failed to mark webhook failed", zap.Error(markErr))
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to process webhook"})
		return
	}

	if err := h.PayRepo.MarkWebhookProcessed(ctx, webhookID); err != nil {
		log.Error("failed to mark webhook processed", zap.Error(err))
	}

	if applied {
		h.Metrics.Processed.Inc()
		log.Info("order reconciled from webhook",
			zap.String("reference", event.Data.Reference),
			zap.Duration("took", timer.Duration()),
		)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"barbertime/internal/service"
)

type StripeWebhookHandler struct {
	StripeSecret string
	Payments     *service.PaymentService
}

func NewStripeWebhookHandler(stripeSecret string, payments *service.PaymentService) *StripeWebhookHandler {
	return &StripeWebhookHandler{StripeSecret: stripeSecret, Payments: payments}
}

// HandleWebhook settles deposit payments from Stripe events. Checkout
// completions mark the payment succeeded; refunds are matched back to their
// checkout session through the PaymentIntent.
func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("stripe: reading webhook body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.StripeSecret)
	if err != nil {
		log.Printf("stripe: webhook signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("stripe: parsing checkout.session: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			log.Printf("stripe: no session ID in checkout.session.completed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payment, err := h.Payments.MarkPaidBySessionID(r.Context(), sess.ID)
		if err != nil {
			log.Printf("stripe: marking session %s paid: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		log.Printf("stripe: deposit for booking %s paid", payment.BookingCode)

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			log.Printf("stripe: parsing charge: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
			sessionID, err := h.Payments.SessionIDByPaymentIntentID(charge.PaymentIntent.ID)
			if err != nil {
				log.Printf("stripe: no session found for PaymentIntent %s: %v", charge.PaymentIntent.ID, err)
				w.WriteHeader(http.StatusOK)
				return
			}
			if err := h.Payments.MarkRefundedBySessionID(r.Context(), sessionID); err != nil {
				log.Printf("stripe: marking session %s refunded: %v", sessionID, err)
			}
		}

	default:
		log.Printf("stripe: unhandled event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

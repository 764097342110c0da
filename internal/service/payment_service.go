package service

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/refund"

	"barbertime/internal/db"
	"barbertime/internal/repository"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusRefunded  = "refunded"
)

// PaymentService opens Stripe checkouts for booking deposits and records
// them locally. Deposits are optional; the service is only wired when a
// deposit percentage is configured.
type PaymentService struct {
	Repo           *repository.PaymentRepository
	depositPercent int
	successURL     string
	cancelURL      string
}

func NewPaymentService(repo *repository.PaymentRepository, secretKey string, depositPercent int, successURL, cancelURL string) *PaymentService {
	stripe.Key = secretKey
	return &PaymentService{
		Repo:           repo,
		depositPercent: depositPercent,
		successURL:     successURL,
		cancelURL:      cancelURL,
	}
}

// DepositCents computes the deposit owed on a booking value. The value is
// rounded to whole cents before the percentage is applied; prices like
// 19.99 are not exactly representable and truncation would drop a cent.
func (s *PaymentService) DepositCents(valor float64) int64 {
	return int64(math.Round(valor*100)) * int64(s.depositPercent) / 100
}

// CreateDepositCheckout opens a checkout session for a booking's deposit
// and records it as pending. Returns the hosted payment URL.
func (s *PaymentService) CreateDepositCheckout(ctx context.Context, bookingCode, description, customerEmail string, valor float64) (string, error) {
	amount := s.DepositCents(valor)
	if amount <= 0 {
		return "", nil
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("brl"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
		CustomerEmail: stripe.String(customerEmail),
	}
	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("creating checkout session for booking %s: %w", bookingCode, err)
	}

	payment := &db.Payment{
		BookingCode:     bookingCode,
		StripeSessionID: sess.ID,
		AmountCents:     amount,
		Status:          PaymentStatusPending,
	}
	if err := s.Repo.Create(ctx, payment); err != nil {
		return "", err
	}
	return sess.URL, nil
}

// MarkPaidBySessionID flips a recorded payment to succeeded and returns it.
func (s *PaymentService) MarkPaidBySessionID(ctx context.Context, sessionID string) (*db.Payment, error) {
	if err := s.Repo.UpdateStatusBySessionID(ctx, sessionID, PaymentStatusSucceeded); err != nil {
		return nil, err
	}
	return s.Repo.GetByStripeSessionID(ctx, sessionID)
}

// MarkRefundedBySessionID records a refund observed via webhook.
func (s *PaymentService) MarkRefundedBySessionID(ctx context.Context, sessionID string) error {
	return s.Repo.UpdateStatusBySessionID(ctx, sessionID, PaymentStatusRefunded)
}

// SessionIDByPaymentIntentID looks the checkout session up in Stripe from
// a PaymentIntent id (refund webhooks only carry the intent).
func (s *PaymentService) SessionIDByPaymentIntentID(paymentIntentID string) (string, error) {
	params := &stripe.CheckoutSessionListParams{
		PaymentIntent: &paymentIntentID,
	}
	params.Limit = stripe.Int64(1)
	it := session.List(params)
	for it.Next() {
		sess := it.CheckoutSession()
		if sess != nil && sess.ID != "" {
			return sess.ID, nil
		}
	}
	return "", fmt.Errorf("no session found for PaymentIntent %s", paymentIntentID)
}

// RefundBySessionID refunds the payment behind a checkout session.
func (s *PaymentService) RefundBySessionID(sessionID string) error {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return err
	}
	if sess.PaymentIntent == nil || sess.PaymentIntent.ID == "" {
		return fmt.Errorf("no PaymentIntent found for session %s", sessionID)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(sess.PaymentIntent.ID),
	}
	_, err = refund.New(params)
	return err
}

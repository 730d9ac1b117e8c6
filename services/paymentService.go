package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
)

// PaymentService owns payment-proof submissions and their resolution.
// A confirmation snapshots the amounts it was submitted with; resolving
// it approved closes the table's active bill.
type PaymentService struct {
	store    database.Store
	notifier Notifier
	bills    *TableBillService
	events   Events
}

func NewPaymentService(store database.Store, notifier Notifier, bills *TableBillService, events Events) *PaymentService {
	if events == nil {
		events = NopEvents{}
	}
	return &PaymentService{store: store, notifier: notifier, bills: bills, events: events}
}

// Submit records a customer's payment proof. Subtotal/tax/total are
// computed from the supplied items once, here: later edits to the live
// bill never change what this confirmation claims.
func (s *PaymentService) Submit(ctx context.Context, tenantID, tableNumber string,
	items []models.OrderItem, method, screenshotURL, orderID string) (models.PaymentConfirmation, error) {

	if tenantID == "" || tableNumber == "" {
		return models.PaymentConfirmation{}, fmt.Errorf("tenant and table are required: %w", ErrValidation)
	}
	if len(items) == 0 {
		return models.PaymentConfirmation{}, fmt.Errorf("no items to pay for: %w", ErrValidation)
	}
	if method != models.PaymentMethodBankTransfer && method != models.PaymentMethodMobileMoney {
		return models.PaymentConfirmation{}, fmt.Errorf("unknown payment method %q: %w", method, ErrValidation)
	}

	snapshot := make([]models.OrderItem, len(items))
	copy(snapshot, items)
	for i := range snapshot {
		snapshot[i].Total = snapshot[i].Price.Mul(snapshot[i].Quantity)
	}
	subtotal, tax, total := computeTotals(snapshot)

	conf := models.PaymentConfirmation{
		ID:             database.NewID(),
		Tenant_id:      tenantID,
		Table_number:   tableNumber,
		Items:          snapshot,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          total,
		Method:         method,
		Screenshot_url: screenshotURL,
		Status:         models.ConfirmationStatusPending,
		Order_id:       orderID,
		Timestamp:      time.Now().UTC(),
	}
	if _, err := s.store.Create(ctx, database.CollPaymentConfirmations, conf); err != nil {
		return models.PaymentConfirmation{}, fmt.Errorf("persist payment confirmation: %w", ErrDependency)
	}

	nctx := context.WithoutCancel(ctx)
	if err := s.notifier.SendPaymentRequest(nctx, conf); err != nil {
		log.Error().Err(err).Str("confirmation", conf.ID).Msg("payment verification notification failed")
	}
	s.events.Publish(tenantID, "payment_submitted", conf)
	return conf, nil
}

// ListPending returns a tenant's unresolved confirmations.
func (s *PaymentService) ListPending(ctx context.Context, tenantID string) ([]models.PaymentConfirmation, error) {
	var confs []models.PaymentConfirmation
	err := s.store.Query(ctx, database.CollPaymentConfirmations, map[string]any{
		"tenant_id": tenantID,
		"status":    models.ConfirmationStatusPending,
	}, &confs)
	if err != nil {
		return nil, fmt.Errorf("list payment confirmations: %w", ErrDependency)
	}
	return confs, nil
}

// Resolve settles a pending confirmation. Approval marks the table bill
// paid before the status flips; the status write is a compare-and-set on
// "pending", so a duplicate callback is a no-op ErrNotFound and the bill
// side effect is never re-applied (MarkPaid on a non-active bill is a
// no-op by contract).
func (s *PaymentService) Resolve(ctx context.Context, confirmationID string, approved bool) (models.PaymentConfirmation, error) {
	var conf models.PaymentConfirmation
	if err := s.store.Get(ctx, database.CollPaymentConfirmations, confirmationID, &conf); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.PaymentConfirmation{}, fmt.Errorf("payment confirmation %s: %w", confirmationID, ErrNotFound)
		}
		return models.PaymentConfirmation{}, fmt.Errorf("load payment confirmation: %w", ErrDependency)
	}
	if conf.Status != models.ConfirmationStatusPending {
		return models.PaymentConfirmation{}, fmt.Errorf("payment confirmation %s already %s: %w", confirmationID, conf.Status, ErrNotFound)
	}

	status := models.ConfirmationStatusRejected
	if approved {
		status = models.ConfirmationStatusApproved
		if err := s.bills.MarkPaid(ctx, conf.Tenant_id, conf.Table_number, conf.ID); err != nil {
			return models.PaymentConfirmation{}, fmt.Errorf("close table bill: %w", err)
		}
	}

	now := time.Now().UTC()
	matched, err := s.store.UpdateFieldsIf(ctx, database.CollPaymentConfirmations, conf.ID,
		map[string]any{"status": models.ConfirmationStatusPending},
		map[string]any{"status": status, "processed_at": now})
	if err != nil {
		return models.PaymentConfirmation{}, fmt.Errorf("update payment confirmation: %w", ErrDependency)
	}
	if !matched {
		return models.PaymentConfirmation{}, fmt.Errorf("payment confirmation %s resolved concurrently: %w", confirmationID, ErrNotFound)
	}

	conf.Status = status
	conf.Processed_at = &now
	s.events.Publish(conf.Tenant_id, "payment_resolved", conf)
	return conf, nil
}

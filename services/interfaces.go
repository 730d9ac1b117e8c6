package services

import (
	"context"

	"go-qrmenu-ordering/models"
)

// Notifier is the outbound messaging channel (Telegram in production).
// Every method is best-effort from the services' point of view: a send
// failure is logged and never rolls back a store write.
type Notifier interface {
	// SendPendingOrder posts the new-order card with approve/reject
	// buttons to the tenant's approver channel.
	SendPendingOrder(ctx context.Context, order models.PendingOrder) error

	// SendDepartmentOrder posts an approved order's partition to the
	// kitchen or bar channel with ready/delay buttons.
	SendDepartmentOrder(ctx context.Context, order models.Order, department string, items []models.OrderItem) error

	// SendPaymentRequest posts the payment-verification card with
	// accept/reject buttons to the tenant's approver channel.
	SendPaymentRequest(ctx context.Context, conf models.PaymentConfirmation) error

	// SendAdminText posts a plain message to the tenant's approver channel.
	SendAdminText(ctx context.Context, tenantID, text string) error

	// SendTextTo posts a plain message to an explicit chat, used to
	// confirm callback handling in the chat the button lives in.
	SendTextTo(ctx context.Context, chatID int64, text string) error

	// AnswerCallback resolves an inbound button press (stops the client's
	// loading indicator) with a short status string.
	AnswerCallback(ctx context.Context, callbackID, text string, urgent bool) error
}

// Events receives dashboard notifications. Implemented by the websocket
// hub; a nil-safe no-op is used in tests.
type Events interface {
	Publish(tenantID, event string, payload any)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) Publish(string, string, any) {}

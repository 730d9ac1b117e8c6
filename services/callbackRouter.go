package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/models"
)

// CallbackRouter turns inbound Telegram button presses into service calls.
// Actions are matched by case-sensitive prefix, in the order order →
// payment → department. Unknown actions are acknowledged as a no-op.
// Every branch answers the callback query and posts a human-readable
// confirmation (or error) to the chat the button lives in; internal
// errors never propagate out of Handle.
type CallbackRouter struct {
	orders   *OrderService
	payments *PaymentService
	notifier Notifier
}

func NewCallbackRouter(orders *OrderService, payments *PaymentService, notifier Notifier) *CallbackRouter {
	return &CallbackRouter{orders: orders, payments: payments, notifier: notifier}
}

// Handle dispatches one callback action. chatID is the chat the button
// message lives in; callbackID is the Telegram callback-query id used to
// stop the client's loading indicator.
func (r *CallbackRouter) Handle(ctx context.Context, action string, chatID int64, callbackID string) {
	switch {
	case strings.HasPrefix(action, "approve_order_"):
		r.approveOrder(ctx, strings.TrimPrefix(action, "approve_order_"), chatID, callbackID)
	case strings.HasPrefix(action, "reject_order_"):
		r.rejectOrder(ctx, strings.TrimPrefix(action, "reject_order_"), chatID, callbackID)
	case strings.HasPrefix(action, "approve_payment_"):
		r.resolvePayment(ctx, strings.TrimPrefix(action, "approve_payment_"), true, chatID, callbackID)
	case strings.HasPrefix(action, "reject_payment_"):
		r.resolvePayment(ctx, strings.TrimPrefix(action, "reject_payment_"), false, chatID, callbackID)
	case strings.HasPrefix(action, "ready_"), strings.HasPrefix(action, "delay_"):
		r.departmentStatus(ctx, action, chatID, callbackID)
	default:
		log.Debug().Str("action", action).Msg("ignoring unrecognized callback action")
		r.ack(ctx, callbackID, "", false)
	}
}

func (r *CallbackRouter) approveOrder(ctx context.Context, pendingID string, chatID int64, callbackID string) {
	order, err := r.orders.Approve(ctx, pendingID)
	switch {
	case err == nil:
		r.ack(ctx, callbackID, "Order approved!", false)
		r.say(ctx, chatID, fmt.Sprintf("✅ Order %s has been approved and sent to kitchen/bar!", shortID(order.ID)))
	case errors.Is(err, ErrNotFound):
		r.ack(ctx, callbackID, "Order already handled.", true)
		r.say(ctx, chatID, fmt.Sprintf("⚠️ Order %s was already approved or rejected.", shortID(pendingID)))
	case order.ID != "":
		// Approved but a later step failed; staff must know which part
		// went through.
		log.Error().Err(err).Str("order", order.ID).Msg("partial approval")
		r.ack(ctx, callbackID, "Approved, but billing failed!", true)
		r.say(ctx, chatID, fmt.Sprintf("⚠️ Order %s was approved but the table bill was NOT updated. Please retry or fix the bill manually.", shortID(order.ID)))
	default:
		log.Error().Err(err).Str("pending_order", pendingID).Msg("order approval failed")
		r.ack(ctx, callbackID, "Error processing order. Please try again.", true)
		r.say(ctx, chatID, fmt.Sprintf("❌ Could not approve order %s. Nothing was changed.", shortID(pendingID)))
	}
}

func (r *CallbackRouter) rejectOrder(ctx context.Context, pendingID string, chatID int64, callbackID string) {
	err := r.orders.Reject(ctx, pendingID)
	switch {
	case err == nil:
		r.ack(ctx, callbackID, "Order rejected!", false)
		r.say(ctx, chatID, fmt.Sprintf("❌ Order %s has been rejected.", shortID(pendingID)))
	case errors.Is(err, ErrNotFound):
		r.ack(ctx, callbackID, "Order already handled.", true)
		r.say(ctx, chatID, fmt.Sprintf("⚠️ Order %s was already approved or rejected.", shortID(pendingID)))
	default:
		log.Error().Err(err).Str("pending_order", pendingID).Msg("order rejection failed")
		r.ack(ctx, callbackID, "Error processing order. Please try again.", true)
	}
}

func (r *CallbackRouter) resolvePayment(ctx context.Context, confirmationID string, approved bool, chatID int64, callbackID string) {
	conf, err := r.payments.Resolve(ctx, confirmationID, approved)
	switch {
	case err == nil && approved:
		r.ack(ctx, callbackID, "Payment accepted!", false)
		r.say(ctx, chatID, fmt.Sprintf("✅ Payment for table %s accepted — bill closed.", conf.Table_number))
	case err == nil:
		r.ack(ctx, callbackID, "Payment rejected!", false)
		r.say(ctx, chatID, fmt.Sprintf("❌ Payment for table %s rejected.", conf.Table_number))
	case errors.Is(err, ErrNotFound):
		r.ack(ctx, callbackID, "Payment already handled.", true)
		r.say(ctx, chatID, fmt.Sprintf("⚠️ Payment %s was already resolved.", shortID(confirmationID)))
	default:
		log.Error().Err(err).Str("confirmation", confirmationID).Msg("payment resolution failed")
		r.ack(ctx, callbackID, "Error processing payment. Please try again.", true)
	}
}

// departmentStatus handles ready_<dept>_<orderID> / delay_<dept>_<orderID>.
// It only posts a confirmation message: the order's status stays staff
// driven.
func (r *CallbackRouter) departmentStatus(ctx context.Context, action string, chatID int64, callbackID string) {
	parts := strings.SplitN(action, "_", 3)
	if len(parts) != 3 {
		r.ack(ctx, callbackID, "", false)
		return
	}
	verb, dept, orderID := parts[0], parts[1], parts[2]
	deptName := "Kitchen"
	if dept == models.DepartmentBar {
		deptName = "Bar"
	}
	if verb == "ready" {
		r.ack(ctx, callbackID, "Marked as ready!", false)
		r.say(ctx, chatID, fmt.Sprintf("✅ %s marked order %s as READY!", deptName, shortID(orderID)))
	} else {
		r.ack(ctx, callbackID, "Delay reported!", false)
		r.say(ctx, chatID, fmt.Sprintf("⏰ %s reported delay for order %s", deptName, shortID(orderID)))
	}
}

func (r *CallbackRouter) ack(ctx context.Context, callbackID, text string, urgent bool) {
	if err := r.notifier.AnswerCallback(ctx, callbackID, text, urgent); err != nil {
		log.Error().Err(err).Str("callback", callbackID).Msg("callback acknowledgement failed")
	}
}

func (r *CallbackRouter) say(ctx context.Context, chatID int64, text string) {
	if err := r.notifier.SendTextTo(ctx, chatID, text); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("confirmation message failed")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

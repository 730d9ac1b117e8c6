package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/cart"
	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
	"go-qrmenu-ordering/money"
)

// OrderService owns the order lifecycle: cart submission into a pending
// order, the approve/reject transition with its department fan-out and
// table-bill merge, and staff-driven status changes afterwards.
type OrderService struct {
	store    database.Store
	notifier Notifier
	bills    *TableBillService
	events   Events
}

func NewOrderService(store database.Store, notifier Notifier, bills *TableBillService, events Events) *OrderService {
	if events == nil {
		events = NopEvents{}
	}
	return &OrderService{store: store, notifier: notifier, bills: bills, events: events}
}

// Submit turns the session cart into a persisted pending order and pings
// the approver channel. The notification is best-effort: the order stays
// visible on the dashboard whether or not the message went out.
func (s *OrderService) Submit(ctx context.Context, tenantID, tableNumber string, c *cart.Cart,
	info *models.CustomerInfo, paymentMethod, notes string) (models.PendingOrder, error) {

	if tenantID == "" || tableNumber == "" {
		return models.PendingOrder{}, fmt.Errorf("tenant and table are required: %w", ErrValidation)
	}
	if c == nil || c.TotalItems() == 0 {
		return models.PendingOrder{}, fmt.Errorf("cart is empty: %w", ErrValidation)
	}

	pending := models.PendingOrder{
		ID:             database.NewID(),
		Tenant_id:      tenantID,
		Table_number:   tableNumber,
		Items:          c.Items(),
		Total_amount:   c.TotalAmount(),
		Timestamp:      time.Now().UTC(),
		Customer_info:  info,
		Payment_method: paymentMethod,
		Notes:          notes,
	}
	if _, err := s.store.Create(ctx, database.CollPendingOrders, pending); err != nil {
		return models.PendingOrder{}, fmt.Errorf("persist pending order: %w", ErrDependency)
	}

	// The customer may navigate away before Telegram answers; the durable
	// state is committed, so the send runs detached from the request.
	nctx := context.WithoutCancel(ctx)
	if err := s.notifier.SendPendingOrder(nctx, pending); err != nil {
		log.Error().Err(err).Str("pending_order", pending.ID).Msg("approver notification failed")
	}
	s.events.Publish(tenantID, "pending_order_created", pending)
	return pending, nil
}

// ListPending returns a tenant's orders awaiting approval.
func (s *OrderService) ListPending(ctx context.Context, tenantID string) ([]models.PendingOrder, error) {
	var pending []models.PendingOrder
	err := s.store.Query(ctx, database.CollPendingOrders, map[string]any{"tenant_id": tenantID}, &pending)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", ErrDependency)
	}
	return pending, nil
}

// ListOrders returns a tenant's order history.
func (s *OrderService) ListOrders(ctx context.Context, tenantID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.store.Query(ctx, database.CollOrders, map[string]any{"tenant_id": tenantID}, &orders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", ErrDependency)
	}
	return orders, nil
}

// Approve consumes a pending order: it materializes the Order, merges the
// items into the table bill, writes the invoice record, fans the items out
// to kitchen/bar and deletes the pending order. The pending order id is
// stamped on the Order as an idempotency key, so a crashed or repeated
// approval never creates a second Order and never merges the bill twice.
// A second approve on an already-consumed id reports ErrNotFound.
func (s *OrderService) Approve(ctx context.Context, pendingOrderID string) (models.Order, error) {
	var pending models.PendingOrder
	if err := s.store.Get(ctx, database.CollPendingOrders, pendingOrderID, &pending); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.Order{}, fmt.Errorf("pending order %s already handled: %w", pendingOrderID, ErrNotFound)
		}
		return models.Order{}, fmt.Errorf("load pending order: %w", ErrDependency)
	}

	order, err := s.materializeOrder(ctx, pending)
	if err != nil {
		return models.Order{}, err
	}

	if !order.Billed {
		if err := s.bills.MergeItems(ctx, order.Tenant_id, order.Table_number, order.Items); err != nil {
			// The pending order is kept so staff can retry; the retry
			// will find this Order by its idempotency key and only redo
			// the merge.
			return order, fmt.Errorf("order %s approved but table bill not updated: %w", order.ID, err)
		}
		if err := s.store.UpdateFields(ctx, database.CollOrders, order.ID, map[string]any{"billed": true}); err != nil {
			log.Error().Err(err).Str("order", order.ID).Msg("failed to record billed flag")
		}
		order.Billed = true
	}

	if err := s.createInvoice(ctx, order); err != nil {
		log.Error().Err(err).Str("order", order.ID).Msg("invoice record not created")
	}

	nctx := context.WithoutCancel(ctx)
	s.notifyDepartments(nctx, order)
	s.bumpPopularity(nctx, order)

	if err := s.store.Delete(ctx, database.CollPendingOrders, pendingOrderID); err != nil && !errors.Is(err, database.ErrNotFound) {
		log.Error().Err(err).Str("pending_order", pendingOrderID).Msg("pending order not deleted after approval")
	}
	s.events.Publish(order.Tenant_id, "order_approved", order)
	return order, nil
}

// materializeOrder creates the Order copy of a pending order, or returns
// the Order a previous (crashed) approval already created for it.
func (s *OrderService) materializeOrder(ctx context.Context, pending models.PendingOrder) (models.Order, error) {
	var existing []models.Order
	if err := s.store.Query(ctx, database.CollOrders, map[string]any{"pending_order_id": pending.ID}, &existing); err != nil {
		return models.Order{}, fmt.Errorf("idempotency lookup: %w", ErrDependency)
	}
	if len(existing) > 0 {
		log.Warn().Str("pending_order", pending.ID).Str("order", existing[0].ID).
			Msg("approval retry: order already materialized")
		return existing[0], nil
	}

	now := time.Now().UTC()
	order := models.Order{
		ID:               database.NewID(),
		Tenant_id:        pending.Tenant_id,
		Table_number:     pending.Table_number,
		Items:            pending.Items,
		Total_amount:     pending.Total_amount,
		Timestamp:        now,
		Status:           models.OrderStatusApproved,
		Payment_status:   models.PaymentStatusPending,
		Pending_order_id: pending.ID,
		Billed:           false,
		Customer_info:    pending.Customer_info,
		Payment_method:   pending.Payment_method,
		Notes:            pending.Notes,
		Updated_at:       now,
	}
	if _, err := s.store.Create(ctx, database.CollOrders, order); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", ErrDependency)
	}
	return order, nil
}

// Reject discards a pending order. No Order, bill or department side
// effects. An already-consumed id reports ErrNotFound.
func (s *OrderService) Reject(ctx context.Context, pendingOrderID string) error {
	var pending models.PendingOrder
	if err := s.store.Get(ctx, database.CollPendingOrders, pendingOrderID, &pending); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("pending order %s already handled: %w", pendingOrderID, ErrNotFound)
		}
		return fmt.Errorf("load pending order: %w", ErrDependency)
	}
	if err := s.store.Delete(ctx, database.CollPendingOrders, pendingOrderID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("pending order %s already handled: %w", pendingOrderID, ErrNotFound)
		}
		return fmt.Errorf("delete pending order: %w", ErrDependency)
	}
	s.events.Publish(pending.Tenant_id, "order_rejected", pendingOrderID)
	return nil
}

// UpdateStatus is the staff-driven transition. It is deliberately
// permissive: the dashboard constrains the choices, the service does not
// enforce a transition graph beyond what staff already see.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	err := s.store.UpdateFields(ctx, database.CollOrders, orderID, map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update order status: %w", ErrDependency)
	}
	s.events.Publish("", "order_status_changed", map[string]string{"order_id": orderID, "status": status})
	return nil
}

// partitionByDepartment splits order items between kitchen and bar by the
// referenced menu item's department. An item whose menu record is missing
// or unavailable goes to the kitchen; every item lands in exactly one
// partition.
func (s *OrderService) partitionByDepartment(ctx context.Context, order models.Order) map[string][]models.OrderItem {
	parts := map[string][]models.OrderItem{
		models.DepartmentKitchen: nil,
		models.DepartmentBar:     nil,
	}
	for _, item := range order.Items {
		dept := models.DepartmentKitchen
		var mi models.MenuItem
		if err := s.store.Get(ctx, database.CollMenuItems, item.Item_id, &mi); err == nil && mi.Available && mi.Department == models.DepartmentBar {
			dept = models.DepartmentBar
		}
		parts[dept] = append(parts[dept], item)
	}
	return parts
}

func (s *OrderService) notifyDepartments(ctx context.Context, order models.Order) {
	parts := s.partitionByDepartment(ctx, order)
	for _, dept := range []string{models.DepartmentKitchen, models.DepartmentBar} {
		items := parts[dept]
		if len(items) == 0 {
			continue
		}
		if err := s.notifier.SendDepartmentOrder(ctx, order, dept, items); err != nil {
			log.Error().Err(err).Str("order", order.ID).Str("department", dept).
				Msg("department notification failed")
		}
	}
}

// bumpPopularity adds the approved quantities to the menu items' order
// counters. Pure analytics, best effort.
func (s *OrderService) bumpPopularity(ctx context.Context, order models.Order) {
	for _, item := range order.Items {
		if err := s.store.Increment(ctx, database.CollMenuItems, item.Item_id, "orders", int64(item.Quantity)); err != nil {
			log.Debug().Err(err).Str("menu_item", item.Item_id).Msg("popularity counter not bumped")
		}
	}
}

// createInvoice writes the per-order Bill record (1:1 with the approved
// order, status draft). Numbered INV-YYYYMMDD-NNNN per tenant and day.
func (s *OrderService) createInvoice(ctx context.Context, order models.Order) error {
	var dup []models.Bill
	if err := s.store.Query(ctx, database.CollBills, map[string]any{"order_id": order.ID}, &dup); err == nil && len(dup) > 0 {
		return nil
	}

	subtotal := order.Total_amount
	tax := money.Tax(subtotal)
	bill := models.Bill{
		ID:           database.NewID(),
		Bill_number:  s.nextBillNumber(ctx, order.Tenant_id),
		Order_id:     order.ID,
		Tenant_id:    order.Tenant_id,
		Table_number: order.Table_number,
		Items:        order.Items,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal + tax,
		Status:       models.InvoiceStatusDraft,
		Timestamp:    time.Now().UTC(),
	}
	if _, err := s.store.Create(ctx, database.CollBills, bill); err != nil {
		return fmt.Errorf("create invoice: %w", ErrDependency)
	}
	return nil
}

func (s *OrderService) nextBillNumber(ctx context.Context, tenantID string) string {
	date := time.Now().UTC().Format("20060102")
	prefix := fmt.Sprintf("INV-%s-", date)
	seq := 1
	var bills []models.Bill
	if err := s.store.Query(ctx, database.CollBills, map[string]any{"tenant_id": tenantID}, &bills); err == nil {
		for _, b := range bills {
			if strings.HasPrefix(b.Bill_number, prefix) {
				seq++
			}
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}

package models

import (
	"time"

	"go-qrmenu-ordering/money"
)

// Order status values. Staff may set any of these through the dashboard;
// the service layer only treats delivered/rejected/cancelled as terminal.
const (
	OrderStatusPendingApproval = "pending_approval"
	OrderStatusApproved        = "approved"
	OrderStatusPreparing       = "preparing"
	OrderStatusReady           = "ready"
	OrderStatusDelivered       = "delivered"
	OrderStatusCancelled       = "cancelled"
	OrderStatusRejected        = "rejected"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// OrderItem is a denormalized line item: the menu item's name and price are
// copied at order time so later menu edits never change historical orders.
// Total is always recomputed as price*quantity, never stored independently.
type OrderItem struct {
	Item_id  string      `bson:"id" json:"id" validate:"required"`
	Name     string      `bson:"name" json:"name" validate:"required"`
	Price    money.Cents `bson:"price" json:"price"`
	Quantity int         `bson:"quantity" json:"quantity" validate:"required,gt=0"`
	Total    money.Cents `bson:"total" json:"total"`
}

type CustomerInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// PendingOrder is the cart snapshot awaiting staff approval. It is removed
// from the pendingOrders collection entirely on approval or rejection; its
// content survives only by being copied into an Order.
type PendingOrder struct {
	ID             string        `bson:"_id" json:"id"`
	Tenant_id      string        `bson:"tenant_id" json:"tenant_id"`
	Table_number   string        `bson:"table_number" json:"table_number"`
	Items          []OrderItem   `bson:"items" json:"items"`
	Total_amount   money.Cents   `bson:"total_amount" json:"total_amount"`
	Timestamp      time.Time     `bson:"timestamp" json:"timestamp"`
	Customer_info  *CustomerInfo `bson:"customer_info,omitempty" json:"customer_info,omitempty"`
	Payment_method string        `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Order is the historical record created at approval time. Never deleted.
// Pending_order_id is the idempotency key: a retried approval finds the
// existing Order by it and skips re-creation. Billed records whether the
// order's items have been merged into the table bill.
type Order struct {
	ID               string        `bson:"_id" json:"id"`
	Tenant_id        string        `bson:"tenant_id" json:"tenant_id"`
	Table_number     string        `bson:"table_number" json:"table_number"`
	Items            []OrderItem   `bson:"items" json:"items"`
	Total_amount     money.Cents   `bson:"total_amount" json:"total_amount"`
	Timestamp        time.Time     `bson:"timestamp" json:"timestamp"`
	Status           string        `bson:"status" json:"status"`
	Payment_status   string        `bson:"payment_status" json:"payment_status"`
	Pending_order_id string        `bson:"pending_order_id" json:"pending_order_id"`
	Billed           bool          `bson:"billed" json:"billed"`
	Customer_info    *CustomerInfo `bson:"customer_info,omitempty" json:"customer_info,omitempty"`
	Payment_method   string        `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	Notes            string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Updated_at       time.Time     `bson:"updated_at" json:"updated_at"`
}

package models

import (
	"time"

	"go-qrmenu-ordering/money"
)

const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMobileMoney  = "mobile_money"
)

const (
	ConfirmationStatusPending  = "pending"
	ConfirmationStatusApproved = "approved"
	ConfirmationStatusRejected = "rejected"
)

// PaymentConfirmation is a customer's payment proof. Subtotal/tax/total are
// snapshotted at submission time: edits to the live table bill after the
// proof was sent never change what the customer claims to have paid.
type PaymentConfirmation struct {
	ID             string      `bson:"_id" json:"id"`
	Tenant_id      string      `bson:"tenant_id" json:"tenant_id"`
	Table_number   string      `bson:"table_number" json:"table_number"`
	Items          []OrderItem `bson:"items" json:"items"`
	Subtotal       money.Cents `bson:"subtotal" json:"subtotal"`
	Tax            money.Cents `bson:"tax" json:"tax"`
	Total          money.Cents `bson:"total" json:"total"`
	Method         string      `bson:"method" json:"method"`
	Screenshot_url string      `bson:"screenshot_url,omitempty" json:"screenshot_url,omitempty"`
	Status         string      `bson:"status" json:"status"`
	Order_id       string      `bson:"order_id,omitempty" json:"order_id,omitempty"`
	Timestamp      time.Time   `bson:"timestamp" json:"timestamp"`
	Processed_at   *time.Time  `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
}

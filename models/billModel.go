package models

import (
	"time"

	"go-qrmenu-ordering/money"
)

const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

// Bill is the per-order invoice record, created 1:1 with every approved
// Order for reporting and printing. Its lifecycle is independent of the
// table's running TableBill.
type Bill struct {
	ID           string      `bson:"_id" json:"id"`
	Bill_number  string      `bson:"bill_number" json:"bill_number"`
	Order_id     string      `bson:"order_id" json:"order_id"`
	Tenant_id    string      `bson:"tenant_id" json:"tenant_id"`
	Table_number string      `bson:"table_number" json:"table_number"`
	Items        []OrderItem `bson:"items" json:"items"`
	Subtotal     money.Cents `bson:"subtotal" json:"subtotal"`
	Tax          money.Cents `bson:"tax" json:"tax"`
	Total        money.Cents `bson:"total" json:"total"`
	Status       string      `bson:"status" json:"status"`
	Timestamp    time.Time   `bson:"timestamp" json:"timestamp"`
}

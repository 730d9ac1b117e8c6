package models

import (
	"time"

	"go-qrmenu-ordering/money"
)

const (
	BillStatusActive    = "active"
	BillStatusPaid      = "paid"
	BillStatusCancelled = "cancelled"
)

// TableBill is the running tab for one table. At most one active bill may
// exist per (tenant, table) at any time. Version is the optimistic
// concurrency token: every mutation re-reads, recomputes and writes back
// only if the version is unchanged.
type TableBill struct {
	ID                      string      `bson:"_id" json:"id"`
	Tenant_id               string      `bson:"tenant_id" json:"tenant_id"`
	Table_number            string      `bson:"table_number" json:"table_number"`
	Items                   []OrderItem `bson:"items" json:"items"`
	Subtotal                money.Cents `bson:"subtotal" json:"subtotal"`
	Tax                     money.Cents `bson:"tax" json:"tax"`
	Total                   money.Cents `bson:"total" json:"total"`
	Status                  string      `bson:"status" json:"status"`
	Version                 int64       `bson:"version" json:"version"`
	Payment_confirmation_id string      `bson:"payment_confirmation_id,omitempty" json:"payment_confirmation_id,omitempty"`
	Created_at              time.Time   `bson:"created_at" json:"created_at"`
	Updated_at              time.Time   `bson:"updated_at" json:"updated_at"`
}

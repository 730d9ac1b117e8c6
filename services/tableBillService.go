package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
	"go-qrmenu-ordering/money"
)

// billWriteAttempts bounds the optimistic-concurrency retry loop on a
// table bill before the conflict surfaces as a dependency failure.
const billWriteAttempts = 3

// TableBillService owns the per-table running ledger: merging approved
// order items into the active bill, recomputing totals and transitioning
// bill status. Mutations on the same (tenant, table) pair are serialized
// by a keyed mutex in-process and by the bill's version token across
// processes.
type TableBillService struct {
	store  database.Store
	events Events
	tables sync.Map // "tenant/table" -> *sync.Mutex
}

func NewTableBillService(store database.Store, events Events) *TableBillService {
	if events == nil {
		events = NopEvents{}
	}
	return &TableBillService{store: store, events: events}
}

func (s *TableBillService) tableLock(tenantID, tableNumber string) *sync.Mutex {
	key := tenantID + "/" + tableNumber
	mu, _ := s.tables.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// GetActiveBill returns the table's active bill, or nil when the table has
// no open tab. If duplicate active bills ever exist (possible only across
// processes without a unique index) the oldest one wins consistently.
func (s *TableBillService) GetActiveBill(ctx context.Context, tenantID, tableNumber string) (*models.TableBill, error) {
	var bills []models.TableBill
	err := s.store.Query(ctx, database.CollTableBills, map[string]any{
		"tenant_id":    tenantID,
		"table_number": tableNumber,
		"status":       models.BillStatusActive,
	}, &bills)
	if err != nil {
		return nil, fmt.Errorf("load active bill: %w", ErrDependency)
	}
	if len(bills) == 0 {
		return nil, nil
	}
	oldest := 0
	for i := range bills {
		if bills[i].Created_at.Before(bills[oldest].Created_at) {
			oldest = i
		}
	}
	return &bills[oldest], nil
}

// ListActiveBills returns every open tab for a tenant.
func (s *TableBillService) ListActiveBills(ctx context.Context, tenantID string) ([]models.TableBill, error) {
	var bills []models.TableBill
	err := s.store.Query(ctx, database.CollTableBills, map[string]any{
		"tenant_id": tenantID,
		"status":    models.BillStatusActive,
	}, &bills)
	if err != nil {
		return nil, fmt.Errorf("list active bills: %w", ErrDependency)
	}
	return bills, nil
}

// MergeItems folds order items into the table's active bill, creating one
// when the table has no open tab. Lines with the same menu item id merge
// by adding quantities and totals.
func (s *TableBillService) MergeItems(ctx context.Context, tenantID, tableNumber string, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	mu := s.tableLock(tenantID, tableNumber)
	mu.Lock()
	defer mu.Unlock()

	for attempt := 0; attempt < billWriteAttempts; attempt++ {
		bill, err := s.GetActiveBill(ctx, tenantID, tableNumber)
		if err != nil {
			return err
		}

		if bill == nil {
			now := time.Now().UTC()
			merged := mergeLines(nil, items)
			subtotal, tax, total := computeTotals(merged)
			newBill := models.TableBill{
				ID:           database.NewID(),
				Tenant_id:    tenantID,
				Table_number: tableNumber,
				Items:        merged,
				Subtotal:     subtotal,
				Tax:          tax,
				Total:        total,
				Status:       models.BillStatusActive,
				Version:      1,
				Created_at:   now,
				Updated_at:   now,
			}
			if _, err := s.store.Create(ctx, database.CollTableBills, newBill); err != nil {
				return fmt.Errorf("create table bill: %w", ErrDependency)
			}
			s.events.Publish(tenantID, "bill_updated", newBill)
			return nil
		}

		merged := mergeLines(bill.Items, items)
		subtotal, tax, total := computeTotals(merged)
		matched, err := s.store.UpdateFieldsIf(ctx, database.CollTableBills, bill.ID,
			map[string]any{"version": bill.Version},
			map[string]any{
				"items":      merged,
				"subtotal":   subtotal,
				"tax":        tax,
				"total":      total,
				"version":    bill.Version + 1,
				"updated_at": time.Now().UTC(),
			})
		if err != nil {
			return fmt.Errorf("write table bill: %w", ErrDependency)
		}
		if matched {
			s.events.Publish(tenantID, "bill_updated", bill.ID)
			return nil
		}
		log.Warn().Str("tenant", tenantID).Str("table", tableNumber).
			Int("attempt", attempt+1).Msg("table bill version race, retrying merge")
	}
	return fmt.Errorf("table bill merge for table %s lost the version race %d times: %w",
		tableNumber, billWriteAttempts, ErrDependency)
}

// RemoveItem drops a line from the active bill. Removing the last line
// cancels the bill outright so a zero-total tab never stays active.
// A table without an active bill is a no-op.
func (s *TableBillService) RemoveItem(ctx context.Context, tenantID, tableNumber, itemID string) error {
	mu := s.tableLock(tenantID, tableNumber)
	mu.Lock()
	defer mu.Unlock()

	for attempt := 0; attempt < billWriteAttempts; attempt++ {
		bill, err := s.GetActiveBill(ctx, tenantID, tableNumber)
		if err != nil {
			return err
		}
		if bill == nil {
			return nil
		}

		remaining := make([]models.OrderItem, 0, len(bill.Items))
		for _, it := range bill.Items {
			if it.Item_id != itemID {
				remaining = append(remaining, it)
			}
		}

		var fields map[string]any
		if len(remaining) == 0 {
			fields = map[string]any{
				"items":      []models.OrderItem{},
				"subtotal":   money.Cents(0),
				"tax":        money.Cents(0),
				"total":      money.Cents(0),
				"status":     models.BillStatusCancelled,
				"version":    bill.Version + 1,
				"updated_at": time.Now().UTC(),
			}
		} else {
			subtotal, tax, total := computeTotals(remaining)
			fields = map[string]any{
				"items":      remaining,
				"subtotal":   subtotal,
				"tax":        tax,
				"total":      total,
				"version":    bill.Version + 1,
				"updated_at": time.Now().UTC(),
			}
		}
		matched, err := s.store.UpdateFieldsIf(ctx, database.CollTableBills, bill.ID,
			map[string]any{"version": bill.Version}, fields)
		if err != nil {
			return fmt.Errorf("write table bill: %w", ErrDependency)
		}
		if matched {
			s.events.Publish(tenantID, "bill_updated", bill.ID)
			return nil
		}
	}
	return fmt.Errorf("table bill update for table %s lost the version race %d times: %w",
		tableNumber, billWriteAttempts, ErrDependency)
}

// MarkPaid closes the active bill. A table without an active bill is a
// silent no-op: staff may mark paid after the bill was already resolved
// through another path.
func (s *TableBillService) MarkPaid(ctx context.Context, tenantID, tableNumber, confirmationID string) error {
	mu := s.tableLock(tenantID, tableNumber)
	mu.Lock()
	defer mu.Unlock()

	bill, err := s.GetActiveBill(ctx, tenantID, tableNumber)
	if err != nil {
		return err
	}
	if bill == nil {
		return nil
	}
	fields := map[string]any{
		"status":     models.BillStatusPaid,
		"version":    bill.Version + 1,
		"updated_at": time.Now().UTC(),
	}
	if confirmationID != "" {
		fields["payment_confirmation_id"] = confirmationID
	}
	matched, err := s.store.UpdateFieldsIf(ctx, database.CollTableBills, bill.ID,
		map[string]any{"status": models.BillStatusActive}, fields)
	if err != nil {
		return fmt.Errorf("mark bill paid: %w", ErrDependency)
	}
	if matched {
		s.events.Publish(tenantID, "bill_paid", bill.ID)
	}
	return nil
}

// mergeLines folds incoming into a copy of existing, merging by menu item
// id: quantities and totals add, new items append.
func mergeLines(existing, incoming []models.OrderItem) []models.OrderItem {
	merged := make([]models.OrderItem, len(existing))
	copy(merged, existing)
	for _, in := range incoming {
		found := false
		for i := range merged {
			if merged[i].Item_id == in.Item_id {
				merged[i].Quantity += in.Quantity
				merged[i].Total += in.Total
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, in)
		}
	}
	return merged
}

// computeTotals derives the monetary triple from the line items. Tax is
// the only rounded value.
func computeTotals(items []models.OrderItem) (subtotal, tax, total money.Cents) {
	for _, it := range items {
		subtotal += it.Total
	}
	tax = money.Tax(subtotal)
	return subtotal, tax, subtotal + tax
}

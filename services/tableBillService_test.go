package services

import (
	"context"
	"testing"
	"time"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
	"go-qrmenu-ordering/money"
)

func line(id, name string, price money.Cents, qty int) models.OrderItem {
	return models.OrderItem{Item_id: id, Name: name, Price: price, Quantity: qty, Total: price.Mul(qty)}
}

func TestTableBillMergeCreatesBill(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	items := []models.OrderItem{
		line("m1", "Burger", 800, 2),
		line("m2", "Fries", 400, 1),
	}
	if err := svc.MergeItems(ctx, "t1", "5", items); err != nil {
		t.Fatalf("MergeItems: %v", err)
	}

	bill, err := svc.GetActiveBill(ctx, "t1", "5")
	if err != nil {
		t.Fatalf("GetActiveBill: %v", err)
	}
	if bill == nil {
		t.Fatal("expected an active bill")
	}
	if bill.Subtotal != 2000 || bill.Tax != 300 || bill.Total != 2300 {
		t.Errorf("totals = %v/%v/%v, want 2000/300/2300", bill.Subtotal, bill.Tax, bill.Total)
	}
	if bill.Status != models.BillStatusActive {
		t.Errorf("status = %q, want active", bill.Status)
	}
	if bill.Version != 1 {
		t.Errorf("version = %d, want 1", bill.Version)
	}
}

func TestTableBillMergeIntoExisting(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	// Bill at 20.00 subtotal, 3.00 tax, 23.00 total.
	if err := svc.MergeItems(ctx, "t1", "5", []models.OrderItem{line("m1", "Burger", 2000, 1)}); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	// A second approved order for 10.00.
	if err := svc.MergeItems(ctx, "t1", "5", []models.OrderItem{line("m2", "Juice", 1000, 1)}); err != nil {
		t.Fatalf("second merge: %v", err)
	}

	bill, err := svc.GetActiveBill(ctx, "t1", "5")
	if err != nil || bill == nil {
		t.Fatalf("GetActiveBill: bill=%v err=%v", bill, err)
	}
	if bill.Subtotal != 3000 || bill.Tax != 450 || bill.Total != 3450 {
		t.Errorf("totals = %v/%v/%v, want 3000/450/3450", bill.Subtotal, bill.Tax, bill.Total)
	}
	if len(bill.Items) != 2 {
		t.Fatalf("items = %d, want 2 (merged by item id)", len(bill.Items))
	}
	if bill.Version != 2 {
		t.Errorf("version = %d, want 2", bill.Version)
	}
	if store.count(database.CollTableBills) != 1 {
		t.Errorf("bills in store = %d, want 1", store.count(database.CollTableBills))
	}
}

func TestTableBillMergeSameItemAddsQuantity(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	if err := svc.MergeItems(ctx, "t1", "2", []models.OrderItem{line("m1", "Burger", 800, 1)}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := svc.MergeItems(ctx, "t1", "2", []models.OrderItem{line("m1", "Burger", 800, 2)}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	bill, _ := svc.GetActiveBill(ctx, "t1", "2")
	if len(bill.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(bill.Items))
	}
	if bill.Items[0].Quantity != 3 || bill.Items[0].Total != 2400 {
		t.Errorf("line = qty %d total %v, want qty 3 total 2400", bill.Items[0].Quantity, bill.Items[0].Total)
	}
}

func TestTableBillMergeRetriesOnVersionRace(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	if err := svc.MergeItems(ctx, "t1", "7", []models.OrderItem{line("m1", "Burger", 800, 1)}); err != nil {
		t.Fatalf("seed merge: %v", err)
	}

	// A writer in another process merges its own item between our read and
	// our conditional write, exactly once.
	raced := false
	store.beforeCAS = func(collection, id string) {
		if raced || collection != database.CollTableBills {
			return
		}
		raced = true
		store.mu.Lock()
		defer store.mu.Unlock()
		doc := store.coll(database.CollTableBills)[id]
		doc["version"] = doc["version"].(float64) + 1
		items := doc["items"].([]any)
		// Amounts are stored in the JSON decimal shape.
		doc["items"] = append(items, map[string]any{
			"id": "m9", "name": "Soup", "price": 5.0, "quantity": 1.0, "total": 5.0,
		})
	}

	if err := svc.MergeItems(ctx, "t1", "7", []models.OrderItem{line("m2", "Juice", 1000, 1)}); err != nil {
		t.Fatalf("racing merge: %v", err)
	}

	bill, _ := svc.GetActiveBill(ctx, "t1", "7")
	if len(bill.Items) != 3 {
		t.Fatalf("items = %d, want 3 (no lost update)", len(bill.Items))
	}
	if bill.Subtotal != 800+500+1000 {
		t.Errorf("subtotal = %v, want 2300", bill.Subtotal)
	}
}

func TestTableBillRemoveLastItemCancels(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	if err := svc.MergeItems(ctx, "t1", "3", []models.OrderItem{line("m1", "Burger", 800, 1)}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := svc.RemoveItem(ctx, "t1", "3", "m1"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	bill, err := svc.GetActiveBill(ctx, "t1", "3")
	if err != nil {
		t.Fatalf("GetActiveBill: %v", err)
	}
	if bill != nil {
		t.Fatal("bill still active after last item removed")
	}
	var all []models.TableBill
	if err := store.Query(ctx, database.CollTableBills, map[string]any{"table_number": "3"}, &all); err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 1 || all[0].Status != models.BillStatusCancelled {
		t.Fatalf("bill = %+v, want status cancelled", all)
	}
	if all[0].Subtotal != 0 || all[0].Tax != 0 || all[0].Total != 0 {
		t.Errorf("cancelled bill keeps totals: %v/%v/%v", all[0].Subtotal, all[0].Tax, all[0].Total)
	}
}

func TestTableBillRemoveItemRecomputes(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	items := []models.OrderItem{
		line("m1", "Burger", 800, 2),
		line("m2", "Juice", 1000, 1),
	}
	if err := svc.MergeItems(ctx, "t1", "4", items); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := svc.RemoveItem(ctx, "t1", "4", "m2"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	bill, _ := svc.GetActiveBill(ctx, "t1", "4")
	if bill == nil {
		t.Fatal("bill should stay active with one line left")
	}
	if bill.Subtotal != 1600 || bill.Tax != 240 || bill.Total != 1840 {
		t.Errorf("totals = %v/%v/%v, want 1600/240/1840", bill.Subtotal, bill.Tax, bill.Total)
	}
}

func TestTableBillRemoveItemNoBillIsNoop(t *testing.T) {
	svc := NewTableBillService(newMemStore(), nil)
	if err := svc.RemoveItem(context.Background(), "t1", "99", "m1"); err != nil {
		t.Fatalf("RemoveItem on missing bill: %v", err)
	}
}

func TestTableBillMarkPaid(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	if err := svc.MergeItems(ctx, "t1", "6", []models.OrderItem{line("m1", "Burger", 800, 1)}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := svc.MarkPaid(ctx, "t1", "6", "conf-1"); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	if bill, _ := svc.GetActiveBill(ctx, "t1", "6"); bill != nil {
		t.Fatal("bill still active after MarkPaid")
	}
	var all []models.TableBill
	store.Query(ctx, database.CollTableBills, map[string]any{"table_number": "6"}, &all)
	if len(all) != 1 || all[0].Status != models.BillStatusPaid {
		t.Fatalf("bill = %+v, want status paid", all)
	}
	if all[0].Payment_confirmation_id != "conf-1" {
		t.Errorf("payment_confirmation_id = %q, want conf-1", all[0].Payment_confirmation_id)
	}

	// Paying an already-closed table is a silent no-op.
	if err := svc.MarkPaid(ctx, "t1", "6", "conf-2"); err != nil {
		t.Fatalf("second MarkPaid: %v", err)
	}
}

func TestGetActiveBillOldestWins(t *testing.T) {
	store := newMemStore()
	svc := NewTableBillService(store, nil)
	ctx := context.Background()

	older := models.TableBill{
		ID: database.NewID(), Tenant_id: "t1", Table_number: "8",
		Status: models.BillStatusActive, Version: 1,
		Created_at: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := older
	newer.ID = database.NewID()
	newer.Created_at = older.Created_at.Add(time.Hour)
	if _, err := store.Create(ctx, database.CollTableBills, older); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, database.CollTableBills, newer); err != nil {
		t.Fatal(err)
	}

	bill, err := svc.GetActiveBill(ctx, "t1", "8")
	if err != nil || bill == nil {
		t.Fatalf("GetActiveBill: bill=%v err=%v", bill, err)
	}
	if bill.ID != older.ID {
		t.Errorf("picked bill %s, want oldest %s", bill.ID, older.ID)
	}
}

func TestComputeTotalsRounding(t *testing.T) {
	cases := []struct {
		subtotal money.Cents
		tax      money.Cents
	}{
		{2000, 300},
		{1000, 150},
		{1001, 150}, // 150.15 raw, rounds down
		{1003, 150}, // 150.45 raw, rounds down
		{1005, 151}, // 150.75 raw, rounds up
		{3, 0},      // 0.45 raw, rounds down
		{4, 1},      // 0.60 raw, rounds up
	}
	for _, tc := range cases {
		_, tax, total := computeTotals([]models.OrderItem{{Item_id: "x", Total: tc.subtotal}})
		if tax != tc.tax {
			t.Errorf("Tax(%d) = %d, want %d", tc.subtotal, tax, tc.tax)
		}
		if total != tc.subtotal+tc.tax {
			t.Errorf("total(%d) = %d, want %d", tc.subtotal, total, tc.subtotal+tc.tax)
		}
	}
}

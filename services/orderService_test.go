package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-qrmenu-ordering/cart"
	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
	"go-qrmenu-ordering/money"
)

func seedMenuItem(t *testing.T, store *memStore, id, department string, price money.Cents) {
	t.Helper()
	item := models.MenuItem{
		ID: id, Tenant_id: "t1", Name: "Item " + id, Price: price,
		Category: "c1", Department: department, Available: true,
	}
	if _, err := store.Create(context.Background(), database.CollMenuItems, item); err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
}

func orderFixture(store *memStore, notifier Notifier) (*OrderService, *TableBillService) {
	bills := NewTableBillService(store, nil)
	return NewOrderService(store, notifier, bills, nil), bills
}

func fullCart(items ...models.OrderItem) *cart.Cart {
	c := cart.New()
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			c.Add(it.Item_id, it.Name, it.Price)
		}
	}
	return c
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _ := orderFixture(newMemStore(), &fakeNotifier{})

	_, err := svc.Submit(context.Background(), "t1", "5", cart.New(), nil, "", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestSubmitCreatesPendingOrder(t *testing.T) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	svc, _ := orderFixture(store, notifier)
	ctx := context.Background()

	c := fullCart(line("m1", "Burger", 800, 2))
	pending, err := svc.Submit(ctx, "t1", "5", c, &models.CustomerInfo{Name: "Ada"}, models.PaymentMethodMobileMoney, "no onions")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if pending.Total_amount != 1600 {
		t.Errorf("total = %v, want 1600", pending.Total_amount)
	}
	if store.count(database.CollPendingOrders) != 1 {
		t.Errorf("pending orders = %d, want 1", store.count(database.CollPendingOrders))
	}
	if len(notifier.pendingOrders) != 1 || notifier.pendingOrders[0].ID != pending.ID {
		t.Errorf("approver channel not notified: %+v", notifier.pendingOrders)
	}
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	store := newMemStore()
	notifier := &fakeNotifier{sendErr: errors.New("telegram down")}
	svc, _ := orderFixture(store, notifier)

	_, err := svc.Submit(context.Background(), "t1", "5", fullCart(line("m1", "Burger", 800, 1)), nil, "", "")
	if err != nil {
		t.Fatalf("Submit should not fail on a notification error: %v", err)
	}
	if store.count(database.CollPendingOrders) != 1 {
		t.Error("pending order not persisted")
	}
}

func TestApproveOrder(t *testing.T) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	svc, bills := orderFixture(store, notifier)
	ctx := context.Background()
	seedMenuItem(t, store, "m1", models.DepartmentKitchen, 800)
	seedMenuItem(t, store, "m2", models.DepartmentBar, 500)

	pending, err := svc.Submit(ctx, "t1", "5", fullCart(
		line("m1", "Burger", 800, 1),
		line("m2", "Beer", 500, 2),
	), nil, "", "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	order, err := svc.Approve(ctx, pending.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if order.Status != models.OrderStatusApproved {
		t.Errorf("status = %q, want approved", order.Status)
	}
	if order.Pending_order_id != pending.ID {
		t.Errorf("pending_order_id = %q, want %q", order.Pending_order_id, pending.ID)
	}
	if !order.Billed {
		t.Error("order not marked billed")
	}
	if store.count(database.CollPendingOrders) != 0 {
		t.Error("pending order not consumed")
	}

	bill, _ := bills.GetActiveBill(ctx, "t1", "5")
	if bill == nil {
		t.Fatal("no active bill after approval")
	}
	if bill.Subtotal != 1800 {
		t.Errorf("bill subtotal = %v, want 1800", bill.Subtotal)
	}

	// One invoice, numbered per tenant and day.
	var invoices []models.Bill
	store.Query(ctx, database.CollBills, map[string]any{"order_id": order.ID}, &invoices)
	if len(invoices) != 1 {
		t.Fatalf("invoices = %d, want 1", len(invoices))
	}
	if !strings.HasPrefix(invoices[0].Bill_number, "INV-") || !strings.HasSuffix(invoices[0].Bill_number, "-0001") {
		t.Errorf("bill number = %q", invoices[0].Bill_number)
	}

	// Kitchen and bar each get their partition, in that order.
	if len(notifier.deptSends) != 2 {
		t.Fatalf("department sends = %d, want 2", len(notifier.deptSends))
	}
	if notifier.deptSends[0].department != models.DepartmentKitchen || len(notifier.deptSends[0].items) != 1 {
		t.Errorf("kitchen send = %+v", notifier.deptSends[0])
	}
	if notifier.deptSends[1].department != models.DepartmentBar || len(notifier.deptSends[1].items) != 1 {
		t.Errorf("bar send = %+v", notifier.deptSends[1])
	}
}

func TestApproveUnknownMenuItemGoesToKitchen(t *testing.T) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	svc, _ := orderFixture(store, notifier)
	ctx := context.Background()

	pending, _ := svc.Submit(ctx, "t1", "5", fullCart(line("ghost", "Off-menu special", 700, 1)), nil, "", "")
	if _, err := svc.Approve(ctx, pending.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if len(notifier.deptSends) != 1 || notifier.deptSends[0].department != models.DepartmentKitchen {
		t.Fatalf("sends = %+v, want a single kitchen send", notifier.deptSends)
	}
}

func TestApproveTwiceIsNotFound(t *testing.T) {
	store := newMemStore()
	svc, bills := orderFixture(store, &fakeNotifier{})
	ctx := context.Background()

	pending, _ := svc.Submit(ctx, "t1", "5", fullCart(line("m1", "Burger", 800, 1)), nil, "", "")
	if _, err := svc.Approve(ctx, pending.ID); err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	if _, err := svc.Approve(ctx, pending.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Approve err = %v, want ErrNotFound", err)
	}
	if store.count(database.CollOrders) != 1 {
		t.Errorf("orders = %d, want 1", store.count(database.CollOrders))
	}
	bill, _ := bills.GetActiveBill(ctx, "t1", "5")
	if bill.Subtotal != 800 {
		t.Errorf("bill subtotal = %v, want 800 (merged exactly once)", bill.Subtotal)
	}
}

func TestApproveRetryAfterBillFailure(t *testing.T) {
	store := newMemStore()
	svc, bills := orderFixture(store, &fakeNotifier{})
	ctx := context.Background()

	pending, _ := svc.Submit(ctx, "t1", "5", fullCart(line("m1", "Burger", 800, 1)), nil, "", "")

	store.failOps["create:"+database.CollTableBills] = errors.New("mongo down")
	order, err := svc.Approve(ctx, pending.ID)
	if err == nil {
		t.Fatal("Approve should report the failed bill merge")
	}
	if order.ID == "" {
		t.Fatal("partial approval must still return the created order")
	}
	if store.count(database.CollPendingOrders) != 1 {
		t.Fatal("pending order must be kept for the retry")
	}

	// Retry once the store recovers: same order, one merge.
	delete(store.failOps, "create:"+database.CollTableBills)
	retried, err := svc.Approve(ctx, pending.ID)
	if err != nil {
		t.Fatalf("retry Approve: %v", err)
	}
	if retried.ID != order.ID {
		t.Errorf("retry created a second order: %s vs %s", retried.ID, order.ID)
	}
	if store.count(database.CollOrders) != 1 {
		t.Errorf("orders = %d, want 1", store.count(database.CollOrders))
	}
	bill, _ := bills.GetActiveBill(ctx, "t1", "5")
	if bill == nil || bill.Subtotal != 800 {
		t.Fatalf("bill = %+v, want subtotal 800 merged exactly once", bill)
	}
	if store.count(database.CollPendingOrders) != 0 {
		t.Error("pending order not consumed after successful retry")
	}
}

func TestRejectOrder(t *testing.T) {
	store := newMemStore()
	svc, bills := orderFixture(store, &fakeNotifier{})
	ctx := context.Background()

	pending, _ := svc.Submit(ctx, "t1", "5", fullCart(line("m1", "Burger", 800, 1)), nil, "", "")
	if err := svc.Reject(ctx, pending.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if store.count(database.CollPendingOrders) != 0 {
		t.Error("pending order not removed")
	}
	if store.count(database.CollOrders) != 0 {
		t.Error("reject must not create an order")
	}
	if bill, _ := bills.GetActiveBill(ctx, "t1", "5"); bill != nil {
		t.Error("reject must not touch the table bill")
	}
	if err := svc.Reject(ctx, pending.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Reject err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := newMemStore()
	svc, _ := orderFixture(store, &fakeNotifier{})
	ctx := context.Background()

	pending, _ := svc.Submit(ctx, "t1", "5", fullCart(line("m1", "Burger", 800, 1)), nil, "", "")
	order, _ := svc.Approve(ctx, pending.ID)

	for _, status := range []string{models.OrderStatusPreparing, models.OrderStatusReady, models.OrderStatusDelivered} {
		if err := svc.UpdateStatus(ctx, order.ID, status); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
	}
	var got models.Order
	if err := store.Get(ctx, database.CollOrders, order.ID, &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OrderStatusDelivered {
		t.Errorf("status = %q, want delivered", got.Status)
	}

	if err := svc.UpdateStatus(ctx, "missing", models.OrderStatusReady); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInvoiceNumbersIncrement(t *testing.T) {
	store := newMemStore()
	svc, _ := orderFixture(store, &fakeNotifier{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		pending, _ := svc.Submit(ctx, "t1", "5", fullCart(line("m1", "Burger", 800, 1)), nil, "", "")
		if _, err := svc.Approve(ctx, pending.ID); err != nil {
			t.Fatalf("Approve: %v", err)
		}
	}

	var invoices []models.Bill
	store.Query(ctx, database.CollBills, map[string]any{"tenant_id": "t1"}, &invoices)
	if len(invoices) != 2 {
		t.Fatalf("invoices = %d, want 2", len(invoices))
	}
	nums := map[string]bool{}
	for _, inv := range invoices {
		nums[inv.Bill_number] = true
	}
	if len(nums) != 2 {
		t.Errorf("bill numbers not unique: %v", nums)
	}
}

package telegram

import (
	"strings"
	"testing"
	"time"

	"go-qrmenu-ordering/models"
)

func TestFormatPendingOrder(t *testing.T) {
	order := models.PendingOrder{
		ID: "abc", Table_number: "9",
		Items: []models.OrderItem{
			{Item_id: "m1", Name: "Burger", Price: 800, Quantity: 2, Total: 1600},
			{Item_id: "m2", Name: "Juice", Price: 500, Quantity: 1, Total: 500},
		},
		Total_amount: 2100,
		Timestamp:    time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	text := formatPendingOrder(order)
	for _, want := range []string{"Table 9", "Burger x2 - $16.00", "Juice x1 - $5.00", "Total: $21.00", "2025-03-01 12:30"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestFormatPaymentRequest(t *testing.T) {
	conf := models.PaymentConfirmation{
		Table_number: "3", Total: 1840,
		Method:    models.PaymentMethodBankTransfer,
		Timestamp: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	text := formatPaymentRequest(conf)
	for _, want := range []string{"Table 3", "$18.40", "Bank Transfer"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}

	conf.Method = models.PaymentMethodMobileMoney
	if !strings.Contains(formatPaymentRequest(conf), "Mobile Money") {
		t.Error("mobile money method name not rendered")
	}
}

func TestFormatDepartmentOrder(t *testing.T) {
	order := models.Order{ID: "0123456789abcdef", Table_number: "4", Timestamp: time.Now()}
	items := []models.OrderItem{{Item_id: "m1", Name: "Mojito", Quantity: 2}}

	text := formatDepartmentOrder(order, models.DepartmentBar, items)
	for _, want := range []string{"Bar Order", "Table 4", "Mojito x2", "01234567"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "0123456789abcdef") {
		t.Error("order id should be shortened")
	}

	if !strings.Contains(formatDepartmentOrder(order, models.DepartmentKitchen, items), "Kitchen Order") {
		t.Error("kitchen heading not rendered")
	}
}

func TestServiceTexts(t *testing.T) {
	if !strings.Contains(WaiterCallText("7"), "Table 7") {
		t.Error("waiter call text missing table")
	}
	if !strings.Contains(BillRequestText("7"), "Table 7") {
		t.Error("bill request text missing table")
	}
}

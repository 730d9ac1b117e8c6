package telegram

import (
	"fmt"
	"strings"

	"go-qrmenu-ordering/models"
)

const timeLayout = "2006-01-02 15:04"

func formatPendingOrder(order models.PendingOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ <b>New Order Pending Approval - Table %s</b>\n\n", order.Table_number)
	for _, it := range order.Items {
		fmt.Fprintf(&b, "• %s x%d - $%s\n", it.Name, it.Quantity, it.Total)
	}
	fmt.Fprintf(&b, "\n💰 <b>Total: $%s</b>\n", order.Total_amount)
	fmt.Fprintf(&b, "🕐 <b>Time:</b> %s\n\n", order.Timestamp.Format(timeLayout))
	b.WriteString("⚠️ <b>Awaiting approval...</b>")
	return b.String()
}

func formatDepartmentOrder(order models.Order, department string, items []models.OrderItem) string {
	emoji, name := "👨‍🍳", "Kitchen"
	if department == models.DepartmentBar {
		emoji, name = "🍹", "Bar"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s Order - Table %s</b>\n\n", emoji, name, order.Table_number)
	for _, it := range items {
		fmt.Fprintf(&b, "• %s x%d\n", it.Name, it.Quantity)
	}
	fmt.Fprintf(&b, "\n🕐 <b>Time:</b> %s\n", order.Timestamp.Format(timeLayout))
	fmt.Fprintf(&b, "📋 <b>Order ID:</b> %s\n\n", shortID(order.ID))
	b.WriteString("<b>Status: APPROVED - Start Preparation</b>")
	return b.String()
}

func formatPaymentRequest(conf models.PaymentConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💳 <b>Payment Verification Needed - Table %s</b>\n\n", conf.Table_number)
	fmt.Fprintf(&b, "💰 <b>Amount: $%s</b>\n", conf.Total)
	fmt.Fprintf(&b, "💳 <b>Method:</b> %s\n", methodName(conf.Method))
	fmt.Fprintf(&b, "🕐 <b>Time:</b> %s", conf.Timestamp.Format(timeLayout))
	return b.String()
}

func formatPaymentCaption(conf models.PaymentConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💳 <b>Payment Confirmation - Table %s</b>\n\n", conf.Table_number)
	for _, it := range conf.Items {
		fmt.Fprintf(&b, "• %s x%d - $%s\n", it.Name, it.Quantity, it.Total)
	}
	fmt.Fprintf(&b, "\n💰 <b>Total: $%s</b>\n", conf.Total)
	fmt.Fprintf(&b, "💳 <b>Method:</b> %s\n\n", methodName(conf.Method))
	b.WriteString("📸 <b>Payment Screenshot Attached</b>")
	return b.String()
}

// WaiterCallText and BillRequestText are the table-service pings sent to
// the approver channel.
func WaiterCallText(tableNumber string) string {
	return fmt.Sprintf("📞 <b>Table %s is calling the waiter</b>", tableNumber)
}

func BillRequestText(tableNumber string) string {
	return fmt.Sprintf("💸 <b>Table %s is requesting the bill</b>", tableNumber)
}

func methodName(method string) string {
	if method == models.PaymentMethodBankTransfer {
		return "Bank Transfer"
	}
	return "Mobile Money"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

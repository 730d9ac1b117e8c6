// Package telegram is the notification-channel adapter: formatted HTML
// messages with inline action buttons pushed to per-tenant chats, and the
// answerCallbackQuery half of the button round trip.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
)

const defaultAPIBase = "https://api.telegram.org"

// Channels are the three chats a tenant's notifications go to.
type Channels struct {
	Admin   int64
	Kitchen int64
	Bar     int64
}

// Bot talks to the Telegram Bot API. Per-tenant chat ids come from the
// restaurantSettings collection, falling back to the platform defaults;
// nothing is hardcoded.
type Bot struct {
	token    string
	apiBase  string
	defaults Channels
	store    database.Store
	client   *http.Client
}

func NewBot(token string, defaults Channels, store database.Store) *Bot {
	return &Bot{
		token:    token,
		apiBase:  defaultAPIBase,
		defaults: defaults,
		store:    store,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewBotWithBase is used by tests to point the adapter at a stub server.
func NewBotWithBase(token, apiBase string, defaults Channels, store database.Store) *Bot {
	b := NewBot(token, defaults, store)
	b.apiBase = apiBase
	return b
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (b *Bot) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	url := fmt.Sprintf("%s/bot%s/%s", b.apiBase, b.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !out.OK {
		return fmt.Errorf("telegram %s: %s", method, out.Description)
	}
	return nil
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string, buttons [][]inlineButton) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if len(buttons) > 0 {
		payload["reply_markup"] = map[string]any{"inline_keyboard": buttons}
	}
	return b.call(ctx, "sendMessage", payload)
}

// SendPhoto forwards an image reference (URL) with a caption.
func (b *Bot) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	return b.call(ctx, "sendPhoto", map[string]any{
		"chat_id":    chatID,
		"photo":      photoURL,
		"caption":    caption,
		"parse_mode": "HTML",
	})
}

// AnswerCallback resolves a button press; urgent shows an alert popup
// instead of a toast.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID, text string, urgent bool) error {
	return b.call(ctx, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
		"text":              text,
		"show_alert":        urgent,
	})
}

// SendTextTo posts a plain message to an explicit chat.
func (b *Bot) SendTextTo(ctx context.Context, chatID int64, text string) error {
	return b.sendMessage(ctx, chatID, text, nil)
}

// SendAdminText posts a plain message to the tenant's approver channel.
func (b *Bot) SendAdminText(ctx context.Context, tenantID, text string) error {
	return b.sendMessage(ctx, b.channelsFor(ctx, tenantID).Admin, text, nil)
}

// SendPendingOrder posts the new-order card with approve/reject buttons.
func (b *Bot) SendPendingOrder(ctx context.Context, order models.PendingOrder) error {
	text := formatPendingOrder(order)
	buttons := [][]inlineButton{{
		{Text: "✅ Approve Order", CallbackData: "approve_order_" + order.ID},
		{Text: "❌ Reject Order", CallbackData: "reject_order_" + order.ID},
	}}
	return b.sendMessage(ctx, b.channelsFor(ctx, order.Tenant_id).Admin, text, buttons)
}

// SendDepartmentOrder posts an approved order's items to the kitchen or
// bar channel with ready/delay buttons.
func (b *Bot) SendDepartmentOrder(ctx context.Context, order models.Order, department string, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	ch := b.channelsFor(ctx, order.Tenant_id)
	chatID := ch.Kitchen
	if department == models.DepartmentBar {
		chatID = ch.Bar
	}
	text := formatDepartmentOrder(order, department, items)
	buttons := [][]inlineButton{{
		{Text: "✅ Ready", CallbackData: fmt.Sprintf("ready_%s_%s", department, order.ID)},
		{Text: "⏰ Delay", CallbackData: fmt.Sprintf("delay_%s_%s", department, order.ID)},
	}}
	return b.sendMessage(ctx, chatID, text, buttons)
}

// SendPaymentRequest posts the payment-verification card, forwarding the
// proof screenshot first when one was attached.
func (b *Bot) SendPaymentRequest(ctx context.Context, conf models.PaymentConfirmation) error {
	admin := b.channelsFor(ctx, conf.Tenant_id).Admin
	if conf.Screenshot_url != "" {
		if err := b.SendPhoto(ctx, admin, conf.Screenshot_url, formatPaymentCaption(conf)); err != nil {
			log.Warn().Err(err).Str("confirmation", conf.ID).Msg("payment screenshot not forwarded")
		}
	}
	buttons := [][]inlineButton{{
		{Text: "✅ Accept Payment", CallbackData: "approve_payment_" + conf.ID},
		{Text: "❌ Reject Payment", CallbackData: "reject_payment_" + conf.ID},
	}}
	return b.sendMessage(ctx, admin, formatPaymentRequest(conf), buttons)
}

// channelsFor resolves the tenant's chats from restaurantSettings,
// falling back to the platform defaults per channel.
func (b *Bot) channelsFor(ctx context.Context, tenantID string) Channels {
	ch := b.defaults
	if b.store == nil || tenantID == "" {
		return ch
	}
	var settings []models.RestaurantSettings
	if err := b.store.Query(ctx, database.CollRestaurantSettings, map[string]any{"tenant_id": tenantID}, &settings); err != nil || len(settings) == 0 {
		return ch
	}
	s := settings[0]
	if s.Admin_chat_id != 0 {
		ch.Admin = s.Admin_chat_id
	}
	if s.Kitchen_chat_id != 0 {
		ch.Kitchen = s.Kitchen_chat_id
	}
	if s.Bar_chat_id != 0 {
		ch.Bar = s.Bar_chat_id
	}
	return ch
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// telegramUpdate is the slice of the Bot API update we act on; everything
// else in the payload is ignored.
type telegramUpdate struct {
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message *struct {
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

// TelegramWebhook receives Bot API updates and dispatches button presses
// to the callback router. Always answers 200 so Telegram does not retry;
// updates without a callback_query are acknowledged and dropped.
func TelegramWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Any("panic", rec).Msg("webhook handler panicked")
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
			}
		}()

		ctx, cancel := requestContext()
		defer cancel()

		// ShouldBindJSON, not BindJSON: a malformed update must still be
		// answered 200 or Telegram keeps retrying it.
		var update telegramUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		if update.CallbackQuery == nil || update.CallbackQuery.Data == "" {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		var chatID int64
		if update.CallbackQuery.Message != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
		callbackRtr.Handle(ctx, update.CallbackQuery.Data, chatID, update.CallbackQuery.ID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// WebhookMethodGuard rejects anything but POST on the webhook path.
func WebhookMethodGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	}
}

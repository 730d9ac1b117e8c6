package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/config"
	"go-qrmenu-ordering/controllers"
	"go-qrmenu-ordering/database"
	middleware "go-qrmenu-ordering/middleware"
	routes "go-qrmenu-ordering/routes"
	"go-qrmenu-ordering/services"
	"go-qrmenu-ordering/telegram"
	"go-qrmenu-ordering/ws"
)

func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	initLogger()
	cfg := config.Load()

	client := database.DBinstance()
	store := database.NewMongoStore(database.OpenDatabase(client))

	hub := ws.NewHub()
	bot := telegram.NewBot(cfg.BotToken, telegram.Channels{
		Admin:   cfg.AdminChatID,
		Kitchen: cfg.KitchenChatID,
		Bar:     cfg.BarChatID,
	}, store)

	billSvc := services.NewTableBillService(store, hub)
	orderSvc := services.NewOrderService(store, bot, billSvc, hub)
	paymentSvc := services.NewPaymentService(store, bot, billSvc, hub)
	callbacks := services.NewCallbackRouter(orderSvc, paymentSvc, bot)

	controllers.Init(controllers.Deps{
		Store:     store,
		Orders:    orderSvc,
		Bills:     billSvc,
		Payments:  paymentSvc,
		Callbacks: callbacks,
		Bot:       bot,
		Hub:       hub,
	})

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface: QR-page menu, carts, payment proof, service pings
	// and the Telegram webhook.
	routes.MenuRoutes(router)
	routes.CartRoutes(router)
	routes.PaymentRoutes(router)
	routes.ServiceRoutes(router)
	routes.WebhookRoutes(router)

	// Staff surface behind token auth.
	router.Use(middleware.Authentication())
	routes.MenuAdminRoutes(router)
	routes.OrderRoutes(router)
	routes.BillRoutes(router)
	routes.PaymentAdminRoutes(router)
	routes.SettingsRoutes(router)
	routes.DashboardRoutes(router)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

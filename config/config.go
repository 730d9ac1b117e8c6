package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the environment-driven service configuration. Secrets and
// chat ids are never hardcoded; per-tenant chat ids in restaurantSettings
// override the defaults here.
type Config struct {
	Port             string
	MongoURL         string
	MongoDatabase    string
	JWTSecret        string
	BotToken         string
	AdminChatID      int64
	KitchenChatID    int64
	BarChatID        int64
	CORSAllowOrigins []string
}

// Load reads .env (when present) and the environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Msg("no .env file, using process environment")
	}
	return Config{
		Port:             getenv("PORT", "8000"),
		MongoURL:         getenv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDatabase:    getenv("MONGODB_DATABASE", "qrmenu"),
		JWTSecret:        getenv("SECRET_KEY", ""),
		BotToken:         getenv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID:      getenvInt64("TELEGRAM_ADMIN_CHAT_ID"),
		KitchenChatID:    getenvInt64("TELEGRAM_KITCHEN_CHAT_ID"),
		BarChatID:        getenvInt64("TELEGRAM_BAR_CHAT_ID"),
		CORSAllowOrigins: []string{getenv("FRONTEND_ORIGIN", "http://localhost:5173")},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string) int64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-numeric chat id")
		return 0
	}
	return n
}

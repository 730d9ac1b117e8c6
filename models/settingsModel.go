package models

import "time"

// RestaurantSettings carries per-tenant configuration. Telegram chat ids
// override the platform defaults from the environment when non-zero.
type RestaurantSettings struct {
	ID               string    `bson:"_id" json:"id"`
	Tenant_id        string    `bson:"tenant_id" json:"tenant_id" validate:"required"`
	Business_name    string    `bson:"business_name" json:"business_name"`
	Number_of_tables int       `bson:"number_of_tables" json:"number_of_tables"`
	Currency         string    `bson:"currency" json:"currency"`
	Admin_chat_id    int64     `bson:"admin_chat_id" json:"admin_chat_id"`
	Kitchen_chat_id  int64     `bson:"kitchen_chat_id" json:"kitchen_chat_id"`
	Bar_chat_id      int64     `bson:"bar_chat_id" json:"bar_chat_id"`
	Updated_at       time.Time `bson:"updated_at" json:"updated_at"`
}

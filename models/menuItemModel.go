package models

import (
	"time"

	"go-qrmenu-ordering/money"
)

const (
	DepartmentKitchen = "kitchen"
	DepartmentBar     = "bar"
)

type MenuItem struct {
	ID               string      `bson:"_id" json:"id"`
	Tenant_id        string      `bson:"tenant_id" json:"tenant_id" validate:"required"`
	Name             string      `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description      string      `bson:"description" json:"description"`
	Price            money.Cents `bson:"price" json:"price" validate:"required"`
	Photo            string      `bson:"photo" json:"photo"`
	Category         string      `bson:"category" json:"category" validate:"required"`
	Department       string      `bson:"department" json:"department" validate:"required,eq=kitchen|eq=bar"`
	Available        bool        `bson:"available" json:"available"`
	Preparation_time int         `bson:"preparation_time" json:"preparation_time"`
	Ingredients      string      `bson:"ingredients" json:"ingredients"`
	Allergens        string      `bson:"allergens" json:"allergens"`
	Popularity_score int         `bson:"popularity_score" json:"popularity_score"`
	Views            int64       `bson:"views" json:"views"`
	Orders           int64       `bson:"orders" json:"orders"`
	Created_at       time.Time   `bson:"created_at" json:"created_at"`
	Updated_at       time.Time   `bson:"updated_at" json:"updated_at"`
}

type Category struct {
	ID         string    `bson:"_id" json:"id"`
	Tenant_id  string    `bson:"tenant_id" json:"tenant_id" validate:"required"`
	Name       string    `bson:"name" json:"name" validate:"required,min=1,max=60"`
	Order      int       `bson:"order" json:"order"`
	Created_at time.Time `bson:"created_at" json:"created_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ShopOn  = "on"
	ShopOff = "off"
)

type ShopLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Shop struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopName      string             `bson:"shopName" json:"shopName"`
	Location      ShopLocation       `bson:"location" json:"location"`
	DeliveryRange int                `bson:"deliveryRange" json:"deliveryRange"`
	DairyInfo     string             `bson:"dairyInfo,omitempty" json:"dairyInfo,omitempty"`
	ShopOwner     primitive.ObjectID `bson:"shopOwner" json:"shopOwner"`
	ShopStatus    string             `bson:"shopStatus" json:"shopStatus"`
	ShopPhoto     []string           `bson:"shopPhoto,omitempty" json:"shopPhoto,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ShopUpdate lists the fields a seller may change on their shop. Nil means
// leave the stored value alone.
type ShopUpdate struct {
	ShopName      *string       `json:"shopName"`
	Location      *ShopLocation `json:"location"`
	DeliveryRange *int          `json:"deliveryRange"`
	DairyInfo     *string       `json:"dairyInfo"`
	ShopPhoto     []string      `json:"shopPhoto"`
	ShopStatus    *string       `json:"shopStatus"`
}

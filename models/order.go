package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"

	DefaultPaymentMethod = "Cash on Delivery"
)

var OrderStatuses = []string{
	StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled,
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether an order in this status accepts no further
// transition.
func TerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// DeliveryLocation is a GeoJSON point plus the human-readable address. It is
// written once at placement and never mutated.
type DeliveryLocation struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
	Address     string    `bson:"address" json:"address"`
	PlaceID     string    `bson:"placeId" json:"placeId"`
}

type StatusChange struct {
	Status    string             `bson:"status" json:"status"`
	ChangedAt time.Time          `bson:"changedAt" json:"changedAt"`
	ChangedBy primitive.ObjectID `bson:"changedBy" json:"changedBy"`
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User             primitive.ObjectID `bson:"user" json:"user"`
	Shop             primitive.ObjectID `bson:"shop" json:"shop"`
	Product          primitive.ObjectID `bson:"product" json:"product"`
	Quantity         int                `bson:"quantity" json:"quantity"`
	PricePerUnit     float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	TotalPrice       float64            `bson:"totalPrice" json:"totalPrice"`
	Status           string             `bson:"status" json:"status"`
	PaymentMethod    string             `bson:"paymentMethod" json:"paymentMethod"`
	DeliveryLocation DeliveryLocation   `bson:"deliveryLocation" json:"deliveryLocation"`
	StatusHistory    []StatusChange     `bson:"statusHistory" json:"statusHistory"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ShopSummary is the projection joined into order reads.
type ShopSummary struct {
	ID        primitive.ObjectID `json:"_id"`
	ShopName  string             `json:"shopName"`
	ShopPhoto []string           `json:"shopPhoto"`
}

// OrderView is an order joined with the buyer, product and shop summaries
// returned by the order read endpoints.
type OrderView struct {
	ID               primitive.ObjectID `json:"_id"`
	Status           string             `json:"status"`
	Quantity         int                `json:"quantity"`
	PricePerUnit     float64            `json:"pricePerUnit"`
	TotalPrice       float64            `json:"totalPrice"`
	PaymentMethod    string             `json:"paymentMethod"`
	CreatedAt        time.Time          `json:"createdAt"`
	DeliveryLocation DeliveryLocation   `json:"deliveryLocation"`
	Product          ProductSummary     `json:"product"`
	Shop             ShopSummary        `json:"shop"`
	UserDetails      UserSummary        `json:"userDetails"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Images    []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ShopRatingSummary aggregates every rating on the shop owner's products.
type ShopRatingSummary struct {
	ShopID             primitive.ObjectID `json:"shopId"`
	Owner              string             `json:"owner"`
	TotalRatedProducts int                `json:"totalRatedProducts"`
	TotalRatings       int                `json:"totalRatings"`
	AverageRating      float64            `json:"averageRating"`
}

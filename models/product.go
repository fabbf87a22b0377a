package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InStock    = "in stock"
	OutOfStock = "out of stock"
)

var Categories = []string{"Milk", "Cheese", "Butter", "Yogurt", "Cream", "Other"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SellerUser  primitive.ObjectID `bson:"sellerUser" json:"sellerUser"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    string             `bson:"quantity" json:"quantity"` // availability label, not a count
	Category    string             `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Stock       *int               `bson:"stock,omitempty" json:"stock,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TracksStock reports whether orders against this product are gated by an
// inventory count.
func (p *Product) TracksStock() bool {
	return p.Stock != nil
}

// ProductUpdate lists the fields the owning seller may change.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *string  `json:"quantity"`
	Category    *string  `json:"category"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock"`
}

// ProductSummary is the projection joined into order reads.
type ProductSummary struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   string             `json:"name"`
	Price  float64            `json:"price"`
	Images []string           `json:"images"`
}

// Package store is the persistence boundary. Services speak to these
// interfaces; Mongo backs them in production and an in-memory implementation
// backs the tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/models"
)

// ErrNotFound is returned by every lookup that matches no document.
var ErrNotFound = errors.New("not found")

type Users interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindByIdentifier matches email, userName or phoneNumber.
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	IdentifierTaken(ctx context.Context, email, userName, phoneNumber string) (bool, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]models.User, error)
}

type Shops interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Shop, error)
	FindByLocation(ctx context.Context, location models.ShopLocation) (*models.Shop, error)
	Insert(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error
	All(ctx context.Context) ([]models.Shop, error)
}

type Products interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// FindOneBySeller matches a product only when it is owned by seller, so a
	// foreign product is indistinguishable from a missing one.
	FindOneBySeller(ctx context.Context, id, seller primitive.ObjectID) (*models.Product, error)
	FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock applies stock -= quantity only if stock >= quantity,
	// checked and applied as one operation. Returns false when the guard
	// fails or the product does not track stock.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
}

type Orders interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindOneByBuyer(ctx context.Context, id, buyer primitive.ObjectID) (*models.Order, error)
	FindByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error)
	FindByProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error)
	Insert(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
}

type Ratings interface {
	FindOneByProductAndUser(ctx context.Context, product, user primitive.ObjectID) (*models.Rating, error)
	FindByProduct(ctx context.Context, product primitive.ObjectID) ([]models.Rating, error)
	FindByUser(ctx context.Context, user primitive.ObjectID) ([]models.Rating, error)
	FindByProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Rating, error)
	Insert(ctx context.Context, rating *models.Rating) error
}

// Store bundles the per-entity stores behind one wiring point.
type Store struct {
	Users    Users
	Shops    Shops
	Products Products
	Orders   Orders
	Ratings  Ratings
}

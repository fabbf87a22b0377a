package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
)

type RatingService struct {
	store *store.Store
}

func NewRatingService(st *store.Store) *RatingService {
	return &RatingService{store: st}
}

type CreateRatingRequest struct {
	Product string   `json:"product"`
	Rating  int      `json:"rating"`
	Comment string   `json:"comment"`
	Images  []string `json:"images"`
}

// CreateRating records one rating per (product, user) pair.
func (s *RatingService) CreateRating(ctx context.Context, user primitive.ObjectID, req CreateRatingRequest) (*models.Rating, error) {
	if req.Product == "" {
		return nil, apperr.Invalid("Product is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Invalid("Rating must be between 1 and 5")
	}

	productID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}

	if _, err := s.store.Ratings.FindOneByProductAndUser(ctx, productID, user); err == nil {
		return nil, apperr.Conflict("You already rated this product.")
	} else if err != store.ErrNotFound {
		return nil, fmt.Errorf("find rating: %w", err)
	}

	rating := &models.Rating{
		Product: productID,
		User:    user,
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  req.Images,
	}
	if err := s.store.Ratings.Insert(ctx, rating); err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	return rating, nil
}

func (s *RatingService) GetRatingsForProduct(ctx context.Context, productID string) ([]models.Rating, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}
	ratings, err := s.store.Ratings.FindByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	return ratings, nil
}

func (s *RatingService) GetRatingsByUser(ctx context.Context, user primitive.ObjectID) ([]models.Rating, error) {
	ratings, err := s.store.Ratings.FindByUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	return ratings, nil
}

// RatedProduct pairs a rating with the product it was left on.
type RatedProduct struct {
	Product models.Product `json:"product"`
	Rating  int            `json:"rating"`
	Comment string         `json:"comment,omitempty"`
	Images  []string       `json:"images,omitempty"`
	RatedAt time.Time      `json:"ratedAt"`
}

// GetUserRatedProducts lists the caller's ratings joined with the rated
// products, skipping ratings whose product has been deleted.
func (s *RatingService) GetUserRatedProducts(ctx context.Context, user primitive.ObjectID) ([]RatedProduct, error) {
	ratings, err := s.store.Ratings.FindByUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}

	var rated []RatedProduct
	for _, rating := range ratings {
		product, err := s.store.Products.FindByID(ctx, rating.Product)
		if err != nil {
			continue
		}
		rated = append(rated, RatedProduct{
			Product: *product,
			Rating:  rating.Rating,
			Comment: rating.Comment,
			Images:  rating.Images,
			RatedAt: rating.CreatedAt,
		})
	}

	if len(rated) == 0 {
		return nil, apperr.NotFound("No products rated by this user.")
	}
	return rated, nil
}

// AverageRatingForShop resolves shop -> owner -> owner's products -> their
// ratings and reports the aggregate with the mean rounded to two decimals.
// A shop whose products carry no ratings gets an all-zero summary, not an
// error.
func (s *RatingService) AverageRatingForShop(ctx context.Context, shopID string) (*models.ShopRatingSummary, error) {
	id, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil, apperr.Invalid("Invalid shop ID")
	}

	shop, err := s.store.Shops.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("find shop: %w", err)
	}

	owner, err := s.store.Users.FindByID(ctx, shop.ShopOwner)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop owner not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}

	products, err := s.store.Products.FindBySeller(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("No products found for this shop owner.")
	}

	productIDs := make([]primitive.ObjectID, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	ratings, err := s.store.Ratings.FindByProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}

	summary := &models.ShopRatingSummary{
		ShopID: shop.ID,
		Owner:  owner.UserName,
	}
	if len(ratings) == 0 {
		return summary, nil
	}

	total := decimal.Zero
	ratedProducts := map[primitive.ObjectID]struct{}{}
	for _, rating := range ratings {
		total = total.Add(decimal.NewFromInt(int64(rating.Rating)))
		ratedProducts[rating.Product] = struct{}{}
	}
	average := total.Div(decimal.NewFromInt(int64(len(ratings)))).Round(2)

	summary.TotalRatedProducts = len(ratedProducts)
	summary.TotalRatings = len(ratings)
	summary.AverageRating, _ = average.Float64()
	return summary, nil
}

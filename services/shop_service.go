package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
)

type ShopService struct {
	store *store.Store
}

func NewShopService(st *store.Store) *ShopService {
	return &ShopService{store: st}
}

type CreateShopRequest struct {
	ShopName      string               `json:"shopName"`
	Location      *models.ShopLocation `json:"location"`
	DeliveryRange int                  `json:"deliveryRange"`
	DairyInfo     string               `json:"dairyInfo"`
	ShopPhoto     []string             `json:"shopPhoto"`
}

// CreateShop opens the owner's shop. A location can host only one shop, and
// an owner can hold only one shop.
func (s *ShopService) CreateShop(ctx context.Context, owner primitive.ObjectID, req CreateShopRequest) (*models.Shop, error) {
	if req.ShopName == "" || req.Location == nil {
		return nil, apperr.Invalid("Shop name and location are required")
	}
	if req.DeliveryRange < 1 || req.DeliveryRange > 3 {
		return nil, apperr.Invalid("Delivery range must be either 1, 2, or 3.")
	}

	if _, err := s.store.Shops.FindByLocation(ctx, *req.Location); err == nil {
		return nil, apperr.Conflict("A shop already exists at this location!")
	} else if err != store.ErrNotFound {
		return nil, fmt.Errorf("find shop by location: %w", err)
	}

	if _, err := s.store.Shops.FindByOwner(ctx, owner); err == nil {
		return nil, apperr.Conflict("You already have a shop.")
	} else if err != store.ErrNotFound {
		return nil, fmt.Errorf("find shop by owner: %w", err)
	}

	shop := &models.Shop{
		ShopName:      req.ShopName,
		Location:      *req.Location,
		DeliveryRange: req.DeliveryRange,
		DairyInfo:     req.DairyInfo,
		ShopOwner:     owner,
		ShopStatus:    models.ShopOn,
		ShopPhoto:     req.ShopPhoto,
	}
	if err := s.store.Shops.Insert(ctx, shop); err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	return shop, nil
}

func (s *ShopService) GetUserShop(ctx context.Context, owner primitive.ObjectID) (*models.Shop, error) {
	shop, err := s.store.Shops.FindByOwner(ctx, owner)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop not found for this user.")
	}
	if err != nil {
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return shop, nil
}

// UpdateShop applies only the whitelisted fields the caller actually sent.
func (s *ShopService) UpdateShop(ctx context.Context, owner primitive.ObjectID, update models.ShopUpdate) (*models.Shop, error) {
	shop, err := s.store.Shops.FindByOwner(ctx, owner)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("find shop: %w", err)
	}

	if update.ShopName != nil {
		shop.ShopName = *update.ShopName
	}
	if update.Location != nil {
		if existing, err := s.store.Shops.FindByLocation(ctx, *update.Location); err == nil && existing.ID != shop.ID {
			return nil, apperr.Conflict("A shop already exists at this location!")
		} else if err != nil && err != store.ErrNotFound {
			return nil, fmt.Errorf("find shop by location: %w", err)
		}
		shop.Location = *update.Location
	}
	if update.DeliveryRange != nil {
		if *update.DeliveryRange < 1 || *update.DeliveryRange > 3 {
			return nil, apperr.Invalid("Delivery range must be either 1, 2, or 3.")
		}
		shop.DeliveryRange = *update.DeliveryRange
	}
	if update.DairyInfo != nil {
		shop.DairyInfo = *update.DairyInfo
	}
	if update.ShopPhoto != nil {
		shop.ShopPhoto = update.ShopPhoto
	}
	if update.ShopStatus != nil {
		if *update.ShopStatus != models.ShopOn && *update.ShopStatus != models.ShopOff {
			return nil, apperr.Invalid("Shop status must be 'on' or 'off'")
		}
		shop.ShopStatus = *update.ShopStatus
	}

	if err := s.store.Shops.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("update shop: %w", err)
	}
	return shop, nil
}

func (s *ShopService) DeleteShop(ctx context.Context, owner primitive.ObjectID) error {
	err := s.store.Shops.DeleteByOwner(ctx, owner)
	if err == store.ErrNotFound {
		return apperr.NotFound("Shop not found.")
	}
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return nil
}

func (s *ShopService) GetShopStatus(ctx context.Context, owner primitive.ObjectID) (string, error) {
	shop, err := s.store.Shops.FindByOwner(ctx, owner)
	if err == store.ErrNotFound {
		return "", apperr.NotFound("Shop not found.")
	}
	if err != nil {
		return "", fmt.Errorf("find shop: %w", err)
	}
	return shop.ShopStatus, nil
}

func (s *ShopService) UpdateShopStatus(ctx context.Context, owner primitive.ObjectID, status string) (string, error) {
	if status != models.ShopOn && status != models.ShopOff {
		return "", apperr.Invalid("Shop status must be 'on' or 'off'")
	}
	shop, err := s.store.Shops.FindByOwner(ctx, owner)
	if err == store.ErrNotFound {
		return "", apperr.NotFound("Shop not found.")
	}
	if err != nil {
		return "", fmt.Errorf("find shop: %w", err)
	}
	shop.ShopStatus = status
	if err := s.store.Shops.Update(ctx, shop); err != nil {
		return "", fmt.Errorf("update shop: %w", err)
	}
	return shop.ShopStatus, nil
}

// ShopListing is a shop joined with its owner's public summary.
type ShopListing struct {
	models.Shop
	Owner models.UserSummary `json:"owner"`
}

func (s *ShopService) GetAllShops(ctx context.Context) ([]ShopListing, error) {
	shops, err := s.store.Shops.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("find shops: %w", err)
	}
	if len(shops) == 0 {
		return nil, apperr.NotFound("No shops found.")
	}

	listings := make([]ShopListing, 0, len(shops))
	for _, shop := range shops {
		listing := ShopListing{Shop: shop}
		if owner, err := s.store.Users.FindByID(ctx, shop.ShopOwner); err == nil {
			listing.Owner = models.UserSummary{
				FirstName: owner.FirstName,
				LastName:  owner.LastName,
				Email:     owner.Email,
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

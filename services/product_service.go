package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
)

type ProductService struct {
	store *store.Store
}

func NewProductService(st *store.Store) *ProductService {
	return &ProductService{store: st}
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Quantity    string   `json:"quantity"` // availability label
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock"`
}

func (s *ProductService) CreateProduct(ctx context.Context, seller primitive.ObjectID, req CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Description == "" || req.Price == 0 || req.Quantity == "" ||
		req.Category == "" || len(req.Images) == 0 {
		return nil, apperr.Invalid("All fields including at least one image are required")
	}
	if req.Price < 0 {
		return nil, apperr.Invalid("Price must be greater than zero")
	}
	if req.Quantity != models.InStock && req.Quantity != models.OutOfStock {
		return nil, apperr.Invalid("Quantity must be 'in stock' or 'out of stock'")
	}
	if !models.ValidCategory(req.Category) {
		return nil, apperr.Invalid("Invalid category")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, apperr.Invalid("Stock cannot be negative")
	}

	product := &models.Product{
		SellerUser:  seller,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Images:      req.Images,
		Stock:       req.Stock,
	}
	if err := s.store.Products.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetSellerProducts(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	products, err := s.store.Products.FindBySeller(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}
	product, err := s.store.Products.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// UpdateProduct lets the owning seller change whitelisted fields only.
func (s *ProductService) UpdateProduct(ctx context.Context, seller primitive.ObjectID, productID string, update models.ProductUpdate) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}
	product, err := s.store.Products.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product.SellerUser != seller {
		return nil, apperr.Forbidden("Unauthorized to update this product")
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price <= 0 {
			return nil, apperr.Invalid("Price must be greater than zero")
		}
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		if *update.Quantity != models.InStock && *update.Quantity != models.OutOfStock {
			return nil, apperr.Invalid("Quantity must be 'in stock' or 'out of stock'")
		}
		product.Quantity = *update.Quantity
	}
	if update.Category != nil {
		if !models.ValidCategory(*update.Category) {
			return nil, apperr.Invalid("Invalid category")
		}
		product.Category = *update.Category
	}
	if update.Images != nil {
		if len(update.Images) == 0 {
			return nil, apperr.Invalid("At least one image is required")
		}
		product.Images = update.Images
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return nil, apperr.Invalid("Stock cannot be negative")
		}
		product.Stock = update.Stock
	}

	if err := s.store.Products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, seller primitive.ObjectID, productID string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return apperr.Invalid("Invalid product ID")
	}
	product, err := s.store.Products.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return apperr.NotFound("Product not found")
	}
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product.SellerUser != seller {
		return apperr.Forbidden("Unauthorized to delete this product")
	}
	if err := s.store.Products.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

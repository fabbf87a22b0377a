package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
)

func productRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Fresh Milk",
		Description: "1 liter pure milk",
		Price:       150,
		Quantity:    models.InStock,
		Category:    "Milk",
		Images:      []string{"milk.jpg"},
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(store.NewMemory())
	seller := primitive.NewObjectID()

	product, err := svc.CreateProduct(ctx, seller, productRequest())
	require.NoError(t, err)
	assert.Equal(t, seller, product.SellerUser)
	assert.False(t, product.ID.IsZero())
	assert.Nil(t, product.Stock)

	req := productRequest()
	req.Stock = intPtr(20)
	product, err = svc.CreateProduct(ctx, seller, req)
	require.NoError(t, err)
	require.NotNil(t, product.Stock)
	assert.Equal(t, 20, *product.Stock)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(store.NewMemory())
	seller := primitive.NewObjectID()

	tests := []struct {
		name    string
		mutate  func(*CreateProductRequest)
		message string
	}{
		{
			name:    "no images",
			mutate:  func(r *CreateProductRequest) { r.Images = nil },
			message: "All fields including at least one image are required",
		},
		{
			name:    "bad availability",
			mutate:  func(r *CreateProductRequest) { r.Quantity = "limited" },
			message: "Quantity must be 'in stock' or 'out of stock'",
		},
		{
			name:    "bad category",
			mutate:  func(r *CreateProductRequest) { r.Category = "Electronics" },
			message: "Invalid category",
		},
		{
			name:    "negative stock",
			mutate:  func(r *CreateProductRequest) { r.Stock = intPtr(-1) },
			message: "Stock cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := productRequest()
			tt.mutate(&req)
			_, err := svc.CreateProduct(ctx, seller, req)
			require.Error(t, err)
			assert.Equal(t, 400, apperr.StatusOf(err))
			assert.Equal(t, tt.message, apperr.MessageOf(err))
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(store.NewMemory())
	seller := primitive.NewObjectID()

	created, err := svc.CreateProduct(ctx, seller, productRequest())
	require.NoError(t, err)

	price := 200.0
	updated, err := svc.UpdateProduct(ctx, seller, created.ID.Hex(), models.ProductUpdate{
		Name:  strPtr("Buffalo Milk"),
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Buffalo Milk", updated.Name)
	assert.Equal(t, 200.0, updated.Price)
	assert.Equal(t, created.Description, updated.Description)
}

func TestUpdateProductOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(store.NewMemory())
	seller := primitive.NewObjectID()

	created, err := svc.CreateProduct(ctx, seller, productRequest())
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, primitive.NewObjectID(), created.ID.Hex(), models.ProductUpdate{Name: strPtr("Hijacked")})
	require.Error(t, err)
	assert.Equal(t, 403, apperr.StatusOf(err))
	assert.Equal(t, "Unauthorized to update this product", apperr.MessageOf(err))

	err = svc.DeleteProduct(ctx, primitive.NewObjectID(), created.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, 403, apperr.StatusOf(err))
	assert.Equal(t, "Unauthorized to delete this product", apperr.MessageOf(err))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(store.NewMemory())
	seller := primitive.NewObjectID()

	created, err := svc.CreateProduct(ctx, seller, productRequest())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, seller, created.ID.Hex()))

	_, err = svc.GetProductByID(ctx, created.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusOf(err))
}

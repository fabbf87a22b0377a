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

func strPtr(s string) *string { return &s }

func shopRequest() CreateShopRequest {
	return CreateShopRequest{
		ShopName:      "Fresh Dairy",
		Location:      &models.ShopLocation{Latitude: 33.6844, Longitude: 73.0479},
		DeliveryRange: 2,
		DairyInfo:     "Buffalo milk, daily delivery",
	}
}

func TestCreateShop(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	shop, err := svc.CreateShop(ctx, owner, shopRequest())
	require.NoError(t, err)
	assert.Equal(t, "Fresh Dairy", shop.ShopName)
	assert.Equal(t, owner, shop.ShopOwner)
	assert.Equal(t, models.ShopOn, shop.ShopStatus)
	assert.False(t, shop.ID.IsZero())
}

func TestCreateShopValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	req := shopRequest()
	req.ShopName = ""
	_, err := svc.CreateShop(ctx, owner, req)
	require.Error(t, err)
	assert.Equal(t, "Shop name and location are required", apperr.MessageOf(err))

	req = shopRequest()
	req.DeliveryRange = 4
	_, err = svc.CreateShop(ctx, owner, req)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))
	assert.Equal(t, "Delivery range must be either 1, 2, or 3.", apperr.MessageOf(err))
}

func TestCreateShopConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	_, err := svc.CreateShop(ctx, owner, shopRequest())
	require.NoError(t, err)

	// Same location, different owner.
	_, err = svc.CreateShop(ctx, primitive.NewObjectID(), shopRequest())
	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusOf(err))
	assert.Equal(t, "A shop already exists at this location!", apperr.MessageOf(err))

	// Same owner, different location.
	req := shopRequest()
	req.Location = &models.ShopLocation{Latitude: 31.5204, Longitude: 74.3587}
	_, err = svc.CreateShop(ctx, owner, req)
	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusOf(err))
	assert.Equal(t, "You already have a shop.", apperr.MessageOf(err))
}

func TestUpdateShop(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	created, err := svc.CreateShop(ctx, owner, shopRequest())
	require.NoError(t, err)

	rng := 3
	updated, err := svc.UpdateShop(ctx, owner, models.ShopUpdate{
		ShopName:      strPtr("Fresh Dairy Plus"),
		DeliveryRange: &rng,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fresh Dairy Plus", updated.ShopName)
	assert.Equal(t, 3, updated.DeliveryRange)
	assert.Equal(t, created.Location, updated.Location)
	assert.Equal(t, created.DairyInfo, updated.DairyInfo)
}

func TestUpdateShopLocationConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	created, err := svc.CreateShop(ctx, owner, shopRequest())
	require.NoError(t, err)

	otherLoc := models.ShopLocation{Latitude: 31.5204, Longitude: 74.3587}
	other := shopRequest()
	other.Location = &otherLoc
	_, err = svc.CreateShop(ctx, primitive.NewObjectID(), other)
	require.NoError(t, err)

	_, err = svc.UpdateShop(ctx, owner, models.ShopUpdate{Location: &otherLoc})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusOf(err))

	// Re-sending the shop's own location is not a conflict.
	updated, err := svc.UpdateShop(ctx, owner, models.ShopUpdate{Location: &created.Location})
	require.NoError(t, err)
	assert.Equal(t, created.Location, updated.Location)
}

func TestShopStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	_, err := svc.CreateShop(ctx, owner, shopRequest())
	require.NoError(t, err)

	status, err := svc.GetShopStatus(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, models.ShopOn, status)

	status, err = svc.UpdateShopStatus(ctx, owner, models.ShopOff)
	require.NoError(t, err)
	assert.Equal(t, models.ShopOff, status)

	_, err = svc.UpdateShopStatus(ctx, owner, "paused")
	require.Error(t, err)
	assert.Equal(t, "Shop status must be 'on' or 'off'", apperr.MessageOf(err))
}

func TestDeleteShop(t *testing.T) {
	ctx := context.Background()
	svc := NewShopService(store.NewMemory())
	owner := primitive.NewObjectID()

	_, err := svc.CreateShop(ctx, owner, shopRequest())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteShop(ctx, owner))

	err = svc.DeleteShop(ctx, owner)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusOf(err))
	assert.Equal(t, "Shop not found.", apperr.MessageOf(err))
}

func TestGetAllShops(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewShopService(st)

	_, err := svc.GetAllShops(ctx)
	require.Error(t, err)
	assert.Equal(t, "No shops found.", apperr.MessageOf(err))

	owner := &models.User{FirstName: "Ali", LastName: "Khan", UserName: "alikhan", Email: "ali@example.com"}
	require.NoError(t, st.Users.Insert(ctx, owner))
	_, err = svc.CreateShop(ctx, owner.ID, shopRequest())
	require.NoError(t, err)

	listings, err := svc.GetAllShops(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Fresh Dairy", listings[0].ShopName)
	assert.Equal(t, "Ali", listings[0].Owner.FirstName)
}

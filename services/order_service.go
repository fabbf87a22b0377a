package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
)

// ShippedNotifier is told when an order moves to shipped. Implementations
// must not block the transition; the AMQP publisher satisfies this.
type ShippedNotifier interface {
	NotifyShipped(orderID, email, firstName string) error
}

type OrderService struct {
	store    *store.Store
	notifier ShippedNotifier
}

func NewOrderService(st *store.Store, notifier ShippedNotifier) *OrderService {
	return &OrderService{store: st, notifier: notifier}
}

type DeliveryLocationInput struct {
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
	Address     string    `json:"address"`
	PlaceID     string    `json:"placeId"`
}

type PlaceOrderRequest struct {
	ShopID           string                 `json:"shopId"`
	ProductID        string                 `json:"productId"`
	Quantity         int                    `json:"quantity"`
	PaymentMethod    string                 `json:"paymentMethod"`
	DeliveryLocation *DeliveryLocationInput `json:"deliveryLocation"`
}

// PlaceOrder validates the request against the catalog and persists a new
// pending order. Every failure happens before any write. The price is
// snapshotted at placement; later product price changes never touch existing
// orders.
func (s *OrderService) PlaceOrder(ctx context.Context, buyer primitive.ObjectID, req PlaceOrderRequest) (*models.Order, error) {
	if req.ShopID == "" || req.ProductID == "" || req.Quantity == 0 || req.DeliveryLocation == nil {
		return nil, apperr.Invalid("All fields are required (shopId, productId, quantity, deliveryLocation)")
	}

	loc := req.DeliveryLocation
	if len(loc.Coordinates) != 2 || loc.Address == "" || loc.PlaceID == "" {
		return nil, apperr.Invalid("Invalid location data. Must include coordinates [longitude, latitude], address, and placeId")
	}

	longitude, latitude := loc.Coordinates[0], loc.Coordinates[1]
	if math.IsNaN(longitude) || math.IsNaN(latitude) ||
		longitude < -180 || longitude > 180 || latitude < -90 || latitude > 90 {
		return nil, apperr.Invalid("Invalid coordinates. Longitude must be between -180 and 180, latitude between -90 and 90")
	}

	if req.Quantity < 1 || req.Quantity > 100 {
		return nil, apperr.Invalid("Quantity must be between 1-100")
	}

	shopID, err := primitive.ObjectIDFromHex(req.ShopID)
	if err != nil {
		return nil, apperr.Invalid("Invalid shop ID")
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}

	shop, err := s.store.Shops.FindByID(ctx, shopID)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find shop: %w", err)
	}

	// A product owned by someone other than the shop's owner looks exactly
	// like a missing product.
	product, err := s.store.Products.FindOneBySeller(ctx, productID, shop.ShopOwner)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Product not found or doesn't belong to this shop")
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	if product.TracksStock() && *product.Stock < req.Quantity {
		return nil, apperr.InsufficientStock(*product.Stock)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.DefaultPaymentMethod
	}

	order := &models.Order{
		User:          buyer,
		Shop:          shop.ID,
		Product:       product.ID,
		Quantity:      req.Quantity,
		PricePerUnit:  product.Price,
		TotalPrice:    product.Price * float64(req.Quantity),
		Status:        models.StatusPending,
		PaymentMethod: paymentMethod,
		DeliveryLocation: models.DeliveryLocation{
			Type:        "Point",
			Coordinates: loc.Coordinates,
			Address:     loc.Address,
			PlaceID:     loc.PlaceID,
		},
	}

	if err := s.store.Orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if product.TracksStock() {
		applied, err := s.store.Products.DecrementStock(ctx, product.ID, req.Quantity)
		if err != nil {
			return nil, apperr.Unexpected("Order recorded but stock update failed")
		}
		if !applied {
			// A concurrent placement consumed the stock between our check and
			// the decrement.
			return nil, apperr.Unexpected("Order recorded but stock update failed")
		}
	}

	return order, nil
}

// UpdateOrderStatus applies one status transition on behalf of the product's
// seller or the shop's owner. forceNotify makes the shipped email fire even
// when the order was already shipped.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor primitive.ObjectID, orderID, status string, forceNotify bool) (*models.Order, error) {
	if orderID == "" || status == "" {
		return nil, apperr.Invalid("Order ID and status are required")
	}
	if !models.ValidOrderStatus(status) {
		return nil, apperr.Invalid("Invalid status. Must be one of: pending, confirmed, shipped, delivered, cancelled")
	}

	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperr.Invalid("Invalid order ID")
	}

	order, err := s.store.Orders.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	if err := s.authorizeSellerForOrder(ctx, actor, order); err != nil {
		return nil, err
	}

	previous := order.Status
	if models.TerminalStatus(previous) {
		if previous == models.StatusDelivered {
			return nil, apperr.Invalid("Delivered orders cannot be changed to other statuses")
		}
		return nil, apperr.Invalid("Cancelled orders cannot be changed to other statuses")
	}

	s.applyTransition(order, status, actor)
	if err := s.store.Orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if status == models.StatusShipped && (previous != models.StatusShipped || forceNotify) {
		s.notifyShipped(ctx, order)
	}

	return order, nil
}

// CancelOrder is the buyer-facing transition: only the order's buyer, only to
// cancelled, and never out of a terminal state.
func (s *OrderService) CancelOrder(ctx context.Context, buyer primitive.ObjectID, orderID string) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperr.Invalid("Invalid order ID")
	}

	order, err := s.store.Orders.FindOneByBuyer(ctx, id, buyer)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Order not found or doesn't belong to you")
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	if order.Status == models.StatusCancelled {
		return nil, apperr.Invalid("Order is already cancelled")
	}
	if order.Status == models.StatusDelivered {
		return nil, apperr.Invalid("Delivered orders cannot be cancelled")
	}

	s.applyTransition(order, models.StatusCancelled, buyer)
	if err := s.store.Orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return order, nil
}

// GetUserOrders returns the buyer's orders joined with product, shop and
// buyer summaries.
func (s *OrderService) GetUserOrders(ctx context.Context, buyer primitive.ObjectID) ([]models.OrderView, error) {
	orders, err := s.store.Orders.FindByBuyer(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No orders found for this user")
	}
	return s.buildOrderViews(ctx, orders), nil
}

// GetSellerOrders returns every order on the caller's own products.
func (s *OrderService) GetSellerOrders(ctx context.Context, seller primitive.ObjectID) ([]models.OrderView, error) {
	if _, err := s.store.Shops.FindByOwner(ctx, seller); err != nil {
		if err == store.ErrNotFound {
			return nil, apperr.NotFound("Shop not found for this seller")
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}

	products, err := s.store.Products.FindBySeller(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("No products found for this seller")
	}

	productIDs := make([]primitive.ObjectID, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	orders, err := s.store.Orders.FindByProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No orders found for this seller")
	}
	return s.buildOrderViews(ctx, orders), nil
}

// ShopDetails is the shop page payload: shop, owner summary, and the owner's
// products.
type ShopDetails struct {
	Shop     *models.Shop       `json:"shop"`
	Owner    models.UserSummary `json:"owner"`
	Products []models.Product   `json:"products"`
}

func (s *OrderService) GetShopDetails(ctx context.Context, shopID string) (*ShopDetails, error) {
	if shopID == "" {
		return nil, apperr.Invalid("Shop ID is required")
	}
	id, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil, apperr.Invalid("Invalid shop ID")
	}

	shop, err := s.store.Shops.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find shop: %w", err)
	}

	owner, err := s.store.Users.FindByID(ctx, shop.ShopOwner)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("Shop owner not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}

	products, err := s.store.Products.FindBySeller(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	return &ShopDetails{
		Shop: shop,
		Owner: models.UserSummary{
			FirstName:      owner.FirstName,
			LastName:       owner.LastName,
			Email:          owner.Email,
			PhoneNumber:    owner.PhoneNumber,
			WhatsappNumber: owner.WhatsappNumber,
			Address:        owner.Address,
		},
		Products: products,
	}, nil
}

// authorizeSellerForOrder is the one ownership predicate for seller-side
// order mutations: the actor must be the product's seller or the shop's
// owner.
func (s *OrderService) authorizeSellerForOrder(ctx context.Context, actor primitive.ObjectID, order *models.Order) error {
	product, err := s.store.Products.FindByID(ctx, order.Product)
	if err != nil && err != store.ErrNotFound {
		return fmt.Errorf("find product: %w", err)
	}
	shop, err := s.store.Shops.FindByID(ctx, order.Shop)
	if err != nil && err != store.ErrNotFound {
		return fmt.Errorf("find shop: %w", err)
	}

	isProductOwner := product != nil && product.SellerUser == actor
	isShopOwner := shop != nil && shop.ShopOwner == actor
	if !isProductOwner && !isShopOwner {
		return apperr.Forbidden("Unauthorized. You don't own this product or shop")
	}
	return nil
}

func (s *OrderService) applyTransition(order *models.Order, status string, actor primitive.ObjectID) {
	now := timeNow()
	order.Status = status
	order.UpdatedAt = now
	order.StatusHistory = append(order.StatusHistory, models.StatusChange{
		Status:    status,
		ChangedAt: now,
		ChangedBy: actor,
	})
}

// notifyShipped looks up the buyer's email and hands the event to the
// notifier from a goroutine. Failures are logged, never surfaced.
func (s *OrderService) notifyShipped(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}
	buyer, err := s.store.Users.FindByID(ctx, order.User)
	if err != nil || buyer.Email == "" {
		log.Printf("No buyer email for order %s, skipping notification", order.ID.Hex())
		return
	}
	orderID, email, firstName := order.ID.Hex(), buyer.Email, buyer.FirstName
	go func() {
		if err := s.notifier.NotifyShipped(orderID, email, firstName); err != nil {
			log.Printf("Failed to publish shipped notification for order %s: %v", orderID, err)
		}
	}()
}

func (s *OrderService) buildOrderViews(ctx context.Context, orders []models.Order) []models.OrderView {
	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		view := models.OrderView{
			ID:               order.ID,
			Status:           order.Status,
			Quantity:         order.Quantity,
			PricePerUnit:     order.PricePerUnit,
			TotalPrice:       order.TotalPrice,
			PaymentMethod:    order.PaymentMethod,
			CreatedAt:        order.CreatedAt,
			DeliveryLocation: order.DeliveryLocation,
		}
		if product, err := s.store.Products.FindByID(ctx, order.Product); err == nil {
			view.Product = models.ProductSummary{
				ID:     product.ID,
				Name:   product.Name,
				Price:  product.Price,
				Images: product.Images,
			}
		}
		if shop, err := s.store.Shops.FindByID(ctx, order.Shop); err == nil {
			view.Shop = models.ShopSummary{
				ID:        shop.ID,
				ShopName:  shop.ShopName,
				ShopPhoto: shop.ShopPhoto,
			}
		}
		if buyer, err := s.store.Users.FindByID(ctx, order.User); err == nil {
			view.UserDetails = models.UserSummary{
				FirstName:      buyer.FirstName,
				LastName:       buyer.LastName,
				PhoneNumber:    buyer.PhoneNumber,
				WhatsappNumber: buyer.WhatsappNumber,
				Address:        buyer.Address,
				City:           buyer.City,
			}
		}
		views = append(views, view)
	}
	return views
}

package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/models"
)

// NewMemory builds a Store backed by in-process maps. It honors the same
// contracts as the Mongo store, including the conditional stock decrement,
// and exists so services can be exercised without a database.
func NewMemory() *Store {
	return &Store{
		Users:    &memUsers{users: map[primitive.ObjectID]models.User{}},
		Shops:    &memShops{shops: map[primitive.ObjectID]models.Shop{}},
		Products: &memProducts{products: map[primitive.ObjectID]models.Product{}},
		Orders:   &memOrders{orders: map[primitive.ObjectID]models.Order{}},
		Ratings:  &memRatings{ratings: map[primitive.ObjectID]models.Rating{}},
	}
}

// ----- users -----

type memUsers struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *memUsers) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == identifier || user.UserName == identifier || user.PhoneNumber == identifier {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) IdentifierTaken(_ context.Context, email, userName, phoneNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email || user.UserName == userName || user.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUsers) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *memUsers) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *memUsers) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *memUsers) All(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

// ----- shops -----

type memShops struct {
	mu    sync.RWMutex
	shops map[primitive.ObjectID]models.Shop
}

func (s *memShops) FindByID(_ context.Context, id primitive.ObjectID) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shop, ok := s.shops[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &shop, nil
}

func (s *memShops) FindByOwner(_ context.Context, owner primitive.ObjectID) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, shop := range s.shops {
		if shop.ShopOwner == owner {
			sh := shop
			return &sh, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memShops) FindByLocation(_ context.Context, location models.ShopLocation) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, shop := range s.shops {
		if shop.Location == location {
			sh := shop
			return &sh, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memShops) Insert(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	now := time.Now()
	shop.CreatedAt = now
	shop.UpdatedAt = now
	s.shops[shop.ID] = *shop
	return nil
}

func (s *memShops) Update(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shop.UpdatedAt = time.Now()
	s.shops[shop.ID] = *shop
	return nil
}

func (s *memShops) DeleteByOwner(_ context.Context, owner primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, shop := range s.shops {
		if shop.ShopOwner == owner {
			delete(s.shops, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memShops) All(_ context.Context) ([]models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shops := make([]models.Shop, 0, len(s.shops))
	for _, shop := range s.shops {
		shops = append(shops, shop)
	}
	return shops, nil
}

// ----- products -----

type memProducts struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func (s *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProduct(product), nil
}

func (s *memProducts) FindOneBySeller(_ context.Context, id, seller primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok || product.SellerUser != seller {
		return nil, ErrNotFound
	}
	return cloneProduct(product), nil
}

func (s *memProducts) FindBySeller(_ context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []models.Product
	for _, product := range s.products {
		if product.SellerUser == seller {
			products = append(products, *cloneProduct(product))
		}
	}
	return products, nil
}

func (s *memProducts) Insert(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	s.products[product.ID] = *cloneProduct(*product)
	return nil
}

func (s *memProducts) Update(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.UpdatedAt = time.Now()
	s.products[product.ID] = *cloneProduct(*product)
	return nil
}

func (s *memProducts) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memProducts) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok || product.Stock == nil || *product.Stock < quantity {
		return false, nil
	}
	remaining := *product.Stock - quantity
	product.Stock = &remaining
	product.UpdatedAt = time.Now()
	s.products[id] = product
	return true, nil
}

// cloneProduct detaches the stock pointer so callers cannot mutate stored
// state behind the mutex.
func cloneProduct(p models.Product) *models.Product {
	if p.Stock != nil {
		stock := *p.Stock
		p.Stock = &stock
	}
	return &p
}

// ----- orders -----

type memOrders struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

func (s *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (s *memOrders) FindOneByBuyer(_ context.Context, id, buyer primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok || order.User != buyer {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (s *memOrders) FindByBuyer(_ context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for _, order := range s.orders {
		if order.User == buyer {
			orders = append(orders, *cloneOrder(order))
		}
	}
	return orders, nil
}

func (s *memOrders) FindByProducts(_ context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for _, order := range s.orders {
		for _, pid := range productIDs {
			if order.Product == pid {
				orders = append(orders, *cloneOrder(order))
				break
			}
		}
	}
	return orders, nil
}

func (s *memOrders) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = *cloneOrder(*order)
	return nil
}

func (s *memOrders) Update(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = *cloneOrder(*order)
	return nil
}

func cloneOrder(o models.Order) *models.Order {
	history := make([]models.StatusChange, len(o.StatusHistory))
	copy(history, o.StatusHistory)
	o.StatusHistory = history
	coords := make([]float64, len(o.DeliveryLocation.Coordinates))
	copy(coords, o.DeliveryLocation.Coordinates)
	o.DeliveryLocation.Coordinates = coords
	return &o
}

// ----- ratings -----

type memRatings struct {
	mu      sync.RWMutex
	ratings map[primitive.ObjectID]models.Rating
}

func (s *memRatings) FindOneByProductAndUser(_ context.Context, product, user primitive.ObjectID) (*models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rating := range s.ratings {
		if rating.Product == product && rating.User == user {
			r := rating
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memRatings) FindByProduct(_ context.Context, product primitive.ObjectID) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ratings []models.Rating
	for _, rating := range s.ratings {
		if rating.Product == product {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

func (s *memRatings) FindByUser(_ context.Context, user primitive.ObjectID) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ratings []models.Rating
	for _, rating := range s.ratings {
		if rating.User == user {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

func (s *memRatings) FindByProducts(_ context.Context, productIDs []primitive.ObjectID) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ratings []models.Rating
	for _, rating := range s.ratings {
		for _, pid := range productIDs {
			if rating.Product == pid {
				ratings = append(ratings, rating)
				break
			}
		}
	}
	return ratings, nil
}

func (s *memRatings) Insert(_ context.Context, rating *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}
	rating.CreatedAt = time.Now()
	s.ratings[rating.ID] = *rating
	return nil
}

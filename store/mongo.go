package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buttcoder420/FinalYear-backend/models"
)

// NewMongo wires every entity store to its collection.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users:    &mongoUsers{c: db.Collection("users")},
		Shops:    &mongoShops{c: db.Collection("shops")},
		Products: &mongoProducts{c: db.Collection("products")},
		Orders:   &mongoOrders{c: db.Collection("orders")},
		Ratings:  &mongoRatings{c: db.Collection("ratings")},
	}
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// ----- users -----

type mongoUsers struct {
	c *mongo.Collection
}

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *mongoUsers) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"userName": identifier},
		bson.M{"phoneNumber": identifier},
	}}
	var user models.User
	if err := s.c.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *mongoUsers) IdentifierTaken(ctx context.Context, email, userName, phoneNumber string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"userName": userName},
		bson.M{"phoneNumber": phoneNumber},
	}}
	count, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *mongoUsers) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, user)
	return err
}

func (s *mongoUsers) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

func (s *mongoUsers) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ----- shops -----

type mongoShops struct {
	c *mongo.Collection
}

func (s *mongoShops) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&shop); err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (s *mongoShops) FindByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.c.FindOne(ctx, bson.M{"shopOwner": owner}).Decode(&shop); err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (s *mongoShops) FindByLocation(ctx context.Context, location models.ShopLocation) (*models.Shop, error) {
	filter := bson.M{
		"location.latitude":  location.Latitude,
		"location.longitude": location.Longitude,
	}
	var shop models.Shop
	if err := s.c.FindOne(ctx, filter).Decode(&shop); err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (s *mongoShops) Insert(ctx context.Context, shop *models.Shop) error {
	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	now := time.Now()
	shop.CreatedAt = now
	shop.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, shop)
	return err
}

func (s *mongoShops) Update(ctx context.Context, shop *models.Shop) error {
	shop.UpdatedAt = time.Now()
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": shop.ID}, shop)
	return err
}

func (s *mongoShops) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"shopOwner": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoShops) All(ctx context.Context) ([]models.Shop, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var shops []models.Shop
	if err := cur.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// ----- products -----

type mongoProducts struct {
	c *mongo.Collection
}

func (s *mongoProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (s *mongoProducts) FindOneBySeller(ctx context.Context, id, seller primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.c.FindOne(ctx, bson.M{"_id": id, "sellerUser": seller}).Decode(&product)
	if err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (s *mongoProducts) FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	cur, err := s.c.Find(ctx, bson.M{"sellerUser": seller})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProducts) Insert(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, product)
	return err
}

func (s *mongoProducts) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return err
}

func (s *mongoProducts) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProducts) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// ----- orders -----

type mongoOrders struct {
	c *mongo.Collection
}

func (s *mongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

func (s *mongoOrders) FindOneByBuyer(ctx context.Context, id, buyer primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.c.FindOne(ctx, bson.M{"_id": id, "user": buyer}).Decode(&order)
	if err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

func (s *mongoOrders) FindByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	cur, err := s.c.Find(ctx, bson.M{"user": buyer})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *mongoOrders) FindByProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	cur, err := s.c.Find(ctx, bson.M{"product": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *mongoOrders) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, order)
	return err
}

func (s *mongoOrders) Update(ctx context.Context, order *models.Order) error {
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	return err
}

// ----- ratings -----

type mongoRatings struct {
	c *mongo.Collection
}

func (s *mongoRatings) FindOneByProductAndUser(ctx context.Context, product, user primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := s.c.FindOne(ctx, bson.M{"product": product, "user": user}).Decode(&rating)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rating, nil
}

func (s *mongoRatings) FindByProduct(ctx context.Context, product primitive.ObjectID) ([]models.Rating, error) {
	return s.find(ctx, bson.M{"product": product})
}

func (s *mongoRatings) FindByUser(ctx context.Context, user primitive.ObjectID) ([]models.Rating, error) {
	return s.find(ctx, bson.M{"user": user})
}

func (s *mongoRatings) FindByProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Rating, error) {
	return s.find(ctx, bson.M{"product": bson.M{"$in": productIDs}})
}

func (s *mongoRatings) find(ctx context.Context, filter bson.M) ([]models.Rating, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var ratings []models.Rating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *mongoRatings) Insert(ctx context.Context, rating *models.Rating) error {
	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}
	rating.CreatedAt = time.Now()
	_, err := s.c.InsertOne(ctx, rating)
	return err
}

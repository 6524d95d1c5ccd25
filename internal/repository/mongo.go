package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attar/internal/domain"
)

// Имена коллекций совпадают с исходной базой магазина
const (
	collProducts  = "Products"
	collCustomers = "Customers"
	collOrders    = "Orders"
	collReviews   = "Reviews"
	collAdmins    = "AdminUsers"
)

// ConnectMongoDB открывает подключение с пулом и проверяет его пингом
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func newID() string { return primitive.NewObjectID().Hex() }

// MongoProducts хранилище товаров поверх MongoDB
type MongoProducts struct{ coll *mongo.Collection }

func NewMongoProducts(db *mongo.Database) *MongoProducts {
	return &MongoProducts{coll: db.Collection(collProducts)}
}

var _ ProductRepository = (*MongoProducts)(nil)

func (m *MongoProducts) Create(ctx context.Context, p *domain.Product) error {
	p.ID = newID()
	if _, err := m.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (m *MongoProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (m *MongoProducts) Update(ctx context.Context, p *domain.Product) error {
	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoProducts) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoProducts) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	filter := bson.M{}
	if f.NameSubstring != "" {
		filter["name"] = bson.M{"$regex": f.NameSubstring, "$options": "i"}
	}
	if f.Brand != "" {
		filter["brand"] = f.Brand
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Gender != "" {
		filter["gender"] = f.Gender
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Product, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return out, nil
}

// MongoCustomers хранилище покупателей поверх MongoDB
type MongoCustomers struct{ coll *mongo.Collection }

func NewMongoCustomers(db *mongo.Database) *MongoCustomers {
	return &MongoCustomers{coll: db.Collection(collCustomers)}
}

var _ CustomerRepository = (*MongoCustomers)(nil)

func (m *MongoCustomers) Insert(ctx context.Context, c *domain.Customer) error {
	c.ID = newID()
	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = time.Now().UTC()
	}
	if _, err := m.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (m *MongoCustomers) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (m *MongoCustomers) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return &c, nil
}

func (m *MongoCustomers) Update(ctx context.Context, c *domain.Customer) error {
	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoCustomers) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoCustomers) List(ctx context.Context) ([]domain.Customer, error) {
	cur, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Customer, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return out, nil
}

// MongoOrders хранилище заказов поверх MongoDB
type MongoOrders struct{ coll *mongo.Collection }

func NewMongoOrders(db *mongo.Database) *MongoOrders {
	return &MongoOrders{coll: db.Collection(collOrders)}
}

var _ OrderRepository = (*MongoOrders)(nil)

func (m *MongoOrders) Create(ctx context.Context, o *domain.Order) error {
	o.ID = newID()
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	if _, err := m.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (m *MongoOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (m *MongoOrders) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	var o domain.Order
	err := m.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order by idempotency key: %w", err)
	}
	return &o, nil
}

func (m *MongoOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoOrders) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return m.findOrders(ctx, bson.M{"customer_id": customerID})
}

func (m *MongoOrders) List(ctx context.Context) ([]domain.Order, error) {
	return m.findOrders(ctx, bson.M{})
}

func (m *MongoOrders) findOrders(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Order, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return out, nil
}

// MongoReviews хранилище отзывов поверх MongoDB
type MongoReviews struct{ coll *mongo.Collection }

func NewMongoReviews(db *mongo.Database) *MongoReviews {
	return &MongoReviews{coll: db.Collection(collReviews)}
}

var _ ReviewRepository = (*MongoReviews)(nil)

func (m *MongoReviews) Create(ctx context.Context, r *domain.Review) error {
	r.ID = newID()
	if r.ReviewDate.IsZero() {
		r.ReviewDate = time.Now().UTC()
	}
	if _, err := m.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (m *MongoReviews) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return m.findReviews(ctx, bson.M{"product_id": productID})
}

func (m *MongoReviews) List(ctx context.Context) ([]domain.Review, error) {
	return m.findReviews(ctx, bson.M{})
}

func (m *MongoReviews) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoReviews) findReviews(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Review, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return out, nil
}

// MongoAdmins хранилище админских учёток поверх MongoDB
type MongoAdmins struct{ coll *mongo.Collection }

func NewMongoAdmins(db *mongo.Database) *MongoAdmins {
	return &MongoAdmins{coll: db.Collection(collAdmins)}
}

var _ AdminRepository = (*MongoAdmins)(nil)

func (m *MongoAdmins) Insert(ctx context.Context, a *domain.AdminUser) error {
	a.ID = newID()
	if _, err := m.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (m *MongoAdmins) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var a domain.AdminUser
	err := m.coll.FindOne(ctx, bson.M{"username": username}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// EnsureIndexes создаёт индексы: уникальный email покупателя, разреженный
// уникальный ключ идемпотентности заказа и уникальный username админа
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collCustomers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create customer email index: %w", err)
	}

	_, err = db.Collection(collOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return fmt.Errorf("create order idempotency index: %w", err)
	}

	_, err = db.Collection(collAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create admin username index: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ecom-cart/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 文档库集合名称
const (
	MongoCartCollection  = "cartitems"
	MongoOrderCollection = "orderhistories"
)

const defaultMongoOpTimeout = 10 * time.Second

func mongoOpContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultMongoOpTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// MongoCartRepository MongoDB 购物车实现
type MongoCartRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoCartRepository 创建 MongoDB 购物车仓库
func NewMongoCartRepository(db *mongo.Database, timeout time.Duration) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(MongoCartCollection), timeout: timeout}
}

// EnsureIndexes 创建购物车索引
func (r *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// List 获取购物车项
func (r *MongoCartRepository) List(ctx context.Context) ([]models.CartItem, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddOrIncrement 单次 findOneAndUpdate 完成插入或数量累加
func (r *MongoCartRepository) AddOrIncrement(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	onInsert := bson.M{
		"id":        item.ID,
		"name":      item.Name,
		"price":     item.Price,
		"createdAt": item.CreatedAt,
	}
	if item.Image != "" {
		onInsert["image"] = item.Image
	}
	update := bson.M{
		"$inc":         bson.M{"quantity": item.Quantity},
		"$set":         bson.M{"updatedAt": item.UpdatedAt},
		"$setOnInsert": onInsert,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.CartItem
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"productId": item.ProductID}, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateQuantity 更新购物车项数量
func (r *MongoCartRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	update := bson.M{"$set": bson.M{"quantity": quantity, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var saved models.CartItem
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"productId": productID}, update, opts).Decode(&saved)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete 删除购物车项
func (r *MongoCartRepository) Delete(ctx context.Context, productID string) (bool, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	err := r.coll.FindOneAndDelete(ctx, bson.M{"productId": productID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear 清空购物车
func (r *MongoCartRepository) Clear(ctx context.Context) error {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

// MongoOrderRepository MongoDB 订单实现
type MongoOrderRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoOrderRepository 创建 MongoDB 订单仓库
func NewMongoOrderRepository(db *mongo.Database, timeout time.Duration) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(MongoOrderCollection), timeout: timeout}
}

// EnsureIndexes 创建订单索引
func (r *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customerInfo.email", Value: 1}, {Key: "orderDate", Value: -1}},
		},
	})
	return err
}

// Create 保存订单
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return nil
	}
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// List 订单列表
func (r *MongoOrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	query := bson.M{}
	if filter.Email != "" {
		query["customerInfo.email"] = filter.Email
	}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByOrderID 根据订单编号获取订单
func (r *MongoOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus 更新订单状态
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, orderID, status string, shipping *models.ShippingInfo) (*models.Order, error) {
	ctx, cancel := mongoOpContext(ctx, r.timeout)
	defer cancel()
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if shipping != nil {
		set["shippingInfo"] = shipping
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"orderId": orderID}, bson.M{"$set": set}, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

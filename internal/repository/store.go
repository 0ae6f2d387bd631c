package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecom-cart/internal/constants"
	"github.com/ecom-cart/internal/logger"
	"github.com/ecom-cart/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// OpenOptions 存储打开参数
type OpenOptions struct {
	Driver         string
	URI            string
	Database       string
	ConnectTimeout time.Duration
	Pool           models.DBPoolConfig
	Debug          bool
}

// Store 进程级存储句柄，后端在创建后不再变化
type Store struct {
	backend string
	cart    CartRepository
	orders  OrderRepository
	ping    func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// NewStore 组装存储句柄
func NewStore(backend string, cart CartRepository, orders OrderRepository) *Store {
	return &Store{backend: backend, cart: cart, orders: orders}
}

// NewMemoryStore 创建进程内存储
func NewMemoryStore() *Store {
	return NewStore(constants.StorageDriverMemory, NewMemoryCartRepository(), NewMemoryOrderRepository())
}

// NewGormStore 基于关系型数据库创建存储
func NewGormStore(db *gorm.DB) *Store {
	backend := constants.StorageDriverSQLite
	if db != nil && db.Dialector != nil && strings.HasPrefix(strings.ToLower(db.Dialector.Name()), "postgres") {
		backend = constants.StorageDriverPostgres
	}
	store := NewStore(backend, NewCartRepository(db), NewOrderRepository(db))
	store.ping = func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	store.close = func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return store
}

// NewMongoStore 基于 MongoDB 创建存储
func NewMongoStore(client *mongo.Client, db *mongo.Database, opTimeout time.Duration) *Store {
	store := NewStore(
		constants.StorageDriverMongo,
		NewMongoCartRepository(db, opTimeout),
		NewMongoOrderRepository(db, opTimeout),
	)
	store.ping = func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
	store.close = client.Disconnect
	return store
}

// Backend 当前后端驱动
func (s *Store) Backend() string {
	return s.backend
}

// BackendName 当前后端展示名称
func (s *Store) BackendName() string {
	switch s.backend {
	case constants.StorageDriverMongo:
		return constants.StorageNameMongo
	case constants.StorageDriverPostgres:
		return constants.StorageNamePostgres
	case constants.StorageDriverSQLite:
		return constants.StorageNameSQLite
	default:
		return constants.StorageNameMemory
	}
}

// Cart 购物车仓库
func (s *Store) Cart() CartRepository {
	return s.cart
}

// Orders 订单仓库
func (s *Store) Orders() OrderRepository {
	return s.orders
}

// Ping 探测后端连通性，进程内存储总是可用
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close 释放后端连接
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open 按配置打开主存储，失败时回退到进程内存储；结果在进程生命周期内不变
func Open(ctx context.Context, opts OpenOptions) *Store {
	store, err := OpenPrimary(ctx, opts)
	if err != nil {
		logger.Warnw("storage_connect_failed",
			"driver", opts.Driver,
			"error", err,
			"fallback", constants.StorageNameMemory,
		)
		return NewMemoryStore()
	}
	logger.Infow("storage_connected", "driver", store.Backend(), "backend", store.BackendName())
	return store
}

// OpenPrimary 打开配置的主存储，不做回退
func OpenPrimary(ctx context.Context, opts OpenOptions) (*Store, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", constants.StorageDriverMongo, "mongodb":
		return openMongo(ctx, opts.URI, opts.Database, timeout)
	case constants.StorageDriverPostgres, "postgresql", constants.StorageDriverSQLite:
		db, err := models.OpenDB(opts.Driver, opts.URI, opts.Pool, opts.Debug)
		if err != nil {
			return nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, fmt.Errorf("migrate failed: %w", err)
		}
		return NewGormStore(db), nil
	case constants.StorageDriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}

func openMongo(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("mongodb uri is empty")
	}
	if strings.TrimSpace(database) == "" {
		database = "e-com"
	}
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(database)
	cartRepo := NewMongoCartRepository(db, timeout)
	orderRepo := NewMongoOrderRepository(db, timeout)
	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure cart indexes failed: %w", err)
	}
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure order indexes failed: %w", err)
	}
	return NewMongoStore(client, db, timeout), nil
}

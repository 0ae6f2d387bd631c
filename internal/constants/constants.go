package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses 合法订单状态（按流转顺序）
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ReceiptStatusCompleted 结账回执状态，与订单持久化状态相互独立
const ReceiptStatusCompleted = "completed"

// 存储后端常量
const (
	StorageDriverMongo    = "mongo"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// 健康检查中展示的存储后端名称
const (
	StorageNameMongo    = "MongoDB"
	StorageNamePostgres = "PostgreSQL"
	StorageNameSQLite   = "SQLite"
	StorageNameMemory   = "In-Memory"
)

// 运行环境常量
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// RecentOrdersLimit 订单统计中返回的最近订单数量
const RecentOrdersLimit = 5

// IsValidOrderStatus 判断订单状态是否合法
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TimestampLayout 接口时间戳格式（UTC，毫秒精度）
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

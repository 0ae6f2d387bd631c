package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem 购物车项（按 ProductID 唯一）
type CartItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id" bson:"id"`                          // 购物车项ID
	ProductID string    `gorm:"uniqueIndex;not null;type:varchar(128)" json:"productId" bson:"productId"` // 商品ID
	Name      string    `gorm:"not null" json:"name" bson:"name"`                                         // 商品名称
	Price     Money     `gorm:"type:decimal(20,4);not null;default:0" json:"price" bson:"price"`          // 单价
	Quantity  int       `gorm:"not null" json:"quantity" bson:"quantity"`                                 // 数量
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`                                   // 商品图片
	CreatedAt time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`                                  // 创建时间
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`                                               // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal 小计（不舍入）
func (i CartItem) LineTotal() Money {
	return Money{Decimal: i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))}
}
